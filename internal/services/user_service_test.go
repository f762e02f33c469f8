package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/crewboard/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// mockRoleRepository is a mock implementation of RoleRepository
type mockRoleRepository struct {
	roles      map[string]models.Role
	getErr     error
	getAllErr  error
	upsertErr  error
	upsertedID string
	upserted   models.Role
}

func (m *mockRoleRepository) Get(ctx context.Context, userID string) (models.Role, error) {
	if m.getErr != nil {
		return models.RoleUnassigned, m.getErr
	}
	return m.roles[userID], nil
}

func (m *mockRoleRepository) GetAll(ctx context.Context) (map[string]models.Role, error) {
	if m.getAllErr != nil {
		return nil, m.getAllErr
	}
	return m.roles, nil
}

func (m *mockRoleRepository) Upsert(ctx context.Context, userID string, role models.Role) error {
	if m.upsertErr != nil {
		return m.upsertErr
	}
	m.upsertedID = userID
	m.upserted = role
	return nil
}

// mockRequestRepository is a mock implementation of the moderation
// request repository interfaces
type mockRequestRepository struct {
	requests  []models.ModerationRequest
	request   *models.ModerationRequest
	createErr error
	getErr    error
	decideErr error
	decided   models.RequestStatus
}

func (m *mockRequestRepository) Create(ctx context.Context, request *models.ModerationRequest) error {
	if m.createErr != nil {
		return m.createErr
	}
	request.ID = 1
	request.Status = models.StatusPending
	return nil
}

func (m *mockRequestRepository) GetAll(ctx context.Context) ([]models.ModerationRequest, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.requests, nil
}

func (m *mockRequestRepository) GetByID(ctx context.Context, requestID int64) (*models.ModerationRequest, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.request, nil
}

func (m *mockRequestRepository) Decide(ctx context.Context, requestID int64, status models.RequestStatus, reviewedAt time.Time) error {
	if m.decideErr != nil {
		return m.decideErr
	}
	m.decided = status
	return nil
}

func TestUserService_ListUsers(t *testing.T) {
	logger, _ := zap.NewDevelopment()

	profileRepo := &mockProfileRepository{
		profiles: []models.Profile{
			{ID: 1, UserID: "uuid-owner", Username: "boss"},
			{ID: 2, UserID: "uuid-mod", Username: "mod"},
			{ID: 3, UserID: "uuid-fresh", Username: "fresh"},
		},
	}
	roleRepo := &mockRoleRepository{
		roles: map[string]models.Role{
			"uuid-owner": models.RoleOwner,
			"uuid-mod":   models.RoleModerator,
		},
	}

	svc := NewUserService(profileRepo, roleRepo, &mockUserRepository{}, &mockRequestRepository{}, logger)

	users, err := svc.ListUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 3)

	assert.Equal(t, models.RoleOwner, users[0].Role)
	assert.Equal(t, models.RoleModerator, users[1].Role)
	// No assignment row falls back to the default role
	assert.Equal(t, models.RoleUser, users[2].Role)
}

func TestUserService_ChangeRole(t *testing.T) {
	logger, _ := zap.NewDevelopment()

	profiles := map[string]*models.Profile{
		"uuid-owner": {UserID: "uuid-owner", Username: "boss"},
		"uuid-user":  {UserID: "uuid-user", Username: "plain"},
	}
	roles := map[string]models.Role{"uuid-owner": models.RoleOwner}

	tests := []struct {
		name          string
		targetUserID  string
		newRole       string
		expectedError error
		errorContains string
	}{
		{
			name:         "promote to moderator",
			targetUserID: "uuid-user",
			newRole:      "moderator",
		},
		{
			name:         "demote to user",
			targetUserID: "uuid-user",
			newRole:      "user",
		},
		{
			name:          "owner is not assignable",
			targetUserID:  "uuid-user",
			newRole:       "owner",
			errorContains: "invalid role",
		},
		{
			name:          "unknown role",
			targetUserID:  "uuid-user",
			newRole:       "admin",
			errorContains: "invalid role",
		},
		{
			name:          "owner cannot be demoted",
			targetUserID:  "uuid-owner",
			newRole:       "user",
			expectedError: ErrOwnerProtected,
		},
		{
			name:          "target not found",
			targetUserID:  "uuid-ghost",
			newRole:       "moderator",
			expectedError: ErrTargetNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profileRepo := &mockProfileRepository{byUserID: profiles}
			roleRepo := &mockRoleRepository{roles: roles}
			svc := NewUserService(profileRepo, roleRepo, &mockUserRepository{}, &mockRequestRepository{}, logger)

			err := svc.ChangeRole(context.Background(), tt.targetUserID, tt.newRole)
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				return
			}
			if tt.errorContains != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorContains)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.targetUserID, roleRepo.upsertedID)
			assert.Equal(t, models.Role(tt.newRole), roleRepo.upserted)
		})
	}
}

func TestUserService_RemoveUser(t *testing.T) {
	logger, _ := zap.NewDevelopment()

	profiles := map[string]*models.Profile{
		"uuid-owner": {UserID: "uuid-owner", Username: "boss"},
		"uuid-user":  {UserID: "uuid-user", Username: "plain"},
	}
	roles := map[string]models.Role{"uuid-owner": models.RoleOwner}

	t.Run("deletes a plain user", func(t *testing.T) {
		accountRepo := &mockUserRepository{}
		svc := NewUserService(&mockProfileRepository{byUserID: profiles}, &mockRoleRepository{roles: roles}, accountRepo, &mockRequestRepository{}, logger)

		require.NoError(t, svc.RemoveUser(context.Background(), "uuid-user"))
		assert.Equal(t, []string{"uuid-user"}, accountRepo.deletedUserIDs)
	})

	t.Run("owner is protected", func(t *testing.T) {
		accountRepo := &mockUserRepository{}
		svc := NewUserService(&mockProfileRepository{byUserID: profiles}, &mockRoleRepository{roles: roles}, accountRepo, &mockRequestRepository{}, logger)

		assert.ErrorIs(t, svc.RemoveUser(context.Background(), "uuid-owner"), ErrOwnerProtected)
		assert.Empty(t, accountRepo.deletedUserIDs)
	})

	t.Run("deletion failure propagates", func(t *testing.T) {
		accountRepo := &mockUserRepository{deleteErr: errors.New("database error")}
		svc := NewUserService(&mockProfileRepository{byUserID: profiles}, &mockRoleRepository{roles: roles}, accountRepo, &mockRequestRepository{}, logger)

		assert.Error(t, svc.RemoveUser(context.Background(), "uuid-user"))
	})
}

func TestUserService_SubmitRequest(t *testing.T) {
	logger, _ := zap.NewDevelopment()

	profiles := map[string]*models.Profile{
		"uuid-owner": {UserID: "uuid-owner", Username: "boss"},
		"uuid-user":  {UserID: "uuid-user", Username: "plain"},
	}
	roles := map[string]models.Role{"uuid-owner": models.RoleOwner}

	tests := []struct {
		name          string
		request       *models.SubmitModerationRequest
		expectedError error
		errorContains string
	}{
		{
			name: "ban request",
			request: &models.SubmitModerationRequest{
				TargetUserID: "uuid-user",
				ActionType:   "ban",
				Reason:       "spamming",
			},
		},
		{
			name: "remove request",
			request: &models.SubmitModerationRequest{
				TargetUserID: "uuid-user",
				ActionType:   "remove",
				Reason:       "abuse",
			},
		},
		{
			name: "invalid action type",
			request: &models.SubmitModerationRequest{
				TargetUserID: "uuid-user",
				ActionType:   "mute",
				Reason:       "noise",
			},
			errorContains: "invalid actionType",
		},
		{
			name: "reason is required",
			request: &models.SubmitModerationRequest{
				TargetUserID: "uuid-user",
				ActionType:   "ban",
				Reason:       "   ",
			},
			expectedError: ErrReasonRequired,
		},
		{
			name: "owner cannot be targeted",
			request: &models.SubmitModerationRequest{
				TargetUserID: "uuid-owner",
				ActionType:   "ban",
				Reason:       "bad boss",
			},
			expectedError: ErrOwnerProtected,
		},
		{
			name: "target not found",
			request: &models.SubmitModerationRequest{
				TargetUserID: "uuid-ghost",
				ActionType:   "ban",
				Reason:       "spamming",
			},
			expectedError: ErrTargetNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewUserService(&mockProfileRepository{byUserID: profiles}, &mockRoleRepository{roles: roles}, &mockUserRepository{}, &mockRequestRepository{}, logger)

			request, err := svc.SubmitRequest(context.Background(), "uuid-moderator", tt.request)
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				return
			}
			if tt.errorContains != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorContains)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, int64(1), request.ID)
			assert.Equal(t, models.StatusPending, request.Status)
			assert.Equal(t, "uuid-moderator", request.RequesterID)
			assert.Equal(t, tt.request.TargetUserID, request.TargetUserID)
		})
	}
}
