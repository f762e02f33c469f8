package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/crewboard/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// setupRequestTestRepository creates a moderation request repository with a mock database
func setupRequestTestRepository(t *testing.T) (*moderationRequestRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := NewModerationRequestRepository(db, zap.NewNop())

	cleanup := func() {
		db.Close()
	}

	return repo, mock, cleanup
}

func requestColumns() []string {
	return []string{"id", "target_user_id", "requester_id", "action_type", "reason", "status", "created_at", "reviewed_at"}
}

func TestModerationRequestRepository_Create(t *testing.T) {
	tests := []struct {
		name          string
		request       *models.ModerationRequest
		setupMock     func(sqlmock.Sqlmock)
		expectedID    int64
		expectedError bool
	}{
		{
			name: "success",
			request: &models.ModerationRequest{
				TargetUserID: "uuid-target",
				RequesterID:  "uuid-moderator",
				ActionType:   models.ActionBan,
				Reason:       "spamming",
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO moderation_requests`).
					WithArgs("uuid-target", "uuid-moderator", models.ActionBan, "spamming", models.StatusPending).
					WillReturnResult(sqlmock.NewResult(42, 1))
			},
			expectedID: 42,
		},
		{
			name: "database error",
			request: &models.ModerationRequest{
				TargetUserID: "uuid-target",
				RequesterID:  "uuid-moderator",
				ActionType:   models.ActionRemove,
				Reason:       "abuse",
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO moderation_requests`).
					WithArgs("uuid-target", "uuid-moderator", models.ActionRemove, "abuse", models.StatusPending).
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupRequestTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			err := repo.Create(context.Background(), tt.request)
			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedID, tt.request.ID)
				assert.Equal(t, models.StatusPending, tt.request.Status)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestModerationRequestRepository_GetByID(t *testing.T) {
	createdAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		requestID     int64
		setupMock     func(sqlmock.Sqlmock)
		expectedError error
	}{
		{
			name:      "success",
			requestID: 1,
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows(requestColumns()).
					AddRow(int64(1), "uuid-target", "uuid-moderator", "ban", "spamming", "pending", createdAt, nil)
				mock.ExpectQuery(`SELECT id, target_user_id, requester_id, action_type, reason, status, created_at, reviewed_at`).
					WithArgs(int64(1)).
					WillReturnRows(rows)
			},
		},
		{
			name:      "not found returns sentinel",
			requestID: 99,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, target_user_id, requester_id, action_type, reason, status, created_at, reviewed_at`).
					WithArgs(int64(99)).
					WillReturnRows(sqlmock.NewRows(requestColumns()))
			},
			expectedError: ErrRequestNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupRequestTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			request, err := repo.GetByID(context.Background(), tt.requestID)
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, request)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.requestID, request.ID)
				assert.Equal(t, models.StatusPending, request.Status)
				assert.Nil(t, request.ReviewedAt)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestModerationRequestRepository_GetAll(t *testing.T) {
	repo, mock, cleanup := setupRequestTestRepository(t)
	defer cleanup()

	newer := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)
	older := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	reviewedAt := time.Date(2025, 6, 3, 9, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows(requestColumns()).
		AddRow(int64(2), "uuid-b", "uuid-mod", "remove", "abuse", "approved", newer, reviewedAt).
		AddRow(int64(1), "uuid-a", "uuid-mod", "ban", "spamming", "pending", older, nil)
	mock.ExpectQuery(`SELECT id, target_user_id, requester_id, action_type, reason, status, created_at, reviewed_at`).
		WillReturnRows(rows)

	requests, err := repo.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, requests, 2)

	assert.Equal(t, int64(2), requests[0].ID)
	assert.Equal(t, models.StatusApproved, requests[0].Status)
	require.NotNil(t, requests[0].ReviewedAt)
	assert.Equal(t, reviewedAt, *requests[0].ReviewedAt)

	assert.Equal(t, int64(1), requests[1].ID)
	assert.Nil(t, requests[1].ReviewedAt)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestModerationRequestRepository_Decide(t *testing.T) {
	reviewedAt := time.Date(2025, 6, 3, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		status        models.RequestStatus
		setupMock     func(sqlmock.Sqlmock)
		expectedError error
	}{
		{
			name:   "approve pending request",
			status: models.StatusApproved,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE moderation_requests`).
					WithArgs(models.StatusApproved, reviewedAt, int64(1), models.StatusPending).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name:   "already decided",
			status: models.StatusRejected,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE moderation_requests`).
					WithArgs(models.StatusRejected, reviewedAt, int64(1), models.StatusPending).
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			expectedError: ErrRequestDecided,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupRequestTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			err := repo.Decide(context.Background(), 1, tt.status, reviewedAt)
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
