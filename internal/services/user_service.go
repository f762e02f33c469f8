package services

import (
	"context"
	"errors"
	"strings"

	"github.com/crewboard/backend/internal/models"
	"github.com/crewboard/backend/internal/repositories"
	"go.uber.org/zap"
)

// ErrOwnerProtected is returned when an action targets a user whose
// role is owner. Owners are never a valid target, direct or requested.
var ErrOwnerProtected = errors.New("cannot target an owner")

// ErrReasonRequired is returned when a moderation request carries no
// reason.
var ErrReasonRequired = errors.New("reason is required")

// ErrTargetNotFound is returned when an action targets a user that
// does not exist.
var ErrTargetNotFound = errors.New("target user not found")

// ManagedProfileRepository is the interface that wraps profile data
// access for user management.
type ManagedProfileRepository interface {
	// GetAll retrieves all profiles in insertion order.
	GetAll(ctx context.Context) ([]models.Profile, error)
	// GetByUserID retrieves a profile by the linked user ID.
	GetByUserID(ctx context.Context, userID string) (*models.Profile, error)
}

// AccountRepository is the interface that wraps account deletion.
type AccountRepository interface {
	// Delete removes the auth user; dependent rows cascade.
	Delete(ctx context.Context, userID string) error
}

// ModerationRequestCreator is the interface that wraps moderation
// request insertion.
type ModerationRequestCreator interface {
	// Create inserts a new request with pending status and fills in its
	// generated ID.
	Create(ctx context.Context, request *models.ModerationRequest) error
}

// userService implements the user management operations
type userService struct {
	profileRepo ManagedProfileRepository
	roleRepo    RoleRepository
	accountRepo AccountRepository
	requestRepo ModerationRequestCreator
	logger      *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(
	profileRepo ManagedProfileRepository,
	roleRepo RoleRepository,
	accountRepo AccountRepository,
	requestRepo ModerationRequestCreator,
	logger *zap.Logger,
) *userService {
	return &userService{
		profileRepo: profileRepo,
		roleRepo:    roleRepo,
		accountRepo: accountRepo,
		requestRepo: requestRepo,
		logger:      logger,
	}
}

// ListUsers returns all profiles joined in memory with their role
// assignments. Users without an assignment row get the default role.
func (s *userService) ListUsers(ctx context.Context) ([]models.UserListItem, error) {
	profiles, err := s.profileRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	roles, err := s.roleRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	users := make([]models.UserListItem, len(profiles))
	for i, profile := range profiles {
		users[i] = models.UserListItem{
			Profile: profile,
			Role:    roles[profile.UserID].Effective(),
		}
	}

	return users, nil
}

// ChangeRole sets the target's role to "user" or "moderator".
// Owner is not assignable through this path and owners cannot be
// demoted.
func (s *userService) ChangeRole(ctx context.Context, targetUserID string, newRole string) error {
	role, err := models.ParseRole(newRole)
	if err != nil {
		return err
	}
	if role == models.RoleOwner {
		return &models.InvalidValueError{Field: "role", Value: newRole}
	}

	if err := s.ensureNotOwner(ctx, targetUserID); err != nil {
		return err
	}

	return s.roleRepo.Upsert(ctx, targetUserID, role)
}

// RemoveUser deletes the target account directly (owner action)
func (s *userService) RemoveUser(ctx context.Context, targetUserID string) error {
	if err := s.ensureNotOwner(ctx, targetUserID); err != nil {
		return err
	}

	return s.accountRepo.Delete(ctx, targetUserID)
}

// SubmitRequest files a ban or removal request for owner review
// (moderator action). The reason is mandatory.
func (s *userService) SubmitRequest(ctx context.Context, requesterID string, req *models.SubmitModerationRequest) (*models.ModerationRequest, error) {
	actionType, err := models.ParseActionType(req.ActionType)
	if err != nil {
		return nil, err
	}

	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		return nil, ErrReasonRequired
	}

	if err := s.ensureNotOwner(ctx, req.TargetUserID); err != nil {
		return nil, err
	}

	request := &models.ModerationRequest{
		TargetUserID: req.TargetUserID,
		RequesterID:  requesterID,
		ActionType:   actionType,
		Reason:       reason,
	}

	if err := s.requestRepo.Create(ctx, request); err != nil {
		return nil, err
	}

	s.logger.Info("moderation request submitted",
		zap.Int64("requestId", request.ID),
		zap.String("targetUserId", req.TargetUserID),
		zap.String("requesterId", requesterID),
		zap.String("actionType", string(actionType)),
	)

	return request, nil
}

// ensureNotOwner verifies the target exists and is not an owner
func (s *userService) ensureNotOwner(ctx context.Context, targetUserID string) error {
	if _, err := s.profileRepo.GetByUserID(ctx, targetUserID); err != nil {
		if errors.Is(err, repositories.ErrProfileNotFound) {
			return ErrTargetNotFound
		}
		return err
	}

	role, err := s.roleRepo.Get(ctx, targetUserID)
	if err != nil {
		return err
	}
	if role == models.RoleOwner {
		return ErrOwnerProtected
	}

	return nil
}
