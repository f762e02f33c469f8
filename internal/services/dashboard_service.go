package services

import (
	"context"

	"github.com/crewboard/backend/internal/models"
	"go.uber.org/zap"
)

// DashboardProfileRepository is the interface that wraps profile lookup
// for the dashboard.
type DashboardProfileRepository interface {
	// GetByUserID retrieves a profile by the linked user ID.
	GetByUserID(ctx context.Context, userID string) (*models.Profile, error)
}

// RoleRepository is the interface that wraps role assignment data access.
type RoleRepository interface {
	// Get returns the role assigned to the user, or RoleUnassigned when
	// no assignment row exists.
	Get(ctx context.Context, userID string) (models.Role, error)
	// GetAll retrieves all role assignments keyed by user ID.
	GetAll(ctx context.Context) (map[string]models.Role, error)
	// Upsert sets the role assigned to a user.
	Upsert(ctx context.Context, userID string, role models.Role) error
}

// dashboardService assembles the caller's profile and effective role
type dashboardService struct {
	profileRepo DashboardProfileRepository
	roleRepo    RoleRepository
	logger      *zap.Logger
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(profileRepo DashboardProfileRepository, roleRepo RoleRepository, logger *zap.Logger) *dashboardService {
	return &dashboardService{
		profileRepo: profileRepo,
		roleRepo:    roleRepo,
		logger:      logger,
	}
}

// GetDashboard returns the caller's profile and effective role.
//
// A missing or unreadable role never fails the dashboard: the role
// degrades to the default and the failure is only logged.
func (s *dashboardService) GetDashboard(ctx context.Context, userID string) (*models.DashboardResponse, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	role, err := s.roleRepo.Get(ctx, userID)
	if err != nil {
		s.logger.Warn("failed to get role, defaulting", zap.String("userId", userID), zap.Error(err))
		role = models.RoleUnassigned
	}

	return &models.DashboardResponse{
		Profile: profile,
		Role:    role.Effective(),
	}, nil
}
