package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/crewboard/backend/internal/models"
	"go.uber.org/zap"
)

// roleRepository implements data access for the user_roles table
type roleRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewRoleRepository creates a new role repository
func NewRoleRepository(db *sql.DB, logger *zap.Logger) *roleRepository {
	return &roleRepository{
		db:     db,
		logger: logger,
	}
}

// Get retrieves the role assigned to a user.
// A missing assignment row is not an error: it yields RoleUnassigned.
func (r *roleRepository) Get(ctx context.Context, userID string) (models.Role, error) {
	query := `
		SELECT role
		FROM user_roles
		WHERE user_id = ?
		LIMIT 1
	`

	var role models.Role
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&role)

	if err == sql.ErrNoRows {
		return models.RoleUnassigned, nil
	}
	if err != nil {
		r.logger.Error("failed to get role", zap.Error(err), zap.String("userId", userID))
		return models.RoleUnassigned, fmt.Errorf("failed to get role: %w", err)
	}

	return role, nil
}

// GetAll retrieves all role assignments keyed by user ID
func (r *roleRepository) GetAll(ctx context.Context) (map[string]models.Role, error) {
	query := `SELECT user_id, role FROM user_roles`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("failed to get roles", zap.Error(err))
		return nil, fmt.Errorf("failed to get roles: %w", err)
	}
	defer rows.Close()

	roles := make(map[string]models.Role)
	for rows.Next() {
		var userID string
		var role models.Role
		if err := rows.Scan(&userID, &role); err != nil {
			r.logger.Error("failed to scan role", zap.Error(err))
			return nil, fmt.Errorf("failed to scan role: %w", err)
		}
		roles[userID] = role
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate roles: %w", err)
	}

	return roles, nil
}

// Upsert sets the role assigned to a user, creating the assignment row
// if none exists yet
func (r *roleRepository) Upsert(ctx context.Context, userID string, role models.Role) error {
	query := `
		INSERT INTO user_roles (user_id, role)
		VALUES (?, ?)
		ON DUPLICATE KEY UPDATE role = VALUES(role)
	`

	if _, err := r.db.ExecContext(ctx, query, userID, role); err != nil {
		r.logger.Error("failed to upsert role", zap.Error(err), zap.String("userId", userID), zap.String("role", string(role)))
		return fmt.Errorf("failed to upsert role: %w", err)
	}

	return nil
}
