package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/crewboard/backend/internal/models"
	"go.uber.org/zap"
)

// ErrProfileNotFound is returned when a profile lookup matches no row.
// Callers distinguish it from lookup failures: login resolution turns it
// into "username not found", request hydration into a placeholder.
var ErrProfileNotFound = fmt.Errorf("profile not found")

// profileRepository implements data access for the profiles table
type profileRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *sql.DB, logger *zap.Logger) *profileRepository {
	return &profileRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new profile into the database
func (r *profileRepository) Create(ctx context.Context, profile *models.Profile) error {
	query := `
		INSERT INTO profiles (user_id, email, full_name, username)
		VALUES (?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query, profile.UserID, profile.Email, profile.FullName, profile.Username)
	if err != nil {
		r.logger.Error("failed to create profile", zap.Error(err))
		return fmt.Errorf("failed to create profile: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		r.logger.Error("failed to get last insert id", zap.Error(err))
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	profile.ID = id
	return nil
}

// GetByUserID retrieves a profile by the linked user ID
func (r *profileRepository) GetByUserID(ctx context.Context, userID string) (*models.Profile, error) {
	query := `
		SELECT id, user_id, email, full_name, username, created_at
		FROM profiles
		WHERE user_id = ?
		LIMIT 1
	`

	return r.scanOne(r.db.QueryRowContext(ctx, query, userID))
}

// GetByUsername retrieves a profile by username
func (r *profileRepository) GetByUsername(ctx context.Context, username string) (*models.Profile, error) {
	query := `
		SELECT id, user_id, email, full_name, username, created_at
		FROM profiles
		WHERE username = ?
		LIMIT 1
	`

	return r.scanOne(r.db.QueryRowContext(ctx, query, username))
}

// GetAll retrieves all profiles in insertion order
func (r *profileRepository) GetAll(ctx context.Context) ([]models.Profile, error) {
	query := `
		SELECT id, user_id, email, full_name, username, created_at
		FROM profiles
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("failed to get profiles", zap.Error(err))
		return nil, fmt.Errorf("failed to get profiles: %w", err)
	}
	defer rows.Close()

	var profiles []models.Profile
	for rows.Next() {
		var profile models.Profile
		if err := rows.Scan(
			&profile.ID,
			&profile.UserID,
			&profile.Email,
			&profile.FullName,
			&profile.Username,
			&profile.CreatedAt,
		); err != nil {
			r.logger.Error("failed to scan profile", zap.Error(err))
			return nil, fmt.Errorf("failed to scan profile: %w", err)
		}
		profiles = append(profiles, profile)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate profiles: %w", err)
	}

	return profiles, nil
}

// ExistsByUsername checks if a profile exists with the given username
func (r *profileRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	query := `SELECT EXISTS(SELECT * FROM profiles WHERE username = ?)`

	var exists bool
	err := r.db.QueryRowContext(ctx, query, username).Scan(&exists)
	if err != nil {
		r.logger.Error("failed to check username existence", zap.Error(err), zap.String("username", username))
		return false, fmt.Errorf("failed to check username existence: %w", err)
	}

	return exists, nil
}

// scanOne scans a single profile row
func (r *profileRepository) scanOne(row *sql.Row) (*models.Profile, error) {
	profile := &models.Profile{}
	err := row.Scan(
		&profile.ID,
		&profile.UserID,
		&profile.Email,
		&profile.FullName,
		&profile.Username,
		&profile.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		r.logger.Error("failed to get profile", zap.Error(err))
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	return profile, nil
}
