package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/crewboard/backend/internal/models"
	"go.uber.org/zap"
)

// ErrRequestNotFound is returned when a moderation request lookup
// matches no row.
var ErrRequestNotFound = fmt.Errorf("moderation request not found")

// ErrRequestDecided is returned when a decision targets a request that
// is no longer pending. The pending check and the update run as one
// statement, so concurrent decisions cannot both succeed.
var ErrRequestDecided = fmt.Errorf("moderation request already decided")

// moderationRequestRepository implements data access for the
// moderation_requests table
type moderationRequestRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewModerationRequestRepository creates a new moderation request repository
func NewModerationRequestRepository(db *sql.DB, logger *zap.Logger) *moderationRequestRepository {
	return &moderationRequestRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new moderation request with pending status
func (r *moderationRequestRepository) Create(ctx context.Context, request *models.ModerationRequest) error {
	query := `
		INSERT INTO moderation_requests (target_user_id, requester_id, action_type, reason, status)
		VALUES (?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		request.TargetUserID,
		request.RequesterID,
		request.ActionType,
		request.Reason,
		models.StatusPending,
	)
	if err != nil {
		r.logger.Error("failed to create moderation request", zap.Error(err))
		return fmt.Errorf("failed to create moderation request: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		r.logger.Error("failed to get last insert id", zap.Error(err))
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	request.ID = id
	request.Status = models.StatusPending
	return nil
}

// GetByID retrieves a moderation request by ID
func (r *moderationRequestRepository) GetByID(ctx context.Context, requestID int64) (*models.ModerationRequest, error) {
	query := `
		SELECT id, target_user_id, requester_id, action_type, reason, status, created_at, reviewed_at
		FROM moderation_requests
		WHERE id = ?
		LIMIT 1
	`

	request := &models.ModerationRequest{}
	err := r.db.QueryRowContext(ctx, query, requestID).Scan(
		&request.ID,
		&request.TargetUserID,
		&request.RequesterID,
		&request.ActionType,
		&request.Reason,
		&request.Status,
		&request.CreatedAt,
		&request.ReviewedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrRequestNotFound
	}
	if err != nil {
		r.logger.Error("failed to get moderation request", zap.Error(err), zap.Int64("requestId", requestID))
		return nil, fmt.Errorf("failed to get moderation request: %w", err)
	}

	return request, nil
}

// GetAll retrieves all moderation requests, newest first
func (r *moderationRequestRepository) GetAll(ctx context.Context) ([]models.ModerationRequest, error) {
	query := `
		SELECT id, target_user_id, requester_id, action_type, reason, status, created_at, reviewed_at
		FROM moderation_requests
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("failed to get moderation requests", zap.Error(err))
		return nil, fmt.Errorf("failed to get moderation requests: %w", err)
	}
	defer rows.Close()

	var requests []models.ModerationRequest
	for rows.Next() {
		var request models.ModerationRequest
		if err := rows.Scan(
			&request.ID,
			&request.TargetUserID,
			&request.RequesterID,
			&request.ActionType,
			&request.Reason,
			&request.Status,
			&request.CreatedAt,
			&request.ReviewedAt,
		); err != nil {
			r.logger.Error("failed to scan moderation request", zap.Error(err))
			return nil, fmt.Errorf("failed to scan moderation request: %w", err)
		}
		requests = append(requests, request)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate moderation requests: %w", err)
	}

	return requests, nil
}

// Decide moves a pending request to approved or rejected and stamps the
// review time. Only pending rows match, so a request can be decided at
// most once; a second decision returns ErrRequestDecided.
func (r *moderationRequestRepository) Decide(ctx context.Context, requestID int64, status models.RequestStatus, reviewedAt time.Time) error {
	query := `
		UPDATE moderation_requests
		SET status = ?, reviewed_at = ?
		WHERE id = ? AND status = ?
	`

	result, err := r.db.ExecContext(ctx, query, status, reviewedAt, requestID, models.StatusPending)
	if err != nil {
		r.logger.Error("failed to decide moderation request", zap.Error(err), zap.Int64("requestId", requestID))
		return fmt.Errorf("failed to decide moderation request: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrRequestDecided
	}

	return nil
}
