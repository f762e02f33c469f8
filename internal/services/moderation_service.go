package services

import (
	"context"
	"sync"
	"time"

	"github.com/crewboard/backend/internal/models"
	"github.com/crewboard/backend/internal/repositories"
	"go.uber.org/zap"
)

// ModerationRequestRepository is the interface that wraps moderation
// request data access for the review queue.
type ModerationRequestRepository interface {
	// GetAll retrieves all requests, newest first.
	GetAll(ctx context.Context) ([]models.ModerationRequest, error)
	// GetByID retrieves a request by ID, or
	// repositories.ErrRequestNotFound.
	GetByID(ctx context.Context, requestID int64) (*models.ModerationRequest, error)
	// Decide moves a pending request to approved or rejected. A request
	// that is no longer pending yields repositories.ErrRequestDecided.
	Decide(ctx context.Context, requestID int64, status models.RequestStatus, reviewedAt time.Time) error
}

// moderationService implements the owner's review queue
type moderationService struct {
	requestRepo ModerationRequestRepository
	profileRepo ManagedProfileRepository
	accountRepo AccountRepository
	logger      *zap.Logger
	now         func() time.Time
}

// NewModerationService creates a new moderation service
func NewModerationService(
	requestRepo ModerationRequestRepository,
	profileRepo ManagedProfileRepository,
	accountRepo AccountRepository,
	logger *zap.Logger,
) *moderationService {
	return &moderationService{
		requestRepo: requestRepo,
		profileRepo: profileRepo,
		accountRepo: accountRepo,
		logger:      logger,
		now:         time.Now,
	}
}

// ListRequests returns all requests newest first, each hydrated with
// target and requester profile snippets.
//
// All profile lookups run concurrently; results are assigned by index,
// so the response preserves the query order regardless of completion
// order. A missing profile hydrates to the Unknown placeholder.
func (s *moderationService) ListRequests(ctx context.Context) ([]models.ModerationRequestView, error) {
	requests, err := s.requestRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]models.ModerationRequestView, len(requests))
	var wg sync.WaitGroup
	for i, request := range requests {
		wg.Add(1)
		go func(i int, request models.ModerationRequest) {
			defer wg.Done()

			// Target and requester lookups are independent
			requesterChan := make(chan models.ProfileSnippet, 1)
			go func() {
				requesterChan <- s.snippet(ctx, request.RequesterID, false)
			}()
			target := s.snippet(ctx, request.TargetUserID, true)

			views[i] = models.ModerationRequestView{
				ModerationRequest: request,
				TargetUser:        target,
				Requester:         <-requesterChan,
			}
		}(i, request)
	}
	wg.Wait()

	return views, nil
}

// Decide approves or rejects a pending request.
//
// Approving a "remove" request additionally deletes the target account.
// A failed deletion does not revert the approved status; it surfaces as
// a warning on the response instead.
func (s *moderationService) Decide(ctx context.Context, requestID int64, decision string) (*models.DecisionResponse, error) {
	var status models.RequestStatus
	switch decision {
	case "approve":
		status = models.StatusApproved
	case "reject":
		status = models.StatusRejected
	default:
		return nil, &models.InvalidValueError{Field: "decision", Value: decision}
	}

	request, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request.Status != models.StatusPending {
		return nil, repositories.ErrRequestDecided
	}

	reviewedAt := s.now()
	if err := s.requestRepo.Decide(ctx, requestID, status, reviewedAt); err != nil {
		return nil, err
	}

	request.Status = status
	request.ReviewedAt = &reviewedAt

	response := &models.DecisionResponse{Request: request}

	// Approved removals delete the account. Approved bans have no side
	// effect beyond the status update; there is no ban mechanism yet.
	if status == models.StatusApproved && request.ActionType == models.ActionRemove {
		if err := s.accountRepo.Delete(ctx, request.TargetUserID); err != nil {
			s.logger.Error("approved removal but account deletion failed",
				zap.Int64("requestId", requestID),
				zap.String("targetUserId", request.TargetUserID),
				zap.Error(err),
			)
			response.Warning = "request approved but account deletion failed"
		}
	}

	s.logger.Info("moderation request decided",
		zap.Int64("requestId", requestID),
		zap.String("status", string(status)),
	)

	return response, nil
}

// snippet fetches a short profile form, degrading to the Unknown
// placeholder when the profile is gone
func (s *moderationService) snippet(ctx context.Context, userID string, withEmail bool) models.ProfileSnippet {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if err != repositories.ErrProfileNotFound {
			s.logger.Warn("failed to hydrate profile", zap.String("userId", userID), zap.Error(err))
		}
		placeholder := models.UnknownProfileSnippet()
		if withEmail {
			placeholder.Email = "unknown"
		}
		return placeholder
	}

	snippet := models.ProfileSnippet{
		FullName: profile.FullName,
		Username: profile.Username,
	}
	if withEmail {
		snippet.Email = profile.Email
	}
	return snippet
}
