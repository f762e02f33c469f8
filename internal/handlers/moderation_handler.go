package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/crewboard/backend/internal/models"
	"github.com/crewboard/backend/internal/repositories"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ModerationService is the interface that wraps the owner's review
// queue business logic.
type ModerationService interface {
	// ListRequests returns all requests newest first with hydrated
	// profile snippets.
	ListRequests(ctx context.Context) ([]models.ModerationRequestView, error)
	// Decide approves or rejects a pending request. Deciding a request
	// that is no longer pending yields repositories.ErrRequestDecided.
	// The response carries a warning when an approved removal could not
	// delete the account.
	Decide(ctx context.Context, requestID int64, decision string) (*models.DecisionResponse, error)
}

// ModerationHandler handles the owner-only moderation queue endpoints
type ModerationHandler struct {
	BaseHandler
	moderationService ModerationService
}

// NewModerationHandler creates a new moderation handler
func NewModerationHandler(moderationService ModerationService, logger *zap.Logger) *ModerationHandler {
	return &ModerationHandler{
		BaseHandler:       BaseHandler{Logger: logger},
		moderationService: moderationService,
	}
}

// RegisterRoutes registers the moderation queue routes behind the owner
// gate
func (h *ModerationHandler) RegisterRoutes(r chi.Router, ownerGate func(http.Handler) http.Handler) {
	r.Group(func(r chi.Router) {
		r.Use(ownerGate)
		r.Get("/moderation-requests", h.ListRequests)
		r.Post("/moderation-requests/{requestID}/decision", h.Decide)
	})
}

// ListRequests handles GET /moderation-requests
// @Summary List moderation requests
// @Description Owner-only. Returns all requests newest first, with target and requester profile snippets.
// @Tags moderation
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} models.ModerationRequestView "Request list"
// @Failure 403 {object} map[string]string "Insufficient permissions"
// @Failure 500 {object} map[string]string "Failed to fetch requests"
// @Router /moderation-requests [get]
func (h *ModerationHandler) ListRequests(w http.ResponseWriter, r *http.Request) {
	requests, err := h.moderationService.ListRequests(r.Context())
	if err != nil {
		h.Logger.Error("failed to list moderation requests", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, "failed to fetch moderation requests")
		return
	}

	h.RespondJSON(w, http.StatusOK, requests)
}

// Decide handles POST /moderation-requests/{requestID}/decision
// @Summary Decide a moderation request
// @Description Owner-only. Approves or rejects a pending request. Approving a removal also deletes the target account; a failed deletion keeps the approval and returns a warning.
// @Tags moderation
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param requestID path int true "Request ID"
// @Param request body models.DecisionRequest true "Decision"
// @Success 200 {object} models.DecisionResponse "Decision applied"
// @Failure 400 {object} map[string]string "Invalid decision"
// @Failure 404 {object} map[string]string "Request not found"
// @Failure 409 {object} map[string]string "Request already decided"
// @Router /moderation-requests/{requestID}/decision [post]
func (h *ModerationHandler) Decide(w http.ResponseWriter, r *http.Request) {
	requestID, err := strconv.ParseInt(chi.URLParam(r, "requestID"), 10, 64)
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request id")
		return
	}

	var req models.DecisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	response, err := h.moderationService.Decide(r.Context(), requestID, req.Decision)
	if err != nil {
		h.Logger.Error("failed to decide moderation request", zap.Int64("requestId", requestID), zap.Error(err))

		var invalidValue *models.InvalidValueError
		switch {
		case errors.As(err, &invalidValue):
			h.RespondError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, repositories.ErrRequestNotFound):
			h.RespondError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, repositories.ErrRequestDecided):
			h.RespondError(w, http.StatusConflict, err.Error())
		default:
			h.RespondError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	h.RespondJSON(w, http.StatusOK, response)
}
