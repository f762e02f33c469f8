package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/crewboard/backend/internal/middlewares"
	"github.com/crewboard/backend/internal/models"
	"github.com/crewboard/backend/internal/services"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// UserService is the interface that wraps user management business
// logic.
type UserService interface {
	// ListUsers returns all profiles with their effective roles.
	ListUsers(ctx context.Context) ([]models.UserListItem, error)
	// ChangeRole sets the target's role to "user" or "moderator".
	//
	// Targeting an owner yields services.ErrOwnerProtected.
	ChangeRole(ctx context.Context, targetUserID string, newRole string) error
	// RemoveUser deletes the target account directly.
	//
	// Targeting an owner yields services.ErrOwnerProtected.
	RemoveUser(ctx context.Context, targetUserID string) error
	// SubmitRequest files a ban or removal request for owner review.
	//
	// An empty reason yields services.ErrReasonRequired.
	SubmitRequest(ctx context.Context, requesterID string, req *models.SubmitModerationRequest) (*models.ModerationRequest, error)
}

// UserHandler handles the user management endpoints
type UserHandler struct {
	BaseHandler
	userService UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService UserService, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		BaseHandler: BaseHandler{Logger: logger},
		userService: userService,
	}
}

// RegisterRoutes registers user management routes. Listing and request
// submission need at least moderator; role changes and direct removal
// are owner-only.
func (h *UserHandler) RegisterRoutes(r chi.Router, moderatorGate, ownerGate func(http.Handler) http.Handler) {
	r.Group(func(r chi.Router) {
		r.Use(moderatorGate)
		r.Get("/users", h.ListUsers)
		r.Post("/moderation-requests", h.SubmitRequest)
	})
	r.Group(func(r chi.Router) {
		r.Use(ownerGate)
		r.Put("/users/{userID}/role", h.ChangeRole)
		r.Delete("/users/{userID}", h.RemoveUser)
	})
}

// ListUsers handles GET /users
// @Summary List all users
// @Description Returns all profiles with role badges. Users without a role assignment show the default role.
// @Tags users
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} models.UserListItem "User list"
// @Failure 403 {object} map[string]string "Insufficient permissions"
// @Failure 500 {object} map[string]string "Failed to fetch users"
// @Router /users [get]
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.ListUsers(r.Context())
	if err != nil {
		h.Logger.Error("failed to list users", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, "failed to fetch users")
		return
	}

	h.RespondJSON(w, http.StatusOK, users)
}

// ChangeRole handles PUT /users/{userID}/role
// @Summary Change a user's role
// @Description Owner-only. Sets the target's role to "user" or "moderator". Owners can never be targeted.
// @Tags users
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param userID path string true "Target user ID"
// @Param request body models.ChangeRoleRequest true "New role"
// @Success 200 {object} map[string]string "Role updated"
// @Failure 400 {object} map[string]string "Invalid role"
// @Failure 403 {object} map[string]string "Target is an owner"
// @Failure 404 {object} map[string]string "Target not found"
// @Router /users/{userID}/role [put]
func (h *UserHandler) ChangeRole(w http.ResponseWriter, r *http.Request) {
	targetUserID := chi.URLParam(r, "userID")

	var req models.ChangeRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.userService.ChangeRole(r.Context(), targetUserID, req.Role); err != nil {
		h.respondActionError(w, "failed to change role", err)
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]string{"message": "user role updated to " + req.Role})
}

// RemoveUser handles DELETE /users/{userID}
// @Summary Remove a user
// @Description Owner-only. Deletes the target account directly. Owners can never be targeted.
// @Tags users
// @Produce json
// @Security ApiKeyAuth
// @Param userID path string true "Target user ID"
// @Success 200 {object} map[string]string "User removed"
// @Failure 403 {object} map[string]string "Target is an owner"
// @Failure 404 {object} map[string]string "Target not found"
// @Router /users/{userID} [delete]
func (h *UserHandler) RemoveUser(w http.ResponseWriter, r *http.Request) {
	targetUserID := chi.URLParam(r, "userID")

	if err := h.userService.RemoveUser(r.Context(), targetUserID); err != nil {
		h.respondActionError(w, "failed to remove user", err)
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]string{"message": "user removed successfully"})
}

// SubmitRequest handles POST /moderation-requests
// @Summary Submit a moderation request
// @Description Moderator action. Files a ban or removal request for owner approval instead of acting directly.
// @Tags moderation
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body models.SubmitModerationRequest true "Moderation request"
// @Success 201 {object} models.ModerationRequest "Request submitted"
// @Failure 400 {object} map[string]string "Invalid action type or missing reason"
// @Failure 403 {object} map[string]string "Target is an owner"
// @Router /moderation-requests [post]
func (h *UserHandler) SubmitRequest(w http.ResponseWriter, r *http.Request) {
	requesterID, ok := middlewares.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req models.SubmitModerationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	request, err := h.userService.SubmitRequest(r.Context(), requesterID, &req)
	if err != nil {
		h.respondActionError(w, "failed to submit moderation request", err)
		return
	}

	h.RespondJSON(w, http.StatusCreated, request)
}

// respondActionError maps service errors of the management actions to
// HTTP statuses
func (h *UserHandler) respondActionError(w http.ResponseWriter, logMessage string, err error) {
	h.Logger.Error(logMessage, zap.Error(err))

	var invalidValue *models.InvalidValueError
	switch {
	case errors.Is(err, services.ErrOwnerProtected):
		h.RespondError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, services.ErrReasonRequired), errors.As(err, &invalidValue):
		h.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrTargetNotFound):
		h.RespondError(w, http.StatusNotFound, err.Error())
	default:
		h.RespondError(w, http.StatusInternalServerError, err.Error())
	}
}
