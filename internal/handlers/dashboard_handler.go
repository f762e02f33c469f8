package handlers

import (
	"context"
	"net/http"

	"github.com/crewboard/backend/internal/middlewares"
	"github.com/crewboard/backend/internal/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// DashboardService is the interface that wraps the dashboard business
// logic.
type DashboardService interface {
	// GetDashboard returns the caller's profile and effective role.
	//
	// A missing role is not an error; a missing profile is.
	GetDashboard(ctx context.Context, userID string) (*models.DashboardResponse, error)
}

// DashboardHandler handles the role-gated dashboard endpoint
type DashboardHandler struct {
	BaseHandler
	dashboardService DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService DashboardService, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		BaseHandler:      BaseHandler{Logger: logger},
		dashboardService: dashboardService,
	}
}

// RegisterRoutes registers dashboard routes behind the auth middleware
func (h *DashboardHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/dashboard", h.GetDashboard)
	})
}

// GetDashboard handles GET /dashboard
// @Summary Get dashboard data
// @Description Returns the caller's profile and effective role. Role defaults to "user" when no assignment exists.
// @Tags dashboard
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} models.DashboardResponse "Dashboard data"
// @Failure 401 {object} map[string]string "Authentication required"
// @Failure 500 {object} map[string]string "Failed to fetch profile"
// @Router /dashboard [get]
func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	userID, ok := middlewares.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	dashboard, err := h.dashboardService.GetDashboard(r.Context(), userID)
	if err != nil {
		h.Logger.Error("failed to fetch dashboard", zap.String("userId", userID), zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, "failed to fetch profile data")
		return
	}

	h.RespondJSON(w, http.StatusOK, dashboard)
}
