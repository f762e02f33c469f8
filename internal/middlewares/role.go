package middlewares

import (
	"context"
	"net/http"

	"github.com/crewboard/backend/internal/auth"
	"github.com/crewboard/backend/internal/models"
	"go.uber.org/zap"
)

// RoleSource resolves the current role of a user.
type RoleSource interface {
	// Get returns the role assigned to the user, or RoleUnassigned when
	// no assignment row exists.
	Get(ctx context.Context, userID string) (models.Role, error)
}

// RoleMiddleware validates the JWT access token and checks that the
// caller's current role grants at least "minimum".
//
// The role comes from the database, not from a token claim: owners can
// change roles at runtime and a demotion must take effect before the
// access token expires.
func RoleMiddleware(tokenGenerator *auth.TokenGenerator, roles RoleSource, minimum models.Role, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r)
			if token == "" {
				respondUnauthorized(w, "authentication required")
				return
			}

			userID, err := tokenGenerator.ValidateAccessToken(token)
			if err != nil {
				respondUnauthorized(w, "invalid or expired token")
				return
			}

			role, err := roles.Get(r.Context(), userID)
			if err != nil {
				logger.Error("failed to resolve role", zap.String("userId", userID), zap.Error(err))
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte(`{"error":"failed to resolve role"}`))
				return
			}

			if !role.AtLeast(minimum) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusForbidden)
				w.Write([]byte(`{"error":"insufficient permissions"}`))
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
