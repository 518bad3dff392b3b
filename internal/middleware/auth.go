package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/movieshelf/backend/internal/auth"
	"github.com/movieshelf/backend/internal/models"
)

const (
	userKey      contextKey = "user"
	tokenRoleKey contextKey = "tokenRole"
)

// UserStore is the credential store lookup the middleware needs
type UserStore interface {
	// Method GetByUsername retrieves a user by username.
	//
	// If user with such username does not exist, models.ErrNotFound will be returned together with "nil" value.
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

// AuthMiddleware validates the bearer token and resolves it to a stored
// user. Unknown, inactive and token-failure cases are all 401; the token's
// role claim is kept alongside the user for exact-match role gates.
func AuthMiddleware(tokenGenerator *auth.TokenGenerator, users UserStore, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearerToken(r)
			if token == "" {
				respondUnauthorized(w, "authentication required")
				return
			}

			username, role, err := tokenGenerator.Validate(token)
			if err != nil {
				respondUnauthorized(w, "invalid or expired token")
				return
			}

			user, err := users.GetByUsername(r.Context(), username)
			if err != nil {
				if !errors.Is(err, models.ErrNotFound) {
					logger.Error("failed to look up token subject", zap.String("username", username), zap.Error(err))
				}
				respondUnauthorized(w, "invalid or expired token")
				return
			}

			if !user.IsActive {
				respondUnauthorized(w, "invalid or expired token")
				return
			}

			ctx := WithUser(r.Context(), user, role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractBearerToken pulls the token from the Authorization header.
// Expected format: "Bearer <token>"
func extractBearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) == 2 && strings.ToLower(parts[0]) == "bearer" {
		return parts[1]
	}
	return ""
}

func respondUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"error":"` + message + `"}`))
}

// WithUser stores the authenticated user and the token's role claim in the
// context. Exposed for handler tests.
func WithUser(ctx context.Context, user *models.User, tokenRole models.Role) context.Context {
	ctx = context.WithValue(ctx, userKey, user)
	return context.WithValue(ctx, tokenRoleKey, tokenRole)
}

// GetUser retrieves the authenticated user from context
func GetUser(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(userKey).(*models.User)
	return user, ok
}

// GetTokenRole retrieves the role claim of the presented token from context
func GetTokenRole(ctx context.Context) (models.Role, bool) {
	role, ok := ctx.Value(tokenRoleKey).(models.Role)
	return role, ok
}
