package middleware

import (
	"net/http"

	"github.com/movieshelf/backend/internal/models"
)

// RequireRole gates a route on the role claim of the presented token.
// The check is exact-match, not hierarchical: an admin token is rejected
// from a user-gated route. Must be mounted after AuthMiddleware.
func RequireRole(required models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := GetTokenRole(r.Context())
			if !ok {
				respondUnauthorized(w, "authentication required")
				return
			}

			if role != required {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusForbidden)
				w.Write([]byte(`{"error":"insufficient permissions"}`))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
