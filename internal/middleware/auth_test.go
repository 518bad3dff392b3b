package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/movieshelf/backend/internal/auth"
	"github.com/movieshelf/backend/internal/models"
)

// mockUserStore is a mock implementation of UserStore
type mockUserStore struct {
	user *models.User
	err  error
}

func (m *mockUserStore) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.user, nil
}

func activeUser(role models.Role) *models.User {
	return &models.User{
		ID:       1,
		Username: "alice",
		Role:     role,
		IsActive: true,
	}
}

// okHandler records whether the request passed the middleware chain
func okHandler(called *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthMiddleware(t *testing.T) {
	tg := auth.NewTokenGenerator("test-secret", time.Hour)
	validToken, err := tg.Generate("alice", models.RoleUser)
	require.NoError(t, err)

	expiredTG := auth.NewTokenGenerator("test-secret", -time.Minute)
	expiredToken, err := expiredTG.Generate("alice", models.RoleUser)
	require.NoError(t, err)

	tests := []struct {
		name           string
		authHeader     string
		store          *mockUserStore
		expectedStatus int
		expectNext     bool
	}{
		{
			name:           "valid token and active user",
			authHeader:     "Bearer " + validToken,
			store:          &mockUserStore{user: activeUser(models.RoleUser)},
			expectedStatus: http.StatusOK,
			expectNext:     true,
		},
		{
			name:           "missing header",
			authHeader:     "",
			store:          &mockUserStore{user: activeUser(models.RoleUser)},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "malformed header",
			authHeader:     validToken,
			store:          &mockUserStore{user: activeUser(models.RoleUser)},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "expired token",
			authHeader:     "Bearer " + expiredToken,
			store:          &mockUserStore{user: activeUser(models.RoleUser)},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "garbage token",
			authHeader:     "Bearer not-a-token",
			store:          &mockUserStore{user: activeUser(models.RoleUser)},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "user deleted after token issued",
			authHeader:     "Bearer " + validToken,
			store:          &mockUserStore{err: models.ErrNotFound},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "store failure",
			authHeader:     "Bearer " + validToken,
			store:          &mockUserStore{err: errors.New("connection refused")},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:       "deactivated user",
			authHeader: "Bearer " + validToken,
			store: &mockUserStore{user: &models.User{
				ID:       1,
				Username: "alice",
				Role:     models.RoleUser,
				IsActive: false,
			}},
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			mw := AuthMiddleware(tg, tt.store, zap.NewNop())
			handler := mw(okHandler(&called))

			req := httptest.NewRequest(http.MethodGet, "/movies", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Equal(t, tt.expectNext, called)
		})
	}
}

func TestAuthMiddleware_CaseInsensitiveBearer(t *testing.T) {
	tg := auth.NewTokenGenerator("test-secret", time.Hour)
	token, err := tg.Generate("alice", models.RoleUser)
	require.NoError(t, err)

	called := false
	mw := AuthMiddleware(tg, &mockUserStore{user: activeUser(models.RoleUser)}, zap.NewNop())
	handler := mw(okHandler(&called))

	req := httptest.NewRequest(http.MethodGet, "/movies", nil)
	req.Header.Set("Authorization", "bearer "+token)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, called)
}

func TestAuthMiddleware_PutsUserInContext(t *testing.T) {
	tg := auth.NewTokenGenerator("test-secret", time.Hour)
	token, err := tg.Generate("alice", models.RoleAdmin)
	require.NoError(t, err)

	stored := activeUser(models.RoleAdmin)
	mw := AuthMiddleware(tg, &mockUserStore{user: stored}, zap.NewNop())

	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := GetUser(r.Context())
		require.True(t, ok)
		assert.Equal(t, stored, user)

		role, ok := GetTokenRole(r.Context())
		require.True(t, ok)
		assert.Equal(t, models.RoleAdmin, role)

		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name           string
		required       models.Role
		tokenRole      models.Role
		expectedStatus int
		expectNext     bool
	}{
		{
			name:           "user token on user route",
			required:       models.RoleUser,
			tokenRole:      models.RoleUser,
			expectedStatus: http.StatusOK,
			expectNext:     true,
		},
		{
			name:           "admin token on admin route",
			required:       models.RoleAdmin,
			tokenRole:      models.RoleAdmin,
			expectedStatus: http.StatusOK,
			expectNext:     true,
		},
		{
			name:           "user token on admin route",
			required:       models.RoleAdmin,
			tokenRole:      models.RoleUser,
			expectedStatus: http.StatusForbidden,
		},
		{
			// exact match: admin does not inherit user access
			name:           "admin token on user route",
			required:       models.RoleUser,
			tokenRole:      models.RoleAdmin,
			expectedStatus: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			handler := RequireRole(tt.required)(okHandler(&called))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			ctx := WithUser(req.Context(), activeUser(tt.tokenRole), tt.tokenRole)
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req.WithContext(ctx))

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Equal(t, tt.expectNext, called)
		})
	}
}

func TestRequireRole_NoAuthContext(t *testing.T) {
	called := false
	handler := RequireRole(models.RoleUser)(okHandler(&called))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
}
