package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/movieshelf/backend/internal/middleware"
	"github.com/movieshelf/backend/internal/models"
)

// mockAuthService is a mock implementation of AuthService
type mockAuthService struct {
	user        *models.User
	token       string
	registerErr error
	loginErr    error
}

func (m *mockAuthService) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	if m.registerErr != nil {
		return nil, m.registerErr
	}
	return m.user, nil
}

func (m *mockAuthService) Login(ctx context.Context, req *models.LoginRequest) (string, error) {
	if m.loginErr != nil {
		return "", m.loginErr
	}
	return m.token, nil
}

func TestAuthHandler_Register(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		svc            *mockAuthService
		expectedStatus int
	}{
		{
			name: "success",
			body: `{"username":"alice","password":"secret123"}`,
			svc: &mockAuthService{user: &models.User{
				ID:       1,
				Username: "alice",
				Role:     models.RoleUser,
				IsActive: true,
			}},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "invalid json",
			body:           `{"username":`,
			svc:            &mockAuthService{},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "validation failure",
			body:           `{"username":"ab","password":"secret123"}`,
			svc:            &mockAuthService{registerErr: models.ErrValidation},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "username taken",
			body:           `{"username":"alice","password":"secret123"}`,
			svc:            &mockAuthService{registerErr: models.ErrUserExists},
			expectedStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewAuthHandler(tt.svc, zap.NewNop())

			req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewBufferString(tt.body))
			rec := httptest.NewRecorder()

			h.Register(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)

			if tt.expectedStatus == http.StatusCreated {
				var user models.User
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&user))
				assert.Equal(t, "alice", user.Username)
				// the password hash must never be serialized
				assert.NotContains(t, rec.Body.String(), "password")
			}
		})
	}
}

func TestAuthHandler_Login(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		svc            *mockAuthService
		expectedStatus int
	}{
		{
			name:           "success",
			body:           `{"username":"alice","password":"secret123"}`,
			svc:            &mockAuthService{token: "signed.jwt.token"},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "invalid json",
			body:           `not json`,
			svc:            &mockAuthService{},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "bad credentials",
			body:           `{"username":"alice","password":"wrong"}`,
			svc:            &mockAuthService{loginErr: models.ErrInvalidCredentials},
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewAuthHandler(tt.svc, zap.NewNop())

			req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewBufferString(tt.body))
			rec := httptest.NewRecorder()

			h.Login(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)

			if tt.expectedStatus == http.StatusOK {
				var resp models.TokenResponse
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
				assert.Equal(t, "signed.jwt.token", resp.AccessToken)
				assert.Equal(t, "bearer", resp.TokenType)
			}
		})
	}
}

func TestAuthHandler_Me(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{}, zap.NewNop())

	user := &models.User{ID: 1, Username: "alice", Role: models.RoleUser, IsActive: true}
	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req = req.WithContext(middleware.WithUser(req.Context(), user, models.RoleUser))
	rec := httptest.NewRecorder()

	h.Me(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var got models.User
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, "alice", got.Username)
}

func TestAuthHandler_Me_NoAuthContext(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{}, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	rec := httptest.NewRecorder()

	h.Me(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
