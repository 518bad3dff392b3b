package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/movieshelf/backend/internal/models"
)

// mockMovieService is a mock implementation of MovieService
type mockMovieService struct {
	movies    []models.Movie
	movie     *models.Movie
	err       error
	lastLimit int
}

func (m *mockMovieService) GetAll(ctx context.Context, limit int) ([]models.Movie, error) {
	m.lastLimit = limit
	if m.err != nil {
		return nil, m.err
	}
	return m.movies, nil
}

func (m *mockMovieService) GetByID(ctx context.Context, movieID int) (*models.Movie, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.movie, nil
}

func (m *mockMovieService) Create(ctx context.Context, req *models.MovieRequest) (*models.Movie, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.movie, nil
}

func (m *mockMovieService) Update(ctx context.Context, movieID int, req *models.MovieRequest) (*models.Movie, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.movie, nil
}

func (m *mockMovieService) Delete(ctx context.Context, movieID int) error {
	return m.err
}

// newMovieTestRouter mounts the handler on a chi router so URL parameters resolve
func newMovieTestRouter(svc *mockMovieService) chi.Router {
	h := NewMovieHandler(svc, zap.NewNop())
	r := chi.NewRouter()
	h.RegisterRoutes(r)
	return r
}

func TestMovieHandler_GetAll(t *testing.T) {
	tests := []struct {
		name          string
		target        string
		expectedLimit int
	}{
		{
			name:          "default limit",
			target:        "/movies",
			expectedLimit: 100,
		},
		{
			name:          "explicit limit",
			target:        "/movies?limit=5",
			expectedLimit: 5,
		},
		{
			name:          "garbage limit falls back to default",
			target:        "/movies?limit=abc",
			expectedLimit: 100,
		},
		{
			name:          "negative limit falls back to default",
			target:        "/movies?limit=-3",
			expectedLimit: 100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockMovieService{movies: []models.Movie{{MovieID: 1, Title: "Toy Story (1995)"}}}
			r := newMovieTestRouter(svc)

			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			rec := httptest.NewRecorder()

			r.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.expectedLimit, svc.lastLimit)
		})
	}
}

func TestMovieHandler_GetByID(t *testing.T) {
	tests := []struct {
		name           string
		target         string
		svc            *mockMovieService
		expectedStatus int
	}{
		{
			name:           "success",
			target:         "/movies/1",
			svc:            &mockMovieService{movie: &models.Movie{MovieID: 1, Title: "Toy Story (1995)"}},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "not found",
			target:         "/movies/9999",
			svc:            &mockMovieService{err: models.ErrNotFound},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "non-numeric id",
			target:         "/movies/abc",
			svc:            &mockMovieService{},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newMovieTestRouter(tt.svc)

			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			rec := httptest.NewRecorder()

			r.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
		})
	}
}

func TestMovieHandler_Create(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		svc            *mockMovieService
		expectedStatus int
	}{
		{
			name:           "success",
			body:           `{"title":"Heat (1995)","genres":"Action|Crime|Thriller"}`,
			svc:            &mockMovieService{movie: &models.Movie{MovieID: 6, Title: "Heat (1995)"}},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "invalid json",
			body:           `{"title":`,
			svc:            &mockMovieService{},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "validation failure",
			body:           `{"title":""}`,
			svc:            &mockMovieService{err: models.ErrValidation},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "service failure",
			body:           `{"title":"Heat (1995)"}`,
			svc:            &mockMovieService{err: errors.New("database down")},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newMovieTestRouter(tt.svc)

			req := httptest.NewRequest(http.MethodPost, "/movies", bytes.NewBufferString(tt.body))
			rec := httptest.NewRecorder()

			r.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)

			if tt.expectedStatus == http.StatusCreated {
				var movie models.Movie
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&movie))
				assert.Equal(t, 6, movie.MovieID)
			}
		})
	}
}

func TestMovieHandler_Update_NotFound(t *testing.T) {
	r := newMovieTestRouter(&mockMovieService{err: models.ErrNotFound})

	req := httptest.NewRequest(http.MethodPut, "/movies/9999", bytes.NewBufferString(`{"title":"Heat (1995)"}`))
	rec := httptest.NewRecorder()

	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMovieHandler_Delete(t *testing.T) {
	tests := []struct {
		name           string
		target         string
		svc            *mockMovieService
		expectedStatus int
	}{
		{
			name:           "success",
			target:         "/movies/6",
			svc:            &mockMovieService{},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "not found",
			target:         "/movies/9999",
			svc:            &mockMovieService{err: models.ErrNotFound},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newMovieTestRouter(tt.svc)

			req := httptest.NewRequest(http.MethodDelete, tt.target, nil)
			rec := httptest.NewRecorder()

			r.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
		})
	}
}
