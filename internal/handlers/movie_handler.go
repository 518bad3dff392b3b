package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/movieshelf/backend/internal/models"
)

// MovieService is the interface that wraps methods for movie business logic.
type MovieService interface {
	// Method GetAll returns movies up to the given limit.
	GetAll(ctx context.Context, limit int) ([]models.Movie, error)
	// Method GetByID returns the movie with the given id, or ErrNotFound.
	GetByID(ctx context.Context, movieID int) (*models.Movie, error)
	// Method Create validates and stores a new movie and returns it with its generated id.
	Create(ctx context.Context, req *models.MovieRequest) (*models.Movie, error)
	// Method Update replaces the movie with the given id, or returns ErrNotFound.
	Update(ctx context.Context, movieID int, req *models.MovieRequest) (*models.Movie, error)
	// Method Delete removes the movie with the given id, or returns ErrNotFound.
	Delete(ctx context.Context, movieID int) error
}

// MovieHandler handles movie catalog HTTP requests
type MovieHandler struct {
	BaseHandler
	movieService MovieService
}

// NewMovieHandler creates a new movie handler
func NewMovieHandler(
	movieService MovieService,
	logger *zap.Logger,
) *MovieHandler {
	return &MovieHandler{
		BaseHandler:  BaseHandler{Logger: logger},
		movieService: movieService,
	}
}

// RegisterRoutes registers all movie handler routes.
// Note: This assumes the router is already scoped to /api/v1 and gated by
// the user role middleware.
func (h *MovieHandler) RegisterRoutes(r chi.Router) {
	r.Route("/movies", func(r chi.Router) {
		r.Get("/", h.GetAll)
		r.Post("/", h.Create)
		r.Get("/{movieId}", h.GetByID)
		r.Put("/{movieId}", h.Update)
		r.Delete("/{movieId}", h.Delete)
	})
}

// GetAll handles GET /movies
// @Summary List movies
// @Description Return movies, newest first insertion order, capped by the limit query parameter (default 100)
// @Tags movies
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Maximum number of rows" default(100)
// @Success 200 {array} models.Movie "Movies"
// @Failure 401 {object} map[string]string "Missing or invalid token"
// @Router /movies [get]
func (h *MovieHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	movies, err := h.movieService.GetAll(r.Context(), parseLimitQuery(r))
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, movies)
}

// GetByID handles GET /movies/{movieId}
// @Summary Get a movie
// @Tags movies
// @Produce json
// @Security BearerAuth
// @Param movieId path int true "Movie ID"
// @Success 200 {object} models.Movie "Movie"
// @Failure 404 {object} map[string]string "No such movie"
// @Router /movies/{movieId} [get]
func (h *MovieHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	movieID, err := parseIDParam(r, "movieId")
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid movie id")
		return
	}

	movie, err := h.movieService.GetByID(r.Context(), movieID)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, movie)
}

// Create handles POST /movies
// @Summary Create a movie
// @Tags movies
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.MovieRequest true "Movie"
// @Success 201 {object} models.Movie "Movie created"
// @Failure 400 {object} map[string]string "Invalid request body or missing title"
// @Router /movies [post]
func (h *MovieHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.MovieRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	movie, err := h.movieService.Create(r.Context(), &req)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusCreated, movie)
}

// Update handles PUT /movies/{movieId}
// @Summary Update a movie
// @Tags movies
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param movieId path int true "Movie ID"
// @Param request body models.MovieRequest true "Movie"
// @Success 200 {object} models.Movie "Movie updated"
// @Failure 400 {object} map[string]string "Invalid request body or missing title"
// @Failure 404 {object} map[string]string "No such movie"
// @Router /movies/{movieId} [put]
func (h *MovieHandler) Update(w http.ResponseWriter, r *http.Request) {
	movieID, err := parseIDParam(r, "movieId")
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid movie id")
		return
	}

	var req models.MovieRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	movie, err := h.movieService.Update(r.Context(), movieID, &req)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, movie)
}

// Delete handles DELETE /movies/{movieId}
// @Summary Delete a movie
// @Tags movies
// @Produce json
// @Security BearerAuth
// @Param movieId path int true "Movie ID"
// @Success 200 {object} map[string]string "Movie deleted"
// @Failure 404 {object} map[string]string "No such movie"
// @Router /movies/{movieId} [delete]
func (h *MovieHandler) Delete(w http.ResponseWriter, r *http.Request) {
	movieID, err := parseIDParam(r, "movieId")
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid movie id")
		return
	}

	if err := h.movieService.Delete(r.Context(), movieID); err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]string{"message": "movie deleted"})
}
