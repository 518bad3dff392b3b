package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/movieshelf/backend/internal/models"
)

// LinkService is the interface that wraps methods for external link business logic.
type LinkService interface {
	// Method GetAll returns links up to the given limit.
	GetAll(ctx context.Context, limit int) ([]models.Link, error)
	// Method GetByMovieID returns the link for the given movie, or ErrNotFound.
	GetByMovieID(ctx context.Context, movieID int) (*models.Link, error)
	// Method Create validates and stores a new link. A second link for the same movie returns ErrConflict.
	Create(ctx context.Context, req *models.LinkRequest) (*models.Link, error)
	// Method Update replaces the link for the given movie, or returns ErrNotFound.
	Update(ctx context.Context, movieID int, req *models.LinkRequest) (*models.Link, error)
	// Method Delete removes the link for the given movie, or returns ErrNotFound.
	Delete(ctx context.Context, movieID int) error
}

// LinkHandler handles external movie-link HTTP requests
type LinkHandler struct {
	BaseHandler
	linkService LinkService
}

// NewLinkHandler creates a new link handler
func NewLinkHandler(
	linkService LinkService,
	logger *zap.Logger,
) *LinkHandler {
	return &LinkHandler{
		BaseHandler: BaseHandler{Logger: logger},
		linkService: linkService,
	}
}

// RegisterRoutes registers all link handler routes.
// Note: This assumes the router is already scoped to /api/v1 and gated by
// the user role middleware.
func (h *LinkHandler) RegisterRoutes(r chi.Router) {
	r.Route("/links", func(r chi.Router) {
		r.Get("/", h.GetAll)
		r.Post("/", h.Create)
		r.Get("/{movieId}", h.GetByMovieID)
		r.Put("/{movieId}", h.Update)
		r.Delete("/{movieId}", h.Delete)
	})
}

// GetAll handles GET /links
// @Summary List links
// @Tags links
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Maximum number of rows" default(100)
// @Success 200 {array} models.Link "Links"
// @Router /links [get]
func (h *LinkHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	links, err := h.linkService.GetAll(r.Context(), parseLimitQuery(r))
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, links)
}

// GetByMovieID handles GET /links/{movieId}
// @Summary Get a movie's link
// @Tags links
// @Produce json
// @Security BearerAuth
// @Param movieId path int true "Movie ID"
// @Success 200 {object} models.Link "Link"
// @Failure 404 {object} map[string]string "No link for this movie"
// @Router /links/{movieId} [get]
func (h *LinkHandler) GetByMovieID(w http.ResponseWriter, r *http.Request) {
	movieID, err := parseIDParam(r, "movieId")
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid movie id")
		return
	}

	link, err := h.linkService.GetByMovieID(r.Context(), movieID)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, link)
}

// Create handles POST /links
// @Summary Create a link
// @Tags links
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.LinkRequest true "Link"
// @Success 201 {object} models.Link "Link created"
// @Failure 400 {object} map[string]string "Invalid request body, movie id or imdb id"
// @Failure 409 {object} map[string]string "Movie already has a link"
// @Router /links [post]
func (h *LinkHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.LinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	link, err := h.linkService.Create(r.Context(), &req)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusCreated, link)
}

// Update handles PUT /links/{movieId}
// @Summary Update a movie's link
// @Tags links
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param movieId path int true "Movie ID"
// @Param request body models.LinkRequest true "Link"
// @Success 200 {object} models.Link "Link updated"
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 404 {object} map[string]string "No link for this movie"
// @Router /links/{movieId} [put]
func (h *LinkHandler) Update(w http.ResponseWriter, r *http.Request) {
	movieID, err := parseIDParam(r, "movieId")
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid movie id")
		return
	}

	var req models.LinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	link, err := h.linkService.Update(r.Context(), movieID, &req)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, link)
}

// Delete handles DELETE /links/{movieId}
// @Summary Delete a movie's link
// @Tags links
// @Produce json
// @Security BearerAuth
// @Param movieId path int true "Movie ID"
// @Success 200 {object} map[string]string "Link deleted"
// @Failure 404 {object} map[string]string "No link for this movie"
// @Router /links/{movieId} [delete]
func (h *LinkHandler) Delete(w http.ResponseWriter, r *http.Request) {
	movieID, err := parseIDParam(r, "movieId")
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid movie id")
		return
	}

	if err := h.linkService.Delete(r.Context(), movieID); err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]string{"message": "link deleted"})
}
