package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/movieshelf/backend/internal/middleware"
	"github.com/movieshelf/backend/internal/models"
)

// RatingService is the interface that wraps methods for rating business logic.
type RatingService interface {
	// Method GetAll returns ratings up to the given limit.
	GetAll(ctx context.Context, limit int) ([]models.Rating, error)
	// Method GetByID returns the rating with the given id, or ErrNotFound.
	GetByID(ctx context.Context, id int) (*models.Rating, error)
	// Method Create validates and stores a rating on behalf of the authenticated user.
	//
	// "userID" is taken from the request's auth context, never from the payload.
	Create(ctx context.Context, userID int, req *models.RatingRequest) (*models.Rating, error)
	// Method Update replaces the rating's value, movie and timestamp while keeping its original author.
	Update(ctx context.Context, id int, req *models.RatingRequest) (*models.Rating, error)
	// Method Delete removes the rating with the given id, or returns ErrNotFound.
	Delete(ctx context.Context, id int) error
}

// RatingHandler handles rating HTTP requests
type RatingHandler struct {
	BaseHandler
	ratingService RatingService
}

// NewRatingHandler creates a new rating handler
func NewRatingHandler(
	ratingService RatingService,
	logger *zap.Logger,
) *RatingHandler {
	return &RatingHandler{
		BaseHandler:   BaseHandler{Logger: logger},
		ratingService: ratingService,
	}
}

// RegisterRoutes registers all rating handler routes.
// Note: This assumes the router is already scoped to /api/v1 and gated by
// the user role middleware.
func (h *RatingHandler) RegisterRoutes(r chi.Router) {
	r.Route("/ratings", func(r chi.Router) {
		r.Get("/", h.GetAll)
		r.Post("/", h.Create)
		r.Get("/{id}", h.GetByID)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}

// GetAll handles GET /ratings
// @Summary List ratings
// @Tags ratings
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Maximum number of rows" default(100)
// @Success 200 {array} models.Rating "Ratings"
// @Router /ratings [get]
func (h *RatingHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	ratings, err := h.ratingService.GetAll(r.Context(), parseLimitQuery(r))
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, ratings)
}

// GetByID handles GET /ratings/{id}
// @Summary Get a rating
// @Tags ratings
// @Produce json
// @Security BearerAuth
// @Param id path int true "Rating ID"
// @Success 200 {object} models.Rating "Rating"
// @Failure 404 {object} map[string]string "No such rating"
// @Router /ratings/{id} [get]
func (h *RatingHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid rating id")
		return
	}

	rating, err := h.ratingService.GetByID(r.Context(), id)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, rating)
}

// Create handles POST /ratings
// @Summary Create a rating
// @Description Store a rating attributed to the authenticated user
// @Tags ratings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.RatingRequest true "Rating"
// @Success 201 {object} models.Rating "Rating created"
// @Failure 400 {object} map[string]string "Invalid request body, movie id or rating value"
// @Router /ratings [post]
func (h *RatingHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req models.RatingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rating, err := h.ratingService.Create(r.Context(), user.ID, &req)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusCreated, rating)
}

// Update handles PUT /ratings/{id}
// @Summary Update a rating
// @Tags ratings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Rating ID"
// @Param request body models.RatingRequest true "Rating"
// @Success 200 {object} models.Rating "Rating updated"
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 404 {object} map[string]string "No such rating"
// @Router /ratings/{id} [put]
func (h *RatingHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid rating id")
		return
	}

	var req models.RatingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rating, err := h.ratingService.Update(r.Context(), id, &req)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, rating)
}

// Delete handles DELETE /ratings/{id}
// @Summary Delete a rating
// @Tags ratings
// @Produce json
// @Security BearerAuth
// @Param id path int true "Rating ID"
// @Success 200 {object} map[string]string "Rating deleted"
// @Failure 404 {object} map[string]string "No such rating"
// @Router /ratings/{id} [delete]
func (h *RatingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid rating id")
		return
	}

	if err := h.ratingService.Delete(r.Context(), id); err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]string{"message": "rating deleted"})
}
