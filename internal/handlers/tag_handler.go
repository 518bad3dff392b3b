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

// TagService is the interface that wraps methods for tag business logic.
type TagService interface {
	// Method GetAll returns tags up to the given limit.
	GetAll(ctx context.Context, limit int) ([]models.Tag, error)
	// Method GetByID returns the tag with the given id, or ErrNotFound.
	GetByID(ctx context.Context, id int) (*models.Tag, error)
	// Method Create validates and stores a tag on behalf of the authenticated user.
	//
	// "userID" is taken from the request's auth context, never from the payload.
	Create(ctx context.Context, userID int, req *models.TagRequest) (*models.Tag, error)
	// Method Update replaces the tag's text, movie and timestamp while keeping its original author.
	Update(ctx context.Context, id int, req *models.TagRequest) (*models.Tag, error)
	// Method Delete removes the tag with the given id, or returns ErrNotFound.
	Delete(ctx context.Context, id int) error
}

// TagHandler handles tag HTTP requests
type TagHandler struct {
	BaseHandler
	tagService TagService
}

// NewTagHandler creates a new tag handler
func NewTagHandler(
	tagService TagService,
	logger *zap.Logger,
) *TagHandler {
	return &TagHandler{
		BaseHandler: BaseHandler{Logger: logger},
		tagService:  tagService,
	}
}

// RegisterRoutes registers all tag handler routes.
// Note: This assumes the router is already scoped to /api/v1 and gated by
// the user role middleware.
func (h *TagHandler) RegisterRoutes(r chi.Router) {
	r.Route("/tags", func(r chi.Router) {
		r.Get("/", h.GetAll)
		r.Post("/", h.Create)
		r.Get("/{id}", h.GetByID)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}

// GetAll handles GET /tags
// @Summary List tags
// @Tags tags
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Maximum number of rows" default(100)
// @Success 200 {array} models.Tag "Tags"
// @Router /tags [get]
func (h *TagHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	tags, err := h.tagService.GetAll(r.Context(), parseLimitQuery(r))
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, tags)
}

// GetByID handles GET /tags/{id}
// @Summary Get a tag
// @Tags tags
// @Produce json
// @Security BearerAuth
// @Param id path int true "Tag ID"
// @Success 200 {object} models.Tag "Tag"
// @Failure 404 {object} map[string]string "No such tag"
// @Router /tags/{id} [get]
func (h *TagHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid tag id")
		return
	}

	tag, err := h.tagService.GetByID(r.Context(), id)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, tag)
}

// Create handles POST /tags
// @Summary Create a tag
// @Description Store a tag attributed to the authenticated user
// @Tags tags
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.TagRequest true "Tag"
// @Success 201 {object} models.Tag "Tag created"
// @Failure 400 {object} map[string]string "Invalid request body, movie id or empty tag"
// @Router /tags [post]
func (h *TagHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req models.TagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	tag, err := h.tagService.Create(r.Context(), user.ID, &req)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusCreated, tag)
}

// Update handles PUT /tags/{id}
// @Summary Update a tag
// @Tags tags
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Tag ID"
// @Param request body models.TagRequest true "Tag"
// @Success 200 {object} models.Tag "Tag updated"
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 404 {object} map[string]string "No such tag"
// @Router /tags/{id} [put]
func (h *TagHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid tag id")
		return
	}

	var req models.TagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	tag, err := h.tagService.Update(r.Context(), id, &req)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, tag)
}

// Delete handles DELETE /tags/{id}
// @Summary Delete a tag
// @Tags tags
// @Produce json
// @Security BearerAuth
// @Param id path int true "Tag ID"
// @Success 200 {object} map[string]string "Tag deleted"
// @Failure 404 {object} map[string]string "No such tag"
// @Router /tags/{id} [delete]
func (h *TagHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid tag id")
		return
	}

	if err := h.tagService.Delete(r.Context(), id); err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]string{"message": "tag deleted"})
}
