package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/movieshelf/backend/internal/middleware"
	"github.com/movieshelf/backend/internal/models"
)

// AnalysisService is the interface that wraps methods for dispatching image-analysis jobs.
type AnalysisService interface {
	// Method Submit validates the image URL and publishes a person-counting job
	// attributed to the given user.
	//
	// The job is fire-and-forget: acceptance means queued, not analyzed, and no
	// result is ever delivered back. A broker failure is returned as an error.
	Submit(ctx context.Context, imageURL string, userID int) error
}

// AnalysisHandler handles image-analysis HTTP requests
type AnalysisHandler struct {
	BaseHandler
	analysisService AnalysisService
}

// NewAnalysisHandler creates a new analysis handler
func NewAnalysisHandler(
	analysisService AnalysisService,
	logger *zap.Logger,
) *AnalysisHandler {
	return &AnalysisHandler{
		BaseHandler:     BaseHandler{Logger: logger},
		analysisService: analysisService,
	}
}

// RegisterRoutes registers all analysis handler routes.
// Note: This assumes the router is already scoped to /api/v1 and gated by
// the user role middleware.
func (h *AnalysisHandler) RegisterRoutes(r chi.Router) {
	r.Post("/analysis", h.Submit)
}

// Submit handles POST /analysis
// @Summary Submit an image for person counting
// @Description Queue an image URL for asynchronous analysis. 202 means the job was queued; the result is only ever logged by the worker.
// @Tags analysis
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.AnalysisRequest true "Image URL"
// @Success 202 {object} map[string]string "Job accepted"
// @Failure 400 {object} map[string]string "Invalid request body or URL"
// @Failure 401 {object} map[string]string "Missing or invalid token"
// @Failure 503 {object} map[string]string "Queue unavailable"
// @Router /analysis [post]
func (h *AnalysisHandler) Submit(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req models.AnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.analysisService.Submit(r.Context(), req.URL, user.ID); err != nil {
		if errors.Is(err, models.ErrValidation) {
			h.RespondError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.Logger.Error("failed to queue analysis job", zap.Error(err))
		h.RespondError(w, http.StatusServiceUnavailable, "analysis queue unavailable")
		return
	}

	h.RespondJSON(w, http.StatusAccepted, map[string]string{"message": "analysis queued"})
}
