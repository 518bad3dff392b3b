package main

import (
	"context"
	"encoding/json"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"github.com/movieshelf/backend/internal/detect"
	"github.com/movieshelf/backend/internal/models"
)

// fetchTimeout bounds the image download
const fetchTimeout = 10 * time.Second

// Worker handles image analysis jobs
type Worker struct {
	logger     *zap.Logger
	httpClient *http.Client
	detector   detect.Detector
}

// NewWorker creates a new worker instance
func NewWorker(logger *zap.Logger, detector detect.Detector) *Worker {
	return &Worker{
		logger: logger,
		httpClient: &http.Client{
			Timeout: fetchTimeout,
		},
		detector: detector,
	}
}

// HandleImageAnalysis downloads the image and logs how many person-like
// figures the detector found. An unreachable URL or an undecodable body is
// reported as zero people and acked: the job is fire-and-forget, so there
// is nobody to retry for. Only a malformed payload is returned as an error.
func (w *Worker) HandleImageAnalysis(ctx context.Context, t *asynq.Task) error {
	var payload models.ImageAnalysisPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal analysis payload: %w", err)
	}

	count := w.analyze(ctx, payload.URL)

	w.logger.Info("Image analysis completed",
		zap.String("url", payload.URL),
		zap.Int("user_id", payload.UserID),
		zap.Int("persons", count),
	)
	return nil
}

// analyze fetches and decodes the image, returning zero on any failure
func (w *Worker) analyze(ctx context.Context, url string) int {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		w.logger.Warn("Invalid image URL", zap.String("url", url), zap.Error(err))
		return 0
	}

	resp, err := w.httpClient.Do(req)
	if err != nil {
		w.logger.Warn("Failed to fetch image", zap.String("url", url), zap.Error(err))
		return 0
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		w.logger.Warn("Unexpected status fetching image",
			zap.String("url", url),
			zap.Int("status", resp.StatusCode),
		)
		return 0
	}

	img, _, err := image.Decode(resp.Body)
	if err != nil {
		w.logger.Warn("Failed to decode image", zap.String("url", url), zap.Error(err))
		return 0
	}

	return w.detector.Detect(img)
}
