package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"github.com/movieshelf/backend/internal/models"
)

// enqueueTimeout bounds how long a submit may wait on an unavailable broker
const enqueueTimeout = 5 * time.Second

// analysisService is the image-analysis job producer. It only hands the job
// to the broker; the worker never reports a result back.
type analysisService struct {
	asynqClient *asynq.Client
	logger      *zap.Logger
}

// NewAnalysisService creates a new analysis service
func NewAnalysisService(asynqClient *asynq.Client, logger *zap.Logger) *analysisService {
	return &analysisService{
		asynqClient: asynqClient,
		logger:      logger,
	}
}

// Submit publishes an image-analysis job for the given user. The enqueue is
// bounded by a timeout and a broker failure is returned to the caller, never
// silently dropped. MaxRetry is zero: a failed job is not re-run, redelivery
// happens only when a worker dies before acking.
func (s *analysisService) Submit(ctx context.Context, imageURL string, userID int) error {
	if err := validateImageURL(imageURL); err != nil {
		return err
	}

	payload, err := json.Marshal(models.ImageAnalysisPayload{
		URL:    imageURL,
		UserID: userID,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal analysis payload: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, enqueueTimeout)
	defer cancel()

	task := asynq.NewTask(models.TaskTypeImageAnalysis, payload)
	info, err := s.asynqClient.EnqueueContext(ctx, task,
		asynq.Queue(models.QueueImageAnalysis),
		asynq.MaxRetry(0),
	)
	if err != nil {
		s.logger.Error("failed to enqueue analysis job", zap.String("url", imageURL), zap.Error(err))
		return fmt.Errorf("failed to enqueue analysis job: %w", err)
	}

	s.logger.Info("analysis job enqueued",
		zap.String("task_id", info.ID),
		zap.String("url", imageURL),
		zap.Int("user_id", userID),
	)
	return nil
}

// validateImageURL accepts absolute http(s) URLs only
func validateImageURL(imageURL string) error {
	if imageURL == "" {
		return fmt.Errorf("%w: url is required", models.ErrValidation)
	}

	u, err := url.Parse(imageURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("%w: url must be an absolute http(s) URL", models.ErrValidation)
	}

	return nil
}
