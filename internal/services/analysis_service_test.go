package services

import (
	"context"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/movieshelf/backend/internal/models"
)

// Note: asynq.Client is a concrete struct, so we can't easily mock it.
// The enqueue path is covered by integration tests against a real Redis;
// unit tests cover the validation that runs before any broker contact.

func TestNewAnalysisService(t *testing.T) {
	asynqClient := (*asynq.Client)(nil) // Not used in constructor test

	svc := NewAnalysisService(asynqClient, zap.NewNop())

	assert.NotNil(t, svc)
}

func TestAnalysisService_Submit_Validation(t *testing.T) {
	tests := []struct {
		name string
		url  string
	}{
		{
			name: "empty url",
			url:  "",
		},
		{
			name: "no scheme",
			url:  "example.com/photo.jpg",
		},
		{
			name: "unsupported scheme",
			url:  "ftp://example.com/photo.jpg",
		},
		{
			name: "scheme without host",
			url:  "http://",
		},
		{
			name: "not a url",
			url:  "://///",
		},
	}

	// A nil client is safe here because validation fails before the enqueue
	svc := NewAnalysisService(nil, zap.NewNop())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.Submit(context.Background(), tt.url, 42)

			assert.ErrorIs(t, err, models.ErrValidation)
		})
	}
}

func TestValidateImageURL_Accepted(t *testing.T) {
	tests := []struct {
		name string
		url  string
	}{
		{
			name: "http",
			url:  "http://example.com/photo.jpg",
		},
		{
			name: "https with query",
			url:  "https://cdn.example.com/photo.jpg?size=large",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NoError(t, validateImageURL(tt.url))
		})
	}
}
