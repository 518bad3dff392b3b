package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/movieshelf/backend/internal/models"
)

// mockRatingRepository is a mock implementation of RatingRepository
type mockRatingRepository struct {
	rating *models.Rating
	getErr error
}

func (m *mockRatingRepository) GetAll(ctx context.Context, limit int) ([]models.Rating, error) {
	return nil, nil
}

func (m *mockRatingRepository) GetByID(ctx context.Context, id int) (*models.Rating, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.rating, nil
}

func (m *mockRatingRepository) Create(ctx context.Context, rating *models.Rating) error {
	rating.ID = 1
	return nil
}

func (m *mockRatingRepository) Update(ctx context.Context, rating *models.Rating) error {
	return nil
}

func (m *mockRatingRepository) Delete(ctx context.Context, id int) error {
	return nil
}

func TestRatingService_Create(t *testing.T) {
	tests := []struct {
		name          string
		req           *models.RatingRequest
		expectedError error
	}{
		{
			name: "success",
			req:  &models.RatingRequest{MovieID: 1, Rating: 4.5, Timestamp: 1700000000},
		},
		{
			name: "minimum rating",
			req:  &models.RatingRequest{MovieID: 1, Rating: 0.5, Timestamp: 1700000000},
		},
		{
			name: "maximum rating",
			req:  &models.RatingRequest{MovieID: 1, Rating: 5.0, Timestamp: 1700000000},
		},
		{
			name:          "rating below range",
			req:           &models.RatingRequest{MovieID: 1, Rating: 0.0},
			expectedError: models.ErrValidation,
		},
		{
			name:          "rating above range",
			req:           &models.RatingRequest{MovieID: 1, Rating: 5.5},
			expectedError: models.ErrValidation,
		},
		{
			name:          "missing movie id",
			req:           &models.RatingRequest{Rating: 4.0},
			expectedError: models.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewRatingService(&mockRatingRepository{})

			rating, err := svc.Create(context.Background(), 42, tt.req)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, rating)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, 42, rating.UserID)
			assert.Equal(t, tt.req.Rating, rating.Rating)
			assert.Equal(t, tt.req.Timestamp, rating.Timestamp)
		})
	}
}

func TestRatingService_Create_DefaultsTimestamp(t *testing.T) {
	svc := NewRatingService(&mockRatingRepository{})

	before := time.Now().Unix()
	rating, err := svc.Create(context.Background(), 42, &models.RatingRequest{MovieID: 1, Rating: 3.0})
	after := time.Now().Unix()

	require.NoError(t, err)
	assert.GreaterOrEqual(t, rating.Timestamp, before)
	assert.LessOrEqual(t, rating.Timestamp, after)
}

func TestRatingService_Update_KeepsOriginalAuthor(t *testing.T) {
	repo := &mockRatingRepository{rating: &models.Rating{
		ID:        7,
		UserID:    42,
		MovieID:   1,
		Rating:    2.0,
		Timestamp: 1600000000,
	}}
	svc := NewRatingService(repo)

	rating, err := svc.Update(context.Background(), 7, &models.RatingRequest{
		MovieID:   1,
		Rating:    4.0,
		Timestamp: 1700000000,
	})

	require.NoError(t, err)
	assert.Equal(t, 42, rating.UserID)
	assert.Equal(t, 4.0, rating.Rating)
}

func TestRatingService_Update_NotFound(t *testing.T) {
	svc := NewRatingService(&mockRatingRepository{getErr: models.ErrNotFound})

	rating, err := svc.Update(context.Background(), 9999, &models.RatingRequest{MovieID: 1, Rating: 4.0})

	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.Nil(t, rating)
}
