package services

import (
	"context"
	"fmt"
	"time"

	"github.com/movieshelf/backend/internal/models"
)

const (
	minRating = 0.5
	maxRating = 5.0
)

// RatingRepository is the interface that wraps methods for ratings table data access
type RatingRepository interface {
	// Method GetAll retrieves ratings ordered by id. A limit <= 0 returns everything.
	GetAll(ctx context.Context, limit int) ([]models.Rating, error)
	// Method GetByID retrieves a rating by its id.
	//
	// If no rating with such id exists, models.ErrNotFound will be returned together with "nil" value.
	GetByID(ctx context.Context, id int) (*models.Rating, error)
	// Method Create inserts a new rating and fills in the generated id.
	Create(ctx context.Context, rating *models.Rating) error
	// Method Update replaces a rating's value and timestamp.
	Update(ctx context.Context, rating *models.Rating) error
	// Method Delete removes a rating by id.
	Delete(ctx context.Context, id int) error
}

// ratingService implements RatingService
type ratingService struct {
	repo RatingRepository
}

// NewRatingService creates a new rating service
func NewRatingService(repo RatingRepository) *ratingService {
	return &ratingService{
		repo: repo,
	}
}

// GetAll retrieves ratings, optionally limited
func (s *ratingService) GetAll(ctx context.Context, limit int) ([]models.Rating, error) {
	return s.repo.GetAll(ctx, limit)
}

// GetByID retrieves one rating
func (s *ratingService) GetByID(ctx context.Context, id int) (*models.Rating, error) {
	return s.repo.GetByID(ctx, id)
}

// Create validates and stores a rating on behalf of the given user
func (s *ratingService) Create(ctx context.Context, userID int, req *models.RatingRequest) (*models.Rating, error) {
	if err := validateRatingRequest(req); err != nil {
		return nil, err
	}

	rating := &models.Rating{
		UserID:    userID,
		MovieID:   req.MovieID,
		Rating:    req.Rating,
		Timestamp: req.Timestamp,
	}
	if rating.Timestamp == 0 {
		rating.Timestamp = time.Now().Unix()
	}

	if err := s.repo.Create(ctx, rating); err != nil {
		return nil, err
	}

	return rating, nil
}

// Update validates and replaces an existing rating
func (s *ratingService) Update(ctx context.Context, id int, req *models.RatingRequest) (*models.Rating, error) {
	if err := validateRatingRequest(req); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	rating := &models.Rating{
		ID:        id,
		UserID:    existing.UserID,
		MovieID:   req.MovieID,
		Rating:    req.Rating,
		Timestamp: req.Timestamp,
	}
	if rating.Timestamp == 0 {
		rating.Timestamp = time.Now().Unix()
	}

	if err := s.repo.Update(ctx, rating); err != nil {
		return nil, err
	}

	return rating, nil
}

// Delete removes a rating
func (s *ratingService) Delete(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}

// validateRatingRequest checks the create/update payload
func validateRatingRequest(req *models.RatingRequest) error {
	if req.MovieID <= 0 {
		return fmt.Errorf("%w: movieId is required", models.ErrValidation)
	}
	if req.Rating < minRating || req.Rating > maxRating {
		return fmt.Errorf("%w: rating must be between %.1f and %.1f", models.ErrValidation, minRating, maxRating)
	}
	return nil
}
