package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/movieshelf/backend/internal/models"
)

// MovieRepository is the interface that wraps methods for movies table data access
type MovieRepository interface {
	// Method GetAll retrieves movies ordered by id. A limit <= 0 returns everything.
	GetAll(ctx context.Context, limit int) ([]models.Movie, error)
	// Method GetByID retrieves a movie by its id.
	//
	// If no movie with such id exists, models.ErrNotFound will be returned together with "nil" value.
	GetByID(ctx context.Context, movieID int) (*models.Movie, error)
	// Method Create inserts a new movie and fills in the generated id.
	Create(ctx context.Context, movie *models.Movie) error
	// Method Update replaces a movie's title and genres.
	Update(ctx context.Context, movie *models.Movie) error
	// Method Delete removes a movie by id.
	//
	// If no movie with such id exists, models.ErrNotFound will be returned.
	Delete(ctx context.Context, movieID int) error
}

// movieService implements MovieService
type movieService struct {
	repo MovieRepository
}

// NewMovieService creates a new movie service
func NewMovieService(repo MovieRepository) *movieService {
	return &movieService{
		repo: repo,
	}
}

// GetAll retrieves movies, optionally limited
func (s *movieService) GetAll(ctx context.Context, limit int) ([]models.Movie, error) {
	return s.repo.GetAll(ctx, limit)
}

// GetByID retrieves one movie
func (s *movieService) GetByID(ctx context.Context, movieID int) (*models.Movie, error) {
	return s.repo.GetByID(ctx, movieID)
}

// Create validates and stores a new movie
func (s *movieService) Create(ctx context.Context, req *models.MovieRequest) (*models.Movie, error) {
	if err := validateMovieRequest(req); err != nil {
		return nil, err
	}

	movie := &models.Movie{
		Title:  strings.TrimSpace(req.Title),
		Genres: req.Genres,
	}

	if err := s.repo.Create(ctx, movie); err != nil {
		return nil, err
	}

	return movie, nil
}

// Update validates and replaces an existing movie
func (s *movieService) Update(ctx context.Context, movieID int, req *models.MovieRequest) (*models.Movie, error) {
	if err := validateMovieRequest(req); err != nil {
		return nil, err
	}

	// Existence check so an update of a missing movie is a 404, not a no-op
	if _, err := s.repo.GetByID(ctx, movieID); err != nil {
		return nil, err
	}

	movie := &models.Movie{
		MovieID: movieID,
		Title:   strings.TrimSpace(req.Title),
		Genres:  req.Genres,
	}

	if err := s.repo.Update(ctx, movie); err != nil {
		return nil, err
	}

	return movie, nil
}

// Delete removes a movie
func (s *movieService) Delete(ctx context.Context, movieID int) error {
	return s.repo.Delete(ctx, movieID)
}

// validateMovieRequest checks the create/update payload
func validateMovieRequest(req *models.MovieRequest) error {
	if strings.TrimSpace(req.Title) == "" {
		return fmt.Errorf("%w: title is required", models.ErrValidation)
	}
	return nil
}
