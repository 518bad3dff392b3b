package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/movieshelf/backend/internal/models"
)

// LinkRepository is the interface that wraps methods for links table data access
type LinkRepository interface {
	// Method GetAll retrieves links ordered by movie id. A limit <= 0 returns everything.
	GetAll(ctx context.Context, limit int) ([]models.Link, error)
	// Method GetByMovieID retrieves the link row for a movie.
	//
	// If no link for such movie exists, models.ErrNotFound will be returned together with "nil" value.
	GetByMovieID(ctx context.Context, movieID int) (*models.Link, error)
	// Method Create inserts a link for a movie.
	//
	// If the movie already has a link, models.ErrConflict will be returned.
	Create(ctx context.Context, link *models.Link) error
	// Method Update replaces a movie's external identifiers.
	Update(ctx context.Context, link *models.Link) error
	// Method Delete removes a link by movie id.
	Delete(ctx context.Context, movieID int) error
}

// linkService implements LinkService
type linkService struct {
	repo LinkRepository
}

// NewLinkService creates a new link service
func NewLinkService(repo LinkRepository) *linkService {
	return &linkService{
		repo: repo,
	}
}

// GetAll retrieves links, optionally limited
func (s *linkService) GetAll(ctx context.Context, limit int) ([]models.Link, error) {
	return s.repo.GetAll(ctx, limit)
}

// GetByMovieID retrieves the link for one movie
func (s *linkService) GetByMovieID(ctx context.Context, movieID int) (*models.Link, error) {
	return s.repo.GetByMovieID(ctx, movieID)
}

// Create validates and stores a link
func (s *linkService) Create(ctx context.Context, req *models.LinkRequest) (*models.Link, error) {
	if err := validateLinkRequest(req); err != nil {
		return nil, err
	}

	link := &models.Link{
		MovieID: req.MovieID,
		ImdbID:  strings.TrimSpace(req.ImdbID),
		TmdbID:  req.TmdbID,
	}

	if err := s.repo.Create(ctx, link); err != nil {
		return nil, err
	}

	return link, nil
}

// Update validates and replaces an existing link
func (s *linkService) Update(ctx context.Context, movieID int, req *models.LinkRequest) (*models.Link, error) {
	if strings.TrimSpace(req.ImdbID) == "" {
		return nil, fmt.Errorf("%w: imdbId is required", models.ErrValidation)
	}

	if _, err := s.repo.GetByMovieID(ctx, movieID); err != nil {
		return nil, err
	}

	link := &models.Link{
		MovieID: movieID,
		ImdbID:  strings.TrimSpace(req.ImdbID),
		TmdbID:  req.TmdbID,
	}

	if err := s.repo.Update(ctx, link); err != nil {
		return nil, err
	}

	return link, nil
}

// Delete removes a link
func (s *linkService) Delete(ctx context.Context, movieID int) error {
	return s.repo.Delete(ctx, movieID)
}

// validateLinkRequest checks the create payload
func validateLinkRequest(req *models.LinkRequest) error {
	if req.MovieID <= 0 {
		return fmt.Errorf("%w: movieId is required", models.ErrValidation)
	}
	if strings.TrimSpace(req.ImdbID) == "" {
		return fmt.Errorf("%w: imdbId is required", models.ErrValidation)
	}
	return nil
}
