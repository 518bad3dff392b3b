package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/movieshelf/backend/internal/models"
)

// TagRepository is the interface that wraps methods for tags table data access
type TagRepository interface {
	// Method GetAll retrieves tags ordered by id. A limit <= 0 returns everything.
	GetAll(ctx context.Context, limit int) ([]models.Tag, error)
	// Method GetByID retrieves a tag by its id.
	//
	// If no tag with such id exists, models.ErrNotFound will be returned together with "nil" value.
	GetByID(ctx context.Context, id int) (*models.Tag, error)
	// Method Create inserts a new tag and fills in the generated id.
	Create(ctx context.Context, tag *models.Tag) error
	// Method Update replaces a tag's text and timestamp.
	Update(ctx context.Context, tag *models.Tag) error
	// Method Delete removes a tag by id.
	Delete(ctx context.Context, id int) error
}

// tagService implements TagService
type tagService struct {
	repo TagRepository
}

// NewTagService creates a new tag service
func NewTagService(repo TagRepository) *tagService {
	return &tagService{
		repo: repo,
	}
}

// GetAll retrieves tags, optionally limited
func (s *tagService) GetAll(ctx context.Context, limit int) ([]models.Tag, error) {
	return s.repo.GetAll(ctx, limit)
}

// GetByID retrieves one tag
func (s *tagService) GetByID(ctx context.Context, id int) (*models.Tag, error) {
	return s.repo.GetByID(ctx, id)
}

// Create validates and stores a tag on behalf of the given user
func (s *tagService) Create(ctx context.Context, userID int, req *models.TagRequest) (*models.Tag, error) {
	if err := validateTagRequest(req); err != nil {
		return nil, err
	}

	tag := &models.Tag{
		UserID:    userID,
		MovieID:   req.MovieID,
		Tag:       strings.TrimSpace(req.Tag),
		Timestamp: req.Timestamp,
	}
	if tag.Timestamp == 0 {
		tag.Timestamp = time.Now().Unix()
	}

	if err := s.repo.Create(ctx, tag); err != nil {
		return nil, err
	}

	return tag, nil
}

// Update validates and replaces an existing tag
func (s *tagService) Update(ctx context.Context, id int, req *models.TagRequest) (*models.Tag, error) {
	if err := validateTagRequest(req); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	tag := &models.Tag{
		ID:        id,
		UserID:    existing.UserID,
		MovieID:   req.MovieID,
		Tag:       strings.TrimSpace(req.Tag),
		Timestamp: req.Timestamp,
	}
	if tag.Timestamp == 0 {
		tag.Timestamp = time.Now().Unix()
	}

	if err := s.repo.Update(ctx, tag); err != nil {
		return nil, err
	}

	return tag, nil
}

// Delete removes a tag
func (s *tagService) Delete(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}

// validateTagRequest checks the create/update payload
func validateTagRequest(req *models.TagRequest) error {
	if req.MovieID <= 0 {
		return fmt.Errorf("%w: movieId is required", models.ErrValidation)
	}
	if strings.TrimSpace(req.Tag) == "" {
		return fmt.Errorf("%w: tag is required", models.ErrValidation)
	}
	return nil
}
