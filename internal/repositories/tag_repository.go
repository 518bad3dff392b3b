package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/movieshelf/backend/internal/models"
)

// tagRepository implements TagRepository
type tagRepository struct {
	db *sql.DB
}

// NewTagRepository creates a new tag repository
func NewTagRepository(db *sql.DB) *tagRepository {
	return &tagRepository{
		db: db,
	}
}

// GetAll retrieves tags ordered by id. A limit <= 0 returns everything.
func (r *tagRepository) GetAll(ctx context.Context, limit int) ([]models.Tag, error) {
	query := `SELECT id, userId, movieId, tag, timestamp FROM tags ORDER BY id`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query tags: %w", err)
	}
	defer rows.Close()

	tags := []models.Tag{}
	for rows.Next() {
		var tag models.Tag
		if err := rows.Scan(&tag.ID, &tag.UserID, &tag.MovieID, &tag.Tag, &tag.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan tag: %w", err)
		}
		tags = append(tags, tag)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tags: %w", err)
	}

	return tags, nil
}

// GetByID retrieves a tag by its id
func (r *tagRepository) GetByID(ctx context.Context, id int) (*models.Tag, error) {
	query := `SELECT id, userId, movieId, tag, timestamp FROM tags WHERE id = ?`

	tag := &models.Tag{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&tag.ID, &tag.UserID, &tag.MovieID, &tag.Tag, &tag.Timestamp)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: tag %d", models.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get tag: %w", err)
	}

	return tag, nil
}

// Create inserts a new tag and fills in the generated id
func (r *tagRepository) Create(ctx context.Context, tag *models.Tag) error {
	query := `INSERT INTO tags (userId, movieId, tag, timestamp) VALUES (?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query, tag.UserID, tag.MovieID, tag.Tag, tag.Timestamp)
	if err != nil {
		return fmt.Errorf("failed to create tag: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	tag.ID = int(id)
	return nil
}

// Update replaces a tag's text and timestamp
func (r *tagRepository) Update(ctx context.Context, tag *models.Tag) error {
	query := `UPDATE tags SET movieId = ?, tag = ?, timestamp = ? WHERE id = ?`

	if _, err := r.db.ExecContext(ctx, query, tag.MovieID, tag.Tag, tag.Timestamp, tag.ID); err != nil {
		return fmt.Errorf("failed to update tag: %w", err)
	}

	return nil
}

// Delete removes a tag by id
func (r *tagRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM tags WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete tag: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: tag %d", models.ErrNotFound, id)
	}

	return nil
}
