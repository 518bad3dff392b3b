package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/movieshelf/backend/internal/models"
)

// ratingRepository implements RatingRepository
type ratingRepository struct {
	db *sql.DB
}

// NewRatingRepository creates a new rating repository
func NewRatingRepository(db *sql.DB) *ratingRepository {
	return &ratingRepository{
		db: db,
	}
}

// GetAll retrieves ratings ordered by id. A limit <= 0 returns everything.
func (r *ratingRepository) GetAll(ctx context.Context, limit int) ([]models.Rating, error) {
	query := `SELECT id, userId, movieId, rating, timestamp FROM ratings ORDER BY id`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query ratings: %w", err)
	}
	defer rows.Close()

	ratings := []models.Rating{}
	for rows.Next() {
		var rating models.Rating
		if err := rows.Scan(&rating.ID, &rating.UserID, &rating.MovieID, &rating.Rating, &rating.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan rating: %w", err)
		}
		ratings = append(ratings, rating)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate ratings: %w", err)
	}

	return ratings, nil
}

// GetByID retrieves a rating by its id
func (r *ratingRepository) GetByID(ctx context.Context, id int) (*models.Rating, error) {
	query := `SELECT id, userId, movieId, rating, timestamp FROM ratings WHERE id = ?`

	rating := &models.Rating{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&rating.ID, &rating.UserID, &rating.MovieID, &rating.Rating, &rating.Timestamp)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: rating %d", models.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get rating: %w", err)
	}

	return rating, nil
}

// Create inserts a new rating and fills in the generated id
func (r *ratingRepository) Create(ctx context.Context, rating *models.Rating) error {
	query := `INSERT INTO ratings (userId, movieId, rating, timestamp) VALUES (?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query, rating.UserID, rating.MovieID, rating.Rating, rating.Timestamp)
	if err != nil {
		return fmt.Errorf("failed to create rating: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	rating.ID = int(id)
	return nil
}

// Update replaces a rating's value and timestamp
func (r *ratingRepository) Update(ctx context.Context, rating *models.Rating) error {
	query := `UPDATE ratings SET movieId = ?, rating = ?, timestamp = ? WHERE id = ?`

	if _, err := r.db.ExecContext(ctx, query, rating.MovieID, rating.Rating, rating.Timestamp, rating.ID); err != nil {
		return fmt.Errorf("failed to update rating: %w", err)
	}

	return nil
}

// Delete removes a rating by id
func (r *ratingRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM ratings WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete rating: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: rating %d", models.ErrNotFound, id)
	}

	return nil
}
