package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/movieshelf/backend/internal/models"
)

// movieRepository implements MovieRepository
type movieRepository struct {
	db *sql.DB
}

// NewMovieRepository creates a new movie repository
func NewMovieRepository(db *sql.DB) *movieRepository {
	return &movieRepository{
		db: db,
	}
}

// GetAll retrieves movies ordered by id. A limit <= 0 returns everything.
func (r *movieRepository) GetAll(ctx context.Context, limit int) ([]models.Movie, error) {
	query := `SELECT movieId, title, genres FROM movies ORDER BY movieId`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query movies: %w", err)
	}
	defer rows.Close()

	movies := []models.Movie{}
	for rows.Next() {
		var movie models.Movie
		if err := rows.Scan(&movie.MovieID, &movie.Title, &movie.Genres); err != nil {
			return nil, fmt.Errorf("failed to scan movie: %w", err)
		}
		movies = append(movies, movie)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate movies: %w", err)
	}

	return movies, nil
}

// GetByID retrieves a movie by its id
func (r *movieRepository) GetByID(ctx context.Context, movieID int) (*models.Movie, error) {
	query := `SELECT movieId, title, genres FROM movies WHERE movieId = ?`

	movie := &models.Movie{}
	err := r.db.QueryRowContext(ctx, query, movieID).Scan(&movie.MovieID, &movie.Title, &movie.Genres)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: movie %d", models.ErrNotFound, movieID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get movie: %w", err)
	}

	return movie, nil
}

// Create inserts a new movie and fills in the generated id
func (r *movieRepository) Create(ctx context.Context, movie *models.Movie) error {
	query := `INSERT INTO movies (title, genres) VALUES (?, ?)`

	result, err := r.db.ExecContext(ctx, query, movie.Title, movie.Genres)
	if err != nil {
		return fmt.Errorf("failed to create movie: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	movie.MovieID = int(id)
	return nil
}

// Update replaces a movie's title and genres
func (r *movieRepository) Update(ctx context.Context, movie *models.Movie) error {
	query := `UPDATE movies SET title = ?, genres = ? WHERE movieId = ?`

	if _, err := r.db.ExecContext(ctx, query, movie.Title, movie.Genres, movie.MovieID); err != nil {
		return fmt.Errorf("failed to update movie: %w", err)
	}

	return nil
}

// Delete removes a movie by id
func (r *movieRepository) Delete(ctx context.Context, movieID int) error {
	query := `DELETE FROM movies WHERE movieId = ?`

	result, err := r.db.ExecContext(ctx, query, movieID)
	if err != nil {
		return fmt.Errorf("failed to delete movie: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: movie %d", models.ErrNotFound, movieID)
	}

	return nil
}
