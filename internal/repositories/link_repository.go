package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"

	"github.com/movieshelf/backend/internal/models"
)

// linkRepository implements LinkRepository. Links are keyed by movieId.
type linkRepository struct {
	db *sql.DB
}

// NewLinkRepository creates a new link repository
func NewLinkRepository(db *sql.DB) *linkRepository {
	return &linkRepository{
		db: db,
	}
}

// GetAll retrieves all links ordered by movie id
func (r *linkRepository) GetAll(ctx context.Context, limit int) ([]models.Link, error) {
	query := `SELECT movieId, imdbId, tmdbId FROM links ORDER BY movieId`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query links: %w", err)
	}
	defer rows.Close()

	links := []models.Link{}
	for rows.Next() {
		link, err := scanLink(rows)
		if err != nil {
			return nil, err
		}
		links = append(links, *link)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate links: %w", err)
	}

	return links, nil
}

// GetByMovieID retrieves the link row for a movie
func (r *linkRepository) GetByMovieID(ctx context.Context, movieID int) (*models.Link, error) {
	query := `SELECT movieId, imdbId, tmdbId FROM links WHERE movieId = ?`

	link := &models.Link{}
	var tmdbID sql.NullString
	err := r.db.QueryRowContext(ctx, query, movieID).Scan(&link.MovieID, &link.ImdbID, &tmdbID)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: link %d", models.ErrNotFound, movieID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get link: %w", err)
	}

	if tmdbID.Valid {
		link.TmdbID = &tmdbID.String
	}
	return link, nil
}

// Create inserts a link for a movie
func (r *linkRepository) Create(ctx context.Context, link *models.Link) error {
	query := `INSERT INTO links (movieId, imdbId, tmdbId) VALUES (?, ?, ?)`

	if _, err := r.db.ExecContext(ctx, query, link.MovieID, link.ImdbID, link.TmdbID); err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry {
			return fmt.Errorf("link %d %w", link.MovieID, models.ErrConflict)
		}
		return fmt.Errorf("failed to create link: %w", err)
	}

	return nil
}

// Update replaces a movie's external identifiers
func (r *linkRepository) Update(ctx context.Context, link *models.Link) error {
	query := `UPDATE links SET imdbId = ?, tmdbId = ? WHERE movieId = ?`

	if _, err := r.db.ExecContext(ctx, query, link.ImdbID, link.TmdbID, link.MovieID); err != nil {
		return fmt.Errorf("failed to update link: %w", err)
	}

	return nil
}

// Delete removes a link by movie id
func (r *linkRepository) Delete(ctx context.Context, movieID int) error {
	query := `DELETE FROM links WHERE movieId = ?`

	result, err := r.db.ExecContext(ctx, query, movieID)
	if err != nil {
		return fmt.Errorf("failed to delete link: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: link %d", models.ErrNotFound, movieID)
	}

	return nil
}

// scanLink scans a link row handling the nullable tmdbId column
func scanLink(rows *sql.Rows) (*models.Link, error) {
	link := &models.Link{}
	var tmdbID sql.NullString
	if err := rows.Scan(&link.MovieID, &link.ImdbID, &tmdbID); err != nil {
		return nil, fmt.Errorf("failed to scan link: %w", err)
	}
	if tmdbID.Valid {
		link.TmdbID = &tmdbID.String
	}
	return link, nil
}
