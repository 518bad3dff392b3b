// Package seed loads the bundled MovieLens-style CSV exports into MySQL on
// first boot. Loading is idempotent: a table that already has rows is left
// alone, and a missing CSV file is skipped with a log line rather than
// failing startup.
package seed

import (
	"context"
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

const (
	// batchSize rows per multi-value INSERT
	batchSize = 1000
	// maxRatings caps the ratings import, the full export is tens of millions of rows
	maxRatings = 50000
)

// Loader imports catalog CSV files into the database
type Loader struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewLoader creates a new seed loader
func NewLoader(db *sql.DB, logger *zap.Logger) *Loader {
	return &Loader{
		db:     db,
		logger: logger,
	}
}

// tableSeed binds a CSV file to its insert statement and row mapper
type tableSeed struct {
	table   string
	file    string
	columns []string
	maxRows int
	// mapRow converts one CSV record into insert arguments, nil skips the record
	mapRow func(record []string) []any
}

// Load imports every known CSV file from dir. Tables that already contain
// rows are not touched, so restarting the API never duplicates data.
func (l *Loader) Load(ctx context.Context, dir string) error {
	seeds := []tableSeed{
		{
			table:   "movies",
			file:    "movies.csv",
			columns: []string{"movieId", "title", "genres"},
			mapRow: func(record []string) []any {
				if len(record) < 3 {
					return nil
				}
				return []any{record[0], record[1], record[2]}
			},
		},
		{
			table:   "links",
			file:    "links.csv",
			columns: []string{"movieId", "imdbId", "tmdbId"},
			mapRow: func(record []string) []any {
				if len(record) < 3 {
					return nil
				}
				var tmdb any
				if record[2] != "" {
					tmdb = record[2]
				}
				return []any{record[0], record[1], tmdb}
			},
		},
		{
			table:   "ratings",
			file:    "ratings.csv",
			columns: []string{"userId", "movieId", "rating", "timestamp"},
			maxRows: maxRatings,
			mapRow: func(record []string) []any {
				if len(record) < 4 {
					return nil
				}
				return []any{record[0], record[1], record[2], record[3]}
			},
		},
		{
			table:   "tags",
			file:    "tags.csv",
			columns: []string{"userId", "movieId", "tag", "timestamp"},
			mapRow: func(record []string) []any {
				if len(record) < 4 {
					return nil
				}
				return []any{record[0], record[1], record[2], record[3]}
			},
		},
	}

	for _, s := range seeds {
		if err := l.loadTable(ctx, dir, s); err != nil {
			return fmt.Errorf("failed to seed table %s: %w", s.table, err)
		}
	}
	return nil
}

func (l *Loader) loadTable(ctx context.Context, dir string, s tableSeed) error {
	hasRows, err := l.tableHasRows(ctx, s.table)
	if err != nil {
		return err
	}
	if hasRows {
		l.logger.Info("table already seeded, skipping", zap.String("table", s.table))
		return nil
	}

	path := filepath.Join(dir, s.file)
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			l.logger.Warn("seed file missing, skipping", zap.String("file", path))
			return nil
		}
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	// first record is the header
	if _, err := reader.Read(); err != nil {
		if err == io.EOF {
			l.logger.Warn("seed file empty, skipping", zap.String("file", path))
			return nil
		}
		return fmt.Errorf("failed to read header of %s: %w", path, err)
	}

	total := 0
	batch := make([][]any, 0, batchSize)
	for {
		if s.maxRows > 0 && total >= s.maxRows {
			break
		}

		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}

		args := s.mapRow(record)
		if args == nil {
			continue
		}
		batch = append(batch, args)
		total++

		if len(batch) == batchSize {
			if err := l.insertBatch(ctx, s.table, s.columns, batch); err != nil {
				return err
			}
			batch = batch[:0]
		}
	}
	if len(batch) > 0 {
		if err := l.insertBatch(ctx, s.table, s.columns, batch); err != nil {
			return err
		}
	}

	l.logger.Info("table seeded", zap.String("table", s.table), zap.Int("rows", total))
	return nil
}

// tableHasRows is the idempotency check
func (l *Loader) tableHasRows(ctx context.Context, table string) (bool, error) {
	var exists bool
	query := fmt.Sprintf("SELECT EXISTS (SELECT 1 FROM %s LIMIT 1)", table)
	if err := l.db.QueryRowContext(ctx, query).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check table %s: %w", table, err)
	}
	return exists, nil
}

// insertBatch issues one multi-value INSERT IGNORE so a dirty row in the CSV
// cannot abort the whole import
func (l *Loader) insertBatch(ctx context.Context, table string, columns []string, batch [][]any) error {
	placeholder := "(" + strings.TrimSuffix(strings.Repeat("?,", len(columns)), ",") + ")"
	placeholders := make([]string, len(batch))
	args := make([]any, 0, len(batch)*len(columns))
	for i, row := range batch {
		placeholders[i] = placeholder
		args = append(args, row...)
	}

	query := fmt.Sprintf(
		"INSERT IGNORE INTO %s (%s) VALUES %s",
		table,
		strings.Join(columns, ", "),
		strings.Join(placeholders, ", "),
	)

	if _, err := l.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert batch into %s: %w", table, err)
	}
	return nil
}
