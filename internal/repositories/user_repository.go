package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"go.uber.org/zap"

	"github.com/movieshelf/backend/internal/models"
)

// mysqlDuplicateEntry is the server error code for a unique key violation
const mysqlDuplicateEntry = 1062

// userRepository implements the credential store over MySQL
type userRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sql.DB, logger *zap.Logger) *userRepository {
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new user into the database
func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (username, password_hash, role, is_active)
		VALUES (?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query, user.Username, user.PasswordHash, user.Role, user.IsActive)
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry {
			return fmt.Errorf("%w: %s", models.ErrUserExists, user.Username)
		}
		r.logger.Error("failed to create user", zap.Error(err))
		return fmt.Errorf("failed to create user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		r.logger.Error("failed to get last insert id", zap.Error(err))
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	user.ID = int(id)
	return nil
}

// GetByUsername retrieves a user by username
func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `
		SELECT id, username, password_hash, role, is_active
		FROM users
		WHERE username = ?
		LIMIT 1
	`

	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, username).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.Role,
		&user.IsActive,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: user %s", models.ErrNotFound, username)
	}
	if err != nil {
		r.logger.Error("failed to get user by username", zap.Error(err), zap.String("username", username))
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}

	return user, nil
}

// List retrieves all users ordered by id
func (r *userRepository) List(ctx context.Context) ([]models.User, error) {
	query := `
		SELECT id, username, password_hash, role, is_active
		FROM users
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("failed to list users", zap.Error(err))
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var user models.User
		if err := rows.Scan(&user.ID, &user.Username, &user.PasswordHash, &user.Role, &user.IsActive); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}

	return users, nil
}

// UpdateRole changes a user's role. Existence is checked by the caller;
// an unchanged role reports zero affected rows on MySQL, so affected rows
// are not a reliable not-found signal here.
func (r *userRepository) UpdateRole(ctx context.Context, username string, role models.Role) error {
	query := `UPDATE users SET role = ? WHERE username = ?`

	if _, err := r.db.ExecContext(ctx, query, role, username); err != nil {
		r.logger.Error("failed to update user role", zap.Error(err), zap.String("username", username))
		return fmt.Errorf("failed to update user role: %w", err)
	}

	return nil
}

// Deactivate clears a user's active flag; the record is never deleted
func (r *userRepository) Deactivate(ctx context.Context, username string) error {
	query := `UPDATE users SET is_active = FALSE WHERE username = ?`

	if _, err := r.db.ExecContext(ctx, query, username); err != nil {
		r.logger.Error("failed to deactivate user", zap.Error(err), zap.String("username", username))
		return fmt.Errorf("failed to deactivate user: %w", err)
	}

	return nil
}
