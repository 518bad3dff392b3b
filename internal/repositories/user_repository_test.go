package repositories

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/movieshelf/backend/internal/models"
)

// setupUserTestRepository creates a user repository with a mock database
func setupUserTestRepository(t *testing.T) (*userRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := NewUserRepository(db, zap.NewNop())

	cleanup := func() {
		db.Close()
	}

	return repo, mock, cleanup
}

func TestUserRepository_Create(t *testing.T) {
	tests := []struct {
		name          string
		user          *models.User
		setupMock     func(sqlmock.Sqlmock)
		expectedError error
		expectedID    int
	}{
		{
			name: "success",
			user: &models.User{
				Username:     "alice",
				PasswordHash: "hash",
				Role:         models.RoleUser,
				IsActive:     true,
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO users`).
					WithArgs("alice", "hash", models.RoleUser, true).
					WillReturnResult(sqlmock.NewResult(7, 1))
			},
			expectedID: 7,
		},
		{
			name: "duplicate username",
			user: &models.User{
				Username:     "alice",
				PasswordHash: "hash",
				Role:         models.RoleUser,
				IsActive:     true,
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO users`).
					WithArgs("alice", "hash", models.RoleUser, true).
					WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})
			},
			expectedError: models.ErrUserExists,
		},
		{
			name: "database error",
			user: &models.User{
				Username:     "alice",
				PasswordHash: "hash",
				Role:         models.RoleUser,
				IsActive:     true,
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO users`).
					WithArgs("alice", "hash", models.RoleUser, true).
					WillReturnError(errors.New("database error"))
			},
			expectedError: errors.New("failed to create user"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupUserTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			err := repo.Create(context.Background(), tt.user)

			if tt.expectedError != nil {
				require.Error(t, err)
				if errors.Is(tt.expectedError, models.ErrUserExists) {
					assert.ErrorIs(t, err, models.ErrUserExists)
				}
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expectedID, tt.user.ID)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_Create_DuplicateMapsToConflict(t *testing.T) {
	repo, mock, cleanup := setupUserTestRepository(t)
	defer cleanup()

	mock.ExpectExec(`INSERT INTO users`).
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})

	err := repo.Create(context.Background(), &models.User{Username: "alice"})

	// ErrUserExists wraps the generic conflict sentinel
	assert.ErrorIs(t, err, models.ErrConflict)
}

func TestUserRepository_GetByUsername(t *testing.T) {
	tests := []struct {
		name          string
		username      string
		setupMock     func(sqlmock.Sqlmock)
		expectedError error
		expectedUser  *models.User
	}{
		{
			name:     "success",
			username: "alice",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"id", "username", "password_hash", "role", "is_active"}).
					AddRow(1, "alice", "hash", "user", true)
				mock.ExpectQuery(`SELECT id, username, password_hash, role, is_active`).
					WithArgs("alice").
					WillReturnRows(rows)
			},
			expectedUser: &models.User{
				ID:           1,
				Username:     "alice",
				PasswordHash: "hash",
				Role:         models.RoleUser,
				IsActive:     true,
			},
		},
		{
			name:     "not found",
			username: "ghost",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, username, password_hash, role, is_active`).
					WithArgs("ghost").
					WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password_hash", "role", "is_active"}))
			},
			expectedError: models.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupUserTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			user, err := repo.GetByUsername(context.Background(), tt.username)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, user)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expectedUser, user)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_List(t *testing.T) {
	repo, mock, cleanup := setupUserTestRepository(t)
	defer cleanup()

	rows := sqlmock.NewRows([]string{"id", "username", "password_hash", "role", "is_active"}).
		AddRow(1, "alice", "hash1", "user", true).
		AddRow(2, "root", "hash2", "admin", true)
	mock.ExpectQuery(`SELECT id, username, password_hash, role, is_active`).
		WillReturnRows(rows)

	users, err := repo.List(context.Background())

	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "alice", users[0].Username)
	assert.Equal(t, models.RoleAdmin, users[1].Role)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_UpdateRole(t *testing.T) {
	repo, mock, cleanup := setupUserTestRepository(t)
	defer cleanup()

	mock.ExpectExec(`UPDATE users SET role`).
		WithArgs(models.RoleAdmin, "alice").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateRole(context.Background(), "alice", models.RoleAdmin)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_UpdateRole_SameRole(t *testing.T) {
	repo, mock, cleanup := setupUserTestRepository(t)
	defer cleanup()

	// MySQL reports zero affected rows when the value does not change,
	// the update must still succeed
	mock.ExpectExec(`UPDATE users SET role`).
		WithArgs(models.RoleUser, "alice").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateRole(context.Background(), "alice", models.RoleUser)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Deactivate(t *testing.T) {
	repo, mock, cleanup := setupUserTestRepository(t)
	defer cleanup()

	mock.ExpectExec(`UPDATE users SET is_active = FALSE`).
		WithArgs("alice").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Deactivate(context.Background(), "alice")

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
