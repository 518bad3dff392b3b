package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/movieshelf/backend/internal/auth"
	"github.com/movieshelf/backend/internal/models"
)

// UserAdminRepository is the interface that wraps methods for the admin user surface
type UserAdminRepository interface {
	UserRepository
	// Method List retrieves all users.
	List(ctx context.Context) ([]models.User, error)
	// Method UpdateRole changes a user's role. The caller checks existence first.
	UpdateRole(ctx context.Context, username string, role models.Role) error
	// Method Deactivate clears a user's active flag. The caller checks existence first.
	Deactivate(ctx context.Context, username string) error
}

// userService implements the admin user-management logic
type userService struct {
	userRepo UserAdminRepository
	logger   *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(userRepo UserAdminRepository, logger *zap.Logger) *userService {
	return &userService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// CreateUser provisions a user with an explicit role
func (s *userService) CreateUser(ctx context.Context, req *models.CreateUserRequest) (*models.User, error) {
	if err := validateCredentials(req.Username, req.Password); err != nil {
		return nil, err
	}

	role := req.Role
	if role == "" {
		role = models.RoleUser
	}
	if !role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", models.ErrValidation, req.Role)
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     req.Username,
		PasswordHash: passwordHash,
		Role:         role,
		IsActive:     true,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// List retrieves all users
func (s *userService) List(ctx context.Context) ([]models.User, error) {
	return s.userRepo.List(ctx)
}

// UpdateRole changes a user's role. The new role takes effect on the next
// login; tokens already issued keep their role snapshot until expiry.
func (s *userService) UpdateRole(ctx context.Context, username string, role models.Role) error {
	if !role.Valid() {
		return fmt.Errorf("%w: unknown role %q", models.ErrValidation, role)
	}

	if _, err := s.userRepo.GetByUsername(ctx, username); err != nil {
		return err
	}

	if err := s.userRepo.UpdateRole(ctx, username, role); err != nil {
		return err
	}

	s.logger.Info("user role updated", zap.String("username", username), zap.String("role", string(role)))
	return nil
}

// Deactivate disables a user account. Outstanding tokens keep working
// until expiry for routes that only check the token, but authentication
// fails immediately because the middleware re-reads the active flag.
func (s *userService) Deactivate(ctx context.Context, username string) error {
	if _, err := s.userRepo.GetByUsername(ctx, username); err != nil {
		return err
	}

	if err := s.userRepo.Deactivate(ctx, username); err != nil {
		return err
	}

	s.logger.Info("user deactivated", zap.String("username", username))
	return nil
}
