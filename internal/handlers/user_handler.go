package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/movieshelf/backend/internal/models"
)

// UserService is the interface that wraps methods for administrative user management.
type UserService interface {
	// Method CreateUser creates a user with an explicit role and returns it.
	//
	// "req" parameter contains username, password and role; an empty role defaults to "user".
	//
	// If the credentials fail validation, or the role is unknown, or the username is already taken, the error will be returned together with a nil user.
	CreateUser(ctx context.Context, req *models.CreateUserRequest) (*models.User, error)
	// Method List returns all users.
	List(ctx context.Context) ([]models.User, error)
	// Method UpdateRole changes the role of the named user.
	//
	// If no such user exists, ErrNotFound will be returned.
	UpdateRole(ctx context.Context, username string, role models.Role) error
	// Method Deactivate marks the named user inactive so their tokens stop working.
	//
	// If no such user exists, ErrNotFound will be returned.
	Deactivate(ctx context.Context, username string) error
}

// UserHandler handles admin-only user management HTTP requests
type UserHandler struct {
	BaseHandler
	userService UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(
	userService UserService,
	logger *zap.Logger,
) *UserHandler {
	return &UserHandler{
		BaseHandler: BaseHandler{Logger: logger},
		userService: userService,
	}
}

// RegisterRoutes registers all user handler routes.
// Note: This assumes the router is already scoped to /api/v1 and gated by
// the admin role middleware.
func (h *UserHandler) RegisterRoutes(r chi.Router) {
	r.Route("/users", func(r chi.Router) {
		r.Post("/", h.Create)
		r.Get("/", h.List)
		r.Put("/{username}/role", h.UpdateRole)
		r.Put("/{username}/deactivate", h.Deactivate)
	})
}

// Create handles POST /users
// @Summary Create a user (admin)
// @Description Create a user with an explicit role
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.CreateUserRequest true "Create user request"
// @Success 201 {object} models.User "User created"
// @Failure 400 {object} map[string]string "Invalid request body, credentials or role"
// @Failure 403 {object} map[string]string "Admin role required"
// @Failure 409 {object} map[string]string "Username already taken"
// @Router /users [post]
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.userService.CreateUser(r.Context(), &req)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusCreated, user)
}

// List handles GET /users
// @Summary List users (admin)
// @Description Return all users
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.User "Users"
// @Failure 403 {object} map[string]string "Admin role required"
// @Router /users [get]
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.List(r.Context())
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, users)
}

// UpdateRole handles PUT /users/{username}/role
// @Summary Change a user's role (admin)
// @Description Set the role of the named user. Takes effect on the user's next token.
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param username path string true "Username"
// @Param request body models.UpdateRoleRequest true "New role"
// @Success 200 {object} map[string]string "Role updated"
// @Failure 400 {object} map[string]string "Unknown role"
// @Failure 403 {object} map[string]string "Admin role required"
// @Failure 404 {object} map[string]string "No such user"
// @Router /users/{username}/role [put]
func (h *UserHandler) UpdateRole(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	var req models.UpdateRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.userService.UpdateRole(r.Context(), username, req.Role); err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]string{"message": "role updated"})
}

// Deactivate handles PUT /users/{username}/deactivate
// @Summary Deactivate a user (admin)
// @Description Mark the named user inactive. Their existing tokens stop passing the auth middleware immediately.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param username path string true "Username"
// @Success 200 {object} map[string]string "User deactivated"
// @Failure 403 {object} map[string]string "Admin role required"
// @Failure 404 {object} map[string]string "No such user"
// @Router /users/{username}/deactivate [put]
func (h *UserHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	if err := h.userService.Deactivate(r.Context(), username); err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]string{"message": "user deactivated"})
}
