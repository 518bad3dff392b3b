package models

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by repositories, services and handlers.
// Handlers map them to HTTP status codes with errors.Is, so services must
// wrap rather than replace them.
var (
	// ErrNotFound means the requested record does not exist (404).
	ErrNotFound = errors.New("not found")
	// ErrConflict means a unique key is already taken (409).
	ErrConflict = errors.New("already exists")
	// ErrUserExists means the unique username is already taken (409).
	ErrUserExists = fmt.Errorf("user %w", ErrConflict)
	// ErrInvalidCredentials covers bad login/password and inactive accounts (401).
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrValidation marks a malformed or out-of-range request field (400).
	ErrValidation = errors.New("validation failed")
)
