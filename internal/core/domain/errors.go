package domain

import (
	"errors"
	"fmt"
)

// Error categories. Concrete errors wrap one of these so the transport layer
// can map them to a status code with errors.Is.
var (
	ErrValidation         = errors.New("validation failed")
	ErrConflict           = errors.New("conflict")
	ErrNotFound           = errors.New("not found")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("access forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

var (
	ErrUserExists         = fmt.Errorf("username already in use: %w", ErrConflict)
	ErrUserNotFound       = fmt.Errorf("user %w", ErrNotFound)
	ErrRestaurantExists   = fmt.Errorf("restaurant already exists: %w", ErrConflict)
	ErrRestaurantNotFound = fmt.Errorf("restaurant %w", ErrNotFound)
)
