package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound signals a missing software listing.
	ErrNotFound = errors.New("not found")
	// ErrInvalidSpec signals a catalog query that violates a structural precondition.
	ErrInvalidSpec = errors.New("invalid query spec")
	// ErrValidation signals a listing that fails form validation.
	ErrValidation = errors.New("validation failed")
	// ErrInvalidCredentials signals a failed admin login.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUnauthorized signals a missing, expired or revoked admin token.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrDownloadUnavailable signals a listing without a file URL.
	ErrDownloadUnavailable = errors.New("download not available")
	// ErrAlreadyExists signals an id or email collision on create.
	ErrAlreadyExists = errors.New("already exists")
	// ErrTooManyAttempts signals an admin email locked out after repeated failed logins.
	ErrTooManyAttempts = errors.New("too many login attempts")
)

// FieldError wraps ErrValidation with the offending form field.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrValidation.Error(), e.Field, e.Reason)
}

func (e *FieldError) Unwrap() error { return ErrValidation }

// NewFieldError creates a validation error for a single field.
func NewFieldError(field, reason string) error {
	return &FieldError{Field: field, Reason: reason}
}
