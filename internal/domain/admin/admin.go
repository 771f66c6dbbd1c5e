// Package admin holds the admin account value object.
package admin

import (
	"net/mail"
	"strings"
	"time"

	"github.com/kailas-cloud/softhub/internal/domain"
)

// User is an admin account (immutable value object).
type User struct {
	id           string
	email        string
	name         string
	passwordHash string
	createdAt    time.Time
	lastLoginAt  time.Time
}

// NormalizeEmail lower-cases and trims an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// New validates and creates an admin account from an already-hashed password.
func New(id, email, name, passwordHash string, now time.Time) (User, error) {
	email = NormalizeEmail(email)
	name = strings.TrimSpace(name)
	switch {
	case id == "":
		return User{}, domain.NewFieldError("id", "is required")
	case email == "":
		return User{}, domain.NewFieldError("email", "is required")
	case passwordHash == "":
		return User{}, domain.NewFieldError("password", "is required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return User{}, domain.NewFieldError("email", "is not a valid address")
	}
	if name == "" {
		name = email
	}
	return User{
		id:           id,
		email:        email,
		name:         name,
		passwordHash: passwordHash,
		createdAt:    now.UTC(),
	}, nil
}

// Reconstruct creates a User without validation (storage hydration).
func Reconstruct(id, email, name, passwordHash string, createdAt, lastLoginAt time.Time) User {
	return User{
		id:           id,
		email:        email,
		name:         name,
		passwordHash: passwordHash,
		createdAt:    createdAt,
		lastLoginAt:  lastLoginAt,
	}
}

// ID returns the admin identifier.
func (u User) ID() string { return u.id }

// Email returns the normalized login email.
func (u User) Email() string { return u.email }

// Name returns the display name.
func (u User) Name() string { return u.name }

// PasswordHash returns the bcrypt hash.
func (u User) PasswordHash() string { return u.passwordHash }

// CreatedAt returns the account creation time.
func (u User) CreatedAt() time.Time { return u.createdAt }

// LastLoginAt returns the last successful login, zero if never.
func (u User) LastLoginAt() time.Time { return u.lastLoginAt }
