package admin

import (
	"errors"
	"testing"
	"time"

	"github.com/kailas-cloud/softhub/internal/domain"
)

func TestNew_NormalizesEmail(t *testing.T) {
	u, err := New("a-1", "  Admin@Example.COM ", "", "hash", time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.Email() != "admin@example.com" {
		t.Errorf("Email = %q", u.Email())
	}
	if u.Name() != "admin@example.com" {
		t.Errorf("Name = %q, want email fallback", u.Name())
	}
	if !u.LastLoginAt().IsZero() {
		t.Error("new admin must not have a last login")
	}
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name  string
		id    string
		email string
		hash  string
	}{
		{"missing id", "", "a@example.com", "hash"},
		{"missing email", "a-1", " ", "hash"},
		{"bad email", "a-1", "not-an-email", "hash"},
		{"missing hash", "a-1", "a@example.com", ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := New(tc.id, tc.email, "Admin", tc.hash, time.Now()); !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
		})
	}
}
