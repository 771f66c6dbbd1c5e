package admin

import (
	"context"
	"time"

	"github.com/kailas-cloud/softhub/internal/auth"
	domadmin "github.com/kailas-cloud/softhub/internal/domain/admin"
)

// Repository defines the storage contract for admin accounts.
type Repository interface {
	Create(ctx context.Context, u domadmin.User) error
	GetByEmail(ctx context.Context, email string) (domadmin.User, error)
	TouchLastLogin(ctx context.Context, email string, at time.Time) error
	Count(ctx context.Context) (int, error)
}

// Revocations tracks logged-out token ids.
type Revocations interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// LoginAttempts counts failed logins per email.
type LoginAttempts interface {
	Record(ctx context.Context, email string) (int64, error)
	Failures(ctx context.Context, email string) (int64, error)
	Reset(ctx context.Context, email string) error
}

// TokenIssuer signs and parses session tokens.
type TokenIssuer interface {
	Issue(adminID, email string) (string, *auth.Claims, error)
	Parse(token string) (*auth.Claims, error)
}
