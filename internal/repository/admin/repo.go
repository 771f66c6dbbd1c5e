package admin

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/kailas-cloud/softhub/internal/domain"
	domadmin "github.com/kailas-cloud/softhub/internal/domain/admin"
)

// store is the consumer interface for admin accounts (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	Exists(ctx context.Context, key string) (bool, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// Repo implements usecase/admin.Repository.
type Repo struct {
	store  store
	prefix string
}

// New creates an admin repository. Keys are "<prefix>admin:<email>".
func New(s store, prefix string) *Repo {
	return &Repo{store: s, prefix: prefix}
}

func (r *Repo) key(email string) string {
	return r.prefix + "admin:" + domadmin.NormalizeEmail(email)
}

// Create stores a new admin account.
func (r *Repo) Create(ctx context.Context, u domadmin.User) error {
	key := r.key(u.Email())
	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("check exists: %w", err)
	}
	if exists {
		return domain.ErrAlreadyExists
	}
	fields := map[string]string{
		"id":            u.ID(),
		"email":         u.Email(),
		"name":          u.Name(),
		"password_hash": u.PasswordHash(),
		"created_at":    strconv.FormatInt(u.CreatedAt().UnixMilli(), 10),
	}
	if err := r.store.HSet(ctx, key, fields); err != nil {
		return fmt.Errorf("hset admin: %w", err)
	}
	return nil
}

// GetByEmail retrieves an admin by login email.
func (r *Repo) GetByEmail(ctx context.Context, email string) (domadmin.User, error) {
	m, err := r.store.HGetAll(ctx, r.key(email))
	if err != nil {
		return domadmin.User{}, fmt.Errorf("hgetall admin: %w", err)
	}
	if len(m) == 0 {
		return domadmin.User{}, domain.ErrNotFound
	}
	createdAt, err := parseMillis(m["created_at"])
	if err != nil {
		return domadmin.User{}, fmt.Errorf("invalid created_at: %w", err)
	}
	lastLogin, err := parseMillis(m["last_login_at"])
	if err != nil {
		return domadmin.User{}, fmt.Errorf("invalid last_login_at: %w", err)
	}
	return domadmin.Reconstruct(m["id"], m["email"], m["name"], m["password_hash"], createdAt, lastLogin), nil
}

// TouchLastLogin records a successful login.
func (r *Repo) TouchLastLogin(ctx context.Context, email string, at time.Time) error {
	fields := map[string]string{"last_login_at": strconv.FormatInt(at.UnixMilli(), 10)}
	if err := r.store.HSet(ctx, r.key(email), fields); err != nil {
		return fmt.Errorf("hset admin last login: %w", err)
	}
	return nil
}

// Count returns the number of admin accounts.
func (r *Repo) Count(ctx context.Context) (int, error) {
	keys, err := r.store.Scan(ctx, r.prefix+"admin:*")
	if err != nil {
		return 0, fmt.Errorf("scan admins: %w", err)
	}
	return len(keys), nil
}

// parseMillis returns the zero time for an empty value.
func parseMillis(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	ms, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return time.Time{}, err
	}
	return time.UnixMilli(ms).UTC(), nil
}
