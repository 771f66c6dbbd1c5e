package revocation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kailas-cloud/softhub/internal/db"
)

// minTTL keeps SET EX above zero for tokens about to expire.
const minTTL = time.Second

// store is the consumer interface for token revocations (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Store records revoked admin token ids until the token would have expired.
type Store struct {
	store  store
	prefix string
}

// New creates a revocation store. Keys are "<prefix>revoked:<jti>".
func New(s store, prefix string) *Store {
	return &Store{store: s, prefix: prefix}
}

func (s *Store) key(jti string) string {
	return s.prefix + "revoked:" + jti
}

// Revoke marks jti as revoked for ttl.
func (s *Store) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if jti == "" {
		return errors.New("token id is required")
	}
	ttl = max(ttl, minTTL)
	if err := s.store.SetWithTTL(ctx, s.key(jti), []byte("1"), ttl); err != nil {
		return fmt.Errorf("revoke SET %s: %w", jti, err)
	}
	return nil
}

// IsRevoked reports whether jti has been revoked.
func (s *Store) IsRevoked(ctx context.Context, jti string) (bool, error) {
	_, err := s.store.Get(ctx, s.key(jti))
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("revoke GET %s: %w", jti, err)
	}
	return true, nil
}
