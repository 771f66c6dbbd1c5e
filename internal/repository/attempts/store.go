package attempts

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/kailas-cloud/softhub/internal/db"
)

// store is the consumer interface for failed-login counters (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	IncrBy(ctx context.Context, key string, val int64) (int64, error)
	Expire(ctx context.Context, key string, ttl time.Duration, nx bool) error
	Del(ctx context.Context, key string) error
}

// Store counts failed admin logins per email inside a fixed window
// (INCRBY + EXPIRE NX). The window opens at the first failure.
type Store struct {
	store  store
	prefix string
	window time.Duration
}

// New creates an attempts store. Keys are "<prefix>login:<email>".
func New(s store, prefix string, window time.Duration) *Store {
	return &Store{store: s, prefix: prefix, window: window}
}

func (s *Store) key(email string) string {
	return s.prefix + "login:" + email
}

// Record counts one failed login and returns the failures in the current window.
func (s *Store) Record(ctx context.Context, email string) (int64, error) {
	key := s.key(email)
	n, err := s.store.IncrBy(ctx, key, 1)
	if err != nil {
		return 0, fmt.Errorf("attempts INCRBY %s: %w", key, err)
	}

	// NX: repeated failures do not extend the window.
	if err := s.store.Expire(ctx, key, s.window, true); err != nil {
		return 0, fmt.Errorf("attempts EXPIRE %s: %w", key, err)
	}
	return n, nil
}

// Failures returns the failures in the current window. Returns 0 if none.
func (s *Store) Failures(ctx context.Context, email string) (int64, error) {
	key := s.key(email)
	data, err := s.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("attempts GET %s: %w", key, err)
	}

	n, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("attempts GET %s parse: %w", key, err)
	}
	return n, nil
}

// Reset clears the counter after a successful login.
func (s *Store) Reset(ctx context.Context, email string) error {
	key := s.key(email)
	if err := s.store.Del(ctx, key); err != nil {
		return fmt.Errorf("attempts DEL %s: %w", key, err)
	}
	return nil
}
