package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/kailas-cloud/softhub/internal/db"
)

// Get retrieves a value by key. Expired values are reported as missing.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.sqlDB.QueryRowContext(ctx,
		`SELECT value FROM kv WHERE key = ? AND (expires_at IS NULL OR expires_at > ?)`,
		key, s.nowMillis(),
	).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, db.ErrKeyNotFound
		}
		return nil, &db.Error{Op: db.OpGet, Err: err}
	}
	return value, nil
}

// Set stores a value without expiry.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	return s.put(ctx, key, value, sql.NullInt64{})
}

// SetWithTTL stores a value that expires after ttl.
func (s *Store) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	expires := sql.NullInt64{Int64: s.now().Add(ttl).UTC().UnixMilli(), Valid: true}
	return s.put(ctx, key, value, expires)
}

func (s *Store) put(ctx context.Context, key string, value []byte, expires sql.NullInt64) error {
	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO kv (key, value, expires_at) VALUES (?, ?, ?)
		 ON CONFLICT (key) DO UPDATE SET value = excluded.value, expires_at = excluded.expires_at`,
		key, value, expires,
	)
	if err != nil {
		return &db.Error{Op: db.OpSet, Err: err}
	}
	return nil
}

// IncrBy atomically increments a key by the given amount and returns the new value.
// An expired key restarts from zero without expiry.
func (s *Store) IncrBy(ctx context.Context, key string, val int64) (int64, error) {
	var n int64
	err := s.sqlDB.QueryRowContext(ctx,
		`INSERT INTO kv (key, value, expires_at) VALUES (?1, CAST(?2 AS TEXT), NULL)
		 ON CONFLICT (key) DO UPDATE SET
			value = CASE WHEN kv.expires_at IS NOT NULL AND kv.expires_at <= ?3
				THEN CAST(?2 AS TEXT)
				ELSE CAST(CAST(kv.value AS INTEGER) + ?2 AS TEXT) END,
			expires_at = CASE WHEN kv.expires_at IS NOT NULL AND kv.expires_at <= ?3
				THEN NULL
				ELSE kv.expires_at END
		 RETURNING CAST(value AS INTEGER)`,
		key, val, s.nowMillis(),
	).Scan(&n)
	if err != nil {
		return 0, &db.Error{Op: db.OpIncrBy, Err: err}
	}
	return n, nil
}

// Expire sets TTL on a live key. When nx=true, only keys without an expiry are touched.
func (s *Store) Expire(ctx context.Context, key string, ttl time.Duration, nx bool) error {
	expires := s.now().Add(ttl).UTC().UnixMilli()
	query := `UPDATE kv SET expires_at = ? WHERE key = ? AND (expires_at IS NULL OR expires_at > ?)`
	args := []any{expires, key, s.nowMillis()}
	if nx {
		query = `UPDATE kv SET expires_at = ? WHERE key = ? AND expires_at IS NULL`
		args = args[:2]
	}
	if _, err := s.sqlDB.ExecContext(ctx, query, args...); err != nil {
		return &db.Error{Op: db.OpExpire, Err: err}
	}
	return nil
}
