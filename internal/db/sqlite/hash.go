package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/kailas-cloud/softhub/internal/db"
)

const upsertField = `INSERT INTO hashes (key, field, value) VALUES (?, ?, ?)
ON CONFLICT (key, field) DO UPDATE SET value = excluded.value`

// HSet sets hash fields.
func (s *Store) HSet(ctx context.Context, key string, fields map[string]string) error {
	return s.inTx(ctx, db.OpHSet, func(tx *sql.Tx) error {
		return hset(ctx, tx, key, fields)
	})
}

// HSetMulti stores multiple hashes in a single transaction.
func (s *Store) HSetMulti(ctx context.Context, items []db.HashSetItem) error {
	if len(items) == 0 {
		return nil
	}
	return s.inTx(ctx, db.OpHSet, func(tx *sql.Tx) error {
		for _, item := range items {
			if err := hset(ctx, tx, item.Key, item.Fields); err != nil {
				return fmt.Errorf("key %s: %w", item.Key, err)
			}
		}
		return nil
	})
}

func hset(ctx context.Context, tx *sql.Tx, key string, fields map[string]string) error {
	for field, value := range fields {
		if _, err := tx.ExecContext(ctx, upsertField, key, field, value); err != nil {
			return err
		}
	}
	return nil
}

// HGetAll returns all fields of a hash. A missing key yields an empty map.
func (s *Store) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	rows, err := s.sqlDB.QueryContext(ctx, `SELECT field, value FROM hashes WHERE key = ?`, key)
	if err != nil {
		return nil, &db.Error{Op: db.OpHGetAll, Err: err}
	}
	defer rows.Close()

	out := make(map[string]string)
	for rows.Next() {
		var field, value string
		if err := rows.Scan(&field, &value); err != nil {
			return nil, &db.Error{Op: db.OpHGetAll, Err: err}
		}
		out[field] = value
	}
	if err := rows.Err(); err != nil {
		return nil, &db.Error{Op: db.OpHGetAll, Err: err}
	}
	return out, nil
}

// HGetAllMulti fetches all fields for multiple hashes, in key order.
func (s *Store) HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error) {
	if len(keys) == 0 {
		return nil, nil
	}
	out := make([]map[string]string, len(keys))
	for i, key := range keys {
		m, err := s.HGetAll(ctx, key)
		if err != nil {
			return nil, err
		}
		out[i] = m
	}
	return out, nil
}

// HIncrBy atomically increments a field of an existing hash and returns the new value.
// A missing field starts at 0. A missing key yields db.ErrKeyNotFound and is not created.
func (s *Store) HIncrBy(ctx context.Context, key, field string, delta int64) (int64, error) {
	var raw string
	err := s.sqlDB.QueryRowContext(ctx,
		`INSERT INTO hashes (key, field, value)
		 SELECT ?1, ?2, ?3 WHERE EXISTS (SELECT 1 FROM hashes WHERE key = ?1)
		 ON CONFLICT (key, field) DO UPDATE
		 SET value = CAST(CAST(hashes.value AS INTEGER) + CAST(excluded.value AS INTEGER) AS TEXT)
		 RETURNING value`,
		key, field, strconv.FormatInt(delta, 10),
	).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, db.ErrKeyNotFound
	}
	if err != nil {
		return 0, &db.Error{Op: db.OpHIncrBy, Err: err}
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, &db.Error{Op: db.OpHIncrBy, Err: err}
	}
	return n, nil
}

// Del deletes a key from both hash and value tables.
func (s *Store) Del(ctx context.Context, key string) error {
	return s.inTx(ctx, db.OpDel, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM hashes WHERE key = ?`, key); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key)
		return err
	})
}

// Exists checks if a key exists as a hash or a live value.
func (s *Store) Exists(ctx context.Context, key string) (bool, error) {
	var n int
	err := s.sqlDB.QueryRowContext(ctx,
		`SELECT
		   (SELECT COUNT(*) FROM hashes WHERE key = ?) +
		   (SELECT COUNT(*) FROM kv WHERE key = ? AND (expires_at IS NULL OR expires_at > ?))`,
		key, key, s.nowMillis(),
	).Scan(&n)
	if err != nil {
		return false, &db.Error{Op: db.OpExists, Err: err}
	}
	return n > 0, nil
}

// Scan returns keys matching a glob pattern.
func (s *Store) Scan(ctx context.Context, pattern string) ([]string, error) {
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT key FROM hashes WHERE key GLOB ?
		 UNION
		 SELECT key FROM kv WHERE key GLOB ? AND (expires_at IS NULL OR expires_at > ?)
		 ORDER BY key`,
		pattern, pattern, s.nowMillis(),
	)
	if err != nil {
		return nil, &db.Error{Op: db.OpScan, Err: err}
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, &db.Error{Op: db.OpScan, Err: err}
		}
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		return nil, &db.Error{Op: db.OpScan, Err: err}
	}
	return keys, nil
}
