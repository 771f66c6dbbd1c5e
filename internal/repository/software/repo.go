package software

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/kailas-cloud/softhub/internal/db"
	"github.com/kailas-cloud/softhub/internal/domain"
	domsw "github.com/kailas-cloud/softhub/internal/domain/software"
)

// store is the consumer interface for listings (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HSetMulti(ctx context.Context, items []db.HashSetItem) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
	HIncrBy(ctx context.Context, key, field string, delta int64) (int64, error)
	Del(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// Repo implements the listing repositories of usecase/catalog and usecase/software.
type Repo struct {
	store  store
	prefix string
}

// New creates a listing repository. Keys are "<prefix>software:<id>".
func New(s store, prefix string) *Repo {
	return &Repo{store: s, prefix: prefix}
}

func (r *Repo) key(id string) string {
	return r.prefix + "software:" + id
}

// Create stores a new listing, including its download counter.
func (r *Repo) Create(ctx context.Context, rec domsw.Record) error {
	key := r.key(rec.ID())
	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("check exists: %w", err)
	}
	if exists {
		return domain.ErrAlreadyExists
	}
	if err := r.store.HSet(ctx, key, recordToHash(rec, true)); err != nil {
		return fmt.Errorf("hset software %s: %w", rec.ID(), err)
	}
	return nil
}

// CreateMany stores several new listings in one round-trip. Existing ids are overwritten.
func (r *Repo) CreateMany(ctx context.Context, recs []domsw.Record) error {
	items := make([]db.HashSetItem, len(recs))
	for i, rec := range recs {
		items[i] = db.HashSetItem{Key: r.key(rec.ID()), Fields: recordToHash(rec, true)}
	}
	if err := r.store.HSetMulti(ctx, items); err != nil {
		return fmt.Errorf("hset multi software: %w", err)
	}
	return nil
}

// Update replaces the editable fields of an existing listing.
// The stored download counter is left untouched.
func (r *Repo) Update(ctx context.Context, rec domsw.Record) error {
	key := r.key(rec.ID())
	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("check exists: %w", err)
	}
	if !exists {
		return domain.ErrNotFound
	}
	if err := r.store.HSet(ctx, key, recordToHash(rec, false)); err != nil {
		return fmt.Errorf("hset software %s: %w", rec.ID(), err)
	}
	return nil
}

// Get retrieves a listing by id.
func (r *Repo) Get(ctx context.Context, id string) (domsw.Record, error) {
	m, err := r.store.HGetAll(ctx, r.key(id))
	if err != nil {
		return domsw.Record{}, fmt.Errorf("hgetall software %s: %w", id, err)
	}
	if isOrphan(m) {
		return domsw.Record{}, domain.ErrNotFound
	}
	rec, err := recordFromHash(m)
	if err != nil {
		return domsw.Record{}, fmt.Errorf("parse software %s: %w", id, err)
	}
	return rec, nil
}

// List returns all listings ordered by creation time, then id.
func (r *Repo) List(ctx context.Context) ([]domsw.Record, error) {
	keys, err := r.store.Scan(ctx, r.key("*"))
	if err != nil {
		return nil, fmt.Errorf("scan software: %w", err)
	}
	if len(keys) == 0 {
		return []domsw.Record{}, nil
	}

	results, err := r.store.HGetAllMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("hgetall multi software: %w", err)
	}

	recs := make([]domsw.Record, 0, len(results))
	for i, m := range results {
		// Deleted between SCAN and HGETALL.
		if isOrphan(m) {
			continue
		}
		rec, err := recordFromHash(m)
		if err != nil {
			return nil, fmt.Errorf("parse software %s: %w", keys[i], err)
		}
		recs = append(recs, rec)
	}

	slices.SortFunc(recs, func(a, b domsw.Record) int {
		if c := a.CreatedAt().Compare(b.CreatedAt()); c != 0 {
			return c
		}
		return strings.Compare(a.ID(), b.ID())
	})

	return recs, nil
}

// isOrphan reports whether a hash is gone or holds no listing, such as a
// counter left behind by a delete.
func isOrphan(m map[string]string) bool {
	return m[fieldID] == ""
}

// Count returns the number of stored listings.
func (r *Repo) Count(ctx context.Context) (int, error) {
	keys, err := r.store.Scan(ctx, r.key("*"))
	if err != nil {
		return 0, fmt.Errorf("scan software: %w", err)
	}
	return len(keys), nil
}

// Delete removes a listing.
func (r *Repo) Delete(ctx context.Context, id string) error {
	key := r.key(id)
	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("check exists: %w", err)
	}
	if !exists {
		return domain.ErrNotFound
	}
	if err := r.store.Del(ctx, key); err != nil {
		return fmt.Errorf("del software %s: %w", id, err)
	}
	return nil
}

// IncrementDownloads atomically bumps the download counter and returns the new value.
// A listing deleted concurrently reports domain.ErrNotFound and is not recreated.
func (r *Repo) IncrementDownloads(ctx context.Context, id string) (int64, error) {
	n, err := r.store.HIncrBy(ctx, r.key(id), fieldDownloadCount, 1)
	if errors.Is(err, db.ErrKeyNotFound) {
		return 0, domain.ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("hincrby software %s: %w", id, err)
	}
	return n, nil
}
