package software

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	domsw "github.com/kailas-cloud/softhub/internal/domain/software"
)

// Stats summarizes the catalog for the admin dashboard.
type Stats struct {
	TotalListings  int
	TotalDownloads int64
	Featured       int
	ByCategory     map[string]int
}

// Service handles listing administration. Writes are serialized.
type Service struct {
	repo   Repository
	logger *zap.Logger

	mu    sync.Mutex
	now   func() time.Time
	newID func() (string, error)
}

// New creates a listing administration service.
func New(repo Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repo:   repo,
		logger: logger,
		now:    time.Now,
		newID:  newUUIDv7,
	}
}

func newUUIDv7() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("generate id: %w", err)
	}
	return id.String(), nil
}

// Create validates the form and stores a new listing with zero downloads.
func (s *Service) Create(ctx context.Context, f domsw.Fields) (domsw.Record, error) {
	id, err := s.newID()
	if err != nil {
		return domsw.Record{}, err
	}
	rec, err := domsw.New(id, f, s.now())
	if err != nil {
		return domsw.Record{}, fmt.Errorf("validate software: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.Create(ctx, rec); err != nil {
		return domsw.Record{}, fmt.Errorf("create software: %w", err)
	}
	s.logger.Info("Software created", zap.String("software_id", id), zap.String("name", rec.Name()))
	return rec, nil
}

// Update replaces the editable fields of a listing.
// ID, creation time and download count are preserved.
func (s *Service) Update(ctx context.Context, id string, f domsw.Fields) (domsw.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return domsw.Record{}, fmt.Errorf("get software: %w", err)
	}
	next, err := current.WithFields(f, s.now())
	if err != nil {
		return domsw.Record{}, fmt.Errorf("validate software: %w", err)
	}
	if err := s.repo.Update(ctx, next); err != nil {
		return domsw.Record{}, fmt.Errorf("update software: %w", err)
	}
	s.logger.Info("Software updated", zap.String("software_id", id))
	return next, nil
}

// Delete removes a listing.
func (s *Service) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete software: %w", err)
	}
	s.logger.Info("Software deleted", zap.String("software_id", id))
	return nil
}

// Get returns one listing.
func (s *Service) Get(ctx context.Context, id string) (domsw.Record, error) {
	rec, err := s.repo.Get(ctx, id)
	if err != nil {
		return domsw.Record{}, fmt.Errorf("get software: %w", err)
	}
	return rec, nil
}

// List returns listings whose name or category contains search
// (case-insensitive), newest first. Empty search returns everything.
func (s *Service) List(ctx context.Context, search string) ([]domsw.Record, error) {
	recs, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list software: %w", err)
	}

	lower := cases.Lower(language.Und)
	needle := lower.String(strings.TrimSpace(search))
	out := make([]domsw.Record, 0, len(recs))
	for _, r := range recs {
		if needle == "" ||
			strings.Contains(lower.String(r.Name()), needle) ||
			strings.Contains(lower.String(r.Category()), needle) {
			out = append(out, r)
		}
	}

	slices.SortStableFunc(out, func(a, b domsw.Record) int {
		return b.CreatedAt().Compare(a.CreatedAt())
	})
	return out, nil
}

// Stats returns dashboard totals.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	recs, err := s.repo.List(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("list software: %w", err)
	}

	st := Stats{TotalListings: len(recs), ByCategory: make(map[string]int)}
	for _, r := range recs {
		st.TotalDownloads += r.DownloadCount()
		if r.Featured() {
			st.Featured++
		}
		if r.HasCategory() {
			st.ByCategory[r.Category()]++
		}
	}
	return st, nil
}

// SeedIfEmpty stores recs when the catalog has no listings yet.
// Returns the number of listings written.
func (s *Service) SeedIfEmpty(ctx context.Context, recs []domsw.Record) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, err := s.repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count software: %w", err)
	}
	if n > 0 || len(recs) == 0 {
		return 0, nil
	}
	if err := s.repo.CreateMany(ctx, recs); err != nil {
		return 0, fmt.Errorf("seed software: %w", err)
	}
	s.logger.Info("Catalog seeded", zap.Int("listings", len(recs)))
	return len(recs), nil
}
