package softhub

import (
	"context"
	"fmt"
	"time"

	"github.com/kailas-cloud/softhub/internal/seed"
)

// ListingService manages catalog listings.
type ListingService struct {
	svc listingUseCase
	obs *observer
}

// Create validates in and stores a new listing with zero downloads.
func (s *ListingService) Create(ctx context.Context, in Input) (_ Software, err error) {
	start := time.Now()
	defer func() { s.obs.observe("listing.create", start, err) }()

	rec, err := s.svc.Create(ctx, in.toInternal())
	if err != nil {
		return Software{}, fmt.Errorf("create listing: %w", err)
	}
	return fromInternalRecord(rec), nil
}

// Update replaces the editable attributes of a listing.
// The id, creation time and download count are kept.
func (s *ListingService) Update(ctx context.Context, id string, in Input) (_ Software, err error) {
	start := time.Now()
	defer func() { s.obs.observe("listing.update", start, err) }()

	rec, err := s.svc.Update(ctx, id, in.toInternal())
	if err != nil {
		return Software{}, fmt.Errorf("update listing: %w", err)
	}
	return fromInternalRecord(rec), nil
}

// Delete removes a listing.
func (s *ListingService) Delete(ctx context.Context, id string) (err error) {
	start := time.Now()
	defer func() { s.obs.observe("listing.delete", start, err) }()

	if err = s.svc.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete listing: %w", err)
	}
	return nil
}

// List returns listings whose name or category contains search, newest first.
func (s *ListingService) List(ctx context.Context, search string) (_ []Software, err error) {
	start := time.Now()
	defer func() { s.obs.observe("listing.list", start, err) }()

	recs, err := s.svc.List(ctx, search)
	if err != nil {
		return nil, fmt.Errorf("list listings: %w", err)
	}
	return fromInternalRecords(recs), nil
}

// Stats returns catalog totals.
func (s *ListingService) Stats(ctx context.Context) (_ Stats, err error) {
	start := time.Now()
	defer func() { s.obs.observe("listing.stats", start, err) }()

	st, err := s.svc.Stats(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("stats: %w", err)
	}
	return fromInternalStats(st), nil
}

// SeedDemo loads the demo catalog when no listings exist yet.
// Returns the number of listings written.
func (s *ListingService) SeedDemo(ctx context.Context) (_ int, err error) {
	start := time.Now()
	defer func() { s.obs.observe("listing.seed", start, err) }()

	n, err := s.svc.SeedIfEmpty(ctx, seed.DemoCatalog())
	if err != nil {
		return 0, fmt.Errorf("seed demo: %w", err)
	}
	return n, nil
}
