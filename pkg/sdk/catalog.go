package softhub

import (
	"context"
	"fmt"
	"time"

	"github.com/kailas-cloud/softhub/internal/domain/catalog/order"
	"github.com/kailas-cloud/softhub/internal/domain/catalog/query"
	"github.com/kailas-cloud/softhub/internal/domain/catalog/sortkey"
)

// CatalogService browses the public catalog.
type CatalogService struct {
	svc    catalogUseCase
	limits query.Limits
	obs    *observer
}

// Browse runs one catalog query: search, category filter, sort and pagination.
// Out-of-range pages are clamped to the nearest valid page.
func (s *CatalogService) Browse(ctx context.Context, q Query) (_ Page, err error) {
	start := time.Now()
	defer func() { s.obs.observe("catalog.browse", start, err) }()

	spec, err := query.New(
		q.Search, q.Category,
		sortkey.Key(q.Sort), order.Direction(q.Order),
		q.Page, q.PageSize,
		s.limits,
	)
	if err != nil {
		return Page{}, fmt.Errorf("browse: %w", err)
	}

	res, err := s.svc.Browse(ctx, spec)
	if err != nil {
		return Page{}, fmt.Errorf("browse: %w", err)
	}
	return fromInternalResult(res), nil
}

// Get retrieves one listing by id.
func (s *CatalogService) Get(ctx context.Context, id string) (_ Software, err error) {
	start := time.Now()
	defer func() { s.obs.observe("catalog.get", start, err) }()

	rec, err := s.svc.Get(ctx, id)
	if err != nil {
		return Software{}, fmt.Errorf("get: %w", err)
	}
	return fromInternalRecord(rec), nil
}

// Featured returns up to limit featured listings, most downloaded first.
// A non-positive limit uses the client's featured limit.
func (s *CatalogService) Featured(ctx context.Context, limit int) (_ []Software, err error) {
	start := time.Now()
	defer func() { s.obs.observe("catalog.featured", start, err) }()

	recs, err := s.svc.Featured(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("featured: %w", err)
	}
	return fromInternalRecords(recs), nil
}

// Categories lists category names with listing counts, ordered by name.
func (s *CatalogService) Categories(ctx context.Context) (_ []Category, err error) {
	start := time.Now()
	defer func() { s.obs.observe("catalog.categories", start, err) }()

	cats, err := s.svc.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("categories: %w", err)
	}
	return fromInternalCategories(cats), nil
}

// Download counts a download and returns the external file URL.
func (s *CatalogService) Download(ctx context.Context, id string) (_ string, err error) {
	start := time.Now()
	defer func() { s.obs.observe("catalog.download", start, err) }()

	url, err := s.svc.Download(ctx, id)
	if err != nil {
		return "", fmt.Errorf("download: %w", err)
	}
	return url, nil
}
