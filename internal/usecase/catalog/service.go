package catalog

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/kailas-cloud/softhub/internal/domain"
	"github.com/kailas-cloud/softhub/internal/domain/catalog/engine"
	"github.com/kailas-cloud/softhub/internal/domain/catalog/order"
	"github.com/kailas-cloud/softhub/internal/domain/catalog/query"
	"github.com/kailas-cloud/softhub/internal/domain/catalog/result"
	"github.com/kailas-cloud/softhub/internal/domain/catalog/sortkey"
	domsw "github.com/kailas-cloud/softhub/internal/domain/software"
	"github.com/kailas-cloud/softhub/internal/metrics"
)

// DefaultFeaturedLimit is the number of featured listings on the home page.
const DefaultFeaturedLimit = 6

const uncategorized = "uncategorized"

// Category is a category name with the number of listings in it.
type Category struct {
	Name  string
	Count int
}

// Service serves the public catalog: browsing, details and downloads.
type Service struct {
	repo          Repository
	featuredLimit int
	logger        *zap.Logger
}

// New creates a catalog service. A non-positive featuredLimit falls back to DefaultFeaturedLimit.
func New(repo Repository, featuredLimit int, logger *zap.Logger) *Service {
	if featuredLimit <= 0 {
		featuredLimit = DefaultFeaturedLimit
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, featuredLimit: featuredLimit, logger: logger}
}

// Browse loads the catalog and runs one query over it.
func (s *Service) Browse(ctx context.Context, spec query.Spec) (result.Result, error) {
	start := time.Now()
	sortLabel, orderLabel := string(spec.SortKey), string(spec.Order)

	recs, err := s.repo.List(ctx)
	if err != nil {
		metrics.CatalogQueriesTotal.WithLabelValues(sortLabel, orderLabel, "error").Inc()
		return result.Result{}, fmt.Errorf("list software: %w", err)
	}

	res, err := engine.Query(recs, spec)
	if err != nil {
		metrics.CatalogQueriesTotal.WithLabelValues(sortLabel, orderLabel, "invalid").Inc()
		return result.Result{}, fmt.Errorf("query catalog: %w", err)
	}

	metrics.CatalogQueriesTotal.WithLabelValues(sortLabel, orderLabel, "ok").Inc()
	metrics.CatalogQueryDuration.WithLabelValues(sortLabel).Observe(time.Since(start).Seconds())
	metrics.CatalogQueryMatched.Observe(float64(res.TotalMatched()))
	metrics.CatalogListings.Set(float64(len(recs)))

	return res, nil
}

// Get returns one listing.
func (s *Service) Get(ctx context.Context, id string) (domsw.Record, error) {
	rec, err := s.repo.Get(ctx, id)
	if err != nil {
		return domsw.Record{}, fmt.Errorf("get software: %w", err)
	}
	return rec, nil
}

// Featured returns up to limit featured listings, most downloaded first.
// A non-positive limit uses the configured default.
func (s *Service) Featured(ctx context.Context, limit int) ([]domsw.Record, error) {
	if limit <= 0 {
		limit = s.featuredLimit
	}
	recs, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list software: %w", err)
	}

	featured := slices.DeleteFunc(slices.Clone(recs), func(r domsw.Record) bool { return !r.Featured() })
	res, err := engine.Query(featured, query.Spec{
		SortKey:  sortkey.Downloads,
		Order:    order.Desc,
		Page:     1,
		PageSize: limit,
	})
	if err != nil {
		return nil, fmt.Errorf("query featured: %w", err)
	}
	return res.Items(), nil
}

// Categories returns the distinct category names with listing counts, ordered by name.
// Names differing only in case are counted together under the first spelling seen.
func (s *Service) Categories(ctx context.Context) ([]Category, error) {
	recs, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list software: %w", err)
	}

	lower := cases.Lower(language.Und)
	index := make(map[string]int)
	var out []Category
	for _, r := range recs {
		if !r.HasCategory() {
			continue
		}
		key := lower.String(r.Category())
		if i, ok := index[key]; ok {
			out[i].Count++
			continue
		}
		index[key] = len(out)
		out = append(out, Category{Name: r.Category(), Count: 1})
	}

	slices.SortFunc(out, func(a, b Category) int {
		return strings.Compare(lower.String(a.Name), lower.String(b.Name))
	})
	if out == nil {
		out = []Category{}
	}
	return out, nil
}

// Download records a download and returns the external file URL.
func (s *Service) Download(ctx context.Context, id string) (string, error) {
	rec, err := s.repo.Get(ctx, id)
	if err != nil {
		return "", fmt.Errorf("get software: %w", err)
	}
	if rec.FileURL() == "" {
		return "", fmt.Errorf("software %s: %w", id, domain.ErrDownloadUnavailable)
	}

	count, err := s.repo.IncrementDownloads(ctx, id)
	if err != nil {
		return "", fmt.Errorf("increment downloads: %w", err)
	}

	category := rec.Category()
	if category == "" {
		category = uncategorized
	}
	metrics.DownloadsTotal.WithLabelValues(category).Inc()
	s.logger.Info("Download redirect",
		zap.String("software_id", id),
		zap.String("name", rec.Name()),
		zap.Int64("download_count", count),
	)

	return rec.FileURL(), nil
}
