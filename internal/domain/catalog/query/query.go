package query

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/kailas-cloud/softhub/internal/domain"
	"github.com/kailas-cloud/softhub/internal/domain/catalog/order"
	"github.com/kailas-cloud/softhub/internal/domain/catalog/sortkey"
)

// Catalog query limits.
const (
	// MaxSearchLength is the maximum accepted search text length in characters (runes).
	MaxSearchLength = 256
	DefaultPageSize = 12
	MaxPageSize     = 100
)

// Spec is the combined search/filter/sort/page parameters of one catalog query.
// It is a plain value: callers build a new Spec for every query.
type Spec struct {
	SearchText string
	Category   string
	SortKey    sortkey.Key
	Order      order.Direction
	Page       int
	PageSize   int
}

// Limits bounds the page size accepted by New.
type Limits struct {
	DefaultPageSize int
	MaxPageSize     int
}

// DefaultLimits returns the built-in page size limits.
func DefaultLimits() Limits {
	return Limits{DefaultPageSize: DefaultPageSize, MaxPageSize: MaxPageSize}
}

// New normalizes raw caller input into a Spec.
// Defaults: sort=name, order=asc, page=1, pageSize=limits.DefaultPageSize.
// Page size is clamped to limits.MaxPageSize.
func New(
	searchText, category string,
	key sortkey.Key, dir order.Direction,
	page, pageSize int,
	limits Limits,
) (Spec, error) {
	searchText = strings.TrimSpace(searchText)
	category = strings.TrimSpace(category)

	if utf8.RuneCountInString(searchText) > MaxSearchLength {
		return Spec{}, fmt.Errorf("%w: search text too long (max %d chars)", domain.ErrInvalidSpec, MaxSearchLength)
	}
	if key == "" {
		key = sortkey.Default
	}
	if dir == "" {
		dir = order.Default
	}
	if limits.DefaultPageSize <= 0 {
		limits.DefaultPageSize = DefaultPageSize
	}
	if limits.MaxPageSize <= 0 {
		limits.MaxPageSize = MaxPageSize
	}
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = limits.DefaultPageSize
	}
	if pageSize > limits.MaxPageSize {
		pageSize = limits.MaxPageSize
	}

	s := Spec{
		SearchText: searchText,
		Category:   category,
		SortKey:    key,
		Order:      dir,
		Page:       page,
		PageSize:   pageSize,
	}
	if err := s.Validate(); err != nil {
		return Spec{}, err
	}
	return s, nil
}

// Validate checks the structural preconditions of the spec.
// Page is not checked: out-of-range pages are clamped when the query runs.
func (s Spec) Validate() error {
	if s.PageSize <= 0 {
		return fmt.Errorf("%w: page size must be positive, got %d", domain.ErrInvalidSpec, s.PageSize)
	}
	if !s.SortKey.IsValid() {
		return fmt.Errorf("%w: unknown sort key %q", domain.ErrInvalidSpec, s.SortKey)
	}
	if !s.Order.IsValid() {
		return fmt.Errorf("%w: unknown sort order %q", domain.ErrInvalidSpec, s.Order)
	}
	return nil
}

// WithPage returns a copy of the spec pointing at another page.
func (s Spec) WithPage(page int) Spec {
	s.Page = page
	return s
}

// HasFilters reports whether search text or a category filter is set.
func (s Spec) HasFilters() bool {
	return s.SearchText != "" || s.Category != ""
}
