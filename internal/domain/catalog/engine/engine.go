// Package engine runs catalog queries over an in-memory slice of listings.
//
// Query is a pure function: it performs no I/O, never reorders or mutates
// its input and keeps no state between calls, so concurrent callers need no
// locking. Case-insensitive matching lowercases both sides; no full case folding,
// so "ss" does not match "ß".
package engine

import (
	"cmp"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/kailas-cloud/softhub/internal/domain/catalog/order"
	"github.com/kailas-cloud/softhub/internal/domain/catalog/query"
	"github.com/kailas-cloud/softhub/internal/domain/catalog/result"
	"github.com/kailas-cloud/softhub/internal/domain/catalog/sortkey"
	"github.com/kailas-cloud/softhub/internal/domain/software"
)

// entry pairs a record with its precomputed name sort key.
type entry struct {
	rec  software.Record
	name string
}

// Query filters, sorts and paginates records according to spec.
// Returns domain.ErrInvalidSpec if the spec violates a structural precondition.
func Query(records []software.Record, spec query.Spec) (result.Result, error) {
	if err := spec.Validate(); err != nil {
		return result.Result{}, err
	}

	// Casers are stateful; one per call keeps Query safe for concurrent use.
	m := newMatcher(spec.SearchText, spec.Category)
	lower := m.lower

	matched := make([]entry, 0, len(records))
	for _, r := range records {
		if !m.match(r) {
			continue
		}
		e := entry{rec: r}
		if spec.SortKey == sortkey.Name {
			e.name = lower.String(r.Name())
		}
		matched = append(matched, e)
	}

	sortEntries(matched, spec.SortKey, spec.Order)

	total := len(matched)
	totalPages := pageCount(total, spec.PageSize)
	page := min(max(spec.Page, 1), totalPages)

	start := min((page-1)*spec.PageSize, total)
	end := start + min(spec.PageSize, total-start)

	items := make([]software.Record, 0, end-start)
	for _, e := range matched[start:end] {
		items = append(items, e.rec)
	}

	return result.New(items, total, totalPages, page, spec.PageSize), nil
}

type matcher struct {
	lower    cases.Caser
	search   string
	category string
}

func newMatcher(search, category string) *matcher {
	lower := cases.Lower(language.Und)
	return &matcher{
		lower:    lower,
		search:   lower.String(search),
		category: lower.String(category),
	}
}

// match applies search (name OR description) AND category filters.
func (m *matcher) match(r software.Record) bool {
	if m.search != "" &&
		!strings.Contains(m.lower.String(r.Name()), m.search) &&
		!strings.Contains(m.lower.String(r.Description()), m.search) {
		return false
	}
	if m.category != "" {
		if !r.HasCategory() || m.lower.String(r.Category()) != m.category {
			return false
		}
	}
	return true
}

// sortEntries applies a stable sort; equal keys keep input order in both directions.
func sortEntries(entries []entry, key sortkey.Key, dir order.Direction) {
	cmpFn := comparator(key)
	if dir == order.Desc {
		slices.SortStableFunc(entries, func(a, b entry) int { return cmpFn(b, a) })
		return
	}
	slices.SortStableFunc(entries, cmpFn)
}

func comparator(key sortkey.Key) func(a, b entry) int {
	switch key {
	case sortkey.Downloads:
		return func(a, b entry) int { return cmp.Compare(a.rec.DownloadCount(), b.rec.DownloadCount()) }
	case sortkey.Date:
		return func(a, b entry) int { return a.rec.CreatedAt().Compare(b.rec.CreatedAt()) }
	case sortkey.Size:
		return func(a, b entry) int { return cmp.Compare(a.rec.SizeOrZero(), b.rec.SizeOrZero()) }
	default:
		return func(a, b entry) int { return strings.Compare(a.name, b.name) }
	}
}

// pageCount returns ceil(total/size), at least 1.
func pageCount(total, size int) int {
	pages := total / size
	if total%size != 0 {
		pages++
	}
	return max(pages, 1)
}
