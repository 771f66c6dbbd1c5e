package result

import "github.com/kailas-cloud/softhub/internal/domain/software"

// Result is one page of catalog query output.
type Result struct {
	items        []software.Record
	totalMatched int
	totalPages   int
	page         int
	pageSize     int
}

// New creates a query result.
func New(items []software.Record, totalMatched, totalPages, page, pageSize int) Result {
	return Result{
		items:        items,
		totalMatched: totalMatched,
		totalPages:   totalPages,
		page:         page,
		pageSize:     pageSize,
	}
}

// Items returns the records on the page, in order.
func (r Result) Items() []software.Record { return r.items }

// TotalMatched returns the number of records matching search and category before pagination.
func (r Result) TotalMatched() int { return r.totalMatched }

// TotalPages returns the page count, at least 1.
func (r Result) TotalPages() int { return r.totalPages }

// Page returns the effective 1-based page after clamping.
func (r Result) Page() int { return r.page }

// PageSize returns the page size used for slicing.
func (r Result) PageSize() int { return r.pageSize }

// HasNext reports whether a later page exists.
func (r Result) HasNext() bool { return r.page < r.totalPages }

// HasPrev reports whether an earlier page exists.
func (r Result) HasPrev() bool { return r.page > 1 }

// Range returns the 1-based positions of the first and last item on the page,
// or 0,0 for an empty page ("Showing 13-15 of 15 results").
func (r Result) Range() (first, last int) {
	if len(r.items) == 0 {
		return 0, 0
	}
	first = (r.page-1)*r.pageSize + 1
	return first, first + len(r.items) - 1
}
