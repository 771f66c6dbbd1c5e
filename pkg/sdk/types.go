package softhub

import (
	"time"

	"github.com/kailas-cloud/softhub/internal/domain/catalog/order"
	"github.com/kailas-cloud/softhub/internal/domain/catalog/result"
	"github.com/kailas-cloud/softhub/internal/domain/catalog/sortkey"
	domsw "github.com/kailas-cloud/softhub/internal/domain/software"
	cataloguc "github.com/kailas-cloud/softhub/internal/usecase/catalog"
	softwareuc "github.com/kailas-cloud/softhub/internal/usecase/software"
)

// SortKey selects the attribute catalog results are ordered by.
type SortKey string

// Sort key constants.
const (
	SortName      = SortKey(sortkey.Name)
	SortDownloads = SortKey(sortkey.Downloads)
	SortDate      = SortKey(sortkey.Date)
	SortSize      = SortKey(sortkey.Size)
)

// Order is the sort direction.
type Order string

// Order constants.
const (
	Asc  = Order(order.Asc)
	Desc = Order(order.Desc)
)

// Query selects one page of the catalog. Zero values take the defaults:
// sort by name ascending, first page, the client's default page size.
type Query struct {
	Search   string
	Category string
	Sort     SortKey
	Order    Order
	Page     int
	PageSize int
}

// Software is a catalog listing.
type Software struct {
	ID            string
	Name          string
	Description   string
	Version       string
	Category      string
	FileURL       string
	FileSize      *int64 // nil when unknown
	DownloadCount int64
	Featured      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Input holds the editable attributes of a listing.
type Input struct {
	Name        string
	Description string
	Version     string
	Category    string
	FileURL     string
	FileSize    *int64
	Featured    bool
}

// Page is one page of catalog results.
type Page struct {
	Items        []Software
	TotalMatched int
	TotalPages   int
	Page         int
	PageSize     int
}

// Category is a category name with its listing count.
type Category struct {
	Name  string
	Count int
}

// Stats summarizes the catalog.
type Stats struct {
	TotalListings  int
	TotalDownloads int64
	Featured       int
	ByCategory     map[string]int
}

func fromInternalRecord(r domsw.Record) Software {
	s := Software{
		ID:            r.ID(),
		Name:          r.Name(),
		Description:   r.Description(),
		Version:       r.Version(),
		Category:      r.Category(),
		FileURL:       r.FileURL(),
		DownloadCount: r.DownloadCount(),
		Featured:      r.Featured(),
		CreatedAt:     r.CreatedAt(),
		UpdatedAt:     r.UpdatedAt(),
	}
	if size, ok := r.FileSize(); ok {
		s.FileSize = &size
	}
	return s
}

func fromInternalRecords(recs []domsw.Record) []Software {
	out := make([]Software, 0, len(recs))
	for _, r := range recs {
		out = append(out, fromInternalRecord(r))
	}
	return out
}

func fromInternalResult(res result.Result) Page {
	return Page{
		Items:        fromInternalRecords(res.Items()),
		TotalMatched: res.TotalMatched(),
		TotalPages:   res.TotalPages(),
		Page:         res.Page(),
		PageSize:     res.PageSize(),
	}
}

func fromInternalCategories(cats []cataloguc.Category) []Category {
	out := make([]Category, 0, len(cats))
	for _, c := range cats {
		out = append(out, Category{Name: c.Name, Count: c.Count})
	}
	return out
}

func fromInternalStats(st softwareuc.Stats) Stats {
	return Stats{
		TotalListings:  st.TotalListings,
		TotalDownloads: st.TotalDownloads,
		Featured:       st.Featured,
		ByCategory:     st.ByCategory,
	}
}

func (in Input) toInternal() domsw.Fields {
	return domsw.Fields{
		Name:        in.Name,
		Description: in.Description,
		Version:     in.Version,
		Category:    in.Category,
		FileURL:     in.FileURL,
		FileSize:    in.FileSize,
		Featured:    in.Featured,
	}
}
