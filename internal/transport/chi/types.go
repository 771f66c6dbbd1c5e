package chi

import (
	"time"

	"github.com/dustin/go-humanize"

	"github.com/kailas-cloud/softhub/internal/domain/catalog/result"
	domsw "github.com/kailas-cloud/softhub/internal/domain/software"
	adminuc "github.com/kailas-cloud/softhub/internal/usecase/admin"
	cataloguc "github.com/kailas-cloud/softhub/internal/usecase/catalog"
	softwareuc "github.com/kailas-cloud/softhub/internal/usecase/software"
)

const unknownSizeLabel = "Unknown size"

// Software is the JSON representation of a listing.
type Software struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	Description        string    `json:"description"`
	Version            string    `json:"version"`
	Category           string    `json:"category,omitempty"`
	FileURL            string    `json:"file_url,omitempty"`
	FileSize           *int64    `json:"file_size"`
	FileSizeLabel      string    `json:"file_size_label"`
	DownloadCount      int64     `json:"download_count"`
	DownloadCountLabel string    `json:"download_count_label"`
	Featured           bool      `json:"featured"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// SoftwareInput is the admin create/update form.
type SoftwareInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Version     string `json:"version"`
	Category    string `json:"category"`
	FileURL     string `json:"file_url"`
	FileSize    *int64 `json:"file_size"`
	Featured    bool   `json:"featured"`
}

// CatalogPage is one page of catalog results.
type CatalogPage struct {
	Items        []Software `json:"items"`
	TotalMatched int        `json:"total_matched"`
	TotalPages   int        `json:"total_pages"`
	Page         int        `json:"page"`
	PageSize     int        `json:"page_size"`
	HasNext      bool       `json:"has_next"`
	HasPrev      bool       `json:"has_prev"`
}

// SoftwareList wraps a list of listings.
type SoftwareList struct {
	Items []Software `json:"items"`
	Total int        `json:"total"`
}

// Category is a category name with its listing count.
type Category struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// CategoryList wraps the category list.
type CategoryList struct {
	Items []Category `json:"items"`
}

// LoginRequest carries admin credentials.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Admin is the public admin profile.
type Admin struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	Name        string     `json:"name"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}

// LoginResponse is returned on successful login.
type LoginResponse struct {
	Token     string    `json:"token"`
	TokenType string    `json:"token_type"`
	ExpiresAt time.Time `json:"expires_at"`
	Admin     Admin     `json:"admin"`
}

// StatsResponse is the admin dashboard summary.
type StatsResponse struct {
	TotalListings       int            `json:"total_listings"`
	TotalDownloads      int64          `json:"total_downloads"`
	TotalDownloadsLabel string         `json:"total_downloads_label"`
	Featured            int            `json:"featured"`
	ByCategory          map[string]int `json:"by_category"`
}

// HealthResponse is the /health body.
type HealthResponse struct {
	Status   string            `json:"status"`
	Checks   map[string]string `json:"checks"`
	Listings int               `json:"listings"`
}

func softwareToResponse(r domsw.Record) Software {
	out := Software{
		ID:                 r.ID(),
		Name:               r.Name(),
		Description:        r.DisplayDescription(),
		Version:            r.Version(),
		Category:           r.Category(),
		FileURL:            r.FileURL(),
		FileSizeLabel:      unknownSizeLabel,
		DownloadCount:      r.DownloadCount(),
		DownloadCountLabel: humanize.Comma(r.DownloadCount()),
		Featured:           r.Featured(),
		CreatedAt:          r.CreatedAt(),
		UpdatedAt:          r.UpdatedAt(),
	}
	if size, ok := r.FileSize(); ok {
		out.FileSize = &size
		out.FileSizeLabel = humanize.IBytes(uint64(size))
	}
	return out
}

func softwareListToResponse(recs []domsw.Record) []Software {
	out := make([]Software, 0, len(recs))
	for _, r := range recs {
		out = append(out, softwareToResponse(r))
	}
	return out
}

func pageToResponse(res result.Result) CatalogPage {
	return CatalogPage{
		Items:        softwareListToResponse(res.Items()),
		TotalMatched: res.TotalMatched(),
		TotalPages:   res.TotalPages(),
		Page:         res.Page(),
		PageSize:     res.PageSize(),
		HasNext:      res.HasNext(),
		HasPrev:      res.HasPrev(),
	}
}

func categoriesToResponse(cats []cataloguc.Category) CategoryList {
	items := make([]Category, 0, len(cats))
	for _, c := range cats {
		items = append(items, Category{Name: c.Name, Count: c.Count})
	}
	return CategoryList{Items: items}
}

func (in SoftwareInput) toFields() domsw.Fields {
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

func sessionToResponse(sess adminuc.Session) LoginResponse {
	a := Admin{
		ID:    sess.Admin.ID(),
		Email: sess.Admin.Email(),
		Name:  sess.Admin.Name(),
	}
	if last := sess.Admin.LastLoginAt(); !last.IsZero() {
		a.LastLoginAt = &last
	}
	return LoginResponse{
		Token:     sess.Token,
		TokenType: "Bearer",
		ExpiresAt: sess.ExpiresAt,
		Admin:     a,
	}
}

func statsToResponse(st softwareuc.Stats) StatsResponse {
	byCategory := st.ByCategory
	if byCategory == nil {
		byCategory = map[string]int{}
	}
	return StatsResponse{
		TotalListings:       st.TotalListings,
		TotalDownloads:      st.TotalDownloads,
		TotalDownloadsLabel: humanize.Comma(st.TotalDownloads),
		Featured:            st.Featured,
		ByCategory:          byCategory,
	}
}
