package software

import (
	"net/url"
	"strings"
	"time"

	"github.com/kailas-cloud/softhub/internal/domain"
)

// NoDescription is shown in place of an empty description.
const NoDescription = "No description available."

// MaxNameLength is the maximum listing name length in bytes.
const MaxNameLength = 256

// Fields holds the admin-editable attributes of a listing.
type Fields struct {
	Name        string
	Description string
	Version     string
	Category    string
	FileURL     string
	FileSize    *int64
	Featured    bool
}

// Record is a single software listing (immutable value object).
type Record struct {
	id            string
	name          string
	description   string
	version       string
	category      string
	fileURL       string
	fileSize      int64
	hasFileSize   bool
	downloadCount int64
	featured      bool
	createdAt     time.Time
	updatedAt     time.Time
}

// New validates admin input and creates a listing with zero downloads.
// Name, description, version and category are required.
func New(id string, f Fields, now time.Time) (Record, error) {
	if id == "" {
		return Record{}, domain.NewFieldError("id", "is required")
	}
	if err := f.Validate(); err != nil {
		return Record{}, err
	}
	r := fromFields(id, f.normalized())
	r.createdAt = now.UTC()
	r.updatedAt = now.UTC()
	return r, nil
}

// Reconstruct creates a Record without validation (storage hydration).
func Reconstruct(id string, f Fields, downloadCount int64, createdAt, updatedAt time.Time) Record {
	r := fromFields(id, f)
	r.downloadCount = downloadCount
	r.createdAt = createdAt
	r.updatedAt = updatedAt
	return r
}

// Validate checks the admin form rules.
func (f Fields) Validate() error {
	n := f.normalized()
	switch {
	case n.Name == "":
		return domain.NewFieldError("name", "is required")
	case len(n.Name) > MaxNameLength:
		return domain.NewFieldError("name", "is too long")
	case n.Description == "":
		return domain.NewFieldError("description", "is required")
	case n.Version == "":
		return domain.NewFieldError("version", "is required")
	case n.Category == "":
		return domain.NewFieldError("category", "is required")
	}
	if n.FileURL != "" {
		u, err := url.Parse(n.FileURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return domain.NewFieldError("file_url", "must be an absolute http(s) URL")
		}
	}
	if n.FileSize != nil && *n.FileSize < 0 {
		return domain.NewFieldError("file_size", "must not be negative")
	}
	return nil
}

func (f Fields) normalized() Fields {
	f.Name = strings.TrimSpace(f.Name)
	f.Description = strings.TrimSpace(f.Description)
	f.Version = strings.TrimSpace(f.Version)
	f.Category = strings.TrimSpace(f.Category)
	f.FileURL = strings.TrimSpace(f.FileURL)
	return f
}

func fromFields(id string, f Fields) Record {
	r := Record{
		id:          id,
		name:        f.Name,
		description: f.Description,
		version:     f.Version,
		category:    f.Category,
		fileURL:     f.FileURL,
		featured:    f.Featured,
	}
	if f.FileSize != nil {
		r.fileSize = *f.FileSize
		r.hasFileSize = true
	}
	return r
}

// ID returns the listing identifier.
func (r Record) ID() string { return r.id }

// Name returns the display name.
func (r Record) Name() string { return r.name }

// Description returns the raw description (may be empty).
func (r Record) Description() string { return r.description }

// DisplayDescription returns the description or NoDescription when empty.
func (r Record) DisplayDescription() string {
	if r.description == "" {
		return NoDescription
	}
	return r.description
}

// Version returns the version label (may be empty).
func (r Record) Version() string { return r.version }

// Category returns the category name, empty when the listing has none.
func (r Record) Category() string { return r.category }

// HasCategory reports whether the listing belongs to a category.
func (r Record) HasCategory() bool { return r.category != "" }

// FileURL returns the external download URL (may be empty).
func (r Record) FileURL() string { return r.fileURL }

// FileSize returns the file size in bytes and whether it is known.
func (r Record) FileSize() (int64, bool) { return r.fileSize, r.hasFileSize }

// SizeOrZero returns the file size, treating an unknown size as 0.
func (r Record) SizeOrZero() int64 {
	if !r.hasFileSize {
		return 0
	}
	return r.fileSize
}

// DownloadCount returns the number of recorded downloads.
func (r Record) DownloadCount() int64 { return r.downloadCount }

// Featured reports whether the listing is promoted on the home page.
func (r Record) Featured() bool { return r.featured }

// CreatedAt returns the creation time.
func (r Record) CreatedAt() time.Time { return r.createdAt }

// UpdatedAt returns the last modification time.
func (r Record) UpdatedAt() time.Time { return r.updatedAt }

// Fields returns the admin-editable attributes.
func (r Record) Fields() Fields {
	f := Fields{
		Name:        r.name,
		Description: r.description,
		Version:     r.version,
		Category:    r.category,
		FileURL:     r.fileURL,
		Featured:    r.featured,
	}
	if r.hasFileSize {
		size := r.fileSize
		f.FileSize = &size
	}
	return f
}

// WithFields validates f and returns a copy with the editable attributes replaced.
// ID, creation time and download count are preserved.
func (r Record) WithFields(f Fields, now time.Time) (Record, error) {
	if err := f.Validate(); err != nil {
		return Record{}, err
	}
	next := fromFields(r.id, f.normalized())
	next.downloadCount = r.downloadCount
	next.createdAt = r.createdAt
	next.updatedAt = now.UTC()
	return next, nil
}
