package software

import (
	"fmt"
	"strconv"
	"time"

	domsw "github.com/kailas-cloud/softhub/internal/domain/software"
)

// Hash field names.
const (
	fieldID            = "id"
	fieldName          = "name"
	fieldDescription   = "description"
	fieldVersion       = "version"
	fieldCategory      = "category"
	fieldFileURL       = "file_url"
	fieldFileSize      = "file_size"
	fieldDownloadCount = "download_count"
	fieldFeatured      = "featured"
	fieldCreatedAt     = "created_at"
	fieldUpdatedAt     = "updated_at"
)

// recordToHash converts a listing to a map for HSET.
// Every editable field is written so an update can clear optional values;
// an unknown file size is stored as "". The download counter is only
// written when withDownloads is set, so updates never overwrite HINCRBY.
func recordToHash(rec domsw.Record, withDownloads bool) map[string]string {
	size := ""
	if v, ok := rec.FileSize(); ok {
		size = strconv.FormatInt(v, 10)
	}
	featured := "0"
	if rec.Featured() {
		featured = "1"
	}
	m := map[string]string{
		fieldID:          rec.ID(),
		fieldName:        rec.Name(),
		fieldDescription: rec.Description(),
		fieldVersion:     rec.Version(),
		fieldCategory:    rec.Category(),
		fieldFileURL:     rec.FileURL(),
		fieldFileSize:    size,
		fieldFeatured:    featured,
		fieldCreatedAt:   strconv.FormatInt(rec.CreatedAt().UnixMilli(), 10),
		fieldUpdatedAt:   strconv.FormatInt(rec.UpdatedAt().UnixMilli(), 10),
	}
	if withDownloads {
		m[fieldDownloadCount] = strconv.FormatInt(rec.DownloadCount(), 10)
	}
	return m
}

// recordFromHash hydrates a listing from an HGETALL result map.
func recordFromHash(m map[string]string) (domsw.Record, error) {
	id := m[fieldID]
	if id == "" {
		return domsw.Record{}, fmt.Errorf("missing %s", fieldID)
	}

	f := domsw.Fields{
		Name:        m[fieldName],
		Description: m[fieldDescription],
		Version:     m[fieldVersion],
		Category:    m[fieldCategory],
		FileURL:     m[fieldFileURL],
		Featured:    m[fieldFeatured] == "1",
	}
	if raw := m[fieldFileSize]; raw != "" {
		size, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return domsw.Record{}, fmt.Errorf("invalid %s: %w", fieldFileSize, err)
		}
		f.FileSize = &size
	}

	downloads, err := parseInt(m, fieldDownloadCount)
	if err != nil {
		return domsw.Record{}, err
	}
	createdAt, err := parseMillis(m, fieldCreatedAt)
	if err != nil {
		return domsw.Record{}, err
	}
	updatedAt, err := parseMillis(m, fieldUpdatedAt)
	if err != nil {
		return domsw.Record{}, err
	}

	return domsw.Reconstruct(id, f, downloads, createdAt, updatedAt), nil
}

func parseInt(m map[string]string, field string) (int64, error) {
	raw := m[field]
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", field, err)
	}
	return v, nil
}

func parseMillis(m map[string]string, field string) (time.Time, error) {
	ms, err := parseInt(m, field)
	if err != nil {
		return time.Time{}, err
	}
	return time.UnixMilli(ms).UTC(), nil
}
