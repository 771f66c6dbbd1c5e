package catalog

import (
	"context"

	domsw "github.com/kailas-cloud/softhub/internal/domain/software"
)

// Repository defines the read side of listing storage plus the download counter.
type Repository interface {
	List(ctx context.Context) ([]domsw.Record, error)
	Get(ctx context.Context, id string) (domsw.Record, error)
	IncrementDownloads(ctx context.Context, id string) (int64, error)
}
