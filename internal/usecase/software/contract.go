package software

import (
	"context"

	domsw "github.com/kailas-cloud/softhub/internal/domain/software"
)

// Repository defines the storage contract for listings.
type Repository interface {
	Create(ctx context.Context, rec domsw.Record) error
	CreateMany(ctx context.Context, recs []domsw.Record) error
	Update(ctx context.Context, rec domsw.Record) error
	Get(ctx context.Context, id string) (domsw.Record, error)
	List(ctx context.Context) ([]domsw.Record, error)
	Count(ctx context.Context) (int, error)
	Delete(ctx context.Context, id string) error
}
