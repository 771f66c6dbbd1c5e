package health

import "context"

// DBPinger checks database availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// CatalogCounter reads the number of stored listings.
type CatalogCounter interface {
	Count(ctx context.Context) (int, error)
}
