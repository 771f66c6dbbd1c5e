package softhub

import (
	"context"

	"github.com/kailas-cloud/softhub/internal/domain/catalog/query"
	"github.com/kailas-cloud/softhub/internal/domain/catalog/result"
	domsw "github.com/kailas-cloud/softhub/internal/domain/software"
	cataloguc "github.com/kailas-cloud/softhub/internal/usecase/catalog"
	softwareuc "github.com/kailas-cloud/softhub/internal/usecase/software"
)

// --- catalogUseCase mock ---

type mockCatalogUC struct {
	browseFn     func(ctx context.Context, spec query.Spec) (result.Result, error)
	getFn        func(ctx context.Context, id string) (domsw.Record, error)
	featuredFn   func(ctx context.Context, limit int) ([]domsw.Record, error)
	categoriesFn func(ctx context.Context) ([]cataloguc.Category, error)
	downloadFn   func(ctx context.Context, id string) (string, error)
}

func (m *mockCatalogUC) Browse(ctx context.Context, spec query.Spec) (result.Result, error) {
	return m.browseFn(ctx, spec)
}

func (m *mockCatalogUC) Get(ctx context.Context, id string) (domsw.Record, error) {
	return m.getFn(ctx, id)
}

func (m *mockCatalogUC) Featured(ctx context.Context, limit int) ([]domsw.Record, error) {
	return m.featuredFn(ctx, limit)
}

func (m *mockCatalogUC) Categories(ctx context.Context) ([]cataloguc.Category, error) {
	return m.categoriesFn(ctx)
}

func (m *mockCatalogUC) Download(ctx context.Context, id string) (string, error) {
	return m.downloadFn(ctx, id)
}

// --- listingUseCase mock ---

type mockListingUC struct {
	createFn func(ctx context.Context, f domsw.Fields) (domsw.Record, error)
	updateFn func(ctx context.Context, id string, f domsw.Fields) (domsw.Record, error)
	deleteFn func(ctx context.Context, id string) error
	getFn    func(ctx context.Context, id string) (domsw.Record, error)
	listFn   func(ctx context.Context, search string) ([]domsw.Record, error)
	statsFn  func(ctx context.Context) (softwareuc.Stats, error)
	seedFn   func(ctx context.Context, recs []domsw.Record) (int, error)
}

func (m *mockListingUC) Create(ctx context.Context, f domsw.Fields) (domsw.Record, error) {
	return m.createFn(ctx, f)
}

func (m *mockListingUC) Update(ctx context.Context, id string, f domsw.Fields) (domsw.Record, error) {
	return m.updateFn(ctx, id, f)
}

func (m *mockListingUC) Delete(ctx context.Context, id string) error {
	return m.deleteFn(ctx, id)
}

func (m *mockListingUC) Get(ctx context.Context, id string) (domsw.Record, error) {
	return m.getFn(ctx, id)
}

func (m *mockListingUC) List(ctx context.Context, search string) ([]domsw.Record, error) {
	return m.listFn(ctx, search)
}

func (m *mockListingUC) Stats(ctx context.Context) (softwareuc.Stats, error) {
	return m.statsFn(ctx)
}

func (m *mockListingUC) SeedIfEmpty(ctx context.Context, recs []domsw.Record) (int, error) {
	return m.seedFn(ctx, recs)
}
