package softhub

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kailas-cloud/softhub/internal/db"
	dbRedis "github.com/kailas-cloud/softhub/internal/db/redis"
	dbSQLite "github.com/kailas-cloud/softhub/internal/db/sqlite"
	"github.com/kailas-cloud/softhub/internal/domain/catalog/query"
	"github.com/kailas-cloud/softhub/internal/domain/catalog/result"
	domsw "github.com/kailas-cloud/softhub/internal/domain/software"
	softwarerepo "github.com/kailas-cloud/softhub/internal/repository/software"
	cataloguc "github.com/kailas-cloud/softhub/internal/usecase/catalog"
	healthuc "github.com/kailas-cloud/softhub/internal/usecase/health"
	softwareuc "github.com/kailas-cloud/softhub/internal/usecase/software"
)

const (
	defaultReadinessTimeout = 10 * time.Second
	defaultKeyPrefix        = "softhub:"

	driverSQLite = "sqlite"
	driverRedis  = "redis"
	driverValkey = "valkey"
)

// Internal interfaces, swapped for mocks in tests.
type catalogUseCase interface {
	Browse(ctx context.Context, spec query.Spec) (result.Result, error)
	Get(ctx context.Context, id string) (domsw.Record, error)
	Featured(ctx context.Context, limit int) ([]domsw.Record, error)
	Categories(ctx context.Context) ([]cataloguc.Category, error)
	Download(ctx context.Context, id string) (string, error)
}

type listingUseCase interface {
	Create(ctx context.Context, f domsw.Fields) (domsw.Record, error)
	Update(ctx context.Context, id string, f domsw.Fields) (domsw.Record, error)
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (domsw.Record, error)
	List(ctx context.Context, search string) ([]domsw.Record, error)
	Stats(ctx context.Context) (softwareuc.Stats, error)
	SeedIfEmpty(ctx context.Context, recs []domsw.Record) (int, error)
}

// Client is the softhub SDK entry point.
type Client struct {
	store      db.Store
	catalogSvc catalogUseCase
	listingSvc listingUseCase
	healthSvc  healthUseCase
	limits     query.Limits
	obs        *observer
}

// New creates a softhub Client and connects to the database.
// The provided context is used for the initial readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{keyPrefix: defaultKeyPrefix}
	for _, o := range opts {
		o.apply(cfg)
	}

	if cfg.driver == "" {
		return nil, errors.New("softhub: storage required (use WithSQLite, WithValkey or WithRedis)")
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	store, err := createStore(cfg)
	if err != nil {
		return nil, err
	}

	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("softhub: database not ready: %w", err)
	}

	return wireClient(store, cfg, obs), nil
}

func createStore(cfg *clientConfig) (db.Store, error) {
	switch cfg.driver {
	case driverSQLite:
		s, err := dbSQLite.Open(cfg.path)
		if err != nil {
			return nil, fmt.Errorf("softhub: open sqlite store: %w", err)
		}
		return s, nil
	case driverValkey, driverRedis:
		if len(cfg.addrs) == 0 || cfg.addrs[0] == "" {
			return nil, fmt.Errorf("softhub: %s address required", cfg.driver)
		}
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.addrs,
			Password: cfg.password,
		})
		if err != nil {
			return nil, fmt.Errorf("softhub: create %s store: %w", cfg.driver, err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("softhub: unknown driver %q", cfg.driver)
	}
}

func wireClient(store db.Store, cfg *clientConfig, obs *observer) *Client {
	repo := softwarerepo.New(store, cfg.keyPrefix)

	limits := query.DefaultLimits()
	if cfg.defaultPageSize > 0 {
		limits.DefaultPageSize = cfg.defaultPageSize
	}
	if cfg.maxPageSize > 0 {
		limits.MaxPageSize = cfg.maxPageSize
	}

	return &Client{
		store:      store,
		catalogSvc: cataloguc.New(repo, cfg.featuredLimit, cfg.logger),
		listingSvc: softwareuc.New(repo, cfg.logger),
		healthSvc:  healthuc.New(store, repo),
		limits:     limits,
		obs:        obs,
	}
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks database connectivity.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("ping", start, err) }()

	if err = c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Catalog returns the public catalog service.
func (c *Client) Catalog() *CatalogService {
	return &CatalogService{svc: c.catalogSvc, limits: c.limits, obs: c.obs}
}

// Listings returns the listing administration service.
func (c *Client) Listings() *ListingService {
	return &ListingService{svc: c.listingSvc, obs: c.obs}
}
