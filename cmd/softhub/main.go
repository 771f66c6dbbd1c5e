package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/kailas-cloud/softhub/internal/auth"
	"github.com/kailas-cloud/softhub/internal/config"
	"github.com/kailas-cloud/softhub/internal/db"
	dbRedis "github.com/kailas-cloud/softhub/internal/db/redis"
	dbSQLite "github.com/kailas-cloud/softhub/internal/db/sqlite"
	logpkg "github.com/kailas-cloud/softhub/internal/logger"
	"github.com/kailas-cloud/softhub/internal/metrics"
	adminrepo "github.com/kailas-cloud/softhub/internal/repository/admin"
	"github.com/kailas-cloud/softhub/internal/repository/attempts"
	"github.com/kailas-cloud/softhub/internal/repository/revocation"
	softwarerepo "github.com/kailas-cloud/softhub/internal/repository/software"
	"github.com/kailas-cloud/softhub/internal/seed"
	chiTransport "github.com/kailas-cloud/softhub/internal/transport/chi"
	adminuc "github.com/kailas-cloud/softhub/internal/usecase/admin"
	cataloguc "github.com/kailas-cloud/softhub/internal/usecase/catalog"
	healthuc "github.com/kailas-cloud/softhub/internal/usecase/health"
	softwareuc "github.com/kailas-cloud/softhub/internal/usecase/software"
	"github.com/kailas-cloud/softhub/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting softhub API server",
		zap.String("build", version.String()),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("db_driver", cfg.Database.Driver),
		zap.Strings("db_addrs", cfg.Database.Addrs),
	)

	store, err := openStore(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	// Wait for database to be ready
	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	// Register catalog metrics explicitly (no init())
	metrics.RegisterCatalogMetrics()

	issuer, err := auth.NewIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL())
	if err != nil {
		logger.Fatal("Invalid token settings", zap.Error(err))
	}

	// Repositories
	prefix := cfg.Storage.KeyPrefix
	swRepo := softwarerepo.New(store, prefix)
	adminRepo := adminrepo.New(store, prefix)
	revocations := revocation.New(store, prefix)
	loginAttempts := attempts.New(store, prefix, cfg.Auth.LockoutWindow())

	// Use case services
	catalogSvc := cataloguc.New(swRepo, cfg.Catalog.FeaturedLimit, logger)
	softwareSvc := softwareuc.New(swRepo, logger)
	adminSvc := adminuc.New(adminRepo, revocations, issuer, cfg.Auth.BcryptCost, logger).
		WithLoginThrottle(loginAttempts, cfg.Auth.MaxLoginAttempts)
	healthSvc := healthuc.New(store, swRepo)

	if _, err := adminSvc.EnsureBootstrapAdmin(ctx,
		cfg.Auth.AdminEmail, cfg.Auth.AdminPassword, cfg.Auth.AdminName); err != nil {
		logger.Fatal("Failed to create bootstrap admin", zap.Error(err))
	}
	if cfg.Catalog.SeedDemo {
		if _, err := softwareSvc.SeedIfEmpty(ctx, seed.DemoCatalog()); err != nil {
			logger.Fatal("Failed to seed demo catalog", zap.Error(err))
		}
	}

	server := chiTransport.NewServer(catalogSvc, softwareSvc, adminSvc, healthSvc, logger).
		WithPagination(cfg.Catalog.DefaultPageSize, cfg.Catalog.MaxPageSize)

	handler := server.Handler(
		jsonRecoverer(logger),
		chiMiddleware.RequestID,
		wideEventMiddleware(logger),
		metrics.Middleware(),
	)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// openStore creates the database store for the configured driver.
// valkey and redis share the rueidis implementation.
func openStore(cfg config.DatabaseConfig) (db.Store, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		store, err := dbSQLite.Open(cfg.Path)
		if err != nil {
			return nil, err
		}
		return store, nil
	case config.DriverRedis, config.DriverValkey:
		store, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Addrs,
			Password: cfg.Password,
		})
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"code":    "internal_error",
						"message": "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())

			// Set X-Request-ID in response header
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line: one per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
