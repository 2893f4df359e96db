// Package app wires configuration into a running trip store: it opens the
// configured storage backend, migrates SQL schemas, and builds the services
// the HTTP server and tripctl share.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/redis/go-redis/v9"

	"github.com/pkordes/trip-planner/internal/config"
	"github.com/pkordes/trip-planner/internal/metrics"
	"github.com/pkordes/trip-planner/internal/repo"
	"github.com/pkordes/trip-planner/internal/service"
)

// Storage is an open blob backend plus whatever must be closed with it.
type Storage struct {
	Blobs repo.BlobRepo
	// Migrated is the number of schema migrations applied while opening.
	Migrated int

	closers []func() error
}

// Close releases every connection the backend holds.
func (s *Storage) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		errs = append(errs, s.closers[i]())
	}
	return errors.Join(errs...)
}

// OpenStorage connects to the backend named by cfg.StorageDriver. SQL
// backends are migrated before they are returned.
func OpenStorage(ctx context.Context, cfg config.Config) (*Storage, error) {
	switch cfg.StorageDriver {
	case config.DriverMemory:
		return &Storage{Blobs: repo.NewMemoryBlobRepo()}, nil

	case config.DriverFile:
		return &Storage{Blobs: repo.NewFileBlobRepo(cfg.DataDir)}, nil

	case config.DriverPostgres:
		return openPostgres(ctx, cfg.DatabaseURL)

	case config.DriverSQLite:
		db, err := repo.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		n, err := repo.Migrate(ctx, db, repo.DialectSQLite)
		if err != nil {
			db.Close()
			return nil, err
		}
		return &Storage{Blobs: repo.NewSQLiteBlobRepo(db), Migrated: n, closers: []func() error{db.Close}}, nil

	case config.DriverRedis:
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, fmt.Errorf("app.OpenStorage: redis ping: %w", err)
		}
		return &Storage{Blobs: repo.NewRedisBlobRepo(client, cfg.RedisPrefix), closers: []func() error{client.Close}}, nil
	}
	return nil, fmt.Errorf("app.OpenStorage: unknown storage driver %q", cfg.StorageDriver)
}

// openPostgres opens a pgx pool for the blob repo and runs goose over a
// database/sql handle borrowed from the same pool.
func openPostgres(ctx context.Context, dsn string) (*Storage, error) {
	// pgxpool.New does not open connections immediately; Ping verifies the
	// database is reachable before anything is served.
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("app.OpenStorage: create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("app.OpenStorage: ping: %w", err)
	}

	db := stdlib.OpenDBFromPool(pool)
	n, err := repo.Migrate(ctx, db, repo.DialectPostgres)
	if err != nil {
		db.Close()
		pool.Close()
		return nil, err
	}
	return &Storage{
		Blobs:    repo.NewPostgresBlobRepo(pool),
		Migrated: n,
		closers: []func() error{
			func() error { pool.Close(); return nil },
			db.Close,
		},
	}, nil
}

// Services bundles everything built on top of an open Storage.
type Services struct {
	Trips  *service.TripService
	Export *service.ExportService
	Report service.InitReport
}

// NewServices builds the trip store over storage and runs its startup step.
// now may be nil to use the wall clock.
func NewServices(ctx context.Context, cfg config.Config, storage *Storage, log *slog.Logger, inst *metrics.Instruments, now func() time.Time) *Services {
	opts := []service.Option{
		service.WithLogger(log),
		service.WithMetrics(inst),
	}
	if now != nil {
		opts = append(opts, service.WithClock(now))
	}
	if cfg.SeedOnEmpty {
		opts = append(opts, service.WithSeed(service.SampleTrips))
	}

	trips := service.NewTripService(repo.NewTripRepo(storage.Blobs), opts...)
	report := trips.Init(ctx)
	return &Services{
		Trips:  trips,
		Export: service.NewExportService(trips),
		Report: report,
	}
}
