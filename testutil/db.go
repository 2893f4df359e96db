// Package testutil provides ready-to-use backends for blob repo tests. The
// Postgres helpers skip when TEST_DATABASE_URL is not set; the SQLite and
// Redis helpers run in-process and never skip.
package testutil

import (
	"context"
	"database/sql"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/pkordes/trip-planner/internal/repo"
)

// NewPostgresBlobRepo returns a BlobRepo over a migrated Postgres database
// whose kv_blobs table has been emptied, so every test starts with no stored
// collection. The pool is closed when the test finishes.
func NewPostgresBlobRepo(t *testing.T) repo.BlobRepo {
	t.Helper()
	return repo.NewPostgresBlobRepo(newMigratedPool(t))
}

// newMigratedPool connects to TEST_DATABASE_URL, applies pending migrations
// through a database/sql view of the pool and truncates kv_blobs.
func newMigratedPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	pool, err := pgxpool.New(ctx, requireDSN(t))
	if err != nil {
		t.Fatalf("testutil.NewPostgresBlobRepo: open pool: %v", err)
	}
	t.Cleanup(pool.Close)

	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("testutil.NewPostgresBlobRepo: ping: %v", err)
	}

	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()
	if _, err := repo.Migrate(ctx, db, repo.DialectPostgres); err != nil {
		t.Fatalf("testutil.NewPostgresBlobRepo: migrate: %v", err)
	}

	if _, err := pool.Exec(ctx, `TRUNCATE kv_blobs`); err != nil {
		t.Fatalf("testutil.NewPostgresBlobRepo: truncate: %v", err)
	}
	return pool
}

// NewSQLDB opens an unmigrated *sql.DB on TEST_DATABASE_URL for tests that
// drive goose themselves.
func NewSQLDB(t *testing.T) *sql.DB {
	t.Helper()

	pool, err := pgxpool.New(context.Background(), requireDSN(t))
	if err != nil {
		t.Fatalf("testutil.NewSQLDB: open pool: %v", err)
	}
	t.Cleanup(pool.Close)

	db := stdlib.OpenDBFromPool(pool)
	t.Cleanup(func() { db.Close() })

	if err := db.PingContext(context.Background()); err != nil {
		t.Fatalf("testutil.NewSQLDB: ping: %v", err)
	}
	return db
}

func requireDSN(t *testing.T) string {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping Postgres test")
	}
	return dsn
}
