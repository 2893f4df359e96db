package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Unit tests pass a pgxmock pool.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// pgBlobRepo is the Postgres implementation of BlobRepo, backed by the
// kv_blobs table created by the goose migrations.
type pgBlobRepo struct {
	db db
}

// NewPostgresBlobRepo constructs a BlobRepo backed by the provided db connection.
// In production pass *pgxpool.Pool.
func NewPostgresBlobRepo(db db) BlobRepo {
	return &pgBlobRepo{db: db}
}

// Get returns the value stored under key.
func (r *pgBlobRepo) Get(ctx context.Context, key string) ([]byte, error) {
	const q = `SELECT value FROM kv_blobs WHERE key = $1`

	var value string
	if err := r.db.QueryRow(ctx, q, key).Scan(&value); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBlobNotFound
		}
		return nil, fmt.Errorf("repo.PostgresBlobRepo.Get: %w", err)
	}
	return []byte(value), nil
}

// Put upserts value under key.
func (r *pgBlobRepo) Put(ctx context.Context, key string, value []byte) error {
	const q = `
		INSERT INTO kv_blobs (key, value, updated_at)
		VALUES ($1, $2, CURRENT_TIMESTAMP)
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`

	if _, err := r.db.Exec(ctx, q, key, string(value)); err != nil {
		return fmt.Errorf("repo.PostgresBlobRepo.Put: %w", err)
	}
	return nil
}
