package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite" // registers the "sqlite" driver for database/sql
)

// sqliteBlobRepo is the SQLite implementation of BlobRepo. It shares the
// kv_blobs schema with the Postgres backend.
type sqliteBlobRepo struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the SQLite database at path.
// SQLite serialises writers anyway, so the pool is pinned to one connection.
func OpenSQLite(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("repo.OpenSQLite: %w", err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(`PRAGMA busy_timeout = 5000`); err != nil {
		db.Close()
		return nil, fmt.Errorf("repo.OpenSQLite: pragma: %w", err)
	}
	return db, nil
}

// NewSQLiteBlobRepo constructs a BlobRepo backed by db. Run Migrate with
// DialectSQLite before first use.
func NewSQLiteBlobRepo(db *sql.DB) BlobRepo {
	return &sqliteBlobRepo{db: db}
}

// Get returns the value stored under key.
func (r *sqliteBlobRepo) Get(ctx context.Context, key string) ([]byte, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM kv_blobs WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBlobNotFound
		}
		return nil, fmt.Errorf("repo.SQLiteBlobRepo.Get: %w", err)
	}
	return []byte(value), nil
}

// Put upserts value under key.
func (r *sqliteBlobRepo) Put(ctx context.Context, key string, value []byte) error {
	const q = `
		INSERT INTO kv_blobs (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (key) DO UPDATE
		SET value = excluded.value, updated_at = excluded.updated_at`

	if _, err := r.db.ExecContext(ctx, q, key, string(value)); err != nil {
		return fmt.Errorf("repo.SQLiteBlobRepo.Put: %w", err)
	}
	return nil
}
