// Package migrations embeds the goose SQL migrations for the SQL blob
// backends. The same files run against Postgres and SQLite, so they stick to
// the common subset of both dialects.
package migrations

import "embed"

// FS holds all *.sql migration files embedded at compile time.
//
//go:embed *.sql
var FS embed.FS
