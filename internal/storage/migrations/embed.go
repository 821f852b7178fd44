// Package migrations embeds the SQL schema of the postgres record store.
package migrations

import "embed"

// FS holds all *.sql migration files, applied with goose at store start-up.
//
//go:embed *.sql
var FS embed.FS
