// Package sqlite embeds the goose migrations for the SQLite store.
package sqlite

import "embed"

//go:embed schema/*.sql
var FS embed.FS

const Dir = "schema"
