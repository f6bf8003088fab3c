// Package postgres embeds the goose migrations for the PostgreSQL store.
package postgres

import "embed"

//go:embed schema/*.sql
var FS embed.FS

// Dir is the directory inside FS holding the migrations.
const Dir = "schema"
