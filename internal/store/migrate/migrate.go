// Package migrate applies the embedded goose migrations for a SQL store.
package migrate

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"

	"github.com/dropDatabas3/studyhub/internal/observability/logger"
	"github.com/pressly/goose/v3"
)

// Source pairs an embedded filesystem with the dialect its SQL is written for.
type Source struct {
	Dialect goose.Dialect
	FS      fs.FS
	Dir     string
}

// Status is one migration as reported by `studyhub migrate status`.
type Status struct {
	Version int64
	Path    string
	Applied bool
}

func newProvider(db *sql.DB, src Source) (*goose.Provider, error) {
	fsys := src.FS
	if src.Dir != "" && src.Dir != "." {
		sub, err := fs.Sub(src.FS, src.Dir)
		if err != nil {
			return nil, fmt.Errorf("migrate: open %s: %w", src.Dir, err)
		}
		fsys = sub
	}
	p, err := goose.NewProvider(src.Dialect, db, fsys)
	if err != nil {
		return nil, fmt.Errorf("migrate: provider: %w", err)
	}
	return p, nil
}

// Up applies all pending migrations.
func Up(ctx context.Context, db *sql.DB, src Source) error {
	p, err := newProvider(db, src)
	if err != nil {
		return err
	}
	results, err := p.Up(ctx)
	if err != nil {
		return fmt.Errorf("migrate: up: %w", err)
	}
	log := logger.From(ctx).With(logger.Component("migrate"), logger.Driver(string(src.Dialect)))
	for _, r := range results {
		log.Info("migration applied",
			logger.String("path", r.Source.Path),
			logger.Any("version", r.Source.Version),
			logger.DurationMs(r.Duration.Milliseconds()),
		)
	}
	return nil
}

// Down rolls back the most recent migration.
func Down(ctx context.Context, db *sql.DB, src Source) error {
	p, err := newProvider(db, src)
	if err != nil {
		return err
	}
	if _, err := p.Down(ctx); err != nil {
		return fmt.Errorf("migrate: down: %w", err)
	}
	return nil
}

// List reports every known migration and whether it is applied.
func List(ctx context.Context, db *sql.DB, src Source) ([]Status, error) {
	p, err := newProvider(db, src)
	if err != nil {
		return nil, err
	}
	st, err := p.Status(ctx)
	if err != nil {
		return nil, fmt.Errorf("migrate: status: %w", err)
	}
	out := make([]Status, 0, len(st))
	for _, s := range st {
		out = append(out, Status{
			Version: s.Source.Version,
			Path:    s.Source.Path,
			Applied: s.State == goose.StateApplied,
		})
	}
	return out, nil
}
