// Package store opens the configured storage backend and exposes its
// repositories behind the domain interfaces.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dropDatabas3/studyhub/internal/cache"
	"github.com/dropDatabas3/studyhub/internal/domain/repository"
	"github.com/dropDatabas3/studyhub/internal/observability/logger"
	"github.com/dropDatabas3/studyhub/internal/store/cached"
	"github.com/dropDatabas3/studyhub/internal/store/memory"
	"github.com/dropDatabas3/studyhub/internal/store/migrate"
	"github.com/dropDatabas3/studyhub/internal/store/pg"
	"github.com/dropDatabas3/studyhub/internal/store/sqlite"
	"github.com/jackc/pgx/v5/stdlib"
)

// ErrNoMigrations is returned by the migrate helpers for the memory driver.
var ErrNoMigrations = errors.New("store: driver has no migrations")

type Config struct {
	// memory | sqlite | postgres
	Driver      string
	DSN         string
	SQLitePath  string
	AutoMigrate bool
	MaxConns    int
	MinConns    int

	// Cache, when set, fronts user lookups by id.
	Cache    cache.Client
	CacheTTL time.Duration
}

type backend interface {
	Users() repository.UserRepository
	Notes() repository.NoteRepository
	Ping(ctx context.Context) error
	Close() error
}

// Store bundles the repositories of one backend.
type Store struct {
	Driver string
	Users  repository.UserRepository
	Notes  repository.NoteRepository

	b     backend
	sqlDB func() (*sql.DB, func(), error)
	src   migrate.Source
}

// Open connects to cfg.Driver. SQLite is migrated on open; Postgres only
// when AutoMigrate is set.
func Open(ctx context.Context, cfg Config) (*Store, error) {
	log := logger.From(ctx).With(logger.Component("store"))
	driver := strings.ToLower(strings.TrimSpace(cfg.Driver))

	s := &Store{Driver: driver}
	switch driver {
	case "memory", "":
		s.Driver = "memory"
		s.b = memory.New()

	case "sqlite":
		path := cfg.SQLitePath
		if path == "" {
			path = cfg.DSN
		}
		db, err := sqlite.Open(ctx, path)
		if err != nil {
			return nil, err
		}
		s.b = db
		s.src = sqlite.MigrationSource()
		s.sqlDB = func() (*sql.DB, func(), error) { return db.DB(), func() {}, nil }

	case "postgres", "pg", "postgresql":
		s.Driver = "postgres"
		db, err := pg.Open(ctx, pg.Config{DSN: cfg.DSN, MaxConns: cfg.MaxConns, MinConns: cfg.MinConns})
		if err != nil {
			return nil, err
		}
		if cfg.AutoMigrate {
			if err := db.Migrate(ctx); err != nil {
				_ = db.Close()
				return nil, err
			}
		}
		s.b = db
		s.src = pg.MigrationSource()
		s.sqlDB = func() (*sql.DB, func(), error) {
			sdb := stdlib.OpenDBFromPool(db.Pool())
			return sdb, func() { _ = sdb.Close() }, nil
		}

	default:
		return nil, fmt.Errorf("store: unsupported driver %q", cfg.Driver)
	}

	s.Users = cached.NewUsers(s.b.Users(), cfg.Cache, cfg.CacheTTL)
	s.Notes = s.b.Notes()
	log.Info("storage ready", logger.Driver(s.Driver), logger.Bool("user_cache", cfg.Cache != nil))
	return s, nil
}

func (s *Store) Ping(ctx context.Context) error { return s.b.Ping(ctx) }

func (s *Store) Close() error { return s.b.Close() }

func (s *Store) MigrateUp(ctx context.Context) error {
	return s.withDB(func(db *sql.DB) error { return migrate.Up(ctx, db, s.src) })
}

func (s *Store) MigrateDown(ctx context.Context) error {
	return s.withDB(func(db *sql.DB) error { return migrate.Down(ctx, db, s.src) })
}

func (s *Store) MigrationStatus(ctx context.Context) ([]migrate.Status, error) {
	var out []migrate.Status
	err := s.withDB(func(db *sql.DB) error {
		var err error
		out, err = migrate.List(ctx, db, s.src)
		return err
	})
	return out, err
}

func (s *Store) withDB(fn func(*sql.DB) error) error {
	if s.sqlDB == nil {
		return ErrNoMigrations
	}
	db, release, err := s.sqlDB()
	if err != nil {
		return err
	}
	defer release()
	return fn(db)
}

// Backend returns the concrete store behind the repositories.
func (s *Store) Backend() any { return s.b }
