// Package pg implements the repositories on PostgreSQL through a pgx pool.
package pg

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dropDatabas3/studyhub/internal/domain/repository"
	"github.com/dropDatabas3/studyhub/internal/store/migrate"
	migrations "github.com/dropDatabas3/studyhub/migrations/postgres"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// SQLSTATE unique_violation
const uniqueViolation = "23505"

type Config struct {
	DSN      string
	MaxConns int
	MinConns int
}

type Store struct {
	pool *pgxpool.Pool
	now  func() time.Time
}

// Open creates the pool and pings the server.
func Open(ctx context.Context, cfg Config) (*Store, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("pg: parse DSN: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = int32(cfg.MaxConns)
	} else {
		poolCfg.MaxConns = 10
	}
	if cfg.MinConns > 0 {
		poolCfg.MinConns = int32(cfg.MinConns)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("pg: create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pg: ping failed: %w", err)
	}
	return &Store{pool: pool, now: time.Now}, nil
}

// MigrationSource exposes the embedded schema to the migrate CLI.
func MigrationSource() migrate.Source {
	return migrate.Source{Dialect: goose.DialectPostgres, FS: migrations.FS, Dir: migrations.Dir}
}

// Migrate runs goose over a database/sql view of the pool.
func (s *Store) Migrate(ctx context.Context) error {
	db := stdlib.OpenDBFromPool(s.pool)
	defer db.Close()
	return migrate.Up(ctx, db, MigrationSource())
}

// Pool is exposed for the metrics collector.
func (s *Store) Pool() *pgxpool.Pool { return s.pool }

func (s *Store) Ping(ctx context.Context) error { return s.pool.Ping(ctx) }

func (s *Store) Close() error {
	if s != nil && s.pool != nil {
		s.pool.Close()
	}
	return nil
}

func (s *Store) Users() repository.UserRepository { return &userRepo{pool: s.pool, now: s.now} }

func (s *Store) Notes() repository.NoteRepository { return &noteRepo{pool: s.pool, now: s.now} }

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
