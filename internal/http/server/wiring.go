// Package server builds the HTTP handler and its dependencies from config
// and runs it until the context ends.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/dropDatabas3/studyhub/internal/cache"
	"github.com/dropDatabas3/studyhub/internal/config"
	authctrl "github.com/dropDatabas3/studyhub/internal/http/controllers/auth"
	healthctrl "github.com/dropDatabas3/studyhub/internal/http/controllers/health"
	notesctrl "github.com/dropDatabas3/studyhub/internal/http/controllers/notes"
	"github.com/dropDatabas3/studyhub/internal/http/router"
	authsvc "github.com/dropDatabas3/studyhub/internal/http/services/auth"
	notessvc "github.com/dropDatabas3/studyhub/internal/http/services/notes"
	"github.com/dropDatabas3/studyhub/internal/jwt"
	"github.com/dropDatabas3/studyhub/internal/metrics"
	"github.com/dropDatabas3/studyhub/internal/observability/logger"
	"github.com/dropDatabas3/studyhub/internal/security/password"
	"github.com/dropDatabas3/studyhub/internal/store"
	"github.com/dropDatabas3/studyhub/internal/store/pg"
)

// App is a fully wired service.
type App struct {
	Handler http.Handler
	Store   *store.Store
	Cache   cache.Client
	Metrics *metrics.Metrics

	cfg *config.Config
}

// Build opens storage and cache and wires every controller. Close releases
// what Build opened.
func Build(ctx context.Context, cfg *config.Config) (*App, error) {
	log := logger.From(ctx).With(logger.Component("wiring"))

	m, err := metrics.New()
	if err != nil {
		return nil, fmt.Errorf("metrics: %w", err)
	}

	var c cache.Client
	if cfg.Cache.Kind != "none" {
		c, err = cache.New(ctx, cache.Config{
			Kind:          cfg.Cache.Kind,
			DefaultTTL:    config.Duration(cfg.Cache.TTL, 5*time.Minute),
			Cleanup:       config.Duration(cfg.Cache.Memory.CleanupInterval, time.Minute),
			Prefix:        cfg.Cache.Redis.Prefix,
			RedisAddr:     cfg.Cache.Redis.Addr,
			RedisPassword: cfg.Cache.Redis.Password,
			RedisDB:       cfg.Cache.Redis.DB,
		})
		if err != nil {
			return nil, err
		}
	}

	st, err := store.Open(ctx, store.Config{
		Driver:      cfg.Storage.Driver,
		DSN:         cfg.Storage.DSN,
		SQLitePath:  cfg.Storage.SQLite.Path,
		AutoMigrate: cfg.Storage.AutoMigrate,
		MaxConns:    cfg.Storage.Postgres.MaxConns,
		MinConns:    cfg.Storage.Postgres.MinConns,
		Cache:       c,
		CacheTTL:    config.Duration(cfg.Cache.TTL, 5*time.Minute),
	})
	if err != nil {
		if c != nil {
			_ = c.Close()
		}
		return nil, err
	}
	if pgs, ok := st.Backend().(*pg.Store); ok {
		if err := m.RegisterPool(pgs.Pool); err != nil {
			log.Warn("pool metrics not registered", logger.Err(err))
		}
	}

	app := &App{Store: st, Cache: c, Metrics: m, cfg: cfg}
	fail := func(err error) (*App, error) {
		_ = app.Close()
		return nil, err
	}

	hasher, err := password.New(password.Config{
		Algorithm:  cfg.Security.Password.Algorithm,
		BcryptCost: cfg.Security.Password.BcryptCost,
		Workers:    cfg.Security.Password.Workers,
	})
	if err != nil {
		return fail(err)
	}
	tokens, err := jwt.NewIssuer(jwt.Config{
		Secret: []byte(cfg.JWT.Secret),
		Issuer: cfg.JWT.Issuer,
		TTL:    config.Duration(cfg.JWT.TTL, jwt.DefaultTTL),
	})
	if err != nil {
		return fail(err)
	}

	checks := map[string]healthctrl.Pinger{"storage": st}
	if c != nil {
		checks["cache"] = c
	}
	app.Handler = router.New(router.Deps{
		Auth: authctrl.NewController(authsvc.NewService(authsvc.Deps{
			Users:   st.Users,
			Hasher:  hasher,
			Tokens:  tokens,
			Metrics: m,
		})),
		Notes:   notesctrl.NewController(notessvc.NewService(st.Notes)),
		Health:  healthctrl.NewController(checks),
		Tokens:  tokens,
		Metrics: m,
	})

	log.Info("service wired",
		logger.Driver(st.Driver),
		logger.String("cache", cfg.Cache.Kind),
		logger.String("password_algorithm", hasher.Algorithm()),
		logger.Any("token_ttl", tokens.TTL().String()),
	)
	return app, nil
}

// Close releases storage and cache.
func (a *App) Close() error {
	var errs []error
	if a.Store != nil {
		errs = append(errs, a.Store.Close())
	}
	if a.Cache != nil {
		errs = append(errs, a.Cache.Close())
	}
	return errors.Join(errs...)
}

// Run serves until ctx is cancelled, then drains in-flight requests for up
// to server.shutdown_timeout.
func (a *App) Run(ctx context.Context) error {
	log := logger.From(ctx).With(logger.Component("http"))
	srv := &http.Server{
		Addr:              a.cfg.Server.Addr,
		Handler:           a.Handler,
		ReadTimeout:       config.Duration(a.cfg.Server.ReadTimeout, 15*time.Second),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      config.Duration(a.cfg.Server.WriteTimeout, 30*time.Second),
	}

	errc := make(chan error, 1)
	go func() {
		log.Info("listening", logger.String("addr", srv.Addr))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.Duration(a.cfg.Server.ShutdownTimeout, 10*time.Second))
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}
