package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	httpserver "github.com/dropDatabas3/studyhub/internal/http/server"
	"github.com/dropDatabas3/studyhub/internal/observability/logger"
	"github.com/dropDatabas3/studyhub/internal/store"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			app, err := httpserver.Build(ctx, opts.cfg)
			if err != nil {
				return err
			}
			defer func() {
				if err := app.Close(); err != nil {
					logger.L().Warn("close failed", logger.Err(err))
				}
			}()
			return app.Run(ctx)
		},
	}
}

func newMigrateCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema (sqlite and postgres drivers)",
	}

	withStore := func(run func(cmd *cobra.Command, st *store.Store) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			st, err := store.Open(cmd.Context(), store.Config{
				Driver:     opts.cfg.Storage.Driver,
				DSN:        opts.cfg.Storage.DSN,
				SQLitePath: opts.cfg.Storage.SQLite.Path,
				MaxConns:   opts.cfg.Storage.Postgres.MaxConns,
				MinConns:   opts.cfg.Storage.Postgres.MinConns,
			})
			if err != nil {
				return err
			}
			defer st.Close()
			return run(cmd, st)
		}
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply pending migrations",
			RunE: withStore(func(cmd *cobra.Command, st *store.Store) error {
				return st.MigrateUp(cmd.Context())
			}),
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the latest migration",
			RunE: withStore(func(cmd *cobra.Command, st *store.Store) error {
				return st.MigrateDown(cmd.Context())
			}),
		},
		&cobra.Command{
			Use:   "status",
			Short: "List migrations and whether they are applied",
			RunE: withStore(func(cmd *cobra.Command, st *store.Store) error {
				list, err := st.MigrationStatus(cmd.Context())
				if err != nil {
					return err
				}
				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "VERSION\tAPPLIED\tFILE")
				for _, m := range list {
					fmt.Fprintf(tw, "%d\t%t\t%s\n", m.Version, m.Applied, m.Path)
				}
				return tw.Flush()
			}),
		},
	)
	return cmd
}

func newConfigCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration with secrets redacted",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := *opts.cfg
			if c.JWT.Secret != "" {
				c.JWT.Secret = "<redacted>"
			}
			if c.Cache.Redis.Password != "" {
				c.Cache.Redis.Password = "<redacted>"
			}
			if c.Storage.DSN != "" {
				c.Storage.DSN = "<redacted>"
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			defer enc.Close()
			return enc.Encode(c)
		},
	}
}
