package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/dropDatabas3/studyhub/internal/config"
	"github.com/dropDatabas3/studyhub/internal/observability/logger"
)

// version is set with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

type rootOptions struct {
	configPath string
	envFile    string
	cfg        *config.Config
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "studyhub",
		Short:         "Study assistant API: accounts, tokens and owner-scoped notes",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "YAML config file (env CONFIG_PATH, fallback configs/config.yaml)")
	root.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "dotenv file loaded before reading the environment")

	root.AddCommand(newServeCmd(opts), newMigrateCmd(opts), newConfigCmd(opts))
	return root
}

func (o *rootOptions) load(cmd *cobra.Command) error {
	if o.envFile != "" && fileExists(o.envFile) {
		if err := godotenv.Load(o.envFile); err != nil {
			return fmt.Errorf("load %s: %w", o.envFile, err)
		}
	}

	path := o.configPath
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	if path == "" && fileExists("configs/config.yaml") {
		path = "configs/config.yaml"
	}

	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	o.cfg = cfg

	logger.Init(logger.Config{
		Env:         cfg.App.Env,
		Level:       cfg.Log.Level,
		ServiceName: cfg.App.Name,
		Version:     version,
	})
	if cfg.UsesDevSecret() {
		logger.L().Warn("JWT_SECRET_KEY not set, signing tokens with the development secret")
	}
	cmd.SetContext(logger.ToContext(cmd.Context(), logger.L()))
	return nil
}

func fileExists(p string) bool {
	st, err := os.Stat(p)
	return err == nil && !st.IsDir()
}
