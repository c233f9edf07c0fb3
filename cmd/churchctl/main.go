// Command churchctl runs maintenance tasks against the Church CMS database
// and the auth provider: migrations, starter content and admin roles.
package main

import (
	"context"
	"fmt"
	"os"

	"church-cms/config"
	"church-cms/internal/adapter/identity"
	pgStorage "church-cms/internal/adapter/storage/postgres"
	"church-cms/pkg/logger"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var Version = "dev"

// app carries what the subcommands share. The constructors are fields so
// tests can swap in fakes.
type app struct {
	configPath string
	cfg        *config.Config
	log        zerolog.Logger

	openDB   func(ctx context.Context, cfg config.DatabaseConfig, log zerolog.Logger) (pgStorage.Pool, func(), error)
	newAdmin func(cfg config.AuthConfig) (adminAPI, error)
}

func newApp() *app {
	return &app{
		log: zerolog.Nop(),
		openDB: func(ctx context.Context, cfg config.DatabaseConfig, log zerolog.Logger) (pgStorage.Pool, func(), error) {
			pool, err := pgStorage.NewPool(ctx, cfg, log)
			if err != nil {
				return nil, nil, err
			}
			return pool, pool.Close, nil
		},
		newAdmin: func(cfg config.AuthConfig) (adminAPI, error) {
			c, err := identity.NewAdminClient(cfg, nil)
			if err != nil {
				return nil, err
			}
			return c, nil
		},
	}
}

// load reads configuration once, before any subcommand runs.
func (a *app) load() error {
	if a.cfg != nil {
		return nil
	}
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	a.cfg = cfg
	a.log = logger.New(cfg.Log.Level, cfg.Log.Pretty)
	return nil
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "churchctl",
		Short:         "Church CMS maintenance CLI",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load()
		},
	}
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "path to a config file (default ./config.yaml)")

	root.AddCommand(a.migrateCmd())
	root.AddCommand(a.seedCmd())
	root.AddCommand(a.adminCmd())
	return root
}

func main() {
	_ = godotenv.Load()

	if err := newApp().rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
