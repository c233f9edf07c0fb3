package main

import (
	"fmt"

	pgStorage "church-cms/internal/adapter/storage/postgres"

	"github.com/spf13/cobra"
)

func (a *app) migrateCmd() *cobra.Command {
	var list bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		Long: `Apply every embedded schema migration not yet recorded in
schema_migrations. Each migration runs in its own transaction.

Examples:
  churchctl migrate
  churchctl migrate --list`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if list {
				migrations, err := pgStorage.Migrations()
				if err != nil {
					return err
				}
				for _, m := range migrations {
					fmt.Fprintln(out, m.Version)
				}
				return nil
			}

			pool, closeDB, err := a.openDB(cmd.Context(), a.cfg.Database, a.log)
			if err != nil {
				return fmt.Errorf("connect database: %w", err)
			}
			defer closeDB()

			n, err := pgStorage.Migrate(cmd.Context(), pool, a.log)
			if err != nil {
				return err
			}
			if n == 0 {
				fmt.Fprintln(out, "Schema is up to date")
				return nil
			}
			fmt.Fprintf(out, "Applied %d migration(s)\n", n)
			return nil
		},
	}
	cmd.Flags().BoolVar(&list, "list", false, "list embedded migrations without connecting")
	return cmd
}
