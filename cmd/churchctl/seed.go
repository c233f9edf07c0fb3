package main

import (
	"context"
	"fmt"

	pgStorage "church-cms/internal/adapter/storage/postgres"
	"church-cms/internal/service"

	"github.com/spf13/cobra"
)

type seeder func(ctx context.Context, pool pgStorage.Pool) (int, error)

func (a *app) seedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert starter content into empty tables",
	}

	cmd.AddCommand(a.seedTarget("events", "Events", func(ctx context.Context, pool pgStorage.Pool) (int, error) {
		svc := service.NewEventService(pgStorage.NewEventRepo(pool), a.cfg.Server.Location(), a.log)
		return svc.SeedDefaults(ctx)
	}))
	cmd.AddCommand(a.seedTarget("testimonials", "Testimonials", func(ctx context.Context, pool pgStorage.Pool) (int, error) {
		svc := service.NewTestimonialService(pgStorage.NewTestimonialRepo(pool), a.log)
		return svc.SeedDefaults(ctx)
	}))
	return cmd
}

func (a *app) seedTarget(name, label string, seed seeder) *cobra.Command {
	return &cobra.Command{
		Use:   name,
		Short: fmt.Sprintf("Insert the default %s when none exist", name),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pool, closeDB, err := a.openDB(cmd.Context(), a.cfg.Database, a.log)
			if err != nil {
				return fmt.Errorf("connect database: %w", err)
			}
			defer closeDB()

			n, err := seed(cmd.Context(), pool)
			if err != nil {
				return err
			}
			if n == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "%s already exist\n", label)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Inserted %d %s\n", n, name)
			return nil
		},
	}
}
