package main

import (
	"github.com/spf13/cobra"

	"github.com/brightsmile/booking-api/internal/infrastructure/db/postgres"
	"github.com/brightsmile/booking-api/pkg/logger"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the database schema migrations and exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg, err := bootstrap(ctx)
			if err != nil {
				return err
			}
			log := logger.Get()

			db, err := postgres.Connect(ctx, postgres.Config{DSN: cfg.Postgres.DSN})
			if err != nil {
				return err
			}
			defer db.Close()

			if err := postgres.Migrate(ctx, db); err != nil {
				return err
			}
			log.Info().Msg("migrations applied")
			return nil
		},
	}
}
