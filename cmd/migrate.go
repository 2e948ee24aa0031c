package main

import (
	"SMCHealth/database"
	"context"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := bootstrap()
			if err != nil {
				return err
			}
			defer log.Sync() //nolint:errcheck

			ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
			defer cancel()

			db, err := database.InitDB(ctx, cfg.DBURL, cfg.Env, log)
			if err != nil {
				return err
			}
			defer database.Close(db) //nolint:errcheck

			if err := database.RunMigrations(ctx, db); err != nil {
				return err
			}
			log.Info("migrations applied", zap.String("env", cfg.Env))
			return nil
		},
	}
}
