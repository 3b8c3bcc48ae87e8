package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/kanjiwords/internal/adapter/postgres"
	"github.com/heartmarshall/kanjiwords/internal/app"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply PostgreSQL migrations for the publish target",
	Args:  cobra.NoArgs,
	RunE:  runMigrate,
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, logger, err := app.Bootstrap(configPath)
	if err != nil {
		return err
	}
	if cfg.Database.DSN == "" {
		return fmt.Errorf("database.dsn is not configured (set DATABASE_DSN)")
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Minute)
	defer cancel()

	applied, err := postgres.Migrate(ctx, cfg.Database.DSN, logger)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	logger.Info("migrations complete", slog.Int("applied", applied))
	return nil
}
