package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"productapi/internal/config"
	"productapi/internal/logger"
	"productapi/internal/repository"
)

var errNothingToMigrate = errors.New("the memory driver has no schema to migrate")

func newMigrateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the products table",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}
			if cfg.Database.Driver == config.DriverMemory {
				return errNothingToMigrate
			}
			log, err := logger.Init(cfg.Logger)
			if err != nil {
				return fmt.Errorf("failed to init logger: %w", err)
			}

			ctx := cmd.Context()
			db, err := repository.OpenDB(ctx, cfg.Database, log)
			if err != nil {
				return err
			}
			defer func() { _ = repository.CloseDB(db) }()

			if err := repository.Migrate(ctx, db); err != nil {
				return fmt.Errorf("failed to migrate products table: %w", err)
			}
			log.Info("migration completed", "driver", cfg.Database.Driver)
			fmt.Fprintln(cmd.OutOrStdout(), "products table is up to date")
			return nil
		},
	}
}
