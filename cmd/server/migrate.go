package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rxprasetya/sebaran-penjualan/internal/infrastructure/database/postgres"
	"github.com/rxprasetya/sebaran-penjualan/internal/infrastructure/monitoring/logging"
)

func newMigrateCmd() *cobra.Command {
	var (
		configPath    string
		migrationsDir string
	)

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}

			logger, err := logging.NewLogger(cfg.Log)
			if err != nil {
				return fmt.Errorf("logger initialization failed: %w", err)
			}

			conn, err := postgres.NewConnection(cfg.Database, logger)
			if err != nil {
				return fmt.Errorf("postgres connection failed: %w", err)
			}
			defer conn.Close()

			dir := migrationsDir
			if dir == "" {
				dir = cfg.Database.MigrationPath
			}

			if err := conn.RunMigrations(dir); err != nil {
				return err
			}

			logger.Info("migrations applied", logging.String("dir", dir))
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to configuration file")
	cmd.Flags().StringVar(&migrationsDir, "dir", "", "migrations directory (overrides config)")
	return cmd
}
