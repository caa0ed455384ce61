package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/turtacn/FreonTrack-Compliance/internal/config"
	"github.com/turtacn/FreonTrack-Compliance/internal/infrastructure/database/postgres"
)

func newMigrateCmd(opts *RootOptions) *cobra.Command {
	var migrationsPath string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database schema migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			logger, err := buildLogger(cfg, opts)
			if err != nil {
				return err
			}

			path := resolveMigrationsPath(cfg, migrationsPath)
			conn, err := postgres.NewConnection(cfg.Database, logger)
			if err != nil {
				return err
			}
			defer conn.Close()

			if err := conn.RunMigrations(path); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			return nil
		},
	}

	cmd.Flags().StringVar(&migrationsPath, "path", "", "migrations directory (default from config)")
	return cmd
}

func resolveMigrationsPath(cfg *config.Config, override string) string {
	if override != "" {
		return override
	}
	if cfg.Database.MigrationsPath != "" {
		return cfg.Database.MigrationsPath
	}
	return "migrations"
}

//Personal.AI order the ending
