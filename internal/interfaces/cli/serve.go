package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/turtacn/FreonTrack-Compliance/internal/bootstrap"
	"github.com/turtacn/FreonTrack-Compliance/internal/infrastructure/monitoring/logging"
)

func newServeCmd(opts *RootOptions) *cobra.Command {
	var runMigrations bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the FreonTrack API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			logger, err := buildLogger(cfg, opts)
			if err != nil {
				return err
			}

			infra, err := bootstrap.NewInfrastructure(cfg, logger)
			if err != nil {
				return err
			}
			defer infra.Close()

			if runMigrations {
				if err := infra.DB.RunMigrations(cfg.Database.MigrationsPath); err != nil {
					return err
				}
			}

			repos := bootstrap.NewRepositories(infra, logger)
			svcs := bootstrap.BuildServices(cfg, infra, repos, logger)
			srv, rateLimit := bootstrap.BuildAPIServer(cfg, infra, repos, svcs, Version, logger)
			defer rateLimit.Stop()

			errCh := make(chan error, 1)
			go func() { errCh <- srv.Start() }()

			select {
			case err := <-errCh:
				return err
			case <-cmd.Context().Done():
			}

			logger.Info("shutdown signal received")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
			defer cancel()
			if err := srv.Stop(shutdownCtx); err != nil {
				logger.Error("graceful shutdown failed", logging.Err(err))
				return err
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&runMigrations, "migrate", false, "apply pending schema migrations before serving")
	return cmd
}

//Personal.AI order the ending
