// Command apiserver runs the FreonTrack-Compliance REST API on its own,
// without the CLI wrapper. Deployments that split the API and the worker
// into separate processes use this and cmd/worker.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/turtacn/FreonTrack-Compliance/internal/bootstrap"
	"github.com/turtacn/FreonTrack-Compliance/internal/config"
	"github.com/turtacn/FreonTrack-Compliance/internal/infrastructure/monitoring/logging"
)

var version = "dev"

func main() {
	configPath := flag.String("config", "", "config file path (falls back to environment)")
	migrate := flag.Bool("migrate", false, "apply pending schema migrations before serving")
	flag.Parse()

	if err := run(*configPath, *migrate); err != nil {
		fmt.Fprintf(os.Stderr, "apiserver: %s\n", err)
		os.Exit(1)
	}
}

func run(configPath string, migrate bool) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	logger, err := logging.NewLogger(logging.LogConfig{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})
	if err != nil {
		return err
	}

	infra, err := bootstrap.NewInfrastructure(cfg, logger)
	if err != nil {
		return err
	}
	defer infra.Close()

	if migrate {
		if err := infra.DB.RunMigrations(cfg.Database.MigrationsPath); err != nil {
			return err
		}
	}

	repos := bootstrap.NewRepositories(infra, logger)
	svcs := bootstrap.BuildServices(cfg, infra, repos, logger)
	srv, rateLimit := bootstrap.BuildAPIServer(cfg, infra, repos, svcs, version, logger)
	defer rateLimit.Stop()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return srv.Stop(shutdownCtx)
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	return config.LoadFromEnv()
}

//Personal.AI order the ending
