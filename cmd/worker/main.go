// Command worker runs the background compliance scanner and the rescore
// consumer as a standalone process.
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

func main() {
	configPath := flag.String("config", "", "config file path (falls back to environment)")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "worker: %s\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = config.Load(configPath)
	} else {
		cfg, err = config.LoadFromEnv()
	}
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

	repos := bootstrap.NewRepositories(infra, logger)
	svcs := bootstrap.BuildServices(cfg, infra, repos, logger)
	worker := bootstrap.BuildWorker(cfg, infra, svcs, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return worker.Run(ctx)
}

//Personal.AI order the ending
