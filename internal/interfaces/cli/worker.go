package cli

import (
	"github.com/spf13/cobra"

	"github.com/turtacn/FreonTrack-Compliance/internal/bootstrap"
)

func newWorkerCmd(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "worker",
		Short: "Run the background compliance scanner and rescore consumer",
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

			repos := bootstrap.NewRepositories(infra, logger)
			svcs := bootstrap.BuildServices(cfg, infra, repos, logger)
			worker := bootstrap.BuildWorker(cfg, infra, svcs, logger)

			return worker.Run(cmd.Context())
		},
	}
}

//Personal.AI order the ending
