package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/turtacn/FreonTrack-Compliance/pkg/client"
)

func newRiskCmd(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "risk",
		Short: "Query equipment failure risk",
	}
	cmd.AddCommand(newRiskReportCmd(opts))
	return cmd
}

func newRiskReportCmd(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Fetch the fleet risk report, highest risk first",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newAPIClient(opts)
			if err != nil {
				return err
			}

			assessments, err := c.RiskAssessments(cmd.Context())
			if err != nil {
				return err
			}

			return printResult(cmd, opts, assessments, func() string {
				return riskTable(assessments)
			})
		},
	}
}

func riskTable(assessments []client.RiskAssessment) string {
	if len(assessments) == 0 {
		return "No equipment found.\n"
	}

	headers := []string{"EQUIPMENT", "NAME", "LEVEL", "SCORE", "CONFIDENCE", "LEAK RATE", "RECOMMENDATION"}
	rows := make([][]string, 0, len(assessments))
	for _, a := range assessments {
		rows = append(rows, []string{
			a.EquipmentID,
			a.EquipmentName,
			a.RiskLevel,
			fmt.Sprintf("%d", a.RiskScore),
			a.Confidence,
			fmt.Sprintf("%.1f%%", a.CurrentLeakRate),
			a.Recommendation,
		})
	}
	return formatTable(headers, rows)
}

func newAPIClient(opts *RootOptions) (*client.Client, error) {
	clientOpts := []client.Option{client.WithTimeout(opts.Timeout)}
	if opts.Token != "" {
		clientOpts = append(clientOpts, client.WithToken(opts.Token))
	}
	return client.New(opts.ServerAddr, clientOpts...)
}

//Personal.AI order the ending
