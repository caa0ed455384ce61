package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/turtacn/FreonTrack-Compliance/pkg/client"
)

func newComplianceCmd(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compliance",
		Short: "Query EPA Section 608 compliance state",
	}
	cmd.AddCommand(newComplianceStatusCmd(opts), newComplianceReportCmd(opts))
	return cmd
}

func newComplianceStatusCmd(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status <equipment-id>",
		Short: "Show the compliance snapshot for one appliance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newAPIClient(opts)
			if err != nil {
				return err
			}

			status, err := c.ComplianceStatus(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			return printResult(cmd, opts, status, func() string {
				return complianceStatusTable(args[0], status)
			})
		},
	}
}

func newComplianceReportCmd(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Fetch the fleet-wide compliance report",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newAPIClient(opts)
			if err != nil {
				return err
			}

			report, err := c.ComplianceReport(cmd.Context())
			if err != nil {
				return err
			}

			return printResult(cmd, opts, report, func() string {
				return complianceReportTable(report)
			})
		},
	}
}

func complianceStatusTable(equipmentID string, status *client.ComplianceStatus) string {
	leakRate := "n/a"
	if status.CurrentLeakRate != nil {
		leakRate = fmt.Sprintf("%.1f%%", *status.CurrentLeakRate)
	}
	nextInspection := "n/a"
	if status.NextInspectionDate != nil {
		nextInspection = status.NextInspectionDate.Format("2006-01-02")
	}

	rows := [][]string{
		{"Equipment", equipmentID},
		{"Compliant", fmt.Sprintf("%t", status.Compliant)},
		{"Current leak rate", leakRate},
		{"Inspection overdue", fmt.Sprintf("%t", status.InspectionOverdue)},
		{"Next inspection", nextInspection},
		{"Open alerts", fmt.Sprintf("%d", status.OpenAlerts)},
	}
	return formatTable([]string{"FIELD", "VALUE"}, rows)
}

func complianceReportTable(report *client.ComplianceReport) string {
	var sb string
	sb += fmt.Sprintf("Generated:     %s\n", report.GeneratedAt.Format("2006-01-02 15:04:05"))
	sb += fmt.Sprintf("Equipment:     %d\n", report.TotalEquipment)
	sb += fmt.Sprintf("Compliant:     %d\n", report.CompliantCount)
	sb += fmt.Sprintf("Non-compliant: %d\n", report.NonCompliantCount)
	sb += fmt.Sprintf("Overdue:       %d\n", report.OverdueCount)

	if len(report.Lines) == 0 {
		return sb
	}

	headers := []string{"EQUIPMENT", "LEAK RATE", "COMPLIANT", "OVERDUE", "INSPECTIONS"}
	rows := make([][]string, 0, len(report.Lines))
	for _, line := range report.Lines {
		id := ""
		if v, ok := line.Equipment["id"].(string); ok {
			id = v
		}
		leakRate := "n/a"
		if line.CurrentLeakRate != nil {
			leakRate = fmt.Sprintf("%.1f%%", *line.CurrentLeakRate)
		}
		rows = append(rows, []string{
			id,
			leakRate,
			fmt.Sprintf("%t", line.Compliant),
			fmt.Sprintf("%t", line.InspectionOverdue),
			fmt.Sprintf("%d", line.InspectionsOnFile),
		})
	}
	return sb + "\n" + formatTable(headers, rows)
}

//Personal.AI order the ending
