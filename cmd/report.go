package cmd

import (
	"github.com/spf13/cobra"

	m "tidywarn.dev/pkg/tidywarn/internal/model"
)

const reportLongDescription = `Print the per-file summary table and the warnings recorded in a YAML run
report written by "tidywarn apply --report" or "tidywarn strip --report".`

// reportCmd represents the report command.
var reportCmd = newReportCmd()

func newReportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "report <report.yaml>",
		Short: "Show a saved run report",
		Long:  reportLongDescription,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return newWorkflow(cmd).Show(cmd.Context(), m.Path(args[0]))
		},
	}
}

func init() {
	rootCmd.AddCommand(reportCmd)
}
