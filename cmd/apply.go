package cmd

import (
	"github.com/spf13/cobra"

	"tidywarn.dev/pkg/tidywarn/internal/domain"
	m "tidywarn.dev/pkg/tidywarn/internal/model"
)

const applyLongDescription = `Read an override list produced by "tidywarn extract" and append the
'override' marker to every matching single-line virtual declaration.

Each touched file is backed up once to <file>` + domain.DefaultBackupSuffix + ` before it is scanned.
Files named in the list that do not exist are reported as warnings and skipped.`

// applyCmd represents the apply command.
var applyCmd = newApplyCmd()

func newApplyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "apply <override-list>",
		Short: "Insert missing override markers",
		Long:  applyLongDescription,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return newWorkflow(cmd).Apply(cmd.Context(), domain.ApplyArgs{
				RunArgs: runArgsFromConfig(),
				List:    m.Path(args[0]),
			})
		},
	}
}

func init() {
	rootCmd.AddCommand(applyCmd)
}
