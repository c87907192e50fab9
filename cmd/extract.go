package cmd

import (
	"github.com/spf13/cobra"

	"tidywarn.dev/pkg/tidywarn/internal/domain"
	m "tidywarn.dev/pkg/tidywarn/internal/model"
)

const extractLongDescription = `Scan a compiler log for warnings about functions that override a virtual
method without the 'override' marker and write one "<path>\t<function>" line
per warning to the output list.

Either argument may be "-" to read standard input or write standard output.`

// extractCmd represents the extract command.
var extractCmd = newExtractCmd()

func newExtractCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "extract <input-log> <output-list>",
		Short: "Collect missing-override warnings into an override list",
		Long:  extractLongDescription,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return newWorkflow(cmd).Extract(cmd.Context(), domain.ExtractArgs{
				Input:  m.Path(args[0]),
				Output: m.Path(args[1]),
				Stdin:  cmd.InOrStdin(),
				Stdout: cmd.OutOrStdout(),
			})
		},
	}
}

func init() {
	rootCmd.AddCommand(extractCmd)
}
