package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"tidywarn.dev/pkg/tidywarn/internal/domain"
)

const stripLongDescription = `Remove the 'virtual' keyword from declarations that already carry the
'override' marker.

Arguments may be files or directories. Directories are searched recursively
for header files; use --ext to change the extensions and --exclude to skip
paths (doublestar globs relative to the directory, e.g. "third_party/**").`

var stripExcludeFlag []string
var stripExtensionsFlag []string

// stripCmd represents the strip command.
var stripCmd = newStripCmd()

func newStripCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "strip <path> [<path>...]",
		Short: "Drop redundant virtual keywords from override declarations",
		Long:  stripLongDescription,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return newWorkflow(cmd).Strip(cmd.Context(), domain.StripArgs{
				RunArgs:    runArgsFromConfig(),
				Paths:      parsePaths(args),
				Extensions: viper.GetStringSlice(extensionsConfigKey),
				Exclude:    viper.GetStringSlice(excludeConfigKey),
			})
		},
	}

	configureStripFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(stripCmd)
}

func configureStripFlags(cmd *cobra.Command) {
	cmd.Flags().StringArrayVarP(&stripExcludeFlag, excludeFlagName, "x", viper.GetStringSlice(excludeConfigKey), "glob of paths to skip when walking directories (repeatable)")
	bindFlagToConfig(cmd.Flags().Lookup(excludeFlagName), excludeConfigKey)

	cmd.Flags().StringSliceVar(&stripExtensionsFlag, extensionsFlagName, viper.GetStringSlice(extensionsConfigKey), "header extensions searched in directories")
	bindFlagToConfig(cmd.Flags().Lookup(extensionsFlagName), extensionsConfigKey)
}
