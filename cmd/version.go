package cmd

import (
	"runtime/debug"

	"github.com/spf13/cobra"
)

const vcsRevisionSetting = "vcs.revision"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Long:  "Prints the module version, the VCS revision when known and the Go toolchain version.",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			info, ok := debug.ReadBuildInfo()
			if !ok || info.Main.Version == "" {
				cmd.Println("version: unknown")
				return
			}

			cmd.Println("tidywarn\t", info.Main.Version)

			if revision := buildSetting(info, vcsRevisionSetting); revision != "" {
				cmd.Println("revision\t", revision)
			}

			cmd.Println("go\t\t", info.GoVersion)
		},
	}
}

func buildSetting(info *debug.BuildInfo, key string) string {
	for _, setting := range info.Settings {
		if setting.Key == key {
			return setting.Value
		}
	}

	return ""
}

// versionCmd represents the version command.
var versionCmd = newVersionCmd()

func init() {
	rootCmd.AddCommand(versionCmd)
}
