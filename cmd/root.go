// Package cmd provides the root command and CLI setup for tidywarn.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"tidywarn.dev/pkg/tidywarn/internal/adapter"
	"tidywarn.dev/pkg/tidywarn/internal/controller"
	"tidywarn.dev/pkg/tidywarn/internal/domain"
	m "tidywarn.dev/pkg/tidywarn/internal/model"
)

var fsAdapter adapter.SourceFSAdapter
var reportStore adapter.ReportStore
var applier domain.Applier
var stripper domain.Stripper

// dryRunFlag reports planned edits as diffs without touching any file.
var dryRunFlag bool

// summaryFlag prints a per-file table after apply/strip.
var summaryFlag bool

// reportFlag is the YAML run report destination; empty disables it.
var reportFlag string

var backupSuffixFlag string

var verboseFlag bool

var logFileFlag string

func init() {
	// Initialize shared dependencies.
	fsAdapter = adapter.NewLocalSourceFSAdapter()
	reportStore = adapter.NewReportStore(fsAdapter)
	applier = domain.NewApplier(fsAdapter)
	stripper = domain.NewStripper(fsAdapter)
}

const pipelineHelp = `Typical pipeline:
  tidywarn extract build.log overrides.txt
  tidywarn apply overrides.txt
  tidywarn strip include/ src/Widget.h`

const rootLongDescription = `tidywarn post-processes compiler warnings about virtual methods that are
not marked 'override' and patches the affected C++ declarations.

Every patched file keeps a pristine sibling backup (Foo.h -> Foo.h.bak) that
is created once and never refreshed.

` + pipelineHelp

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tidywarn",
		Short: "Add missing override markers reported by the compiler",
		Long:  rootLongDescription,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			if configErr != nil {
				return configErr
			}

			configureLogger(viper.GetString(logFilenameKey), viper.GetBool(logVerboseKey))

			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	configureRootFlags(cmd)

	return cmd
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().BoolVarP(&dryRunFlag, dryRunFlagName, "n", viper.GetBool(dryRunConfigKey), "show the edits as a diff without writing files or backups")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(dryRunFlagName), dryRunConfigKey)

	cmd.PersistentFlags().BoolVar(&summaryFlag, summaryFlagName, viper.GetBool(summaryConfigKey), "print a per-file summary table")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(summaryFlagName), summaryConfigKey)

	cmd.PersistentFlags().StringVar(&reportFlag, reportFlagName, viper.GetString(reportConfigKey), "write a YAML run report to this file")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(reportFlagName), reportConfigKey)

	cmd.PersistentFlags().StringVar(&backupSuffixFlag, backupSuffixFlagName, viper.GetString(backupSuffixKey), "suffix appended to a file name to form its backup")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(backupSuffixFlagName), backupSuffixKey)

	cmd.PersistentFlags().BoolVarP(&verboseFlag, verboseFlagName, "v", viper.GetBool(logVerboseKey), "log at debug level")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(verboseFlagName), logVerboseKey)

	cmd.PersistentFlags().StringVar(&logFileFlag, logFileFlagName, viper.GetString(logFilenameKey), "write a rotating debug log to this file (off by default)")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(logFileFlagName), logFilenameKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	err := rootCmd.ExecuteContext(ctx)

	stop()

	if err != nil {
		os.Exit(1)
	}
}

// newWorkflow builds the workflow for one invocation, printing through cmd.
func newWorkflow(cmd *cobra.Command) domain.Workflow {
	ui := controller.NewUI(cmd, controller.IsTTY(cmd.OutOrStdout()))

	return domain.NewWorkflow(fsAdapter, reportStore, ui, applier, stripper)
}

// runArgsFromConfig collects the options shared by apply and strip.
func runArgsFromConfig() domain.RunArgs {
	return domain.RunArgs{
		DryRun:       viper.GetBool(dryRunConfigKey),
		BackupSuffix: viper.GetString(backupSuffixKey),
		Summary:      viper.GetBool(summaryConfigKey),
		Report:       m.Path(viper.GetString(reportConfigKey)),
	}
}

func parsePaths(args []string) []m.Path {
	paths := make([]m.Path, 0, len(args))
	for _, arg := range args {
		paths = append(paths, m.Path(arg))
	}

	return paths
}
