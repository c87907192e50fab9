// Package domain contains the override extraction and source patching logic.
package domain

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"tidywarn.dev/pkg/tidywarn/internal/adapter"
	"tidywarn.dev/pkg/tidywarn/internal/controller"
	m "tidywarn.dev/pkg/tidywarn/internal/model"
)

// RunArgs holds the options shared by the patching tools.
type RunArgs struct {
	DryRun       bool
	BackupSuffix string
	Summary      bool
	// Report, when set, is where the YAML run report is written.
	Report m.Path
}

// ExtractArgs describes an extract run. Input or Output may be m.StdStream.
type ExtractArgs struct {
	Input  m.Path
	Output m.Path
	Stdin  io.Reader
	Stdout io.Writer
}

// ApplyArgs describes an apply run.
type ApplyArgs struct {
	RunArgs
	List m.Path
}

// StripArgs describes a strip run.
type StripArgs struct {
	RunArgs
	Paths      []m.Path
	Extensions []string
	Exclude    []string
}

// Workflow runs one tool end to end: reads its inputs, drives the applier or
// stripper file by file and reports through the UI.
type Workflow interface {
	Extract(ctx context.Context, args ExtractArgs) error
	Apply(ctx context.Context, args ApplyArgs) error
	Strip(ctx context.Context, args StripArgs) error
	Show(ctx context.Context, path m.Path) error
}

type workflow struct {
	fs       adapter.SourceFSAdapter
	reports  adapter.ReportStore
	ui       controller.UI
	applier  Applier
	stripper Stripper
}

// NewWorkflow wires a Workflow from its collaborators.
func NewWorkflow(
	fsAdapter adapter.SourceFSAdapter,
	reports adapter.ReportStore,
	ui controller.UI,
	applier Applier,
	stripper Stripper,
) Workflow {
	return &workflow{
		fs:       fsAdapter,
		reports:  reports,
		ui:       ui,
		applier:  applier,
		stripper: stripper,
	}
}

// Extract turns a diagnostic log into an override list.
func (w *workflow) Extract(ctx context.Context, args ExtractArgs) error {
	input := args.Stdin

	if args.Input != m.StdStream {
		content, err := w.fs.ReadFile(ctx, args.Input)
		if err != nil {
			slog.Error("Failed to read diagnostics", "path", args.Input, "error", err)
			return fmt.Errorf("failed to read %s: %w", args.Input, err)
		}

		input = bytes.NewReader(content)
	}

	if input == nil {
		return fmt.Errorf("no input stream")
	}

	var out bytes.Buffer

	records, err := ExtractOverrides(ctx, input, &out)
	if err != nil {
		return err
	}

	if args.Output == m.StdStream {
		if args.Stdout == nil {
			return fmt.Errorf("no output stream")
		}

		if _, err := args.Stdout.Write(out.Bytes()); err != nil {
			return fmt.Errorf("failed to write records: %w", err)
		}
	} else if err := w.fs.WriteFile(ctx, args.Output, out.Bytes(), 0o644); err != nil {
		slog.Error("Failed to write override list", "path", args.Output, "error", err)
		return fmt.Errorf("failed to write %s: %w", args.Output, err)
	}

	slog.Info("Extracted override records", "input", args.Input, "output", args.Output, "records", len(records))
	w.ui.DisplayExtracted(ctx, records, args.Output)

	return nil
}

// Apply inserts override markers for every file named in the override list.
// Missing files are reported and skipped; only a missing list is fatal.
func (w *workflow) Apply(ctx context.Context, args ApplyArgs) error {
	set, err := w.loadOverrideList(ctx, args.List)
	if err != nil {
		return err
	}

	report := newRunReport(m.ToolApply, args.RunArgs)
	opts := ApplyOptions{DryRun: args.DryRun, BackupSuffix: args.BackupSuffix}

	for _, file := range set.Files() {
		if err := ctx.Err(); err != nil {
			return err
		}

		result, err := w.applier.ApplyFile(ctx, file, set.Functions(file), opts)
		w.record(ctx, &report, result, err, true)
	}

	return w.finish(ctx, &report, args.RunArgs)
}

func (w *workflow) loadOverrideList(ctx context.Context, list m.Path) (*m.OverrideSet, error) {
	exists, err := w.fs.Exists(ctx, list)
	if err != nil {
		return nil, fmt.Errorf("failed to check %s: %w", list, err)
	}

	if !exists {
		return nil, fmt.Errorf("%s not found", list)
	}

	content, err := w.fs.ReadFile(ctx, list)
	if err != nil {
		slog.Error("Failed to read override list", "path", list, "error", err)
		return nil, fmt.Errorf("failed to read %s: %w", list, err)
	}

	set, err := LoadOverrides(ctx, bytes.NewReader(content))
	if err != nil {
		return nil, err
	}

	slog.Info("Loaded override list", "path", list, "files", set.Len())

	return set, nil
}

// Strip removes redundant virtual keywords from the given files and from the
// headers found under the given directories.
func (w *workflow) Strip(ctx context.Context, args StripArgs) error {
	if len(args.Paths) == 0 {
		return fmt.Errorf("no paths given")
	}

	report := newRunReport(m.ToolStrip, args.RunArgs)
	opts := StripOptions{
		DryRun:       args.DryRun,
		BackupSuffix: args.BackupSuffix,
		Extensions:   args.Extensions,
		Exclude:      args.Exclude,
	}

	for _, path := range args.Paths {
		if err := ctx.Err(); err != nil {
			return err
		}

		targets, err := w.stripTargets(ctx, path, opts)
		if err != nil {
			w.warn(ctx, &report, err.Error())
			continue
		}

		for _, target := range targets {
			if err := ctx.Err(); err != nil {
				return err
			}

			result, err := w.stripper.StripFile(ctx, target, opts)
			w.record(ctx, &report, result, err, false)
		}
	}

	return w.finish(ctx, &report, args.RunArgs)
}

// Show prints the summary table and warnings of a saved run report.
func (w *workflow) Show(ctx context.Context, path m.Path) error {
	report, err := w.reports.LoadReport(ctx, path)
	if err != nil {
		slog.Error("Failed to load run report", "path", path, "error", err)
		return err
	}

	slog.Info("Loaded run report", "path", path, "run_id", report.RunID, "tool", string(report.Tool))

	w.ui.DisplaySummary(ctx, report)

	for _, message := range report.Warnings {
		w.ui.DisplayWarning(ctx, message)
	}

	return nil
}

func (w *workflow) stripTargets(ctx context.Context, path m.Path, opts StripOptions) ([]m.Path, error) {
	info, err := w.fs.FileInfo(ctx, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("path not found: %s", path)
		}

		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	if info.IsDir() {
		return w.stripper.CollectTargets(ctx, path, opts)
	}

	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("not a regular file: %s", path)
	}

	return []m.Path{path}, nil
}

// record adds result to the report and shows it. Per-file errors become
// warnings and never stop the run.
func (w *workflow) record(ctx context.Context, report *m.RunReport, result m.FileResult, err error, showUnchanged bool) {
	report.Files = append(report.Files, result)

	if err != nil {
		if errors.Is(err, ErrFileNotFound) {
			w.warn(ctx, report, fmt.Sprintf("file not found: %s", result.File))
		} else {
			w.warn(ctx, report, err.Error())
		}

		return
	}

	if result.Backup != "" {
		w.ui.DisplayBackup(ctx, result.File, result.Backup, result.BackupCreated)
	}

	if result.State != m.Planned {
		for _, edit := range result.Edits {
			w.ui.DisplayEdit(ctx, edit)
		}
	}

	if result.State == m.Unchanged && !showUnchanged {
		return
	}

	w.ui.DisplayFileResult(ctx, result)
}

func (w *workflow) warn(ctx context.Context, report *m.RunReport, message string) {
	slog.Warn("Skipping target", "reason", message)

	report.Warnings = append(report.Warnings, message)
	w.ui.DisplayWarning(ctx, message)
}

func (w *workflow) finish(ctx context.Context, report *m.RunReport, args RunArgs) error {
	if args.Summary {
		w.ui.DisplaySummary(ctx, *report)
	}

	if args.Report != "" {
		if err := w.reports.SaveReport(ctx, args.Report, *report); err != nil {
			slog.Error("Failed to save run report", "path", args.Report, "error", err)
			return err
		}
	}

	slog.Info("Run complete",
		"run_id", report.RunID,
		"tool", string(report.Tool),
		"files", len(report.Files),
		"edits", report.EditCount(),
		"warnings", len(report.Warnings),
	)

	return nil
}

func newRunReport(tool m.Tool, args RunArgs) m.RunReport {
	return m.RunReport{
		RunID:     uuid.NewString(),
		Tool:      tool,
		StartedAt: time.Now().UTC(),
		DryRun:    args.DryRun,
	}
}
