package domain

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"tidywarn.dev/pkg/tidywarn/internal/adapter"
	m "tidywarn.dev/pkg/tidywarn/internal/model"
)

// ErrFileNotFound is returned for targets that do not exist.
var ErrFileNotFound = errors.New("file not found")

// ApplyOptions configures a single applier run.
type ApplyOptions struct {
	DryRun       bool
	BackupSuffix string
}

// Applier inserts missing override markers into virtual declarations.
type Applier interface {
	ApplyFile(ctx context.Context, file m.Path, functions []string, opts ApplyOptions) (m.FileResult, error)
}

type applier struct {
	fs adapter.SourceFSAdapter
}

// NewApplier constructs an Applier backed by the filesystem adapter.
func NewApplier(fsAdapter adapter.SourceFSAdapter) Applier {
	return &applier{fs: fsAdapter}
}

// ApplyFile backs up file (unless a backup exists or this is a dry run), then
// adds the override marker to every matching declaration of functions. The
// file is rewritten only if at least one line changed.
func (a *applier) ApplyFile(ctx context.Context, file m.Path, functions []string, opts ApplyOptions) (m.FileResult, error) {
	result := m.FileResult{File: file, State: m.Unseen}

	info, err := statRegularFile(ctx, a.fs, file)
	if err != nil {
		return failedResult(result, err), err
	}

	if !opts.DryRun {
		backup, created, err := ensureBackup(ctx, a.fs, file, opts.BackupSuffix)
		if err != nil {
			return failedResult(result, err), err
		}

		result.Backup = backup
		result.BackupCreated = created
		result.State = m.BackedUp
	}

	rules, err := buildOverrideRules(functions)
	if err != nil {
		return failedResult(result, err), err
	}

	content, err := a.fs.ReadFile(ctx, file)
	if err != nil {
		slog.Error("Failed to read source", "path", file, "error", err)
		err = fmt.Errorf("failed to read %s: %w", file, err)

		return failedResult(result, err), err
	}

	lines, err := splitLines(content)
	if err != nil {
		err = fmt.Errorf("failed to split %s: %w", file, err)
		return failedResult(result, err), err
	}

	patched, edits := insertOverrides(file, lines, rules)
	result.Edits = edits

	if err := commitLines(ctx, a.fs, &result, info.Mode().Perm(), lines, patched, opts.DryRun); err != nil {
		return failedResult(result, err), err
	}

	slog.Debug("Applied overrides", "path", file, "functions", len(functions), "edits", len(edits), "state", result.State.String())

	return result, nil
}

// statRegularFile returns the file's metadata, wrapping ErrFileNotFound when
// it does not exist.
func statRegularFile(ctx context.Context, fsAdapter adapter.SourceFSAdapter, file m.Path) (fs.FileInfo, error) {
	info, err := fsAdapter.FileInfo(ctx, file)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, file)
		}

		return nil, fmt.Errorf("failed to stat %s: %w", file, err)
	}

	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("not a regular file: %s", file)
	}

	return info, nil
}

// commitLines moves result to its final state: Unchanged when there are no
// edits, Planned with a diff on dry runs, Rewritten after writing patched.
func commitLines(ctx context.Context, fsAdapter adapter.SourceFSAdapter, result *m.FileResult, perm fs.FileMode, original, patched []string, dryRun bool) error {
	if !result.Changed() {
		result.State = m.Unchanged
		return nil
	}

	if dryRun {
		diff, err := unifiedDiff(result.File, original, patched)
		if err != nil {
			return fmt.Errorf("failed to diff %s: %w", result.File, err)
		}

		result.Diff = diff
		result.State = m.Planned

		return nil
	}

	if err := fsAdapter.WriteFile(ctx, result.File, joinLines(patched), perm); err != nil {
		slog.Error("Failed to rewrite source", "path", result.File, "error", err)
		return fmt.Errorf("failed to rewrite %s: %w", result.File, err)
	}

	result.State = m.Rewritten

	return nil
}

func failedResult(result m.FileResult, err error) m.FileResult {
	if errors.Is(err, ErrFileNotFound) {
		result.State = m.Missing
	} else {
		result.State = m.Failed
	}

	result.Error = err.Error()

	return result
}
