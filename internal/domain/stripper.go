package domain

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"tidywarn.dev/pkg/tidywarn/internal/adapter"
	m "tidywarn.dev/pkg/tidywarn/internal/model"
)

// DefaultHeaderExtensions lists the extensions searched when a directory is
// given to the stripper.
var DefaultHeaderExtensions = []string{".h", ".hh", ".hpp", ".hxx", ".h++"}

// virtualWithOverride matches a line that starts with the virtual keyword and
// already carries the override marker later on.
var virtualWithOverride = regexp.MustCompile(
	`^(?P<indent>\s*)` + m.VirtualKeyword + `\s+(?P<rest>.*\b` + m.OverrideMarker + `\b.*)$`,
)

// StripOptions configures a single stripper run.
type StripOptions struct {
	DryRun       bool
	BackupSuffix string
	// Extensions limits directory walks to files with these extensions.
	Extensions []string
	// Exclude holds doublestar globs, relative to the walked directory, for
	// files and directories to skip.
	Exclude []string
}

// Stripper removes the virtual keyword from declarations that already carry
// the override marker.
type Stripper interface {
	CollectTargets(ctx context.Context, root m.Path, opts StripOptions) ([]m.Path, error)
	StripFile(ctx context.Context, file m.Path, opts StripOptions) (m.FileResult, error)
}

type stripper struct {
	fs adapter.SourceFSAdapter
}

// NewStripper constructs a Stripper backed by the filesystem adapter.
func NewStripper(fsAdapter adapter.SourceFSAdapter) Stripper {
	return &stripper{fs: fsAdapter}
}

// stripVirtual drops the virtual keyword and the whitespace after it.
func stripVirtual(line string) (string, bool) {
	groups := virtualWithOverride.FindStringSubmatch(line)
	if groups == nil {
		return line, false
	}

	stripped := groups[virtualWithOverride.SubexpIndex("indent")] + groups[virtualWithOverride.SubexpIndex("rest")]

	return stripped, stripped != line
}

func stripLines(file m.Path, lines []string) ([]string, []m.Edit) {
	out := make([]string, len(lines))

	var edits []m.Edit

	for i, line := range lines {
		stripped, changed := stripVirtual(line)
		out[i] = stripped

		if changed {
			edits = append(edits, m.Edit{
				Kind:   m.EditStripVirtual,
				File:   file,
				Line:   i + 1,
				Before: line,
				After:  stripped,
			})
		}
	}

	return out, edits
}

// headerPattern builds a doublestar glob such as "**/*.{h,hpp}".
func headerPattern(extensions []string) (string, error) {
	if len(extensions) == 0 {
		extensions = DefaultHeaderExtensions
	}

	trimmed := make([]string, 0, len(extensions))

	for _, ext := range extensions {
		ext = strings.TrimPrefix(strings.TrimSpace(ext), ".")
		if ext == "" {
			continue
		}

		trimmed = append(trimmed, ext)
	}

	if len(trimmed) == 0 {
		return "", fmt.Errorf("no header extensions configured")
	}

	pattern := "**/*.{" + strings.Join(trimmed, ",") + "}"
	if !doublestar.ValidatePattern(pattern) {
		return "", fmt.Errorf("invalid header extensions %v", extensions)
	}

	return pattern, nil
}

func excluded(rel string, patterns []string) bool {
	for _, pattern := range patterns {
		matched, err := doublestar.Match(pattern, rel)
		if err != nil {
			slog.Debug("Bad exclude pattern", "pattern", pattern, "error", err)
			continue
		}

		if matched {
			return true
		}
	}

	return false
}

// CollectTargets walks root recursively and returns the header files to
// process, in lexical order.
func (s *stripper) CollectTargets(ctx context.Context, root m.Path, opts StripOptions) ([]m.Path, error) {
	pattern, err := headerPattern(opts.Extensions)
	if err != nil {
		return nil, err
	}

	var targets []m.Path

	err = s.fs.Walk(ctx, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		rel, relErr := s.fs.RelPath(ctx, root, m.Path(path))
		if relErr != nil {
			return relErr
		}

		relSlash := filepath.ToSlash(string(rel))

		if info.IsDir() {
			if relSlash != "." && (info.Name() == ".git" || excluded(relSlash, opts.Exclude)) {
				return filepath.SkipDir
			}

			return nil
		}

		if !info.Mode().IsRegular() || excluded(relSlash, opts.Exclude) {
			return nil
		}

		matched, matchErr := doublestar.Match(pattern, relSlash)
		if matchErr != nil {
			return matchErr
		}

		if matched {
			targets = append(targets, m.Path(path))
		}

		return nil
	})
	if err != nil {
		slog.Error("Failed to walk directory", "root", root, "error", err)
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}

	return targets, nil
}

// StripFile removes redundant virtual keywords from file. The backup is taken
// only when the file is about to be rewritten.
func (s *stripper) StripFile(ctx context.Context, file m.Path, opts StripOptions) (m.FileResult, error) {
	result := m.FileResult{File: file, State: m.Unseen}

	info, err := statRegularFile(ctx, s.fs, file)
	if err != nil {
		return failedResult(result, err), err
	}

	content, err := s.fs.ReadFile(ctx, file)
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

	stripped, edits := stripLines(file, lines)
	result.Edits = edits

	if result.Changed() && !opts.DryRun {
		backup, created, err := ensureBackup(ctx, s.fs, file, opts.BackupSuffix)
		if err != nil {
			return failedResult(result, err), err
		}

		result.Backup = backup
		result.BackupCreated = created
		result.State = m.BackedUp
	}

	if err := commitLines(ctx, s.fs, &result, info.Mode().Perm(), lines, stripped, opts.DryRun); err != nil {
		return failedResult(result, err), err
	}

	slog.Debug("Stripped virtual keywords", "path", file, "edits", len(edits), "state", result.State.String())

	return result, nil
}
