package domain

import (
	"context"
	"fmt"
	"log/slog"

	"tidywarn.dev/pkg/tidywarn/internal/adapter"
	m "tidywarn.dev/pkg/tidywarn/internal/model"
)

// DefaultBackupSuffix is appended to a source path to name its backup.
const DefaultBackupSuffix = ".bak"

// BackupPath returns the backup location for path: Foo.h -> Foo.h.bak.
func BackupPath(path m.Path, suffix string) m.Path {
	if suffix == "" {
		suffix = DefaultBackupSuffix
	}

	return m.Path(string(path) + suffix)
}

// ensureBackup copies path to its backup location unless a backup already
// exists. An existing backup is never refreshed: it holds the first version
// of the file any run ever saw.
func ensureBackup(ctx context.Context, fs adapter.SourceFSAdapter, path m.Path, suffix string) (m.Path, bool, error) {
	backup := BackupPath(path, suffix)

	exists, err := fs.Exists(ctx, backup)
	if err != nil {
		slog.Error("Failed to check backup", "path", path, "backup", backup, "error", err)
		return backup, false, fmt.Errorf("failed to check backup %s: %w", backup, err)
	}

	if exists {
		slog.Debug("Backup already exists", "path", path, "backup", backup)
		return backup, false, nil
	}

	if err := fs.CopyFile(ctx, path, backup); err != nil {
		slog.Error("Failed to create backup", "path", path, "backup", backup, "error", err)
		return backup, false, fmt.Errorf("failed to back up %s: %w", path, err)
	}

	slog.Info("Backed up file", "path", path, "backup", backup)

	return backup, true, nil
}
