// Package controller provides the console output for the tidywarn tools.
package controller

import (
	"context"
	"io"
	"os"

	"golang.org/x/term"

	m "tidywarn.dev/pkg/tidywarn/internal/model"
)

// UI defines how the tools report progress to the operator.
// Warnings go to the error stream, everything else to standard output.
type UI interface {
	DisplayBackup(ctx context.Context, file, backup m.Path, created bool)
	DisplayEdit(ctx context.Context, edit m.Edit)
	DisplayFileResult(ctx context.Context, result m.FileResult)
	DisplayWarning(ctx context.Context, message string)
	DisplayExtracted(ctx context.Context, records []m.OverrideRecord, output m.Path)
	DisplaySummary(ctx context.Context, report m.RunReport)
}

// IsTTY reports whether w is a file attached to a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok || f == nil {
		return false
	}

	return term.IsTerminal(int(f.Fd()))
}
