package controller

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "tidywarn.dev/pkg/tidywarn/internal/model"
)

// SimpleUI implements UI on top of the cobra command's output streams.
type SimpleUI struct {
	cmd    *cobra.Command
	styles styles
}

// NewSimpleUI creates a SimpleUI that prints plain text.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd, styles: newStyles(false)}
}

// NewUI creates the UI for cmd, with colors when the output is a terminal.
func NewUI(cmd *cobra.Command, isTTY bool) UI {
	return &SimpleUI{cmd: cmd, styles: newStyles(isTTY)}
}

// DisplayBackup reports a newly created or already present backup.
func (s *SimpleUI) DisplayBackup(ctx context.Context, file, backup m.Path, created bool) {
	if err := ctx.Err(); err != nil {
		return
	}

	if created {
		s.printf("Backed up %s → %s\n", file, backup)
		return
	}

	s.printf("%s\n", s.styles.render(s.styles.muted, "Backup already exists: "+string(backup)))
}

// DisplayEdit prints one diagnostic line per changed source line.
func (s *SimpleUI) DisplayEdit(ctx context.Context, edit m.Edit) {
	if err := ctx.Err(); err != nil {
		return
	}

	location := fmt.Sprintf("%s:%d:", edit.File, edit.Line)

	switch edit.Kind {
	case m.EditAddOverride:
		s.printf("%s added %s to `%s`\n", location, s.styles.render(s.styles.info, m.OverrideMarker), edit.Function)
	case m.EditStripVirtual:
		s.printf("%s removed %s\n", location, s.styles.render(s.styles.info, m.VirtualKeyword))
	default:
		s.printf("%s %s\n", location, edit.After)
	}
}

// DisplayFileResult prints the final state of a file.
func (s *SimpleUI) DisplayFileResult(ctx context.Context, result m.FileResult) {
	if err := ctx.Err(); err != nil {
		return
	}

	switch result.State {
	case m.Rewritten:
		s.printf("%s\n", s.styles.render(s.styles.success, "Updated "+string(result.File)))
	case m.Unchanged:
		s.printf("%s\n", s.styles.render(s.styles.muted, "No changes in "+string(result.File)))
	case m.Planned:
		// Diff lines carry source text; they are printed untouched.
		s.printf("%s", result.Diff)
		s.printf("Would update %s (%d edit(s))\n", result.File, len(result.Edits))
	case m.Unseen, m.BackedUp, m.Missing, m.Failed:
	}
}

// DisplayWarning prints a recoverable problem to the error stream.
func (s *SimpleUI) DisplayWarning(ctx context.Context, message string) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.fprintf(s.cmd.ErrOrStderr(), "%s %s\n", s.styles.render(s.styles.warning, "Warning:"), message)
}

// DisplayExtracted reports how many records were extracted. Nothing is
// printed when the records themselves went to standard output.
func (s *SimpleUI) DisplayExtracted(ctx context.Context, records []m.OverrideRecord, output m.Path) {
	if err := ctx.Err(); err != nil {
		return
	}

	if output == m.StdStream {
		return
	}

	s.printf("Extracted %d override record(s) to %s\n", len(records), output)
}

// DisplaySummary renders a per-file table of the run.
func (s *SimpleUI) DisplaySummary(ctx context.Context, report m.RunReport) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("\n%s", renderSummaryTable(report))
}

func renderSummaryTable(report m.RunReport) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Path", "Edits", "State"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER, tablewriter.ALIGN_LEFT})

	for _, file := range report.Files {
		table.Append([]string{string(file.File), strconv.Itoa(len(file.Edits)), file.State.String()})
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Files %d", len(report.Files)),
		strconv.Itoa(report.EditCount()),
		"",
	})

	table.Render()

	return tableBuffer.String()
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	s.fprintf(s.cmd.OutOrStdout(), format, args...)
}

func (s *SimpleUI) fprintf(w io.Writer, format string, args ...interface{}) {
	_, _ = fmt.Fprintf(w, format, args...)
}
