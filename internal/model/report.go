package model

import "time"

// EditKind identifies which tool produced an edit.
type EditKind string

const (
	// EditAddOverride is an override marker inserted by the applier.
	EditAddOverride EditKind = "add-override"
	// EditStripVirtual is a redundant virtual keyword removed by the stripper.
	EditStripVirtual EditKind = "strip-virtual"
)

// Edit describes a single rewritten line.
type Edit struct {
	Kind     EditKind `yaml:"kind"`
	File     Path     `yaml:"file"`
	Line     int      `yaml:"line"` // 1-based
	Function string   `yaml:"function,omitempty"`
	Before   string   `yaml:"before"`
	After    string   `yaml:"after"`
}

// FileResult holds the outcome of processing one source file.
type FileResult struct {
	File          Path      `yaml:"file"`
	State         FileState `yaml:"state"`
	Backup        Path      `yaml:"backup,omitempty"`
	BackupCreated bool      `yaml:"backup_created,omitempty"`
	Edits         []Edit    `yaml:"edits,omitempty"`
	Diff          string    `yaml:"diff,omitempty"` // unified diff, dry runs only
	Error         string    `yaml:"error,omitempty"`
}

// Changed reports whether the file has (or would have) edits.
func (r FileResult) Changed() bool {
	return len(r.Edits) > 0
}

// Tool names the command that produced a run report.
type Tool string

// Available tools.
const (
	ToolExtract Tool = "extract"
	ToolApply   Tool = "apply"
	ToolStrip   Tool = "strip"
)

// RunReport summarizes one invocation of a patching tool.
type RunReport struct {
	RunID     string       `yaml:"run_id"`
	Tool      Tool         `yaml:"tool"`
	StartedAt time.Time    `yaml:"started_at"`
	DryRun    bool         `yaml:"dry_run"`
	Files     []FileResult `yaml:"files"`
	Warnings  []string     `yaml:"warnings,omitempty"`
}

// EditCount returns the total number of edits across all files.
func (r RunReport) EditCount() int {
	total := 0
	for _, file := range r.Files {
		total += len(file.Edits)
	}

	return total
}
