// Package model defines the data structures shared by the tidywarn tools.
package model

// Path represents a file system path.
type Path string

// StdStream is the path that stands for standard input or output.
const StdStream Path = "-"

// String returns the path as a plain string.
func (p Path) String() string {
	return string(p)
}

// FileState tracks where a source file is in the patch lifecycle:
// Unseen -> BackedUp -> {Unchanged | Rewritten}.
type FileState int

const (
	// Unseen means the file has not been touched yet.
	Unseen FileState = iota
	// BackedUp means a backup exists (created now or by an earlier run).
	BackedUp
	// Unchanged means the file was scanned and nothing needed to change.
	Unchanged
	// Rewritten means at least one line changed and the file was rewritten.
	Rewritten
	// Planned means changes were found during a dry run and nothing was written.
	Planned
	// Missing means the target did not exist and was skipped.
	Missing
	// Failed means the target could not be processed.
	Failed
)

var fileStateNames = map[FileState]string{
	Unseen:    "unseen",
	BackedUp:  "backed-up",
	Unchanged: "unchanged",
	Rewritten: "rewritten",
	Planned:   "planned",
	Missing:   "missing",
	Failed:    "failed",
}

func (s FileState) String() string {
	if name, ok := fileStateNames[s]; ok {
		return name
	}

	return "unknown"
}

// MarshalYAML renders the state by name in run reports.
func (s FileState) MarshalYAML() (interface{}, error) {
	return s.String(), nil
}

// UnmarshalYAML parses a state written by MarshalYAML. Unknown names decode
// as Unseen.
func (s *FileState) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var name string
	if err := unmarshal(&name); err != nil {
		return err
	}

	*s = Unseen

	for state, stateName := range fileStateNames {
		if stateName == name {
			*s = state
			break
		}
	}

	return nil
}
