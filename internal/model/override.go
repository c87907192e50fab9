package model

// OverrideMarker is the annotation inserted into virtual method declarations.
const OverrideMarker = "override"

// VirtualKeyword is the declaration-site keyword that becomes redundant once
// the override marker is present.
const VirtualKeyword = "virtual"

// OverrideRecord pairs a source file with a function whose declaration is
// missing the override marker.
type OverrideRecord struct {
	File     Path
	Function string
}

// OverrideSet groups override records by file. Files and functions keep the
// order in which they were first added; duplicates are dropped.
type OverrideSet struct {
	files []Path
	funcs map[Path][]string
}

// NewOverrideSet returns an empty OverrideSet.
func NewOverrideSet() *OverrideSet {
	return &OverrideSet{funcs: make(map[Path][]string)}
}

// Add records a (file, function) pair. It reports false if the pair was
// already present.
func (s *OverrideSet) Add(record OverrideRecord) bool {
	existing, ok := s.funcs[record.File]
	if !ok {
		s.files = append(s.files, record.File)
	}

	for _, fn := range existing {
		if fn == record.Function {
			return false
		}
	}

	s.funcs[record.File] = append(existing, record.Function)

	return true
}

// Files returns the referenced files in first-seen order.
func (s *OverrideSet) Files() []Path {
	out := make([]Path, len(s.files))
	copy(out, s.files)

	return out
}

// Functions returns the function names recorded for file.
func (s *OverrideSet) Functions(file Path) []string {
	fns := s.funcs[file]
	out := make([]string, len(fns))
	copy(out, fns)

	return out
}

// Len returns the number of distinct files.
func (s *OverrideSet) Len() int {
	return len(s.files)
}
