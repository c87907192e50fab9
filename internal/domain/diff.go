package domain

import (
	"github.com/pmezard/go-difflib/difflib"

	m "tidywarn.dev/pkg/tidywarn/internal/model"
)

const diffContextLines = 3

// unifiedDiff renders the change from before to after as a unified diff.
func unifiedDiff(path m.Path, before, after []string) (string, error) {
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(joinLines(before))),
		B:        difflib.SplitLines(string(joinLines(after))),
		FromFile: string(path),
		ToFile:   string(path),
		Context:  diffContextLines,
	})
}
