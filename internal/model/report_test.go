package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestFileState_String(t *testing.T) {
	tests := []struct {
		state FileState
		want  string
	}{
		{Unseen, "unseen"},
		{BackedUp, "backed-up"},
		{Unchanged, "unchanged"},
		{Rewritten, "rewritten"},
		{Planned, "planned"},
		{Missing, "missing"},
		{Failed, "failed"},
		{FileState(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.state.String())
		})
	}
}

func TestFileState_YAML(t *testing.T) {
	out, err := yaml.Marshal(FileResult{File: "Circle.h", State: Rewritten})
	require.NoError(t, err)
	assert.Contains(t, string(out), "state: rewritten")

	var result FileResult
	require.NoError(t, yaml.Unmarshal([]byte("file: Circle.h\nstate: planned\n"), &result))
	assert.Equal(t, Planned, result.State)

	require.NoError(t, yaml.Unmarshal([]byte("file: Circle.h\nstate: bogus\n"), &result))
	assert.Equal(t, Unseen, result.State)
}

func TestRunReport_EditCount(t *testing.T) {
	report := RunReport{Files: []FileResult{
		{File: "a.h", Edits: []Edit{{Line: 1}, {Line: 4}}},
		{File: "b.h"},
		{File: "c.h", Edits: []Edit{{Line: 2}}},
	}}

	assert.Equal(t, 3, report.EditCount())
	assert.True(t, report.Files[0].Changed())
	assert.False(t, report.Files[1].Changed())
}

func TestPath_String(t *testing.T) {
	assert.Equal(t, "include/Circle.h", Path("include/Circle.h").String())
	assert.Equal(t, "-", StdStream.String())
}
