package domain

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"tidywarn.dev/pkg/tidywarn/internal/adapter"
	"tidywarn.dev/pkg/tidywarn/internal/controller/mocks"
	m "tidywarn.dev/pkg/tidywarn/internal/model"
)

func newTestWorkflow(ui *mocks.MockUI) Workflow {
	fs := adapter.NewLocalSourceFSAdapter()

	return NewWorkflow(fs, adapter.NewReportStore(fs), ui, NewApplier(fs), NewStripper(fs))
}

func resultFor(file m.Path, state m.FileState) interface{} {
	return mock.MatchedBy(func(result m.FileResult) bool {
		return result.File == file && result.State == state
	})
}

func TestWorkflow_Extract(t *testing.T) {
	dir := t.TempDir()
	input := writeSource(t, filepath.Join(dir, "build.log"),
		"Widget.h:1:2: warning: 'draw' overrides a member function but is not marked 'override'\nnoise\n")
	output := m.Path(filepath.Join(dir, "overrides.txt"))

	ui := &mocks.MockUI{}
	ui.On("DisplayExtracted", mock.Anything, []m.OverrideRecord{{File: "Widget.h", Function: "draw"}}, output).Return()

	err := newTestWorkflow(ui).Extract(context.Background(), ExtractArgs{Input: input, Output: output})
	require.NoError(t, err)

	assert.Equal(t, "Widget.h\tdraw\n", readSource(t, output))
	ui.AssertExpectations(t)
}

func TestWorkflow_ExtractStdStreams(t *testing.T) {
	var stdout bytes.Buffer

	ui := &mocks.MockUI{}
	ui.On("DisplayExtracted", mock.Anything, mock.Anything, m.StdStream).Return()

	err := newTestWorkflow(ui).Extract(context.Background(), ExtractArgs{
		Input:  m.StdStream,
		Output: m.StdStream,
		Stdin:  strings.NewReader("x.h:1:1: warning: 'f' overrides a member function but is not marked 'override'\n"),
		Stdout: &stdout,
	})
	require.NoError(t, err)

	assert.Equal(t, "x.h\tf\n", stdout.String())
	ui.AssertExpectations(t)
}

func TestWorkflow_ExtractMissingInput(t *testing.T) {
	dir := t.TempDir()
	ui := &mocks.MockUI{}

	err := newTestWorkflow(ui).Extract(context.Background(), ExtractArgs{
		Input:  m.Path(filepath.Join(dir, "missing.log")),
		Output: m.Path(filepath.Join(dir, "out.txt")),
	})
	require.Error(t, err)
	ui.AssertNotCalled(t, "DisplayExtracted", mock.Anything, mock.Anything, mock.Anything)
}

func TestWorkflow_Apply(t *testing.T) {
	dir := t.TempDir()
	widget := writeSource(t, filepath.Join(dir, "Widget.h"), widgetHeader)
	gone := m.Path(filepath.Join(dir, "Gone.h"))
	list := writeSource(t, filepath.Join(dir, "overrides.txt"),
		string(gone)+"\tdraw\n"+string(widget)+"\tdoThing\n"+string(widget)+"\tsize\n")
	reportPath := m.Path(filepath.Join(dir, "report.yaml"))

	ui := &mocks.MockUI{}
	ui.On("DisplayWarning", mock.Anything, "file not found: "+string(gone)).Return().Once()
	ui.On("DisplayBackup", mock.Anything, widget, widget+".bak", true).Return().Once()
	ui.On("DisplayEdit", mock.Anything, mock.AnythingOfType("model.Edit")).Return().Twice()
	ui.On("DisplayFileResult", mock.Anything, resultFor(widget, m.Rewritten)).Return().Once()
	ui.On("DisplaySummary", mock.Anything, mock.MatchedBy(func(report m.RunReport) bool {
		return report.Tool == m.ToolApply && len(report.Files) == 2 && report.EditCount() == 2
	})).Return().Once()

	err := newTestWorkflow(ui).Apply(context.Background(), ApplyArgs{
		RunArgs: RunArgs{Summary: true, Report: reportPath},
		List:    list,
	})
	require.NoError(t, err)

	assert.Equal(t, widgetPatched, readSource(t, widget))
	ui.AssertExpectations(t)

	report, err := adapter.NewReportStore(adapter.NewLocalSourceFSAdapter()).LoadReport(context.Background(), reportPath)
	require.NoError(t, err)
	require.Len(t, report.Files, 2)
	assert.Equal(t, m.Missing, report.Files[0].State)
	assert.Equal(t, m.Rewritten, report.Files[1].State)
	assert.Equal(t, []string{"file not found: " + string(gone)}, report.Warnings)
}

func TestWorkflow_ApplyUnchangedIsReported(t *testing.T) {
	dir := t.TempDir()
	widget := writeSource(t, filepath.Join(dir, "Widget.h"), widgetPatched)
	writeSource(t, filepath.Join(dir, "Widget.h.bak"), widgetHeader)
	list := writeSource(t, filepath.Join(dir, "overrides.txt"), string(widget)+"\tsize\n")

	ui := &mocks.MockUI{}
	ui.On("DisplayBackup", mock.Anything, widget, widget+".bak", false).Return().Once()
	ui.On("DisplayFileResult", mock.Anything, resultFor(widget, m.Unchanged)).Return().Once()

	require.NoError(t, newTestWorkflow(ui).Apply(context.Background(), ApplyArgs{List: list}))
	ui.AssertExpectations(t)
}

func TestWorkflow_ApplyDryRunShowsOnlyTheDiff(t *testing.T) {
	dir := t.TempDir()
	widget := writeSource(t, filepath.Join(dir, "Widget.h"), widgetHeader)
	list := writeSource(t, filepath.Join(dir, "overrides.txt"), string(widget)+"\tsize\n")

	ui := &mocks.MockUI{}
	ui.On("DisplayFileResult", mock.Anything, resultFor(widget, m.Planned)).Return().Once()

	require.NoError(t, newTestWorkflow(ui).Apply(context.Background(), ApplyArgs{
		RunArgs: RunArgs{DryRun: true},
		List:    list,
	}))

	ui.AssertExpectations(t)
	ui.AssertNotCalled(t, "DisplayEdit", mock.Anything, mock.Anything)
	assert.Equal(t, widgetHeader, readSource(t, widget))
}

func TestWorkflow_ApplyMissingList(t *testing.T) {
	ui := &mocks.MockUI{}

	err := newTestWorkflow(ui).Apply(context.Background(), ApplyArgs{List: m.Path(filepath.Join(t.TempDir(), "nope.txt"))})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
	ui.AssertExpectations(t)
}

func TestWorkflow_Strip(t *testing.T) {
	dir := t.TempDir()
	changed := writeSource(t, filepath.Join(dir, "include", "Circle.h"), "    virtual void draw() override;\n")
	writeSource(t, filepath.Join(dir, "include", "Plain.h"), "    virtual void draw();\n")
	explicit := writeSource(t, filepath.Join(dir, "src", "Circle.cpp"), "  virtual int area() const override;\n")
	missing := m.Path(filepath.Join(dir, "nothing"))

	ui := &mocks.MockUI{}
	ui.On("DisplayBackup", mock.Anything, changed, changed+".bak", true).Return().Once()
	ui.On("DisplayBackup", mock.Anything, explicit, explicit+".bak", true).Return().Once()
	ui.On("DisplayEdit", mock.Anything, mock.AnythingOfType("model.Edit")).Return().Twice()
	ui.On("DisplayFileResult", mock.Anything, resultFor(changed, m.Rewritten)).Return().Once()
	ui.On("DisplayFileResult", mock.Anything, resultFor(explicit, m.Rewritten)).Return().Once()
	ui.On("DisplayWarning", mock.Anything, "path not found: "+string(missing)).Return().Once()

	err := newTestWorkflow(ui).Strip(context.Background(), StripArgs{
		Paths: []m.Path{m.Path(filepath.Join(dir, "include")), missing, explicit},
	})
	require.NoError(t, err)

	assert.Equal(t, "    void draw() override;\n", readSource(t, changed))
	assert.Equal(t, "  int area() const override;\n", readSource(t, explicit))
	assert.Equal(t, "    virtual void draw();\n", readSource(t, m.Path(filepath.Join(dir, "include", "Plain.h"))))
	ui.AssertExpectations(t)
}

func TestWorkflow_StripNoPaths(t *testing.T) {
	err := newTestWorkflow(&mocks.MockUI{}).Strip(context.Background(), StripArgs{})
	require.Error(t, err)
}

func TestWorkflow_Cancelled(t *testing.T) {
	dir := t.TempDir()
	widget := writeSource(t, filepath.Join(dir, "Widget.h"), widgetHeader)
	list := writeSource(t, filepath.Join(dir, "overrides.txt"), string(widget)+"\tsize\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := newTestWorkflow(&mocks.MockUI{}).Apply(ctx, ApplyArgs{List: list})
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, widgetHeader, readSource(t, widget))
}

func TestWorkflow_ApplyThenStripKeepsFirstBackup(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	widget := writeSource(t, filepath.Join(dir, "Widget.h"), widgetHeader)
	list := writeSource(t, filepath.Join(dir, "overrides.txt"),
		string(widget)+"\tdoThing\n"+string(widget)+"\tsize\n")

	applyUI := &mocks.MockUI{}
	applyUI.On("DisplayBackup", mock.Anything, widget, widget+".bak", true).Return().Once()
	applyUI.On("DisplayEdit", mock.Anything, mock.AnythingOfType("model.Edit")).Return().Twice()
	applyUI.On("DisplayFileResult", mock.Anything, resultFor(widget, m.Rewritten)).Return().Once()

	require.NoError(t, newTestWorkflow(applyUI).Apply(ctx, ApplyArgs{List: list}))
	applyUI.AssertExpectations(t)
	assert.Equal(t, widgetPatched, readSource(t, widget))

	stripUI := &mocks.MockUI{}
	stripUI.On("DisplayBackup", mock.Anything, widget, widget+".bak", false).Return().Once()
	stripUI.On("DisplayEdit", mock.Anything, mock.AnythingOfType("model.Edit")).Return().Twice()
	stripUI.On("DisplayFileResult", mock.Anything, resultFor(widget, m.Rewritten)).Return().Once()

	require.NoError(t, newTestWorkflow(stripUI).Strip(ctx, StripArgs{Paths: []m.Path{widget}}))
	stripUI.AssertExpectations(t)

	assert.Contains(t, readSource(t, widget), "    void doThing(int x) const override;\n")
	assert.Contains(t, readSource(t, widget), "    int size() override;\n")
	assert.Contains(t, readSource(t, widget), "    virtual void unrelated();\n")
	assert.Equal(t, widgetHeader, readSource(t, widget+".bak"))
}

func TestWorkflow_Show(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	widget := writeSource(t, filepath.Join(dir, "Widget.h"), widgetHeader)
	gone := m.Path(filepath.Join(dir, "Gone.h"))
	list := writeSource(t, filepath.Join(dir, "overrides.txt"),
		string(gone)+"\tdraw\n"+string(widget)+"\tsize\n")
	reportPath := m.Path(filepath.Join(dir, "report.yaml"))

	applyUI := &mocks.MockUI{}
	applyUI.On("DisplayWarning", mock.Anything, mock.Anything).Return()
	applyUI.On("DisplayBackup", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return()
	applyUI.On("DisplayEdit", mock.Anything, mock.Anything).Return()
	applyUI.On("DisplayFileResult", mock.Anything, mock.Anything).Return()

	require.NoError(t, newTestWorkflow(applyUI).Apply(ctx, ApplyArgs{
		RunArgs: RunArgs{Report: reportPath},
		List:    list,
	}))

	ui := &mocks.MockUI{}
	ui.On("DisplaySummary", mock.Anything, mock.MatchedBy(func(report m.RunReport) bool {
		return report.Tool == m.ToolApply && len(report.Files) == 2 && report.EditCount() == 1
	})).Return().Once()
	ui.On("DisplayWarning", mock.Anything, "file not found: "+string(gone)).Return().Once()

	require.NoError(t, newTestWorkflow(ui).Show(ctx, reportPath))
	ui.AssertExpectations(t)
}

func TestWorkflow_ShowMissingReport(t *testing.T) {
	ui := &mocks.MockUI{}

	err := newTestWorkflow(ui).Show(context.Background(), m.Path(filepath.Join(t.TempDir(), "report.yaml")))
	require.Error(t, err)
	ui.AssertNotCalled(t, "DisplaySummary", mock.Anything, mock.Anything)
}
