// Package mocks provides testify mocks for the controller interfaces.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	m "tidywarn.dev/pkg/tidywarn/internal/model"
)

// MockUI is a testify mock of controller.UI.
type MockUI struct {
	mock.Mock
}

// DisplayBackup records the call.
func (u *MockUI) DisplayBackup(ctx context.Context, file, backup m.Path, created bool) {
	u.Called(ctx, file, backup, created)
}

// DisplayEdit records the call.
func (u *MockUI) DisplayEdit(ctx context.Context, edit m.Edit) {
	u.Called(ctx, edit)
}

// DisplayFileResult records the call.
func (u *MockUI) DisplayFileResult(ctx context.Context, result m.FileResult) {
	u.Called(ctx, result)
}

// DisplayWarning records the call.
func (u *MockUI) DisplayWarning(ctx context.Context, message string) {
	u.Called(ctx, message)
}

// DisplayExtracted records the call.
func (u *MockUI) DisplayExtracted(ctx context.Context, records []m.OverrideRecord, output m.Path) {
	u.Called(ctx, records, output)
}

// DisplaySummary records the call.
func (u *MockUI) DisplaySummary(ctx context.Context, report m.RunReport) {
	u.Called(ctx, report)
}
