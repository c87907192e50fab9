package adapter

import (
	"context"
	"fmt"

	"gopkg.in/yaml.v3"

	m "tidywarn.dev/pkg/tidywarn/internal/model"
)

// ReportStore persists run reports.
type ReportStore interface {
	SaveReport(ctx context.Context, path m.Path, report m.RunReport) error
	LoadReport(ctx context.Context, path m.Path) (m.RunReport, error)
}

// YAMLReportStore writes run reports as YAML documents.
type YAMLReportStore struct {
	fs SourceFSAdapter
}

// NewReportStore returns a ReportStore that writes YAML through fs.
func NewReportStore(fs SourceFSAdapter) *YAMLReportStore {
	return &YAMLReportStore{fs: fs}
}

// SaveReport marshals report and writes it to path.
func (s *YAMLReportStore) SaveReport(ctx context.Context, path m.Path, report m.RunReport) error {
	data, err := yaml.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	if err := s.fs.WriteFile(ctx, path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write report %s: %w", path, err)
	}

	return nil
}

// LoadReport reads a report previously written by SaveReport.
func (s *YAMLReportStore) LoadReport(ctx context.Context, path m.Path) (m.RunReport, error) {
	data, err := s.fs.ReadFile(ctx, path)
	if err != nil {
		return m.RunReport{}, fmt.Errorf("failed to read report %s: %w", path, err)
	}

	var report m.RunReport
	if err := yaml.Unmarshal(data, &report); err != nil {
		return m.RunReport{}, fmt.Errorf("failed to parse report %s: %w", path, err)
	}

	return report, nil
}
