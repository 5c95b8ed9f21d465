package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ochairo/idf-bootstrap/internal/domain/entities"
	"github.com/ochairo/idf-bootstrap/internal/domain/interfaces"
)

// SummaryService writes installation_summary.json and prints the next steps
type SummaryService struct {
	catalog    entities.Catalog
	projectDir string
	reporter   interfaces.Reporter
}

// NewSummaryService creates a new summary writer for projectDir
func NewSummaryService(catalog entities.Catalog, projectDir string, reporter interfaces.Reporter) *SummaryService {
	return &SummaryService{
		catalog:    catalog,
		projectDir: projectDir,
		reporter:   reporter,
	}
}

// BuildSummary assembles the summary from the run state
func (s *SummaryService) BuildSummary(state entities.InstallState) *entities.InstallationSummary {
	summary := &entities.InstallationSummary{
		Project:               s.catalog.Project,
		DependenciesInstalled: true,
		SetupScript:           s.catalog.Files.EnvScript,
		NextSteps:             append([]string(nil), s.catalog.NextSteps...),
	}
	if state.SdkPath != "" {
		path := state.SdkPath
		summary.EspIdfPath = &path
	}
	return summary
}

// WriteSummary writes the summary file. A cancelled run writes nothing.
func (s *SummaryService) WriteSummary(ctx context.Context, state entities.InstallState) (*entities.InstallationSummary, error) {
	if err := cancelled(ctx); err != nil {
		return nil, err
	}

	s.reporter.Header("Installation Summary")
	summary := s.BuildSummary(state)

	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode summary: %w", err)
	}
	data = append(data, '\n')

	path := filepath.Join(s.projectDir, s.catalog.Files.SummaryFile)
	if err := os.WriteFile(path, data, 0644); err != nil { //nolint:gosec // G306: summary is meant to be readable
		return nil, fmt.Errorf("failed to write %s: %w", path, err)
	}

	s.reporter.Info(fmt.Sprintf("Installation summary saved to %s", s.catalog.Files.SummaryFile))
	s.reporter.Banner("Installation completed successfully!", true)
	s.reporter.List("Next steps:", summary.NextSteps)
	return summary, nil
}
