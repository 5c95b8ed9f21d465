package services

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ochairo/idf-bootstrap/internal/domain/entities"
	"github.com/ochairo/idf-bootstrap/internal/domain/interfaces"
	"github.com/ochairo/idf-bootstrap/internal/domain/interfaces/gateways"
)

// ProjectService hands component dependency resolution to the SDK
type ProjectService struct {
	catalog    entities.Catalog
	projectDir string
	runner     gateways.CommandRunner
	reporter   interfaces.Reporter
}

// NewProjectService creates a new project dependency service for projectDir
func NewProjectService(catalog entities.Catalog, projectDir string, runner gateways.CommandRunner, reporter interfaces.Reporter) *ProjectService {
	return &ProjectService{
		catalog:    catalog,
		projectDir: projectDir,
		runner:     runner,
		reporter:   reporter,
	}
}

// InstallProjectDependencies requires the project marker file and then runs
// the SDK's reconfigure command. A failing reconfigure is only a warning.
func (s *ProjectService) InstallProjectDependencies(ctx context.Context) error {
	files := s.catalog.Files
	s.reporter.Header("Installing Project Dependencies")

	if !pathExists(filepath.Join(s.projectDir, files.Marker)) {
		s.reporter.Error(fmt.Sprintf("Not in an %s project directory", s.catalog.Sdk.Name),
			interfaces.F("missing", files.Marker))
		return fmt.Errorf("%w: %s not found in %s", entities.ErrPrecondition, files.Marker, s.projectDir)
	}

	s.reporter.Step("Installing managed components...")
	result := s.runner.Run(ctx, gateways.CommandSpec{
		Command:     files.ReconfigureCommand,
		WorkingDir:  s.projectDir,
		Description: "reconfigure project",
	})
	if !result.Success() {
		if err := cancelled(ctx); err != nil {
			return err
		}
		s.reporter.Warn(fmt.Sprintf("Failed to install managed components: %s", strings.TrimSpace(result.Stderr)),
			interfaces.F("exit_code", result.ExitCode))
		return nil
	}
	s.reporter.Info("Managed components installed successfully")

	if files.ManagedComponentsDir != "" {
		dir := filepath.Join(s.projectDir, files.ManagedComponentsDir)
		if pathExists(dir) {
			s.reporter.Debug("managed components present", interfaces.F("dir", dir))
		} else {
			s.reporter.Debug("project has no managed components", interfaces.F("dir", dir))
		}
	}

	return nil
}
