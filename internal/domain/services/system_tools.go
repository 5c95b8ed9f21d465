package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/ochairo/idf-bootstrap/internal/domain/entities"
	"github.com/ochairo/idf-bootstrap/internal/domain/interfaces"
	"github.com/ochairo/idf-bootstrap/internal/domain/interfaces/gateways"
)

// SystemToolService verifies the runtime version and the required host tools,
// installing missing tools where the catalog knows how.
type SystemToolService struct {
	catalog  entities.Catalog
	runner   gateways.CommandRunner
	paths    gateways.PathLookup
	reporter interfaces.Reporter
}

// NewSystemToolService creates a new system tool service
func NewSystemToolService(catalog entities.Catalog, runner gateways.CommandRunner, paths gateways.PathLookup, reporter interfaces.Reporter) *SystemToolService {
	return &SystemToolService{
		catalog:  catalog,
		runner:   runner,
		paths:    paths,
		reporter: reporter,
	}
}

// EnsureSystemTools checks the runtime and every catalog tool in order. The
// first tool that is missing and cannot be installed stops the check.
func (s *SystemToolService) EnsureSystemTools(ctx context.Context, host entities.Host) error {
	s.reporter.Header("Installing System Dependencies")

	rt := s.catalog.Runtime
	current, err := CheckRuntimeVersion(ctx, s.runner, rt)
	if err != nil {
		if cerr := cancelled(ctx); cerr != nil {
			return cerr
		}
		s.reporter.Error(fmt.Sprintf("%s %s+ required", rt.DisplayName, rt.MinVersion), interfaces.F("error", err))
		return fmt.Errorf("%w: %s %s+ required: %v", entities.ErrPrecondition, rt.DisplayName, rt.MinVersion, err)
	}
	s.reporter.Info(fmt.Sprintf("%s %s detected", rt.DisplayName, current))

	for _, tool := range s.catalog.SystemTools {
		if err := s.ensureTool(ctx, host, tool); err != nil {
			return err
		}
	}

	return nil
}

func (s *SystemToolService) ensureTool(ctx context.Context, host entities.Host, tool entities.SystemTool) error {
	if err := cancelled(ctx); err != nil {
		return err
	}

	s.reporter.Step(fmt.Sprintf("Checking %s...", tool.Name))
	if _, ok := s.paths.LookPath(tool.Binary); ok {
		s.reporter.Info(fmt.Sprintf("%s already installed", tool.Name))
		return nil
	}
	s.reporter.Warn(fmt.Sprintf("%s not found", tool.Name))

	installCmd, ok := tool.InstallCommand(host.OS)
	if !ok {
		s.reporter.Error(fmt.Sprintf("Please install %s manually", tool.Name), interfaces.F("os", host.OS))
		return fmt.Errorf("%w: %s not found and no install command for %s", entities.ErrPrecondition, tool.Name, host.OS)
	}

	s.reporter.Step(fmt.Sprintf("Installing %s...", tool.Name))
	result := s.runner.Run(ctx, gateways.CommandSpec{
		Command:     installCmd,
		Description: "install " + tool.Name,
	})
	if !result.Success() {
		err := commandError(ctx, installCmd, result)
		if ctx.Err() != nil {
			return err
		}
		s.reporter.Error(fmt.Sprintf("Failed to install %s: %s", tool.Name, strings.TrimSpace(result.Stderr)))
		return fmt.Errorf("install %s: %w", tool.Name, err)
	}

	if _, ok := s.paths.LookPath(tool.Binary); !ok {
		s.reporter.Error(fmt.Sprintf("%s still not found after installation", tool.Name))
		return fmt.Errorf("%w: %s not on PATH after install", entities.ErrPrecondition, tool.Name)
	}

	s.reporter.Info(fmt.Sprintf("%s installed successfully", tool.Name))
	return nil
}
