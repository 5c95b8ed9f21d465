package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/muesli/termenv"

	"github.com/ochairo/idf-bootstrap/internal/domain-adapters/gateways"
	orchestrators "github.com/ochairo/idf-bootstrap/internal/domain-orchestrators"
	"github.com/ochairo/idf-bootstrap/internal/domain/entities"
	"github.com/ochairo/idf-bootstrap/internal/domain/interfaces"
	"github.com/ochairo/idf-bootstrap/internal/domain/services"
	"github.com/ochairo/idf-bootstrap/internal/external-adapters/console"
	"github.com/ochairo/idf-bootstrap/internal/external-adapters/yaml"
)

const logPrefix = "idf-bootstrap"

func runInstall(ctx context.Context, projectDir string, stdout, stderr io.Writer) int {
	runLog, err := console.OpenRunLog("", logPrefix)
	if err != nil {
		fmt.Fprintf(stderr, "Warning: run log disabled: %v\n", err)
	}
	reporter := console.NewReporter(stdout, colorProfile(stdout), runLog)
	defer func() { _ = reporter.Close() }()

	homeDir, err := os.UserHomeDir()
	if err != nil {
		reporter.Error("Cannot determine the home directory", interfaces.F("error", err))
		return finish(reporter, nil, err)
	}

	catalog, err := yaml.NewCatalogRepository(homeDir).LoadCatalog(ctx, projectDir)
	if err != nil {
		reporter.Error("Failed to load the dependency catalog", interfaces.F("error", err))
		return finish(reporter, nil, err)
	}

	reporter.Header(fmt.Sprintf("%s - Dependency Installer", catalog.Project))
	reporter.Debug("catalog loaded",
		interfaces.F("project_dir", projectDir),
		interfaces.F("sdk_version", catalog.Sdk.Version),
		interfaces.F("sdk_parent", catalog.Sdk.ParentDir),
	)

	orchestrator := newInstallOrchestrator(catalog, projectDir, reporter)
	result, err := orchestrator.Install(ctx)
	if result != nil {
		reporter.Debug("run finished\n" + strings.TrimRight(result.GetInstallSummary(), "\n"))
	}
	return finish(reporter, result, err)
}

// newInstallOrchestrator wires the production gateways and services
func newInstallOrchestrator(catalog entities.Catalog, projectDir string, reporter interfaces.Reporter) *orchestrators.InstallOrchestrator {
	runner := gateways.NewShellRunner(reporter)
	downloader := gateways.NewDownloader(reporter)

	return orchestrators.NewInstallOrchestrator(orchestrators.Stages{
		Host:        gateways.NewHostProbe(),
		SystemTools: services.NewSystemToolService(catalog, runner, runner, reporter),
		Packages:    services.NewPackageService(catalog, runner, reporter),
		Locator:     services.NewSdkLocatorService(catalog, runner, reporter),
		Installer:   services.NewSdkInstallService(catalog, downloader, runner, reporter),
		Environment: services.NewEnvironmentService(catalog, projectDir, reporter),
		Project:     services.NewProjectService(catalog, projectDir, runner, reporter),
		Summary:     services.NewSummaryService(catalog, projectDir, reporter),
	}, reporter)
}

// finish prints the closing banner and maps the outcome to an exit code
func finish(reporter *console.Reporter, result *orchestrators.InstallResult, err error) int {
	if err == nil && result != nil && result.Success {
		reporter.Banner("All dependencies installed successfully!", true)
		return 0
	}

	if errors.Is(err, entities.ErrCancelled) {
		reporter.Error("Installation cancelled by user")
	}
	reporter.Banner("Installation failed. Please check the errors above.", false)
	if path := reporter.LogPath(); path != "" {
		reporter.Info("Full log written", interfaces.F("path", path))
	}
	return 1
}

// colorProfile disables styling when w is not a terminal
func colorProfile(w io.Writer) termenv.Profile {
	return termenv.NewOutput(w).EnvColorProfile()
}
