// Package orchestrators coordinates complex workflows across multiple domain services.
package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ochairo/idf-bootstrap/internal/domain/entities"
	"github.com/ochairo/idf-bootstrap/internal/domain/interfaces"
	"github.com/ochairo/idf-bootstrap/internal/domain/interfaces/gateways"
	"github.com/ochairo/idf-bootstrap/internal/domain/services"
)

// Stage names, in pipeline order
const (
	StageSystemTools = "system-tools"
	StagePackages    = "packages"
	StageLocateSdk   = "locate-sdk"
	StageInstallSdk  = "install-sdk"
	StageWriteEnv    = "write-env"
	StageProjectDeps = "project-deps"
	StageSummary     = "summary"
)

// SystemToolChecker verifies the runtime and host tools
type SystemToolChecker interface {
	EnsureSystemTools(ctx context.Context, host entities.Host) error
}

// PackageInstaller installs scripting-language packages on a best-effort basis
type PackageInstaller interface {
	InstallPackages(ctx context.Context) (*services.PackageReport, error)
}

// SdkLocator looks for an existing SDK
type SdkLocator interface {
	Locate() services.LocateResult
}

// SdkInstaller downloads and installs the SDK
type SdkInstaller interface {
	Install(ctx context.Context) (string, error)
}

// EnvironmentWriter writes the activation script
type EnvironmentWriter interface {
	WriteEnvironment(state entities.InstallState) (string, error)
}

// ProjectDependencyInstaller reconfigures the project's components
type ProjectDependencyInstaller interface {
	InstallProjectDependencies(ctx context.Context) error
}

// SummaryWriter writes the installation summary
type SummaryWriter interface {
	WriteSummary(ctx context.Context, state entities.InstallState) (*entities.InstallationSummary, error)
}

// Stages holds one implementation per pipeline stage
type Stages struct {
	Host        gateways.HostProbe
	SystemTools SystemToolChecker
	Packages    PackageInstaller
	Locator     SdkLocator
	Installer   SdkInstaller
	Environment EnvironmentWriter
	Project     ProjectDependencyInstaller
	Summary     SummaryWriter
}

// InstallOrchestrator runs the installer stages strictly in order
type InstallOrchestrator struct {
	stages   Stages
	reporter interfaces.Reporter
}

// NewInstallOrchestrator creates a new install orchestrator
func NewInstallOrchestrator(stages Stages, reporter interfaces.Reporter) *InstallOrchestrator {
	if reporter == nil {
		reporter = &interfaces.NoOpReporter{}
	}
	return &InstallOrchestrator{
		stages:   stages,
		reporter: reporter,
	}
}

// InstallResult contains the result of an install run
type InstallResult struct {
	State         entities.InstallState
	Packages      *services.PackageReport
	Summary       *entities.InstallationSummary
	EnvScript     string
	Stages        []entities.StageOutcome
	FailedStage   string
	TotalDuration time.Duration
	Success       bool
	Error         error
}

// Cancelled reports whether the run stopped because it was interrupted
func (r *InstallResult) Cancelled() bool {
	return errors.Is(r.Error, entities.ErrCancelled)
}

// Install executes the complete pipeline. Required stages stop the run on
// failure; package installation and the project reconfigure command only warn.
func (o *InstallOrchestrator) Install(ctx context.Context) (*InstallResult, error) {
	startTime := time.Now()
	result := &InstallResult{}
	defer func() { result.TotalDuration = time.Since(startTime) }()

	// Step 1: Probe host
	result.State.Host = o.stages.Host.Probe()
	o.reporter.Debug("host detected",
		interfaces.F("os", result.State.Host.OS),
		interfaces.F("arch", result.State.Host.Arch),
	)

	// Step 2: System tools
	if err := o.run(ctx, result, StageSystemTools, func(_ *entities.StageOutcome) error {
		return o.stages.SystemTools.EnsureSystemTools(ctx, result.State.Host)
	}); err != nil {
		return result, err
	}

	// Step 3: Packages (best-effort)
	if err := o.run(ctx, result, StagePackages, func(outcome *entities.StageOutcome) error {
		report, err := o.stages.Packages.InstallPackages(ctx)
		result.Packages = report
		if report != nil && len(report.Failed) > 0 {
			outcome.Warning = true
		}
		return err
	}); err != nil {
		return result, err
	}

	// Step 4: Locate SDK
	var located services.LocateResult
	if err := o.run(ctx, result, StageLocateSdk, func(_ *entities.StageOutcome) error {
		located = o.stages.Locator.Locate()
		if located.Path != "" {
			result.State.SetSdkPath(located.Path)
		}
		return nil
	}); err != nil {
		return result, err
	}

	// Step 5: Install SDK if it was not found
	if located.Found {
		result.Stages = append(result.Stages, entities.StageOutcome{Name: StageInstallSdk, Skipped: true})
	} else {
		if err := o.run(ctx, result, StageInstallSdk, func(_ *entities.StageOutcome) error {
			sdkPath, err := o.stages.Installer.Install(ctx)
			if err != nil {
				return err
			}
			result.State.SetSdkPath(sdkPath)
			return nil
		}); err != nil {
			return result, err
		}
	}

	// Step 6: Environment script
	if err := o.run(ctx, result, StageWriteEnv, func(_ *entities.StageOutcome) error {
		script, err := o.stages.Environment.WriteEnvironment(result.State)
		result.EnvScript = script
		return err
	}); err != nil {
		return result, err
	}

	// Step 7: Project dependencies
	if err := o.run(ctx, result, StageProjectDeps, func(_ *entities.StageOutcome) error {
		return o.stages.Project.InstallProjectDependencies(ctx)
	}); err != nil {
		return result, err
	}

	// Step 8: Summary
	if err := o.run(ctx, result, StageSummary, func(_ *entities.StageOutcome) error {
		summary, err := o.stages.Summary.WriteSummary(ctx, result.State)
		result.Summary = summary
		return err
	}); err != nil {
		return result, err
	}

	result.Success = true
	return result, nil
}

// run executes one stage, records its outcome and marks the result failed on error
func (o *InstallOrchestrator) run(ctx context.Context, result *InstallResult, name string, fn func(outcome *entities.StageOutcome) error) error {
	if err := ctx.Err(); err != nil {
		return o.fail(result, name, fmt.Errorf("%w: %v", entities.ErrCancelled, err))
	}

	outcome := entities.StageOutcome{Name: name}
	stageStart := time.Now()
	err := fn(&outcome)
	outcome.Duration = time.Since(stageStart)
	outcome.Err = err
	result.Stages = append(result.Stages, outcome)

	o.reporter.Debug("stage finished",
		interfaces.F("stage", name),
		interfaces.F("duration", outcome.Duration),
		interfaces.F("warning", outcome.Warning),
		interfaces.F("error", err),
	)

	if err != nil {
		return o.fail(result, name, err)
	}
	return nil
}

func (o *InstallOrchestrator) fail(result *InstallResult, stage string, err error) error {
	result.FailedStage = stage
	result.Error = fmt.Errorf("%s: %w", stage, err)
	return result.Error
}

// GetInstallSummary returns a human-readable per-stage summary of the run
func (r *InstallResult) GetInstallSummary() string {
	var b strings.Builder
	for _, s := range r.Stages {
		status := "ok"
		switch {
		case s.Err != nil:
			status = "failed: " + s.Err.Error()
		case s.Skipped:
			status = "skipped"
		case s.Warning:
			status = "ok with warnings"
		}
		fmt.Fprintf(&b, "%-13s %-8s %s\n", s.Name, s.Duration.Round(time.Millisecond), status)
	}
	if r.Success {
		fmt.Fprintf(&b, "Total: %v\n", r.TotalDuration.Round(time.Millisecond))
	} else {
		fmt.Fprintf(&b, "Failed at %s: %v\n", r.FailedStage, r.Error)
	}
	return b.String()
}
