package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/ochairo/idf-bootstrap/internal/domain/entities"
	"github.com/ochairo/idf-bootstrap/internal/domain/interfaces"
	"github.com/ochairo/idf-bootstrap/internal/domain/interfaces/gateways"
)

// PackageReport lists which packages installed and which did not
type PackageReport struct {
	Installed []string
	Failed    []string
}

// PackageService installs the catalog's scripting-language packages
type PackageService struct {
	catalog  entities.Catalog
	runner   gateways.CommandRunner
	reporter interfaces.Reporter
}

// NewPackageService creates a new package service
func NewPackageService(catalog entities.Catalog, runner gateways.CommandRunner, reporter interfaces.Reporter) *PackageService {
	return &PackageService{
		catalog:  catalog,
		runner:   runner,
		reporter: reporter,
	}
}

// InstallPackages installs each package independently. Failures are reported
// as warnings; the only error returned is ErrCancelled.
func (s *PackageService) InstallPackages(ctx context.Context) (*PackageReport, error) {
	s.reporter.Header("Installing Python Packages")

	report := &PackageReport{}
	for _, pkg := range s.catalog.Packages.Names {
		if err := cancelled(ctx); err != nil {
			return report, err
		}

		s.reporter.Step(fmt.Sprintf("Installing %s...", pkg))
		cmd := s.catalog.Packages.CommandFor(pkg)
		result := s.runner.Run(ctx, gateways.CommandSpec{
			Command:     cmd,
			Description: "install package " + pkg,
		})

		if result.Success() {
			s.reporter.Info(fmt.Sprintf("%s installed successfully", pkg))
			report.Installed = append(report.Installed, pkg)
			continue
		}

		if err := cancelled(ctx); err != nil {
			return report, err
		}
		s.reporter.Warn(fmt.Sprintf("Failed to install %s: %s", pkg, strings.TrimSpace(result.Stderr)),
			interfaces.F("exit_code", result.ExitCode))
		report.Failed = append(report.Failed, pkg)
	}

	return report, nil
}
