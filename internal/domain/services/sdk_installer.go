package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ochairo/idf-bootstrap/internal/domain/entities"
	"github.com/ochairo/idf-bootstrap/internal/domain/interfaces"
	"github.com/ochairo/idf-bootstrap/internal/domain/interfaces/gateways"
)

// SdkInstallService downloads the pinned SDK release and runs its installer
type SdkInstallService struct {
	catalog  entities.Catalog
	fetcher  gateways.ArchiveFetcher
	runner   gateways.CommandRunner
	reporter interfaces.Reporter
}

// NewSdkInstallService creates a new SDK installer
func NewSdkInstallService(catalog entities.Catalog, fetcher gateways.ArchiveFetcher, runner gateways.CommandRunner, reporter interfaces.Reporter) *SdkInstallService {
	return &SdkInstallService{
		catalog:  catalog,
		fetcher:  fetcher,
		runner:   runner,
		reporter: reporter,
	}
}

// Install downloads, extracts and sets up the SDK, returning its directory.
// Nothing is cleaned up on failure.
func (s *SdkInstallService) Install(ctx context.Context) (string, error) {
	sdk := s.catalog.Sdk
	s.reporter.Header(fmt.Sprintf("Installing %s", sdk.Name))

	sdkPath, err := s.download(ctx)
	if err != nil {
		if cerr := cancelled(ctx); cerr != nil {
			return "", cerr
		}
		s.reporter.Error(fmt.Sprintf("Failed to download/install %s: %v", sdk.Name, err))
		return "", fmt.Errorf("%w: %v", entities.ErrDownload, err)
	}
	s.reporter.Info(fmt.Sprintf("%s downloaded successfully", sdk.Name))

	s.reporter.Step(fmt.Sprintf("Installing %s tools...", sdk.Name))
	if !pathExists(filepath.Join(sdkPath, sdk.InstallScript)) {
		s.reporter.Error(fmt.Sprintf("%s install script not found", sdk.Name), interfaces.F("dir", sdkPath))
		return "", fmt.Errorf("%w: %s not found in %s", entities.ErrPrecondition, sdk.InstallScript, sdkPath)
	}

	installCmd := fmt.Sprintf("./%s %s", sdk.InstallScript, sdk.Target)
	result := s.runner.Run(ctx, gateways.CommandSpec{
		Command:     installCmd,
		WorkingDir:  sdkPath,
		Description: "install " + sdk.Name + " tools",
	})
	if !result.Success() {
		err := commandError(ctx, installCmd, result)
		if ctx.Err() != nil {
			return "", err
		}
		s.reporter.Error(fmt.Sprintf("Failed to install %s tools: %s", sdk.Name, strings.TrimSpace(result.Stderr)))
		return "", fmt.Errorf("install %s tools: %w", sdk.Name, err)
	}

	s.reporter.Info(fmt.Sprintf("%s tools installed successfully", sdk.Name))
	return sdkPath, nil
}

// download fetches and unpacks the archive into the parent directory and
// renames the unpacked tree to the canonical directory name.
func (s *SdkInstallService) download(ctx context.Context) (string, error) {
	sdk := s.catalog.Sdk
	sdkPath := sdk.DefaultPath()

	if err := os.MkdirAll(sdk.ParentDir, 0750); err != nil {
		return "", fmt.Errorf("failed to create %s: %w", sdk.ParentDir, err)
	}

	s.reporter.Step(fmt.Sprintf("Downloading %s %s...", sdk.Name, sdk.Version))
	archivePath := filepath.Join(sdk.ParentDir, sdk.ArchiveName())
	artifact, err := s.fetcher.Fetch(ctx, sdk.DownloadURL(), archivePath)
	if err != nil {
		return "", err
	}

	s.reporter.Step(fmt.Sprintf("Extracting %s...", sdk.Name))
	if err := s.fetcher.Extract(ctx, artifact.Path, sdk.ParentDir); err != nil {
		return "", err
	}

	for _, name := range sdk.ExtractedDirNames() {
		extracted := filepath.Join(sdk.ParentDir, name)
		if !pathExists(extracted) {
			continue
		}
		if !pathExists(sdkPath) {
			if err := os.Rename(extracted, sdkPath); err != nil {
				return "", fmt.Errorf("failed to rename %s: %w", extracted, err)
			}
		}
		break
	}

	if err := os.Remove(artifact.Path); err != nil {
		return "", fmt.Errorf("failed to remove archive: %w", err)
	}

	return sdkPath, nil
}
