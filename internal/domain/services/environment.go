package services

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ochairo/idf-bootstrap/internal/domain/entities"
	"github.com/ochairo/idf-bootstrap/internal/domain/interfaces"
)

const envScriptTemplate = `#!/bin/bash
# ESP-IDF Environment Setup
export IDF_PATH="%s"
export PATH="$IDF_PATH/%s:$PATH"
source "$IDF_PATH/%s"
`

// EnvironmentService writes the shell script that activates the SDK
type EnvironmentService struct {
	catalog    entities.Catalog
	projectDir string
	reporter   interfaces.Reporter
}

// NewEnvironmentService creates a new environment writer for projectDir
func NewEnvironmentService(catalog entities.Catalog, projectDir string, reporter interfaces.Reporter) *EnvironmentService {
	return &EnvironmentService{
		catalog:    catalog,
		projectDir: projectDir,
		reporter:   reporter,
	}
}

// RenderEnvScript returns the activation script for sdkPath
func (s *EnvironmentService) RenderEnvScript(sdkPath string) string {
	sdk := s.catalog.Sdk
	return fmt.Sprintf(envScriptTemplate, sdkPath, sdk.ToolsDir, sdk.ExportScript)
}

// WriteEnvironment writes the activation script for the SDK recorded in state,
// or for the default install location when nothing was recorded. The default
// is not written back into state. It returns the script path.
func (s *EnvironmentService) WriteEnvironment(state entities.InstallState) (string, error) {
	sdk := s.catalog.Sdk
	s.reporter.Header(fmt.Sprintf("Setting up %s Environment", sdk.Name))

	sdkPath := state.SdkPath
	if sdkPath == "" {
		sdkPath = sdk.DefaultPath()
	}

	if !pathExists(sdkPath) {
		s.reporter.Error(fmt.Sprintf("%s path not found", sdk.Name), interfaces.F("path", sdkPath))
		return "", fmt.Errorf("%w: %s path %s does not exist", entities.ErrPrecondition, sdk.Name, sdkPath)
	}

	scriptPath := filepath.Join(s.projectDir, s.catalog.Files.EnvScript)
	//nolint:gosec // G306: the activation script must be executable
	if err := os.WriteFile(scriptPath, []byte(s.RenderEnvScript(sdkPath)), 0755); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", scriptPath, err)
	}
	// WriteFile keeps the mode of an existing file
	//nolint:gosec // G302: the activation script must be executable
	if err := os.Chmod(scriptPath, 0755); err != nil {
		return "", fmt.Errorf("failed to chmod %s: %w", scriptPath, err)
	}

	s.reporter.Info("Environment setup script created", interfaces.F("path", scriptPath))
	return scriptPath, nil
}
