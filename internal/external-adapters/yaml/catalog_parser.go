// Package yaml provides YAML-based catalog parsing and repository implementations.
package yaml

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/ochairo/idf-bootstrap/internal/domain/entities"
	"gopkg.in/yaml.v3"
)

// yamlCatalog represents the raw YAML structure
type yamlCatalog struct {
	Project     string           `yaml:"project"`
	Runtime     yamlRuntime      `yaml:"runtime"`
	SystemTools []yamlSystemTool `yaml:"system_tools"`
	Packages    yamlPackages     `yaml:"packages"`
	Sdk         yamlSdk          `yaml:"sdk"`
	Files       yamlFiles        `yaml:"files"`
	NextSteps   []string         `yaml:"next_steps"`
}

type yamlRuntime struct {
	Name        string `yaml:"name"`
	DisplayName string `yaml:"display_name"`
	Command     string `yaml:"command"`
	MinVersion  string `yaml:"min_version"`
}

type yamlSystemTool struct {
	Name    string            `yaml:"name"`
	Binary  string            `yaml:"binary"`
	Install map[string]string `yaml:"install"`
}

type yamlPackages struct {
	InstallCommand string   `yaml:"install_command"`
	Names          []string `yaml:"names"`
}

type yamlSdk struct {
	Name           string   `yaml:"name"`
	Version        string   `yaml:"version"`
	Executable     string   `yaml:"executable"`
	URLTemplate    string   `yaml:"url_template"`
	ParentDir      string   `yaml:"parent_dir"`
	DirName        string   `yaml:"dir_name"`
	Target         string   `yaml:"target"`
	InstallScript  string   `yaml:"install_script"`
	ExportScript   string   `yaml:"export_script"`
	ToolsDir       string   `yaml:"tools_dir"`
	CandidatePaths []string `yaml:"candidate_paths"`
}

type yamlFiles struct {
	Marker               string `yaml:"marker"`
	ReconfigureCommand   string `yaml:"reconfigure_command"`
	EnvScript            string `yaml:"env_script"`
	SummaryFile          string `yaml:"summary_file"`
	ManagedComponentsDir string `yaml:"managed_components_dir"`
}

// CatalogParser parses YAML catalog documents
type CatalogParser struct {
	homeDir string
}

// NewCatalogParser creates a new YAML parser. homeDir is substituted for a
// leading "~" in catalog paths.
func NewCatalogParser(homeDir string) *CatalogParser {
	return &CatalogParser{homeDir: homeDir}
}

// Parse decodes one or more YAML documents into a Catalog. Each layer is
// decoded on top of the previous one, so a later layer replaces only the
// fields it names. Lists are replaced as a whole.
func (p *CatalogParser) Parse(layers ...[]byte) (entities.Catalog, error) {
	var raw yamlCatalog
	for i, data := range layers {
		if err := decodeStrict(data, &raw); err != nil {
			return entities.Catalog{}, fmt.Errorf("failed to parse YAML layer %d: %w", i, err)
		}
	}

	if err := validate(&raw); err != nil {
		return entities.Catalog{}, err
	}

	return p.convert(&raw), nil
}

// decodeStrict rejects unknown keys so typos in an overlay are not silently ignored
func decodeStrict(data []byte, out *yamlCatalog) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func validate(raw *yamlCatalog) error {
	required := []struct {
		field string
		value string
	}{
		{"project", raw.Project},
		{"runtime.command", raw.Runtime.Command},
		{"runtime.min_version", raw.Runtime.MinVersion},
		{"sdk.name", raw.Sdk.Name},
		{"sdk.version", raw.Sdk.Version},
		{"sdk.executable", raw.Sdk.Executable},
		{"sdk.url_template", raw.Sdk.URLTemplate},
		{"sdk.parent_dir", raw.Sdk.ParentDir},
		{"sdk.dir_name", raw.Sdk.DirName},
		{"sdk.install_script", raw.Sdk.InstallScript},
		{"sdk.export_script", raw.Sdk.ExportScript},
		{"files.marker", raw.Files.Marker},
		{"files.env_script", raw.Files.EnvScript},
		{"files.summary_file", raw.Files.SummaryFile},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return fmt.Errorf("catalog must have %s", r.field)
		}
	}

	if len(raw.Packages.Names) > 0 && raw.Packages.InstallCommand == "" {
		return fmt.Errorf("catalog lists packages but no packages.install_command")
	}

	for i, tool := range raw.SystemTools {
		if tool.Name == "" || tool.Binary == "" {
			return fmt.Errorf("system_tools[%d] must have a name and a binary", i)
		}
	}

	return nil
}

func (p *CatalogParser) convert(raw *yamlCatalog) entities.Catalog {
	tools := make([]entities.SystemTool, 0, len(raw.SystemTools))
	for _, t := range raw.SystemTools {
		install := make(map[string]string, len(t.Install))
		for osFamily, cmd := range t.Install {
			install[strings.ToLower(osFamily)] = cmd
		}
		tools = append(tools, entities.SystemTool{Name: t.Name, Binary: t.Binary, Install: install})
	}

	candidates := make([]string, 0, len(raw.Sdk.CandidatePaths))
	for _, c := range raw.Sdk.CandidatePaths {
		candidates = append(candidates, p.expandHome(c))
	}

	displayName := raw.Runtime.DisplayName
	if displayName == "" {
		displayName = raw.Runtime.Name
	}

	return entities.Catalog{
		Project: raw.Project,
		Runtime: entities.RuntimeSpec{
			Name:        raw.Runtime.Name,
			DisplayName: displayName,
			Command:     raw.Runtime.Command,
			MinVersion:  raw.Runtime.MinVersion,
		},
		SystemTools: tools,
		Packages: entities.PackageSpec{
			Names:          append([]string(nil), raw.Packages.Names...),
			InstallCommand: raw.Packages.InstallCommand,
		},
		Sdk: entities.SdkSpec{
			Name:           raw.Sdk.Name,
			Version:        raw.Sdk.Version,
			Executable:     raw.Sdk.Executable,
			URLTemplate:    raw.Sdk.URLTemplate,
			ParentDir:      p.expandHome(raw.Sdk.ParentDir),
			DirName:        raw.Sdk.DirName,
			Target:         raw.Sdk.Target,
			InstallScript:  raw.Sdk.InstallScript,
			ExportScript:   raw.Sdk.ExportScript,
			ToolsDir:       raw.Sdk.ToolsDir,
			CandidatePaths: candidates,
		},
		Files: entities.ProjectFiles{
			Marker:               raw.Files.Marker,
			ReconfigureCommand:   raw.Files.ReconfigureCommand,
			EnvScript:            raw.Files.EnvScript,
			SummaryFile:          raw.Files.SummaryFile,
			ManagedComponentsDir: raw.Files.ManagedComponentsDir,
		},
		NextSteps: append([]string(nil), raw.NextSteps...),
	}
}

func (p *CatalogParser) expandHome(path string) string {
	if p.homeDir == "" {
		return path
	}
	if path == "~" {
		return p.homeDir
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(p.homeDir, path[2:])
	}
	return path
}
