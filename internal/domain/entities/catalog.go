package entities

import (
	"path/filepath"
	"strings"
)

// Catalog is the dependency catalog the installer works from. It is built once
// at startup and handed to every stage by value; nothing mutates it afterwards.
type Catalog struct {
	Project     string
	Runtime     RuntimeSpec
	SystemTools []SystemTool
	Packages    PackageSpec
	Sdk         SdkSpec
	Files       ProjectFiles
	NextSteps   []string
}

// RuntimeSpec describes the scripting runtime checked by version.
type RuntimeSpec struct {
	Name        string
	Command     string // e.g. "python3 --version"
	MinVersion  string // major.minor[.patch]
	DisplayName string
}

// SystemTool is a host binary that must be on PATH.
type SystemTool struct {
	Name    string
	Binary  string
	Install map[string]string // OS family -> install command
}

// InstallCommand returns the install command registered for the OS family.
func (t SystemTool) InstallCommand(osFamily string) (string, bool) {
	cmd, ok := t.Install[osFamily]
	if !ok || strings.TrimSpace(cmd) == "" {
		return "", false
	}
	return cmd, true
}

// PackageSpec lists the scripting-language packages and the install template.
type PackageSpec struct {
	Names          []string
	InstallCommand string // "{package}" is replaced with the package name
}

// CommandFor returns the install command for a single package.
func (p PackageSpec) CommandFor(name string) string {
	if strings.Contains(p.InstallCommand, "{package}") {
		return strings.ReplaceAll(p.InstallCommand, "{package}", name)
	}
	return p.InstallCommand + " " + name
}

// SdkSpec pins the vendor SDK and where it lives.
type SdkSpec struct {
	Name           string
	Version        string
	Executable     string
	URLTemplate    string
	ParentDir      string
	DirName        string
	Target         string
	InstallScript  string
	ExportScript   string
	ToolsDir       string
	CandidatePaths []string
}

// DownloadURL substitutes the pinned version into the URL template.
func (s SdkSpec) DownloadURL() string {
	return strings.ReplaceAll(s.URLTemplate, "{version}", s.Version)
}

// ArchiveName is the file name the downloaded archive is stored under.
func (s SdkSpec) ArchiveName() string {
	name := s.DirName + "-" + s.Version
	url := s.DownloadURL()
	switch {
	case strings.HasSuffix(url, ".tar.gz"):
		return name + ".tar.gz"
	case strings.HasSuffix(url, ".tgz"):
		return name + ".tgz"
	default:
		return name + ".zip"
	}
}

// DefaultPath is the canonical install location, ParentDir/DirName.
func (s SdkSpec) DefaultPath() string {
	return filepath.Join(s.ParentDir, s.DirName)
}

// ExtractedDirNames lists the directory names a release archive may unpack to,
// most specific first. GitHub tag archives drop the leading "v".
func (s SdkSpec) ExtractedDirNames() []string {
	names := []string{s.DirName + "-" + s.Version}
	if trimmed := strings.TrimPrefix(s.Version, "v"); trimmed != s.Version {
		names = append(names, s.DirName+"-"+trimmed)
	}
	return names
}

// ProjectFiles names the files the installer reads and writes in the project.
type ProjectFiles struct {
	Marker               string
	ReconfigureCommand   string
	EnvScript            string
	SummaryFile          string
	ManagedComponentsDir string
}
