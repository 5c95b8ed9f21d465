package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ochairo/idf-bootstrap/internal/domain/entities"
	"github.com/ochairo/idf-bootstrap/internal/domain/interfaces"
	"github.com/ochairo/idf-bootstrap/internal/domain/interfaces/gateways"
)

// mockRunner returns canned results keyed by command and records every call
type mockRunner struct {
	results map[string]*gateways.CommandResult
	calls   []gateways.CommandSpec
	onRun   func(spec gateways.CommandSpec)
}

func newMockRunner() *mockRunner {
	return &mockRunner{
		results: map[string]*gateways.CommandResult{
			"python3 --version": {Stdout: "Python 3.11.4\n"},
		},
	}
}

func (m *mockRunner) Run(_ context.Context, spec gateways.CommandSpec) *gateways.CommandResult {
	m.calls = append(m.calls, spec)
	if m.onRun != nil {
		m.onRun(spec)
	}
	if r, ok := m.results[spec.Command]; ok {
		return r
	}
	return &gateways.CommandResult{}
}

func (m *mockRunner) commands() []string {
	out := make([]string, 0, len(m.calls))
	for _, c := range m.calls {
		out = append(out, c.Command)
	}
	return out
}

func (m *mockRunner) ran(command string) int {
	n := 0
	for _, c := range m.calls {
		if c.Command == command {
			n++
		}
	}
	return n
}

// mockPaths answers LookPath from a set of present binaries
type mockPaths struct {
	present map[string]bool
	lookups []string
}

func newMockPaths(binaries ...string) *mockPaths {
	m := &mockPaths{present: map[string]bool{}}
	for _, b := range binaries {
		m.present[b] = true
	}
	return m
}

func (m *mockPaths) LookPath(name string) (string, bool) {
	m.lookups = append(m.lookups, name)
	if m.present[name] {
		return "/usr/bin/" + name, true
	}
	return "", false
}

// mockFetcher writes an empty archive on Fetch and creates the given tree on Extract
type mockFetcher struct {
	fetchErr   error
	extractErr error
	tree       []string // paths relative to the extraction dir
	fetched    []string
}

func (m *mockFetcher) Fetch(_ context.Context, url, destPath string) (*entities.Artifact, error) {
	m.fetched = append(m.fetched, url)
	if m.fetchErr != nil {
		return nil, m.fetchErr
	}
	if err := os.WriteFile(destPath, []byte("archive"), 0600); err != nil {
		return nil, err
	}
	return &entities.Artifact{Name: filepath.Base(destPath), URL: url, Path: destPath, Size: 7}, nil
}

func (m *mockFetcher) Extract(_ context.Context, _, destDir string) error {
	if m.extractErr != nil {
		return m.extractErr
	}
	for _, rel := range m.tree {
		p := filepath.Join(destDir, rel)
		if err := os.MkdirAll(filepath.Dir(p), 0750); err != nil {
			return err
		}
		if err := os.WriteFile(p, []byte("#!/bin/sh\n"), 0700); err != nil { //nolint:gosec // test script
			return err
		}
	}
	return nil
}

// recordingReporter keeps every line it is asked to print
type recordingReporter struct {
	lines []string
}

func (r *recordingReporter) add(kind, msg string) {
	r.lines = append(r.lines, kind+": "+msg)
}

func (r *recordingReporter) Debug(_ string, _ ...interfaces.Field)   {}
func (r *recordingReporter) Info(msg string, _ ...interfaces.Field)  { r.add("info", msg) }
func (r *recordingReporter) Warn(msg string, _ ...interfaces.Field)  { r.add("warn", msg) }
func (r *recordingReporter) Error(msg string, _ ...interfaces.Field) { r.add("error", msg) }
func (r *recordingReporter) Header(title string)                     { r.add("header", title) }
func (r *recordingReporter) Step(msg string)                         { r.add("step", msg) }
func (r *recordingReporter) List(title string, items []string) {
	r.add("list", fmt.Sprintf("%s %s", title, strings.Join(items, "|")))
}
func (r *recordingReporter) Banner(msg string, _ bool) { r.add("banner", msg) }

func (r *recordingReporter) has(kind, substr string) bool {
	for _, l := range r.lines {
		if strings.HasPrefix(l, kind+": ") && strings.Contains(l, substr) {
			return true
		}
	}
	return false
}

var errBoom = errors.New("boom")

// testCatalog returns a catalog rooted in a temp directory
func testCatalog(root string) entities.Catalog {
	parent := filepath.Join(root, "esp")
	return entities.Catalog{
		Project: "ESP32 MQTT Receiver",
		Runtime: entities.RuntimeSpec{
			Name:        "python",
			DisplayName: "Python",
			Command:     "python3 --version",
			MinVersion:  "3.7",
		},
		SystemTools: []entities.SystemTool{
			{Name: "pip", Binary: "pip3"},
			{Name: "git", Binary: "git", Install: map[string]string{
				entities.OSLinux: "sudo apt-get update && sudo apt-get install -y git",
				entities.OSMacOS: "brew install git",
			}},
			{Name: "cmake", Binary: "cmake", Install: map[string]string{
				entities.OSLinux: "sudo apt-get install -y cmake",
				entities.OSMacOS: "brew install cmake",
			}},
			{Name: "ninja", Binary: "ninja", Install: map[string]string{
				entities.OSLinux: "sudo apt-get install -y ninja-build",
				entities.OSMacOS: "brew install ninja",
			}},
		},
		Packages: entities.PackageSpec{
			Names:          []string{"pyserial", "pyyaml", "click", "colorama", "requests"},
			InstallCommand: "pip3 install {package}",
		},
		Sdk: entities.SdkSpec{
			Name:          "ESP-IDF",
			Version:       "v5.5.0",
			Executable:    "idf.py",
			URLTemplate:   "https://github.com/espressif/esp-idf/archive/refs/tags/{version}.zip",
			ParentDir:     parent,
			DirName:       "esp-idf",
			Target:        "esp32",
			InstallScript: "install.sh",
			ExportScript:  "export.sh",
			ToolsDir:      "tools",
			CandidatePaths: []string{
				filepath.Join(parent, "esp-idf"),
				filepath.Join(parent, "v5.5", "esp-idf"),
				filepath.Join(root, "opt", "esp", "esp-idf"),
				filepath.Join(root, "usr", "local", "esp", "esp-idf"),
			},
		},
		Files: entities.ProjectFiles{
			Marker:               "CMakeLists.txt",
			ReconfigureCommand:   "idf.py reconfigure",
			EnvScript:            "setup_env.sh",
			SummaryFile:          "installation_summary.json",
			ManagedComponentsDir: "managed_components",
		},
		NextSteps: []string{
			"Source the environment: source setup_env.sh",
			"Build the project: idf.py build",
			"Flash the device: ./flash_interactive.sh",
			"Monitor output: ./monitor.sh",
		},
	}
}
