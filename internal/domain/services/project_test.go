package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ochairo/idf-bootstrap/internal/domain/entities"
	"github.com/ochairo/idf-bootstrap/internal/domain/interfaces/gateways"
)

func writeMarker(t *testing.T, dir string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, "CMakeLists.txt"), []byte("cmake_minimum_required(VERSION 3.16)\n"), 0600); err != nil {
		t.Fatalf("Failed to write marker: %v", err)
	}
}

func TestProjectService_MissingMarker(t *testing.T) {
	dir := t.TempDir()
	runner := newMockRunner()
	reporter := &recordingReporter{}

	err := NewProjectService(testCatalog(dir), dir, runner, reporter).InstallProjectDependencies(context.Background())
	if !errors.Is(err, entities.ErrPrecondition) {
		t.Fatalf("InstallProjectDependencies() error = %v, want ErrPrecondition", err)
	}
	if len(runner.calls) != 0 {
		t.Errorf("subprocess invoked without a project marker: %v", runner.commands())
	}
	if !reporter.has("error", "Not in an ESP-IDF project directory") {
		t.Errorf("missing error line, got %v", reporter.lines)
	}
}

func TestProjectService_Reconfigure(t *testing.T) {
	dir := t.TempDir()
	writeMarker(t, dir)
	runner := newMockRunner()

	err := NewProjectService(testCatalog(dir), dir, runner, &recordingReporter{}).InstallProjectDependencies(context.Background())
	if err != nil {
		t.Fatalf("InstallProjectDependencies() error = %v", err)
	}
	if len(runner.calls) != 1 {
		t.Fatalf("calls = %v, want one reconfigure", runner.commands())
	}
	if runner.calls[0].Command != "idf.py reconfigure" || runner.calls[0].WorkingDir != dir {
		t.Errorf("call = %+v", runner.calls[0])
	}
}

func TestProjectService_ReconfigureFailureIsWarning(t *testing.T) {
	dir := t.TempDir()
	writeMarker(t, dir)
	runner := newMockRunner()
	runner.results["idf.py reconfigure"] = &gateways.CommandResult{ExitCode: 2, Stderr: "component not found"}
	reporter := &recordingReporter{}

	err := NewProjectService(testCatalog(dir), dir, runner, reporter).InstallProjectDependencies(context.Background())
	if err != nil {
		t.Fatalf("InstallProjectDependencies() error = %v, want nil", err)
	}
	if !reporter.has("warn", "component not found") {
		t.Errorf("missing warning, got %v", reporter.lines)
	}
}

func TestProjectService_Cancelled(t *testing.T) {
	dir := t.TempDir()
	writeMarker(t, dir)
	ctx, cancel := context.WithCancel(context.Background())
	runner := newMockRunner()
	runner.results["idf.py reconfigure"] = &gateways.CommandResult{ExitCode: -1, Err: errBoom}
	runner.onRun = func(_ gateways.CommandSpec) { cancel() }

	err := NewProjectService(testCatalog(dir), dir, runner, &recordingReporter{}).InstallProjectDependencies(ctx)
	if !errors.Is(err, entities.ErrCancelled) {
		t.Fatalf("InstallProjectDependencies() error = %v, want ErrCancelled", err)
	}
}
