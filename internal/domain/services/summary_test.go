package services

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ochairo/idf-bootstrap/internal/domain/entities"
)

func TestSummaryService_WriteSummary(t *testing.T) {
	dir := t.TempDir()
	reporter := &recordingReporter{}
	svc := NewSummaryService(testCatalog(dir), dir, reporter)

	summary, err := svc.WriteSummary(context.Background(), entities.InstallState{SdkPath: "/opt/esp/esp-idf"})
	if err != nil {
		t.Fatalf("WriteSummary() error = %v", err)
	}
	if summary.EspIdfPath == nil || *summary.EspIdfPath != "/opt/esp/esp-idf" {
		t.Errorf("EspIdfPath = %v", summary.EspIdfPath)
	}

	data, err := os.ReadFile(filepath.Join(dir, "installation_summary.json"))
	if err != nil {
		t.Fatalf("summary not written: %v", err)
	}

	want := `{
  "project": "ESP32 MQTT Receiver",
  "dependencies_installed": true,
  "esp_idf_path": "/opt/esp/esp-idf",
  "setup_script": "setup_env.sh",
  "next_steps": [
    "Source the environment: source setup_env.sh",
    "Build the project: idf.py build",
    "Flash the device: ./flash_interactive.sh",
    "Monitor output: ./monitor.sh"
  ]
}
`
	if string(data) != want {
		t.Errorf("summary =\n%s\nwant\n%s", data, want)
	}

	if !reporter.has("list", "Next steps:") {
		t.Errorf("next steps not printed, got %v", reporter.lines)
	}
}

func TestSummaryService_NullSdkPath(t *testing.T) {
	dir := t.TempDir()
	svc := NewSummaryService(testCatalog(dir), dir, &recordingReporter{})

	if _, err := svc.WriteSummary(context.Background(), entities.InstallState{}); err != nil {
		t.Fatalf("WriteSummary() error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "installation_summary.json"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"esp_idf_path": null`) {
		t.Errorf("esp_idf_path should be null:\n%s", data)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("summary is not valid JSON: %v", err)
	}
	if v, ok := decoded["esp_idf_path"]; !ok || v != nil {
		t.Errorf("esp_idf_path = %v (present=%v), want explicit null", v, ok)
	}
}

func TestSummaryService_CancelledWritesNothing(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewSummaryService(testCatalog(dir), dir, &recordingReporter{}).WriteSummary(ctx, entities.InstallState{})
	if !errors.Is(err, entities.ErrCancelled) {
		t.Fatalf("WriteSummary() error = %v, want ErrCancelled", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "installation_summary.json")); !os.IsNotExist(err) {
		t.Error("summary written for a cancelled run")
	}
}

func TestSummaryService_BuildSummaryCopiesNextSteps(t *testing.T) {
	catalog := testCatalog(t.TempDir())
	svc := NewSummaryService(catalog, "", &recordingReporter{})

	summary := svc.BuildSummary(entities.InstallState{})
	summary.NextSteps[0] = "changed"

	if catalog.NextSteps[0] == "changed" {
		t.Error("summary shares its next steps with the catalog")
	}
}
