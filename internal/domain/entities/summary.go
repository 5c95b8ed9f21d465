package entities

import "time"

// InstallationSummary is written once at the end of a successful run.
type InstallationSummary struct {
	Project               string   `json:"project"`
	DependenciesInstalled bool     `json:"dependencies_installed"`
	EspIdfPath            *string  `json:"esp_idf_path"`
	SetupScript           string   `json:"setup_script"`
	NextSteps             []string `json:"next_steps"`
}

// InstallState is what the pipeline learns during a single run.
type InstallState struct {
	Host    Host
	SdkPath string // empty until located, installed or resolved
}

// SetSdkPath records the resolved SDK location.
func (s *InstallState) SetSdkPath(path string) {
	s.SdkPath = path
}

// StageOutcome records how a single pipeline stage ended.
type StageOutcome struct {
	Name     string
	Skipped  bool
	Warning  bool
	Err      error
	Duration time.Duration
}
