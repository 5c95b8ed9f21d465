// Package gateways defines interfaces for external service adapters.
package gateways

import (
	"context"

	"github.com/ochairo/idf-bootstrap/internal/domain/entities"
)

// CommandSpec describes a shell command to run.
type CommandSpec struct {
	Command     string
	WorkingDir  string
	Description string
}

// CommandResult contains the outcome of a command. A nonzero exit is not an
// error; Err is set only when the command could not be run or was killed.
type CommandResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
	Err      error
}

// Success reports whether the command ran and exited zero.
func (r *CommandResult) Success() bool {
	return r.Err == nil && r.ExitCode == 0
}

// CommandRunner runs shell commands and captures their output.
type CommandRunner interface {
	Run(ctx context.Context, spec CommandSpec) *CommandResult
}

// PathLookup resolves binaries on the command search path.
type PathLookup interface {
	// LookPath returns the resolved path and whether the binary was found
	LookPath(name string) (string, bool)
}

// ArchiveFetcher downloads and unpacks release archives.
type ArchiveFetcher interface {
	// Fetch downloads url to destPath
	Fetch(ctx context.Context, url, destPath string) (*entities.Artifact, error)

	// Extract unpacks archivePath into destDir
	Extract(ctx context.Context, archivePath, destDir string) error
}

// HostProbe reports the host OS family and architecture.
type HostProbe interface {
	Probe() entities.Host
}
