// Package gateways provides implementations of domain gateway interfaces.
package gateways

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/ochairo/idf-bootstrap/internal/domain/interfaces"
	"github.com/ochairo/idf-bootstrap/internal/domain/interfaces/gateways"
)

// waitDelay bounds how long Run waits for output pipes after the command is killed
const waitDelay = 2 * time.Second

// ShellRunner executes commands through /bin/sh and resolves binaries on PATH.
// Commands run until they exit; the only way to stop one early is to cancel ctx.
type ShellRunner struct {
	shell  string
	logger interfaces.Logger
}

// NewShellRunner creates a runner that logs command details at debug level
func NewShellRunner(logger interfaces.Logger) *ShellRunner {
	if logger == nil {
		logger = &interfaces.NoOpReporter{}
	}
	return &ShellRunner{
		shell:  "/bin/sh",
		logger: logger,
	}
}

// Run executes spec.Command and captures its exit status and output
func (r *ShellRunner) Run(ctx context.Context, spec gateways.CommandSpec) *gateways.CommandResult {
	startTime := time.Now()
	result := &gateways.CommandResult{}

	//nolint:gosec // G204: commands come from the dependency catalog
	cmd := exec.CommandContext(ctx, r.shell, "-c", spec.Command)
	if spec.WorkingDir != "" {
		cmd.Dir = spec.WorkingDir
	}
	cmd.Env = os.Environ()
	setProcessGroup(cmd)
	cmd.WaitDelay = waitDelay

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result.Stdout = stdout.String()
	result.Stderr = stderr.String()

	if err != nil {
		var exitErr *exec.ExitError
		switch {
		case ctx.Err() != nil:
			result.Err = fmt.Errorf("command interrupted: %w", ctx.Err())
			result.ExitCode = -1
		case errors.As(err, &exitErr):
			result.ExitCode = exitErr.ExitCode()
		default:
			result.Err = err
			result.ExitCode = -1
		}
	}

	r.logger.Debug("command finished",
		interfaces.F("command", spec.Command),
		interfaces.F("description", spec.Description),
		interfaces.F("dir", spec.WorkingDir),
		interfaces.F("exit_code", result.ExitCode),
		interfaces.F("duration", time.Since(startTime)),
	)

	return result
}

// LookPath reports whether name resolves on the command search path
func (r *ShellRunner) LookPath(name string) (string, bool) {
	path, err := exec.LookPath(name)
	if err != nil {
		return "", false
	}
	return path, true
}
