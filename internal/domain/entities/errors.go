package entities

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrPrecondition means something required is missing and there is no
	// automated remedy; the user has to act.
	ErrPrecondition = errors.New("precondition failed")

	// ErrSubprocess means an external command exited nonzero.
	ErrSubprocess = errors.New("command failed")

	// ErrDownload covers network and archive extraction failures.
	ErrDownload = errors.New("download failed")

	// ErrCancelled is returned when the run was interrupted.
	ErrCancelled = errors.New("installation cancelled")
)

// SubprocessError carries the exit status and captured stderr of a failed command.
type SubprocessError struct {
	Command  string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *SubprocessError) Error() string {
	msg := fmt.Sprintf("%q exited with status %d", e.Command, e.ExitCode)
	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		msg += ": " + stderr
	}
	return msg
}

// Is lets errors.Is(err, ErrSubprocess) match.
func (e *SubprocessError) Is(target error) bool {
	return target == ErrSubprocess
}

func (e *SubprocessError) Unwrap() error {
	return e.Err
}
