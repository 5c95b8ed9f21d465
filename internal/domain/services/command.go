// Package services implements the installer stages.
package services

import (
	"context"
	"fmt"
	"os"

	"github.com/ochairo/idf-bootstrap/internal/domain/entities"
	"github.com/ochairo/idf-bootstrap/internal/domain/interfaces/gateways"
)

// commandError converts a failed command result into a domain error. An
// interrupted run always maps to ErrCancelled.
func commandError(ctx context.Context, command string, result *gateways.CommandResult) error {
	if ctx.Err() != nil {
		return fmt.Errorf("%w: %v", entities.ErrCancelled, ctx.Err())
	}
	return &entities.SubprocessError{
		Command:  command,
		ExitCode: result.ExitCode,
		Stderr:   result.Stderr,
		Err:      result.Err,
	}
}

func cancelled(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", entities.ErrCancelled, err)
	}
	return nil
}

func pathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
