package services

import (
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/juju/version/v2"

	"github.com/ochairo/idf-bootstrap/internal/domain/entities"
	"github.com/ochairo/idf-bootstrap/internal/domain/interfaces/gateways"
)

var runtimeVersionPattern = regexp.MustCompile(`(\d+)\.(\d+)(?:\.(\d+))?`)

// ParseRuntimeVersion extracts the first major.minor[.patch] from output such
// as "Python 3.11.4" or "3.12.0rc1".
func ParseRuntimeVersion(output string) (version.Number, error) {
	m := runtimeVersionPattern.FindStringSubmatch(output)
	if m == nil {
		return version.Number{}, fmt.Errorf("no version found in %q", output)
	}

	major, _ := strconv.Atoi(m[1])
	minor, _ := strconv.Atoi(m[2])
	patch := 0
	if m[3] != "" {
		patch, _ = strconv.Atoi(m[3])
	}
	return version.Number{Major: major, Minor: minor, Patch: patch}, nil
}

// CheckRuntimeVersion runs the runtime's version command and compares the
// reported version against spec.MinVersion.
func CheckRuntimeVersion(ctx context.Context, runner gateways.CommandRunner, spec entities.RuntimeSpec) (version.Number, error) {
	minimum, err := ParseRuntimeVersion(spec.MinVersion)
	if err != nil {
		return version.Number{}, fmt.Errorf("invalid minimum version: %w", err)
	}

	result := runner.Run(ctx, gateways.CommandSpec{
		Command:     spec.Command,
		Description: spec.Name + " version",
	})
	if !result.Success() {
		return version.Number{}, commandError(ctx, spec.Command, result)
	}

	// Python 2 printed its version on stderr
	current, err := ParseRuntimeVersion(result.Stdout + result.Stderr)
	if err != nil {
		return version.Number{}, err
	}

	if current.Compare(minimum) < 0 {
		return current, fmt.Errorf("%s %s is older than %s", spec.Name, current, minimum)
	}
	return current, nil
}
