// Package main provides the idf-bootstrap CLI, which prepares a host to build
// the ESP32 MQTT receiver firmware.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := interruptContext(context.Background())
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// interruptContext returns a context cancelled by the first SIGINT or SIGTERM.
// The default handlers are restored once it fires, so a second signal
// terminates the process even if cleanup hangs.
func interruptContext(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-ctx.Done()
		stop()
	}()
	return ctx, stop
}

// run handles arguments and returns the process exit code
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) > 0 {
		switch args[0] {
		case "help", "-h", "--help":
			printUsage(stdout)
			return 0
		default:
			fmt.Fprintf(stderr, "Unknown argument: %s\n\n", args[0])
			printUsage(stderr)
			return 1
		}
	}

	wd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(stderr, "Error: cannot determine the working directory: %v\n", err)
		return 1
	}

	return runInstall(ctx, wd, stdout, stderr)
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `idf-bootstrap - ESP-IDF development environment installer

Usage:
  idf-bootstrap

Run from the root of an ESP-IDF project (the directory holding CMakeLists.txt).
Checks host tools, installs Python packages, downloads ESP-IDF v5.5.0 when it
is missing, and writes setup_env.sh and installation_summary.json.

An idf-bootstrap.yml in the project root may override the default catalog.`)
}
