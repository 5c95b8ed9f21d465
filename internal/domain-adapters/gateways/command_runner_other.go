//go:build !unix

package gateways

import "os/exec"

// setProcessGroup is a no-op where process groups are unavailable; WaitDelay
// still bounds how long Run waits on inherited pipes.
func setProcessGroup(_ *exec.Cmd) {}
