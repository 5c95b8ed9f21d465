package gateways

import (
	"runtime"

	"github.com/ochairo/idf-bootstrap/internal/domain/entities"
)

// RuntimeHostProbe reports the host the binary was built for
type RuntimeHostProbe struct{}

// NewHostProbe creates a host probe
func NewHostProbe() *RuntimeHostProbe {
	return &RuntimeHostProbe{}
}

// Probe returns the normalized OS family and machine architecture
func (p *RuntimeHostProbe) Probe() entities.Host {
	return entities.Host{
		OS:   NormalizeOS(runtime.GOOS),
		Arch: NormalizeArch(runtime.GOOS, runtime.GOARCH),
	}
}

// NormalizeOS maps a GOOS value onto the catalog's OS families
func NormalizeOS(goos string) string {
	switch goos {
	case "linux":
		return entities.OSLinux
	case "darwin":
		return entities.OSMacOS
	case "windows":
		return entities.OSWindows
	default:
		return entities.OSOther
	}
}

// NormalizeArch maps GOARCH to the names uname -m reports on goos.
// Linux calls arm64 aarch64; macOS keeps arm64.
func NormalizeArch(goos, goarch string) string {
	if goarch == "arm64" && goos != "darwin" && goos != "ios" {
		return "aarch64"
	}

	archMap := map[string]string{
		"amd64": "x86_64",
		"arm64": "arm64",
		"386":   "i386",
	}

	if mapped := archMap[goarch]; mapped != "" {
		return mapped
	}
	return goarch
}
