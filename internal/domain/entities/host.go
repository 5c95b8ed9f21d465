package entities

// OS families the catalog can register install commands for.
const (
	OSLinux   = "linux"
	OSMacOS   = "macos"
	OSWindows = "windows"
	OSOther   = "other"
)

// Host describes the machine the installer runs on.
type Host struct {
	OS   string
	Arch string
}

func (h Host) String() string {
	return h.OS + "-" + h.Arch
}
