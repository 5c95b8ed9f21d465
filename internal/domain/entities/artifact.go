// Package entities defines core domain models and data structures.
package entities

// Artifact is a downloaded release archive.
type Artifact struct {
	Name    string
	Version string
	URL     string
	Path    string
	Size    int64
}
