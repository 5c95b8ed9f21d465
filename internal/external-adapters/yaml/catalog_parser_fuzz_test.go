package yaml

import (
	"testing"
)

// FuzzCatalogParserOverlay feeds arbitrary overlays on top of the default
// catalog. Errors are fine; panics are not, and a catalog that parses must
// still satisfy the required-field rules.
//
// Run with: go test -fuzz=FuzzCatalogParserOverlay -fuzztime=30s
func FuzzCatalogParserOverlay(f *testing.F) {
	f.Add([]byte(`sdk:
  version: v5.4.1
`))
	f.Add([]byte(`packages:
  names: [pyserial, esptool]
next_steps:
  - "Build the project: idf.py build"
`))
	f.Add([]byte(`system_tools:
  - name: git
    binary: git
    install:
      linux: sudo dnf install -y git
`))

	// Edge cases
	f.Add([]byte(``))
	f.Add([]byte(`{}`))
	f.Add([]byte(`[]`))
	f.Add([]byte(`sdk: null`))
	f.Add([]byte("sdk:\n  version: \"\"\n"))
	f.Add([]byte("sdk:\n  candidate_paths: [\"~\", \"~/\", \"~x\"]\n"))
	f.Add([]byte("project: a\nproject: b\n"))

	parser := NewCatalogParser("/home/dev")
	base := DefaultCatalog()

	f.Fuzz(func(t *testing.T, overlay []byte) {
		catalog, err := parser.Parse(base, overlay)
		if err != nil {
			return
		}
		if catalog.Sdk.Version == "" || catalog.Sdk.DefaultPath() == "" {
			t.Errorf("parsed catalog is missing required SDK fields: %+v", catalog.Sdk)
		}
	})
}
