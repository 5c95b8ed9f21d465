package yaml

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ochairo/idf-bootstrap/internal/domain/entities"
)

// OverlayFile is the optional per-project catalog override
const OverlayFile = "idf-bootstrap.yml"

//go:embed catalog/default.yml
var defaultCatalog []byte

// CatalogRepository implements repositories.CatalogRepository using the
// embedded default catalog and an optional project overlay
type CatalogRepository struct {
	parser *CatalogParser
}

// NewCatalogRepository creates a new YAML-based catalog repository
func NewCatalogRepository(homeDir string) *CatalogRepository {
	return &CatalogRepository{
		parser: NewCatalogParser(homeDir),
	}
}

// DefaultCatalog returns the embedded catalog document
func DefaultCatalog() []byte {
	return append([]byte(nil), defaultCatalog...)
}

// LoadCatalog builds the catalog for projectDir. A missing overlay is not an
// error; an unreadable or malformed one is a precondition failure.
func (r *CatalogRepository) LoadCatalog(ctx context.Context, projectDir string) (entities.Catalog, error) {
	if err := ctx.Err(); err != nil {
		return entities.Catalog{}, fmt.Errorf("%w: %v", entities.ErrCancelled, err)
	}

	layers := [][]byte{defaultCatalog}

	overlayPath := filepath.Join(projectDir, OverlayFile)
	//nolint:gosec // G304: overlayPath is a fixed name inside the project directory
	data, err := os.ReadFile(overlayPath)
	switch {
	case err == nil:
		layers = append(layers, data)
	case !os.IsNotExist(err):
		return entities.Catalog{}, fmt.Errorf("%w: failed to read %s: %v", entities.ErrPrecondition, overlayPath, err)
	}

	catalog, err := r.parser.Parse(layers...)
	if err != nil {
		if len(layers) > 1 {
			return entities.Catalog{}, fmt.Errorf("%w: invalid %s: %v", entities.ErrPrecondition, overlayPath, err)
		}
		return entities.Catalog{}, fmt.Errorf("invalid default catalog: %w", err)
	}

	return catalog, nil
}
