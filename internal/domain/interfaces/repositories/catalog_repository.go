// Package repositories defines interfaces for data access layers.
package repositories

import (
	"context"

	"github.com/ochairo/idf-bootstrap/internal/domain/entities"
)

// CatalogRepository defines the interface for loading the dependency catalog
type CatalogRepository interface {
	// LoadCatalog returns the catalog for the project in projectDir
	LoadCatalog(ctx context.Context, projectDir string) (entities.Catalog, error)
}
