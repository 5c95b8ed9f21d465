package services

import (
	"fmt"

	"github.com/ochairo/idf-bootstrap/internal/domain/entities"
	"github.com/ochairo/idf-bootstrap/internal/domain/interfaces"
	"github.com/ochairo/idf-bootstrap/internal/domain/interfaces/gateways"
)

// LocateResult says whether an SDK installation exists and where
type LocateResult struct {
	Found  bool
	OnPath bool
	Path   string // first existing candidate directory, empty if none matched
}

// SdkLocatorService looks for an existing SDK installation
type SdkLocatorService struct {
	catalog  entities.Catalog
	paths    gateways.PathLookup
	reporter interfaces.Reporter
}

// NewSdkLocatorService creates a new SDK locator
func NewSdkLocatorService(catalog entities.Catalog, paths gateways.PathLookup, reporter interfaces.Reporter) *SdkLocatorService {
	return &SdkLocatorService{
		catalog:  catalog,
		paths:    paths,
		reporter: reporter,
	}
}

// Locate checks the command search path first, then each candidate directory
// in catalog order. A PATH hit still records the first existing candidate.
// Not finding the SDK is a result, not an error.
func (s *SdkLocatorService) Locate() LocateResult {
	sdk := s.catalog.Sdk
	s.reporter.Header(fmt.Sprintf("Checking %s Installation", sdk.Name))

	var result LocateResult
	if resolved, ok := s.paths.LookPath(sdk.Executable); ok {
		s.reporter.Info(fmt.Sprintf("%s found in PATH", sdk.Name), interfaces.F("executable", resolved))
		result = LocateResult{Found: true, OnPath: true}
	}

	for _, candidate := range sdk.CandidatePaths {
		if pathExists(candidate) {
			if !result.OnPath {
				s.reporter.Info(fmt.Sprintf("%s found at %s", sdk.Name, candidate))
			}
			result.Found = true
			result.Path = candidate
			return result
		}
	}

	if !result.Found {
		s.reporter.Warn(fmt.Sprintf("%s not found", sdk.Name))
	}
	return result
}
