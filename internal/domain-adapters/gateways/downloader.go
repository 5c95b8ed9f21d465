package gateways

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/ochairo/idf-bootstrap/internal/domain/entities"
	"github.com/ochairo/idf-bootstrap/internal/domain/interfaces"
)

// Downloader fetches release archives over HTTP and unpacks them
type Downloader struct {
	httpClient *http.Client
	userAgent  string
	logger     interfaces.Logger
}

// NewDownloader creates a new downloader. The client has no timeout: SDK
// archives are large and the run is interrupted only through ctx.
func NewDownloader(logger interfaces.Logger) *Downloader {
	if logger == nil {
		logger = &interfaces.NoOpReporter{}
	}
	return &Downloader{
		httpClient: &http.Client{},
		userAgent:  "idf-bootstrap/1.0",
		logger:     logger,
	}
}

// Fetch downloads url to destPath
func (d *Downloader) Fetch(ctx context.Context, url, destPath string) (*entities.Artifact, error) {
	if err := os.MkdirAll(filepath.Dir(destPath), 0750); err != nil {
		return nil, fmt.Errorf("failed to create download directory: %w", err)
	}

	size, err := d.downloadFile(ctx, url, destPath)
	if err != nil {
		return nil, err
	}

	d.logger.Debug("download complete",
		interfaces.F("url", url),
		interfaces.F("path", destPath),
		interfaces.F("bytes", size),
	)

	return &entities.Artifact{
		Name: filepath.Base(destPath),
		URL:  url,
		Path: destPath,
		Size: size,
	}, nil
}

// Extract unpacks a .zip, .tar.gz or .tgz archive into destDir
func (d *Downloader) Extract(ctx context.Context, archivePath, destDir string) error {
	var err error
	switch {
	case strings.HasSuffix(archivePath, ".zip"):
		err = extractZip(ctx, archivePath, destDir, d.logger)
	case strings.HasSuffix(archivePath, ".tar.gz"), strings.HasSuffix(archivePath, ".tgz"):
		err = extractTarGz(ctx, archivePath, destDir, d.logger)
	default:
		return fmt.Errorf("unsupported archive format: %s", filepath.Base(archivePath))
	}
	if err != nil {
		return err
	}

	d.logger.Debug("archive extracted", interfaces.F("archive", archivePath), interfaces.F("dest", destDir))
	return nil
}

// downloadFile streams url into dest and returns the number of bytes written
func (d *Downloader) downloadFile(ctx context.Context, url, dest string) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", d.userAgent)

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("HTTP request failed: %w", err)
	}
	//nolint:errcheck // Defer close on HTTP response body
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	//nolint:gosec // G304: dest is the archive path under the SDK parent directory
	out, err := os.Create(dest)
	if err != nil {
		return 0, fmt.Errorf("failed to create file: %w", err)
	}

	written, err := io.Copy(out, resp.Body)
	if err != nil {
		_ = out.Close()
		return 0, fmt.Errorf("failed to write file: %w", err)
	}
	if err := out.Close(); err != nil {
		return 0, fmt.Errorf("failed to close file: %w", err)
	}

	d.logger.Info(fmt.Sprintf("Downloaded %s (%s)", filepath.Base(dest), humanize.Bytes(uint64(written))))
	return written, nil
}
