package gateways

import (
	"archive/tar"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zip"

	"github.com/ochairo/idf-bootstrap/internal/domain/interfaces"
)

// maxEntrySize caps a single extracted file to guard against decompression bombs
const maxEntrySize = 1 << 30

type symlinkInfo struct {
	target   string
	linkname string
}

// safeJoin joins name onto destDir and rejects entries that escape it
func safeJoin(destDir, name string) (string, error) {
	//nolint:gosec // G305: traversal checked below
	target := filepath.Join(destDir, name)
	cleanDest := filepath.Clean(destDir)
	if target != cleanDest && !strings.HasPrefix(target, cleanDest+string(os.PathSeparator)) {
		return "", fmt.Errorf("invalid file path in archive: %s", name)
	}
	return target, nil
}

// writeEntry copies r into target and fails if r holds more than limit bytes
func writeEntry(target string, mode os.FileMode, r io.Reader, limit int64) error {
	if err := os.MkdirAll(filepath.Dir(target), 0750); err != nil {
		return fmt.Errorf("failed to create parent directory: %w", err)
	}

	outFile, err := os.OpenFile(target, os.O_CREATE|os.O_RDWR|os.O_TRUNC, mode)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	n, err := io.Copy(outFile, io.LimitReader(r, limit+1))
	if err != nil {
		_ = outFile.Close()
		return fmt.Errorf("failed to write file: %w", err)
	}
	if n > limit {
		_ = outFile.Close()
		_ = os.Remove(target)
		return fmt.Errorf("archive entry %s exceeds %d bytes", filepath.Base(target), limit)
	}
	if err := outFile.Close(); err != nil {
		return fmt.Errorf("failed to close file: %w", err)
	}
	return nil
}

// createSymlinks runs after all regular files exist so link targets resolve
func createSymlinks(links []symlinkInfo, logger interfaces.Logger) {
	for _, link := range links {
		if err := os.MkdirAll(filepath.Dir(link.target), 0750); err != nil {
			logger.Warn("failed to create directory for symlink", interfaces.F("path", link.target), interfaces.F("error", err))
			continue
		}
		// Broken links inside release archives are tolerated
		if err := os.Symlink(link.linkname, link.target); err != nil {
			logger.Debug("failed to create symlink",
				interfaces.F("path", link.target),
				interfaces.F("target", link.linkname),
				interfaces.F("error", err),
			)
		}
	}
}

// extractZip extracts a .zip file to destination directory
func extractZip(ctx context.Context, zipPath, destDir string, logger interfaces.Logger) error {
	reader, err := zip.OpenReader(zipPath)
	if err != nil {
		return fmt.Errorf("failed to open zip: %w", err)
	}
	//nolint:errcheck // Defer close on read-only archive
	defer reader.Close()

	if err := os.MkdirAll(destDir, 0750); err != nil {
		return fmt.Errorf("failed to create destination directory: %w", err)
	}

	var symlinks []symlinkInfo
	for _, f := range reader.File {
		if err := ctx.Err(); err != nil {
			return err
		}

		target, err := safeJoin(destDir, f.Name)
		if err != nil {
			return err
		}

		mode := f.Mode()
		switch {
		case mode.IsDir():
			if err := os.MkdirAll(target, 0750); err != nil {
				return fmt.Errorf("failed to create directory: %w", err)
			}

		case mode&os.ModeSymlink != 0:
			rc, err := f.Open()
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", f.Name, err)
			}
			linkname, err := io.ReadAll(io.LimitReader(rc, 4096))
			_ = rc.Close()
			if err != nil {
				return fmt.Errorf("failed to read symlink %s: %w", f.Name, err)
			}
			symlinks = append(symlinks, symlinkInfo{target: target, linkname: string(linkname)})

		default:
			rc, err := f.Open()
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", f.Name, err)
			}
			err = writeEntry(target, mode.Perm()|0600, rc, maxEntrySize)
			_ = rc.Close()
			if err != nil {
				return err
			}
		}
	}

	createSymlinks(symlinks, logger)
	return nil
}

// extractTarGz extracts a .tar.gz file to destination directory
func extractTarGz(ctx context.Context, tarPath, destDir string, logger interfaces.Logger) error {
	//nolint:gosec // G304: tarPath is the archive this run downloaded
	file, err := os.Open(tarPath)
	if err != nil {
		return fmt.Errorf("failed to open tar.gz: %w", err)
	}
	//nolint:errcheck // Defer close on read-only file
	defer file.Close()

	gzr, err := gzip.NewReader(file)
	if err != nil {
		return fmt.Errorf("failed to create gzip reader: %w", err)
	}
	//nolint:errcheck // Defer close on gzip reader
	defer gzr.Close()

	tr := tar.NewReader(gzr)

	if err := os.MkdirAll(destDir, 0750); err != nil {
		return fmt.Errorf("failed to create destination directory: %w", err)
	}

	var symlinks []symlinkInfo
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		header, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("tar read error: %w", err)
		}

		target, err := safeJoin(destDir, header.Name)
		if err != nil {
			return err
		}

		switch header.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0750); err != nil {
				return fmt.Errorf("failed to create directory: %w", err)
			}

		case tar.TypeReg:
			//nolint:gosec // G115: tar header mode fits in FileMode
			if err := writeEntry(target, os.FileMode(header.Mode).Perm()|0600, tr, maxEntrySize); err != nil {
				return err
			}

		case tar.TypeSymlink:
			symlinks = append(symlinks, symlinkInfo{target: target, linkname: header.Linkname})

		default:
			logger.Debug("ignoring unsupported tar entry",
				interfaces.F("type", string(header.Typeflag)),
				interfaces.F("name", header.Name),
			)
		}
	}

	createSymlinks(symlinks, logger)
	return nil
}
