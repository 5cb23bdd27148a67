package gateways

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Entry size limit guards against decompression bombs.
const maxEntrySize = 1 << 30

// ZipReader reads entries out of installer archives. Absence of an entry is
// reported as a nil result, never as an error.
type ZipReader struct{}

// NewZipReader creates a new archive reader
func NewZipReader() *ZipReader {
	return &ZipReader{}
}

// ReadEntry returns the contents of one archive entry, or nil when the entry
// does not exist.
func (z *ZipReader) ReadEntry(archivePath, entryName string) ([]byte, error) {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}
	//nolint:errcheck // Defer close on read-only archive
	defer r.Close()

	for _, f := range r.File {
		if f.Name != entryName {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open entry %s: %w", entryName, err)
		}
		//nolint:errcheck // Defer close on entry reader
		defer rc.Close()

		data, err := io.ReadAll(io.LimitReader(rc, maxEntrySize))
		if err != nil {
			return nil, fmt.Errorf("failed to read entry %s: %w", entryName, err)
		}
		return data, nil
	}
	return nil, nil
}

// ListEntries returns the names of all file entries under pathPrefix,
// in archive order. Directory entries are skipped.
func (z *ZipReader) ListEntries(archivePath, pathPrefix string) ([]string, error) {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}
	//nolint:errcheck // Defer close on read-only archive
	defer r.Close()

	var entries []string
	for _, f := range r.File {
		if strings.HasSuffix(f.Name, "/") {
			continue
		}
		if strings.HasPrefix(f.Name, pathPrefix) {
			entries = append(entries, f.Name)
		}
	}
	return entries, nil
}

// ExtractEntry writes one archive entry to destPath, creating parent
// directories as needed. A missing entry is an error here: callers extract
// entries the manifest told them exist.
func (z *ZipReader) ExtractEntry(archivePath, entryName, destPath string) error {
	data, err := z.ReadEntry(archivePath, entryName)
	if err != nil {
		return err
	}
	if data == nil {
		return fmt.Errorf("entry %s not found in %s", entryName, filepath.Base(archivePath))
	}

	if err := os.MkdirAll(filepath.Dir(destPath), 0750); err != nil {
		return fmt.Errorf("failed to create destination directory: %w", err)
	}
	if err := os.WriteFile(destPath, data, 0640); err != nil {
		return fmt.Errorf("failed to write %s: %w", destPath, err)
	}
	return nil
}
