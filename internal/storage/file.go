package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

// File stores the catalog entry as a single file.
type File struct {
	path string
}

// NewFile returns a backend writing to path.
func NewFile(path string) *File {
	return &File{path: path}
}

// Read returns the file contents, or ErrNotExist if it was never written.
func (f *File) Read() ([]byte, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotExist
		}
		return nil, fmt.Errorf("failed to read catalog file %s: %w", f.path, err)
	}
	return data, nil
}

// Write replaces the file atomically: a reader sees either the old or the
// new catalog, never a partial one.
func (f *File) Write(data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".catalog-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write catalog file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to sync catalog file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close catalog file: %w", err)
	}
	if err := os.Rename(tmpPath, f.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace catalog file %s: %w", f.path, err)
	}
	return nil
}

// Close is a no-op for file storage.
func (f *File) Close() error {
	return nil
}
