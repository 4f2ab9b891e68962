// Package storage persists uploaded images on the local filesystem.
package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// DiskImageStore writes images under baseDir and serves them under baseURL
// (the http adapter mounts baseDir at that prefix).
type DiskImageStore struct {
	baseDir string
	baseURL string
}

func NewDiskImageStore(baseDir, baseURL string) *DiskImageStore {
	return &DiskImageStore{baseDir: baseDir, baseURL: baseURL}
}

func (s *DiskImageStore) Save(ctx context.Context, name string, image io.Reader) (string, error) {
	path := filepath.Join(s.baseDir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create image directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create image file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, image); err != nil {
		return "", fmt.Errorf("failed to write image: %w", err)
	}
	return s.baseURL + "/" + name, nil
}
