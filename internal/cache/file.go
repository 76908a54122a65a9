package cache

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FileCache keeps every key as a file under Dir.
type FileCache struct {
	Dir string
}

var _ Cache = (*FileCache)(nil)

func NewFileCache(dir string) *FileCache {
	return &FileCache{Dir: dir}
}

func (fc *FileCache) Get(_ context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(fc.Dir, key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read cache file %s: %w", key, err)
	}
	return data, nil
}

func (fc *FileCache) Put(_ context.Context, key string, value []byte) error {
	filePath := filepath.Join(fc.Dir, key)
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return fmt.Errorf("failed to create cache dir: %w", err)
	}
	if err := os.WriteFile(filePath, value, 0644); err != nil {
		return fmt.Errorf("failed to write cache file %s: %w", key, err)
	}
	return nil
}
