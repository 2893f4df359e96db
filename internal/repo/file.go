package repo

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// fileBlobRepo stores each key as <dir>/<key>.json.
type fileBlobRepo struct {
	dir string
}

// NewFileBlobRepo constructs a BlobRepo rooted at dir. The directory is
// created on first write.
func NewFileBlobRepo(dir string) BlobRepo {
	return &fileBlobRepo{dir: dir}
}

func (r *fileBlobRepo) path(key string) string {
	return filepath.Join(r.dir, key+".json")
}

// Get reads the file for key.
func (r *fileBlobRepo) Get(_ context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(r.path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrBlobNotFound
		}
		return nil, fmt.Errorf("repo.FileBlobRepo.Get: %w", err)
	}
	return data, nil
}

// Put writes value to a temp file in the same directory and renames it over
// the target, so a crash mid-write never leaves a truncated blob behind.
func (r *fileBlobRepo) Put(_ context.Context, key string, value []byte) error {
	if err := os.MkdirAll(r.dir, 0o700); err != nil {
		return fmt.Errorf("repo.FileBlobRepo.Put: create dir: %w", err)
	}

	tmp, err := os.CreateTemp(r.dir, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("repo.FileBlobRepo.Put: temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op once renamed

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		return fmt.Errorf("repo.FileBlobRepo.Put: write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("repo.FileBlobRepo.Put: close: %w", err)
	}
	if err := os.Rename(tmpName, r.path(key)); err != nil {
		return fmt.Errorf("repo.FileBlobRepo.Put: rename: %w", err)
	}
	return nil
}
