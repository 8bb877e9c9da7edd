package upload

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// PublicPrefix is the URL prefix the server serves the upload dir under.
const PublicPrefix = "/uploads/"

type LocalStorage struct {
	dir string
}

func NewLocalStorage(dir string) *LocalStorage {
	return &LocalStorage{dir: dir}
}

func (s *LocalStorage) Source() string {
	return SourceLocal
}

func (s *LocalStorage) Dir() string {
	return s.dir
}

func (s *LocalStorage) Put(ctx context.Context, name, contentType string, data []byte) (*StoredObject, error) {
	fileName, err := safeName(name)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating upload directory: %w", err)
	}

	if err := os.WriteFile(filepath.Join(s.dir, fileName), data, 0o644); err != nil {
		return nil, fmt.Errorf("writing %s: %w", fileName, err)
	}

	return &StoredObject{URL: PublicPrefix + fileName, Path: fileName}, nil
}

// Remove deletes the file by its base name, so remote-style paths such as
// products/<name> resolve to the same local file.
func (s *LocalStorage) Remove(ctx context.Context, path string) error {
	fileName, err := safeName(path)
	if err != nil {
		return err
	}

	if err := os.Remove(filepath.Join(s.dir, fileName)); err != nil {
		return fmt.Errorf("removing %s: %w", fileName, err)
	}
	return nil
}

func safeName(path string) (string, error) {
	name := filepath.Base(filepath.Clean("/" + path))
	if name == "/" || name == "." || name == ".." {
		return "", fmt.Errorf("invalid file name %q", path)
	}
	return name, nil
}
