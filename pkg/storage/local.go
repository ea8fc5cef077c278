package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// LocalStore serves a directory tree laid out as <root>/<bucket>/<key>.
// It backs offline runs and the integration tests.
type LocalStore struct {
	dir string
}

func NewLocalStore(cfg Config) (*LocalStore, error) {
	dir := filepath.Join(cfg.Root, cfg.Bucket)
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("bucket directory %s, %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("bucket path %s is not a directory", dir)
	}
	return &LocalStore{dir: dir}, nil
}

func (s *LocalStore) Name() string { return "local storage" }

func (s *LocalStore) URI(key string) string {
	return "file://" + s.path(key)
}

func (s *LocalStore) path(key string) string {
	return filepath.Join(s.dir, filepath.FromSlash(key))
}

func (s *LocalStore) ping(_ context.Context, prefix string) error {
	if prefix == "" {
		return nil
	}
	info, err := os.Stat(s.path(prefix))
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to list %s, %w", s.URI(prefix), ErrFolderNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to list %s, %w", s.URI(prefix), err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", s.URI(prefix))
	}
	return nil
}

func (s *LocalStore) Exists(_ context.Context, key string) (bool, error) {
	info, err := os.Stat(s.path(key))
	if err == nil {
		return !info.IsDir(), nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("failed to check %s, %w", s.URI(key), err)
}

func (s *LocalStore) Open(_ context.Context, key string) (io.ReadCloser, error) {
	f, err := os.Open(s.path(key))
	if err != nil {
		return nil, fmt.Errorf("failed to open %s, %w", s.URI(key), err)
	}
	return f, nil
}

func (s *LocalStore) Close() error { return nil }
