package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/EhteshamRajpot/shop-o-backend/internal/platform/logger"
)

type LocalStore struct {
	dir string
	log logger.Logger
}

func NewLocalStore(dir string, log logger.Logger) (*LocalStore, error) {
	if dir == "" {
		return nil, errors.New("upload directory must be configured")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory %s: %w", dir, err)
	}
	return &LocalStore{dir: dir, log: log.Named("local_store")}, nil
}

// Dir is the directory served under /uploads.
func (s *LocalStore) Dir() string {
	return s.dir
}

func (s *LocalStore) Save(ctx context.Context, originalName string, r io.Reader, _ int64) (string, error) {
	name := objectName(originalName)
	path := filepath.Join(s.dir, name)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("failed to create file %s: %w", path, err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		_ = os.Remove(path)
		return "", fmt.Errorf("failed to write file %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("failed to close file %s: %w", path, err)
	}

	s.log.Debugw("Avatar saved", "file", name)
	return name, nil
}

// Delete removes the file behind ref. Only the base name is used, so a ref
// cannot point outside the upload directory.
func (s *LocalStore) Delete(ctx context.Context, ref string) error {
	if ref == "" {
		return nil
	}
	path := filepath.Join(s.dir, filepath.Base(ref))
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("failed to delete file %s: %w", path, err)
	}
	s.log.Debugw("Avatar deleted", "file", ref)
	return nil
}
