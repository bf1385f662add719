// Package storage keeps uploaded avatar files on local disk or in a MinIO bucket.
package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/EhteshamRajpot/shop-o-backend/internal/app/config"
	"github.com/EhteshamRajpot/shop-o-backend/internal/platform/logger"
	"github.com/google/uuid"
)

// AvatarStore saves an upload under a generated name and returns the
// reference to persist on the account.
type AvatarStore interface {
	Save(ctx context.Context, originalName string, r io.Reader, size int64) (string, error)
	Delete(ctx context.Context, ref string) error
}

const (
	DriverLocal = "local"
	DriverMinIO = "minio"
)

func New(ctx context.Context, cfg config.StorageConfig, log logger.Logger) (AvatarStore, error) {
	switch cfg.Driver {
	case DriverLocal, "":
		return NewLocalStore(cfg.UploadDir, log)
	case DriverMinIO:
		return NewMinIOStore(ctx, cfg.MinIO, log)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

// objectName keeps only a sanitized extension of the client supplied name.
func objectName(originalName string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(originalName)))
	if len(ext) > 10 || strings.ContainsAny(ext, `/\ `) {
		ext = ""
	}
	return uuid.NewString() + ext
}
