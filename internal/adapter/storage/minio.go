package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/EhteshamRajpot/shop-o-backend/internal/app/config"
	"github.com/EhteshamRajpot/shop-o-backend/internal/platform/logger"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type MinIOStore struct {
	client *minio.Client
	bucket string
	log    logger.Logger
}

func NewMinIOStore(ctx context.Context, cfg config.MinIOConfig, log logger.Logger) (*MinIOStore, error) {
	log = log.Named("minio_store")
	log.Infow("Initializing MinIO storage", "endpoint", cfg.Endpoint, "bucket", cfg.Bucket, "use_ssl", cfg.UseSSL)

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client for endpoint %s: %w", cfg.Endpoint, err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %s: %w", cfg.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to make bucket %s: %w", cfg.Bucket, err)
		}
		log.Infow("Bucket created", "bucket", cfg.Bucket)
	}

	return &MinIOStore{client: client, bucket: cfg.Bucket, log: log}, nil
}

func (s *MinIOStore) Save(ctx context.Context, originalName string, r io.Reader, size int64) (string, error) {
	key := objectName(originalName)
	if size <= 0 {
		size = -1
	}

	info, err := s.client.PutObject(ctx, s.bucket, key, r, size, minio.PutObjectOptions{})
	if err != nil {
		s.log.Errorw("PutObject failed", "bucket", s.bucket, "key", key, "error", err)
		return "", fmt.Errorf("failed to upload object %s to bucket %s: %w", key, s.bucket, err)
	}

	s.log.Debugw("Avatar uploaded", "bucket", info.Bucket, "key", info.Key, "size", info.Size)
	return key, nil
}

func (s *MinIOStore) Delete(ctx context.Context, ref string) error {
	if ref == "" {
		return nil
	}
	if err := s.client.RemoveObject(ctx, s.bucket, ref, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to remove object %s from bucket %s: %w", ref, s.bucket, err)
	}
	return nil
}
