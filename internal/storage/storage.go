// Package storage writes and removes image objects in an S3-compatible bucket.
// The MinIO driver works with any S3-compatible provider (Cloudflare R2, MinIO, AWS S3);
// the s3 driver does the same through the AWS SDK.
package storage

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/k1r/imgstore/internal/config"
)

// CacheControl is attached to every stored object. Keys are content addressed,
// so objects never change under the same URL.
const CacheControl = "public, max-age=31536000"

// Operation names carried by Error and metrics.
const (
	OpUpload = "upload"
	OpDelete = "delete"
)

// Storage is the interface for writing and removing objects.
type Storage interface {
	// Upload writes data under key, replacing any existing object.
	Upload(ctx context.Context, key string, data []byte, contentType string) error
	// Delete removes the object at key. Missing keys are not an error.
	Delete(ctx context.Context, key string) error
}

// Error is returned by every driver when the remote call fails.
type Error struct {
	Op  string
	Key string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("storage %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// New builds the driver selected by cfg.StorageDriver, wrapped with metrics.
func New(ctx context.Context, cfg *config.Config, log zerolog.Logger) (Storage, error) {
	var (
		s   Storage
		err error
	)
	switch cfg.StorageDriver {
	case config.DriverMinio:
		s, err = NewMinioStorage(ctx, cfg, log)
	case config.DriverS3:
		s, err = NewS3Storage(ctx, cfg, log)
	case config.DriverMemory:
		s = NewMemoryStorage()
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
	if err != nil {
		return nil, err
	}
	log.Info().Str("driver", cfg.StorageDriver).Str("bucket", cfg.StorageBucket).Msg("storage ready")
	return Instrument(s, cfg.StorageDriver), nil
}
