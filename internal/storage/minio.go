package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rs/zerolog"

	"github.com/k1r/imgstore/internal/config"
)

// MinioStorage implements Storage using a MinIO (or any S3-compatible) backend.
type MinioStorage struct {
	client *minio.Client
	bucket string
}

// NewMinioStorage creates a MinIO client for cfg.StorageEndpoint. When
// StorageEnsureBucket is set, the bucket is created with a public-read policy
// if it does not exist yet (local MinIO); R2 buckets are managed out of band.
func NewMinioStorage(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*MinioStorage, error) {
	host, secure, err := splitEndpoint(cfg.StorageEndpoint)
	if err != nil {
		return nil, err
	}

	client, err := minio.New(host, &minio.Options{
		Creds:      credentials.NewStaticV4(cfg.StorageAccessKey, cfg.StorageSecretKey, ""),
		Secure:     secure,
		Region:     cfg.StorageRegion,
		MaxRetries: 1,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	if cfg.StorageEnsureBucket {
		if err := ensureBucket(ctx, client, cfg.StorageBucket, cfg.StorageRegion, log); err != nil {
			return nil, err
		}
	}

	return &MinioStorage{client: client, bucket: cfg.StorageBucket}, nil
}

func ensureBucket(ctx context.Context, client *minio.Client, bucket, region string, log zerolog.Logger) error {
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return fmt.Errorf("check bucket existence: %w", err)
	}
	if exists {
		return nil
	}
	if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{Region: region}); err != nil {
		return fmt.Errorf("create bucket %q: %w", bucket, err)
	}
	if err := client.SetBucketPolicy(ctx, bucket, publicReadPolicy(bucket)); err != nil {
		return fmt.Errorf("set bucket policy: %w", err)
	}
	log.Info().Str("bucket", bucket).Msg("created bucket")
	return nil
}

// Upload writes data under key with its content type and the long-lived cache directive.
func (s *MinioStorage) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType:  contentType,
		CacheControl: CacheControl,
	})
	if err != nil {
		return &Error{Op: OpUpload, Key: key, Err: err}
	}
	return nil
}

// Delete removes the object at key from the bucket.
func (s *MinioStorage) Delete(ctx context.Context, key string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return &Error{Op: OpDelete, Key: key, Err: err}
	}
	return nil
}

// splitEndpoint turns an endpoint URL such as
// "https://<account>.r2.cloudflarestorage.com" into the host minio.New expects.
// A bare host is treated as https.
func splitEndpoint(raw string) (host string, secure bool, err error) {
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", false, fmt.Errorf("parse storage endpoint: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", false, fmt.Errorf("storage endpoint scheme %q is not http or https", u.Scheme)
	}
	if u.Host == "" {
		return "", false, fmt.Errorf("storage endpoint %q has no host", raw)
	}
	if u.Path != "" && u.Path != "/" {
		return "", false, fmt.Errorf("storage endpoint %q must not contain a path", raw)
	}
	return u.Host, u.Scheme == "https", nil
}

// publicReadPolicy returns an S3 bucket policy JSON that allows anonymous GET on all objects.
func publicReadPolicy(bucket string) string {
	policy := map[string]any{
		"Version": "2012-10-17",
		"Statement": []map[string]any{
			{
				"Effect":    "Allow",
				"Principal": "*",
				"Action":    "s3:GetObject",
				"Resource":  fmt.Sprintf("arn:aws:s3:::%s/*", bucket),
			},
		},
	}
	b, _ := json.Marshal(policy)
	return string(b)
}
