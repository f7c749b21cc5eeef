package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pkg/errors"

	"tearoomcms/internal/config"
)

// MinIO stores files in an S3-compatible bucket (MinIO, AWS S3, etc.). The ETag is the revision
// identifier and public URLs are built from the configured public base.
// It is safe for concurrent use by multiple goroutines.
type MinIO struct {
	client     *minio.Client
	bucket     string
	publicBase string
}

var _ FileStore = (*MinIO)(nil)

// NewMinIO creates a new S3-compatible file store.
// It validates connectivity and ensures the bucket exists (creates it if missing).
func NewMinIO(ctx context.Context, cfg *config.S3Config, transport http.RoundTripper) (*MinIO, error) {
	if cfg == nil || cfg.Endpoint == "" {
		return nil, fmt.Errorf("s3 endpoint is required")
	}
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, fmt.Errorf("s3 credentials are required")
	}
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 bucket is required")
	}

	cli, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:     credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure:    cfg.UseSSL,
		Transport: transport,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	exists, err := cli.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket existence: %w", err)
	}
	if !exists {
		if err := cli.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket: %w", err)
		}
	}

	return &MinIO{client: cli, bucket: cfg.Bucket, publicBase: strings.TrimRight(cfg.PublicBase, "/")}, nil
}

func (m *MinIO) Get(ctx context.Context, path string) (FileInfo, error) {
	key := objectKey(path)

	st, err := m.client.StatObject(ctx, m.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return FileInfo{}, ErrNotFound
		}
		return FileInfo{}, errors.Wrapf(err, "stat %s", key)
	}

	return FileInfo{Path: key, SHA: st.ETag, Size: st.Size, DownloadURL: m.publicURL(key)}, nil
}

// Put uploads using streaming I/O only. Objects are overwritten in place.
func (m *MinIO) Put(ctx context.Context, path string, r io.Reader, opt PutOptions) (string, error) {
	key := objectKey(path)

	_, err := m.client.PutObject(ctx, m.bucket, key, r, opt.Size, minio.PutObjectOptions{
		ContentType:  opt.ContentType,
		UserMetadata: map[string]string{"message": updateMessage(key, opt)},
	})
	if err != nil {
		return "", errors.Wrapf(err, "put %s", key)
	}

	return m.publicURL(key), nil
}

func (m *MinIO) Delete(ctx context.Context, path string) error {
	if _, err := m.Get(ctx, path); err != nil {
		return errors.Wrapf(err, "look up %s", path)
	}
	return errors.Wrapf(m.client.RemoveObject(ctx, m.bucket, objectKey(path), minio.RemoveObjectOptions{}), "remove %s", path)
}

func (m *MinIO) publicURL(key string) string {
	return m.publicBase + "/" + key
}

func objectKey(path string) string {
	return strings.TrimLeft(path, "/")
}
