package storage_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"tearoomcms/internal/config"
	"tearoomcms/internal/storage"
	"tearoomcms/internal/storage/mocks"
)

func TestDeleteQuietly(t *testing.T) {
	ctx := context.Background()

	t.Run("swallows failures", func(t *testing.T) {
		fs := new(mocks.MockFileStore)
		fs.On("Delete", ctx, "assets/a.jpg").Return(errors.New("GitHub API error: Not Found"))

		assert.NotPanics(t, func() { storage.DeleteQuietly(ctx, fs, "assets/a.jpg") })
		fs.AssertExpectations(t)
	})

	t.Run("skips empty path", func(t *testing.T) {
		fs := new(mocks.MockFileStore)
		storage.DeleteQuietly(ctx, fs, "")
		fs.AssertNotCalled(t, "Delete")
	})
}

func TestNewMinIO_Validation(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		cfg  *config.S3Config
		want string
	}{
		{name: "nil", cfg: nil, want: "s3 endpoint is required"},
		{name: "no credentials", cfg: &config.S3Config{Endpoint: "minio:9000"}, want: "s3 credentials are required"},
		{name: "no bucket", cfg: &config.S3Config{Endpoint: "minio:9000", AccessKey: "a", SecretKey: "b"}, want: "s3 bucket is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := storage.NewMinIO(ctx, tt.cfg, nil)
			assert.EqualError(t, err, tt.want)
		})
	}
}
