// Package storage stores binary content (images, PDFs) addressed by a path string and served
// from a public URL.
package storage

import (
	"context"
	"io"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// ErrNotFound is returned by Get when nothing is stored at the path.
var ErrNotFound = errors.New("file not found")

// FileInfo describes stored content.
type FileInfo struct {
	Path string
	// SHA is the backend revision identifier of the current content. Overwriting or deleting
	// requires the current revision.
	SHA         string
	Size        int64
	DownloadURL string
}

// PutOptions define optional parameters for uploading content.
// Size should be the exact number of bytes if known, -1 otherwise.
type PutOptions struct {
	Size        int64
	ContentType string
	// Message describes the change for backends that keep a history. Defaults to "Update <path> via CMS".
	Message string
}

// FileStore is implemented by every file backend.
//
// Writes and deletes look up the current revision first and then act on it. The check and the
// write are not atomic; a single operator is assumed and concurrent writers are not supported.
type FileStore interface {
	// Get returns metadata of the content at path, or ErrNotFound.
	Get(ctx context.Context, path string) (FileInfo, error)
	// Put creates or overwrites the content at path and returns its public download URL.
	Put(ctx context.Context, path string, r io.Reader, opt PutOptions) (string, error)
	// Delete removes the content at path.
	Delete(ctx context.Context, path string) error
}

// DeleteQuietly deletes path and only logs a failure. A missing or undeletable binary leaves an
// unreferenced file behind, which is harmless.
func DeleteQuietly(ctx context.Context, fs FileStore, path string) {
	if path == "" {
		return
	}
	if err := fs.Delete(ctx, path); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("file delete failed, leaving orphan")
	}
}

func updateMessage(path string, opt PutOptions) string {
	if opt.Message != "" {
		return opt.Message
	}
	return "Update " + path + " via CMS"
}

func deleteMessage(path string) string {
	return "Delete " + path + " via CMS"
}
