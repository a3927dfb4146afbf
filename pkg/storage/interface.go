package storage

import (
	"context"
	"io"
	"time"
)

// Storage abstracts where product images live. The service only ever
// uploads a file, resolves a browsable URL for it, and deletes it when
// the product goes away.
type Storage interface {
	// Write stores content from the reader under the given key.
	// size is the expected content size (-1 if unknown).
	Write(ctx context.Context, key string, r io.Reader, size int64, contentType string) error

	// Read retrieves content for the given key.
	// The caller is responsible for closing the returned ReadCloser.
	Read(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes the content with the given key.
	Delete(ctx context.Context, key string) error

	// Exists checks if content with the given key exists.
	Exists(ctx context.Context, key string) (bool, error)

	// GetURL returns a URL for accessing the content. For S3 this is
	// either a public URL or a presigned URL valid for expires; for
	// local storage it is a server-relative path.
	GetURL(ctx context.Context, key string, expires time.Duration) (string, error)
}
