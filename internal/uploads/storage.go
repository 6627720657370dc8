package uploads

import (
	"context"
	"io"
	"time"
)

// StorageDriver defines how attachment binaries are stored.
type StorageDriver interface {
	// Save writes the content under the given key
	Save(ctx context.Context, key string, body io.Reader, contentType string) error

	// Get returns a ReadCloser to stream the content back and its content type
	Get(ctx context.Context, key string) (io.ReadCloser, string, error)

	// Delete removes the content
	Delete(ctx context.Context, key string) error

	// GenerateURL returns a public-facing URL
	GenerateURL(ctx context.Context, key string, expires time.Duration) (string, error)
}
