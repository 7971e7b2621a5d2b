package uploads

import (
	"context"
	"io"
	"time"
)

// StorageDriver abstracts the binary store holding attachment content. The
// metadata lives in the database; drivers only see opaque keys.
type StorageDriver interface {
	// Save writes the content under the given key.
	Save(ctx context.Context, key string, body io.Reader, contentType string) error

	// Get streams the content back together with its content type.
	Get(ctx context.Context, key string) (io.ReadCloser, string, error)

	// Delete removes the content. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// GenerateURL returns a public-facing URL for the key.
	GenerateURL(ctx context.Context, key string, expires time.Duration) (string, error)
}
