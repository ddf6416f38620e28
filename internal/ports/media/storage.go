package media

import (
	"context"
	"io"
)

// Storage keeps uploaded images addressed by slash-separated keys.
type Storage interface {
	Save(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	// Delete succeeds when the object is already gone.
	Delete(ctx context.Context, key string) error
	URL(key string) string
}
