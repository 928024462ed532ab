// Package storage abstracts the blob store that holds uploaded document
// bytes, keyed by an opaque storage key.
package storage

import (
	"context"
	"io"
)

// BlobStore writes and reads document bytes. Implementations must return
// common.ErrorNotFound from Read when no object exists under the key.
type BlobStore interface {
	Write(ctx context.Context, key string, body io.Reader) error
	Read(ctx context.Context, key string) (io.ReadCloser, error)
}
