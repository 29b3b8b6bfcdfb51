package storage

import (
	"context"
	"io"
)

// ObjectStore defines the object-store operations needed by the schema
// discovery pipeline.
type ObjectStore interface {
	// ListFolders returns the distinct top-level prefixes of the bucket.
	ListFolders(ctx context.Context, bucket string) ([]string, error)

	// ListObjects returns the keys directly under prefix (one level, no
	// recursive descent).
	ListObjects(ctx context.Context, bucket string, prefix string) ([]string, error)

	// GetObject returns the content of a single object. The caller owns
	// the returned reader and must close it.
	GetObject(ctx context.Context, bucket string, key string) (io.ReadCloser, error)
}
