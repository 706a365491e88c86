package storage

import (
	"context"
)

// Storage is a key-addressed object store bound to a single bucket
type Storage interface {
	// Bucket returns the store identifier the driver was created for
	Bucket() string

	// ListKeys returns every key currently in the bucket. Drivers that page
	// their listings follow continuation tokens until the store is exhausted.
	ListKeys(ctx context.Context) ([]string, error)

	// PutObject writes data under key, replacing any existing object
	PutObject(ctx context.Context, key string, data []byte) error
}
