package cache

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the key has never been stored.
var ErrNotFound = errors.New("cache: key not found")

// Cache is a key/value store for raw documents such as the catalog tree.
// Entries never expire.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
}
