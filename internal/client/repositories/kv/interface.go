// Package kv defines the string-keyed persistence used by the session and
// wishlist stores, and its SQLite implementation.
package kv

import (
	"context"
)

// Repository is a durable, synchronous key-value store. Get returns
// (nil, nil) when the key is absent; callers distinguish "missing" from
// "failed" without a sentinel error.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
}
