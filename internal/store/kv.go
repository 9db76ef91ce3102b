package store

import (
	"context"
	"errors"
)

// ErrMiss is returned by Get when the key has never been written (or was
// removed). Callers treat a miss as an empty collection.
var ErrMiss = errors.New("kv miss")

// KV is the persistence contract: a string key-value store holding one
// JSON-encoded array per collection key. Any backend satisfying these three
// calls suffices.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string) error
	Remove(ctx context.Context, key string) error
}
