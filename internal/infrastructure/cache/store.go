// Package cache provides the key-value backends used by the offer, search and token caches.
package cache

import (
	"context"
	"time"
)

// Store is a TTL key-value backend.
// A missing or expired key is reported as found == false with a nil error.
type Store interface {
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Put(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Forget(ctx context.Context, key string) error
}

// NoOpStore never stores anything. Used when caching is disabled entirely.
type NoOpStore struct{}

// NewNoOpStore creates a store that always misses.
func NewNoOpStore() *NoOpStore {
	return &NoOpStore{}
}

func (NoOpStore) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, nil
}

func (NoOpStore) Put(context.Context, string, []byte, time.Duration) error {
	return nil
}

func (NoOpStore) Forget(context.Context, string) error {
	return nil
}

var (
	_ Store = (*NoOpStore)(nil)
	_ Store = (*MemoryStore)(nil)
	_ Store = (*RedisStore)(nil)
)
