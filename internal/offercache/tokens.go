package offercache

import (
	"context"
	"time"

	"github.com/flight-search/flight-supplier-gateway/internal/infrastructure/cache"
)

// DefaultTokenMargin is subtracted from the provider-stated token lifetime.
const DefaultTokenMargin = 2 * time.Minute

const tokenPrefix = "oauth:token:"

// Tokens caches OAuth2 access tokens per supplier.
type Tokens struct {
	store  cache.Store
	margin time.Duration
}

// NewTokens creates a token cache. A negative margin uses DefaultTokenMargin.
func NewTokens(store cache.Store, margin time.Duration) *Tokens {
	if margin < 0 {
		margin = DefaultTokenMargin
	}
	return &Tokens{store: store, margin: margin}
}

// Get returns the cached token for supplier.
func (t *Tokens) Get(ctx context.Context, supplier string) (string, bool, error) {
	data, found, err := t.store.Get(ctx, tokenPrefix+supplier)
	if err != nil || !found {
		return "", false, err
	}
	return string(data), true, nil
}

// Put caches token for expiresIn minus the safety margin. Short-lived tokens
// that would not survive the margin are kept for half their lifetime.
func (t *Tokens) Put(ctx context.Context, supplier, token string, expiresIn time.Duration) error {
	return t.store.Put(ctx, tokenPrefix+supplier, []byte(token), t.TTLFor(expiresIn))
}

// TTLFor returns the cache lifetime used for a token valid for expiresIn.
func (t *Tokens) TTLFor(expiresIn time.Duration) time.Duration {
	ttl := expiresIn - t.margin
	if ttl <= 0 {
		ttl = expiresIn / 2
	}
	return ttl
}

// Forget drops the cached token for supplier.
func (t *Tokens) Forget(ctx context.Context, supplier string) error {
	return t.store.Forget(ctx, tokenPrefix+supplier)
}
