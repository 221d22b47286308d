package offercache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flight-search/flight-supplier-gateway/internal/infrastructure/cache"
	"github.com/flight-search/flight-supplier-gateway/internal/infrastructure/timeutil"
)

func TestTokens_TTLFor(t *testing.T) {
	tokens := NewTokens(cache.NewNoOpStore(), 2*time.Minute)

	tests := []struct {
		expiresIn time.Duration
		want      time.Duration
	}{
		{expiresIn: 30 * time.Minute, want: 28 * time.Minute},
		{expiresIn: 1799 * time.Second, want: 1679 * time.Second},
		{expiresIn: 2 * time.Minute, want: time.Minute},
		{expiresIn: 60 * time.Second, want: 30 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.expiresIn.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tokens.TTLFor(tt.expiresIn))
		})
	}
}

func TestTokens_Lifecycle(t *testing.T) {
	clock := timeutil.NewMockClock(baseTime)
	tokens := NewTokens(cache.NewMemoryStore(clock), 2*time.Minute)
	ctx := context.Background()

	_, found, err := tokens.Get(ctx, "gds")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, tokens.Put(ctx, "gds", "tok-1", 30*time.Minute))

	tok, found, err := tokens.Get(ctx, "gds")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "tok-1", tok)

	_, found, _ = tokens.Get(ctx, "ndc")
	assert.False(t, found, "tokens are namespaced per supplier")

	clock.Advance(28 * time.Minute)
	_, found, _ = tokens.Get(ctx, "gds")
	assert.False(t, found, "expires a safety margin before the provider does")

	require.NoError(t, tokens.Put(ctx, "gds", "tok-2", 30*time.Minute))
	require.NoError(t, tokens.Forget(ctx, "gds"))
	_, found, _ = tokens.Get(ctx, "gds")
	assert.False(t, found)
}

func TestNewTokens_NegativeMargin(t *testing.T) {
	tokens := NewTokens(cache.NewNoOpStore(), -time.Second)
	assert.Equal(t, 28*time.Minute, tokens.TTLFor(30*time.Minute))
}
