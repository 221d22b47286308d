package offercache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flight-search/flight-supplier-gateway/internal/domain"
	"github.com/flight-search/flight-supplier-gateway/internal/infrastructure/cache"
	"github.com/flight-search/flight-supplier-gateway/internal/infrastructure/timeutil"
)

func sampleRequest() domain.SearchRequest {
	return domain.SearchRequest{
		Origin:        "JFK",
		Destination:   "LHR",
		DepartureDate: "2025-12-20",
		Adults:        1,
		Cabin:         domain.CabinEconomy,
	}
}

func TestKey(t *testing.T) {
	base := sampleRequest()
	key := Key("gds", base)

	assert.Len(t, key, len(searchPrefix)+64, "sha256 hex digest")
	assert.Equal(t, key, Key("gds", base), "deterministic")

	lower := base
	lower.Origin, lower.Destination = "jfk", "lhr"
	assert.Equal(t, key, Key("gds", lower), "airport codes are case-insensitive")

	variants := map[string]func(r *domain.SearchRequest){
		"return date": func(r *domain.SearchRequest) { r.ReturnDate = "2025-12-27" },
		"children":    func(r *domain.SearchRequest) { r.Children = 1 },
		"infants":     func(r *domain.SearchRequest) { r.Infants = 1 },
		"cabin":       func(r *domain.SearchRequest) { r.Cabin = domain.CabinBusiness },
		"filter":      func(r *domain.SearchRequest) { r.Filters = map[string]string{"airline": "BA"} },
	}
	for name, mutate := range variants {
		t.Run(name, func(t *testing.T) {
			r := sampleRequest()
			mutate(&r)
			assert.NotEqual(t, key, Key("gds", r))
		})
	}

	assert.NotEqual(t, key, Key("ndc", base), "supplier is part of the key")
}

func TestKey_FilterOrderIndependent(t *testing.T) {
	a := sampleRequest()
	a.Filters = map[string]string{"airline": "BA", "max_price": "500"}
	b := sampleRequest()
	b.Filters = map[string]string{"max_price": "500", "airline": "BA"}

	assert.Equal(t, Key("local", a), Key("local", b))
}

func TestSearches_PutGetExpire(t *testing.T) {
	clock := timeutil.NewMockClock(baseTime)
	searches := NewSearches(cache.NewMemoryStore(clock), 5*time.Minute)
	ctx := context.Background()
	req := sampleRequest()

	_, found, err := searches.Get(ctx, "gds", req)
	require.NoError(t, err)
	assert.False(t, found)

	offer := sampleOffer("gds_ref_1")
	require.NoError(t, searches.Put(ctx, "gds", req, []domain.NormalizedOffer{offer}))

	got, found, err := searches.Get(ctx, "gds", req)
	require.NoError(t, err)
	require.True(t, found)
	require.Len(t, got, 1)
	assert.Equal(t, offer.ID, got[0].ID)
	assert.Equal(t, offer.Price, got[0].Price)
	assert.Nil(t, got[0].Raw, "raw payloads live in the offer cache only")

	clock.Advance(5 * time.Minute)
	_, found, err = searches.Get(ctx, "gds", req)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestSearches_EmptyResultIsCached(t *testing.T) {
	searches := NewSearches(cache.NewMemoryStore(timeutil.NewMockClock(baseTime)), 0)
	ctx := context.Background()

	require.NoError(t, searches.Put(ctx, "partner", sampleRequest(), nil))

	got, found, err := searches.Get(ctx, "partner", sampleRequest())
	require.NoError(t, err)
	assert.True(t, found)
	assert.Empty(t, got)
	assert.Equal(t, DefaultSearchTTL, searches.TTL())
}
