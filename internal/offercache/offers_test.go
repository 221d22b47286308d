package offercache

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flight-search/flight-supplier-gateway/internal/domain"
	"github.com/flight-search/flight-supplier-gateway/internal/infrastructure/cache"
	"github.com/flight-search/flight-supplier-gateway/internal/infrastructure/timeutil"
)

var baseTime = time.Date(2025, 12, 15, 10, 0, 0, 0, time.UTC)

func sampleOffer(id string) domain.NormalizedOffer {
	seg := domain.Segment{
		Departure:        domain.Location{AirportCode: "JFK", DateTime: baseTime},
		Arrival:          domain.Location{AirportCode: "LHR", DateTime: baseTime.Add(7 * time.Hour)},
		MarketingAirline: domain.Airline{Code: "BA"},
		OperatingAirline: domain.Airline{Code: "BA"},
		FlightNumber:     "BA117",
		Cabin:            domain.CabinEconomy,
		DurationMinutes:  420,
	}
	return domain.NormalizedOffer{
		ID:          id,
		Supplier:    "gds",
		ReferenceID: "ref",
		Price: domain.NewPrice(400, 50, "USD", []domain.FareBreakdown{
			domain.NewFareBreakdown(domain.PassengerAdult, 1, 400, 50),
		}),
		Legs:              []domain.Leg{domain.NewLeg([]domain.Segment{seg}, 420)},
		ValidatingAirline: domain.Airline{Code: "BA"},
		SeatsAvailable:    4,
		ExpiresAt:         baseTime.Add(30 * time.Minute),
		Raw:               json.RawMessage(`{"id":"1","price":{"grandTotal":"450.00"}}`),
	}
}

func newTestOffers() (*Offers, *timeutil.MockClock) {
	clock := timeutil.NewMockClock(baseTime)
	return NewOffers(cache.NewMemoryStore(clock), 30*time.Minute), clock
}

func TestOffers_RoundTrip(t *testing.T) {
	offers, _ := newTestOffers()
	ctx := context.Background()
	offer := sampleOffer("gds_ref_1")

	require.NoError(t, offers.Put(ctx, offer))

	got, err := offers.Get(ctx, offer.ID)
	require.NoError(t, err)
	assert.Equal(t, offer, *got)
	assert.JSONEq(t, string(offer.Raw), string(got.Raw), "raw payload survives the cache")

	again, err := offers.Get(ctx, offer.ID)
	require.NoError(t, err)
	assert.Equal(t, got, again, "repeated lookups are value-equal")
}

func TestOffers_NotFound(t *testing.T) {
	tests := []struct {
		name    string
		put     bool
		advance time.Duration
	}{
		{name: "never cached", put: false},
		{name: "ttl lapsed", put: true, advance: 31 * time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offers, clock := newTestOffers()
			ctx := context.Background()
			if tt.put {
				require.NoError(t, offers.Put(ctx, sampleOffer("gds_ref_1")))
			}
			clock.Advance(tt.advance)

			got, err := offers.Get(ctx, "gds_ref_1")
			assert.ErrorIs(t, err, domain.ErrOfferNotFound)
			assert.Nil(t, got)
		})
	}
}

func TestOffers_PutAll(t *testing.T) {
	offers, _ := newTestOffers()
	ctx := context.Background()

	require.NoError(t, offers.PutAll(ctx, []domain.NormalizedOffer{sampleOffer("gds_r_0"), sampleOffer("gds_r_1")}))

	for _, id := range []string{"gds_r_0", "gds_r_1"} {
		_, err := offers.Get(ctx, id)
		assert.NoError(t, err, id)
	}
}

func TestOffers_BookingPayload(t *testing.T) {
	ctx := context.Background()

	t.Run("priced payload preferred", func(t *testing.T) {
		offers, _ := newTestOffers()
		offer := sampleOffer("gds_ref_1")
		require.NoError(t, offers.Put(ctx, offer))
		require.NoError(t, offers.PutPriced(ctx, offer.ID, json.RawMessage(`{"priced":true}`)))

		raw, err := offers.BookingPayload(ctx, offer)
		require.NoError(t, err)
		assert.JSONEq(t, `{"priced":true}`, string(raw))
	})

	t.Run("search payload on the offer", func(t *testing.T) {
		offers, _ := newTestOffers()
		offer := sampleOffer("gds_ref_1")

		raw, err := offers.BookingPayload(ctx, offer)
		require.NoError(t, err)
		assert.JSONEq(t, string(offer.Raw), string(raw))
	})

	t.Run("search payload from cache", func(t *testing.T) {
		offers, _ := newTestOffers()
		offer := sampleOffer("gds_ref_1")
		require.NoError(t, offers.Put(ctx, offer))

		raw, err := offers.BookingPayload(ctx, offer.WithRaw(nil))
		require.NoError(t, err)
		assert.JSONEq(t, string(offer.Raw), string(raw))
	})

	t.Run("nothing anywhere", func(t *testing.T) {
		offers, _ := newTestOffers()

		_, err := offers.BookingPayload(ctx, sampleOffer("gds_ref_1").WithRaw(nil))
		assert.ErrorIs(t, err, domain.ErrOfferNotFound)
	})
}

func TestOffers_Forget(t *testing.T) {
	offers, _ := newTestOffers()
	ctx := context.Background()
	offer := sampleOffer("gds_ref_1")

	require.NoError(t, offers.Put(ctx, offer))
	require.NoError(t, offers.PutPriced(ctx, offer.ID, json.RawMessage(`{}`)))
	require.NoError(t, offers.Forget(ctx, offer.ID))

	_, err := offers.Get(ctx, offer.ID)
	assert.ErrorIs(t, err, domain.ErrOfferNotFound)
	_, found, err := offers.GetPriced(ctx, offer.ID)
	assert.NoError(t, err)
	assert.False(t, found)
}

func TestNewOffers_DefaultTTL(t *testing.T) {
	assert.Equal(t, DefaultOfferTTL, NewOffers(cache.NewNoOpStore(), 0).TTL())
}
