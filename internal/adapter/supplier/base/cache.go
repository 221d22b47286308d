package base

import (
	"context"

	"github.com/flight-search/flight-supplier-gateway/internal/domain"
)

// Fetcher performs the uncached supplier search.
type Fetcher func(ctx context.Context) ([]domain.NormalizedOffer, error)

// CacheOrFetch returns the cached result set for req when search caching is
// enabled for this supplier, otherwise calls fetch and caches a successful result.
// Failures are never cached.
func (b *Base) CacheOrFetch(ctx context.Context, req domain.SearchRequest, fetch Fetcher) ([]domain.NormalizedOffer, error) {
	if !b.Settings.CacheSearch || b.Searches == nil {
		return fetch(ctx)
	}

	cached, found, err := b.Searches.Get(ctx, b.Settings.Code, req)
	if err != nil {
		b.Log.Warn().Err(err).Msg("Search cache read failed, fetching from supplier")
	}
	if found {
		b.Log.Debug().Int("offers", len(cached)).Msg("Search cache hit")
		return cached, nil
	}

	offers, err := fetch(ctx)
	if err != nil {
		return nil, err
	}
	if err := b.Searches.Put(ctx, b.Settings.Code, req, offers); err != nil {
		b.Log.Warn().Err(err).Msg("Search cache write failed")
	}
	return offers, nil
}

// RememberOffers stores each offer with its raw payload so it can be priced
// and booked later. Offers that could not be cached are still returned to the
// caller but will not resolve afterwards.
func (b *Base) RememberOffers(ctx context.Context, offers []domain.NormalizedOffer) {
	for _, offer := range offers {
		if err := b.Offers.Put(ctx, offer); err != nil {
			b.Log.Error().Err(err).Str("offer_id", offer.ID).Msg("Failed to cache offer payload")
		}
	}
}

// CachedOffer resolves an offer previously stored by RememberOffers.
// An expired offer is reported as domain.ErrOfferNotFound.
func (b *Base) CachedOffer(ctx context.Context, offerID string) (*domain.NormalizedOffer, error) {
	offer, err := b.Offers.Get(ctx, offerID)
	if err != nil {
		return nil, err
	}
	if offer.IsExpired(b.Clock.Now()) {
		return nil, domain.ErrOfferNotFound
	}
	return offer, nil
}
