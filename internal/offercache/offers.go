// Package offercache stores supplier payloads between search and booking,
// plus the search-result and OAuth2 token caches.
package offercache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/flight-search/flight-supplier-gateway/internal/domain"
	"github.com/flight-search/flight-supplier-gateway/internal/infrastructure/cache"
)

// DefaultOfferTTL is how long an offer stays resolvable after search.
const DefaultOfferTTL = 30 * time.Minute

const (
	offerPrefix  = "offer:"
	pricedPrefix = "offer:priced:"
)

// offerEntry keeps the raw payload next to the normalized offer, since Raw is not serialized with the offer.
type offerEntry struct {
	Offer domain.NormalizedOffer `json:"offer"`
	Raw   json.RawMessage        `json:"raw,omitempty"`
}

// Offers maps offer ids to the normalized offer and the raw provider payload.
type Offers struct {
	store cache.Store
	ttl   time.Duration
}

// NewOffers creates an offer cache. A non-positive ttl uses DefaultOfferTTL.
func NewOffers(store cache.Store, ttl time.Duration) *Offers {
	if ttl <= 0 {
		ttl = DefaultOfferTTL
	}
	return &Offers{store: store, ttl: ttl}
}

// TTL returns the configured entry lifetime.
func (o *Offers) TTL() time.Duration {
	return o.ttl
}

// Put stores the offer and its raw payload under the offer id.
func (o *Offers) Put(ctx context.Context, offer domain.NormalizedOffer) error {
	data, err := json.Marshal(offerEntry{Offer: offer, Raw: offer.Raw})
	if err != nil {
		return fmt.Errorf("encode offer %s: %w", offer.ID, err)
	}
	return o.store.Put(ctx, offerPrefix+offer.ID, data, o.ttl)
}

// PutAll stores every offer, stopping at the first failure.
func (o *Offers) PutAll(ctx context.Context, offers []domain.NormalizedOffer) error {
	for _, offer := range offers {
		if err := o.Put(ctx, offer); err != nil {
			return err
		}
	}
	return nil
}

// Get resolves an offer id. It returns domain.ErrOfferNotFound once the entry has expired.
func (o *Offers) Get(ctx context.Context, offerID string) (*domain.NormalizedOffer, error) {
	data, found, err := o.store.Get(ctx, offerPrefix+offerID)
	if err != nil {
		return nil, fmt.Errorf("read offer %s: %w", offerID, err)
	}
	if !found {
		return nil, domain.ErrOfferNotFound
	}

	var e offerEntry
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("decode offer %s: %w", offerID, err)
	}
	offer := e.Offer.WithRaw(e.Raw)
	return &offer, nil
}

// PutPriced stores the payload returned by a price confirmation. Booking prefers it over the search payload.
func (o *Offers) PutPriced(ctx context.Context, offerID string, raw json.RawMessage) error {
	return o.store.Put(ctx, pricedPrefix+offerID, raw, o.ttl)
}

// GetPriced returns the priced payload for an offer, if one was stored.
func (o *Offers) GetPriced(ctx context.Context, offerID string) (json.RawMessage, bool, error) {
	data, found, err := o.store.Get(ctx, pricedPrefix+offerID)
	if err != nil || !found {
		return nil, false, err
	}
	return json.RawMessage(data), true, nil
}

// BookingPayload returns the priced payload when present, otherwise the search payload.
func (o *Offers) BookingPayload(ctx context.Context, offer domain.NormalizedOffer) (json.RawMessage, error) {
	if priced, ok, err := o.GetPriced(ctx, offer.ID); err == nil && ok {
		return priced, nil
	}
	if len(offer.Raw) > 0 {
		return offer.Raw, nil
	}
	cached, err := o.Get(ctx, offer.ID)
	if err != nil {
		return nil, err
	}
	if len(cached.Raw) == 0 {
		return nil, domain.ErrOfferNotFound
	}
	return cached.Raw, nil
}

// Forget removes both the offer and any priced payload.
func (o *Offers) Forget(ctx context.Context, offerID string) error {
	if err := o.store.Forget(ctx, offerPrefix+offerID); err != nil {
		return err
	}
	return o.store.Forget(ctx, pricedPrefix+offerID)
}
