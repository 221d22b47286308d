package gds

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"

	"github.com/flight-search/flight-supplier-gateway/internal/adapter/supplier/base"
	"github.com/flight-search/flight-supplier-gateway/internal/domain"
)

// PriceOffer re-submits the raw search offer for confirmation. The priced
// payload is cached and preferred by Book.
func (a *Adapter) PriceOffer(ctx context.Context, offer domain.NormalizedOffer) (*domain.PricingResult, error) {
	result, err := a.priceOffer(ctx, offer)
	a.Observe(ctx, err)
	if err != nil {
		a.LogFailure("price", err)
		return nil, err
	}
	return result, nil
}

func (a *Adapter) priceOffer(ctx context.Context, offer domain.NormalizedOffer) (*domain.PricingResult, error) {
	raw, err := a.searchPayload(ctx, offer)
	if err != nil {
		return nil, err
	}
	_, ref, index, err := domain.ParseOfferID(offer.ID)
	if err != nil {
		return nil, err
	}

	body := pricingRequest{Data: pricingData{Type: "flight-offers-pricing", FlightOffers: []json.RawMessage{raw}}}
	var resp pricingResponse
	if _, err := a.call(ctx, base.Request{Op: "price", Method: http.MethodPost, Path: pricingPath}, body, &resp); err != nil {
		return nil, err
	}
	if len(resp.Data.FlightOffers) == 0 {
		return nil, a.Err("price", domain.ErrOfferExpired, errors.New("pricing response carried no offer"))
	}

	pricedRaw := resp.Data.FlightOffers[0]
	priced, err := normalizeOffer(pricedRaw, resp.Dictionaries, ref, index, offer.ExpiresAt)
	if err != nil {
		return nil, a.Err("price", domain.ErrTransport, err)
	}
	priced.Price.Guaranteed = true
	copyAirlineNames(&priced, offer)

	if err := a.Offers.PutPriced(ctx, offer.ID, pricedRaw); err != nil {
		a.Log.Error().Err(err).Str("offer_id", offer.ID).Msg("Failed to cache priced payload")
	}

	changed := math.Abs(priced.Price.Total-offer.Price.Total) > domain.PriceTolerance
	if changed {
		a.Log.Info().
			Str("offer_id", offer.ID).
			Float64("quoted", offer.Price.Total).
			Float64("confirmed", priced.Price.Total).
			Msg("Confirmed price differs from quote")
	}

	return &domain.PricingResult{
		Offer:         priced,
		PriceChanged:  changed,
		PreviousTotal: offer.Price.Total,
		PricedRaw:     pricedRaw,
	}, nil
}

// searchPayload returns the raw search-time offer, from the offer itself or the cache.
func (a *Adapter) searchPayload(ctx context.Context, offer domain.NormalizedOffer) (json.RawMessage, error) {
	if len(offer.Raw) > 0 {
		return offer.Raw, nil
	}
	cached, err := a.Offers.Get(ctx, offer.ID)
	if err != nil {
		return nil, err
	}
	if len(cached.Raw) == 0 {
		return nil, domain.ErrOfferNotFound
	}
	return cached.Raw, nil
}

// copyAirlineNames fills carrier names the pricing response omitted from the quoted offer.
func copyAirlineNames(priced *domain.NormalizedOffer, quoted domain.NormalizedOffer) {
	names := map[string]string{}
	remember := func(al domain.Airline) {
		if al.Name != "" {
			names[al.Code] = al.Name
		}
	}
	remember(quoted.ValidatingAirline)
	for _, leg := range quoted.Legs {
		for _, s := range leg.Segments {
			remember(s.MarketingAirline)
			remember(s.OperatingAirline)
		}
	}

	fill := func(al *domain.Airline) {
		if al.Name == "" {
			al.Name = names[al.Code]
		}
	}
	fill(&priced.ValidatingAirline)
	for i := range priced.Legs {
		for j := range priced.Legs[i].Segments {
			fill(&priced.Legs[i].Segments[j].MarketingAirline)
			fill(&priced.Legs[i].Segments[j].OperatingAirline)
		}
	}
}
