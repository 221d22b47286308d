package ndc

import (
	"context"
	"errors"
	"math"
	"net/http"
	"net/url"
	"strings"

	"github.com/flight-search/flight-supplier-gateway/internal/adapter/supplier/base"
	"github.com/flight-search/flight-supplier-gateway/internal/domain"
)

// Provider error codes meaning the offer can no longer be sold.
var expiredCodes = map[string]bool{
	"offer_no_longer_available": true,
	"offer_expired":             true,
}

// PriceOffer re-reads the offer from the provider. The refreshed offer is
// cached as the priced payload and used by Book.
func (a *Adapter) PriceOffer(ctx context.Context, quoted domain.NormalizedOffer) (*domain.PricingResult, error) {
	result, err := a.priceOffer(ctx, quoted)
	a.Observe(ctx, err)
	if err != nil {
		a.LogFailure("price", err)
		return nil, err
	}
	return result, nil
}

func (a *Adapter) priceOffer(ctx context.Context, quoted domain.NormalizedOffer) (*domain.PricingResult, error) {
	_, ref, index, err := domain.ParseOfferID(quoted.ID)
	if err != nil {
		return nil, err
	}

	var resp offerResponse
	httpResp, err := a.DoJSON(ctx, a.request("price", http.MethodGet, offersPath+"/"+url.PathEscape(ref), nil), nil, &resp)
	if err != nil {
		return nil, a.translateExpired("price", httpResp, err)
	}
	if len(resp.Data) == 0 {
		return nil, a.Err("price", domain.ErrOfferExpired, errors.New("offer lookup returned no offer"))
	}

	expires := quoted.ExpiresAt
	if expires.IsZero() {
		expires = a.OfferExpiry()
	}
	priced, err := normalizeOffer(resp.Data, index, expires)
	if err != nil {
		return nil, a.Err("price", domain.ErrTransport, err)
	}

	if err := a.Offers.PutPriced(ctx, quoted.ID, resp.Data); err != nil {
		a.Log.Error().Err(err).Str("offer_id", quoted.ID).Msg("Failed to cache priced payload")
	}

	changed := math.Abs(priced.Price.Total-quoted.Price.Total) > domain.PriceTolerance
	if changed {
		a.Log.Info().
			Str("offer_id", quoted.ID).
			Float64("quoted", quoted.Price.Total).
			Float64("confirmed", priced.Price.Total).
			Msg("Confirmed price differs from quote")
	}

	return &domain.PricingResult{
		Offer:         priced,
		PriceChanged:  changed,
		PreviousTotal: quoted.Price.Total,
		PricedRaw:     resp.Data,
	}, nil
}

// translateExpired turns a rejection that means "this offer is gone" into
// domain.ErrOfferExpired. Other errors are returned unchanged.
func (a *Adapter) translateExpired(op string, resp *base.Response, err error) error {
	if resp == nil || !errors.Is(err, domain.ErrProviderRejected) {
		return err
	}

	errs := base.ParseProviderErrors(resp.Body)
	for _, pe := range errs {
		if expiredCodes[pe.Code] || mentionsExpiry(pe.Text()) {
			return a.Err(op, domain.ErrOfferExpired, errors.New(pe.Text())).WithStatus(resp.StatusCode, pe.Code)
		}
	}
	if resp.StatusCode == http.StatusNotFound {
		return a.Err(op, domain.ErrOfferExpired, errors.New("offer not found at provider")).WithStatus(resp.StatusCode, "")
	}
	return err
}

func mentionsExpiry(msg string) bool {
	msg = strings.ToLower(msg)
	return strings.Contains(msg, "no longer available") || strings.Contains(msg, "expired")
}
