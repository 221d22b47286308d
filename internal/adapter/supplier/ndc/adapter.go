// Package ndc implements the NDC aggregator supplier. It authenticates with a
// static bearer token, searches through offer requests and books either with an
// immediate balance payment or as a hold, depending on the offer.
package ndc

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/flight-search/flight-supplier-gateway/internal/adapter/supplier/base"
	"github.com/flight-search/flight-supplier-gateway/internal/config"
	"github.com/flight-search/flight-supplier-gateway/internal/domain"
)

// Code is the supplier code and offer id prefix.
const Code = config.SupplierNDC

const (
	offerRequestsPath = "/air/offer_requests"
	offersPath        = "/air/offers"
	ordersPath        = "/air/orders"
	airlinesPath      = "/air/airlines"
)

// childAge is sent for child passengers; the provider types children by age.
const childAge = 8

// Adapter is the NDC aggregator supplier.
type Adapter struct {
	*base.Base
}

var (
	_ domain.SupplierAdapter = (*Adapter)(nil)
	_ domain.PriceConfirmer  = (*Adapter)(nil)
	_ domain.Bookable        = (*Adapter)(nil)
)

// NewAdapter creates the NDC adapter.
func NewAdapter(settings config.SupplierSettings, deps base.Deps) *Adapter {
	settings.Code = Code
	return &Adapter{Base: base.New(settings, deps)}
}

// Search creates an offer request and returns its offers inline.
func (a *Adapter) Search(ctx context.Context, req domain.SearchRequest) ([]domain.NormalizedOffer, error) {
	offers, err := a.CacheOrFetch(ctx, req, func(ctx context.Context) ([]domain.NormalizedOffer, error) {
		return a.search(ctx, req)
	})
	if err != nil {
		a.MarkUnhealthy(ctx, err)
		a.LogFailure("search", err)
		return nil, err
	}
	a.MarkHealthy(ctx)
	return offers, nil
}

func (a *Adapter) search(ctx context.Context, req domain.SearchRequest) ([]domain.NormalizedOffer, error) {
	var resp offerRequestResponse
	_, err := a.DoJSON(ctx, a.request("search", http.MethodPost, offerRequestsPath,
		url.Values{"return_offers": {"true"}}), buildOfferRequest(req), &resp)
	if err != nil {
		return nil, err
	}

	expires := a.OfferExpiry()
	offers := make([]domain.NormalizedOffer, 0, len(resp.Data.Offers))
	for i, raw := range resp.Data.Offers {
		o, err := normalizeOffer(raw, i, expires)
		if err != nil {
			a.Log.Warn().Err(err).Int("index", i).Msg("Skipping unparseable offer")
			continue
		}
		offers = append(offers, o)
	}
	a.RememberOffers(ctx, offers)

	a.Log.Debug().
		Str("offer_request", resp.Data.ID).
		Int("offers", len(offers)).
		Msg("NDC search completed")
	return offers, nil
}

// GetOfferDetails resolves an offer from the offer cache.
func (a *Adapter) GetOfferDetails(ctx context.Context, offerID string) (*domain.NormalizedOffer, error) {
	o, err := a.CachedOffer(ctx, offerID)
	if err != nil {
		a.LogFailure("get_offer", err)
		return nil, err
	}
	return o, nil
}

// TestConnection lists one airline, which needs valid credentials.
func (a *Adapter) TestConnection(ctx context.Context) domain.HealthProbeResult {
	start := time.Now()
	req := a.request("test_connection", http.MethodGet, airlinesPath, url.Values{"limit": {"1"}})
	req.NoRetry = true

	resp, err := a.Do(ctx, req)
	switch {
	case err == nil:
		return a.Record(ctx, true, "authenticated", start)
	case domain.IsAuthError(err):
		return a.Record(ctx, false, "credentials rejected", start)
	case resp != nil:
		return a.Record(ctx, false, fmt.Sprintf("unexpected status %d", resp.StatusCode), start)
	default:
		return a.Record(ctx, false, fmt.Sprintf("connection failed: %v", err), start)
	}
}

// request builds an authenticated provider request.
func (a *Adapter) request(op, method, path string, query url.Values) base.Request {
	header := http.Header{}
	header.Set("Authorization", "Bearer "+a.Settings.APIKey)
	if a.Settings.APIVersion != "" {
		header.Set("Duffel-Version", a.Settings.APIVersion)
	}
	return base.Request{Op: op, Method: method, Path: path, Query: query, Header: header}
}

// buildOfferRequest translates the canonical request. Round trips add a return slice.
func buildOfferRequest(req domain.SearchRequest) offerRequestBody {
	slices := []sliceRequest{{
		Origin:        req.Origin,
		Destination:   req.Destination,
		DepartureDate: req.DepartureDate,
	}}
	if req.IsRoundTrip() {
		slices = append(slices, sliceRequest{
			Origin:        req.Destination,
			Destination:   req.Origin,
			DepartureDate: req.ReturnDate,
		})
	}

	passengers := make([]passengerRequest, 0, req.TotalPassengers())
	for i := 0; i < req.Adults; i++ {
		passengers = append(passengers, passengerRequest{Type: "adult"})
	}
	for i := 0; i < req.Children; i++ {
		passengers = append(passengers, passengerRequest{Age: childAge})
	}
	for i := 0; i < req.Infants; i++ {
		passengers = append(passengers, passengerRequest{Type: "infant_without_seat"})
	}

	cabin := req.Cabin
	if cabin == "" {
		cabin = domain.CabinEconomy
	}

	return offerRequestBody{Data: offerRequest{
		Slices:     slices,
		Passengers: passengers,
		CabinClass: strings.ToLower(string(cabin)),
	}}
}
