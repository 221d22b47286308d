// Package gds implements the OAuth2 GDS supplier: client-credentials auth,
// flight offer search, price confirmation, order creation and seat maps.
// Raw provider offers are cached under their normalized ids because pricing
// and booking must re-submit them unmodified.
package gds

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/flight-search/flight-supplier-gateway/internal/adapter/supplier/base"
	"github.com/flight-search/flight-supplier-gateway/internal/config"
	"github.com/flight-search/flight-supplier-gateway/internal/domain"
	"github.com/flight-search/flight-supplier-gateway/internal/infrastructure/cache"
	"github.com/flight-search/flight-supplier-gateway/internal/offercache"
)

// Code is the supplier code and offer id prefix.
const Code = config.SupplierGDS

// Provider endpoints, relative to the base URL.
const (
	searchPath  = "/v2/shopping/flight-offers"
	pricingPath = "/v1/shopping/flight-offers/pricing"
	ordersPath  = "/v1/booking/flight-orders"
	seatmapPath = "/v1/shopping/seatmaps"
)

// maxFlightOffers caps the offers requested per search.
const maxFlightOffers = 50

// Adapter is the GDS supplier.
type Adapter struct {
	*base.Base
	tokens *offercache.Tokens
	flight singleflight.Group
}

// Compile-time interface checks.
var (
	_ domain.SupplierAdapter = (*Adapter)(nil)
	_ domain.PriceConfirmer  = (*Adapter)(nil)
	_ domain.Bookable        = (*Adapter)(nil)
	_ domain.SeatMapCapable  = (*Adapter)(nil)
)

// NewAdapter creates the GDS adapter. A nil tokens cache gets an in-memory one.
func NewAdapter(settings config.SupplierSettings, tokens *offercache.Tokens, deps base.Deps) *Adapter {
	settings.Code = Code
	b := base.New(settings, deps)
	if tokens == nil {
		tokens = offercache.NewTokens(cache.NewMemoryStore(b.Clock), settings.TokenTTLMargin)
	}
	return &Adapter{Base: b, tokens: tokens}
}

// Search posts a flight offers search and caches every raw offer under its normalized id.
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
	var resp searchResponse
	if _, err := a.call(ctx, base.Request{Op: "search", Method: http.MethodPost, Path: searchPath}, buildSearchRequest(req), &resp); err != nil {
		return nil, err
	}

	// Provider offer ids restart at "1" on every search, so each search gets its own reference.
	ref := strings.ReplaceAll(uuid.NewString(), "-", "")
	expires := a.OfferExpiry()

	offers := make([]domain.NormalizedOffer, 0, len(resp.Data))
	for i, raw := range resp.Data {
		offer, err := normalizeOffer(raw, resp.Dictionaries, ref, i, expires)
		if err != nil {
			a.Log.Warn().Err(err).Int("index", i).Msg("Skipping unparseable offer")
			continue
		}
		offers = append(offers, offer)
	}
	a.RememberOffers(ctx, offers)

	a.Log.Debug().
		Str("route", req.Origin+"-"+req.Destination).
		Int("offers", len(offers)).
		Msg("GDS search completed")
	return offers, nil
}

// GetOfferDetails resolves an offer from the offer cache.
func (a *Adapter) GetOfferDetails(ctx context.Context, offerID string) (*domain.NormalizedOffer, error) {
	offer, err := a.CachedOffer(ctx, offerID)
	if err != nil {
		a.LogFailure("get_offer", err)
		return nil, err
	}
	return offer, nil
}

// TestConnection fetches a fresh access token, which exercises both reachability and credentials.
func (a *Adapter) TestConnection(ctx context.Context) domain.HealthProbeResult {
	start := time.Now()
	if _, err := a.fetchToken(ctx); err != nil {
		return a.Record(ctx, false, fmt.Sprintf("token request failed: %v", err), start)
	}
	return a.Record(ctx, true, "authenticated", start)
}

// buildSearchRequest translates the canonical request. Round trips get a second
// origin-destination with the endpoints swapped.
func buildSearchRequest(req domain.SearchRequest) searchRequest {
	ods := []originDestination{{
		ID:                      "1",
		OriginLocationCode:      req.Origin,
		DestinationLocationCode: req.Destination,
		DepartureDateTimeRange:  dateTimeRange{Date: req.DepartureDate},
	}}
	if req.IsRoundTrip() {
		ods = append(ods, originDestination{
			ID:                      "2",
			OriginLocationCode:      req.Destination,
			DestinationLocationCode: req.Origin,
			DepartureDateTimeRange:  dateTimeRange{Date: req.ReturnDate},
		})
	}

	odIDs := make([]string, len(ods))
	for i, od := range ods {
		odIDs[i] = od.ID
	}

	cabin := req.Cabin
	if cabin == "" {
		cabin = domain.CabinEconomy
	}

	sr := searchRequest{
		OriginDestinations: ods,
		Travelers:          buildTravelers(req),
		Sources:            []string{"GDS"},
		SearchCriteria: searchCriteria{
			MaxFlightOffers: maxFlightOffers,
			FlightFilters: flightFilters{
				CabinRestrictions: []cabinRestriction{{
					Cabin:                strings.ToUpper(string(cabin)),
					Coverage:             "MOST_SEGMENTS",
					OriginDestinationIDs: odIDs,
				}},
			},
		},
	}
	if airline, ok := req.Filter(domain.FilterAirline); ok {
		sr.SearchCriteria.FlightFilters.CarrierRestrictions = &carrierRestrictions{
			IncludedCarrierCodes: []string{strings.ToUpper(airline)},
		}
	}
	if maxPrice, ok := req.FilterFloat(domain.FilterMaxPrice); ok && maxPrice > 0 {
		sr.SearchCriteria.MaxPrice = int(maxPrice)
	}
	return sr
}

// buildTravelers expands passenger counts into typed traveler records.
// Infants are associated with the first adult.
func buildTravelers(req domain.SearchRequest) []traveler {
	travelers := make([]traveler, 0, req.TotalPassengers())
	next := func() string { return strconv.Itoa(len(travelers) + 1) }

	for i := 0; i < req.Adults; i++ {
		travelers = append(travelers, traveler{ID: next(), TravelerType: "ADULT", FareOptions: []string{"STANDARD"}})
	}
	for i := 0; i < req.Children; i++ {
		travelers = append(travelers, traveler{ID: next(), TravelerType: "CHILD", FareOptions: []string{"STANDARD"}})
	}
	for i := 0; i < req.Infants; i++ {
		travelers = append(travelers, traveler{ID: next(), TravelerType: "HELD_INFANT", AssociatedAdultID: "1", FareOptions: []string{"STANDARD"}})
	}
	return travelers
}

// rawOffer decodes the subset of a cached raw offer the adapter needs.
func rawOffer(raw json.RawMessage) (flightOffer, error) {
	var fo flightOffer
	if err := json.Unmarshal(raw, &fo); err != nil {
		return flightOffer{}, fmt.Errorf("decode offer: %w", err)
	}
	return fo, nil
}
