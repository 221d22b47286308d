// Package partner implements the partner REST supplier: a static search
// payload, bearer plus secret-header authentication and direct booking.
package partner

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/flight-search/flight-supplier-gateway/internal/adapter/supplier/base"
	"github.com/flight-search/flight-supplier-gateway/internal/config"
	"github.com/flight-search/flight-supplier-gateway/internal/domain"
)

// Code is the supplier code and offer id prefix.
const Code = config.SupplierPartner

const (
	searchPath   = "/flights/search"
	bookingsPath = "/bookings"
)

// secretHeader carries the API secret next to the bearer key.
const secretHeader = "X-API-Secret"

// Adapter is the partner supplier.
type Adapter struct {
	*base.Base
}

var (
	_ domain.SupplierAdapter = (*Adapter)(nil)
	_ domain.Bookable        = (*Adapter)(nil)
)

// NewAdapter creates the partner adapter.
func NewAdapter(settings config.SupplierSettings, deps base.Deps) *Adapter {
	settings.Code = Code
	return &Adapter{Base: base.New(settings, deps)}
}

// Search posts the search payload and normalizes every returned flight.
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
	cabin := req.Cabin
	if cabin == "" {
		cabin = domain.CabinEconomy
	}
	payload := searchRequest{
		From:       req.Origin,
		To:         req.Destination,
		Date:       req.DepartureDate,
		ReturnDate: req.ReturnDate,
		Adults:     req.Adults,
		Children:   req.Children,
		Infants:    req.Infants,
		Cabin:      string(cabin),
	}

	var data searchData
	if err := a.call(ctx, "search", searchPath, payload, &data); err != nil {
		return nil, err
	}

	expires := a.OfferExpiry()
	offers := make([]domain.NormalizedOffer, 0, len(data.Flights))
	for i, raw := range data.Flights {
		o, err := normalizeFlight(raw, i, expires)
		if err != nil {
			a.Log.Warn().Err(err).Int("index", i).Msg("Skipping unparseable flight")
			continue
		}
		offers = append(offers, o)
	}
	a.RememberOffers(ctx, offers)
	return offers, nil
}

// GetOfferDetails resolves an offer from the offer cache; the partner has no lookup endpoint.
func (a *Adapter) GetOfferDetails(ctx context.Context, offerID string) (*domain.NormalizedOffer, error) {
	o, err := a.CachedOffer(ctx, offerID)
	if err != nil {
		a.LogFailure("get_offer", err)
		return nil, err
	}
	return o, nil
}

// TestConnection treats any HTTP response as reachable; the partner has no health endpoint.
func (a *Adapter) TestConnection(ctx context.Context) domain.HealthProbeResult {
	return a.Probe(ctx, func(resp *base.Response, err error) (bool, string) {
		if resp == nil {
			return false, fmt.Sprintf("connection failed: %v", err)
		}
		return true, fmt.Sprintf("reachable: status %d", resp.StatusCode)
	})
}

// call posts payload and unwraps the response envelope into out.
func (a *Adapter) call(ctx context.Context, op, path string, payload, out any) error {
	req := base.Request{Op: op, Method: http.MethodPost, Path: path, Header: a.authHeader(), NoRetry: op == "book"}

	var env envelope
	resp, err := a.DoJSON(ctx, req, payload, &env)
	if err != nil {
		if resp != nil {
			if rejected := envelopeError(resp.Body); rejected != nil && errors.Is(err, domain.ErrProviderRejected) {
				return a.Err(op, domain.ErrProviderRejected, rejected).WithStatus(resp.StatusCode, rejected.Code)
			}
		}
		return err
	}
	if strings.EqualFold(env.Status, "error") {
		var cause error = errors.New("partner reported an error")
		code := ""
		if env.Error != nil {
			cause = env.Error
			code = env.Error.Code
		}
		return a.Err(op, domain.ErrProviderRejected, cause).WithStatus(resp.StatusCode, code)
	}
	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return a.Err(op, domain.ErrTransport, fmt.Errorf("decode data: %w", err))
		}
	}
	return nil
}

func (a *Adapter) authHeader() http.Header {
	h := http.Header{}
	h.Set("Authorization", "Bearer "+a.Settings.APIKey)
	h.Set(secretHeader, a.Settings.APISecret)
	return h
}

func (e *apiError) Error() string {
	if e.Code == "" {
		return e.Message
	}
	return e.Code + ": " + e.Message
}

// envelopeError extracts the partner's own error from a failed response body.
func envelopeError(body []byte) *apiError {
	var env envelope
	if json.Unmarshal(body, &env) != nil || env.Error == nil {
		return nil
	}
	return env.Error
}
