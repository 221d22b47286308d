// Package local exposes the operator's own flight inventory as a supplier so
// its flights merge with external results.
package local

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/flight-search/flight-supplier-gateway/internal/adapter/supplier/base"
	"github.com/flight-search/flight-supplier-gateway/internal/config"
	"github.com/flight-search/flight-supplier-gateway/internal/domain"
	"github.com/flight-search/flight-supplier-gateway/internal/infrastructure/timeutil"
	"github.com/flight-search/flight-supplier-gateway/internal/repository"
)

// Code is the supplier code and offer id prefix of the local inventory.
const Code = config.SupplierLocal

// Inventory is the persisted flight store the adapter reads and books against.
type Inventory interface {
	Search(ctx context.Context, q repository.FlightQuery) ([]repository.Flight, error)
	FindByID(ctx context.Context, id uint) (*repository.Flight, error)
	ReserveSeats(ctx context.Context, id uint, n int) error
	Ping(ctx context.Context) error
}

// Adapter serves searches and bookings from the local flight table.
type Adapter struct {
	*base.Base
	inventory Inventory
}

// Compile-time interface checks.
var (
	_ domain.SupplierAdapter = (*Adapter)(nil)
	_ domain.Bookable        = (*Adapter)(nil)
)

// NewAdapter creates the local inventory adapter.
func NewAdapter(settings config.SupplierSettings, inventory Inventory, deps base.Deps) *Adapter {
	settings.Code = Code
	return &Adapter{
		Base:      base.New(settings, deps),
		inventory: inventory,
	}
}

// Search returns one single-leg offer per matching scheduled flight.
// Round-trip requests are answered with outbound offers only.
func (a *Adapter) Search(ctx context.Context, req domain.SearchRequest) ([]domain.NormalizedOffer, error) {
	day, err := time.Parse(domain.DateLayout, req.DepartureDate)
	if err != nil {
		return nil, a.Err("search", domain.ErrInvalidRequest, err)
	}

	q := repository.FlightQuery{
		Origin:      req.Origin,
		Destination: req.Destination,
		DepartFrom:  timeutil.StartOfDay(day),
		DepartTo:    timeutil.EndOfDay(day),
		MinSeats:    req.SeatedPassengers(),
	}
	if maxPrice, ok := req.FilterFloat(domain.FilterMaxPrice); ok {
		q.MaxPrice = maxPrice
	}
	if airline, ok := req.Filter(domain.FilterAirline); ok {
		q.Airline = airline
	}

	flights, err := a.inventory.Search(ctx, q)
	if err != nil {
		err = a.Err("search", domain.ErrTransport, err)
		a.MarkUnhealthy(ctx, err)
		a.LogFailure("search", err)
		return nil, err
	}
	a.MarkHealthy(ctx)

	pax := paxFromRequest(req)
	expires := a.OfferExpiry()
	offers := make([]domain.NormalizedOffer, 0, len(flights))
	for i, f := range flights {
		offers = append(offers, normalize(f, pax, i, expires))
	}

	a.Log.Debug().
		Str("route", req.Origin+"-"+req.Destination).
		Int("offers", len(offers)).
		Msg("Local inventory search completed")
	return offers, nil
}

// GetOfferDetails re-reads the flight row. The inventory is authoritative so no
// cache is involved; the expiry comes from the offer id, fixed at search time.
func (a *Adapter) GetOfferDetails(ctx context.Context, offerID string) (*domain.NormalizedOffer, error) {
	ref, err := parseOfferID(offerID)
	if err != nil {
		return nil, err
	}

	f, err := a.inventory.FindByID(ctx, ref.FlightID)
	if errors.Is(err, repository.ErrFlightNotFound) {
		return nil, domain.ErrOfferNotFound
	}
	if err != nil {
		return nil, a.Err("get_offer", domain.ErrTransport, err)
	}
	if f.Status != repository.FlightScheduled {
		return nil, domain.ErrOfferNotFound
	}

	offer := normalize(*f, ref.Pax, ref.Index, ref.ExpiresAt)
	return &offer, nil
}

// Book reserves one seat per seated passenger and issues a local PNR.
func (a *Adapter) Book(ctx context.Context, offer domain.NormalizedOffer, passengers []domain.Passenger) (*domain.BookingResult, error) {
	ref, err := parseOfferID(offer.ID)
	if err != nil {
		return nil, err
	}

	seats := 0
	for _, p := range passengers {
		if p.Type != domain.PassengerInfant {
			seats++
		}
	}
	if seats == 0 {
		return nil, a.Err("book", domain.ErrInvalidRequest, errors.New("at least one seated passenger is required"))
	}

	err = a.inventory.ReserveSeats(ctx, ref.FlightID, seats)
	switch {
	case errors.Is(err, repository.ErrFlightNotFound):
		return nil, a.Err("book", domain.ErrOfferNotFound, err)
	case errors.Is(err, repository.ErrInsufficientSeats):
		return nil, a.Err("book", domain.ErrProviderRejected, err)
	case err != nil:
		err = a.Err("book", domain.ErrTransport, err)
		a.LogFailure("book", err)
		return nil, err
	}

	result := &domain.BookingResult{
		PNR:         newPNR(),
		OrderID:     "LOC-" + uuid.NewString(),
		Status:      domain.BookingConfirmed,
		Supplier:    Code,
		OfferID:     offer.ID,
		TotalAmount: offer.Price.Total,
		Currency:    offer.Price.Currency,
	}
	a.Log.Info().
		Str("offer_id", offer.ID).
		Str("pnr", result.PNR).
		Int("seats", seats).
		Msg("Local booking confirmed")
	return result, nil
}

// TestConnection pings the inventory database.
func (a *Adapter) TestConnection(ctx context.Context) domain.HealthProbeResult {
	start := time.Now()
	if err := a.inventory.Ping(ctx); err != nil {
		return a.Record(ctx, false, fmt.Sprintf("database unreachable: %v", err), start)
	}
	return a.Record(ctx, true, "database reachable", start)
}

// newPNR derives a six character record locator from a random uuid.
func newPNR() string {
	id := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return id[:6]
}
