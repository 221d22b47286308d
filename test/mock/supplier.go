// Package mock provides test doubles for the supplier gateway.
// These doubles are designed for integration testing where we need
// configurable behavior (delays, errors, specific offers).
package mock

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/flight-search/flight-supplier-gateway/internal/domain"
)

// Supplier is a configurable implementation of domain.SupplierAdapter.
// It supports configurable delays, errors and offers for testing
// timeouts and partial failures.
type Supplier struct {
	code      string
	offers    []domain.NormalizedOffer
	err       error
	delay     time.Duration
	available bool
	probe     domain.HealthProbeResult

	mu          sync.Mutex
	searchCalls int
	seen        map[string]domain.NormalizedOffer
}

// NewSupplier creates an available supplier with the given code.
// The supplier is configured using the builder pattern methods.
func NewSupplier(code string) *Supplier {
	return &Supplier{
		code:      code,
		available: true,
		probe:     domain.HealthProbeResult{Success: true, Message: "ok"},
		seen:      make(map[string]domain.NormalizedOffer),
	}
}

// WithOffers configures the supplier to return the given offers.
func (s *Supplier) WithOffers(offers []domain.NormalizedOffer) *Supplier {
	s.offers = offers
	return s
}

// WithError configures the supplier to fail every search with err.
func (s *Supplier) WithError(err error) *Supplier {
	s.err = err
	return s
}

// WithDelay configures the supplier to wait d before answering a search.
func (s *Supplier) WithDelay(d time.Duration) *Supplier {
	s.delay = d
	return s
}

// WithAvailability sets what IsAvailable reports.
func (s *Supplier) WithAvailability(available bool) *Supplier {
	s.available = available
	return s
}

// WithProbe sets the TestConnection result.
func (s *Supplier) WithProbe(result domain.HealthProbeResult) *Supplier {
	s.probe = result
	return s
}

// Code returns the supplier code.
func (s *Supplier) Code() string {
	return s.code
}

// Search respects context cancellation, applies the configured delay,
// and returns the configured offers or error.
func (s *Supplier) Search(ctx context.Context, _ domain.SearchRequest) ([]domain.NormalizedOffer, error) {
	s.mu.Lock()
	s.searchCalls++
	s.mu.Unlock()

	if s.delay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(s.delay):
		}
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if s.err != nil {
		return nil, s.err
	}

	s.mu.Lock()
	for _, o := range s.offers {
		s.seen[o.ID] = o
	}
	s.mu.Unlock()
	return s.offers, nil
}

// GetOfferDetails returns an offer previously returned by Search.
func (s *Supplier) GetOfferDetails(_ context.Context, offerID string) (*domain.NormalizedOffer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.seen[offerID]
	if !ok {
		return nil, domain.NewSupplierError(s.code, "get_offer", domain.ErrOfferNotFound, nil)
	}
	return &o, nil
}

// TestConnection returns the configured probe result.
func (s *Supplier) TestConnection(context.Context) domain.HealthProbeResult {
	return s.probe
}

// IsAvailable reports the configured availability.
func (s *Supplier) IsAvailable() bool {
	return s.available
}

// SearchCalls returns the number of times Search was called.
func (s *Supplier) SearchCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.searchCalls
}

// Reset resets the call count to zero.
func (s *Supplier) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.searchCalls = 0
}

var _ domain.SupplierAdapter = (*Supplier)(nil)

// BookableSupplier is a Supplier that also books. Bookings succeed with a
// generated PNR unless an error is configured.
type BookableSupplier struct {
	*Supplier
	bookErr  error
	bookings []domain.BookingResult
}

// NewBookableSupplier creates a bookable supplier with the given code.
func NewBookableSupplier(code string) *BookableSupplier {
	return &BookableSupplier{Supplier: NewSupplier(code)}
}

// WithBookError configures the supplier to fail every booking with err.
func (s *BookableSupplier) WithBookError(err error) *BookableSupplier {
	s.bookErr = err
	return s
}

// Book records the booking and returns a confirmed result.
func (s *BookableSupplier) Book(ctx context.Context, offer domain.NormalizedOffer, passengers []domain.Passenger) (*domain.BookingResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.bookErr != nil {
		return nil, s.bookErr
	}

	result := domain.BookingResult{
		PNR:         fmt.Sprintf("%.6s", uuid.NewString()),
		OrderID:     uuid.NewString(),
		Status:      domain.BookingConfirmed,
		Supplier:    s.code,
		OfferID:     offer.ID,
		TotalAmount: offer.Price.Total,
		Currency:    offer.Price.Currency,
	}

	s.mu.Lock()
	s.bookings = append(s.bookings, result)
	s.mu.Unlock()
	return &result, nil
}

// Bookings returns the bookings made so far.
func (s *BookableSupplier) Bookings() []domain.BookingResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.BookingResult(nil), s.bookings...)
}

var _ domain.Bookable = (*BookableSupplier)(nil)

// SampleOffers returns count one-leg JFK-LHR offers for supplier. Prices start
// at basePrice and rise by 50 per offer; departures are two hours apart.
// Offers expire an hour from now.
func SampleOffers(supplier string, count int, basePrice float64) []domain.NormalizedOffer {
	offers := make([]domain.NormalizedOffer, count)
	baseTime := time.Date(2025, 12, 15, 8, 0, 0, 0, time.UTC)
	airline := supplierAirline(supplier)

	for i := range count {
		dep := baseTime.Add(time.Duration(i*2) * time.Hour)
		arr := dep.Add(7 * time.Hour)
		total := basePrice + float64(i*50)
		ref := fmt.Sprintf("ref%d", i+1)

		seg := domain.Segment{
			Departure:        domain.Location{AirportCode: "JFK", AirportName: "John F. Kennedy International", DateTime: dep},
			Arrival:          domain.Location{AirportCode: "LHR", AirportName: "London Heathrow", DateTime: arr},
			MarketingAirline: airline,
			OperatingAirline: airline,
			FlightNumber:     fmt.Sprintf("%s%d", airline.Code, 100+i),
			Cabin:            domain.CabinEconomy,
			DurationMinutes:  420,
			Baggage:          domain.BaggageAllowance{CabinKg: 7, CheckedKg: 23, CheckedPieces: 1},
		}

		offers[i] = domain.NormalizedOffer{
			ID:                domain.NewOfferID(supplier, ref, i),
			Supplier:          supplier,
			ReferenceID:       ref,
			Price:             domain.NewPrice(total*0.8, total*0.2, "USD", nil),
			Legs:              []domain.Leg{domain.NewLeg([]domain.Segment{seg}, 420)},
			ValidatingAirline: airline,
			SeatsAvailable:    9,
			Refundable:        i%2 == 0,
			ExpiresAt:         time.Now().Add(time.Hour),
		}
	}
	return offers
}

func supplierAirline(supplier string) domain.Airline {
	airlines := map[string]domain.Airline{
		"gds":     {Code: "BA", Name: "British Airways"},
		"ndc":     {Code: "AA", Name: "American Airlines"},
		"partner": {Code: "VS", Name: "Virgin Atlantic"},
		"local":   {Code: "DL", Name: "Delta Air Lines"},
	}
	if a, ok := airlines[supplier]; ok {
		return a
	}
	return domain.Airline{Code: "XX", Name: "Unknown Airline"}
}
