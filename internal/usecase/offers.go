package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/flight-search/flight-supplier-gateway/internal/domain"
	"github.com/flight-search/flight-supplier-gateway/internal/infrastructure/logger"
)

// publishTimeout bounds event publishing after a booking succeeded.
const publishTimeout = 5 * time.Second

// GetOffer implements SupplierManager.
func (m *supplierManager) GetOffer(ctx context.Context, offerID string) (*domain.NormalizedOffer, error) {
	a, err := m.resolve(offerID)
	if err != nil {
		return nil, err
	}
	return m.lookup(ctx, a, offerID)
}

// lookup fetches the offer and rejects it once past its expiry.
func (m *supplierManager) lookup(ctx context.Context, a domain.SupplierAdapter, offerID string) (*domain.NormalizedOffer, error) {
	offer, err := a.GetOfferDetails(ctx, offerID)
	if err != nil {
		return nil, err
	}
	if offer == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrOfferNotFound, offerID)
	}
	if offer.IsExpired(m.clock.Now()) {
		return nil, domain.NewSupplierError(a.Code(), "get_offer", domain.ErrOfferExpired,
			fmt.Errorf("offer %s expired at %s", offerID, offer.ExpiresAt.Format(time.RFC3339)))
	}
	return offer, nil
}

// PriceOffer implements SupplierManager. Suppliers without price confirmation
// return the quoted offer unchanged.
func (m *supplierManager) PriceOffer(ctx context.Context, offerID string) (*domain.PricingResult, error) {
	a, err := m.resolve(offerID)
	if err != nil {
		return nil, err
	}
	offer, err := m.lookup(ctx, a, offerID)
	if err != nil {
		return nil, err
	}

	confirmer, ok := a.(domain.PriceConfirmer)
	if !ok {
		return &domain.PricingResult{Offer: *offer, PreviousTotal: offer.Price.Total}, nil
	}
	if !a.IsAvailable() {
		return nil, unavailable(a.Code(), "price")
	}
	return confirmer.PriceOffer(ctx, *offer)
}

// Book implements SupplierManager. A failed publish is logged and never fails the booking.
func (m *supplierManager) Book(ctx context.Context, offerID string, passengers []domain.Passenger) (*domain.BookingResult, error) {
	if err := validatePassengers(passengers); err != nil {
		return nil, err
	}
	a, err := m.resolve(offerID)
	if err != nil {
		return nil, err
	}
	bookable, ok := a.(domain.Bookable)
	if !ok {
		return nil, domain.NewSupplierError(a.Code(), "book", domain.ErrNotBookable, nil)
	}
	if !a.IsAvailable() {
		return nil, unavailable(a.Code(), "book")
	}

	ctx, cancel := context.WithTimeout(ctx, m.cfg.BookingTimeout)
	defer cancel()

	offer, err := m.lookup(ctx, a, offerID)
	if err != nil {
		return nil, err
	}

	result, err := bookable.Book(ctx, *offer, passengers)
	if err != nil {
		return nil, err
	}

	m.log.Info().
		Str(logger.FieldSupplier, a.Code()).
		Str(logger.FieldOfferID, offerID).
		Str("pnr", result.PNR).
		Str("status", string(result.Status)).
		Bool("simulated", result.Simulated).
		Msg("Booking created")

	m.publish(ctx, *result, len(passengers))
	return result, nil
}

func (m *supplierManager) publish(ctx context.Context, result domain.BookingResult, passengers int) {
	if m.publisher == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	event := domain.NewBookingEvent(uuid.NewString(), m.clock.Now(), result, passengers)
	if err := m.publisher.PublishBooking(ctx, event); err != nil {
		m.log.Error().
			Err(err).
			Str(logger.FieldSupplier, result.Supplier).
			Str("pnr", result.PNR).
			Msg("Failed to publish booking event")
	}
}

// SeatMap implements SupplierManager. The offer must still resolve even when
// the supplier has no seat maps.
func (m *supplierManager) SeatMap(ctx context.Context, offerID string) (*domain.SeatMapResult, error) {
	a, err := m.resolve(offerID)
	if err != nil {
		return nil, err
	}
	capable, ok := a.(domain.SeatMapCapable)
	if !ok {
		if _, err := m.lookup(ctx, a, offerID); err != nil {
			return nil, err
		}
		return domain.UnsupportedSeatMap(offerID), nil
	}
	return capable.GetSeatMap(ctx, offerID)
}

func unavailable(code, op string) error {
	return domain.NewSupplierError(code, op, domain.ErrSupplierUnavailable, errors.New("supplier is inactive or unhealthy"))
}

// validatePassengers applies the same party rules as a search.
func validatePassengers(passengers []domain.Passenger) error {
	if len(passengers) == 0 {
		return fmt.Errorf("%w: at least one passenger is required", domain.ErrInvalidRequest)
	}
	counts := map[domain.PassengerType]int{}
	for _, p := range passengers {
		counts[p.Type]++
	}
	if counts[domain.PassengerAdult] < 1 {
		return fmt.Errorf("%w: at least one adult is required", domain.ErrInvalidRequest)
	}
	if counts[domain.PassengerInfant] > counts[domain.PassengerAdult] {
		return fmt.Errorf("%w: each infant must travel with an adult", domain.ErrInvalidRequest)
	}
	if counts[domain.PassengerAdult]+counts[domain.PassengerChild] > domain.MaxBookableSeats {
		return fmt.Errorf("%w: seated passengers cannot exceed %d", domain.ErrInvalidRequest, domain.MaxBookableSeats)
	}
	return nil
}
