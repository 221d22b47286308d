package partner

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/flight-search/flight-supplier-gateway/internal/adapter/supplier/base"
	"github.com/flight-search/flight-supplier-gateway/internal/domain"
)

// Book posts a booking for the flight behind the offer. Every call reaches the partner.
func (a *Adapter) Book(ctx context.Context, offer domain.NormalizedOffer, passengers []domain.Passenger) (*domain.BookingResult, error) {
	result, err := a.book(ctx, offer, passengers)
	a.Observe(ctx, err)
	if err != nil {
		a.LogFailure("book", err)
		return nil, err
	}
	return result, nil
}

func (a *Adapter) book(ctx context.Context, offer domain.NormalizedOffer, passengers []domain.Passenger) (*domain.BookingResult, error) {
	if len(passengers) == 0 {
		return nil, a.Err("book", domain.ErrInvalidRequest, errors.New("no passengers"))
	}
	_, flightID, _, err := domain.ParseOfferID(offer.ID)
	if err != nil {
		return nil, err
	}
	if _, err := a.CachedOffer(ctx, offer.ID); err != nil {
		return nil, err
	}

	now := a.Clock.Now()
	req := bookingRequest{
		FlightID:   flightID,
		Passengers: make([]bookingPassenger, 0, len(passengers)),
		Contact: contact{
			Email: base.ContactEmail(passengers),
			Phone: base.FirstNonEmpty(passengers[0].Phone, base.DefaultPhoneNumber),
		},
	}
	for _, p := range passengers {
		req.Passengers = append(req.Passengers, bookingPassenger{
			Type:        string(p.Type),
			FirstName:   p.FirstName,
			LastName:    p.LastName,
			DateOfBirth: base.BirthDate(p, now).Format(domain.DateLayout),
			Passport:    p.DocumentNumber,
			Nationality: strings.ToUpper(p.Nationality),
		})
	}

	var data bookingData
	if err := a.call(ctx, "book", bookingsPath, req, &data); err != nil {
		return nil, err
	}

	result := &domain.BookingResult{
		PNR:         data.PNR,
		OrderID:     data.BookingID,
		Status:      bookingStatus(data.Status),
		Supplier:    Code,
		OfferID:     offer.ID,
		TotalAmount: offer.Price.Total,
		Currency:    offer.Price.Currency,
	}
	if data.Total > 0 {
		result.TotalAmount = domain.RoundMoney(data.Total)
		result.Currency = strings.ToUpper(base.FirstNonEmpty(data.Currency, offer.Price.Currency))
	}
	if t, err := time.Parse(time.RFC3339, data.PayBy); err == nil {
		result.PaymentRequiredBy = &t
	}

	a.Log.Info().Str("offer_id", offer.ID).Str("pnr", result.PNR).Msg("Partner booking created")
	return result, nil
}

func bookingStatus(s string) domain.BookingStatus {
	switch strings.ToUpper(s) {
	case "CONFIRMED", "TICKETED":
		return domain.BookingConfirmed
	case "HOLD", "ON_HOLD":
		return domain.BookingOnHold
	default:
		return domain.BookingPending
	}
}
