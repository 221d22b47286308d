package partner

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/flight-search/flight-supplier-gateway/internal/domain"
	"github.com/flight-search/flight-supplier-gateway/internal/infrastructure/timeutil"
)

// normalizeFlight converts one partner flight. The flight id is the reference.
func normalizeFlight(raw json.RawMessage, index int, expiresAt time.Time) (domain.NormalizedOffer, error) {
	var f flight
	if err := json.Unmarshal(raw, &f); err != nil {
		return domain.NormalizedOffer{}, fmt.Errorf("decode flight: %w", err)
	}
	if f.FlightID == "" {
		return domain.NormalizedOffer{}, errors.New("flight has no flight_id")
	}

	outbound, err := normalizeJourney(f.Outbound)
	if err != nil {
		return domain.NormalizedOffer{}, fmt.Errorf("flight %s outbound: %w", f.FlightID, err)
	}
	legs := []domain.Leg{outbound}
	if f.Inbound != nil && len(f.Inbound.Segments) > 0 {
		inbound, err := normalizeJourney(*f.Inbound)
		if err != nil {
			return domain.NormalizedOffer{}, fmt.Errorf("flight %s inbound: %w", f.FlightID, err)
		}
		legs = append(legs, inbound)
	}

	validating := domain.Airline{Code: f.ValidatingCarrier.Code, Name: f.ValidatingCarrier.Name}
	if validating.Code == "" {
		validating = outbound.Segments[0].MarketingAirline
	}

	seats := f.SeatsLeft
	if seats > domain.MaxBookableSeats {
		seats = domain.MaxBookableSeats
	}

	return domain.NormalizedOffer{
		ID:                domain.NewOfferID(Code, f.FlightID, index),
		Supplier:          Code,
		ReferenceID:       f.FlightID,
		Price:             normalizeFare(f.Fare),
		Legs:              legs,
		ValidatingAirline: validating,
		SeatsAvailable:    seats,
		Refundable:        f.Refundable,
		OnHoldable:        f.Holdable,
		ExpiresAt:         expiresAt,
		Raw:               raw,
	}, nil
}

// normalizeFare trusts the stated total; taxes absorb any rounding gap.
func normalizeFare(f fare) domain.Price {
	taxes := f.Taxes
	if f.Total > 0 && math.Abs(f.Base+f.Taxes-f.Total) > domain.PriceTolerance {
		taxes = f.Total - f.Base
	}
	return domain.NewPrice(f.Base, taxes, f.Currency, nil)
}

func normalizeJourney(j journey) (domain.Leg, error) {
	if len(j.Segments) == 0 {
		return domain.Leg{}, errors.New("no segments")
	}
	segments := make([]domain.Segment, 0, len(j.Segments))
	for _, s := range j.Segments {
		seg, err := normalizeSegment(s)
		if err != nil {
			return domain.Leg{}, err
		}
		segments = append(segments, seg)
	}
	return domain.NewLeg(segments, j.DurationMinutes), nil
}

// normalizeSegment reads local times in each airport's timezone unless they carry an offset.
func normalizeSegment(s segment) (domain.Segment, error) {
	dep, err := localTime(s.DepartureTime, s.From.Timezone)
	if err != nil {
		return domain.Segment{}, fmt.Errorf("segment %s departure: %w", s.FlightNumber, err)
	}
	arr, err := localTime(s.ArrivalTime, s.To.Timezone)
	if err != nil {
		return domain.Segment{}, fmt.Errorf("segment %s arrival: %w", s.FlightNumber, err)
	}

	duration := s.DurationMinutes
	if duration <= 0 {
		duration = int(arr.Sub(dep).Minutes())
	}

	marketing := domain.Airline{Code: s.Carrier.Code, Name: s.Carrier.Name}
	operating := marketing
	if s.OperatingCarrier != nil && s.OperatingCarrier.Code != "" {
		operating = domain.Airline{Code: s.OperatingCarrier.Code, Name: s.OperatingCarrier.Name}
	}

	return domain.Segment{
		Departure:        location(s.From, dep),
		Arrival:          location(s.To, arr),
		MarketingAirline: marketing,
		OperatingAirline: operating,
		FlightNumber:     s.FlightNumber,
		Cabin:            domain.ParseCabinClass(s.Cabin),
		DurationMinutes:  duration,
		Aircraft:         s.Aircraft,
		Baggage: domain.BaggageAllowance{
			CabinKg:       s.Baggage.CabinKg,
			CheckedKg:     s.Baggage.CheckedKg,
			CheckedPieces: s.Baggage.CheckedPieces,
		},
		BookingClass: s.BookingClass,
	}, nil
}

func localTime(value, timezone string) (time.Time, error) {
	loc, err := timeutil.GetLocation(timezone)
	if err != nil {
		return time.Time{}, err
	}
	return timeutil.ParseSupplierTime(value, loc)
}

func location(a airport, at time.Time) domain.Location {
	return domain.Location{
		AirportCode: a.Code,
		AirportName: a.Name,
		CityCode:    a.City,
		Terminal:    a.Terminal,
		DateTime:    at,
	}
}
