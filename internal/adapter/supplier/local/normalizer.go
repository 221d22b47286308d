package local

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/flight-search/flight-supplier-gateway/internal/domain"
	"github.com/flight-search/flight-supplier-gateway/internal/repository"
)

// Fare ratios applied to the adult base price, and the flat tax estimate.
const (
	ChildFareRatio  = 0.75
	InfantFareRatio = 0.10
	TaxRate         = 0.12
)

// passengerMix is the party an offer was priced for.
type passengerMix struct {
	Adults   int
	Children int
	Infants  int
}

func paxFromRequest(req domain.SearchRequest) passengerMix {
	return passengerMix{Adults: req.Adults, Children: req.Children, Infants: req.Infants}
}

// referenceID encodes the flight, the passenger mix and the offer expiry so
// details re-price identically and expire when the search result does.
func referenceID(flightID uint, pax passengerMix, expiresAt time.Time) string {
	return fmt.Sprintf("%d-%d-%d-%d-%d", flightID, pax.Adults, pax.Children, pax.Infants, expiresAt.Unix())
}

// offerExpiry truncates an expiry to the second precision the reference id carries.
func offerExpiry(t time.Time) time.Time {
	return time.Unix(t.Unix(), 0).UTC()
}

// localRef is a decoded local offer id.
type localRef struct {
	FlightID  uint
	Pax       passengerMix
	ExpiresAt time.Time
	Index     int
}

// parseOfferID reverses NewOfferID for local offers.
func parseOfferID(offerID string) (localRef, error) {
	supplier, ref, index, err := domain.ParseOfferID(offerID)
	if err != nil {
		return localRef{}, err
	}
	if supplier != Code {
		return localRef{}, fmt.Errorf("%w: offer %q does not belong to %s", domain.ErrInvalidRequest, offerID, Code)
	}

	malformed := fmt.Errorf("%w: malformed local reference %q", domain.ErrInvalidRequest, ref)
	parts := strings.Split(ref, "-")
	if len(parts) != 5 {
		return localRef{}, malformed
	}
	nums := make([]int64, len(parts))
	for i, p := range parts {
		n, err := strconv.ParseInt(p, 10, 64)
		if err != nil || n < 0 {
			return localRef{}, malformed
		}
		nums[i] = n
	}
	if nums[0] == 0 || nums[1] == 0 || nums[4] == 0 {
		return localRef{}, malformed
	}

	return localRef{
		FlightID:  uint(nums[0]),
		Pax:       passengerMix{Adults: int(nums[1]), Children: int(nums[2]), Infants: int(nums[3])},
		ExpiresAt: time.Unix(nums[4], 0).UTC(),
		Index:     index,
	}, nil
}

// price derives the fare from the per-adult base price.
func price(basePrice float64, currency string, pax passengerMix) domain.Price {
	breakdown := make([]domain.FareBreakdown, 0, 3)
	var baseTotal, taxTotal float64

	add := func(pt domain.PassengerType, count int, ratio float64) {
		if count <= 0 {
			return
		}
		base := domain.RoundMoney(basePrice * ratio)
		tax := domain.RoundMoney(base * TaxRate)
		breakdown = append(breakdown, domain.NewFareBreakdown(pt, count, base, tax))
		baseTotal += base * float64(count)
		taxTotal += tax * float64(count)
	}
	add(domain.PassengerAdult, pax.Adults, 1)
	add(domain.PassengerChild, pax.Children, ChildFareRatio)
	add(domain.PassengerInfant, pax.Infants, InfantFareRatio)

	p := domain.NewPrice(baseTotal, taxTotal, currency, breakdown)
	p.Guaranteed = true
	return p
}

// normalize converts one inventory row to a single-segment, zero-stop offer.
func normalize(f repository.Flight, pax passengerMix, index int, expiresAt time.Time) domain.NormalizedOffer {
	cabin := domain.ParseCabinClass(f.CabinClass)
	airline := domain.Airline{Code: f.AirlineCode, Name: f.AirlineName}

	duration := f.DurationMinutes
	if duration <= 0 {
		duration = int(f.ArrivalTime.Sub(f.DepartureTime).Minutes())
	}

	seats := f.SeatsAvailable
	if seats > domain.MaxBookableSeats {
		seats = domain.MaxBookableSeats
	}

	segment := domain.Segment{
		ID:               strconv.FormatUint(uint64(f.ID), 10),
		Departure:        domain.Location{AirportCode: f.Origin, DateTime: f.DepartureTime.UTC()},
		Arrival:          domain.Location{AirportCode: f.Destination, DateTime: f.ArrivalTime.UTC()},
		MarketingAirline: airline,
		OperatingAirline: airline,
		FlightNumber:     f.FlightNumber,
		Cabin:            cabin,
		DurationMinutes:  duration,
		Aircraft:         f.Aircraft,
		Baggage: domain.BaggageAllowance{
			CabinKg:   f.BaggageCabinKg,
			CheckedKg: f.BaggageCheckedKg,
		},
		SeatCapacity: f.SeatCapacity,
	}
	if f.BaggageCheckedKg > 0 {
		segment.Baggage.CheckedPieces = 1
	}

	expiresAt = offerExpiry(expiresAt)
	ref := referenceID(f.ID, pax, expiresAt)
	return domain.NormalizedOffer{
		ID:                domain.NewOfferID(Code, ref, index),
		Supplier:          Code,
		ReferenceID:       ref,
		Price:             price(f.BasePrice, f.Currency, pax),
		Legs:              []domain.Leg{domain.NewLeg([]domain.Segment{segment}, duration)},
		ValidatingAirline: airline,
		SeatsAvailable:    seats,
		Refundable:        true,
		OnHoldable:        true,
		ExpiresAt:         expiresAt,
	}
}
