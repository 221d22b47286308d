// Package domain contains the canonical offer model shared by every flight supplier.
// These types are supplier-agnostic: adapters translate their wire formats into them,
// and the rest of the application never sees a supplier-specific shape.
package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// MaxBookableSeats caps the seat count advertised on a single offer.
const MaxBookableSeats = 9

// CabinClass is the normalized travel class.
type CabinClass string

// Supported cabin classes.
const (
	CabinEconomy        CabinClass = "economy"
	CabinPremiumEconomy CabinClass = "premium_economy"
	CabinBusiness       CabinClass = "business"
	CabinFirst          CabinClass = "first"
)

// IsValid reports whether the cabin is one of the supported classes.
func (c CabinClass) IsValid() bool {
	switch c {
	case CabinEconomy, CabinPremiumEconomy, CabinBusiness, CabinFirst:
		return true
	default:
		return false
	}
}

// ParseCabinClass normalizes free-form supplier cabin names.
// Unknown values fall back to economy.
func ParseCabinClass(s string) CabinClass {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "premium_economy", "premium economy", "premium", "w":
		return CabinPremiumEconomy
	case "business", "biz", "j", "c":
		return CabinBusiness
	case "first", "f":
		return CabinFirst
	default:
		return CabinEconomy
	}
}

// Location is one end of a segment or leg.
type Location struct {
	// AirportCode is the IATA airport code (e.g., "LHR")
	AirportCode string `json:"airportCode"`

	// AirportName is the full airport name, when the supplier provides it
	AirportName string `json:"airportName,omitempty"`

	// CityCode is the IATA city code, when known
	CityCode string `json:"cityCode,omitempty"`

	// Terminal is the terminal identifier (e.g., "5")
	Terminal string `json:"terminal,omitempty"`

	// DateTime is the scheduled departure or arrival time
	DateTime time.Time `json:"dateTime"`
}

// Airline identifies a carrier.
type Airline struct {
	// Code is the IATA airline code (e.g., "BA")
	Code string `json:"code"`

	// Name is the full airline name
	Name string `json:"name,omitempty"`

	// Logo is an optional URL to the airline's logo image
	Logo string `json:"logo,omitempty"`
}

// BaggageAllowance describes the included baggage for a segment.
type BaggageAllowance struct {
	CabinKg       int `json:"cabinKg"`
	CheckedKg     int `json:"checkedKg"`
	CheckedPieces int `json:"checkedPieces"`
}

// Segment is one physical flight number within a leg.
type Segment struct {
	// ID is the supplier's segment identifier, when it has one
	ID string `json:"id,omitempty"`

	Departure Location `json:"departure"`
	Arrival   Location `json:"arrival"`

	// MarketingAirline sells the flight; OperatingAirline flies it
	MarketingAirline Airline `json:"marketingAirline"`
	OperatingAirline Airline `json:"operatingAirline"`

	// FlightNumber is the marketing flight number including carrier (e.g., "BA117")
	FlightNumber string `json:"flightNumber"`

	Cabin           CabinClass       `json:"cabin"`
	DurationMinutes int              `json:"durationMinutes"`
	Aircraft        string           `json:"aircraft,omitempty"`
	Baggage         BaggageAllowance `json:"baggage"`
	BookingClass    string           `json:"bookingClass,omitempty"`
	SeatCapacity    int              `json:"seatCapacity,omitempty"`
}

// Leg is one directional flight (outbound or return).
type Leg struct {
	Departure       Location   `json:"departure"`
	Arrival         Location   `json:"arrival"`
	DurationMinutes int        `json:"durationMinutes"`
	Stops           int        `json:"stops"`
	Cabin           CabinClass `json:"cabin"`
	Segments        []Segment  `json:"segments"`
}

// NewLeg derives the leg endpoints and stop count from its ordered segments.
// If durationMinutes is zero it is computed from the first departure and last arrival.
func NewLeg(segments []Segment, durationMinutes int) Leg {
	if len(segments) == 0 {
		return Leg{Segments: []Segment{}}
	}

	first, last := segments[0], segments[len(segments)-1]
	if durationMinutes <= 0 {
		durationMinutes = int(last.Arrival.DateTime.Sub(first.Departure.DateTime).Minutes())
	}

	return Leg{
		Departure:       first.Departure,
		Arrival:         last.Arrival,
		DurationMinutes: durationMinutes,
		Stops:           len(segments) - 1,
		Cabin:           first.Cabin,
		Segments:        segments,
	}
}

// FormattedDuration renders the leg duration as "Xh Ym".
func (l Leg) FormattedDuration() string {
	return FormatDuration(l.DurationMinutes)
}

// NormalizedOffer is one bookable itinerary and price from one supplier.
// It is the aggregate root of the canonical model and is never mutated after creation.
type NormalizedOffer struct {
	// ID is globally unique: {supplier}_{referenceId}_{index}
	ID string `json:"id"`

	// Supplier is the code of the adapter that produced this offer
	Supplier string `json:"supplier"`

	// ReferenceID is the supplier-side reference used to build ID
	ReferenceID string `json:"referenceId"`

	Price Price `json:"price"`

	// Legs are ordered: outbound first, then return
	Legs []Leg `json:"legs"`

	ValidatingAirline Airline `json:"validatingAirline"`

	// SeatsAvailable is zero when the supplier does not report a count
	SeatsAvailable int  `json:"seatsAvailable"`
	Refundable     bool `json:"refundable"`

	// OnHoldable reports whether the offer can be reserved without immediate payment
	OnHoldable bool `json:"onHoldable"`

	ExpiresAt time.Time `json:"expiresAt"`

	// Raw is the unmodified supplier payload. It is only needed for the
	// pricing/booking round trip and is never serialized to clients.
	Raw json.RawMessage `json:"-"`
}

// NewOfferID builds the globally unique offer identifier.
func NewOfferID(supplier, referenceID string, index int) string {
	return fmt.Sprintf("%s_%s_%d", supplier, referenceID, index)
}

// ParseOfferID splits an offer id into its supplier, reference and index parts.
// The reference part may itself contain underscores.
func ParseOfferID(id string) (supplier, referenceID string, index int, err error) {
	first := strings.Index(id, "_")
	last := strings.LastIndex(id, "_")
	if first <= 0 || last == first || last == len(id)-1 {
		return "", "", 0, fmt.Errorf("%w: malformed offer id %q", ErrInvalidRequest, id)
	}

	index, convErr := strconv.Atoi(id[last+1:])
	if convErr != nil || index < 0 {
		return "", "", 0, fmt.Errorf("%w: malformed offer index in %q", ErrInvalidRequest, id)
	}
	return id[:first], id[first+1 : last], index, nil
}

// IsRoundTrip reports whether the offer has a return leg.
func (o *NormalizedOffer) IsRoundTrip() bool {
	return len(o.Legs) > 1
}

// IsExpired reports whether the offer has passed its expiry time.
func (o *NormalizedOffer) IsExpired(now time.Time) bool {
	return !o.ExpiresAt.IsZero() && now.After(o.ExpiresAt)
}

// TotalStops returns the number of stops over all legs.
func (o *NormalizedOffer) TotalStops() int {
	stops := 0
	for _, l := range o.Legs {
		stops += l.Stops
	}
	return stops
}

// TotalDurationMinutes returns the summed duration of all legs.
func (o *NormalizedOffer) TotalDurationMinutes() int {
	total := 0
	for _, l := range o.Legs {
		total += l.DurationMinutes
	}
	return total
}

// DepartureTime returns the departure time of the first leg.
func (o *NormalizedOffer) DepartureTime() time.Time {
	if len(o.Legs) == 0 {
		return time.Time{}
	}
	return o.Legs[0].Departure.DateTime
}

// WithRaw returns a copy of the offer carrying the given raw payload.
func (o NormalizedOffer) WithRaw(raw json.RawMessage) NormalizedOffer {
	o.Raw = raw
	return o
}

// FormatDuration formats minutes as "Xh Ym", "Xh" or "Ym".
func FormatDuration(totalMinutes int) string {
	hours := totalMinutes / 60
	mins := totalMinutes % 60

	switch {
	case hours > 0 && mins > 0:
		return fmt.Sprintf("%dh %dm", hours, mins)
	case hours > 0:
		return fmt.Sprintf("%dh", hours)
	default:
		return fmt.Sprintf("%dm", mins)
	}
}
