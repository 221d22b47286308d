package domain

import (
	"encoding/json"
	"time"
)

// Passenger is an internal traveler record handed to Book.
// Document and contact fields may be incomplete at booking time.
type Passenger struct {
	Type        PassengerType `json:"type" validate:"required,oneof=ADT CHD INF"`
	Title       string        `json:"title,omitempty" validate:"omitempty,oneof=mr mrs ms miss dr"`
	FirstName   string        `json:"firstName" validate:"required,max=64"`
	LastName    string        `json:"lastName" validate:"required,max=64"`
	Gender      string        `json:"gender,omitempty" validate:"omitempty,oneof=male female"`
	DateOfBirth *time.Time    `json:"dateOfBirth,omitempty"`
	Email       string        `json:"email,omitempty" validate:"omitempty,email"`
	Phone       string        `json:"phone,omitempty" validate:"omitempty,max=20"`

	// CountryCallingCode is the phone prefix without "+" (e.g., "44")
	CountryCallingCode string `json:"countryCallingCode,omitempty"`

	Nationality string `json:"nationality,omitempty" validate:"omitempty,len=2"`

	// Travel document (usually a passport)
	DocumentType           string     `json:"documentType,omitempty"`
	DocumentNumber         string     `json:"documentNumber,omitempty"`
	DocumentExpiry         *time.Time `json:"documentExpiry,omitempty"`
	DocumentIssuingCountry string     `json:"documentIssuingCountry,omitempty" validate:"omitempty,len=2"`
}

// FullName returns "First Last".
func (p Passenger) FullName() string {
	return p.FirstName + " " + p.LastName
}

// PricingResult is the outcome of re-validating an offer's price with its supplier.
type PricingResult struct {
	// Offer is the offer carrying the confirmed price
	Offer NormalizedOffer `json:"offer"`

	// PriceChanged reports whether the confirmed total differs from the quoted one
	PriceChanged bool `json:"priceChanged"`

	// PreviousTotal is the quoted total before confirmation
	PreviousTotal float64 `json:"previousTotal"`

	// PricedRaw is the supplier's priced payload; Book prefers it over the search payload
	PricedRaw json.RawMessage `json:"-"`
}

// BookingStatus is the canonical state of a created booking.
type BookingStatus string

// Booking states.
const (
	BookingConfirmed BookingStatus = "confirmed"
	BookingOnHold    BookingStatus = "on_hold"
	BookingPending   BookingStatus = "pending"
)

// BookingResult is the canonical result of Book.
type BookingResult struct {
	// PNR is the airline booking reference
	PNR string `json:"pnr"`

	// OrderID is the supplier's order identifier
	OrderID string `json:"orderId"`

	Status   BookingStatus `json:"status"`
	Supplier string        `json:"supplier"`
	OfferID  string        `json:"offerId"`

	TotalAmount float64 `json:"totalAmount"`
	Currency    string  `json:"currency"`

	// PaymentRequiredBy is set for held bookings that must be paid before a deadline
	PaymentRequiredBy *time.Time `json:"paymentRequiredBy,omitempty"`

	// Simulated marks a synthetic booking produced in a non-production sandbox
	Simulated bool `json:"simulated"`

	RawResponse json.RawMessage `json:"-"`
}

// SeatPosition is the seat's position within its row.
type SeatPosition string

// Seat positions.
const (
	SeatWindow SeatPosition = "window"
	SeatAisle  SeatPosition = "aisle"
	SeatMiddle SeatPosition = "middle"
)

// Seat characteristics.
const (
	SeatExtraLegroom = "extra_legroom"
	SeatExitRow      = "exit_row"
	SeatChargeable   = "chargeable"
	SeatBassinet     = "bassinet"
)

// Seat is one flattened seat record.
type Seat struct {
	Number          string       `json:"number"`
	Row             int          `json:"row"`
	Column          string       `json:"column"`
	Available       bool         `json:"available"`
	Class           CabinClass   `json:"class"`
	Position        SeatPosition `json:"position,omitempty"`
	PriceDelta      float64      `json:"priceDelta"`
	Currency        string       `json:"currency,omitempty"`
	Characteristics []string     `json:"characteristics"`
}

// SegmentSeatMap is the seat layout of one segment.
type SegmentSeatMap struct {
	SegmentID    string `json:"segmentId"`
	FlightNumber string `json:"flightNumber,omitempty"`
	Seats        []Seat `json:"seats"`
}

// SeatMapResult is returned by seat map lookups. Supported is false for
// suppliers that cannot provide seat selection; that is not an error.
type SeatMapResult struct {
	OfferID   string           `json:"offerId"`
	Supported bool             `json:"supported"`
	SeatMaps  []SegmentSeatMap `json:"seatMaps"`
}

// UnsupportedSeatMap returns the well-defined "unsupported" seat map result.
func UnsupportedSeatMap(offerID string) *SeatMapResult {
	return &SeatMapResult{OfferID: offerID, Supported: false, SeatMaps: []SegmentSeatMap{}}
}

// HealthProbeResult is the outcome of a lightweight connectivity probe.
type HealthProbeResult struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	LatencyMs int64  `json:"latencyMs"`
}

// SupplierHealth summarizes one adapter for health reporting.
type SupplierHealth struct {
	Supplier  string            `json:"supplier"`
	Available bool              `json:"available"`
	Probe     HealthProbeResult `json:"probe"`
}
