package domain

import (
	"math"
	"strings"
)

// PriceTolerance is the allowed difference when reconciling monetary totals.
const PriceTolerance = 0.01

// floatSlack absorbs binary floating point error on top of PriceTolerance.
const floatSlack = 1e-9

// PassengerType is the fare type of a traveler.
type PassengerType string

// Passenger fare types.
const (
	PassengerAdult  PassengerType = "ADT"
	PassengerChild  PassengerType = "CHD"
	PassengerInfant PassengerType = "INF"
)

// FareBreakdown is the per-person fare for one passenger type.
type FareBreakdown struct {
	PassengerType PassengerType `json:"passengerType"`
	Count         int           `json:"count"`
	BaseFare      float64       `json:"baseFare"`
	Taxes         float64       `json:"taxes"`
	TotalFare     float64       `json:"totalFare"`
}

// Price holds the monetary terms of an offer.
type Price struct {
	// Total is the amount payable for all passengers
	Total float64 `json:"total"`

	// BaseFare is the fare before taxes and fees
	BaseFare float64 `json:"baseFare"`

	// Taxes is the sum of taxes and fees
	Taxes float64 `json:"taxes"`

	// Currency is the ISO 4217 currency code (e.g., "USD")
	Currency string `json:"currency"`

	// CurrencySymbol is the display symbol for Currency (e.g., "$")
	CurrencySymbol string `json:"currencySymbol"`

	// DecimalPlaces is the number of minor-unit digits for Currency
	DecimalPlaces int `json:"decimalPlaces"`

	// Breakdown holds the per-passenger-type fares
	Breakdown []FareBreakdown `json:"breakdown"`

	// Guaranteed reports whether the supplier guarantees this price at booking time
	Guaranteed bool `json:"guaranteed"`
}

// NewPrice builds a price from base fare and taxes. Total is derived so the
// base + taxes invariant holds by construction.
func NewPrice(baseFare, taxes float64, currency string, breakdown []FareBreakdown) Price {
	code := strings.ToUpper(currency)
	return Price{
		Total:          RoundMoney(baseFare + taxes),
		BaseFare:       RoundMoney(baseFare),
		Taxes:          RoundMoney(taxes),
		Currency:       code,
		CurrencySymbol: CurrencySymbol(code),
		DecimalPlaces:  CurrencyDecimals(code),
		Breakdown:      breakdown,
	}
}

// NewFareBreakdown builds one per-type entry with the total derived from base and taxes.
func NewFareBreakdown(pt PassengerType, count int, baseFare, taxes float64) FareBreakdown {
	return FareBreakdown{
		PassengerType: pt,
		Count:         count,
		BaseFare:      RoundMoney(baseFare),
		Taxes:         RoundMoney(taxes),
		TotalFare:     RoundMoney(baseFare + taxes),
	}
}

// BreakdownTotal returns sum(TotalFare * Count) over the breakdown.
func (p Price) BreakdownTotal() float64 {
	var sum float64
	for _, b := range p.Breakdown {
		sum += b.TotalFare * float64(b.Count)
	}
	return RoundMoney(sum)
}

// Reconciles reports whether total equals base + taxes and, when a breakdown is
// present, whether the breakdown sums to the total, within PriceTolerance.
func (p Price) Reconciles() bool {
	if math.Abs(p.Total-(p.BaseFare+p.Taxes)) > PriceTolerance+floatSlack {
		return false
	}
	if len(p.Breakdown) == 0 {
		return true
	}
	return math.Abs(p.Total-p.BreakdownTotal()) <= PriceTolerance*float64(len(p.Breakdown))+floatSlack
}

// RoundMoney rounds to two decimal places.
func RoundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}

var currencySymbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
	"IDR": "Rp",
	"INR": "₹",
	"AED": "د.إ",
	"SGD": "S$",
	"AUD": "A$",
	"CAD": "C$",
}

// CurrencySymbol returns the display symbol for an ISO 4217 code, or the code itself.
func CurrencySymbol(code string) string {
	if s, ok := currencySymbols[strings.ToUpper(code)]; ok {
		return s
	}
	return strings.ToUpper(code)
}

// CurrencyDecimals returns the minor-unit digits for an ISO 4217 code.
func CurrencyDecimals(code string) int {
	switch strings.ToUpper(code) {
	case "JPY", "KRW", "IDR", "VND":
		return 0
	case "KWD", "BHD", "OMR":
		return 3
	default:
		return 2
	}
}
