package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// DateLayout is the layout for search dates (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// Well-known filter keys understood by the adapters and the manager.
const (
	FilterMaxPrice = "max_price"
	FilterAirline  = "airline"
)

// SearchRequest defines one flight search query. It is immutable once built.
type SearchRequest struct {
	// Origin is the IATA code of the departure airport (e.g., "JFK")
	Origin string `json:"origin"`

	// Destination is the IATA code of the arrival airport (e.g., "LHR")
	Destination string `json:"destination"`

	// DepartureDate is the outbound date in YYYY-MM-DD format
	DepartureDate string `json:"departureDate"`

	// ReturnDate is the optional return date in YYYY-MM-DD format
	ReturnDate string `json:"returnDate,omitempty"`

	Adults   int `json:"adults"`
	Children int `json:"children"`
	Infants  int `json:"infants"`

	// Cabin is the requested travel class (default: economy)
	Cabin CabinClass `json:"cabin,omitempty"`

	// Filters holds optional supplier-side filters (e.g., "max_price", "airline")
	Filters map[string]string `json:"filters,omitempty"`
}

// airportCodeRegex matches valid IATA airport codes (3 uppercase letters).
var airportCodeRegex = regexp.MustCompile(`^[A-Z]{3}$`)

// Validate checks the search request.
// Returns a wrapped ErrInvalidRequest error if validation fails.
func (s *SearchRequest) Validate() error {
	if !airportCodeRegex.MatchString(s.Origin) {
		return fmt.Errorf("%w: origin must be a valid 3-letter IATA code, got %q", ErrInvalidRequest, s.Origin)
	}
	if !airportCodeRegex.MatchString(s.Destination) {
		return fmt.Errorf("%w: destination must be a valid 3-letter IATA code, got %q", ErrInvalidRequest, s.Destination)
	}
	if s.Origin == s.Destination {
		return fmt.Errorf("%w: origin and destination must be different", ErrInvalidRequest)
	}

	departure, err := time.Parse(DateLayout, s.DepartureDate)
	if err != nil {
		return fmt.Errorf("%w: departureDate must be in YYYY-MM-DD format, got %q", ErrInvalidRequest, s.DepartureDate)
	}
	if s.ReturnDate != "" {
		ret, err := time.Parse(DateLayout, s.ReturnDate)
		if err != nil {
			return fmt.Errorf("%w: returnDate must be in YYYY-MM-DD format, got %q", ErrInvalidRequest, s.ReturnDate)
		}
		if ret.Before(departure) {
			return fmt.Errorf("%w: returnDate must not be before departureDate", ErrInvalidRequest)
		}
	}

	if s.Adults < 1 {
		return fmt.Errorf("%w: at least one adult is required", ErrInvalidRequest)
	}
	if s.Children < 0 || s.Infants < 0 {
		return fmt.Errorf("%w: passenger counts cannot be negative", ErrInvalidRequest)
	}
	if s.Adults+s.Children > MaxBookableSeats {
		return fmt.Errorf("%w: seated passengers cannot exceed %d", ErrInvalidRequest, MaxBookableSeats)
	}
	if s.Infants > s.Adults {
		return fmt.Errorf("%w: each infant must travel with an adult", ErrInvalidRequest)
	}

	if s.Cabin != "" && !s.Cabin.IsValid() {
		return fmt.Errorf("%w: cabin must be one of: economy, premium_economy, business, first; got %q", ErrInvalidRequest, s.Cabin)
	}

	return nil
}

// SetDefaults applies default values to empty optional fields.
func (s *SearchRequest) SetDefaults() {
	if s.Adults == 0 && s.Children == 0 && s.Infants == 0 {
		s.Adults = 1
	}
	if s.Cabin == "" {
		s.Cabin = CabinEconomy
	}
}

// IsRoundTrip reports whether a return date was requested.
func (s SearchRequest) IsRoundTrip() bool {
	return s.ReturnDate != ""
}

// SeatedPassengers returns the number of passengers that need a seat.
func (s SearchRequest) SeatedPassengers() int {
	return s.Adults + s.Children
}

// TotalPassengers returns the number of travelers including lap infants.
func (s SearchRequest) TotalPassengers() int {
	return s.Adults + s.Children + s.Infants
}

// Filter returns a string filter value.
func (s SearchRequest) Filter(key string) (string, bool) {
	v, ok := s.Filters[key]
	return v, ok && v != ""
}

// FilterFloat returns a numeric filter value. Unparseable values are ignored.
func (s SearchRequest) FilterFloat(key string) (float64, bool) {
	v, ok := s.Filter(key)
	if !ok {
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
