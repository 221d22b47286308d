package http

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// SearchFlightsRequest represents the request body for flight search.
type SearchFlightsRequest struct {
	// Origin is the IATA code of the departure airport (e.g., "JFK")
	Origin string `json:"origin" validate:"required,len=3,alpha" example:"JFK"`

	// Destination is the IATA code of the arrival airport (e.g., "LHR")
	Destination string `json:"destination" validate:"required,len=3,alpha,nefield=Origin" example:"LHR"`

	// DepartureDate is the outbound date in YYYY-MM-DD format
	DepartureDate string `json:"departureDate" validate:"required,datetime=2006-01-02" example:"2025-12-15"`

	// ReturnDate is the optional return date in YYYY-MM-DD format
	ReturnDate string `json:"returnDate,omitempty" validate:"omitempty,datetime=2006-01-02" example:"2025-12-22"`

	Adults   int `json:"adults" validate:"gte=0,lte=9" example:"1"`
	Children int `json:"children" validate:"gte=0,lte=9" example:"0"`
	Infants  int `json:"infants" validate:"gte=0,lte=9" example:"0"`

	// Cabin is the travel class: economy, premium_economy, business or first
	Cabin string `json:"cabin,omitempty" validate:"omitempty,oneof=economy premium_economy business first" example:"economy"`

	// Filters contains optional filtering criteria
	Filters *FilterDTO `json:"filters,omitempty"`

	// SortBy specifies how to sort results: best, price, duration, departure
	SortBy string `json:"sortBy,omitempty" validate:"omitempty,oneof=best price duration departure" example:"best"`
}

// FilterDTO represents optional filters for flight search.
type FilterDTO struct {
	// MaxPrice drops offers whose total exceeds this amount
	MaxPrice *float64 `json:"maxPrice,omitempty" validate:"omitempty,gte=0" example:"750"`

	// MaxStops drops offers with more stops on any leg (0 = direct only)
	MaxStops *int `json:"maxStops,omitempty" validate:"omitempty,gte=0,lte=3" example:"1"`

	// Airlines keeps only offers from these airline codes
	Airlines []string `json:"airlines,omitempty" validate:"omitempty,dive,len=2,alphanum" example:"BA,AA"`

	RefundableOnly bool `json:"refundableOnly,omitempty"`
}

// Normalize upper-cases codes and lower-cases enum values before validation.
func (r *SearchFlightsRequest) Normalize() {
	r.Origin = strings.ToUpper(strings.TrimSpace(r.Origin))
	r.Destination = strings.ToUpper(strings.TrimSpace(r.Destination))
	r.DepartureDate = strings.TrimSpace(r.DepartureDate)
	r.ReturnDate = strings.TrimSpace(r.ReturnDate)
	r.Cabin = strings.ToLower(strings.TrimSpace(r.Cabin))
	r.SortBy = strings.ToLower(strings.TrimSpace(r.SortBy))
	if r.Filters != nil {
		for i, a := range r.Filters.Airlines {
			r.Filters.Airlines[i] = strings.ToUpper(strings.TrimSpace(a))
		}
	}
}

// BookOfferRequest is the request body for booking an offer.
type BookOfferRequest struct {
	Passengers []PassengerDTO `json:"passengers" validate:"required,min=1,max=9,dive"`
}

// PassengerDTO is one traveler in a booking request. Dates use YYYY-MM-DD.
type PassengerDTO struct {
	Type        string `json:"type" validate:"required,oneof=ADT CHD INF" example:"ADT"`
	Title       string `json:"title,omitempty" validate:"omitempty,oneof=mr mrs ms miss dr" example:"mr"`
	FirstName   string `json:"firstName" validate:"required,max=64" example:"John"`
	LastName    string `json:"lastName" validate:"required,max=64" example:"Smith"`
	Gender      string `json:"gender,omitempty" validate:"omitempty,oneof=male female" example:"male"`
	DateOfBirth string `json:"dateOfBirth,omitempty" validate:"omitempty,datetime=2006-01-02" example:"1985-04-12"`
	Email       string `json:"email,omitempty" validate:"omitempty,email" example:"john.smith@example.com"`
	Phone       string `json:"phone,omitempty" validate:"omitempty,max=20" example:"7700900123"`

	// CountryCallingCode is the phone prefix without "+" (e.g., "44")
	CountryCallingCode string `json:"countryCallingCode,omitempty" validate:"omitempty,numeric,max=4" example:"44"`

	Nationality string `json:"nationality,omitempty" validate:"omitempty,len=2,alpha" example:"GB"`

	DocumentType           string `json:"documentType,omitempty" validate:"omitempty,max=20" example:"passport"`
	DocumentNumber         string `json:"documentNumber,omitempty" validate:"omitempty,max=20" example:"123456789"`
	DocumentExpiry         string `json:"documentExpiry,omitempty" validate:"omitempty,datetime=2006-01-02" example:"2030-01-01"`
	DocumentIssuingCountry string `json:"documentIssuingCountry,omitempty" validate:"omitempty,len=2,alpha" example:"GB"`
}

// Normalize cleans up enum and code casing before validation.
func (r *BookOfferRequest) Normalize() {
	for i := range r.Passengers {
		p := &r.Passengers[i]
		p.Type = strings.ToUpper(strings.TrimSpace(p.Type))
		p.Title = strings.ToLower(strings.TrimSpace(p.Title))
		p.Gender = strings.ToLower(strings.TrimSpace(p.Gender))
		p.FirstName = strings.TrimSpace(p.FirstName)
		p.LastName = strings.TrimSpace(p.LastName)
		p.Email = strings.TrimSpace(p.Email)
		p.CountryCallingCode = strings.TrimPrefix(strings.TrimSpace(p.CountryCallingCode), "+")
		p.Nationality = strings.ToUpper(strings.TrimSpace(p.Nationality))
		p.DocumentIssuingCountry = strings.ToUpper(strings.TrimSpace(p.DocumentIssuingCountry))
	}
}

// newValidator returns a validator that reports JSON field names.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validationDetails flattens validator errors into field -> message.
// It returns nil when err is not a validation failure.
func validationDetails(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	details := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		details[fieldPath(fe.Namespace())] = fieldMessage(fe)
	}
	return details
}

// fieldPath drops the struct name from a namespace:
// "BookOfferRequest.passengers[0].firstName" becomes "passengers[0].firstName".
func fieldPath(namespace string) string {
	if i := strings.IndexByte(namespace, '.'); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "len":
		return fmt.Sprintf("must be exactly %s characters", fe.Param())
	case "alpha":
		return "must contain letters only"
	case "alphanum":
		return "must contain letters and digits only"
	case "numeric":
		return "must be numeric"
	case "nefield":
		return "must be different from origin"
	case "datetime":
		return "must be in YYYY-MM-DD format"
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "email":
		return "must be a valid email address"
	case "gte":
		return "must be at least " + fe.Param()
	case "lte":
		return "must be at most " + fe.Param()
	case "min":
		return "must have at least " + fe.Param() + " item(s)"
	case "max":
		if fe.Kind() == reflect.Slice {
			return "must have at most " + fe.Param() + " item(s)"
		}
		return "must be at most " + fe.Param() + " characters"
	default:
		return "is invalid"
	}
}
