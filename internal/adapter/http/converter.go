package http

import (
	"fmt"
	"strconv"
	"time"

	"github.com/flight-search/flight-supplier-gateway/internal/domain"
	"github.com/flight-search/flight-supplier-gateway/internal/usecase"
)

// ToSearchRequest converts the HTTP request to the domain search request.
// A price cap and a single airline are also pushed down to the suppliers.
func ToSearchRequest(req *SearchFlightsRequest) domain.SearchRequest {
	sr := domain.SearchRequest{
		Origin:        req.Origin,
		Destination:   req.Destination,
		DepartureDate: req.DepartureDate,
		ReturnDate:    req.ReturnDate,
		Adults:        req.Adults,
		Children:      req.Children,
		Infants:       req.Infants,
		Cabin:         domain.CabinClass(req.Cabin),
	}

	if f := req.Filters; f != nil {
		filters := map[string]string{}
		if f.MaxPrice != nil {
			filters[domain.FilterMaxPrice] = strconv.FormatFloat(*f.MaxPrice, 'f', -1, 64)
		}
		if len(f.Airlines) == 1 {
			filters[domain.FilterAirline] = f.Airlines[0]
		}
		if len(filters) > 0 {
			sr.Filters = filters
		}
	}
	return sr
}

// ToSearchOptions converts the HTTP request's filters and sort to usecase options.
func ToSearchOptions(req *SearchFlightsRequest) usecase.SearchOptions {
	opts := usecase.DefaultSearchOptions()
	opts.SortBy = domain.ParseSortOption(req.SortBy)

	if f := req.Filters; f != nil {
		opts.Filters = &domain.FilterOptions{
			MaxPrice:       f.MaxPrice,
			MaxStops:       f.MaxStops,
			Airlines:       f.Airlines,
			RefundableOnly: f.RefundableOnly,
		}
	}
	return opts
}

// ToPassengers converts booking DTOs to domain passengers.
func ToPassengers(dtos []PassengerDTO) ([]domain.Passenger, error) {
	out := make([]domain.Passenger, 0, len(dtos))
	for i, d := range dtos {
		dob, err := parseOptionalDate(d.DateOfBirth)
		if err != nil {
			return nil, fmt.Errorf("%w: passengers[%d].dateOfBirth: %v", domain.ErrInvalidRequest, i, err)
		}
		expiry, err := parseOptionalDate(d.DocumentExpiry)
		if err != nil {
			return nil, fmt.Errorf("%w: passengers[%d].documentExpiry: %v", domain.ErrInvalidRequest, i, err)
		}
		out = append(out, domain.Passenger{
			Type:                   domain.PassengerType(d.Type),
			Title:                  d.Title,
			FirstName:              d.FirstName,
			LastName:               d.LastName,
			Gender:                 d.Gender,
			DateOfBirth:            dob,
			Email:                  d.Email,
			Phone:                  d.Phone,
			CountryCallingCode:     d.CountryCallingCode,
			Nationality:            d.Nationality,
			DocumentType:           d.DocumentType,
			DocumentNumber:         d.DocumentNumber,
			DocumentExpiry:         expiry,
			DocumentIssuingCountry: d.DocumentIssuingCountry,
		})
	}
	return out, nil
}

func parseOptionalDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(domain.DateLayout, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
