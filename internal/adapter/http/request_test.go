package http

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flight-search/flight-supplier-gateway/internal/domain"
)

func floatPtr(f float64) *float64 {
	return &f
}

func intPtr(i int) *int {
	return &i
}

func TestSearchFlightsRequest_Normalize(t *testing.T) {
	req := SearchFlightsRequest{
		Origin:        " jfk",
		Destination:   "lhr ",
		DepartureDate: " 2025-12-15 ",
		Cabin:         "BUSINESS",
		SortBy:        " Duration",
		Filters:       &FilterDTO{Airlines: []string{"ba", " aa "}},
	}

	req.Normalize()

	assert.Equal(t, "JFK", req.Origin)
	assert.Equal(t, "LHR", req.Destination)
	assert.Equal(t, "2025-12-15", req.DepartureDate)
	assert.Equal(t, "business", req.Cabin)
	assert.Equal(t, "duration", req.SortBy)
	assert.Equal(t, []string{"BA", "AA"}, req.Filters.Airlines)
}

func TestSearchFlightsRequest_Validation(t *testing.T) {
	v := newValidator()

	valid := func() SearchFlightsRequest {
		return SearchFlightsRequest{
			Origin:        "JFK",
			Destination:   "LHR",
			DepartureDate: "2025-12-15",
			Adults:        1,
		}
	}

	tests := []struct {
		name    string
		modify  func(*SearchFlightsRequest)
		wantErr map[string]string
	}{
		{
			name:   "valid one way",
			modify: func(*SearchFlightsRequest) {},
		},
		{
			name: "valid round trip with filters",
			modify: func(r *SearchFlightsRequest) {
				r.ReturnDate = "2025-12-22"
				r.Cabin = "premium_economy"
				r.SortBy = "departure"
				r.Filters = &FilterDTO{MaxPrice: floatPtr(0), MaxStops: intPtr(2), Airlines: []string{"BA", "U2"}}
			},
		},
		{
			name:    "same airports",
			modify:  func(r *SearchFlightsRequest) { r.Destination = "JFK" },
			wantErr: map[string]string{"destination": "must be different from origin"},
		},
		{
			name:    "missing date",
			modify:  func(r *SearchFlightsRequest) { r.DepartureDate = "" },
			wantErr: map[string]string{"departureDate": "is required"},
		},
		{
			name:    "too many stops",
			modify:  func(r *SearchFlightsRequest) { r.Filters = &FilterDTO{MaxStops: intPtr(4)} },
			wantErr: map[string]string{"filters.maxStops": "must be at most 3"},
		},
		{
			name: "several fields",
			modify: func(r *SearchFlightsRequest) {
				r.Origin = "J"
				r.Infants = -1
			},
			wantErr: map[string]string{
				"origin":  "must be exactly 3 characters",
				"infants": "must be at least 0",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid()
			tt.modify(&req)

			err := v.Struct(&req)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantErr, validationDetails(err))
		})
	}
}

func TestBookOfferRequest_Validation(t *testing.T) {
	v := newValidator()

	req := BookOfferRequest{Passengers: []PassengerDTO{
		{Type: "adt", FirstName: "John", LastName: "Smith", Gender: "Female", CountryCallingCode: "+44", Nationality: "gb"},
		{Type: "CHD", FirstName: "Jane", LastName: "Smith", DocumentExpiry: "2030-02-30"},
	}}
	req.Normalize()

	assert.Equal(t, "ADT", req.Passengers[0].Type)
	assert.Equal(t, "female", req.Passengers[0].Gender)
	assert.Equal(t, "44", req.Passengers[0].CountryCallingCode)
	assert.Equal(t, "GB", req.Passengers[0].Nationality)

	details := validationDetails(v.Struct(&req))
	assert.Equal(t, map[string]string{
		"passengers[1].documentExpiry": "must be in YYYY-MM-DD format",
	}, details)
}

func TestBookOfferRequest_TooManyPassengers(t *testing.T) {
	v := newValidator()

	req := BookOfferRequest{}
	for range 10 {
		req.Passengers = append(req.Passengers, PassengerDTO{Type: "ADT", FirstName: "A", LastName: "B"})
	}

	details := validationDetails(v.Struct(&req))
	assert.Equal(t, "must have at most 9 item(s)", details["passengers"])
}

func TestValidationDetails_NotAValidationError(t *testing.T) {
	assert.Nil(t, validationDetails(errors.New("boom")))
	assert.Nil(t, validationDetails(nil))
}

func TestFieldPath(t *testing.T) {
	assert.Equal(t, "passengers[0].firstName", fieldPath("BookOfferRequest.passengers[0].firstName"))
	assert.Equal(t, "origin", fieldPath("SearchFlightsRequest.origin"))
	assert.Equal(t, "origin", fieldPath("origin"))
}

func TestToSearchRequest(t *testing.T) {
	req := &SearchFlightsRequest{
		Origin:        "JFK",
		Destination:   "LHR",
		DepartureDate: "2025-12-15",
		ReturnDate:    "2025-12-22",
		Adults:        2,
		Children:      1,
		Infants:       1,
		Cabin:         "first",
	}

	sr := ToSearchRequest(req)

	assert.Equal(t, "JFK", sr.Origin)
	assert.Equal(t, "LHR", sr.Destination)
	assert.Equal(t, "2025-12-22", sr.ReturnDate)
	assert.Equal(t, 2, sr.Adults)
	assert.Equal(t, 1, sr.Children)
	assert.Equal(t, 1, sr.Infants)
	assert.Equal(t, domain.CabinFirst, sr.Cabin)
	assert.Nil(t, sr.Filters)
}

func TestToSearchRequest_PushesDownFilters(t *testing.T) {
	tests := []struct {
		name    string
		filters *FilterDTO
		want    map[string]string
	}{
		{
			name:    "price and one airline",
			filters: &FilterDTO{MaxPrice: floatPtr(750.5), Airlines: []string{"BA"}},
			want:    map[string]string{domain.FilterMaxPrice: "750.5", domain.FilterAirline: "BA"},
		},
		{
			name:    "several airlines stay local",
			filters: &FilterDTO{Airlines: []string{"BA", "AA"}},
			want:    nil,
		},
		{
			name:    "stops only",
			filters: &FilterDTO{MaxStops: intPtr(0)},
			want:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sr := ToSearchRequest(&SearchFlightsRequest{Filters: tt.filters})
			assert.Equal(t, tt.want, sr.Filters)
		})
	}
}

func TestToSearchOptions(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		opts := ToSearchOptions(&SearchFlightsRequest{})
		assert.Equal(t, domain.SortByBestValue, opts.SortBy)
		assert.Nil(t, opts.Filters)
	})

	t.Run("filters and sort", func(t *testing.T) {
		opts := ToSearchOptions(&SearchFlightsRequest{
			SortBy: "duration",
			Filters: &FilterDTO{
				MaxPrice:       floatPtr(300),
				MaxStops:       intPtr(1),
				Airlines:       []string{"LH"},
				RefundableOnly: true,
			},
		})

		assert.Equal(t, domain.SortByDuration, opts.SortBy)
		require.NotNil(t, opts.Filters)
		assert.Equal(t, 300.0, *opts.Filters.MaxPrice)
		assert.Equal(t, 1, *opts.Filters.MaxStops)
		assert.Equal(t, []string{"LH"}, opts.Filters.Airlines)
		assert.True(t, opts.Filters.RefundableOnly)
	})
}

func TestToPassengers(t *testing.T) {
	passengers, err := ToPassengers([]PassengerDTO{
		{
			Type:           "ADT",
			FirstName:      "John",
			LastName:       "Smith",
			DateOfBirth:    "1985-04-12",
			DocumentNumber: "123456789",
			DocumentExpiry: "2030-01-01",
		},
		{Type: "CHD", FirstName: "Jane", LastName: "Smith"},
	})

	require.NoError(t, err)
	require.Len(t, passengers, 2)
	assert.Equal(t, domain.PassengerAdult, passengers[0].Type)
	require.NotNil(t, passengers[0].DateOfBirth)
	assert.Equal(t, time.Date(1985, 4, 12, 0, 0, 0, 0, time.UTC), *passengers[0].DateOfBirth)
	require.NotNil(t, passengers[0].DocumentExpiry)
	assert.Equal(t, 2030, passengers[0].DocumentExpiry.Year())
	assert.Equal(t, domain.PassengerChild, passengers[1].Type)
	assert.Nil(t, passengers[1].DateOfBirth)
}

func TestToPassengers_BadDate(t *testing.T) {
	_, err := ToPassengers([]PassengerDTO{{Type: "ADT", FirstName: "A", LastName: "B", DateOfBirth: "1985-4-12"}})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)
	assert.Contains(t, err.Error(), "passengers[0].dateOfBirth")
}
