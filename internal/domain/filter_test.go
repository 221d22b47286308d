package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSortOption(t *testing.T) {
	tests := []struct {
		input    string
		expected SortOption
	}{
		{"price", SortByPrice},
		{" Duration ", SortByDuration},
		{"departure", SortByDeparture},
		{"best", SortByBestValue},
		{"", SortByBestValue},
		{"cheapest", SortByBestValue},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseSortOption(tt.input))
		})
	}
}

func TestFilterOptions_Validate(t *testing.T) {
	negPrice, negStops, zero := -1.0, -1, 0

	var nilOpts *FilterOptions
	assert.NoError(t, nilOpts.Validate())
	assert.NoError(t, (&FilterOptions{MaxStops: &zero}).Validate())
	assert.ErrorIs(t, (&FilterOptions{MaxPrice: &negPrice}).Validate(), ErrInvalidRequest)
	assert.ErrorIs(t, (&FilterOptions{MaxStops: &negStops}).Validate(), ErrInvalidRequest)
}

func TestFilterOptions_Matches(t *testing.T) {
	direct := Segment{MarketingAirline: Airline{Code: "BA"}}
	connecting := Segment{MarketingAirline: Airline{Code: "AA"}}

	offer := NormalizedOffer{
		Price:             NewPrice(400, 100, "USD", nil),
		ValidatingAirline: Airline{Code: "BA"},
		Legs: []Leg{
			NewLeg([]Segment{direct}, 420),
			NewLeg([]Segment{direct, connecting}, 600),
		},
	}
	maxPrice, maxStops := 500.0, 0
	cheap := 499.99

	assert.True(t, (*FilterOptions)(nil).Matches(offer))
	assert.True(t, (&FilterOptions{MaxPrice: &maxPrice}).Matches(offer))
	assert.False(t, (&FilterOptions{MaxPrice: &cheap}).Matches(offer))
	assert.False(t, (&FilterOptions{MaxStops: &maxStops}).Matches(offer), "the return leg has a stop")
	assert.True(t, (&FilterOptions{Airlines: []string{"aa"}}).Matches(offer), "marketing carrier on a segment")
	assert.False(t, (&FilterOptions{Airlines: []string{"LH"}}).Matches(offer))
	assert.False(t, (&FilterOptions{RefundableOnly: true}).Matches(offer))
}
