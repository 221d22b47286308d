package domain

import (
	"fmt"
	"strings"
)

// SortOption defines the available orderings of merged offers.
type SortOption string

// Available sort options.
const (
	// SortByBestValue sorts by the weighted price/duration/stops score (default)
	SortByBestValue SortOption = "best"

	// SortByPrice sorts by total price ascending (cheapest first)
	SortByPrice SortOption = "price"

	// SortByDuration sorts by total travel time ascending (shortest first)
	SortByDuration SortOption = "duration"

	// SortByDeparture sorts by outbound departure ascending (earliest first)
	SortByDeparture SortOption = "departure"
)

// IsValid checks if the sort option is a valid value.
func (s SortOption) IsValid() bool {
	switch s {
	case SortByBestValue, SortByPrice, SortByDuration, SortByDeparture:
		return true
	default:
		return false
	}
}

// ParseSortOption converts a string to a SortOption.
// Returns SortByBestValue if the string is empty or invalid.
func ParseSortOption(s string) SortOption {
	option := SortOption(strings.ToLower(strings.TrimSpace(s)))
	if option.IsValid() {
		return option
	}
	return SortByBestValue
}

// FilterOptions narrows the merged offer list after the fan-out.
type FilterOptions struct {
	// MaxPrice drops offers whose total exceeds this amount
	MaxPrice *float64 `json:"maxPrice,omitempty"`

	// MaxStops drops offers with more stops on any leg
	// 0 = direct flights only, 1 = max 1 stop, etc.
	MaxStops *int `json:"maxStops,omitempty"`

	// Airlines keeps only offers whose validating or marketing carrier is listed
	Airlines []string `json:"airlines,omitempty"`

	RefundableOnly bool `json:"refundableOnly,omitempty"`
}

// Validate rejects negative bounds.
func (f *FilterOptions) Validate() error {
	if f == nil {
		return nil
	}
	if f.MaxPrice != nil && *f.MaxPrice < 0 {
		return fmt.Errorf("%w: maxPrice cannot be negative", ErrInvalidRequest)
	}
	if f.MaxStops != nil && *f.MaxStops < 0 {
		return fmt.Errorf("%w: maxStops cannot be negative", ErrInvalidRequest)
	}
	return nil
}

// IsEmpty reports whether no filter is set.
func (f *FilterOptions) IsEmpty() bool {
	return f == nil || (f.MaxPrice == nil && f.MaxStops == nil && len(f.Airlines) == 0 && !f.RefundableOnly)
}

// Matches reports whether the offer passes every filter.
func (f *FilterOptions) Matches(o NormalizedOffer) bool {
	if f == nil {
		return true
	}

	if f.MaxPrice != nil && o.Price.Total > *f.MaxPrice {
		return false
	}

	if f.MaxStops != nil {
		for _, l := range o.Legs {
			if l.Stops > *f.MaxStops {
				return false
			}
		}
	}

	if f.RefundableOnly && !o.Refundable {
		return false
	}

	if len(f.Airlines) > 0 && !f.matchesAirline(o) {
		return false
	}

	return true
}

func (f *FilterOptions) matchesAirline(o NormalizedOffer) bool {
	for _, code := range f.Airlines {
		if strings.EqualFold(code, o.ValidatingAirline.Code) {
			return true
		}
		for _, l := range o.Legs {
			for _, s := range l.Segments {
				if strings.EqualFold(code, s.MarketingAirline.Code) {
					return true
				}
			}
		}
	}
	return false
}
