// Package usecase contains the supplier manager. It fans searches out to the
// configured adapters using the Scatter-Gather pattern and routes offer
// operations back to the adapter that produced the offer.
package usecase

import "github.com/flight-search/flight-supplier-gateway/internal/domain"

// SearchOptions contains optional parameters applied to merged results.
type SearchOptions struct {
	// Filters contains optional filtering criteria to apply to results
	Filters *domain.FilterOptions

	// SortBy specifies how to sort the results (default: best value)
	SortBy domain.SortOption
}

// DefaultSearchOptions returns SearchOptions with sensible defaults.
func DefaultSearchOptions() SearchOptions {
	return SearchOptions{
		Filters: nil,
		SortBy:  domain.SortByBestValue,
	}
}
