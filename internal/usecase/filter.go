package usecase

import "github.com/flight-search/flight-supplier-gateway/internal/domain"

// ApplyFilters returns the offers matching every filter criterion.
// A nil or empty filter returns the input unchanged. The input is never mutated.
func ApplyFilters(offers []domain.NormalizedOffer, opts *domain.FilterOptions) []domain.NormalizedOffer {
	if opts.IsEmpty() {
		return offers
	}

	result := make([]domain.NormalizedOffer, 0, len(offers))
	for _, o := range offers {
		if opts.Matches(o) {
			result = append(result, o)
		}
	}
	return result
}
