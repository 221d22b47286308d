package usecase

import (
	"math"
	"sort"

	"github.com/flight-search/flight-supplier-gateway/internal/domain"
)

// Ranking weights; they sum to 1.
const (
	weightPrice    = 0.5
	weightDuration = 0.3
	weightStops    = 0.2
)

// RankingScores scores each offer by id:
//
//	Score = (0.5 × NormalizedPrice) + (0.3 × NormalizedDuration) + (0.2 × NormalizedStops)
//
// Each factor is normalized to [0, 1] across the given offers, so lower is better.
func RankingScores(offers []domain.NormalizedOffer) map[string]float64 {
	scores := make(map[string]float64, len(offers))
	if len(offers) == 0 {
		return scores
	}

	minPrice, maxPrice := math.MaxFloat64, 0.0
	minDuration, maxDuration := math.MaxFloat64, 0.0
	minStops, maxStops := math.MaxFloat64, 0.0
	for _, o := range offers {
		price, duration, stops := rankingFactors(o)
		minPrice, maxPrice = math.Min(minPrice, price), math.Max(maxPrice, price)
		minDuration, maxDuration = math.Min(minDuration, duration), math.Max(maxDuration, duration)
		minStops, maxStops = math.Min(minStops, stops), math.Max(maxStops, stops)
	}

	for _, o := range offers {
		price, duration, stops := rankingFactors(o)
		scores[o.ID] = weightPrice*normalizeValue(price, minPrice, maxPrice) +
			weightDuration*normalizeValue(duration, minDuration, maxDuration) +
			weightStops*normalizeValue(stops, minStops, maxStops)
	}
	return scores
}

func rankingFactors(o domain.NormalizedOffer) (price, duration, stops float64) {
	return o.Price.Total, float64(o.TotalDurationMinutes()), float64(o.TotalStops())
}

// normalizeValue maps value into [0, 1]. Equal bounds mean every value is optimal.
func normalizeValue(value, min, max float64) float64 {
	if max == min {
		return 0
	}
	return (value - min) / (max - min)
}

// SortOffers returns a sorted copy of offers. Sorting is stable; an empty or
// invalid option falls back to best value.
func SortOffers(offers []domain.NormalizedOffer, sortBy domain.SortOption) []domain.NormalizedOffer {
	result := make([]domain.NormalizedOffer, len(offers))
	copy(result, offers)
	if len(result) <= 1 {
		return result
	}

	if !sortBy.IsValid() {
		sortBy = domain.SortByBestValue
	}

	switch sortBy {
	case domain.SortByPrice:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].Price.Total < result[j].Price.Total
		})
	case domain.SortByDuration:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].TotalDurationMinutes() < result[j].TotalDurationMinutes()
		})
	case domain.SortByDeparture:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].DepartureTime().Before(result[j].DepartureTime())
		})
	default:
		scores := RankingScores(result)
		sort.SliceStable(result, func(i, j int) bool {
			return scores[result[i].ID] < scores[result[j].ID]
		})
	}
	return result
}
