package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flight-search/flight-supplier-gateway/internal/domain"
)

func TestRankingScores(t *testing.T) {
	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, RankingScores(nil))
	})

	t.Run("single offer scores zero", func(t *testing.T) {
		scores := RankingScores([]domain.NormalizedOffer{makeOffer("gds_a_0", 500, 300, 1, "AA", 8)})
		assert.InDelta(t, 0.0, scores["gds_a_0"], 1e-9)
	})

	t.Run("weighted normalization", func(t *testing.T) {
		offers := []domain.NormalizedOffer{
			makeOffer("gds_a_0", 100, 100, 0, "AA", 8),
			makeOffer("gds_a_1", 200, 300, 2, "AA", 8),
			makeOffer("gds_a_2", 150, 100, 2, "AA", 8),
		}
		scores := RankingScores(offers)

		require.Len(t, scores, 3)
		assert.InDelta(t, 0.0, scores["gds_a_0"], 1e-9)
		assert.InDelta(t, 1.0, scores["gds_a_1"], 1e-9)
		// 0.5*0.5 + 0.3*0 + 0.2*1
		assert.InDelta(t, 0.45, scores["gds_a_2"], 1e-9)
	})
}

func TestSortOffers(t *testing.T) {
	offers := []domain.NormalizedOffer{
		makeOffer("gds_a_0", 450, 480, 1, "AA", 8),
		makeOffer("gds_a_1", 380, 600, 2, "UA", 6),
		makeOffer("ndc_b_0", 650, 420, 1, "BA", 9),
		makeOffer("partner_c_0", 520, 430, 0, "VS", 19),
	}

	tests := []struct {
		name     string
		sortBy   domain.SortOption
		expected []string
	}{
		{"price", domain.SortByPrice, []string{"gds_a_1", "gds_a_0", "partner_c_0", "ndc_b_0"}},
		{"duration", domain.SortByDuration, []string{"ndc_b_0", "partner_c_0", "gds_a_0", "gds_a_1"}},
		{"departure", domain.SortByDeparture, []string{"gds_a_1", "gds_a_0", "ndc_b_0", "partner_c_0"}},
		{"best value", domain.SortByBestValue, []string{"partner_c_0", "gds_a_0", "gds_a_1", "ndc_b_0"}},
		{"invalid falls back to best value", domain.SortOption("bogus"), []string{"partner_c_0", "gds_a_0", "gds_a_1", "ndc_b_0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, offerIDs(SortOffers(offers, tt.sortBy)))
		})
	}
}

func TestSortOffers_StableAndCopying(t *testing.T) {
	offers := []domain.NormalizedOffer{
		makeOffer("gds_a_0", 300, 100, 0, "AA", 8),
		makeOffer("gds_a_1", 300, 200, 0, "AA", 7),
		makeOffer("gds_a_2", 100, 300, 0, "AA", 6),
	}

	sorted := SortOffers(offers, domain.SortByPrice)

	assert.Equal(t, []string{"gds_a_2", "gds_a_0", "gds_a_1"}, offerIDs(sorted))
	assert.Equal(t, []string{"gds_a_0", "gds_a_1", "gds_a_2"}, offerIDs(offers))
}
