package usecase

import (
	"time"

	"github.com/flight-search/flight-supplier-gateway/internal/domain"
)

var testDay = time.Date(2025, 12, 15, 0, 0, 0, 0, time.UTC)

// makeOffer builds a one-leg offer with the given shape.
func makeOffer(id string, total float64, durationMin, stops int, airline string, departureHour int) domain.NormalizedOffer {
	supplier, ref, _, err := domain.ParseOfferID(id)
	if err != nil {
		panic(err)
	}
	dep := testDay.Add(time.Duration(departureHour) * time.Hour)

	segments := make([]domain.Segment, 0, stops+1)
	for i := 0; i <= stops; i++ {
		segments = append(segments, domain.Segment{
			Departure:        domain.Location{AirportCode: "JFK", DateTime: dep},
			Arrival:          domain.Location{AirportCode: "LHR", DateTime: dep.Add(time.Duration(durationMin) * time.Minute)},
			MarketingAirline: domain.Airline{Code: airline},
			OperatingAirline: domain.Airline{Code: airline},
			FlightNumber:     airline + "100",
			Cabin:            domain.CabinEconomy,
		})
	}

	return domain.NormalizedOffer{
		ID:                id,
		Supplier:          supplier,
		ReferenceID:       ref,
		Price:             domain.NewPrice(total*0.8, total*0.2, "USD", nil),
		Legs:              []domain.Leg{domain.NewLeg(segments, durationMin)},
		ValidatingAirline: domain.Airline{Code: airline},
		SeatsAvailable:    9,
		ExpiresAt:         testDay.Add(72 * time.Hour),
	}
}

func offerIDs(offers []domain.NormalizedOffer) []string {
	ids := make([]string, len(offers))
	for i, o := range offers {
		ids[i] = o.ID
	}
	return ids
}

func ptr[T any](v T) *T {
	return &v
}
