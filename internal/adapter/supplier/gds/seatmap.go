package gds

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/flight-search/flight-supplier-gateway/internal/adapter/supplier/base"
	"github.com/flight-search/flight-supplier-gateway/internal/domain"
)

// Provider seat characteristic codes.
var seatCharacteristics = map[string]string{
	"L":  domain.SeatExtraLegroom,
	"E":  domain.SeatExitRow,
	"CH": domain.SeatChargeable,
	"B":  domain.SeatBassinet,
}

// GetSeatMap posts the raw offer to the seat map endpoint and flattens the
// deck structure. A provider that declines to return a map yields an
// unsupported result rather than an error.
func (a *Adapter) GetSeatMap(ctx context.Context, offerID string) (*domain.SeatMapResult, error) {
	offer, err := a.CachedOffer(ctx, offerID)
	if err != nil {
		a.LogFailure("seatmap", err)
		return nil, err
	}

	var resp seatmapResponse
	_, err = a.call(ctx, base.Request{Op: "seatmap", Method: http.MethodPost, Path: seatmapPath},
		seatmapRequest{Data: []json.RawMessage{offer.Raw}}, &resp)
	if errors.Is(err, domain.ErrProviderRejected) {
		a.Log.Info().Err(err).Str("offer_id", offerID).Msg("Seat map unavailable for offer")
		return domain.UnsupportedSeatMap(offerID), nil
	}
	a.Observe(ctx, err)
	if err != nil {
		a.LogFailure("seatmap", err)
		return nil, err
	}

	result := &domain.SeatMapResult{OfferID: offerID, Supported: true, SeatMaps: make([]domain.SegmentSeatMap, 0, len(resp.Data))}
	for _, sm := range resp.Data {
		result.SeatMaps = append(result.SeatMaps, flattenSeatMap(sm))
	}
	return result, nil
}

func flattenSeatMap(sm seatmap) domain.SegmentSeatMap {
	out := domain.SegmentSeatMap{
		SegmentID:    sm.SegmentID,
		FlightNumber: sm.CarrierCode + sm.Number,
		Seats:        []domain.Seat{},
	}
	for _, d := range sm.Decks {
		for _, s := range d.Seats {
			out.Seats = append(out.Seats, flattenSeat(s))
		}
	}
	return out
}

func flattenSeat(s wireSeat) domain.Seat {
	row, column := splitSeatNumber(s.Number)
	seat := domain.Seat{
		Number:          s.Number,
		Row:             row,
		Column:          column,
		Class:           domain.ParseCabinClass(s.Cabin),
		Characteristics: []string{},
	}

	for _, code := range s.CharacteristicsCodes {
		switch code {
		case "W":
			seat.Position = domain.SeatWindow
		case "A":
			seat.Position = domain.SeatAisle
		case "9":
			seat.Position = domain.SeatMiddle
		}
		if c, ok := seatCharacteristics[code]; ok {
			seat.Characteristics = append(seat.Characteristics, c)
		}
	}

	if len(s.TravelerPricing) > 0 {
		tp := s.TravelerPricing[0]
		seat.Available = strings.EqualFold(tp.SeatAvailabilityStatus, "AVAILABLE")
		if tp.Price != nil {
			if amount, err := parseAmount(tp.Price.Total); err == nil {
				seat.PriceDelta = amount
				seat.Currency = tp.Price.Currency
			}
		}
	}
	return seat
}

// splitSeatNumber splits "12A" into row 12 and column "A".
func splitSeatNumber(number string) (int, string) {
	i := 0
	for i < len(number) && number[i] >= '0' && number[i] <= '9' {
		i++
	}
	row, _ := strconv.Atoi(number[:i])
	return row, number[i:]
}
