package gds

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/flight-search/flight-supplier-gateway/internal/adapter/supplier/base"
	"github.com/flight-search/flight-supplier-gateway/internal/domain"
	"github.com/flight-search/flight-supplier-gateway/internal/infrastructure/timeutil"
)

// normalizeOffer converts one raw provider offer into the canonical model.
func normalizeOffer(raw json.RawMessage, dict dictionaries, ref string, index int, expiresAt time.Time) (domain.NormalizedOffer, error) {
	fo, err := rawOffer(raw)
	if err != nil {
		return domain.NormalizedOffer{}, err
	}
	if len(fo.Itineraries) == 0 {
		return domain.NormalizedOffer{}, fmt.Errorf("offer %s has no itineraries", fo.ID)
	}

	price, err := normalizePrice(fo)
	if err != nil {
		return domain.NormalizedOffer{}, fmt.Errorf("offer %s: %w", fo.ID, err)
	}

	fares := segmentFares(fo)
	legs := make([]domain.Leg, 0, len(fo.Itineraries))
	for _, it := range fo.Itineraries {
		leg, err := normalizeLeg(it, fares, dict)
		if err != nil {
			return domain.NormalizedOffer{}, fmt.Errorf("offer %s: %w", fo.ID, err)
		}
		legs = append(legs, leg)
	}

	validating := legs[0].Segments[0].MarketingAirline
	if len(fo.ValidatingAirlineCodes) > 0 {
		code := fo.ValidatingAirlineCodes[0]
		validating = domain.Airline{Code: code, Name: carrierName(dict, code)}
	}

	seats := fo.NumberOfBookableSeats
	if seats > domain.MaxBookableSeats {
		seats = domain.MaxBookableSeats
	}

	return domain.NormalizedOffer{
		ID:                domain.NewOfferID(Code, ref, index),
		Supplier:          Code,
		ReferenceID:       ref,
		Price:             price,
		Legs:              legs,
		ValidatingAirline: validating,
		SeatsAvailable:    seats,
		Refundable:        isRefundable(fo),
		OnHoldable:        !fo.InstantTicketingRequired,
		ExpiresAt:         expiresAt,
		Raw:               raw,
	}, nil
}

// normalizePrice reads the offer totals. Taxes come from the itemized fees when
// they reconcile with the total, otherwise from total minus base.
func normalizePrice(fo flightOffer) (domain.Price, error) {
	totalText := fo.Price.GrandTotal
	if totalText == "" {
		totalText = fo.Price.Total
	}
	total, err := parseAmount(totalText)
	if err != nil {
		return domain.Price{}, fmt.Errorf("total: %w", err)
	}
	baseFare, err := parseAmount(fo.Price.Base)
	if err != nil {
		return domain.Price{}, fmt.Errorf("base: %w", err)
	}

	var fees float64
	for _, f := range fo.Price.Fees {
		amount, err := parseAmount(f.Amount)
		if err != nil {
			continue
		}
		fees += amount
	}

	taxes := total - baseFare
	if fees > 0 && math.Abs(baseFare+fees-total) <= domain.PriceTolerance {
		taxes = fees
	}

	price := domain.NewPrice(baseFare, taxes, fo.Price.Currency, travelerBreakdown(fo))
	if !price.Reconciles() {
		price.Breakdown = nil
	}
	return price, nil
}

// travelerBreakdown groups traveler pricings by passenger type in order of first appearance.
func travelerBreakdown(fo flightOffer) []domain.FareBreakdown {
	index := map[domain.PassengerType]int{}
	var out []domain.FareBreakdown

	for _, tp := range fo.TravelerPricings {
		pt := passengerType(tp.TravelerType)
		if i, ok := index[pt]; ok {
			out[i].Count++
			continue
		}
		total, err := parseAmount(tp.Price.Total)
		if err != nil {
			return nil
		}
		baseFare, err := parseAmount(tp.Price.Base)
		if err != nil {
			return nil
		}
		index[pt] = len(out)
		out = append(out, domain.NewFareBreakdown(pt, 1, baseFare, total-baseFare))
	}
	return out
}

func passengerType(travelerType string) domain.PassengerType {
	switch strings.ToUpper(travelerType) {
	case "CHILD":
		return domain.PassengerChild
	case "HELD_INFANT", "SEATED_INFANT":
		return domain.PassengerInfant
	default:
		return domain.PassengerAdult
	}
}

// segmentFares indexes the first traveler's per-segment fare details by segment id.
func segmentFares(fo flightOffer) map[string]segmentFare {
	fares := map[string]segmentFare{}
	if len(fo.TravelerPricings) == 0 {
		return fares
	}
	for _, sf := range fo.TravelerPricings[0].FareDetailsBySegment {
		fares[sf.SegmentID] = sf
	}
	return fares
}

func normalizeLeg(it itinerary, fares map[string]segmentFare, dict dictionaries) (domain.Leg, error) {
	if len(it.Segments) == 0 {
		return domain.Leg{}, fmt.Errorf("itinerary has no segments")
	}

	segments := make([]domain.Segment, 0, len(it.Segments))
	for _, s := range it.Segments {
		seg, err := normalizeSegment(s, fares[s.ID], dict)
		if err != nil {
			return domain.Leg{}, err
		}
		segments = append(segments, seg)
	}

	// Zero falls back to first departure to last arrival inside NewLeg.
	duration, _ := base.ParseISODuration(it.Duration)
	return domain.NewLeg(segments, duration), nil
}

func normalizeSegment(s segment, fare segmentFare, dict dictionaries) (domain.Segment, error) {
	dep, err := timeutil.ParseSupplierTime(s.Departure.At, nil)
	if err != nil {
		return domain.Segment{}, fmt.Errorf("segment %s departure: %w", s.ID, err)
	}
	arr, err := timeutil.ParseSupplierTime(s.Arrival.At, nil)
	if err != nil {
		return domain.Segment{}, fmt.Errorf("segment %s arrival: %w", s.ID, err)
	}

	duration, err := base.ParseISODuration(s.Duration)
	if err != nil {
		duration = int(arr.Sub(dep).Minutes())
	}

	marketing := domain.Airline{Code: s.CarrierCode, Name: carrierName(dict, s.CarrierCode)}
	operating := marketing
	if s.Operating != nil && s.Operating.CarrierCode != "" {
		operating = domain.Airline{Code: s.Operating.CarrierCode, Name: carrierName(dict, s.Operating.CarrierCode)}
	}

	aircraft := s.Aircraft.Code
	if name, ok := dict.Aircraft[aircraft]; ok {
		aircraft = name
	}

	checkedKg := fare.IncludedCheckedBags.Weight
	if strings.EqualFold(fare.IncludedCheckedBags.WeightUnit, "LB") {
		checkedKg = int(math.Round(float64(checkedKg) * 0.453592))
	}

	return domain.Segment{
		ID:               s.ID,
		Departure:        domain.Location{AirportCode: s.Departure.IATACode, Terminal: s.Departure.Terminal, DateTime: dep},
		Arrival:          domain.Location{AirportCode: s.Arrival.IATACode, Terminal: s.Arrival.Terminal, DateTime: arr},
		MarketingAirline: marketing,
		OperatingAirline: operating,
		FlightNumber:     s.CarrierCode + s.Number,
		Cabin:            domain.ParseCabinClass(fare.Cabin),
		DurationMinutes:  duration,
		Aircraft:         aircraft,
		Baggage: domain.BaggageAllowance{
			CheckedKg:     checkedKg,
			CheckedPieces: fare.IncludedCheckedBags.Quantity,
		},
		BookingClass: fare.Class,
	}, nil
}

// isRefundable reports whether any traveler fare carries a free refund amenity.
func isRefundable(fo flightOffer) bool {
	for _, tp := range fo.TravelerPricings {
		for _, sf := range tp.FareDetailsBySegment {
			for _, am := range sf.Amenities {
				if !am.IsChargeable && strings.Contains(strings.ToUpper(am.Description), "REFUND") {
					return true
				}
			}
		}
	}
	return false
}

func carrierName(dict dictionaries, code string) string {
	return dict.Carriers[code]
}

// parseAmount reads a decimal string. Empty means zero.
func parseAmount(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	return v, nil
}
