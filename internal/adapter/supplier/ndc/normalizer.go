package ndc

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/flight-search/flight-supplier-gateway/internal/adapter/supplier/base"
	"github.com/flight-search/flight-supplier-gateway/internal/domain"
	"github.com/flight-search/flight-supplier-gateway/internal/infrastructure/timeutil"
)

// normalizeOffer converts one raw provider offer. The provider offer id is the
// reference, so the normalized id can be mapped back without the cache.
func normalizeOffer(raw json.RawMessage, index int, expiresAt time.Time) (domain.NormalizedOffer, error) {
	o, err := decodeOffer(raw)
	if err != nil {
		return domain.NormalizedOffer{}, err
	}
	if o.ID == "" {
		return domain.NormalizedOffer{}, errors.New("offer has no id")
	}
	if len(o.Slices) == 0 {
		return domain.NormalizedOffer{}, fmt.Errorf("offer %s has no slices", o.ID)
	}

	price, err := normalizePrice(o)
	if err != nil {
		return domain.NormalizedOffer{}, fmt.Errorf("offer %s: %w", o.ID, err)
	}

	legs := make([]domain.Leg, 0, len(o.Slices))
	for _, s := range o.Slices {
		leg, err := normalizeLeg(s)
		if err != nil {
			return domain.NormalizedOffer{}, fmt.Errorf("offer %s: %w", o.ID, err)
		}
		legs = append(legs, leg)
	}

	validating := legs[0].Segments[0].MarketingAirline
	if o.Owner.IATACode != "" {
		validating = airline(o.Owner)
	}

	if providerExpiry, err := time.Parse(time.RFC3339, o.ExpiresAt); err == nil && providerExpiry.Before(expiresAt) {
		expiresAt = providerExpiry
	}

	return domain.NormalizedOffer{
		ID:                domain.NewOfferID(Code, o.ID, index),
		Supplier:          Code,
		ReferenceID:       o.ID,
		Price:             price,
		Legs:              legs,
		ValidatingAirline: validating,
		SeatsAvailable:    0, // not reported by the provider
		Refundable:        o.Conditions.RefundBeforeDeparture != nil && o.Conditions.RefundBeforeDeparture.Allowed,
		OnHoldable:        !o.PaymentRequirements.RequiresInstantPayment,
		ExpiresAt:         expiresAt,
		Raw:               raw,
	}, nil
}

func decodeOffer(raw json.RawMessage) (offer, error) {
	var o offer
	if err := json.Unmarshal(raw, &o); err != nil {
		return offer{}, fmt.Errorf("decode offer: %w", err)
	}
	return o, nil
}

// normalizePrice reads offer-level totals. The provider prices per offer only,
// so there is no per-passenger breakdown. Missing components are derived from
// the total; with neither base nor tax the whole total is base fare.
func normalizePrice(o offer) (domain.Price, error) {
	total, err := parseAmount(o.TotalAmount)
	if err != nil {
		return domain.Price{}, fmt.Errorf("total: %w", err)
	}

	var baseFare, taxes float64
	switch {
	case o.BaseAmount != "":
		if baseFare, err = parseAmount(o.BaseAmount); err != nil {
			return domain.Price{}, fmt.Errorf("base: %w", err)
		}
		taxes = total - baseFare
		if tax, err := parseAmount(o.TaxAmount); o.TaxAmount != "" && err == nil && math.Abs(baseFare+tax-total) <= domain.PriceTolerance {
			taxes = tax
		}
	case o.TaxAmount != "":
		if taxes, err = parseAmount(o.TaxAmount); err != nil || taxes > total {
			taxes = 0
		}
		baseFare = total - taxes
	default:
		baseFare = total
	}

	price := domain.NewPrice(baseFare, taxes, o.TotalCurrency, nil)
	price.Guaranteed = o.PaymentRequirements.PriceGuaranteeExpiresAt != ""
	return price, nil
}

func normalizeLeg(s slice) (domain.Leg, error) {
	if len(s.Segments) == 0 {
		return domain.Leg{}, fmt.Errorf("slice %s has no segments", s.ID)
	}

	segments := make([]domain.Segment, 0, len(s.Segments))
	for _, seg := range s.Segments {
		out, err := normalizeSegment(seg)
		if err != nil {
			return domain.Leg{}, err
		}
		segments = append(segments, out)
	}

	duration, _ := base.ParseISODuration(s.Duration)
	return domain.NewLeg(segments, duration), nil
}

func normalizeSegment(s segment) (domain.Segment, error) {
	dep, err := timeutil.ParseSupplierTime(s.DepartingAt, nil)
	if err != nil {
		return domain.Segment{}, fmt.Errorf("segment %s departure: %w", s.ID, err)
	}
	arr, err := timeutil.ParseSupplierTime(s.ArrivingAt, nil)
	if err != nil {
		return domain.Segment{}, fmt.Errorf("segment %s arrival: %w", s.ID, err)
	}

	duration, err := base.ParseISODuration(s.Duration)
	if err != nil {
		duration = int(arr.Sub(dep).Minutes())
	}

	marketing := airline(s.MarketingCarrier)
	operating := marketing
	if s.OperatingCarrier.IATACode != "" {
		operating = airline(s.OperatingCarrier)
	}

	seg := domain.Segment{
		ID: s.ID,
		Departure: domain.Location{
			AirportCode: s.Origin.IATACode,
			AirportName: s.Origin.Name,
			CityCode:    s.Origin.IATACityCode,
			Terminal:    s.OriginTerminal,
			DateTime:    dep,
		},
		Arrival: domain.Location{
			AirportCode: s.Destination.IATACode,
			AirportName: s.Destination.Name,
			CityCode:    s.Destination.IATACityCode,
			Terminal:    s.DestinationTerminal,
			DateTime:    arr,
		},
		MarketingAirline: marketing,
		OperatingAirline: operating,
		FlightNumber:     marketing.Code + s.MarketingCarrierFlightNumber,
		Cabin:            domain.CabinEconomy,
		DurationMinutes:  duration,
	}
	if s.Aircraft != nil {
		seg.Aircraft = s.Aircraft.Name
	}

	// Fare details are per passenger; the first passenger's apply to the offer.
	if len(s.Passengers) > 0 {
		sp := s.Passengers[0]
		seg.Cabin = domain.ParseCabinClass(sp.CabinClass)
		for _, b := range sp.Baggages {
			if b.Type == "checked" {
				seg.Baggage.CheckedPieces = b.Quantity
			}
		}
	}
	return seg, nil
}

func airline(c carrier) domain.Airline {
	return domain.Airline{Code: c.IATACode, Name: c.Name, Logo: c.LogoURL}
}

// passengerType maps a provider slot to a fare type. Slots created from an
// age carry no type.
func passengerType(p offerPassenger) domain.PassengerType {
	switch strings.ToLower(p.Type) {
	case "adult":
		return domain.PassengerAdult
	case "child":
		return domain.PassengerChild
	case "infant_without_seat":
		return domain.PassengerInfant
	}
	switch {
	case p.Age > 0 && p.Age < 2:
		return domain.PassengerInfant
	case p.Age > 0 && p.Age < 12:
		return domain.PassengerChild
	default:
		return domain.PassengerAdult
	}
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
