package gds

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/flight-search/flight-supplier-gateway/internal/adapter/supplier/base"
	"github.com/flight-search/flight-supplier-gateway/internal/domain"
)

// Document fallbacks for passengers whose travel document is incomplete.
const (
	defaultDocumentType  = "PASSPORT"
	defaultIssuerCountry = "US"
)

// Book creates a flight order from the priced payload when one exists,
// otherwise from the search payload. Every call reaches the provider.
func (a *Adapter) Book(ctx context.Context, offer domain.NormalizedOffer, passengers []domain.Passenger) (*domain.BookingResult, error) {
	result, err := a.book(ctx, offer, passengers)
	a.Observe(ctx, err)
	if err != nil {
		a.LogFailure("book", err)
		return nil, err
	}
	return result, nil
}

func (a *Adapter) book(ctx context.Context, offer domain.NormalizedOffer, passengers []domain.Passenger) (*domain.BookingResult, error) {
	if len(passengers) == 0 {
		return nil, a.Err("book", domain.ErrInvalidRequest, errors.New("no passengers"))
	}
	payload, err := a.Offers.BookingPayload(ctx, offer)
	if err != nil {
		return nil, err
	}

	body := orderRequest{Data: orderData{
		Type:               "flight-order",
		FlightOffers:       []json.RawMessage{payload},
		Travelers:          buildOrderTravelers(passengers, a.Clock.Now()),
		TicketingAgreement: ticketingAgreement{Option: "DELAY_TO_CANCEL", Delay: "6D"},
	}}

	var resp orderResponse
	httpResp, err := a.call(ctx, base.Request{Op: "book", Method: http.MethodPost, Path: ordersPath, NoRetry: true}, body, &resp)
	if err != nil {
		if httpResp != nil && a.isSandboxFailure(httpResp.Body) {
			return a.simulatedBooking(offer, payload, err), nil
		}
		return nil, err
	}

	var ordered *flightOffer
	if len(resp.Data.FlightOffers) > 0 {
		ordered = &resp.Data.FlightOffers[0]
	}
	total, currency := bookedTotal(ordered, payload, offer)

	result := &domain.BookingResult{
		OrderID:     resp.Data.ID,
		Status:      domain.BookingConfirmed,
		Supplier:    Code,
		OfferID:     offer.ID,
		TotalAmount: total,
		Currency:    currency,
		RawResponse: httpResp.Body,
	}
	if len(resp.Data.AssociatedRecords) > 0 {
		result.PNR = resp.Data.AssociatedRecords[0].Reference
	}
	a.Log.Info().Str("offer_id", offer.ID).Str("pnr", result.PNR).Str("order_id", result.OrderID).Msg("GDS order created")
	return result, nil
}

// isSandboxFailure reports whether a failed order only failed because the test
// environment cannot sell the segment. Always false in production.
func (a *Adapter) isSandboxFailure(body []byte) bool {
	if !a.Settings.SandboxSimulationEnabled() {
		return false
	}
	for _, pe := range base.ParseProviderErrors(body) {
		if a.Settings.IsSandboxErrorCode(pe.Code) {
			return true
		}
	}
	return false
}

// simulatedBooking is the clearly marked synthetic result returned for sandbox-only failures.
func (a *Adapter) simulatedBooking(offer domain.NormalizedOffer, payload json.RawMessage, cause error) *domain.BookingResult {
	id := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	total, currency := bookedTotal(nil, payload, offer)
	result := &domain.BookingResult{
		PNR:         "SIM" + id[:3],
		OrderID:     "SIMULATED-" + id,
		Status:      domain.BookingConfirmed,
		Supplier:    Code,
		OfferID:     offer.ID,
		TotalAmount: total,
		Currency:    currency,
		Simulated:   true,
	}
	a.Log.Warn().
		Err(cause).
		Str("offer_id", offer.ID).
		Str("pnr", result.PNR).
		Msg("Sandbox cannot sell this segment, returning simulated booking")
	return result
}

// bookedTotal returns the amount the order was created for: the order response
// first, then the payload that was sent (priced when confirmed), then the quote.
func bookedTotal(ordered *flightOffer, payload json.RawMessage, offer domain.NormalizedOffer) (float64, string) {
	if ordered != nil {
		if total, ok := offerTotal(ordered.Price); ok {
			return total, base.FirstNonEmpty(ordered.Price.Currency, offer.Price.Currency)
		}
	}
	var sent flightOffer
	if err := json.Unmarshal(payload, &sent); err == nil {
		if total, ok := offerTotal(sent.Price); ok {
			return total, base.FirstNonEmpty(sent.Price.Currency, offer.Price.Currency)
		}
	}
	return offer.Price.Total, offer.Price.Currency
}

func offerTotal(p offerPrice) (float64, bool) {
	text := base.FirstNonEmpty(p.GrandTotal, p.Total)
	if text == "" {
		return 0, false
	}
	total, err := parseAmount(text)
	if err != nil {
		return 0, false
	}
	return total, true
}

// buildOrderTravelers maps passengers to provider travelers. Ids follow the
// search traveler order (adults, children, infants).
func buildOrderTravelers(passengers []domain.Passenger, now time.Time) []orderTraveler {
	ordered := make([]domain.Passenger, len(passengers))
	copy(ordered, passengers)
	sort.SliceStable(ordered, func(i, j int) bool {
		return typeRank(ordered[i].Type) < typeRank(ordered[j].Type)
	})

	email := base.ContactEmail(ordered)

	travelers := make([]orderTraveler, 0, len(ordered))
	for i, p := range ordered {
		t := orderTraveler{
			ID:          strconv.Itoa(i + 1),
			DateOfBirth: base.BirthDate(p, now).Format(domain.DateLayout),
			Name: travelerName{
				FirstName: strings.ToUpper(p.FirstName),
				LastName:  strings.ToUpper(p.LastName),
			},
			Gender: gender(p.Gender),
			Contact: travelerContact{
				EmailAddress: base.FirstNonEmpty(p.Email, email),
				Phones: []phone{{
					DeviceType:         "MOBILE",
					CountryCallingCode: base.FirstNonEmpty(p.CountryCallingCode, base.DefaultCallingCode),
					Number:             base.FirstNonEmpty(p.Phone, base.DefaultPhoneNumber),
				}},
			},
		}
		if p.DocumentNumber != "" {
			t.Documents = []document{buildDocument(p, now)}
		}
		travelers = append(travelers, t)
	}
	return travelers
}

func buildDocument(p domain.Passenger, now time.Time) document {
	issuer := strings.ToUpper(base.FirstNonEmpty(p.DocumentIssuingCountry, p.Nationality, defaultIssuerCountry))
	expiry := now.AddDate(5, 0, 0)
	if p.DocumentExpiry != nil {
		expiry = *p.DocumentExpiry
	}
	return document{
		DocumentType:    strings.ToUpper(base.FirstNonEmpty(p.DocumentType, defaultDocumentType)),
		Number:          p.DocumentNumber,
		ExpiryDate:      expiry.Format(domain.DateLayout),
		IssuanceCountry: issuer,
		ValidityCountry: issuer,
		Nationality:     strings.ToUpper(base.FirstNonEmpty(p.Nationality, issuer)),
		Holder:          true,
	}
}

func gender(g string) string {
	if strings.EqualFold(g, "female") {
		return "FEMALE"
	}
	return "MALE"
}

func typeRank(pt domain.PassengerType) int {
	switch pt {
	case domain.PassengerAdult:
		return 0
	case domain.PassengerChild:
		return 1
	default:
		return 2
	}
}
