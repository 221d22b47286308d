package ndc

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/flight-search/flight-supplier-gateway/internal/adapter/supplier/base"
	"github.com/flight-search/flight-supplier-gateway/internal/domain"
)

// Order types.
const (
	orderInstant = "instant"
	orderHold    = "hold"
)

// Book creates an order. Offers that require instant payment are paid from the
// account balance; all others are held until the provider's payment deadline.
func (a *Adapter) Book(ctx context.Context, quoted domain.NormalizedOffer, passengers []domain.Passenger) (*domain.BookingResult, error) {
	result, err := a.book(ctx, quoted, passengers)
	a.Observe(ctx, err)
	if err != nil {
		a.LogFailure("book", err)
		return nil, err
	}
	return result, nil
}

func (a *Adapter) book(ctx context.Context, quoted domain.NormalizedOffer, passengers []domain.Passenger) (*domain.BookingResult, error) {
	if len(passengers) == 0 {
		return nil, a.Err("book", domain.ErrInvalidRequest, errors.New("no passengers"))
	}
	payload, err := a.Offers.BookingPayload(ctx, quoted)
	if err != nil {
		return nil, err
	}
	o, err := decodeOffer(payload)
	if err != nil {
		return nil, a.Err("book", domain.ErrInvalidRequest, err)
	}

	travelers, err := assignPassengers(o.Passengers, passengers, a.Clock.Now())
	if err != nil {
		return nil, a.Err("book", kindOf(err), err)
	}

	order := orderRequest{
		Type:           orderHold,
		SelectedOffers: []string{o.ID},
		Passengers:     travelers,
	}
	if o.PaymentRequirements.RequiresInstantPayment {
		order.Type = orderInstant
		order.Payments = []payment{{Type: "balance", Currency: o.TotalCurrency, Amount: o.TotalAmount}}
	}

	var resp orderResponse
	req := a.request("book", http.MethodPost, ordersPath, nil)
	req.NoRetry = true
	httpResp, err := a.DoJSON(ctx, req, orderRequestBody{Data: order}, &resp)
	if err != nil {
		return nil, a.translateExpired("book", httpResp, err)
	}

	result := &domain.BookingResult{
		PNR:         resp.Data.BookingReference,
		OrderID:     resp.Data.ID,
		Status:      domain.BookingConfirmed,
		Supplier:    Code,
		OfferID:     quoted.ID,
		TotalAmount: quoted.Price.Total,
		Currency:    quoted.Price.Currency,
		RawResponse: httpResp.Body,
	}
	if total, err := parseAmount(resp.Data.TotalAmount); err == nil && total > 0 {
		result.TotalAmount = total
		result.Currency = strings.ToUpper(resp.Data.TotalCurrency)
	}
	if order.Type == orderHold {
		result.Status = domain.BookingOnHold
		deadline := base.FirstNonEmpty(resp.Data.PaymentStatus.PaymentRequiredBy, o.PaymentRequirements.PaymentRequiredBy)
		if t, err := time.Parse(time.RFC3339, deadline); err == nil {
			result.PaymentRequiredBy = &t
		}
	}

	a.Log.Info().
		Str("offer_id", quoted.ID).
		Str("pnr", result.PNR).
		Str("order_type", order.Type).
		Msg("NDC order created")
	return result, nil
}

// assignPassengers maps passengers onto the provider's own traveler slots.
// Slots are grouped by type and consumed in order; a passenger whose type has
// no slot left fails the booking. Each infant travels on an adult's lap.
func assignPassengers(slots []offerPassenger, passengers []domain.Passenger, now time.Time) ([]orderPassenger, error) {
	free := map[domain.PassengerType][]string{}
	for _, s := range slots {
		pt := passengerType(s)
		free[pt] = append(free[pt], s.ID)
	}

	email := base.ContactEmail(passengers)
	out := make([]orderPassenger, 0, len(passengers))
	var adults []int
	var infantIDs []string

	for _, p := range passengers {
		ids := free[p.Type]
		if len(ids) == 0 {
			return nil, fmt.Errorf("%w %s", domain.ErrPassengerSlotUnavailable, p.Type)
		}
		id := ids[0]
		free[p.Type] = ids[1:]

		switch p.Type {
		case domain.PassengerAdult:
			adults = append(adults, len(out))
		case domain.PassengerInfant:
			infantIDs = append(infantIDs, id)
		}
		out = append(out, orderPassenger{
			ID:                id,
			Title:             title(p),
			GivenName:         p.FirstName,
			FamilyName:        p.LastName,
			Gender:            genderCode(p.Gender),
			BornOn:            base.BirthDate(p, now).Format(domain.DateLayout),
			Email:             base.FirstNonEmpty(p.Email, email),
			PhoneNumber:       phoneNumber(p),
			IdentityDocuments: identityDocuments(p),
		})
	}

	if len(infantIDs) > len(adults) {
		return nil, fmt.Errorf("%w: %d infants but only %d adults", domain.ErrInvalidRequest, len(infantIDs), len(adults))
	}
	for i, infantID := range infantIDs {
		out[adults[i]].InfantPassengerID = infantID
	}
	return out, nil
}

// kindOf picks the error kind for a passenger mapping failure.
func kindOf(err error) error {
	if errors.Is(err, domain.ErrPassengerSlotUnavailable) {
		return domain.ErrPassengerSlotUnavailable
	}
	return domain.ErrInvalidRequest
}

func title(p domain.Passenger) string {
	if p.Title != "" {
		return strings.ToLower(p.Title)
	}
	if strings.EqualFold(p.Gender, "female") {
		return "ms"
	}
	return "mr"
}

func genderCode(g string) string {
	if strings.EqualFold(g, "female") {
		return "f"
	}
	return "m"
}

// phoneNumber renders an E.164 number.
func phoneNumber(p domain.Passenger) string {
	code := strings.TrimPrefix(base.FirstNonEmpty(p.CountryCallingCode, base.DefaultCallingCode), "+")
	number := base.FirstNonEmpty(p.Phone, base.DefaultPhoneNumber)
	if strings.HasPrefix(number, "+") {
		return number
	}
	return "+" + code + number
}

func identityDocuments(p domain.Passenger) []identityDoc {
	if p.DocumentNumber == "" {
		return nil
	}
	doc := identityDoc{
		Type:               "passport",
		UniqueIdentifier:   p.DocumentNumber,
		IssuingCountryCode: strings.ToUpper(base.FirstNonEmpty(p.DocumentIssuingCountry, p.Nationality)),
	}
	if p.DocumentExpiry != nil {
		doc.ExpiresOn = p.DocumentExpiry.Format(domain.DateLayout)
	}
	return []identityDoc{doc}
}
