package ndc

import "encoding/json"

// offerRequestBody is the search request envelope.
type offerRequestBody struct {
	Data offerRequest `json:"data"`
}

type offerRequest struct {
	Slices     []sliceRequest     `json:"slices"`
	Passengers []passengerRequest `json:"passengers"`
	CabinClass string             `json:"cabin_class,omitempty"`
}

type sliceRequest struct {
	Origin        string `json:"origin"`
	Destination   string `json:"destination"`
	DepartureDate string `json:"departure_date"`
}

type passengerRequest struct {
	Type string `json:"type,omitempty"`
	Age  int    `json:"age,omitempty"`
}

// offerRequestResponse carries the offers raw so each can be replayed unmodified.
type offerRequestResponse struct {
	Data struct {
		ID     string            `json:"id"`
		Offers []json.RawMessage `json:"offers"`
	} `json:"data"`
}

// offerResponse is the single offer lookup used for price refresh.
type offerResponse struct {
	Data json.RawMessage `json:"data"`
}

// offer is the subset of a provider offer the normalizer and booking read.
type offer struct {
	ID                  string              `json:"id"`
	TotalAmount         string              `json:"total_amount"`
	TotalCurrency       string              `json:"total_currency"`
	BaseAmount          string              `json:"base_amount"`
	TaxAmount           string              `json:"tax_amount"`
	ExpiresAt           string              `json:"expires_at"`
	Owner               carrier             `json:"owner"`
	PaymentRequirements paymentRequirements `json:"payment_requirements"`
	Conditions          conditions          `json:"conditions"`
	Passengers          []offerPassenger    `json:"passengers"`
	Slices              []slice             `json:"slices"`
}

type carrier struct {
	IATACode string `json:"iata_code"`
	Name     string `json:"name"`
	LogoURL  string `json:"logo_symbol_url"`
}

type paymentRequirements struct {
	RequiresInstantPayment  bool   `json:"requires_instant_payment"`
	PriceGuaranteeExpiresAt string `json:"price_guarantee_expires_at"`
	PaymentRequiredBy       string `json:"payment_required_by"`
}

type conditions struct {
	RefundBeforeDeparture *condition `json:"refund_before_departure"`
	ChangeBeforeDeparture *condition `json:"change_before_departure"`
}

type condition struct {
	Allowed         bool   `json:"allowed"`
	PenaltyAmount   string `json:"penalty_amount"`
	PenaltyCurrency string `json:"penalty_currency"`
}

// offerPassenger is one provider traveler slot. Bookings must reuse these ids.
type offerPassenger struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Age  int    `json:"age"`
}

type slice struct {
	ID          string    `json:"id"`
	Duration    string    `json:"duration"`
	Origin      place     `json:"origin"`
	Destination place     `json:"destination"`
	Segments    []segment `json:"segments"`
}

type place struct {
	IATACode     string `json:"iata_code"`
	Name         string `json:"name"`
	IATACityCode string `json:"iata_city_code"`
}

type segment struct {
	ID                           string             `json:"id"`
	Origin                       place              `json:"origin"`
	Destination                  place              `json:"destination"`
	OriginTerminal               string             `json:"origin_terminal"`
	DestinationTerminal          string             `json:"destination_terminal"`
	DepartingAt                  string             `json:"departing_at"`
	ArrivingAt                   string             `json:"arriving_at"`
	Duration                     string             `json:"duration"`
	MarketingCarrier             carrier            `json:"marketing_carrier"`
	OperatingCarrier             carrier            `json:"operating_carrier"`
	MarketingCarrierFlightNumber string             `json:"marketing_carrier_flight_number"`
	Aircraft                     *aircraft          `json:"aircraft"`
	Passengers                   []segmentPassenger `json:"passengers"`
}

type aircraft struct {
	IATACode string `json:"iata_code"`
	Name     string `json:"name"`
}

type segmentPassenger struct {
	PassengerID   string    `json:"passenger_id"`
	CabinClass    string    `json:"cabin_class"`
	FareBasisCode string    `json:"fare_basis_code"`
	Baggages      []baggage `json:"baggages"`
}

type baggage struct {
	Type     string `json:"type"`
	Quantity int    `json:"quantity"`
}

// orderRequestBody is the order creation envelope.
type orderRequestBody struct {
	Data orderRequest `json:"data"`
}

type orderRequest struct {
	Type           string           `json:"type"`
	SelectedOffers []string         `json:"selected_offers"`
	Passengers     []orderPassenger `json:"passengers"`
	Payments       []payment        `json:"payments,omitempty"`
}

type orderPassenger struct {
	ID                string        `json:"id"`
	Title             string        `json:"title"`
	GivenName         string        `json:"given_name"`
	FamilyName        string        `json:"family_name"`
	Gender            string        `json:"gender"`
	BornOn            string        `json:"born_on"`
	Email             string        `json:"email"`
	PhoneNumber       string        `json:"phone_number"`
	InfantPassengerID string        `json:"infant_passenger_id,omitempty"`
	IdentityDocuments []identityDoc `json:"identity_documents,omitempty"`
}

type identityDoc struct {
	Type               string `json:"type"`
	UniqueIdentifier   string `json:"unique_identifier"`
	IssuingCountryCode string `json:"issuing_country_code"`
	ExpiresOn          string `json:"expires_on"`
}

type payment struct {
	Type     string `json:"type"`
	Currency string `json:"currency"`
	Amount   string `json:"amount"`
}

type orderResponse struct {
	Data struct {
		ID               string `json:"id"`
		BookingReference string `json:"booking_reference"`
		TotalAmount      string `json:"total_amount"`
		TotalCurrency    string `json:"total_currency"`
		PaymentStatus    struct {
			AwaitingPayment   bool   `json:"awaiting_payment"`
			PaymentRequiredBy string `json:"payment_required_by"`
		} `json:"payment_status"`
	} `json:"data"`
}
