package gds

import "encoding/json"

// tokenResponse is the OAuth2 client-credentials grant response.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
	State       string `json:"state"`
}

// searchRequest is the flight offers search body.
type searchRequest struct {
	CurrencyCode       string              `json:"currencyCode,omitempty"`
	OriginDestinations []originDestination `json:"originDestinations"`
	Travelers          []traveler          `json:"travelers"`
	Sources            []string            `json:"sources"`
	SearchCriteria     searchCriteria      `json:"searchCriteria"`
}

type originDestination struct {
	ID                      string        `json:"id"`
	OriginLocationCode      string        `json:"originLocationCode"`
	DestinationLocationCode string        `json:"destinationLocationCode"`
	DepartureDateTimeRange  dateTimeRange `json:"departureDateTimeRange"`
}

type dateTimeRange struct {
	Date string `json:"date"`
}

type traveler struct {
	ID                string   `json:"id"`
	TravelerType      string   `json:"travelerType"`
	AssociatedAdultID string   `json:"associatedAdultId,omitempty"`
	FareOptions       []string `json:"fareOptions,omitempty"`
}

type searchCriteria struct {
	MaxFlightOffers int           `json:"maxFlightOffers"`
	MaxPrice        int           `json:"maxPrice,omitempty"`
	FlightFilters   flightFilters `json:"flightFilters"`
}

type flightFilters struct {
	CabinRestrictions   []cabinRestriction   `json:"cabinRestrictions,omitempty"`
	CarrierRestrictions *carrierRestrictions `json:"carrierRestrictions,omitempty"`
}

type cabinRestriction struct {
	Cabin                string   `json:"cabin"`
	Coverage             string   `json:"coverage"`
	OriginDestinationIDs []string `json:"originDestinationIds"`
}

type carrierRestrictions struct {
	IncludedCarrierCodes []string `json:"includedCarrierCodes"`
}

// searchResponse is the flight offers search result.
// Offers are kept raw so they can be replayed byte for byte.
type searchResponse struct {
	Data         []json.RawMessage `json:"data"`
	Dictionaries dictionaries      `json:"dictionaries"`
}

type dictionaries struct {
	Carriers map[string]string `json:"carriers"`
	Aircraft map[string]string `json:"aircraft"`
}

// flightOffer is the subset of a provider offer the normalizer reads.
type flightOffer struct {
	Type                     string            `json:"type"`
	ID                       string            `json:"id"`
	Source                   string            `json:"source"`
	InstantTicketingRequired bool              `json:"instantTicketingRequired"`
	LastTicketingDate        string            `json:"lastTicketingDate"`
	NumberOfBookableSeats    int               `json:"numberOfBookableSeats"`
	Itineraries              []itinerary       `json:"itineraries"`
	Price                    offerPrice        `json:"price"`
	ValidatingAirlineCodes   []string          `json:"validatingAirlineCodes"`
	TravelerPricings         []travelerPricing `json:"travelerPricings"`
}

type itinerary struct {
	Duration string    `json:"duration"`
	Segments []segment `json:"segments"`
}

type segment struct {
	ID            string       `json:"id"`
	Departure     endpoint     `json:"departure"`
	Arrival       endpoint     `json:"arrival"`
	CarrierCode   string       `json:"carrierCode"`
	Number        string       `json:"number"`
	Aircraft      aircraftRef  `json:"aircraft"`
	Operating     *operatorRef `json:"operating"`
	Duration      string       `json:"duration"`
	NumberOfStops int          `json:"numberOfStops"`
}

type endpoint struct {
	IATACode string `json:"iataCode"`
	Terminal string `json:"terminal"`
	At       string `json:"at"`
}

type aircraftRef struct {
	Code string `json:"code"`
}

type operatorRef struct {
	CarrierCode string `json:"carrierCode"`
}

type offerPrice struct {
	Currency   string `json:"currency"`
	Total      string `json:"total"`
	Base       string `json:"base"`
	GrandTotal string `json:"grandTotal"`
	Fees       []fee  `json:"fees"`
}

type fee struct {
	Amount string `json:"amount"`
	Type   string `json:"type"`
}

type travelerPricing struct {
	TravelerID           string        `json:"travelerId"`
	FareOption           string        `json:"fareOption"`
	TravelerType         string        `json:"travelerType"`
	Price                travelerPrice `json:"price"`
	FareDetailsBySegment []segmentFare `json:"fareDetailsBySegment"`
}

type travelerPrice struct {
	Currency string `json:"currency"`
	Total    string `json:"total"`
	Base     string `json:"base"`
}

type segmentFare struct {
	SegmentID           string      `json:"segmentId"`
	Cabin               string      `json:"cabin"`
	FareBasis           string      `json:"fareBasis"`
	Class               string      `json:"class"`
	IncludedCheckedBags checkedBags `json:"includedCheckedBags"`
	Amenities           []amenity   `json:"amenities"`
}

type checkedBags struct {
	Quantity   int    `json:"quantity"`
	Weight     int    `json:"weight"`
	WeightUnit string `json:"weightUnit"`
}

type amenity struct {
	Description  string `json:"description"`
	IsChargeable bool   `json:"isChargeable"`
	AmenityType  string `json:"amenityType"`
}

// pricingRequest re-submits a raw offer for price confirmation.
type pricingRequest struct {
	Data pricingData `json:"data"`
}

type pricingData struct {
	Type         string            `json:"type"`
	FlightOffers []json.RawMessage `json:"flightOffers"`
}

type pricingResponse struct {
	Data         pricingData  `json:"data"`
	Dictionaries dictionaries `json:"dictionaries"`
}

// orderRequest creates a flight order from a raw offer.
type orderRequest struct {
	Data orderData `json:"data"`
}

type orderData struct {
	Type               string             `json:"type"`
	FlightOffers       []json.RawMessage  `json:"flightOffers"`
	Travelers          []orderTraveler    `json:"travelers"`
	TicketingAgreement ticketingAgreement `json:"ticketingAgreement"`
}

type orderTraveler struct {
	ID          string          `json:"id"`
	DateOfBirth string          `json:"dateOfBirth"`
	Name        travelerName    `json:"name"`
	Gender      string          `json:"gender"`
	Contact     travelerContact `json:"contact"`
	Documents   []document      `json:"documents,omitempty"`
}

type travelerName struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type travelerContact struct {
	EmailAddress string  `json:"emailAddress"`
	Phones       []phone `json:"phones"`
}

type phone struct {
	DeviceType         string `json:"deviceType"`
	CountryCallingCode string `json:"countryCallingCode"`
	Number             string `json:"number"`
}

type document struct {
	DocumentType    string `json:"documentType"`
	Number          string `json:"number"`
	ExpiryDate      string `json:"expiryDate"`
	IssuanceCountry string `json:"issuanceCountry"`
	ValidityCountry string `json:"validityCountry"`
	Nationality     string `json:"nationality"`
	Holder          bool   `json:"holder"`
}

type ticketingAgreement struct {
	Option string `json:"option"`
	Delay  string `json:"delay,omitempty"`
}

type orderResponse struct {
	Data struct {
		Type              string             `json:"type"`
		ID                string             `json:"id"`
		AssociatedRecords []associatedRecord `json:"associatedRecords"`
		FlightOffers      []flightOffer      `json:"flightOffers"`
	} `json:"data"`
}

type associatedRecord struct {
	Reference        string `json:"reference"`
	OriginSystemCode string `json:"originSystemCode"`
}

// seatmapRequest asks for the seat maps of a raw offer.
type seatmapRequest struct {
	Data []json.RawMessage `json:"data"`
}

type seatmapResponse struct {
	Data []seatmap `json:"data"`
}

type seatmap struct {
	SegmentID   string `json:"segmentId"`
	CarrierCode string `json:"carrierCode"`
	Number      string `json:"number"`
	Decks       []deck `json:"decks"`
}

type deck struct {
	DeckType string     `json:"deckType"`
	Seats    []wireSeat `json:"seats"`
}

type wireSeat struct {
	Cabin                string            `json:"cabin"`
	Number               string            `json:"number"`
	CharacteristicsCodes []string          `json:"characteristicsCodes"`
	TravelerPricing      []seatTravelerFee `json:"travelerPricing"`
}

type seatTravelerFee struct {
	TravelerID             string     `json:"travelerId"`
	SeatAvailabilityStatus string     `json:"seatAvailabilityStatus"`
	Price                  *seatPrice `json:"price"`
}

type seatPrice struct {
	Currency string `json:"currency"`
	Total    string `json:"total"`
}
