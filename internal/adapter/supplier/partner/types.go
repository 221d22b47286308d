package partner

import "encoding/json"

// searchRequest is the static search payload.
type searchRequest struct {
	From       string `json:"from"`
	To         string `json:"to"`
	Date       string `json:"date"`
	ReturnDate string `json:"return_date,omitempty"`
	Adults     int    `json:"adults"`
	Children   int    `json:"children"`
	Infants    int    `json:"infants"`
	Cabin      string `json:"cabin"`
}

// envelope wraps every partner response. Some failures arrive as 200 with status "error".
type envelope struct {
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data"`
	Error  *apiError       `json:"error"`
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type searchData struct {
	Flights []json.RawMessage `json:"flights"`
}

// flight is one partner itinerary.
type flight struct {
	FlightID          string   `json:"flight_id"`
	ValidatingCarrier carrier  `json:"validating_carrier"`
	Outbound          journey  `json:"outbound"`
	Inbound           *journey `json:"inbound"`
	Fare              fare     `json:"fare"`
	SeatsLeft         int      `json:"seats_left"`
	Refundable        bool     `json:"refundable"`
	Holdable          bool     `json:"holdable"`
}

type journey struct {
	DurationMinutes int       `json:"duration_minutes"`
	Segments        []segment `json:"segments"`
}

type carrier struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

type airport struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	City     string `json:"city"`
	Terminal string `json:"terminal"`
	Timezone string `json:"timezone"`
}

type segment struct {
	FlightNumber     string   `json:"flight_number"`
	Carrier          carrier  `json:"carrier"`
	OperatingCarrier *carrier `json:"operating_carrier"`
	From             airport  `json:"from"`
	To               airport  `json:"to"`
	DepartureTime    string   `json:"departure_time"`
	ArrivalTime      string   `json:"arrival_time"`
	DurationMinutes  int      `json:"duration_minutes"`
	Aircraft         string   `json:"aircraft"`
	Cabin            string   `json:"cabin"`
	BookingClass     string   `json:"booking_class"`
	Baggage          baggage  `json:"baggage"`
}

type baggage struct {
	CabinKg       int `json:"cabin_kg"`
	CheckedKg     int `json:"checked_kg"`
	CheckedPieces int `json:"checked_pieces"`
}

type fare struct {
	Currency string  `json:"currency"`
	Base     float64 `json:"base"`
	Taxes    float64 `json:"taxes"`
	Total    float64 `json:"total"`
}

type bookingRequest struct {
	FlightID   string             `json:"flight_id"`
	Passengers []bookingPassenger `json:"passengers"`
	Contact    contact            `json:"contact"`
}

type bookingPassenger struct {
	Type        string `json:"type"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	DateOfBirth string `json:"date_of_birth"`
	Passport    string `json:"passport,omitempty"`
	Nationality string `json:"nationality,omitempty"`
}

type contact struct {
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type bookingData struct {
	BookingID string  `json:"booking_id"`
	PNR       string  `json:"pnr"`
	Status    string  `json:"status"`
	Total     float64 `json:"total"`
	Currency  string  `json:"currency"`
	PayBy     string  `json:"pay_by"`
}
