package ndc

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flight-search/flight-supplier-gateway/internal/adapter/supplier/base"
	"github.com/flight-search/flight-supplier-gateway/internal/config"
	"github.com/flight-search/flight-supplier-gateway/internal/domain"
	"github.com/flight-search/flight-supplier-gateway/internal/infrastructure/cache"
	"github.com/flight-search/flight-supplier-gateway/internal/infrastructure/timeutil"
	"github.com/flight-search/flight-supplier-gateway/internal/offercache"
	"github.com/flight-search/flight-supplier-gateway/test/testutil"
)

const (
	heldOfferID    = "off_0000AEdGRhtp5AUUdJqMxa"
	instantOfferID = "off_0000AEdGRhtp5AUUdJqMxb"
)

var now = time.Date(2025, 12, 15, 10, 0, 0, 0, time.UTC)

// fakeNDC is a scripted provider. Handlers may be replaced per test.
type fakeNDC struct {
	server *httptest.Server

	searchCalls atomic.Int32
	offerCalls  atomic.Int32
	orderCalls  atomic.Int32

	search   http.HandlerFunc
	offer    http.HandlerFunc
	order    http.HandlerFunc
	airlines http.HandlerFunc
}

func newFakeNDC(t *testing.T) *fakeNDC {
	t.Helper()
	f := &fakeNDC{}
	f.search = testutil.ServeFixture(t, http.StatusCreated, "ndc/offer_request.json")
	f.offer = func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, `{"errors":[{"code":"not_found","title":"Not found"}]}`)
	}
	f.order = func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusCreated, `{"data":{"id":"ord_0001","booking_reference":"RZPVYO","total_amount":"520.00","total_currency":"USD","payment_status":{"awaiting_payment":true,"payment_required_by":"2025-12-17T10:00:00Z"}}}`)
	}
	f.airlines = func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"data":[{"iata_code":"BA","name":"British Airways"}]}`)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/air/offer_requests", func(w http.ResponseWriter, r *http.Request) {
		f.searchCalls.Add(1)
		f.search(w, r)
	})
	mux.HandleFunc("/air/offers/", func(w http.ResponseWriter, r *http.Request) {
		f.offerCalls.Add(1)
		f.offer(w, r)
	})
	mux.HandleFunc("/air/orders", func(w http.ResponseWriter, r *http.Request) {
		f.orderCalls.Add(1)
		f.order(w, r)
	})
	mux.HandleFunc("/air/airlines", func(w http.ResponseWriter, r *http.Request) {
		f.airlines(w, r)
	})

	f.server = httptest.NewServer(mux)
	t.Cleanup(f.server.Close)
	return f
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func ndcSettings(baseURL string) config.SupplierSettings {
	s := config.DefaultSupplierSettings(config.SupplierNDC, nil)
	s.BaseURL = baseURL
	s.APIKey = "duffel_test_key"
	s.RetryTimes = 1
	s.RetryDelay = time.Millisecond
	s.Timeout = 2 * time.Second
	return s
}

func newTestAdapter(t *testing.T, baseURL string) (*Adapter, *timeutil.MockClock) {
	t.Helper()
	clock := timeutil.NewMockClock(now)
	store := cache.NewMemoryStore(clock)
	a := NewAdapter(ndcSettings(baseURL), base.Deps{
		Offers:   offercache.NewOffers(store, 30*time.Minute),
		Searches: offercache.NewSearches(store, 5*time.Minute),
		Clock:    clock,
	})
	return a, clock
}

func family() domain.SearchRequest {
	return domain.SearchRequest{
		Origin:        "JFK",
		Destination:   "LHR",
		DepartureDate: "2025-12-20",
		Adults:        1,
		Children:      1,
		Infants:       1,
		Cabin:         domain.CabinEconomy,
	}
}

func familyPassengers() []domain.Passenger {
	return []domain.Passenger{
		{Type: domain.PassengerAdult, FirstName: "Amelia", LastName: "Earhart", Gender: "female", Email: "amelia@example.com"},
		{Type: domain.PassengerChild, FirstName: "Tom", LastName: "Earhart"},
		{Type: domain.PassengerInfant, FirstName: "Ann", LastName: "Earhart"},
	}
}

// fixtureOffer returns one offer from the search fixture with fields overridden.
func fixtureOffer(t *testing.T, id string, overrides map[string]any) json.RawMessage {
	t.Helper()
	var resp struct {
		Data struct {
			Offers []map[string]any `json:"offers"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(testutil.LoadTestJSON(t, "ndc/offer_request.json"), &resp))
	for _, o := range resp.Data.Offers {
		if o["id"] == id {
			for k, v := range overrides {
				o[k] = v
			}
			data, err := json.Marshal(o)
			require.NoError(t, err)
			return data
		}
	}
	t.Fatalf("offer %s not in fixture", id)
	return nil
}

func searchFamily(t *testing.T, a *Adapter) map[string]domain.NormalizedOffer {
	t.Helper()
	offers, err := a.Search(context.Background(), family())
	require.NoError(t, err)
	byRef := map[string]domain.NormalizedOffer{}
	for _, o := range offers {
		byRef[o.ReferenceID] = o
	}
	return byRef
}

func TestAdapter_Search(t *testing.T) {
	fake := newFakeNDC(t)
	fixture := fake.search
	fake.search = func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "true", r.URL.Query().Get("return_offers"))
		assert.Equal(t, "Bearer duffel_test_key", r.Header.Get("Authorization"))
		assert.Equal(t, "v2", r.Header.Get("Duffel-Version"))

		var body offerRequestBody
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Len(t, body.Data.Slices, 1)
		assert.Equal(t, "economy", body.Data.CabinClass)
		assert.Equal(t, []passengerRequest{{Type: "adult"}, {Age: childAge}, {Type: "infant_without_seat"}}, body.Data.Passengers)
		fixture(w, r)
	}
	a, _ := newTestAdapter(t, fake.server.URL)

	offers, err := a.Search(context.Background(), family())
	require.NoError(t, err)
	require.Len(t, offers, 2)

	t.Run("held offer", func(t *testing.T) {
		o := offers[0]
		assert.Equal(t, "ndc_"+heldOfferID+"_0", o.ID)
		supplier, ref, index, err := domain.ParseOfferID(o.ID)
		require.NoError(t, err)
		assert.Equal(t, Code, supplier)
		assert.Equal(t, heldOfferID, ref)
		assert.Equal(t, 0, index)

		assert.Equal(t, 520.00, o.Price.Total)
		assert.Equal(t, 450.00, o.Price.BaseFare)
		assert.Equal(t, 70.00, o.Price.Taxes)
		assert.Empty(t, o.Price.Breakdown)
		assert.True(t, o.Price.Guaranteed)
		assert.True(t, o.Refundable)
		assert.True(t, o.OnHoldable)
		assert.Zero(t, o.SeatsAvailable, "the provider reports no seat count")
		assert.Equal(t, now.Add(20*time.Minute), o.ExpiresAt, "provider expiry is earlier than the cache TTL")
		assert.Equal(t, "British Airways", o.ValidatingAirline.Name)
		assert.NotEmpty(t, o.ValidatingAirline.Logo)

		seg := o.Legs[0].Segments[0]
		assert.Equal(t, "BA117", seg.FlightNumber)
		assert.Equal(t, "Boeing 777-300ER", seg.Aircraft)
		assert.Equal(t, "5", seg.Arrival.Terminal)
		assert.Equal(t, "LON", seg.Arrival.CityCode)
		assert.Equal(t, 1, seg.Baggage.CheckedPieces)
		assert.Equal(t, 420, o.Legs[0].DurationMinutes)
	})

	t.Run("instant payment offer", func(t *testing.T) {
		o := offers[1]
		assert.InDelta(t, 39.90, o.Price.Taxes, 0.001)
		assert.False(t, o.Price.Guaranteed)
		assert.False(t, o.Refundable)
		assert.False(t, o.OnHoldable)
		assert.Equal(t, now.Add(30*time.Minute), o.ExpiresAt)

		leg := o.Legs[0]
		assert.Equal(t, 545, leg.DurationMinutes)
		assert.Equal(t, 1, leg.Stops)
		assert.Equal(t, "BOS", leg.Segments[0].Arrival.AirportCode)
		assert.Equal(t, "BA", leg.Segments[1].OperatingAirline.Code)
		assert.Empty(t, leg.Segments[1].Aircraft)
	})

	for _, o := range offers {
		assert.True(t, o.Price.Reconciles(), o.ID)
	}
}

func TestAdapter_Search_RoundTrip(t *testing.T) {
	fake := newFakeNDC(t)
	fixture := fake.search
	fake.search = func(w http.ResponseWriter, r *http.Request) {
		var body offerRequestBody
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Len(t, body.Data.Slices, 2)
		assert.Equal(t, sliceRequest{Origin: "LHR", Destination: "JFK", DepartureDate: "2025-12-27"}, body.Data.Slices[1])
		assert.Equal(t, "business", body.Data.CabinClass)
		fixture(w, r)
	}
	a, _ := newTestAdapter(t, fake.server.URL)

	req := family()
	req.ReturnDate = "2025-12-27"
	req.Cabin = domain.CabinBusiness
	_, err := a.Search(context.Background(), req)
	require.NoError(t, err)
}

func TestAdapter_Search_Failure(t *testing.T) {
	fake := newFakeNDC(t)
	fake.search = func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusInternalServerError, `{"errors":[{"code":"internal_server_error"}]}`)
	}
	a, _ := newTestAdapter(t, fake.server.URL)

	offers, err := a.Search(context.Background(), family())
	assert.ErrorIs(t, err, domain.ErrTransport)
	assert.Nil(t, offers)
	assert.Equal(t, int32(1), fake.searchCalls.Load(), "500 is not retried")
	assert.False(t, a.IsAvailable())
}

func TestAdapter_GetOfferDetails(t *testing.T) {
	fake := newFakeNDC(t)
	a, clock := newTestAdapter(t, fake.server.URL)
	ctx := context.Background()

	offers := searchFamily(t, a)
	quoted := offers[instantOfferID]

	got, err := a.GetOfferDetails(ctx, quoted.ID)
	require.NoError(t, err)
	assert.Equal(t, quoted.Price, got.Price)
	assert.Equal(t, quoted.Legs[0].Segments[1].FlightNumber, got.Legs[0].Segments[1].FlightNumber)

	// The held offer expires with the provider after 20 minutes.
	clock.Advance(21 * time.Minute)
	_, err = a.GetOfferDetails(ctx, offers[heldOfferID].ID)
	assert.ErrorIs(t, err, domain.ErrOfferNotFound)
	_, err = a.GetOfferDetails(ctx, quoted.ID)
	assert.NoError(t, err)
}

func TestAdapter_PriceOfferThenBook(t *testing.T) {
	fake := newFakeNDC(t)
	refreshed := fixtureOffer(t, instantOfferID, map[string]any{"total_amount": "399.90", "base_amount": "350.00", "tax_amount": "49.90"})
	fake.offer = func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/air/offers/"+instantOfferID, r.URL.Path)
		writeJSON(w, http.StatusOK, `{"data":`+string(refreshed)+`}`)
	}
	fake.order = func(w http.ResponseWriter, r *http.Request) {
		var body orderRequestBody
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, orderInstant, body.Data.Type)
		assert.Equal(t, []string{instantOfferID}, body.Data.SelectedOffers)
		assert.Equal(t, []payment{{Type: "balance", Currency: "USD", Amount: "399.90"}}, body.Data.Payments, "pays the refreshed amount")
		writeJSON(w, http.StatusCreated, `{"data":{"id":"ord_0002","booking_reference":"QWERTY","total_amount":"399.90","total_currency":"USD","payment_status":{"awaiting_payment":false}}}`)
	}
	a, _ := newTestAdapter(t, fake.server.URL)
	ctx := context.Background()

	quoted := searchFamily(t, a)[instantOfferID]

	priced, err := a.PriceOffer(ctx, quoted)
	require.NoError(t, err)
	assert.True(t, priced.PriceChanged)
	assert.Equal(t, 389.90, priced.PreviousTotal)
	assert.Equal(t, 399.90, priced.Offer.Price.Total)
	assert.InDelta(t, 49.90, priced.Offer.Price.Taxes, 0.001)
	assert.Equal(t, quoted.ID, priced.Offer.ID)

	result, err := a.Book(ctx, quoted, familyPassengers())
	require.NoError(t, err)
	assert.Equal(t, "QWERTY", result.PNR)
	assert.Equal(t, "ord_0002", result.OrderID)
	assert.Equal(t, domain.BookingConfirmed, result.Status)
	assert.Nil(t, result.PaymentRequiredBy)
	assert.Equal(t, 399.90, result.TotalAmount)
}

func TestAdapter_PriceOffer_Expired(t *testing.T) {
	fake := newFakeNDC(t)
	fake.offer = func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, `{"errors":[{"code":"offer_no_longer_available","title":"Offer no longer available","message":"Please select another offer"}]}`)
	}
	a, _ := newTestAdapter(t, fake.server.URL)

	quoted := searchFamily(t, a)[heldOfferID]
	_, err := a.PriceOffer(context.Background(), quoted)

	assert.ErrorIs(t, err, domain.ErrOfferExpired)
	assert.True(t, domain.IsNotFound(err))
	assert.True(t, a.IsAvailable(), "an expired offer says nothing about supplier health")
}

func TestAdapter_Book_Hold(t *testing.T) {
	fake := newFakeNDC(t)
	fake.order = func(w http.ResponseWriter, r *http.Request) {
		var body orderRequestBody
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, orderHold, body.Data.Type)
		assert.Empty(t, body.Data.Payments)

		require.Len(t, body.Data.Passengers, 3)
		adult := body.Data.Passengers[0]
		assert.Equal(t, "pas_0001", adult.ID)
		assert.Equal(t, "ms", adult.Title)
		assert.Equal(t, "f", adult.Gender)
		assert.Equal(t, "pas_0003", adult.InfantPassengerID)
		assert.Equal(t, "+10000000000", adult.PhoneNumber)
		assert.Equal(t, "pas_0002", body.Data.Passengers[1].ID)
		assert.Equal(t, "amelia@example.com", body.Data.Passengers[1].Email)
		assert.Equal(t, "2024-12-15", body.Data.Passengers[2].BornOn)

		writeJSON(w, http.StatusCreated, `{"data":{"id":"ord_0001","booking_reference":"RZPVYO","total_amount":"520.00","total_currency":"USD","payment_status":{"awaiting_payment":true,"payment_required_by":"2025-12-17T10:00:00Z"}}}`)
	}
	a, _ := newTestAdapter(t, fake.server.URL)

	quoted := searchFamily(t, a)[heldOfferID]
	result, err := a.Book(context.Background(), quoted, familyPassengers())
	require.NoError(t, err)

	assert.Equal(t, domain.BookingOnHold, result.Status)
	assert.Equal(t, "RZPVYO", result.PNR)
	require.NotNil(t, result.PaymentRequiredBy)
	assert.Equal(t, time.Date(2025, 12, 17, 10, 0, 0, 0, time.UTC), result.PaymentRequiredBy.UTC())
	assert.False(t, result.Simulated)
}

func TestAdapter_Book_Failures(t *testing.T) {
	tests := []struct {
		name       string
		passengers []domain.Passenger
		status     int
		body       string
		wantErr    error
		wantCalls  int32
	}{
		{
			name:       "no slot left for type",
			passengers: []domain.Passenger{{Type: domain.PassengerAdult}, {Type: domain.PassengerAdult}},
			wantErr:    domain.ErrPassengerSlotUnavailable,
			wantCalls:  0,
		},
		{
			name:       "no passengers",
			passengers: nil,
			wantErr:    domain.ErrInvalidRequest,
			wantCalls:  0,
		},
		{
			name:       "expired code",
			passengers: familyPassengers(),
			status:     http.StatusUnprocessableEntity,
			body:       `{"errors":[{"code":"offer_expired","title":"Offer expired"}]}`,
			wantErr:    domain.ErrOfferExpired,
			wantCalls:  1,
		},
		{
			name:       "expiry stated in message only",
			passengers: familyPassengers(),
			status:     http.StatusUnprocessableEntity,
			body:       `{"errors":[{"code":"invalid_state","message":"The selected offer is no longer available"}]}`,
			wantErr:    domain.ErrOfferExpired,
			wantCalls:  1,
		},
		{
			name:       "genuine rejection",
			passengers: familyPassengers(),
			status:     http.StatusUnprocessableEntity,
			body:       `{"errors":[{"code":"invalid_phone_number","message":"Phone number is not valid"}]}`,
			wantErr:    domain.ErrProviderRejected,
			wantCalls:  1,
		},
		{
			name:       "gateway failure is not retried",
			passengers: familyPassengers(),
			status:     http.StatusBadGateway,
			wantErr:    domain.ErrTransport,
			wantCalls:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := newFakeNDC(t)
			fake.order = func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, tt.status, tt.body)
			}
			a, _ := newTestAdapter(t, fake.server.URL)
			quoted := searchFamily(t, a)[heldOfferID]

			result, err := a.Book(context.Background(), quoted, tt.passengers)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, result)
			assert.Equal(t, tt.wantCalls, fake.orderCalls.Load())
		})
	}
}

func TestAdapter_TestConnection(t *testing.T) {
	fake := newFakeNDC(t)
	fake.airlines = func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1", r.URL.Query().Get("limit"))
		if r.Header.Get("Authorization") != "Bearer duffel_test_key" {
			writeJSON(w, http.StatusUnauthorized, `{"errors":[{"code":"unauthorized"}]}`)
			return
		}
		writeJSON(w, http.StatusOK, `{"data":[]}`)
	}
	a, _ := newTestAdapter(t, fake.server.URL)

	result := a.TestConnection(context.Background())
	assert.True(t, result.Success)

	a.Settings.APIKey = "revoked"
	result = a.TestConnection(context.Background())
	assert.False(t, result.Success)
	assert.Equal(t, "credentials rejected", result.Message)
	assert.False(t, a.IsAvailable())
}

func TestAssignPassengers(t *testing.T) {
	slots := []offerPassenger{
		{ID: "pas_a1", Type: "adult"},
		{ID: "pas_a2", Type: "adult"},
		{ID: "pas_c1", Age: 9},
		{ID: "pas_i1", Type: "infant_without_seat"},
	}

	t.Run("slots consumed in order per type", func(t *testing.T) {
		passengers := []domain.Passenger{
			{Type: domain.PassengerChild, FirstName: "C"},
			{Type: domain.PassengerInfant, FirstName: "I"},
			{Type: domain.PassengerAdult, FirstName: "A1"},
			{Type: domain.PassengerAdult, FirstName: "A2", CountryCallingCode: "+44", Phone: "7700900123"},
		}
		out, err := assignPassengers(slots, passengers, now)
		require.NoError(t, err)
		require.Len(t, out, 4)

		assert.Equal(t, "pas_c1", out[0].ID)
		assert.Equal(t, "pas_i1", out[1].ID)
		assert.Equal(t, "pas_a1", out[2].ID)
		assert.Equal(t, "pas_a2", out[3].ID)
		assert.Equal(t, "pas_i1", out[2].InfantPassengerID, "infant rides with the first adult")
		assert.Empty(t, out[3].InfantPassengerID)
		assert.Equal(t, "+447700900123", out[3].PhoneNumber)
		assert.Equal(t, "2017-12-15", out[0].BornOn)
	})

	t.Run("more infants than adults", func(t *testing.T) {
		infantSlots := []offerPassenger{{ID: "pas_i1", Type: "infant_without_seat"}}
		_, err := assignPassengers(infantSlots, []domain.Passenger{{Type: domain.PassengerInfant}}, now)
		assert.ErrorIs(t, err, domain.ErrInvalidRequest)
	})

	t.Run("type without slot", func(t *testing.T) {
		_, err := assignPassengers(slots[:2], []domain.Passenger{{Type: domain.PassengerChild}}, now)
		assert.ErrorIs(t, err, domain.ErrPassengerSlotUnavailable)
	})
}

func TestPassengerType(t *testing.T) {
	tests := []struct {
		slot offerPassenger
		want domain.PassengerType
	}{
		{offerPassenger{Type: "adult"}, domain.PassengerAdult},
		{offerPassenger{Type: "child"}, domain.PassengerChild},
		{offerPassenger{Type: "infant_without_seat"}, domain.PassengerInfant},
		{offerPassenger{Age: 8}, domain.PassengerChild},
		{offerPassenger{Age: 1}, domain.PassengerInfant},
		{offerPassenger{Age: 35}, domain.PassengerAdult},
		{offerPassenger{}, domain.PassengerAdult},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, passengerType(tt.slot), "%+v", tt.slot)
	}
}

func TestNormalizePrice(t *testing.T) {
	tests := []struct {
		name      string
		offer     offer
		wantBase  float64
		wantTaxes float64
		wantErr   bool
	}{
		{name: "all components", offer: offer{TotalAmount: "520.00", BaseAmount: "450.00", TaxAmount: "70.00"}, wantBase: 450, wantTaxes: 70},
		{name: "tax derived from base", offer: offer{TotalAmount: "389.90", BaseAmount: "350.00"}, wantBase: 350, wantTaxes: 39.90},
		{name: "tax that does not reconcile is ignored", offer: offer{TotalAmount: "520.00", BaseAmount: "450.00", TaxAmount: "10.00"}, wantBase: 450, wantTaxes: 70},
		{name: "base derived from tax", offer: offer{TotalAmount: "520.00", TaxAmount: "70.00"}, wantBase: 450, wantTaxes: 70},
		{name: "total only is all base fare", offer: offer{TotalAmount: "520.00"}, wantBase: 520, wantTaxes: 0},
		{name: "tax above total is ignored", offer: offer{TotalAmount: "50.00", TaxAmount: "70.00"}, wantBase: 50, wantTaxes: 0},
		{name: "bad total", offer: offer{TotalAmount: "abc"}, wantErr: true},
		{name: "bad base", offer: offer{TotalAmount: "520.00", BaseAmount: "abc"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.offer.TotalCurrency = "GBP"
			got, err := normalizePrice(tt.offer)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.wantBase, got.BaseFare, 0.001)
			assert.InDelta(t, tt.wantTaxes, got.Taxes, 0.001)
			assert.InDelta(t, tt.wantBase+tt.wantTaxes, got.Total, 0.001)
			assert.Equal(t, "GBP", got.Currency)
		})
	}
}
