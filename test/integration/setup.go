// Package integration provides helpers and integration tests for the supplier gateway.
// Integration tests verify that components work together correctly, including
// HTTP handlers, the supplier manager, real adapters and supplier doubles.
package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	httpAdapter "github.com/flight-search/flight-supplier-gateway/internal/adapter/http"
	"github.com/flight-search/flight-supplier-gateway/internal/adapter/http/middleware"
	"github.com/flight-search/flight-supplier-gateway/internal/adapter/http/response"
	"github.com/flight-search/flight-supplier-gateway/internal/adapter/supplier/base"
	"github.com/flight-search/flight-supplier-gateway/internal/adapter/supplier/gds"
	"github.com/flight-search/flight-supplier-gateway/internal/adapter/supplier/local"
	"github.com/flight-search/flight-supplier-gateway/internal/config"
	"github.com/flight-search/flight-supplier-gateway/internal/domain"
	"github.com/flight-search/flight-supplier-gateway/internal/infrastructure/cache"
	"github.com/flight-search/flight-supplier-gateway/internal/infrastructure/logger"
	"github.com/flight-search/flight-supplier-gateway/internal/infrastructure/timeutil"
	"github.com/flight-search/flight-supplier-gateway/internal/offercache"
	"github.com/flight-search/flight-supplier-gateway/internal/repository"
	"github.com/flight-search/flight-supplier-gateway/internal/usecase"
	"github.com/flight-search/flight-supplier-gateway/test/testutil"
)

// TestServer wraps an Echo instance and provides helper methods for integration testing.
type TestServer struct {
	Echo    *echo.Echo
	Manager usecase.SupplierManager
}

// NewTestServer creates a test server with the production middleware chain.
func NewTestServer(manager usecase.SupplierManager) *TestServer {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	middleware.Setup(e, logger.Nop())
	httpAdapter.RegisterRoutes(e, httpAdapter.NewFlightHandler(manager))

	return &TestServer{
		Echo:    e,
		Manager: manager,
	}
}

// Request represents a test HTTP request configuration.
type Request struct {
	Method      string
	Path        string
	Body        any
	ContentType string
}

// Response represents a test HTTP response.
type Response struct {
	Code    int
	Body    []byte
	Headers http.Header
}

// Do executes a test request and returns the response. String bodies are sent as is.
func (ts *TestServer) Do(req Request) Response {
	var bodyReader *bytes.Reader
	switch body := req.Body.(type) {
	case nil:
		bodyReader = bytes.NewReader(nil)
	case string:
		bodyReader = bytes.NewReader([]byte(body))
	default:
		bodyBytes, _ := json.Marshal(body)
		bodyReader = bytes.NewReader(bodyBytes)
	}

	httpReq := httptest.NewRequest(req.Method, req.Path, bodyReader)

	if req.ContentType != "" {
		httpReq.Header.Set(echo.HeaderContentType, req.ContentType)
	} else if req.Body != nil {
		httpReq.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}

	rec := httptest.NewRecorder()
	ts.Echo.ServeHTTP(rec, httpReq)

	return Response{
		Code:    rec.Code,
		Body:    rec.Body.Bytes(),
		Headers: rec.Header(),
	}
}

// SearchRequest posts a search.
func (ts *TestServer) SearchRequest(body any) Response {
	return ts.Do(Request{Method: http.MethodPost, Path: "/api/v1/flights/search", Body: body})
}

// OfferRequest gets an offer.
func (ts *TestServer) OfferRequest(offerID string) Response {
	return ts.Do(Request{Method: http.MethodGet, Path: "/api/v1/offers/" + offerID})
}

// PriceRequest confirms an offer's price.
func (ts *TestServer) PriceRequest(offerID string) Response {
	return ts.Do(Request{Method: http.MethodPost, Path: "/api/v1/offers/" + offerID + "/price"})
}

// BookRequest books an offer.
func (ts *TestServer) BookRequest(offerID string, body any) Response {
	return ts.Do(Request{Method: http.MethodPost, Path: "/api/v1/offers/" + offerID + "/book", Body: body})
}

// SeatMapRequest gets an offer's seat map.
func (ts *TestServer) SeatMapRequest(offerID string) Response {
	return ts.Do(Request{Method: http.MethodGet, Path: "/api/v1/offers/" + offerID + "/seatmap"})
}

// HealthRequest makes a liveness request.
func (ts *TestServer) HealthRequest() Response {
	return ts.Do(Request{Method: http.MethodGet, Path: "/health"})
}

// ParseSearchResponse parses the response body as a SearchResponse.
func (r *Response) ParseSearchResponse() (*domain.SearchResponse, error) {
	var resp domain.SearchResponse
	if err := json.Unmarshal(r.Body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ParseError parses the response body as an error detail.
func (r *Response) ParseError() (*response.ErrorDetail, error) {
	var detail response.ErrorDetail
	if err := json.Unmarshal(r.Body, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

// Decode unmarshals the response body into out.
func (r *Response) Decode(out any) error {
	return json.Unmarshal(r.Body, out)
}

// SearchRequestBody is a helper struct for building search request bodies.
type SearchRequestBody struct {
	Origin        string         `json:"origin"`
	Destination   string         `json:"destination"`
	DepartureDate string         `json:"departureDate"`
	ReturnDate    string         `json:"returnDate,omitempty"`
	Adults        int            `json:"adults"`
	Children      int            `json:"children,omitempty"`
	Infants       int            `json:"infants,omitempty"`
	Cabin         string         `json:"cabin,omitempty"`
	Filters       map[string]any `json:"filters,omitempty"`
	SortBy        string         `json:"sortBy,omitempty"`
}

// searchDate is the departure date shared by the fixtures and seeded flights.
const searchDate = "2025-12-20"

// DefaultSearchRequest returns a valid one-way, one-adult JFK-LHR search.
func DefaultSearchRequest() SearchRequestBody {
	return SearchRequestBody{
		Origin:        "JFK",
		Destination:   "LHR",
		DepartureDate: searchDate,
		Adults:        1,
	}
}

// DefaultBookRequest returns a booking body for one adult.
func DefaultBookRequest() map[string]any {
	return map[string]any{
		"passengers": []map[string]any{
			{
				"type":        "ADT",
				"title":       "mr",
				"firstName":   "John",
				"lastName":    "Smith",
				"gender":      "male",
				"dateOfBirth": "1985-04-12",
				"email":       "john.smith@example.com",
			},
		},
	}
}

// testConfig keeps the fan-out timeouts short.
func testConfig() *usecase.Config {
	return &usecase.Config{
		GlobalTimeout:   2 * time.Second,
		SupplierTimeout: time.Second,
		BookingTimeout:  2 * time.Second,
	}
}

// NewManager creates a manager over adapters with short timeouts.
func NewManager(adapters ...domain.SupplierAdapter) usecase.SupplierManager {
	return usecase.NewSupplierManager(adapters, testConfig(), usecase.Deps{})
}

// NewManagerWithDeps creates a manager over adapters with short timeouts and deps.
func NewManagerWithDeps(deps usecase.Deps, adapters ...domain.SupplierAdapter) usecase.SupplierManager {
	return usecase.NewSupplierManager(adapters, testConfig(), deps)
}

// newDeps builds adapter dependencies over one shared in-memory store.
func newDeps(clock timeutil.Clock) (base.Deps, cache.Store) {
	store := cache.NewMemoryStore(clock)
	return base.Deps{
		Offers:   offercache.NewOffers(store, 30*time.Minute),
		Searches: offercache.NewSearches(store, 5*time.Minute),
		Clock:    clock,
		Logger:   logger.Nop(),
	}, store
}

// NewLocalSupplier builds the local inventory adapter over a fresh SQLite database.
func NewLocalSupplier(t *testing.T) (*local.Adapter, *repository.FlightRepository) {
	t.Helper()
	return NewLocalSupplierWithClock(t, timeutil.NewRealClock())
}

// NewLocalSupplierWithClock builds the local inventory adapter on the given clock.
func NewLocalSupplierWithClock(t *testing.T, clock timeutil.Clock) (*local.Adapter, *repository.FlightRepository) {
	t.Helper()
	repo := repository.NewFlightRepository(testutil.NewSQLiteDB(t))
	deps, _ := newDeps(clock)
	settings := config.DefaultSupplierSettings(config.SupplierLocal, nil)
	return local.NewAdapter(settings, repo, deps), repo
}

// SeedDeparture is the departure time of seeded local flights, on searchDate.
func SeedDeparture(t *testing.T) time.Time {
	return testutil.MustParseTime(t, searchDate+"T09:00:00Z")
}

// FakeGDS is a scripted GDS provider serving the token and search endpoints.
type FakeGDS struct {
	Server *httptest.Server

	TokenCalls  atomic.Int32
	SearchCalls atomic.Int32

	// RejectFirstSearch answers the first search with 401.
	RejectFirstSearch bool
	// RejectAllSearches answers every search with 401.
	RejectAllSearches bool
}

// NewFakeGDS starts a fake GDS that serves the flight offers fixture.
func NewFakeGDS(t *testing.T) *FakeGDS {
	t.Helper()
	f := &FakeGDS{}
	offers := testutil.ServeFixture(t, http.StatusOK, "gds/flight_offers.json")

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/security/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		n := f.TokenCalls.Add(1)
		writeJSON(w, http.StatusOK, fmt.Sprintf(`{"access_token":"tok-%d","token_type":"Bearer","expires_in":1799}`, n))
	})
	mux.HandleFunc("/v2/shopping/flight-offers", func(w http.ResponseWriter, r *http.Request) {
		n := f.SearchCalls.Add(1)
		if f.RejectAllSearches || (f.RejectFirstSearch && n == 1) {
			writeJSON(w, http.StatusUnauthorized, `{"errors":[{"status":401,"code":38190,"title":"Invalid access token"}]}`)
			return
		}
		offers(w, r)
	})

	f.Server = httptest.NewServer(mux)
	t.Cleanup(f.Server.Close)
	return f
}

// NewGDSSupplier builds the GDS adapter against the fake.
func NewGDSSupplier(f *FakeGDS) *gds.Adapter {
	settings := config.DefaultSupplierSettings(config.SupplierGDS, nil)
	settings.BaseURL = f.Server.URL
	settings.ClientID = "client-id"
	settings.ClientSecret = "client-secret"
	settings.RetryTimes = 0
	settings.Timeout = time.Second

	deps, store := newDeps(timeutil.NewRealClock())
	return gds.NewAdapter(settings, offercache.NewTokens(store, 2*time.Minute), deps)
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}
