package base

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/flight-search/flight-supplier-gateway/internal/config"
	"github.com/flight-search/flight-supplier-gateway/internal/domain"
	"github.com/flight-search/flight-supplier-gateway/internal/infrastructure/cache"
	"github.com/flight-search/flight-supplier-gateway/internal/infrastructure/timeutil"
	"github.com/flight-search/flight-supplier-gateway/internal/offercache"
)

var now = time.Date(2025, 12, 15, 10, 0, 0, 0, time.UTC)

func testSettings(baseURL string) config.SupplierSettings {
	s := config.DefaultSupplierSettings(config.SupplierPartner, nil)
	s.BaseURL = baseURL
	s.RetryTimes = 2
	s.RetryDelay = time.Millisecond
	s.Timeout = 2 * time.Second
	return s
}

func newTestBase(t *testing.T, settings config.SupplierSettings, health domain.HealthRecorder) (*Base, *timeutil.MockClock) {
	t.Helper()
	clock := timeutil.NewMockClock(now)
	store := cache.NewMemoryStore(clock)
	return New(settings, Deps{
		Offers:   offercache.NewOffers(store, 30*time.Minute),
		Searches: offercache.NewSearches(store, 5*time.Minute),
		Health:   health,
		Clock:    clock,
	}), clock
}

func TestBase_Do_RetriesTransientStatus(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	b, _ := newTestBase(t, testSettings(srv.URL), nil)

	var out struct{ OK bool }
	_, err := b.DoJSON(context.Background(), Request{Op: "search", Method: http.MethodGet, Path: "/flights"}, nil, &out)
	require.NoError(t, err)
	assert.True(t, out.OK)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestBase_Do_StatusMapping(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		wantKind  error
		wantCalls int32
	}{
		{name: "unauthorized", status: http.StatusUnauthorized, wantKind: domain.ErrAuthentication, wantCalls: 1},
		{name: "bad request", status: http.StatusBadRequest, wantKind: domain.ErrProviderRejected, wantCalls: 1},
		{name: "unprocessable", status: http.StatusUnprocessableEntity, wantKind: domain.ErrProviderRejected, wantCalls: 1},
		{name: "internal error not retried", status: http.StatusInternalServerError, wantKind: domain.ErrTransport, wantCalls: 1},
		{name: "gateway timeout retried", status: http.StatusGatewayTimeout, wantKind: domain.ErrTransport, wantCalls: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				atomic.AddInt32(&calls, 1)
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(`{"errors":[{"code":"477"}]}`))
			}))
			defer srv.Close()

			b, _ := newTestBase(t, testSettings(srv.URL), nil)
			resp, err := b.Do(context.Background(), Request{Op: "book", Method: http.MethodPost, Path: "/orders", Body: []byte(`{}`)})

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantKind)
			var se *domain.SupplierError
			require.True(t, errors.As(err, &se))
			assert.Equal(t, tt.status, se.StatusCode)
			assert.Equal(t, "477", se.Code)
			assert.Equal(t, "partner", se.Supplier)
			require.NotNil(t, resp, "response is returned so callers can read provider codes")
			assert.Contains(t, string(resp.Body), "477")
			assert.Equal(t, tt.wantCalls, atomic.LoadInt32(&calls))
		})
	}
}

func TestBase_Do_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	b, _ := newTestBase(t, testSettings(url), nil)
	_, err := b.Do(context.Background(), Request{Op: "search", Method: http.MethodGet, Path: "/x"})

	assert.ErrorIs(t, err, domain.ErrTransport)
}

func TestBase_Do_Headers(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		assert.Equal(t, "secret", r.Header.Get("X-Api-Secret"))
		assert.Equal(t, "/v1/token", r.URL.Path)
		assert.Equal(t, "1", r.URL.Query().Get("max"))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	b, _ := newTestBase(t, testSettings(srv.URL+"/"), nil)
	_, err := b.Do(context.Background(), Request{
		Op:          "auth",
		Method:      http.MethodPost,
		Path:        "v1/token",
		Query:       map[string][]string{"max": {"1"}},
		Header:      http.Header{"X-Api-Secret": {"secret"}},
		Body:        []byte("grant_type=client_credentials"),
		ContentType: "application/x-www-form-urlencoded",
	})
	require.NoError(t, err)
}

func TestBase_Do_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	settings := testSettings(srv.URL)
	settings.RetryDelay = time.Second
	b, _ := newTestBase(t, settings, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := b.Do(ctx, Request{Op: "search", Method: http.MethodGet, Path: "/"})
	assert.ErrorIs(t, err, domain.ErrTransport)
	assert.Less(t, time.Since(start), 900*time.Millisecond, "cancellation interrupts the retry delay")
}

func TestBase_DoJSON_DecodeFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>`))
	}))
	defer srv.Close()

	b, _ := newTestBase(t, testSettings(srv.URL), nil)
	var out map[string]any
	_, err := b.DoJSON(context.Background(), Request{Op: "search", Method: http.MethodGet}, nil, &out)
	assert.ErrorIs(t, err, domain.ErrTransport)
}

func TestBase_HealthTransitions(t *testing.T) {
	b, _ := newTestBase(t, testSettings("http://unused"), nil)
	ctx := context.Background()

	assert.True(t, b.IsAvailable())

	b.MarkUnhealthy(ctx, errors.New("timeout"))
	assert.False(t, b.IsAvailable(), "one failure flips availability")

	b.MarkHealthy(ctx)
	assert.True(t, b.IsAvailable(), "one success flips it back")

	b.SetActive(false)
	assert.False(t, b.IsAvailable(), "inactive suppliers are unavailable regardless of health")
	assert.True(t, b.IsHealthy())
}

func TestBase_HealthPersistence(t *testing.T) {
	ctx := context.Background()

	t.Run("persisted record is updated on transitions only", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		recorder := domain.NewMockHealthRecorder(ctrl)

		settings := testSettings("http://unused")
		settings.RecordID = 3
		b, _ := newTestBase(t, settings, recorder)

		gomock.InOrder(
			recorder.EXPECT().SetHealth(gomock.Any(), "partner", false).Return(nil),
			recorder.EXPECT().SetHealth(gomock.Any(), "partner", true).Return(nil),
		)

		b.MarkUnhealthy(ctx, errors.New("boom"))
		b.MarkUnhealthy(ctx, errors.New("boom again"))
		b.MarkHealthy(ctx)
		b.MarkHealthy(ctx)
	})

	t.Run("no record means no persistence", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		recorder := domain.NewMockHealthRecorder(ctrl)
		recorder.EXPECT().SetHealth(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		b, _ := newTestBase(t, testSettings("http://unused"), recorder)
		b.MarkUnhealthy(ctx, errors.New("boom"))
		b.MarkHealthy(ctx)
	})

	t.Run("recorder failure does not block the flip", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		recorder := domain.NewMockHealthRecorder(ctrl)
		recorder.EXPECT().SetHealth(gomock.Any(), "partner", false).Return(errors.New("db down"))

		settings := testSettings("http://unused")
		settings.RecordID = 3
		b, _ := newTestBase(t, settings, recorder)

		b.MarkUnhealthy(ctx, errors.New("boom"))
		assert.False(t, b.IsAvailable())
	})
}

func TestBase_CacheOrFetch(t *testing.T) {
	req := domain.SearchRequest{Origin: "JFK", Destination: "LHR", DepartureDate: "2025-12-20", Adults: 1}
	offers := []domain.NormalizedOffer{{ID: "partner_x_0", Supplier: "partner"}}
	ctx := context.Background()

	t.Run("disabled always fetches", func(t *testing.T) {
		b, _ := newTestBase(t, testSettings("http://unused"), nil)
		var calls int
		fetch := func(context.Context) ([]domain.NormalizedOffer, error) { calls++; return offers, nil }

		_, _ = b.CacheOrFetch(ctx, req, fetch)
		_, _ = b.CacheOrFetch(ctx, req, fetch)
		assert.Equal(t, 2, calls)
	})

	t.Run("enabled reuses until ttl", func(t *testing.T) {
		settings := testSettings("http://unused")
		settings.CacheSearch = true
		b, clock := newTestBase(t, settings, nil)
		var calls int
		fetch := func(context.Context) ([]domain.NormalizedOffer, error) { calls++; return offers, nil }

		got, err := b.CacheOrFetch(ctx, req, fetch)
		require.NoError(t, err)
		assert.Equal(t, "partner_x_0", got[0].ID)
		_, _ = b.CacheOrFetch(ctx, req, fetch)
		assert.Equal(t, 1, calls)

		clock.Advance(5 * time.Minute)
		_, _ = b.CacheOrFetch(ctx, req, fetch)
		assert.Equal(t, 2, calls)
	})

	t.Run("failures are not cached", func(t *testing.T) {
		settings := testSettings("http://unused")
		settings.CacheSearch = true
		b, _ := newTestBase(t, settings, nil)
		var calls int
		fetch := func(context.Context) ([]domain.NormalizedOffer, error) {
			calls++
			return nil, domain.ErrTransport
		}

		_, err := b.CacheOrFetch(ctx, req, fetch)
		assert.ErrorIs(t, err, domain.ErrTransport)
		_, _ = b.CacheOrFetch(ctx, req, fetch)
		assert.Equal(t, 2, calls)
	})
}

func TestBase_RememberAndResolveOffers(t *testing.T) {
	b, clock := newTestBase(t, testSettings("http://unused"), nil)
	ctx := context.Background()

	offer := domain.NormalizedOffer{ID: "partner_ref_0", Supplier: "partner", ExpiresAt: b.OfferExpiry(), Raw: []byte(`{"a":1}`)}
	b.RememberOffers(ctx, []domain.NormalizedOffer{offer})

	got, err := b.CachedOffer(ctx, offer.ID)
	require.NoError(t, err)
	assert.Equal(t, offer.ID, got.ID)
	assert.JSONEq(t, `{"a":1}`, string(got.Raw))

	clock.Advance(31 * time.Minute)
	_, err = b.CachedOffer(ctx, offer.ID)
	assert.ErrorIs(t, err, domain.ErrOfferNotFound)
}

func TestBase_TestConnection(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		wantSuccess bool
	}{
		{name: "ok", status: http.StatusOK, wantSuccess: true},
		{name: "not found still reachable", status: http.StatusNotFound, wantSuccess: true},
		{name: "server error", status: http.StatusServiceUnavailable, wantSuccess: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				atomic.AddInt32(&calls, 1)
				assert.Equal(t, "/", r.URL.Path)
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			b, _ := newTestBase(t, testSettings(srv.URL), nil)
			result := b.TestConnection(context.Background())

			assert.Equal(t, tt.wantSuccess, result.Success)
			assert.NotEmpty(t, result.Message)
			assert.GreaterOrEqual(t, result.LatencyMs, int64(0))
			assert.Equal(t, tt.wantSuccess, b.IsAvailable())
			assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "probes are never retried")
		})
	}
}

func TestBase_TestConnection_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	b, _ := newTestBase(t, testSettings(url), nil)
	result := b.TestConnection(context.Background())

	assert.False(t, result.Success)
	assert.Contains(t, result.Message, "connection failed")
	assert.False(t, b.IsAvailable())
}

func TestNewHTTPClient(t *testing.T) {
	s := testSettings("https://example.com")
	s.Timeout = 7 * time.Second
	s.VerifyTLS = false

	client := NewHTTPClient(s)
	assert.Equal(t, 7*time.Second, client.Timeout)
	transport, ok := client.Transport.(*http.Transport)
	require.True(t, ok)
	assert.True(t, transport.TLSClientConfig.InsecureSkipVerify)

	s.VerifyTLS = true
	strict := NewHTTPClient(s).Transport.(*http.Transport)
	assert.True(t, strict.TLSClientConfig == nil || !strict.TLSClientConfig.InsecureSkipVerify)
}

func TestBase_Observe(t *testing.T) {
	ctx := context.Background()
	b, _ := newTestBase(t, testSettings("http://unused"), nil)

	b.Observe(ctx, domain.NewSupplierError("partner", "book", domain.ErrProviderRejected, nil))
	assert.True(t, b.IsAvailable(), "a rejected call is not a health signal")

	b.Observe(ctx, domain.NewSupplierError("partner", "book", domain.ErrTransport, nil))
	assert.False(t, b.IsAvailable())

	b.Observe(ctx, nil)
	assert.True(t, b.IsAvailable())

	b.Observe(ctx, domain.NewSupplierError("partner", "price", domain.ErrAuthentication, nil))
	assert.False(t, b.IsAvailable())
}
