package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flight-search/flight-supplier-gateway/internal/adapter/http/response"
	"github.com/flight-search/flight-supplier-gateway/internal/infrastructure/logger"
)

func bufferLogger(buf *bytes.Buffer) *logger.Logger {
	return logger.NewWithOutput(logger.Config{Level: "debug", Format: "json"}, buf)
}

// logLines decodes one JSON object per written log line.
func logLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &entry), "log output should be valid JSON")
		out = append(out, entry)
	}
	return out
}

// =====================================================
// Request ID
// =====================================================

func TestRequestID_GeneratesNewID(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := RequestID(logger.Nop())(func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	require.NoError(t, handler(c))

	reqID := rec.Header().Get(RequestIDHeader)
	assert.Len(t, reqID, 36, "should be UUID format")
	assert.Equal(t, reqID, GetRequestID(c))
}

func TestRequestID_PropagatesExistingID(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set(RequestIDHeader, "existing-request-id-12345")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := RequestID(logger.Nop())(func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	require.NoError(t, handler(c))

	assert.Equal(t, "existing-request-id-12345", rec.Header().Get(RequestIDHeader))
	assert.Equal(t, "existing-request-id-12345", GetRequestID(c))
}

func TestRequestID_AttachesScopedLogger(t *testing.T) {
	var buf bytes.Buffer
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set(RequestIDHeader, "req-42")
	c := e.NewContext(req, httptest.NewRecorder())

	handler := RequestID(bufferLogger(&buf))(func(c echo.Context) error {
		zerolog.Ctx(c.Request().Context()).Info().Msg("inside handler")
		return nil
	})
	require.NoError(t, handler(c))

	lines := logLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "req-42", lines[0][logger.FieldRequestID])
	assert.Equal(t, "inside handler", lines[0]["message"])
}

func TestGetRequestID_ReturnsEmptyWhenNotSet(t *testing.T) {
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/test", nil), httptest.NewRecorder())
	assert.Empty(t, GetRequestID(c))
}

// =====================================================
// Request logging
// =====================================================

func TestRequestLogger_Levels(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		handlerEr error
		level     string
	}{
		{"success", http.StatusOK, nil, "info"},
		{"client error", http.StatusNotFound, nil, "warn"},
		{"server error", http.StatusBadGateway, nil, "error"},
		{"returned echo error", 0, echo.NewHTTPError(http.StatusConflict, "price changed"), "warn"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/x", nil), rec)

			handler := RequestLogger(bufferLogger(&buf))(func(c echo.Context) error {
				if tt.handlerEr != nil {
					return tt.handlerEr
				}
				return c.NoContent(tt.status)
			})
			require.NoError(t, handler(c))

			lines := logLines(t, &buf)
			require.Len(t, lines, 1)
			assert.Equal(t, tt.level, lines[0]["level"])
		})
	}
}

func TestRequestLogger_LogsRouteAndOfferID(t *testing.T) {
	var buf bytes.Buffer
	e := echo.New()
	e.Use(RequestID(logger.Nop()), RequestLogger(bufferLogger(&buf)))
	e.GET("/api/v1/offers/:id", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/offers/gds_abc_0", nil)
	req.Header.Set(RequestIDHeader, "req-7")
	e.ServeHTTP(httptest.NewRecorder(), req)

	lines := logLines(t, &buf)
	require.Len(t, lines, 1)
	entry := lines[0]
	assert.Equal(t, "req-7", entry[logger.FieldRequestID])
	assert.Equal(t, "/api/v1/offers/:id", entry["route"])
	assert.Equal(t, "/api/v1/offers/gds_abc_0", entry["path"])
	assert.Equal(t, "gds_abc_0", entry[logger.FieldOfferID])
	assert.Equal(t, float64(200), entry["status"])
	assert.Contains(t, entry, "duration_ms")
	assert.Equal(t, "HTTP request", entry["message"])
}

// =====================================================
// Recovery
// =====================================================

func TestRecover_Returns500OnPanic(t *testing.T) {
	tests := []struct {
		name  string
		value any
		text  string
	}{
		{"string panic", "something broke", "something broke"},
		{"error panic", errors.New("typed failure"), "typed failure"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/panic", nil), rec)

			handler := Recover(bufferLogger(&buf))(func(echo.Context) error {
				panic(tt.value)
			})

			assert.NotPanics(t, func() { _ = handler(c) })
			assert.Equal(t, http.StatusInternalServerError, rec.Code)

			var body response.ErrorDetail
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, response.CodeInternalError, body.Code)

			lines := logLines(t, &buf)
			require.Len(t, lines, 1)
			assert.Equal(t, tt.text, lines[0]["panic"])
			assert.Contains(t, lines[0], "stack")
		})
	}
}

func TestRecoverWithConfig_DisableStackPrint(t *testing.T) {
	var buf bytes.Buffer
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/panic", nil), httptest.NewRecorder())

	handler := RecoverWithConfig(bufferLogger(&buf), RecoveryConfig{DisablePrintStack: true})(func(echo.Context) error {
		panic("no stack")
	})
	_ = handler(c)

	lines := logLines(t, &buf)
	require.Len(t, lines, 1)
	assert.NotContains(t, lines[0], "stack")
}

func TestRecover_PassesThroughNormalRequests(t *testing.T) {
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	handler := Recover(logger.Nop())(func(c echo.Context) error {
		return c.String(http.StatusOK, "fine")
	})
	require.NoError(t, handler(c))
	assert.Equal(t, "fine", rec.Body.String())
}

// =====================================================
// Setup
// =====================================================

func TestSetup_RecoversPanicWithRequestID(t *testing.T) {
	var buf bytes.Buffer
	e := echo.New()
	Setup(e, bufferLogger(&buf))
	e.GET("/boom", func(echo.Context) error { panic("kaboom") })

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	reqID := rec.Header().Get(RequestIDHeader)
	require.NotEmpty(t, reqID)

	lines := logLines(t, &buf)
	require.Len(t, lines, 2, "panic entry then request entry")
	assert.Equal(t, "Panic recovered", lines[0]["message"])
	assert.Equal(t, reqID, lines[0][logger.FieldRequestID])
	assert.Equal(t, "HTTP request", lines[1]["message"])
	assert.Equal(t, float64(500), lines[1]["status"])
}

func TestSetup_BodyLimit(t *testing.T) {
	e := echo.New()
	Setup(e, logger.Nop())
	e.POST("/echo", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	body := strings.Repeat("x", 2<<20)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(body)))

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestChain_ReturnsMiddlewareSlice(t *testing.T) {
	assert.Len(t, Chain(logger.Nop()), 5)
}
