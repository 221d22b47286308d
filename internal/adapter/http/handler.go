// Package http provides the HTTP handler layer for the supplier gateway API.
// It handles request parsing, validation, response formatting, and error mapping.
package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/flight-search/flight-supplier-gateway/internal/adapter/http/response"
	"github.com/flight-search/flight-supplier-gateway/internal/domain"
	"github.com/flight-search/flight-supplier-gateway/internal/usecase"
)

// Supplier health summary states.
const (
	HealthOK       = "ok"
	HealthDegraded = "degraded"
	HealthDown     = "down"
)

// SupplierHealthResponse is the body of the supplier health endpoint.
type SupplierHealthResponse struct {
	Status    string                  `json:"status" example:"degraded"`
	Healthy   int                     `json:"healthy" example:"3"`
	Suppliers []domain.SupplierHealth `json:"suppliers"`
}

// FlightHandler handles HTTP requests for search and offer endpoints.
type FlightHandler struct {
	manager  usecase.SupplierManager
	validate *validator.Validate
}

// NewFlightHandler creates a new FlightHandler backed by the supplier manager.
func NewFlightHandler(manager usecase.SupplierManager) *FlightHandler {
	return &FlightHandler{
		manager:  manager,
		validate: newValidator(),
	}
}

// SearchFlights handles POST /api/v1/flights/search
//
// @Summary Search for flights
// @Description Search every available supplier and return merged, filtered and sorted offers
// @Tags flights
// @Accept json
// @Produce json
// @Param request body SearchFlightsRequest true "Search criteria"
// @Success 200 {object} domain.SearchResponse
// @Failure 400 {object} response.ErrorDetail "Validation error"
// @Failure 503 {object} response.ErrorDetail "All suppliers failed"
// @Failure 504 {object} response.ErrorDetail "Gateway timeout"
// @Router /api/v1/flights/search [post]
func (h *FlightHandler) SearchFlights(c echo.Context) error {
	var req SearchFlightsRequest
	if err := c.Bind(&req); err != nil {
		return response.InvalidRequestBody(c)
	}

	req.Normalize()
	if err := h.validate.Struct(&req); err != nil {
		return h.handleValidationError(c, err)
	}

	result, err := h.manager.Search(c.Request().Context(), ToSearchRequest(&req), ToSearchOptions(&req))
	if err != nil {
		return h.handleError(c, err)
	}
	return response.SearchResults(c, result)
}

// GetOffer handles GET /api/v1/offers/:id
//
// @Summary Get offer details
// @Description Resolve a previously returned offer through its supplier
// @Tags offers
// @Produce json
// @Param id path string true "Offer ID"
// @Success 200 {object} domain.NormalizedOffer
// @Failure 404 {object} response.ErrorDetail "Offer not found"
// @Failure 410 {object} response.ErrorDetail "Offer expired"
// @Router /api/v1/offers/{id} [get]
func (h *FlightHandler) GetOffer(c echo.Context) error {
	offer, err := h.manager.GetOffer(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.handleError(c, err)
	}
	return response.OK(c, offer)
}

// PriceOffer handles POST /api/v1/offers/:id/price
//
// @Summary Confirm offer price
// @Description Re-validate the offer's price with its supplier
// @Tags offers
// @Produce json
// @Param id path string true "Offer ID"
// @Success 200 {object} domain.PricingResult
// @Failure 404 {object} response.ErrorDetail "Offer not found"
// @Failure 410 {object} response.ErrorDetail "Offer expired"
// @Failure 502 {object} response.ErrorDetail "Supplier error"
// @Router /api/v1/offers/{id}/price [post]
func (h *FlightHandler) PriceOffer(c echo.Context) error {
	result, err := h.manager.PriceOffer(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.handleError(c, err)
	}
	return response.OK(c, result)
}

// BookOffer handles POST /api/v1/offers/:id/book
//
// @Summary Book an offer
// @Description Book the offer for the given passengers with its supplier
// @Tags offers
// @Accept json
// @Produce json
// @Param id path string true "Offer ID"
// @Param request body BookOfferRequest true "Passengers"
// @Success 201 {object} domain.BookingResult
// @Failure 400 {object} response.ErrorDetail "Validation error"
// @Failure 404 {object} response.ErrorDetail "Offer not found"
// @Failure 409 {object} response.ErrorDetail "Offer cannot be booked"
// @Failure 410 {object} response.ErrorDetail "Offer expired"
// @Failure 502 {object} response.ErrorDetail "Supplier error"
// @Router /api/v1/offers/{id}/book [post]
func (h *FlightHandler) BookOffer(c echo.Context) error {
	var req BookOfferRequest
	if err := c.Bind(&req); err != nil {
		return response.InvalidRequestBody(c)
	}

	req.Normalize()
	if err := h.validate.Struct(&req); err != nil {
		return h.handleValidationError(c, err)
	}

	passengers, err := ToPassengers(req.Passengers)
	if err != nil {
		return response.ValidationErrorWithMessage(c, err.Error())
	}

	result, err := h.manager.Book(c.Request().Context(), c.Param("id"), passengers)
	if err != nil {
		return h.handleError(c, err)
	}
	return response.Created(c, result)
}

// GetSeatMap handles GET /api/v1/offers/:id/seatmap
//
// @Summary Get seat map
// @Description Seat map for the offer; suppliers without seat selection answer with supported=false
// @Tags offers
// @Produce json
// @Param id path string true "Offer ID"
// @Success 200 {object} domain.SeatMapResult
// @Failure 404 {object} response.ErrorDetail "Offer not found"
// @Failure 410 {object} response.ErrorDetail "Offer expired"
// @Router /api/v1/offers/{id}/seatmap [get]
func (h *FlightHandler) GetSeatMap(c echo.Context) error {
	result, err := h.manager.SeatMap(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.handleError(c, err)
	}
	return response.OK(c, result)
}

// SupplierHealth handles GET /api/v1/suppliers/health
//
// @Summary Probe suppliers
// @Description Run a connection test against every registered supplier
// @Tags health
// @Produce json
// @Success 200 {object} SupplierHealthResponse
// @Failure 503 {object} SupplierHealthResponse "No supplier reachable"
// @Router /api/v1/suppliers/health [get]
func (h *FlightHandler) SupplierHealth(c echo.Context) error {
	results := h.manager.Health(c.Request().Context())

	healthy := 0
	for _, r := range results {
		if r.Probe.Success {
			healthy++
		}
	}

	body := &SupplierHealthResponse{Status: HealthDegraded, Healthy: healthy, Suppliers: results}
	switch {
	case healthy == 0:
		body.Status = HealthDown
		return c.JSON(http.StatusServiceUnavailable, body)
	case healthy == len(results):
		body.Status = HealthOK
	}
	return c.JSON(http.StatusOK, body)
}

// Health handles GET /health
//
// @Summary Liveness check
// @Tags health
// @Produce json
// @Success 200 {object} response.HealthResponse
// @Router /health [get]
func (h *FlightHandler) Health(c echo.Context) error {
	return response.Health(c, h.manager.Suppliers())
}

// handleValidationError handles validation errors and returns a 400 response.
func (h *FlightHandler) handleValidationError(c echo.Context, err error) error {
	if details := validationDetails(err); details != nil {
		return response.ValidationError(c, details)
	}
	return response.ValidationErrorWithMessage(c, err.Error())
}

// handleError maps domain errors to HTTP responses.
func (h *FlightHandler) handleError(c echo.Context, err error) error {
	supplier := ""
	var se *domain.SupplierError
	if errors.As(err, &se) {
		supplier = se.Supplier
	}

	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		return response.ValidationErrorWithMessage(c, err.Error())
	case errors.Is(err, domain.ErrOfferNotFound), errors.Is(err, domain.ErrUnknownSupplier):
		return response.NotFound(c, "Offer not found, please search again")
	case errors.Is(err, domain.ErrOfferExpired):
		return response.OfferExpired(c, supplier)
	case errors.Is(err, domain.ErrPassengerSlotUnavailable):
		return response.Conflict(c, supplier, "The offer has no seat left for one of the passenger types")
	case errors.Is(err, domain.ErrNotBookable):
		return response.Conflict(c, supplier, "This supplier does not support booking")
	case errors.Is(err, domain.ErrAuthentication):
		return response.BadGateway(c, supplier, "Supplier authentication failed")
	case errors.Is(err, domain.ErrProviderRejected):
		return response.BadGateway(c, supplier, "Supplier rejected the request")
	case errors.Is(err, domain.ErrAllSuppliersFailed):
		return response.ServiceUnavailable(c)
	case errors.Is(err, domain.ErrSupplierUnavailable):
		return response.ServiceUnavailableWithMessage(c, "Supplier "+supplier+" is currently unavailable")
	case errors.Is(err, context.Canceled):
		// Checked before transport: supplier calls wrap the caller's cancellation.
		return response.RequestCancelled(c)
	case errors.Is(err, domain.ErrTransport), errors.Is(err, context.DeadlineExceeded):
		return response.GatewayTimeout(c)
	default:
		return response.InternalServerError(c)
	}
}
