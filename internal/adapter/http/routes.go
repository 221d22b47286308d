package http

import (
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// RegisterRoutes registers the gateway API routes.
func RegisterRoutes(e *echo.Echo, h *FlightHandler) {
	RegisterRoutesWithMiddleware(e, h)
}

// RegisterRoutesWithMiddleware registers routes with middleware applied to the
// versioned API group only. Liveness and docs stay outside it.
func RegisterRoutesWithMiddleware(e *echo.Echo, h *FlightHandler, middleware ...echo.MiddlewareFunc) {
	e.GET("/health", h.Health)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api/v1", middleware...)

	api.POST("/flights/search", h.SearchFlights)

	offers := api.Group("/offers")
	offers.GET("/:id", h.GetOffer)
	offers.POST("/:id/price", h.PriceOffer)
	offers.POST("/:id/book", h.BookOffer)
	offers.GET("/:id/seatmap", h.GetSeatMap)

	api.GET("/suppliers/health", h.SupplierHealth)
}
