package middleware

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/flight-search/flight-supplier-gateway/internal/infrastructure/logger"
)

// DefaultBodyLimit caps request bodies; booking requests are the largest.
const DefaultBodyLimit = "1M"

// Setup registers all middleware on the Echo instance in order:
//  1. RequestID, so every later entry carries the request id
//  2. RequestLogger
//  3. Recover, innermost, so a panic still produces a logged 500
//  4. body limit and CORS
//
// This function should be called before registering routes.
func Setup(e *echo.Echo, log *logger.Logger) {
	for _, m := range Chain(log) {
		e.Use(m)
	}
}

// Chain returns the middleware stack as a slice for use with route groups.
func Chain(log *logger.Logger) []echo.MiddlewareFunc {
	return []echo.MiddlewareFunc{
		RequestID(log),
		RequestLogger(log),
		Recover(log),
		echomw.BodyLimit(DefaultBodyLimit),
		echomw.CORS(),
	}
}
