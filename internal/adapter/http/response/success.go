package response

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// HealthResponse represents the liveness response.
type HealthResponse struct {
	Status    string   `json:"status"`
	Suppliers []string `json:"suppliers,omitempty"`
}

// Health writes a liveness response listing the registered suppliers.
func Health(c echo.Context, suppliers []string) error {
	return c.JSON(http.StatusOK, &HealthResponse{
		Status:    "ok",
		Suppliers: suppliers,
	})
}

// SearchResults writes a 200 OK response with search results.
func SearchResults(c echo.Context, results any) error {
	return c.JSON(http.StatusOK, results)
}
