package response

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func writeError(c echo.Context, status int, detail *ErrorDetail) error {
	return c.JSON(status, detail)
}

// BadRequest writes a 400 Bad Request response with the given error message.
func BadRequest(c echo.Context, message string) error {
	return writeError(c, http.StatusBadRequest, &ErrorDetail{Code: CodeInvalidRequest, Message: message})
}

// InvalidRequestBody writes a 400 Bad Request response for malformed request bodies.
func InvalidRequestBody(c echo.Context) error {
	return BadRequest(c, MsgInvalidRequestBody)
}

// ValidationError writes a 400 Bad Request response with validation error details.
func ValidationError(c echo.Context, details map[string]string) error {
	return writeError(c, http.StatusBadRequest, &ErrorDetail{
		Code:    CodeValidationError,
		Message: MsgValidationFailed,
		Details: details,
	})
}

// ValidationErrorWithMessage writes a 400 Bad Request response with a custom message.
func ValidationErrorWithMessage(c echo.Context, message string) error {
	return writeError(c, http.StatusBadRequest, &ErrorDetail{Code: CodeValidationError, Message: message})
}

// NotFound writes a 404 Not Found response.
func NotFound(c echo.Context, message string) error {
	return writeError(c, http.StatusNotFound, &ErrorDetail{Code: CodeNotFound, Message: message})
}

// OfferExpired writes a 410 Gone response; the client must search again.
func OfferExpired(c echo.Context, supplier string) error {
	return writeError(c, http.StatusGone, &ErrorDetail{Code: CodeOfferExpired, Message: MsgOfferExpired, Supplier: supplier})
}

// Conflict writes a 409 Conflict response.
func Conflict(c echo.Context, supplier, message string) error {
	return writeError(c, http.StatusConflict, &ErrorDetail{Code: CodeConflict, Message: message, Supplier: supplier})
}

// BadGateway writes a 502 Bad Gateway response for supplier rejections.
func BadGateway(c echo.Context, supplier, message string) error {
	return writeError(c, http.StatusBadGateway, &ErrorDetail{Code: CodeSupplierError, Message: message, Supplier: supplier})
}

// ServiceUnavailable writes a 503 Service Unavailable response.
func ServiceUnavailable(c echo.Context) error {
	return ServiceUnavailableWithMessage(c, MsgServiceUnavailable)
}

// ServiceUnavailableWithMessage writes a 503 Service Unavailable response with a custom message.
func ServiceUnavailableWithMessage(c echo.Context, message string) error {
	return writeError(c, http.StatusServiceUnavailable, &ErrorDetail{Code: CodeServiceUnavailable, Message: message})
}

// GatewayTimeout writes a 504 Gateway Timeout response.
func GatewayTimeout(c echo.Context) error {
	return writeError(c, http.StatusGatewayTimeout, &ErrorDetail{Code: CodeTimeout, Message: MsgTimeout})
}

// RequestCancelled writes a 504 Gateway Timeout response for cancelled requests.
func RequestCancelled(c echo.Context) error {
	return writeError(c, http.StatusGatewayTimeout, &ErrorDetail{Code: CodeTimeout, Message: MsgRequestCancelled})
}

// InternalServerError writes a 500 Internal Server Error response.
func InternalServerError(c echo.Context) error {
	return writeError(c, http.StatusInternalServerError, &ErrorDetail{Code: CodeInternalError, Message: MsgInternalError})
}
