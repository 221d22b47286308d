package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for errors.Is checks. They carry no context; wrap them.
var (
	// ErrInvalidRequest indicates malformed input. Never retried.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrOfferNotFound indicates the offer id is unknown or its cache entry expired.
	// Callers should ask the user to search again.
	ErrOfferNotFound = errors.New("offer not found")

	// ErrOfferExpired indicates the supplier no longer sells the offer.
	ErrOfferExpired = errors.New("offer expired, please search again")

	// ErrAuthentication indicates the supplier rejected our credentials.
	ErrAuthentication = errors.New("supplier authentication failed")

	// ErrTransport indicates a network, timeout or 5xx failure talking to the supplier.
	ErrTransport = errors.New("supplier transport failure")

	// ErrProviderRejected indicates the supplier actively declined the request.
	ErrProviderRejected = errors.New("supplier rejected request")

	// ErrSupplierUnavailable indicates the adapter is inactive or marked unhealthy.
	ErrSupplierUnavailable = errors.New("supplier unavailable")

	// ErrUnknownSupplier indicates no adapter is registered for a supplier code.
	ErrUnknownSupplier = errors.New("unknown supplier")

	// ErrNotBookable indicates the adapter does not support booking.
	ErrNotBookable = errors.New("supplier does not support booking")

	// ErrPassengerSlotUnavailable indicates the offer has no traveler slot left for a passenger type.
	ErrPassengerSlotUnavailable = errors.New("no passenger slot available for type")

	// ErrAllSuppliersFailed indicates every queried supplier failed.
	ErrAllSuppliersFailed = errors.New("all suppliers failed")
)

// SupplierError describes a failed supplier operation.
// errors.Is matches both its Kind sentinel and the wrapped cause.
type SupplierError struct {
	// Supplier is the adapter code
	Supplier string

	// Op is the attempted operation (e.g., "search", "book")
	Op string

	// Kind is one of the sentinel errors above
	Kind error

	// StatusCode is the HTTP status returned by the supplier, if any
	StatusCode int

	// Code is the supplier's own error code, if any
	Code string

	// Err is the underlying cause
	Err error
}

// NewSupplierError creates a SupplierError of the given kind.
func NewSupplierError(supplier, op string, kind, err error) *SupplierError {
	return &SupplierError{
		Supplier: supplier,
		Op:       op,
		Kind:     kind,
		Err:      err,
	}
}

// Error implements the error interface.
func (e *SupplierError) Error() string {
	msg := fmt.Sprintf("supplier %s: %s: %v", e.Supplier, e.Op, e.Kind)
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" (status %d)", e.StatusCode)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *SupplierError) Unwrap() error {
	return e.Err
}

// Is matches the error kind.
func (e *SupplierError) Is(target error) bool {
	return e.Kind != nil && target == e.Kind
}

// WithStatus records the supplier HTTP status and error code.
func (e *SupplierError) WithStatus(status int, code string) *SupplierError {
	e.StatusCode = status
	e.Code = code
	return e
}

// IsAuthError reports whether err is an authentication failure.
func IsAuthError(err error) bool {
	return errors.Is(err, ErrAuthentication)
}

// IsNotFound reports whether err means "search again": unknown or expired offer.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrOfferNotFound) || errors.Is(err, ErrOfferExpired)
}

// IsTransient reports whether err is worth retrying at the transport level.
func IsTransient(err error) bool {
	return errors.Is(err, ErrTransport)
}
