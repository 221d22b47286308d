package domain

//go:generate mockgen -source=supplier.go -destination=mock_supplier.go -package=domain

import "context"

// SupplierAdapter is the contract every inventory source implements.
// Optional capabilities are expressed as separate interfaces that adapters opt into.
type SupplierAdapter interface {
	// Code returns the unique supplier code used as the offer id prefix.
	Code() string

	// Search queries the supplier. An empty slice with a nil error means "no offers";
	// a non-nil error means the supplier failed and the adapter has marked itself unhealthy.
	// Must be safe to call concurrently with other adapters.
	Search(ctx context.Context, req SearchRequest) ([]NormalizedOffer, error)

	// GetOfferDetails resolves a previously returned offer id.
	// Returns ErrOfferNotFound once the offer is no longer cached.
	GetOfferDetails(ctx context.Context, offerID string) (*NormalizedOffer, error)

	// TestConnection runs a lightweight connectivity probe.
	TestConnection(ctx context.Context) HealthProbeResult

	// IsAvailable reads the current active/health flags. It performs no I/O.
	IsAvailable() bool
}

// PriceConfirmer is implemented by suppliers whose quoted price is not guaranteed.
type PriceConfirmer interface {
	PriceOffer(ctx context.Context, offer NormalizedOffer) (*PricingResult, error)
}

// Bookable is implemented by suppliers that can create bookings.
// Book is not idempotent: every call reaches the supplier.
type Bookable interface {
	Book(ctx context.Context, offer NormalizedOffer, passengers []Passenger) (*BookingResult, error)
}

// SeatMapCapable is implemented by suppliers that expose seat maps.
type SeatMapCapable interface {
	GetSeatMap(ctx context.Context, offerID string) (*SeatMapResult, error)
}

// HealthRecorder persists supplier health transitions.
type HealthRecorder interface {
	SetHealth(ctx context.Context, supplierCode string, healthy bool) error
}
