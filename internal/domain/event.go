package domain

//go:generate mockgen -source=event.go -destination=mock_event.go -package=domain

import (
	"context"
	"time"
)

// BookingEventType names a booking lifecycle event.
type BookingEventType string

// Booking event types.
const (
	BookingEventCreated BookingEventType = "booking.created"
)

// BookingEvent is published after a supplier accepted a booking.
type BookingEvent struct {
	EventID    string           `json:"eventId"`
	Type       BookingEventType `json:"type"`
	OccurredAt time.Time        `json:"occurredAt"`

	PNR      string        `json:"pnr"`
	OrderID  string        `json:"orderId"`
	Status   BookingStatus `json:"status"`
	Supplier string        `json:"supplier"`
	OfferID  string        `json:"offerId"`

	TotalAmount float64 `json:"totalAmount"`
	Currency    string  `json:"currency"`

	Passengers int  `json:"passengers"`
	Simulated  bool `json:"simulated"`

	PaymentRequiredBy *time.Time `json:"paymentRequiredBy,omitempty"`
}

// NewBookingEvent builds the created event for a booking result.
func NewBookingEvent(id string, at time.Time, result BookingResult, passengers int) BookingEvent {
	return BookingEvent{
		EventID:           id,
		Type:              BookingEventCreated,
		OccurredAt:        at,
		PNR:               result.PNR,
		OrderID:           result.OrderID,
		Status:            result.Status,
		Supplier:          result.Supplier,
		OfferID:           result.OfferID,
		TotalAmount:       result.TotalAmount,
		Currency:          result.Currency,
		Passengers:        passengers,
		Simulated:         result.Simulated,
		PaymentRequiredBy: result.PaymentRequiredBy,
	}
}

// BookingPublisher announces booking events to downstream consumers.
type BookingPublisher interface {
	PublishBooking(ctx context.Context, event BookingEvent) error
}
