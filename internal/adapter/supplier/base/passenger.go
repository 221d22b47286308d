package base

import (
	"time"

	"github.com/flight-search/flight-supplier-gateway/internal/domain"
)

// Fallbacks for traveler fields providers require but that may not have been
// collected at booking time.
const (
	DefaultContactEmail = "bookings@flight-supplier-gateway.invalid"
	DefaultCallingCode  = "1"
	DefaultPhoneNumber  = "0000000000"
)

// BirthDate returns the passenger's date of birth, or an age typical of the
// passenger type when none was collected.
func BirthDate(p domain.Passenger, now time.Time) time.Time {
	if p.DateOfBirth != nil {
		return *p.DateOfBirth
	}
	switch p.Type {
	case domain.PassengerChild:
		return now.AddDate(-8, 0, 0)
	case domain.PassengerInfant:
		return now.AddDate(-1, 0, 0)
	default:
		return now.AddDate(-30, 0, 0)
	}
}

// ContactEmail returns the first passenger email, used for passengers that have none.
func ContactEmail(passengers []domain.Passenger) string {
	for _, p := range passengers {
		if p.Email != "" {
			return p.Email
		}
	}
	return DefaultContactEmail
}

// FirstNonEmpty returns the first non-empty value.
func FirstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
