// Package repository persists supplier configuration records and the local flight inventory with gorm.
package repository

import (
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/flight-search/flight-supplier-gateway/internal/config"
)

// SupplierConfig is the persisted configuration and health record of one supplier.
// Nullable columns leave the file defaults in place.
type SupplierConfig struct {
	ID   uint   `gorm:"primaryKey"`
	Code string `gorm:"size:32;uniqueIndex;not null"`
	Name *string `gorm:"size:128"`

	IsActive           bool `gorm:"not null"`
	IsHealthy          bool `gorm:"not null"`
	LastHealthChangeAt *time.Time

	BaseURL      *string `gorm:"size:255"`
	AuthURL      *string `gorm:"size:255"`
	APIKey       *string `gorm:"size:255"`
	APISecret    *string `gorm:"size:255"`
	ClientID     *string `gorm:"size:255"`
	ClientSecret *string `gorm:"size:255"`
	APIVersion   *string `gorm:"size:32"`

	TimeoutSeconds *int
	RetryTimes     *int
	RetryDelayMs   *int
	VerifyTLS      *bool

	CacheSearch             *bool
	SimulateSandboxFailures *bool
	// SandboxErrorCodes is a comma separated list of provider error codes
	SandboxErrorCodes *string `gorm:"size:255"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName overrides the gorm default.
func (SupplierConfig) TableName() string {
	return "supplier_configs"
}

// Override converts the record into the database configuration layer.
func (r SupplierConfig) Override() *config.SupplierOverride {
	active, healthy := r.IsActive, r.IsHealthy
	o := &config.SupplierOverride{
		Name:                    r.Name,
		Active:                  &active,
		Healthy:                 &healthy,
		BaseURL:                 r.BaseURL,
		AuthURL:                 r.AuthURL,
		APIKey:                  r.APIKey,
		APISecret:               r.APISecret,
		ClientID:                r.ClientID,
		ClientSecret:            r.ClientSecret,
		APIVersion:              r.APIVersion,
		RetryTimes:              r.RetryTimes,
		VerifyTLS:               r.VerifyTLS,
		CacheSearch:             r.CacheSearch,
		SimulateSandboxFailures: r.SimulateSandboxFailures,
		RecordID:                r.ID,
	}
	if r.TimeoutSeconds != nil {
		d := time.Duration(*r.TimeoutSeconds) * time.Second
		o.Timeout = &d
	}
	if r.RetryDelayMs != nil {
		d := time.Duration(*r.RetryDelayMs) * time.Millisecond
		o.RetryDelay = &d
	}
	if r.SandboxErrorCodes != nil {
		codes := []string{}
		for _, c := range strings.Split(*r.SandboxErrorCodes, ",") {
			if c = strings.TrimSpace(c); c != "" {
				codes = append(codes, c)
			}
		}
		o.SandboxErrorCodes = codes
	}
	return o
}

// Flight status values.
const (
	FlightScheduled = "scheduled"
	FlightCancelled = "cancelled"
)

// Flight is one row of the operator's own inventory.
type Flight struct {
	ID               uint      `gorm:"primaryKey"`
	AirlineCode      string    `gorm:"size:3;index;not null"`
	AirlineName      string    `gorm:"size:128"`
	FlightNumber     string    `gorm:"size:16;not null"`
	Origin           string    `gorm:"size:3;index:idx_flights_route;not null"`
	Destination      string    `gorm:"size:3;index:idx_flights_route;not null"`
	DepartureTime    time.Time `gorm:"index;not null"`
	ArrivalTime      time.Time `gorm:"not null"`
	DurationMinutes  int
	Aircraft         string  `gorm:"size:64"`
	CabinClass       string  `gorm:"size:32;not null"`
	BasePrice        float64 `gorm:"type:decimal(12,2);not null"`
	Currency         string  `gorm:"size:3;not null"`
	SeatsAvailable   int     `gorm:"not null"`
	SeatCapacity     int
	BaggageCabinKg   int
	BaggageCheckedKg int
	Status           string `gorm:"size:16;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName overrides the gorm default.
func (Flight) TableName() string {
	return "flights"
}

// Migrate creates or updates the tables owned by this package.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&SupplierConfig{}, &Flight{})
}
