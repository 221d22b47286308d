package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

var (
	// ErrFlightNotFound indicates no inventory row has the requested id.
	ErrFlightNotFound = errors.New("flight not found")

	// ErrInsufficientSeats indicates a reservation would oversell the flight.
	ErrInsufficientSeats = errors.New("insufficient seats")
)

// FlightQuery selects inventory rows for a search.
type FlightQuery struct {
	Origin      string
	Destination string

	// DepartFrom and DepartTo bound the departure time, inclusive
	DepartFrom time.Time
	DepartTo   time.Time

	// MinSeats is the number of seats the party needs
	MinSeats int

	// MaxPrice bounds the per-adult base price. Zero means no bound.
	MaxPrice float64

	// Airline restricts results to one carrier code
	Airline string
}

// FlightRepository reads and updates the local inventory.
type FlightRepository struct {
	db *gorm.DB
}

// NewFlightRepository creates a repository on db.
func NewFlightRepository(db *gorm.DB) *FlightRepository {
	return &FlightRepository{db: db}
}

// Search returns scheduled flights matching q ordered by departure time.
func (r *FlightRepository) Search(ctx context.Context, q FlightQuery) ([]Flight, error) {
	tx := r.db.WithContext(ctx).
		Where("origin = ? AND destination = ?", strings.ToUpper(q.Origin), strings.ToUpper(q.Destination)).
		Where("departure_time BETWEEN ? AND ?", q.DepartFrom.UTC(), q.DepartTo.UTC()).
		Where("status = ?", FlightScheduled)

	if q.MinSeats > 0 {
		tx = tx.Where("seats_available >= ?", q.MinSeats)
	}
	if q.MaxPrice > 0 {
		tx = tx.Where("base_price <= ?", q.MaxPrice)
	}
	if q.Airline != "" {
		tx = tx.Where("airline_code = ?", strings.ToUpper(q.Airline))
	}

	var flights []Flight
	if err := tx.Order("departure_time ASC").Order("id ASC").Find(&flights).Error; err != nil {
		return nil, fmt.Errorf("search flights: %w", err)
	}
	return flights, nil
}

// FindByID returns one flight or ErrFlightNotFound.
func (r *FlightRepository) FindByID(ctx context.Context, id uint) (*Flight, error) {
	var f Flight
	err := r.db.WithContext(ctx).First(&f, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrFlightNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find flight %d: %w", id, err)
	}
	return &f, nil
}

// Create inserts a flight.
func (r *FlightRepository) Create(ctx context.Context, f *Flight) error {
	if f.Status == "" {
		f.Status = FlightScheduled
	}
	return r.db.WithContext(ctx).Create(f).Error
}

// ReserveSeats decrements seats_available by n in a single guarded update,
// so concurrent bookings can never oversell.
func (r *FlightRepository) ReserveSeats(ctx context.Context, id uint, n int) error {
	if n <= 0 {
		return fmt.Errorf("reserve seats: count must be positive, got %d", n)
	}

	res := r.db.WithContext(ctx).
		Model(&Flight{}).
		Where("id = ? AND seats_available >= ? AND status = ?", id, n, FlightScheduled).
		UpdateColumn("seats_available", gorm.Expr("seats_available - ?", n))
	if res.Error != nil {
		return fmt.Errorf("reserve seats on flight %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		if _, err := r.FindByID(ctx, id); err != nil {
			return err
		}
		return ErrInsufficientSeats
	}
	return nil
}

// Ping verifies the database connection.
func (r *FlightRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
