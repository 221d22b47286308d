package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/flight-search/flight-supplier-gateway/internal/repository"
)

// NewSQLiteDB opens a migrated in-memory database that lives for the test.
func NewSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, repository.Migrate(db))
	return db
}

// SeedFlight inserts a scheduled JFK-LHR flight departing at departure,
// applying overrides to the row before insert.
func SeedFlight(t *testing.T, repo *repository.FlightRepository, departure time.Time, overrides ...func(*repository.Flight)) repository.Flight {
	t.Helper()

	f := repository.Flight{
		AirlineCode:      "BA",
		AirlineName:      "British Airways",
		FlightNumber:     "BA117",
		Origin:           "JFK",
		Destination:      "LHR",
		DepartureTime:    departure,
		ArrivalTime:      departure.Add(7 * time.Hour),
		DurationMinutes:  420,
		Aircraft:         "Boeing 777-300ER",
		CabinClass:       "economy",
		BasePrice:        100,
		Currency:         "USD",
		SeatsAvailable:   50,
		SeatCapacity:     300,
		BaggageCabinKg:   7,
		BaggageCheckedKg: 23,
	}
	for _, o := range overrides {
		o(&f)
	}
	require.NoError(t, repo.Create(context.Background(), &f))
	return f
}
