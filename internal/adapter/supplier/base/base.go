// Package base holds the plumbing shared by every supplier adapter: the HTTP
// transport with bounded retry, the offer and search caches, structured logging
// and health tracking. Concrete adapters embed *Base.
package base

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/flight-search/flight-supplier-gateway/internal/config"
	"github.com/flight-search/flight-supplier-gateway/internal/domain"
	"github.com/flight-search/flight-supplier-gateway/internal/infrastructure/cache"
	"github.com/flight-search/flight-supplier-gateway/internal/infrastructure/logger"
	"github.com/flight-search/flight-supplier-gateway/internal/infrastructure/timeutil"
	"github.com/flight-search/flight-supplier-gateway/internal/offercache"
)

// Deps are the collaborators injected into every adapter.
type Deps struct {
	Offers   *offercache.Offers
	Searches *offercache.Searches
	Health   domain.HealthRecorder
	Clock    timeutil.Clock
	Logger   *logger.Logger

	// HTTPClient replaces the client built from settings. Used by tests.
	HTTPClient *http.Client
}

// Base implements the parts of domain.SupplierAdapter common to all suppliers.
type Base struct {
	Settings config.SupplierSettings
	Client   *http.Client
	Offers   *offercache.Offers
	Searches *offercache.Searches
	Clock    timeutil.Clock
	Log      *logger.Logger

	health  domain.HealthRecorder
	active  atomic.Bool
	healthy atomic.Bool
}

// New builds the shared base from resolved settings.
func New(settings config.SupplierSettings, deps Deps) *Base {
	if deps.Clock == nil {
		deps.Clock = timeutil.NewRealClock()
	}
	if deps.Logger == nil {
		deps.Logger = logger.Nop()
	}
	if deps.Offers == nil {
		deps.Offers = offercache.NewOffers(cache.NewMemoryStore(deps.Clock), settings.OfferTTL)
	}
	client := deps.HTTPClient
	if client == nil {
		client = NewHTTPClient(settings)
	}

	b := &Base{
		Settings: settings,
		Client:   client,
		Offers:   deps.Offers,
		Searches: deps.Searches,
		Clock:    deps.Clock,
		Log:      deps.Logger.WithSupplier(settings.Code),
		health:   deps.Health,
	}
	b.active.Store(settings.Active)
	b.healthy.Store(settings.Healthy)
	return b
}

// Code returns the supplier code.
func (b *Base) Code() string {
	return b.Settings.Code
}

// IsAvailable reads the active and health flags. No I/O.
func (b *Base) IsAvailable() bool {
	return b.active.Load() && b.healthy.Load()
}

// IsHealthy reads the health flag alone.
func (b *Base) IsHealthy() bool {
	return b.healthy.Load()
}

// SetActive enables or disables the adapter without touching its health.
func (b *Base) SetActive(active bool) {
	b.active.Store(active)
}

// MarkHealthy flips the adapter back to healthy after a successful call.
func (b *Base) MarkHealthy(ctx context.Context) {
	if b.healthy.Swap(true) {
		return
	}
	b.Log.Info().Msg("Supplier marked healthy")
	b.persistHealth(ctx, true)
}

// MarkUnhealthy flips the adapter to unhealthy after a failed call.
func (b *Base) MarkUnhealthy(ctx context.Context, cause error) {
	if !b.healthy.Swap(false) {
		return
	}
	b.Log.Warn().Err(cause).Msg("Supplier marked unhealthy")
	b.persistHealth(ctx, false)
}

// persistHealth is a no-op for adapters without a persisted record.
func (b *Base) persistHealth(ctx context.Context, healthy bool) {
	if b.health == nil || !b.Settings.HasRecord() {
		return
	}
	// The caller's context may already be cancelled by a timed-out search.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
	defer cancel()
	if err := b.health.SetHealth(ctx, b.Settings.Code, healthy); err != nil {
		b.Log.Error().Err(err).Bool("healthy", healthy).Msg("Failed to persist supplier health")
	}
}

// Observe updates health from the outcome of a non-search call. Only transport
// and authentication failures count against the supplier; a rejected booking
// says nothing about its availability.
func (b *Base) Observe(ctx context.Context, err error) {
	switch {
	case err == nil:
		b.MarkHealthy(ctx)
	case domain.IsTransient(err) || domain.IsAuthError(err):
		b.MarkUnhealthy(ctx, err)
	}
}

// Err builds a typed supplier error for op.
func (b *Base) Err(op string, kind, cause error) *domain.SupplierError {
	return domain.NewSupplierError(b.Settings.Code, op, kind, cause)
}

// LogFailure logs a failed operation at the severity its kind deserves:
// info for expected misses, error for everything else.
func (b *Base) LogFailure(op string, err error) {
	log := b.Log.WithOperation(op)
	switch {
	case domain.IsNotFound(err):
		log.Info().Err(err).Msg("Supplier operation found nothing")
	case errors.Is(err, context.Canceled):
		log.Info().Err(err).Msg("Supplier operation cancelled")
	default:
		log.Error().Err(err).Msg("Supplier operation failed")
	}
}

// OfferExpiry returns the expiry stamped on offers created now.
func (b *Base) OfferExpiry() time.Time {
	return b.Clock.Now().Add(b.Offers.TTL())
}
