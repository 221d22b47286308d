package usecase

//go:generate mockgen -source=manager.go -destination=mock_manager.go -package=usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/flight-search/flight-supplier-gateway/internal/domain"
	"github.com/flight-search/flight-supplier-gateway/internal/infrastructure/logger"
	"github.com/flight-search/flight-supplier-gateway/internal/infrastructure/ratelimit"
	"github.com/flight-search/flight-supplier-gateway/internal/infrastructure/timeutil"
)

// Default timeout values.
const (
	DefaultGlobalTimeout   = 30 * time.Second
	DefaultSupplierTimeout = 25 * time.Second
	DefaultBookingTimeout  = 60 * time.Second
)

// SupplierManager fans searches out to every available supplier and routes
// offer operations to the supplier named by the offer id prefix.
type SupplierManager interface {
	// Search queries all available suppliers and returns the merged, filtered and sorted offers.
	// Failed suppliers contribute nothing; only a total failure is an error.
	Search(ctx context.Context, req domain.SearchRequest, opts SearchOptions) (*domain.SearchResponse, error)

	// GetOffer resolves a previously returned offer.
	GetOffer(ctx context.Context, offerID string) (*domain.NormalizedOffer, error)

	// PriceOffer confirms the current price. Suppliers with guaranteed prices return the quote.
	PriceOffer(ctx context.Context, offerID string) (*domain.PricingResult, error)

	// Book books the offer for the passengers and publishes a booking event.
	Book(ctx context.Context, offerID string, passengers []domain.Passenger) (*domain.BookingResult, error)

	// SeatMap returns the seat map, or an unsupported result for suppliers without one.
	SeatMap(ctx context.Context, offerID string) (*domain.SeatMapResult, error)

	// Health probes every supplier.
	Health(ctx context.Context) []domain.SupplierHealth

	// RunHealthChecks re-probes unhealthy suppliers every interval until ctx is done.
	RunHealthChecks(ctx context.Context, interval time.Duration)

	// Suppliers lists the registered supplier codes.
	Suppliers() []string
}

// Config contains the manager timeouts.
type Config struct {
	GlobalTimeout   time.Duration
	SupplierTimeout time.Duration
	BookingTimeout  time.Duration
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		GlobalTimeout:   DefaultGlobalTimeout,
		SupplierTimeout: DefaultSupplierTimeout,
		BookingTimeout:  DefaultBookingTimeout,
	}
}

// Deps are the manager's optional collaborators.
type Deps struct {
	// Limiter throttles outbound searches per supplier. Nil disables throttling.
	Limiter *ratelimit.SupplierLimiter

	// Publisher receives booking events. Nil disables publishing.
	Publisher domain.BookingPublisher

	Clock  timeutil.Clock
	Logger *logger.Logger
}

type supplierManager struct {
	adapters []domain.SupplierAdapter
	byCode   map[string]domain.SupplierAdapter
	cfg      Config

	limiter   *ratelimit.SupplierLimiter
	publisher domain.BookingPublisher
	clock     timeutil.Clock
	log       *logger.Logger

	searches singleflight.Group
}

// NewSupplierManager creates a manager over the given adapters.
// If config is nil, default timeout values are used. Duplicate codes keep the first adapter.
func NewSupplierManager(adapters []domain.SupplierAdapter, config *Config, deps Deps) SupplierManager {
	cfg := DefaultConfig()
	if config != nil {
		if config.GlobalTimeout > 0 {
			cfg.GlobalTimeout = config.GlobalTimeout
		}
		if config.SupplierTimeout > 0 {
			cfg.SupplierTimeout = config.SupplierTimeout
		}
		if config.BookingTimeout > 0 {
			cfg.BookingTimeout = config.BookingTimeout
		}
	}
	if deps.Clock == nil {
		deps.Clock = timeutil.NewRealClock()
	}
	if deps.Logger == nil {
		deps.Logger = logger.Nop()
	}

	m := &supplierManager{
		byCode:    make(map[string]domain.SupplierAdapter, len(adapters)),
		cfg:       cfg,
		limiter:   deps.Limiter,
		publisher: deps.Publisher,
		clock:     deps.Clock,
		log:       deps.Logger,
	}
	for _, a := range adapters {
		code := a.Code()
		if _, dup := m.byCode[code]; dup {
			m.log.Warn().Str(logger.FieldSupplier, code).Msg("Ignoring duplicate supplier adapter")
			continue
		}
		m.byCode[code] = a
		m.adapters = append(m.adapters, a)
	}
	return m
}

// Suppliers implements SupplierManager.
func (m *supplierManager) Suppliers() []string {
	codes := make([]string, 0, len(m.adapters))
	for _, a := range m.adapters {
		codes = append(codes, a.Code())
	}
	return codes
}

// gathered is the merged outcome of one fan-out, shared by collapsed searches.
type gathered struct {
	offers    []domain.NormalizedOffer
	queried   []string
	succeeded []string
	failed    []string
	skipped   []string
}

// Search implements SupplierManager.Search using the Scatter-Gather pattern.
// Identical concurrent searches share a single fan-out; each caller still
// applies its own filters and sort order.
func (m *supplierManager) Search(ctx context.Context, req domain.SearchRequest, opts SearchOptions) (*domain.SearchResponse, error) {
	start := time.Now()

	req.SetDefaults()
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := opts.Filters.Validate(); err != nil {
		return nil, err
	}

	key, err := searchKey(req)
	if err != nil {
		return nil, err
	}

	// The fan-out outlives any single caller; it is bounded by the global timeout.
	detached := context.WithoutCancel(ctx)
	ch := m.searches.DoChan(key, func() (any, error) {
		return m.gather(detached, req)
	})

	var res singleflight.Result
	select {
	case res = <-ch:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	if res.Err != nil {
		return nil, res.Err
	}
	g := res.Val.(*gathered)

	offers := SortOffers(ApplyFilters(g.offers, opts.Filters), opts.SortBy)

	return &domain.SearchResponse{
		Request: req,
		Offers:  offers,
		Metadata: domain.SearchMetadata{
			TotalResults:       len(offers),
			SearchTimeMs:       time.Since(start).Milliseconds(),
			SuppliersQueried:   slices.Clone(g.queried),
			SuppliersSucceeded: slices.Clone(g.succeeded),
			SuppliersFailed:    slices.Clone(g.failed),
			SuppliersSkipped:   slices.Clone(g.skipped),
			Shared:             res.Shared,
		},
	}, nil
}

// gather queries every available supplier and merges what succeeds.
func (m *supplierManager) gather(ctx context.Context, req domain.SearchRequest) (*gathered, error) {
	ctx, cancel := context.WithTimeout(ctx, m.cfg.GlobalTimeout)
	defer cancel()

	g := &gathered{
		queried:   []string{},
		succeeded: []string{},
		failed:    []string{},
		skipped:   []string{},
	}

	var targets []domain.SupplierAdapter
	for _, a := range m.adapters {
		if !a.IsAvailable() {
			g.skipped = append(g.skipped, a.Code())
			continue
		}
		targets = append(targets, a)
		g.queried = append(g.queried, a.Code())
	}
	if len(targets) == 0 {
		return nil, fmt.Errorf("%w: no supplier available", domain.ErrAllSuppliersFailed)
	}

	// Buffered channel to prevent goroutine blocking after the gather gives up
	results := make(chan domain.SupplierResult, len(targets))
	pending := make(map[string]bool, len(targets))

	var wg sync.WaitGroup
	for _, a := range targets {
		pending[a.Code()] = true
		wg.Add(1)
		go func(a domain.SupplierAdapter) {
			defer wg.Done()
			m.querySupplier(ctx, a, req, results)
		}(a)
	}
	go func() {
		wg.Wait()
		close(results)
	}()

collect:
	for len(pending) > 0 {
		select {
		case r, ok := <-results:
			if !ok {
				break collect
			}
			delete(pending, r.Supplier)
			m.record(g, r)
		case <-ctx.Done():
			for code := range pending {
				m.log.Warn().Str(logger.FieldSupplier, code).Msg("Supplier did not answer before the search deadline")
				g.failed = append(g.failed, code)
			}
			break collect
		}
	}

	sort.Strings(g.succeeded)
	sort.Strings(g.failed)
	if len(g.failed) == len(targets) {
		return nil, domain.ErrAllSuppliersFailed
	}
	return g, nil
}

func (m *supplierManager) record(g *gathered, r domain.SupplierResult) {
	log := m.log.WithSupplier(r.Supplier)
	if !r.IsSuccess() {
		g.failed = append(g.failed, r.Supplier)
		log.Warn().Err(r.Error).Int64("duration_ms", r.DurationMs).Msg("Supplier search failed")
		return
	}
	g.succeeded = append(g.succeeded, r.Supplier)
	g.offers = append(g.offers, r.Offers...)
	log.Debug().Int("offers", len(r.Offers)).Int64("duration_ms", r.DurationMs).Msg("Supplier search finished")
}

// querySupplier searches one supplier with its own timeout, rate limit and panic recovery.
func (m *supplierManager) querySupplier(ctx context.Context, a domain.SupplierAdapter, req domain.SearchRequest, results chan<- domain.SupplierResult) {
	ctx, cancel := context.WithTimeout(ctx, m.cfg.SupplierTimeout)
	defer cancel()

	start := time.Now()
	code := a.Code()

	// Panic recovery to prevent one supplier from crashing the whole search
	defer func() {
		if r := recover(); r != nil {
			results <- domain.SupplierResult{
				Supplier:   code,
				Error:      fmt.Errorf("supplier panic: %v", r),
				DurationMs: time.Since(start).Milliseconds(),
			}
		}
	}()

	if m.limiter != nil {
		if err := m.limiter.Wait(ctx, code); err != nil {
			results <- domain.SupplierResult{
				Supplier:   code,
				Error:      fmt.Errorf("rate limit wait: %w", err),
				DurationMs: time.Since(start).Milliseconds(),
			}
			return
		}
	}

	offers, err := a.Search(ctx, req)
	results <- domain.SupplierResult{
		Supplier:   code,
		Offers:     offers,
		Error:      err,
		DurationMs: time.Since(start).Milliseconds(),
	}
}

// searchKey identifies identical searches for collapsing.
func searchKey(req domain.SearchRequest) (string, error) {
	b, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("encode search key: %w", err)
	}
	return string(b), nil
}

// resolve finds the adapter that produced offerID.
func (m *supplierManager) resolve(offerID string) (domain.SupplierAdapter, error) {
	code, _, _, err := domain.ParseOfferID(offerID)
	if err != nil {
		return nil, err
	}
	a, ok := m.byCode[code]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownSupplier, code)
	}
	return a, nil
}

// Ensure supplierManager implements SupplierManager at compile time.
var _ SupplierManager = (*supplierManager)(nil)
