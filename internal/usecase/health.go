package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/flight-search/flight-supplier-gateway/internal/domain"
	"github.com/flight-search/flight-supplier-gateway/internal/infrastructure/logger"
)

// healthReporter is implemented by adapters that expose their health flag apart from activity.
type healthReporter interface {
	IsHealthy() bool
}

// Health implements SupplierManager. Probes run concurrently, each bounded
// by the per-supplier timeout; results keep registration order.
func (m *supplierManager) Health(ctx context.Context) []domain.SupplierHealth {
	out := make([]domain.SupplierHealth, len(m.adapters))

	var wg sync.WaitGroup
	for i, a := range m.adapters {
		wg.Add(1)
		go func(i int, a domain.SupplierAdapter) {
			defer wg.Done()
			probe := m.probe(ctx, a)
			out[i] = domain.SupplierHealth{
				Supplier:  a.Code(),
				Available: a.IsAvailable(),
				Probe:     probe,
			}
		}(i, a)
	}
	wg.Wait()
	return out
}

func (m *supplierManager) probe(ctx context.Context, a domain.SupplierAdapter) (result domain.HealthProbeResult) {
	ctx, cancel := context.WithTimeout(ctx, m.cfg.SupplierTimeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			result = domain.HealthProbeResult{Success: false, Message: fmt.Sprintf("probe panic: %v", r)}
		}
	}()
	return a.TestConnection(ctx)
}

// RunHealthChecks implements SupplierManager. Only suppliers that are
// currently unhealthy are probed, so a recovered supplier rejoins searches.
func (m *supplierManager) RunHealthChecks(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.recheckUnhealthy(ctx)
		}
	}
}

func (m *supplierManager) recheckUnhealthy(ctx context.Context) {
	for _, a := range m.adapters {
		if a.IsAvailable() {
			continue
		}
		if hr, ok := a.(healthReporter); ok && hr.IsHealthy() {
			// Inactive by configuration, not by failure.
			continue
		}
		result := m.probe(ctx, a)
		m.log.Info().
			Str(logger.FieldSupplier, a.Code()).
			Bool("success", result.Success).
			Str("message", result.Message).
			Msg("Supplier health re-checked")
	}
}
