package base

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/flight-search/flight-supplier-gateway/internal/domain"
)

// TestConnection performs a bare GET against the base URL. Any status below
// 500 counts as reachable. Adapters with a more meaningful probe override it.
func (b *Base) TestConnection(ctx context.Context) domain.HealthProbeResult {
	return b.Probe(ctx, func(resp *Response, err error) (bool, string) {
		if resp == nil {
			return false, fmt.Sprintf("connection failed: %v", err)
		}
		if resp.StatusCode >= http.StatusInternalServerError {
			return false, fmt.Sprintf("server error: status %d", resp.StatusCode)
		}
		return true, fmt.Sprintf("reachable: status %d", resp.StatusCode)
	})
}

// Probe sends one unretried GET to the base URL and lets judge decide the outcome.
// The health flag follows the result.
func (b *Base) Probe(ctx context.Context, judge func(resp *Response, err error) (bool, string)) domain.HealthProbeResult {
	start := time.Now()
	resp, err := b.Do(ctx, Request{Op: "test_connection", Method: http.MethodGet, Path: "", NoRetry: true})
	ok, msg := judge(resp, err)
	return b.Record(ctx, ok, msg, start)
}

// Record finishes a probe: it flips the health flag and measures latency from start.
func (b *Base) Record(ctx context.Context, ok bool, msg string, start time.Time) domain.HealthProbeResult {
	result := domain.HealthProbeResult{
		Success:   ok,
		Message:   msg,
		LatencyMs: time.Since(start).Milliseconds(),
	}
	if ok {
		b.MarkHealthy(ctx)
	} else {
		b.MarkUnhealthy(ctx, errors.New(msg))
	}
	return result
}
