// File: internal/services/provider/health.go
package provider

import (
	"sync"
	"time"

	"github.com/avicenna-labs/consult-core/internal/domain"
)

// healthTracker is the mutable reliability record for one provider. The
// request path and the background probe both write to it, so every access
// goes through the mutex.
type healthTracker struct {
	mu sync.Mutex

	status              domain.HealthStatus
	totalCalls          int64
	totalSuccesses      int64
	errorCount          int64
	consecutiveFailures int
	avgResponseTime     time.Duration
	lastCheck           time.Time
	lastError           string
}

func newHealthTracker() *healthTracker {
	return &healthTracker{status: domain.HealthUnknown}
}

// recordSuccess marks the provider HEALTHY and folds the observed latency
// into the rolling average. Consecutive failures reset; the success rate is
// cumulative and is not reset by one success.
func (h *healthTracker) recordSuccess(elapsed time.Time, latency time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.totalCalls++
	h.totalSuccesses++
	h.consecutiveFailures = 0
	h.status = domain.HealthHealthy
	h.lastCheck = elapsed
	h.lastError = ""

	if h.avgResponseTime == 0 {
		h.avgResponseTime = latency
	} else {
		// Cumulative moving average over successful calls.
		n := h.totalSuccesses
		h.avgResponseTime += (latency - h.avgResponseTime) / time.Duration(n)
	}
}

// recordFailure bumps the failure counters and degrades the status once the
// consecutive-failure thresholds are crossed. Status never degrades for any
// other reason.
func (h *healthTracker) recordFailure(at time.Time, cause error, degradedAt, downAt int) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.totalCalls++
	h.errorCount++
	h.consecutiveFailures++
	h.lastCheck = at
	if cause != nil {
		h.lastError = cause.Error()
	}

	switch {
	case h.consecutiveFailures >= downAt:
		h.status = domain.HealthDown
	case h.consecutiveFailures >= degradedAt:
		h.status = domain.HealthDegraded
	}
}

func (h *healthTracker) currentStatus() domain.HealthStatus {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.status
}

func (h *healthTracker) snapshot(providerID string) domain.ProviderHealth {
	h.mu.Lock()
	defer h.mu.Unlock()

	rate := 0.0
	if h.totalCalls > 0 {
		rate = float64(h.totalSuccesses) / float64(h.totalCalls)
	}
	return domain.ProviderHealth{
		ProviderID:          providerID,
		Status:              h.status,
		SuccessRate:         rate,
		ResponseTime:        h.avgResponseTime,
		ConsecutiveFailures: h.consecutiveFailures,
		ErrorCount:          h.errorCount,
		TotalCalls:          h.totalCalls,
		LastCheck:           h.lastCheck,
		LastError:           h.lastError,
	}
}
