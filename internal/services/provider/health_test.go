// File: internal/services/provider/health_test.go
package provider

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avicenna-labs/consult-core/internal/domain"
)

func TestHealthTrackerStartsUnknown(t *testing.T) {
	h := newHealthTracker()
	assert.Equal(t, domain.HealthUnknown, h.currentStatus())

	snap := h.snapshot("p1")
	assert.Equal(t, "p1", snap.ProviderID)
	assert.Zero(t, snap.TotalCalls)
	assert.Zero(t, snap.SuccessRate)
}

func TestHealthTrackerDegradationThresholds(t *testing.T) {
	h := newHealthTracker()
	cause := errors.New("boom")

	h.recordFailure(time.Now(), cause, 3, 5)
	h.recordFailure(time.Now(), cause, 3, 5)
	assert.Equal(t, domain.HealthUnknown, h.currentStatus(), "below threshold keeps prior status")

	h.recordFailure(time.Now(), cause, 3, 5)
	assert.Equal(t, domain.HealthDegraded, h.currentStatus())

	h.recordFailure(time.Now(), cause, 3, 5)
	assert.Equal(t, domain.HealthDegraded, h.currentStatus())

	h.recordFailure(time.Now(), cause, 3, 5)
	assert.Equal(t, domain.HealthDown, h.currentStatus())

	snap := h.snapshot("p1")
	assert.Equal(t, 5, snap.ConsecutiveFailures)
	assert.Equal(t, int64(5), snap.ErrorCount)
	assert.Equal(t, "boom", snap.LastError)
}

func TestHealthTrackerSuccessResetsConsecutiveFailures(t *testing.T) {
	h := newHealthTracker()
	cause := errors.New("boom")
	for i := 0; i < 5; i++ {
		h.recordFailure(time.Now(), cause, 3, 5)
	}
	require.Equal(t, domain.HealthDown, h.currentStatus())

	h.recordSuccess(time.Now(), 100*time.Millisecond)
	assert.Equal(t, domain.HealthHealthy, h.currentStatus())

	snap := h.snapshot("p1")
	assert.Zero(t, snap.ConsecutiveFailures)
	assert.Empty(t, snap.LastError)
	assert.Equal(t, int64(6), snap.TotalCalls)
	assert.InDelta(t, 1.0/6.0, snap.SuccessRate, 1e-9, "success rate is cumulative, not reset")
}

func TestHealthTrackerAverageResponseTime(t *testing.T) {
	h := newHealthTracker()
	h.recordSuccess(time.Now(), 100*time.Millisecond)
	h.recordSuccess(time.Now(), 300*time.Millisecond)

	snap := h.snapshot("p1")
	assert.Equal(t, 200*time.Millisecond, snap.ResponseTime)
}
