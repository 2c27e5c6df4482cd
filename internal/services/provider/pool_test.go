// File: internal/services/provider/pool_test.go
package provider

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avicenna-labs/consult-core/internal/domain"
)

// stubAdapter is a controllable in-memory backend.
type stubAdapter struct {
	mu         sync.Mutex
	generates  int
	probes     int
	content    string
	genErr     error
	probeErr   error
	onGenerate func()
}

func (s *stubAdapter) Generate(ctx context.Context, message string, consultCtx map[string]string) (string, error) {
	s.mu.Lock()
	s.generates++
	s.mu.Unlock()
	if s.onGenerate != nil {
		s.onGenerate()
	}
	if s.genErr != nil {
		return "", s.genErr
	}
	return s.content, nil
}

func (s *stubAdapter) HealthCheck(ctx context.Context) error {
	s.mu.Lock()
	s.probes++
	s.mu.Unlock()
	return s.probeErr
}

func (s *stubAdapter) generateCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generates
}

type nopLogger struct{}

func (nopLogger) Info(msg string, keysAndValues ...interface{})  {}
func (nopLogger) Error(msg string, keysAndValues ...interface{}) {}
func (nopLogger) Debug(msg string, keysAndValues ...interface{}) {}
func (nopLogger) Warn(msg string, keysAndValues ...interface{})  {}

func testConfig() *Config {
	return &Config{
		CallTimeout:       time.Second,
		ProbeTimeout:      time.Second,
		DegradedThreshold: 3,
		DownThreshold:     5,
	}
}

func newTestPool(t *testing.T, cfg *Config) *Pool {
	t.Helper()
	pool, err := NewPool(cfg, nopLogger{})
	require.NoError(t, err)
	return pool
}

func TestNewPoolRequiresLogger(t *testing.T) {
	_, err := NewPool(testConfig(), nil)
	require.Error(t, err)

	var pe *ProviderError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, ErrTypeConfig, pe.Type)
}

func TestNewPoolDefaultsConfig(t *testing.T) {
	pool, err := NewPool(nil, nopLogger{})
	require.NoError(t, err)
	assert.NotNil(t, pool)
}

func TestRegisterRejectsDuplicatesAndEmptyIDs(t *testing.T) {
	pool := newTestPool(t, testConfig())

	require.NoError(t, pool.Register("primary", 0, &stubAdapter{content: "ok"}))
	assert.Error(t, pool.Register("primary", 1, &stubAdapter{content: "ok"}))
	assert.Error(t, pool.Register("", 2, &stubAdapter{content: "ok"}))
	assert.Error(t, pool.Register("no-adapter", 3, nil))
}

func TestGenerateFailoverOrder(t *testing.T) {
	pool := newTestPool(t, testConfig())
	primary := &stubAdapter{genErr: errors.New("upstream 500")}
	secondary := &stubAdapter{content: "from secondary"}

	// Registered out of order; priority decides the attempt sequence.
	require.NoError(t, pool.Register("secondary", 1, secondary))
	require.NoError(t, pool.Register("primary", 0, primary))

	resp, err := pool.Generate(context.Background(), "message", nil)
	require.NoError(t, err)

	assert.Equal(t, "from secondary", resp.Content)
	assert.Equal(t, "secondary", resp.ProviderID)
	assert.Equal(t, "2", resp.Metadata["attempt"])
	assert.Equal(t, 1, primary.generateCalls())
	assert.Equal(t, 1, secondary.generateCalls())
	assert.Equal(t, 1.0, resp.ConfidenceScore, "first success yields a perfect rate")
}

func TestGenerateExhaustedAfterOneAttemptEach(t *testing.T) {
	pool := newTestPool(t, testConfig())
	primary := &stubAdapter{genErr: errors.New("down")}
	secondary := &stubAdapter{genErr: errors.New("down too")}
	require.NoError(t, pool.Register("primary", 0, primary))
	require.NoError(t, pool.Register("secondary", 1, secondary))

	resp, err := pool.Generate(context.Background(), "message", nil)
	require.Error(t, err)
	assert.Nil(t, resp)
	assert.True(t, IsExhausted(err))
	assert.Equal(t, 1, primary.generateCalls(), "no intra-request retry")
	assert.Equal(t, 1, secondary.generateCalls(), "no intra-request retry")
}

func TestGenerateEmptyPoolIsExhausted(t *testing.T) {
	pool := newTestPool(t, testConfig())

	_, err := pool.Generate(context.Background(), "message", nil)
	require.Error(t, err)
	assert.True(t, IsExhausted(err))
}

func TestGenerateSkipsDownProviders(t *testing.T) {
	cfg := testConfig()
	cfg.DegradedThreshold = 1
	cfg.DownThreshold = 2

	pool := newTestPool(t, cfg)
	primary := &stubAdapter{genErr: errors.New("broken")}
	secondary := &stubAdapter{content: "ok"}
	require.NoError(t, pool.Register("primary", 0, primary))
	require.NoError(t, pool.Register("secondary", 1, secondary))

	// Two failures push primary to DOWN.
	for i := 0; i < 2; i++ {
		resp, err := pool.Generate(context.Background(), "message", nil)
		require.NoError(t, err)
		assert.Equal(t, "secondary", resp.ProviderID)
	}
	require.Equal(t, 2, primary.generateCalls())

	resp, err := pool.Generate(context.Background(), "message", nil)
	require.NoError(t, err)
	assert.Equal(t, "secondary", resp.ProviderID)
	assert.Equal(t, 2, primary.generateCalls(), "DOWN provider must not be attempted")
	assert.Equal(t, []string{"secondary"}, pool.AvailableProviders())
}

func TestGenerateStopsWhenRequestCancelled(t *testing.T) {
	pool := newTestPool(t, testConfig())
	ctx, cancel := context.WithCancel(context.Background())

	primary := &stubAdapter{genErr: errors.New("slow death")}
	primary.onGenerate = func() { cancel() }
	secondary := &stubAdapter{content: "ok"}
	require.NoError(t, pool.Register("primary", 0, primary))
	require.NoError(t, pool.Register("secondary", 1, secondary))

	_, err := pool.Generate(ctx, "message", nil)
	require.Error(t, err)
	assert.False(t, IsExhausted(err))
	assert.Equal(t, 0, secondary.generateCalls(), "cancelled request must not advance to the next provider")

	var pe *ProviderError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, ErrTypeCall, pe.Type)
}

func TestGenerateRecordsTimeoutType(t *testing.T) {
	pool := newTestPool(t, testConfig())
	primary := &stubAdapter{genErr: context.DeadlineExceeded}
	require.NoError(t, pool.Register("primary", 0, primary))

	_, err := pool.Generate(context.Background(), "message", nil)
	require.Error(t, err)
	assert.True(t, IsExhausted(err))

	snaps := pool.ProviderHealth()
	require.Len(t, snaps, 1)
	assert.Contains(t, snaps[0].LastError, string(ErrTypeTimeout))
}

func TestHealthCheckAllRecoversDownProvider(t *testing.T) {
	cfg := testConfig()
	cfg.DegradedThreshold = 1
	cfg.DownThreshold = 1

	pool := newTestPool(t, cfg)
	primary := &stubAdapter{genErr: errors.New("flaky"), content: "ok"}
	require.NoError(t, pool.Register("primary", 0, primary))

	_, err := pool.Generate(context.Background(), "message", nil)
	require.Error(t, err)
	require.Empty(t, pool.AvailableProviders())

	// Backend recovers; the probe must bring it back even though it is DOWN.
	primary.genErr = nil
	snaps := pool.HealthCheckAll(context.Background())
	require.Len(t, snaps, 1)
	assert.Equal(t, domain.HealthHealthy, snaps[0].Status)
	assert.Equal(t, 1, primary.probes)

	resp, err := pool.Generate(context.Background(), "message", nil)
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Content)
}

func TestHealthCheckUnknownProvider(t *testing.T) {
	pool := newTestPool(t, testConfig())
	_, err := pool.HealthCheck(context.Background(), "missing")
	require.Error(t, err)
}

func TestStatusReportsCountsAndLastCheck(t *testing.T) {
	pool := newTestPool(t, testConfig())
	require.NoError(t, pool.Register("primary", 0, &stubAdapter{content: "ok"}))
	require.NoError(t, pool.Register("secondary", 1, &stubAdapter{content: "ok"}))

	status := pool.Status()
	assert.Equal(t, 2, status.TotalCount)
	assert.Equal(t, 2, status.AvailableCount)
	assert.True(t, status.LastHealthCheck.IsZero())

	pool.HealthCheckAll(context.Background())
	status = pool.Status()
	assert.False(t, status.LastHealthCheck.IsZero())
}
