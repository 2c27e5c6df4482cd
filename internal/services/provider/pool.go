// File: internal/services/provider/pool.go
package provider

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/avicenna-labs/consult-core/internal/domain"
)

type entry struct {
	id       string
	priority int
	adapter  Adapter
	health   *healthTracker
}

// Pool abstracts heterogeneous AI backends behind one Generate call. It picks
// providers in fixed priority order, tracks per-provider reliability, and
// degrades gracefully when backends misbehave.
type Pool struct {
	config  *Config
	logger  Logger
	entries []*entry

	checkMu         sync.Mutex
	lastHealthCheck time.Time
}

func NewPool(config *Config, logger Logger) (*Pool, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, NewConfigError(err.Error())
	}
	if logger == nil {
		return nil, NewConfigError("logger is required")
	}
	return &Pool{config: config, logger: logger}, nil
}

// Register adds a provider to the pool. Lower priority values are tried
// first. Registration happens at construction time, before serving starts.
func (p *Pool) Register(id string, priority int, adapter Adapter) error {
	if id == "" {
		return NewConfigError("provider id is required")
	}
	if adapter == nil {
		return NewConfigError("adapter is required for provider " + id)
	}
	for _, e := range p.entries {
		if e.id == id {
			return NewConfigError("duplicate provider id " + id)
		}
	}

	p.entries = append(p.entries, &entry{
		id:       id,
		priority: priority,
		adapter:  adapter,
		health:   newHealthTracker(),
	})
	sort.SliceStable(p.entries, func(i, j int) bool {
		return p.entries[i].priority < p.entries[j].priority
	})
	return nil
}

// Generate runs the failover consultation call: providers in priority order,
// DOWN providers skipped, exactly one bounded attempt per provider per
// request. Every provider failing yields a POOL_EXHAUSTED error; the pool
// never silently returns empty content.
func (p *Pool) Generate(ctx context.Context, message string, consultCtx map[string]string) (*domain.AIResponse, error) {
	if len(p.entries) == 0 {
		return nil, NewExhaustedError(0)
	}

	attempts := 0
	for _, e := range p.entries {
		if e.health.currentStatus() == domain.HealthDown {
			p.logger.Debug("skipping provider marked DOWN", "provider_id", e.id)
			continue
		}

		attempts++
		callCtx, cancel := context.WithTimeout(ctx, p.config.CallTimeout)
		start := time.Now()
		content, err := e.adapter.Generate(callCtx, message, consultCtx)
		latency := time.Since(start)
		cancel()

		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) || errors.Is(callCtx.Err(), context.DeadlineExceeded) {
				err = NewTimeoutError(e.id, err)
			}
			e.health.recordFailure(time.Now(), err, p.config.DegradedThreshold, p.config.DownThreshold)
			p.logger.Warn("provider call failed, advancing to next provider",
				"provider_id", e.id, "attempt", attempts, "latency_ms", latency.Milliseconds(), "error", err)

			// The caller went away; stop burning providers on a dead request.
			if ctx.Err() != nil {
				return nil, NewCallError(e.id, "request cancelled", ctx.Err())
			}
			continue
		}

		e.health.recordSuccess(time.Now(), latency)
		snap := e.health.snapshot(e.id)
		p.logger.Info("provider call succeeded",
			"provider_id", e.id, "attempt", attempts, "latency_ms", latency.Milliseconds(),
			"success_rate", snap.SuccessRate)

		return &domain.AIResponse{
			Content:         content,
			ProviderID:      e.id,
			ConfidenceScore: snap.SuccessRate,
			ResponseTime:    latency,
			Metadata: map[string]string{
				"attempt": strconv.Itoa(attempts),
			},
		}, nil
	}

	p.logger.Error("provider pool exhausted", "attempts", attempts, "total_providers", len(p.entries))
	return nil, NewExhaustedError(attempts)
}

// HealthCheck probes a single provider by id and updates its health record.
func (p *Pool) HealthCheck(ctx context.Context, id string) (domain.ProviderHealth, error) {
	for _, e := range p.entries {
		if e.id != id {
			continue
		}
		p.probe(ctx, e)
		return e.health.snapshot(e.id), nil
	}
	return domain.ProviderHealth{}, NewConfigError("unknown provider id " + id)
}

// HealthCheckAll probes every provider, including ones marked DOWN so they
// can recover. Probes run in parallel and never take the request path's
// locks for longer than a single record update.
func (p *Pool) HealthCheckAll(ctx context.Context) []domain.ProviderHealth {
	var wg sync.WaitGroup
	for _, e := range p.entries {
		wg.Add(1)
		go func(e *entry) {
			defer wg.Done()
			p.probe(ctx, e)
		}(e)
	}
	wg.Wait()

	p.checkMu.Lock()
	p.lastHealthCheck = time.Now()
	p.checkMu.Unlock()

	return p.ProviderHealth()
}

func (p *Pool) probe(ctx context.Context, e *entry) {
	probeCtx, cancel := context.WithTimeout(ctx, p.config.ProbeTimeout)
	defer cancel()

	start := time.Now()
	if err := e.adapter.HealthCheck(probeCtx); err != nil {
		e.health.recordFailure(time.Now(), err, p.config.DegradedThreshold, p.config.DownThreshold)
		p.logger.Warn("health probe failed", "provider_id", e.id, "error", err)
		return
	}
	e.health.recordSuccess(time.Now(), time.Since(start))
	p.logger.Debug("health probe succeeded", "provider_id", e.id)
}

// AvailableProviders returns ids with status other than DOWN, in priority order.
func (p *Pool) AvailableProviders() []string {
	ids := make([]string, 0, len(p.entries))
	for _, e := range p.entries {
		if e.health.currentStatus() != domain.HealthDown {
			ids = append(ids, e.id)
		}
	}
	return ids
}

// Status reports pool availability for liveness endpoints.
func (p *Pool) Status() domain.PoolStatus {
	p.checkMu.Lock()
	last := p.lastHealthCheck
	p.checkMu.Unlock()

	return domain.PoolStatus{
		AvailableCount:  len(p.AvailableProviders()),
		TotalCount:      len(p.entries),
		LastHealthCheck: last,
	}
}

// ProviderHealth returns a snapshot of every provider's health record.
func (p *Pool) ProviderHealth() []domain.ProviderHealth {
	snaps := make([]domain.ProviderHealth, 0, len(p.entries))
	for _, e := range p.entries {
		snaps = append(snaps, e.health.snapshot(e.id))
	}
	return snaps
}
