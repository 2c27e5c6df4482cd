// File: internal/services/provider/config.go
package provider

import (
	"fmt"
	"time"
)

// ProviderConfig describes one configured AI backend.
type ProviderConfig struct {
	ID          string
	APIKey      string
	BaseURL     string
	Model       string
	Priority    int // lower value is tried first
	Temperature float32
	MaxTokens   int
}

// Config holds pool-wide settings.
type Config struct {
	// Per-call bound. Exceeding it counts as a failure and the pool moves on
	// to the next provider; there is no intra-request retry.
	CallTimeout time.Duration

	// Separate, shorter bound for background probes.
	ProbeTimeout time.Duration

	// Consecutive-failure thresholds for health transitions.
	DegradedThreshold int
	DownThreshold     int
}

func (c *Config) Validate() error {
	if c.CallTimeout <= 0 {
		return fmt.Errorf("call timeout must be positive")
	}
	if c.ProbeTimeout <= 0 {
		return fmt.Errorf("probe timeout must be positive")
	}
	if c.DegradedThreshold < 1 {
		return fmt.Errorf("degraded threshold must be at least 1")
	}
	if c.DownThreshold < c.DegradedThreshold {
		return fmt.Errorf("down threshold cannot be below degraded threshold")
	}
	return nil
}

func DefaultConfig() *Config {
	return &Config{
		CallTimeout:       30 * time.Second,
		ProbeTimeout:      10 * time.Second,
		DegradedThreshold: 3,
		DownThreshold:     5,
	}
}

func (p *ProviderConfig) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("provider id is required")
	}
	if p.Model == "" {
		return fmt.Errorf("provider %s: model is required", p.ID)
	}
	return nil
}
