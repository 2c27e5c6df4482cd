// File: internal/services/consultation/types.go
package consultation

import (
	"context"
	"fmt"

	"github.com/avicenna-labs/consult-core/internal/domain"
)

// Logger defines the logging interface used across the consultation service.
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Debug(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
}

// GenerationPool is the provider-pool surface the orchestrator consumes.
type GenerationPool interface {
	Generate(ctx context.Context, message string, consultCtx map[string]string) (*domain.AIResponse, error)
	Status() domain.PoolStatus
	ProviderHealth() []domain.ProviderHealth
}

// Config holds orchestrator settings.
type Config struct {
	// MaxRecommendations caps how many detector recommendations are appended
	// to an urgent response.
	MaxRecommendations int
}

func (c *Config) Validate() error {
	if c.MaxRecommendations < 1 {
		return fmt.Errorf("max recommendations must be at least 1")
	}
	return nil
}

func DefaultConfig() *Config {
	return &Config{MaxRecommendations: 3}
}
