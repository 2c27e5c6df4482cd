// File: cmd/diagnostic/provider_diagnostic.go
package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/avicenna-labs/consult-core/internal/config"
	"github.com/avicenna-labs/consult-core/internal/services"
	"github.com/avicenna-labs/consult-core/internal/services/provider"
)

// Probes every configured provider and runs one sample generation through
// the failover path. Useful for checking credentials and base URLs before
// deploying.
func main() {
	cfg := config.Load()
	logger := services.NewLogger("provider_diagnostic")

	poolConfig := provider.DefaultConfig()
	poolConfig.CallTimeout = cfg.ProviderCallTimeout
	poolConfig.ProbeTimeout = cfg.ProbeTimeout

	pool, err := provider.NewPool(poolConfig, logger)
	if err != nil {
		log.Fatalf("pool init failed: %v", err)
	}

	configured := cfg.ConfiguredProviders()
	if len(configured) == 0 {
		log.Fatal("no providers configured; set PRIMARY_AI_API_KEY (and friends) first")
	}
	for i, pc := range configured {
		adapter, err := provider.NewOpenAIAdapter(provider.ProviderConfig{
			ID:       pc.ID,
			APIKey:   pc.APIKey,
			BaseURL:  pc.BaseURL,
			Model:    pc.Model,
			Priority: i,
		})
		if err != nil {
			log.Fatalf("adapter init failed for %s: %v", pc.ID, err)
		}
		if err := pool.Register(pc.ID, i, adapter); err != nil {
			log.Fatalf("register failed for %s: %v", pc.ID, err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	fmt.Println("Probing providers...")
	for _, snap := range pool.HealthCheckAll(ctx) {
		fmt.Printf("  %-20s status=%-8s success_rate=%.2f consecutive_failures=%d last_error=%q\n",
			snap.ProviderID, snap.Status, snap.SuccessRate, snap.ConsecutiveFailures, snap.LastError)
	}

	fmt.Println("Running sample generation...")
	resp, err := pool.Generate(ctx, "I have a mild headache since this morning. What can I do at home?", nil)
	if err != nil {
		log.Fatalf("generation failed: %v", err)
	}
	fmt.Printf("  provider=%s latency=%v confidence=%.2f\n", resp.ProviderID, resp.ResponseTime, resp.ConfidenceScore)
	fmt.Printf("  content:\n%s\n", resp.Content)
}
