// File: internal/config/config.go
package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// AIProvider is the env-level description of one backend. Providers with an
// empty API key are skipped at wiring time.
type AIProvider struct {
	ID      string
	APIKey  string
	BaseURL string
	Model   string
}

type Config struct {
	ServerPort  string
	Environment string

	// Failover order is primary, secondary, local.
	PrimaryAI   AIProvider
	SecondaryAI AIProvider
	LocalAI     AIProvider

	ProviderCallTimeout time.Duration
	ProbeTimeout        time.Duration

	// Cron spec for the background health probe.
	HealthProbeSchedule string
}

// Load reads configuration from environment variables or .env file.
func Load() *Config {
	env := os.Getenv("ENV")
	if strings.ToLower(env) != "production" {
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found; continuing with environment variables")
		}
	}

	cfg := &Config{
		ServerPort:  getEnv("SERVER_PORT", "8080"),
		Environment: env,
		PrimaryAI: AIProvider{
			ID:      getEnv("PRIMARY_AI_ID", "openai-primary"),
			APIKey:  getEnv("PRIMARY_AI_API_KEY", ""),
			BaseURL: getEnv("PRIMARY_AI_BASE_URL", ""),
			Model:   getEnv("PRIMARY_AI_MODEL", "gpt-4o-mini"),
		},
		SecondaryAI: AIProvider{
			ID:      getEnv("SECONDARY_AI_ID", "openai-secondary"),
			APIKey:  getEnv("SECONDARY_AI_API_KEY", ""),
			BaseURL: getEnv("SECONDARY_AI_BASE_URL", ""),
			Model:   getEnv("SECONDARY_AI_MODEL", "gpt-4o-mini"),
		},
		LocalAI: AIProvider{
			ID:      getEnv("LOCAL_AI_ID", "local-runtime"),
			APIKey:  getEnv("LOCAL_AI_API_KEY", ""),
			BaseURL: getEnv("LOCAL_AI_BASE_URL", "http://localhost:11434/v1"),
			Model:   getEnv("LOCAL_AI_MODEL", ""),
		},
		ProviderCallTimeout: getEnvAsDuration("PROVIDER_CALL_TIMEOUT", 30*time.Second),
		ProbeTimeout:        getEnvAsDuration("PROVIDER_PROBE_TIMEOUT", 10*time.Second),
		HealthProbeSchedule: getEnv("HEALTH_PROBE_SCHEDULE", "@every 60s"),
	}

	// Validation for production environments
	if strings.ToLower(env) == "production" {
		if cfg.PrimaryAI.APIKey == "" {
			log.Fatalf("Missing required production environment variable: PRIMARY_AI_API_KEY")
		}
	}

	return cfg
}

// ConfiguredProviders returns the providers that have credentials, in
// failover priority order.
func (c *Config) ConfiguredProviders() []AIProvider {
	var providers []AIProvider
	for _, p := range []AIProvider{c.PrimaryAI, c.SecondaryAI, c.LocalAI} {
		if p.APIKey != "" || (p.ID == c.LocalAI.ID && p.Model != "") {
			providers = append(providers, p)
		}
	}
	return providers
}

// getEnv returns the value of an environment variable or a default.
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an env var as an integer, with a fallback.
func getEnvAsInt(key string, defaultValue int) int {
	strValue := getEnv(key, "")
	if strValue == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(strValue)
	if err != nil {
		log.Printf("Warning: could not parse env var %s as integer. Using default value.", key)
		return defaultValue
	}
	return intValue
}

// getEnvAsDuration gets an env var as a duration, with a fallback.
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if strValue == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(strValue)
	if err != nil {
		log.Printf("Warning: could not parse env var %s as duration. Using default value.", key)
		return defaultValue
	}
	return d
}
