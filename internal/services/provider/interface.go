// File: internal/services/provider/interface.go
package provider

import "context"

// Logger defines the logging interface used across the provider pool.
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Debug(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
}

// Adapter is the contract a concrete AI backend must satisfy. Implementations
// are transport-agnostic: a local runtime and a remote HTTP API look the same
// to the pool.
type Adapter interface {
	// Generate produces consultation text for a message. The context map is
	// opaque to the adapter; entries are folded into the prompt as-is.
	Generate(ctx context.Context, message string, consultCtx map[string]string) (string, error)

	// HealthCheck is a lightweight probe, cheaper than a full generation.
	HealthCheck(ctx context.Context) error
}
