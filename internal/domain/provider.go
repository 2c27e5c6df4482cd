// File: internal/domain/provider.go
package domain

import "time"

// HealthStatus is the coarse reliability state of a provider.
type HealthStatus string

const (
	HealthUnknown  HealthStatus = "UNKNOWN"
	HealthHealthy  HealthStatus = "HEALTHY"
	HealthDegraded HealthStatus = "DEGRADED"
	HealthDown     HealthStatus = "DOWN"
)

// ProviderHealth is a point-in-time snapshot of one provider's health record.
type ProviderHealth struct {
	ProviderID          string        `json:"provider_id"`
	Status              HealthStatus  `json:"status"`
	SuccessRate         float64       `json:"success_rate"`
	ResponseTime        time.Duration `json:"response_time"`
	ConsecutiveFailures int           `json:"consecutive_failures"`
	ErrorCount          int64         `json:"error_count"`
	TotalCalls          int64         `json:"total_calls"`
	LastCheck           time.Time     `json:"last_check"`
	LastError           string        `json:"last_error,omitempty"`
}

// AIResponse is the result of one successful provider generation.
type AIResponse struct {
	Content         string            `json:"content"`
	ProviderID      string            `json:"provider_id"`
	ConfidenceScore float64           `json:"confidence_score"`
	ResponseTime    time.Duration     `json:"response_time"`
	Metadata        map[string]string `json:"metadata,omitempty"`
}

// PoolStatus summarizes provider availability for liveness reporting.
type PoolStatus struct {
	AvailableCount  int       `json:"available_count"`
	TotalCount      int       `json:"total_count"`
	LastHealthCheck time.Time `json:"last_health_check"`
}
