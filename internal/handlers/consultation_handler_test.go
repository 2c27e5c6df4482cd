// File: internal/handlers/consultation_handler_test.go
package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avicenna-labs/consult-core/internal/domain"
	"github.com/avicenna-labs/consult-core/internal/services"
	"github.com/avicenna-labs/consult-core/internal/services/consultation"
	"github.com/avicenna-labs/consult-core/internal/services/emergency"
	"github.com/avicenna-labs/consult-core/internal/services/validator"
)

type fixedPool struct{}

func (fixedPool) Generate(ctx context.Context, message string, consultCtx map[string]string) (*domain.AIResponse, error) {
	return &domain.AIResponse{
		Content: "I'm sorry you're feeling unwell. Rest and fluids are sensible first steps, " +
			"and I recommend you consult a healthcare provider if your symptoms persist or worsen.",
		ProviderID:   "primary",
		ResponseTime: 50 * time.Millisecond,
	}, nil
}

func (fixedPool) Status() domain.PoolStatus {
	return domain.PoolStatus{AvailableCount: 1, TotalCount: 1}
}

func (fixedPool) ProviderHealth() []domain.ProviderHealth {
	return []domain.ProviderHealth{{ProviderID: "primary", Status: domain.HealthHealthy}}
}

func newTestHandler(t *testing.T) *ConsultationHandler {
	t.Helper()
	svc, err := consultation.NewService(
		consultation.DefaultConfig(),
		emergency.NewDetector(),
		validator.NewValidator(),
		fixedPool{},
		&services.NoOpLogger{},
		consultation.NewMetrics(prometheus.NewRegistry()),
	)
	require.NoError(t, err)
	return NewConsultationHandler(svc)
}

func TestHandleConsultation(t *testing.T) {
	h := newTestHandler(t)

	body, _ := json.Marshal(domain.ConsultationRequest{Message: "I have a mild headache"})
	req := httptest.NewRequest(http.MethodPost, "/api/consultation", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	h.HandleConsultation(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp domain.ConsultationResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.NotEmpty(t, resp.Response)
	assert.True(t, resp.IsSafe)
	assert.NotEmpty(t, resp.Metadata.ConsultationID)
}

func TestHandleConsultationRejectsBadRequests(t *testing.T) {
	h := newTestHandler(t)

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", "{not json"},
		{"missing message", `{"user_id":"u1"}`},
		{"empty message", `{"message":""}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/consultation", bytes.NewBufferString(tt.body))
			rec := httptest.NewRecorder()

			h.HandleConsultation(rec, req)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestHandleStatus(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/status", nil)
	rec := httptest.NewRecorder()

	h.HandleStatus(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var health domain.ServiceHealth
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&health))
	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, 1, health.Pool.AvailableCount)
}

func TestHandleStatistics(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/statistics", nil)
	rec := httptest.NewRecorder()

	h.HandleStatistics(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var stats domain.EmergencyStatistics
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&stats))
	assert.Zero(t, stats.TotalAssessments)
}
