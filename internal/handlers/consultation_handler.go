// File: internal/handlers/consultation_handler.go
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/avicenna-labs/consult-core/internal/domain"
	"github.com/avicenna-labs/consult-core/internal/services/consultation"
)

// ConsultationHandler exposes the safety pipeline over HTTP. It is a thin
// shim: the pipeline never returns errors, so there is no error translation
// beyond request decoding.
type ConsultationHandler struct {
	Service *consultation.Service
}

func NewConsultationHandler(service *consultation.Service) *ConsultationHandler {
	return &ConsultationHandler{Service: service}
}

// HandleConsultation serves POST /api/consultation.
func (h *ConsultationHandler) HandleConsultation(w http.ResponseWriter, r *http.Request) {
	var req domain.ConsultationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Message == "" {
		writeError(w, "a non-empty message is required", http.StatusBadRequest)
		return
	}

	resp := h.Service.MedicalConsultation(r.Context(), req)
	writeJSON(w, http.StatusOK, resp)
}

// HandleStatus serves GET /api/status with pool and provider health.
func (h *ConsultationHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Service.ServiceHealth())
}

// HandleStatistics serves GET /api/statistics with emergency counters.
func (h *ConsultationHandler) HandleStatistics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Service.EmergencyStatistics())
}

// writeJSON is a helper for sending JSON responses.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError is a helper for sending JSON error responses.
func writeError(w http.ResponseWriter, message string, status int) {
	writeJSON(w, status, map[string]string{"error": message})
}
