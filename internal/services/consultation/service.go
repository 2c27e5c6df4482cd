// File: internal/services/consultation/service.go
package consultation

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/avicenna-labs/consult-core/internal/domain"
	"github.com/avicenna-labs/consult-core/internal/services/emergency"
	"github.com/avicenna-labs/consult-core/internal/services/provider"
	"github.com/avicenna-labs/consult-core/internal/services/validator"
)

// Service sequences the emergency check, AI generation, and response
// validation into one request/response cycle. Every terminal path yields a
// fully populated ConsultationResponse; the entry point never returns an
// error to the caller.
type Service struct {
	config    *Config
	detector  *emergency.Detector
	validator *validator.Validator
	pool      GenerationPool
	logger    Logger
	metrics   *Metrics
}

func NewService(config *Config, detector *emergency.Detector, v *validator.Validator, pool GenerationPool, logger Logger, metrics *Metrics) (*Service, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, NewConfigError(err.Error())
	}
	if detector == nil {
		return nil, NewConfigError("emergency detector is required")
	}
	if v == nil {
		return nil, NewConfigError("response validator is required")
	}
	if pool == nil {
		return nil, NewConfigError("provider pool is required")
	}
	if logger == nil {
		return nil, NewConfigError("logger is required")
	}
	if metrics == nil {
		return nil, NewConfigError("metrics are required")
	}
	return &Service{
		config:    config,
		detector:  detector,
		validator: v,
		pool:      pool,
		logger:    logger,
		metrics:   metrics,
	}, nil
}

// MedicalConsultation runs one consultation cycle. A panic anywhere in the
// pipeline is converted into the generic system-failure response.
func (s *Service) MedicalConsultation(ctx context.Context, req domain.ConsultationRequest) (resp *domain.ConsultationResponse) {
	start := time.Now()
	consultationID := uuid.NewString()

	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("consultation pipeline panicked, serving system fallback",
				"consultation_id", consultationID, "panic", r)
			resp = s.systemFailureResponse(consultationID, start)
		}
	}()

	assessment := s.detector.Detect(req.Message, req.Context)

	// A CRITICAL assessment never reaches an AI provider. The canned
	// emergency text still passes through the validator so the response
	// carries a real validation record.
	if assessment.EmergencyLevel == domain.EmergencyCritical {
		validation := s.validator.Validate(assessment.EmergencyResponse, req.Message, req.Context)
		meta := domain.AIMetadata{
			Provider:          bypassProviderID,
			ConfidenceScore:   1,
			AIBypassed:        true,
			EmergencyOverride: true,
		}
		return s.assemble(consultationID, start, assessment, validation, meta, outcomeBypass)
	}

	aiResp, err := s.pool.Generate(ctx, req.Message, req.Context)
	outcome := outcomeAI
	var meta domain.AIMetadata
	if err != nil {
		if !provider.IsExhausted(err) {
			s.logger.Error("unexpected provider pool failure",
				"consultation_id", consultationID, "error", err)
		}
		content := fallbackForScore(assessment.UrgencyScore)
		if assessment.IsEmergency {
			content += "\n\n" + assessment.EmergencyResponse
		}
		aiResp = &domain.AIResponse{Content: content, ProviderID: fallbackProviderID}
		meta.FallbackUsed = true
		outcome = outcomePoolFallback
	}
	meta.Provider = aiResp.ProviderID
	meta.ConfidenceScore = aiResp.ConfidenceScore
	meta.ResponseTime = aiResp.ResponseTime

	validation := s.validator.Validate(aiResp.Content, req.Message, req.Context)
	if validation.Result == domain.ValidationFailed {
		s.logger.Warn("generated content failed validation, substituting canned response",
			"consultation_id", consultationID, "provider_id", aiResp.ProviderID,
			"issues", validation.Issues)
		validation = s.validator.Validate(fallbackForScore(assessment.UrgencyScore), req.Message, req.Context)
		meta.Provider = fallbackProviderID
		meta.ConfidenceScore = 0
		meta.FallbackUsed = true
		outcome = outcomeValidationFallback
	}

	return s.assemble(consultationID, start, assessment, validation, meta, outcome)
}

// ServiceHealth reports pool availability and per-provider snapshots.
func (s *Service) ServiceHealth() domain.ServiceHealth {
	pool := s.pool.Status()
	status := "ok"
	if pool.AvailableCount == 0 {
		status = "degraded"
	}
	return domain.ServiceHealth{
		Status:    status,
		Pool:      pool,
		Providers: s.pool.ProviderHealth(),
	}
}

// EmergencyStatistics exposes the detector's running counters.
func (s *Service) EmergencyStatistics() domain.EmergencyStatistics {
	return s.detector.Statistics()
}

// assemble builds the terminal ConsultationResponse: urgency banner and
// recommendations for urgent non-bypass responses, derived flags, metadata,
// metrics, and the outcome-severity log record.
func (s *Service) assemble(
	consultationID string,
	start time.Time,
	assessment domain.EmergencyAssessment,
	validation domain.ResponseValidation,
	meta domain.AIMetadata,
	outcome string,
) *domain.ConsultationResponse {
	text := validation.ValidatedResponse

	if !meta.AIBypassed && assessment.UrgencyScore >= urgencyBannerThreshold {
		text = urgencyBanner(assessment.UrgencyScore) + "\n\n" + text
		if len(assessment.Recommendations) > 0 {
			text += "\n\nWhat to do next:"
			for i, rec := range assessment.Recommendations {
				if i >= s.config.MaxRecommendations {
					break
				}
				text += "\n- " + rec
			}
		}
	}

	needsReview := assessment.EmergencyLevel == domain.EmergencyHigh ||
		assessment.EmergencyLevel == domain.EmergencyCritical ||
		validation.SafetyLevel == domain.SafetyUnsafe ||
		validation.Result == domain.ValidationFailed

	resp := &domain.ConsultationResponse{
		Response:   text,
		Emergency:  assessment,
		Validation: validation,
		AIMetadata: meta,
		Metadata: domain.ConsultationMetadata{
			ConsultationID:    consultationID,
			StartedAt:         start,
			TotalTime:         time.Since(start),
			EmergencyLevel:    assessment.EmergencyLevel,
			ValidationResult:  validation.Result,
			SafetyLevel:       validation.SafetyLevel,
			QualityScore:      validation.QualityScore,
			ModificationCount: len(validation.ModificationsMade),
			DisclaimerAdded:   validation.DisclaimerAdded,
			ContentFiltered:   validation.ContentFiltered,
		},
		IsEmergency:      assessment.IsEmergency,
		IsSafe:           validation.Result == domain.ValidationPassed && validation.SafetyLevel != domain.SafetyUnsafe,
		NeedsHumanReview: needsReview,
	}

	s.observe(resp, outcome)
	return resp
}

// systemFailureResponse is the terminal state for unexpected pipeline
// failures: a generic safe message with a conservative emergency assessment.
func (s *Service) systemFailureResponse(consultationID string, start time.Time) *domain.ConsultationResponse {
	assessment := domain.EmergencyAssessment{
		IsEmergency:       true,
		UrgencyScore:      urgencyBannerThreshold,
		EmergencyLevel:    domain.EmergencyHigh,
		EmergencyResponse: systemFailureText,
	}
	validation := s.validator.Validate(systemFailureText, "", nil)
	meta := domain.AIMetadata{Provider: systemProviderID, FallbackUsed: true}
	return s.assemble(consultationID, start, assessment, validation, meta, outcomeSystemFailure)
}

func (s *Service) observe(resp *domain.ConsultationResponse, outcome string) {
	s.metrics.ConsultationsTotal.WithLabelValues(outcome).Inc()
	s.metrics.ConsultationDuration.Observe(resp.Metadata.TotalTime.Seconds())
	s.metrics.EmergencyLevelTotal.WithLabelValues(string(resp.Metadata.EmergencyLevel)).Inc()
	s.metrics.ValidationTotal.WithLabelValues(string(resp.Metadata.ValidationResult), string(resp.Metadata.SafetyLevel)).Inc()
	if resp.AIMetadata.ResponseTime > 0 {
		s.metrics.ProviderLatency.Observe(resp.AIMetadata.ResponseTime.Seconds())
	}

	fields := []interface{}{
		"consultation_id", resp.Metadata.ConsultationID,
		"outcome", outcome,
		"urgency_score", resp.Emergency.UrgencyScore,
		"emergency_level", resp.Metadata.EmergencyLevel,
		"validation_result", resp.Metadata.ValidationResult,
		"safety_level", resp.Metadata.SafetyLevel,
		"quality_score", resp.Metadata.QualityScore,
		"response_time_ms", resp.AIMetadata.ResponseTime.Milliseconds(),
		"provider_id", resp.AIMetadata.Provider,
	}
	switch {
	case resp.Emergency.EmergencyLevel == domain.EmergencyCritical:
		s.logger.Warn("critical emergency consultation", fields...)
	case resp.Validation.SafetyLevel == domain.SafetyUnsafe || resp.Validation.Result == domain.ValidationFailed:
		s.logger.Error("unsafe consultation outcome", fields...)
	default:
		s.logger.Info("consultation completed", fields...)
	}
}
