// File: internal/domain/consultation.go
package domain

import "time"

// ConsultationRequest is the input to one consultation cycle. Context is an
// opaque map filled by outer collaborators (conversation summaries, history).
type ConsultationRequest struct {
	Message        string            `json:"message"`
	UserID         string            `json:"user_id,omitempty"`
	SessionID      string            `json:"session_id,omitempty"`
	ConversationID string            `json:"conversation_id,omitempty"`
	Context        map[string]string `json:"context,omitempty"`
}

// AIMetadata describes where the response text came from.
type AIMetadata struct {
	Provider          string        `json:"provider"`
	ConfidenceScore   float64       `json:"confidence_score"`
	ResponseTime      time.Duration `json:"response_time"`
	AIBypassed        bool          `json:"ai_bypassed"`
	EmergencyOverride bool          `json:"emergency_override"`
	FallbackUsed      bool          `json:"fallback_used"`
}

// ConsultationMetadata carries per-request bookkeeping for monitoring.
type ConsultationMetadata struct {
	ConsultationID    string           `json:"consultation_id"`
	StartedAt         time.Time        `json:"started_at"`
	TotalTime         time.Duration    `json:"total_time"`
	EmergencyLevel    EmergencyLevel   `json:"emergency_level"`
	ValidationResult  ValidationResult `json:"validation_result"`
	SafetyLevel       SafetyLevel      `json:"safety_level"`
	QualityScore      float64          `json:"quality_score"`
	ModificationCount int              `json:"modification_count"`
	DisclaimerAdded   bool             `json:"disclaimer_added"`
	ContentFiltered   bool             `json:"content_filtered"`
}

// ConsultationResponse is the single output of the pipeline. Every path,
// including every fallback, produces one with a populated Validation.
type ConsultationResponse struct {
	Response         string               `json:"response"`
	Emergency        EmergencyAssessment  `json:"emergency_assessment"`
	Validation       ResponseValidation   `json:"response_validation"`
	AIMetadata       AIMetadata           `json:"ai_metadata"`
	Metadata         ConsultationMetadata `json:"consultation_metadata"`
	IsEmergency      bool                 `json:"is_emergency"`
	IsSafe           bool                 `json:"is_safe"`
	NeedsHumanReview bool                 `json:"needs_human_review"`
}

// ServiceHealth is the read-only liveness view exposed to monitoring.
type ServiceHealth struct {
	Status    string           `json:"status"`
	Pool      PoolStatus       `json:"pool"`
	Providers []ProviderHealth `json:"providers"`
}
