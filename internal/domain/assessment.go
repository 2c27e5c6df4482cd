// File: internal/domain/assessment.go
package domain

// EmergencyLevel is the coarse urgency classification of a symptom description.
type EmergencyLevel string

const (
	EmergencyLow      EmergencyLevel = "LOW"
	EmergencyModerate EmergencyLevel = "MODERATE"
	EmergencyHigh     EmergencyLevel = "HIGH"
	EmergencyCritical EmergencyLevel = "CRITICAL"
)

// EmergencyAssessment is the immutable result of scoring one message.
type EmergencyAssessment struct {
	IsEmergency       bool           `json:"is_emergency"`
	UrgencyScore      int            `json:"urgency_score"`
	EmergencyLevel    EmergencyLevel `json:"emergency_level"`
	DetectedKeywords  []string       `json:"detected_keywords,omitempty"`
	Categories        []string       `json:"categories,omitempty"`
	Confidence        float64        `json:"confidence"`
	Recommendations   []string       `json:"recommendations,omitempty"`
	EmergencyResponse string         `json:"emergency_response,omitempty"`
}

// EmergencyStatistics accumulates detector outcomes over the process lifetime.
type EmergencyStatistics struct {
	TotalAssessments  int64 `json:"total_assessments"`
	LowCount          int64 `json:"low_count"`
	ModerateCount     int64 `json:"moderate_count"`
	HighCount         int64 `json:"high_count"`
	CriticalCount     int64 `json:"critical_count"`
	CriticalOverrides int64 `json:"critical_overrides"`
}
