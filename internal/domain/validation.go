// File: internal/domain/validation.go
package domain

// SafetyLevel is the post-generation content-safety classification.
type SafetyLevel string

const (
	SafetySafe    SafetyLevel = "SAFE"
	SafetyCaution SafetyLevel = "CAUTION"
	SafetyUnsafe  SafetyLevel = "UNSAFE"
)

// ValidationResult says whether a candidate response may be shown to the user.
type ValidationResult string

const (
	ValidationPassed ValidationResult = "PASSED"
	ValidationFailed ValidationResult = "FAILED"
)

// QualityRating is a coarse bucket over the heuristic quality score.
type QualityRating string

const (
	QualityExcellent QualityRating = "EXCELLENT"
	QualityGood      QualityRating = "GOOD"
	QualityAdequate  QualityRating = "ADEQUATE"
	QualityPoor      QualityRating = "POOR"
)

// ResponseValidation is the immutable result of validating one candidate text.
type ResponseValidation struct {
	ValidatedResponse string           `json:"validated_response"`
	Result            ValidationResult `json:"validation_result"`
	SafetyLevel       SafetyLevel      `json:"safety_level"`
	QualityScore      float64          `json:"quality_score"`
	QualityRating     QualityRating    `json:"quality_rating"`
	ModificationsMade []string         `json:"modifications_made,omitempty"`
	DisclaimerAdded   bool             `json:"disclaimer_added"`
	ContentFiltered   bool             `json:"content_filtered"`
	Issues            []string         `json:"issues,omitempty"`
}
