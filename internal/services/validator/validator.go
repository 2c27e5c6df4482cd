// File: internal/services/validator/validator.go
package validator

import (
	"strings"

	"github.com/avicenna-labs/consult-core/internal/domain"
)

// Thresholds for deciding that filtering destroyed the answer. When too much
// of the candidate had to be removed, safety can no longer be guaranteed and
// the caller must substitute a canned response.
const (
	maxFilteredRatio  = 0.35
	minUsefulLength   = 60
	failQualityFloor  = 0.0
	excellentCutoff   = 0.8
	goodCutoff        = 0.6
	adequateCutoff    = 0.4
)

// Validator is the last line of defense between an unconstrained text
// generator and the user. It is pure and deterministic: the same candidate
// always yields the same validation, and re-validating its own output never
// flips a pass into a failure.
type Validator struct{}

func NewValidator() *Validator {
	return &Validator{}
}

// Validate applies the safety rules to one candidate text.
func (v *Validator) Validate(candidate, originalMessage string, consultCtx map[string]string) domain.ResponseValidation {
	trimmed := strings.TrimSpace(candidate)
	if trimmed == "" {
		return domain.ResponseValidation{
			ValidatedResponse: "",
			Result:            domain.ValidationFailed,
			SafetyLevel:       domain.SafetyUnsafe,
			QualityScore:      failQualityFloor,
			QualityRating:     domain.QualityPoor,
			Issues:            []string{"candidate response is empty"},
		}
	}

	text := trimmed
	var modifications []string
	var issues []string
	filteredBytes := 0

	for _, rule := range contentRules {
		matches := rule.pattern.FindAllString(text, -1)
		if len(matches) == 0 {
			continue
		}
		for _, m := range matches {
			filteredBytes += len(m)
		}
		text = rule.pattern.ReplaceAllString(text, rule.replacement)
		modifications = append(modifications, rule.note)
		issues = append(issues, "disallowed content: "+rule.name)
	}
	contentFiltered := len(modifications) > 0

	disclaimerAdded := false
	if !strings.Contains(strings.ToLower(text), disclaimerMarker) {
		text = text + "\n\n" + StandardDisclaimer
		disclaimerAdded = true
		modifications = append(modifications, "appended standard medical disclaimer")
	}

	destroyed := false
	if contentFiltered {
		ratio := float64(filteredBytes) / float64(len(trimmed))
		if ratio > maxFilteredRatio {
			destroyed = true
			issues = append(issues, "filtering removed too much of the response to preserve its meaning")
		}
	}

	quality := scoreQuality(text, contentFiltered)

	safety := domain.SafetySafe
	result := domain.ValidationPassed
	switch {
	case destroyed:
		safety = domain.SafetyUnsafe
		result = domain.ValidationFailed
	case contentFiltered:
		safety = domain.SafetyCaution
	}

	return domain.ResponseValidation{
		ValidatedResponse: text,
		Result:            result,
		SafetyLevel:       safety,
		QualityScore:      quality,
		QualityRating:     ratingFor(quality),
		ModificationsMade: modifications,
		DisclaimerAdded:   disclaimerAdded,
		ContentFiltered:   contentFiltered,
		Issues:            issues,
	}
}

// scoreQuality is a cheap heuristic over length, tone, and coherence. It
// feeds monitoring and the coarse rating; it never decides safety on its own.
func scoreQuality(text string, contentFiltered bool) float64 {
	lower := strings.ToLower(text)
	score := 0.5

	switch n := len([]rune(text)); {
	case n >= 400:
		score += 0.2
	case n >= 150:
		score += 0.15
	case n >= minUsefulLength:
		score += 0.05
	default:
		score -= 0.2
	}

	if containsAny(lower, empathyMarkers) {
		score += 0.15
	}
	if containsAny(lower, guidanceMarkers) {
		score += 0.15
	}
	if containsAny(lower, contradictionMarkers) {
		score -= 0.25
	}
	if contentFiltered {
		score -= 0.1
	}

	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}
	return score
}

func ratingFor(quality float64) domain.QualityRating {
	switch {
	case quality >= excellentCutoff:
		return domain.QualityExcellent
	case quality >= goodCutoff:
		return domain.QualityGood
	case quality >= adequateCutoff:
		return domain.QualityAdequate
	default:
		return domain.QualityPoor
	}
}

func containsAny(haystack string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(haystack, n) {
			return true
		}
	}
	return false
}
