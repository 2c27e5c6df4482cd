// File: internal/services/emergency/detector.go
package emergency

import (
	"strings"
	"sync/atomic"
	"unicode"

	"github.com/avicenna-labs/consult-core/internal/domain"
)

// Detector scores a message for urgency using the static triage table. It is
// deterministic, does no I/O, and never panics on malformed input; the only
// mutable state is the running statistics counters.
type Detector struct {
	totalAssessments  atomic.Int64
	lowCount          atomic.Int64
	moderateCount     atomic.Int64
	highCount         atomic.Int64
	criticalCount     atomic.Int64
	criticalOverrides atomic.Int64
}

func NewDetector() *Detector {
	return &Detector{}
}

// Detect assesses one message. The context map is accepted for parity with
// the rest of the pipeline but scoring only looks at the message text.
func (d *Detector) Detect(message string, consultCtx map[string]string) domain.EmergencyAssessment {
	normalized := normalizeText(message)

	var (
		score          int
		keywords       []string
		categories     []string
		recs           []string
		response       string
		forcedCritical bool
	)

	for _, cat := range triageTable {
		matched := matchKeywords(normalized, cat.keywords)
		if len(matched) == 0 {
			continue
		}

		score += cat.weight
		keywords = append(keywords, matched...)
		categories = append(categories, cat.name)
		recs = append(recs, cat.recommendation)
		if cat.critical {
			forcedCritical = true
		}
		// The table is ordered by severity; the first hit owns the canned text.
		if response == "" {
			response = cat.response
		}
	}

	if score > maxUrgencyScore {
		score = maxUrgencyScore
	}

	level := levelForScore(score)
	if forcedCritical {
		level = domain.EmergencyCritical
		d.criticalOverrides.Add(1)
	}
	if response == "" {
		response = genericGuidance
	}

	d.recordLevel(level)

	return domain.EmergencyAssessment{
		IsEmergency:       forcedCritical || score >= moderateThreshold,
		UrgencyScore:      score,
		EmergencyLevel:    level,
		DetectedKeywords:  keywords,
		Categories:        categories,
		Confidence:        confidenceFor(len(categories), len(keywords)),
		Recommendations:   recs,
		EmergencyResponse: response,
	}
}

// Statistics returns the running counters accumulated since construction.
func (d *Detector) Statistics() domain.EmergencyStatistics {
	return domain.EmergencyStatistics{
		TotalAssessments:  d.totalAssessments.Load(),
		LowCount:          d.lowCount.Load(),
		ModerateCount:     d.moderateCount.Load(),
		HighCount:         d.highCount.Load(),
		CriticalCount:     d.criticalCount.Load(),
		CriticalOverrides: d.criticalOverrides.Load(),
	}
}

func (d *Detector) recordLevel(level domain.EmergencyLevel) {
	d.totalAssessments.Add(1)
	switch level {
	case domain.EmergencyLow:
		d.lowCount.Add(1)
	case domain.EmergencyModerate:
		d.moderateCount.Add(1)
	case domain.EmergencyHigh:
		d.highCount.Add(1)
	case domain.EmergencyCritical:
		d.criticalCount.Add(1)
	}
}

func levelForScore(score int) domain.EmergencyLevel {
	switch {
	case score >= criticalThreshold:
		return domain.EmergencyCritical
	case score >= highThreshold:
		return domain.EmergencyHigh
	case score >= moderateThreshold:
		return domain.EmergencyModerate
	default:
		return domain.EmergencyLow
	}
}

// confidenceFor maps matched-signal strength to [0,1]. This is a fixed
// formula, not a learned probability.
func confidenceFor(categoryCount, keywordCount int) float64 {
	if categoryCount == 0 {
		return 0
	}
	c := 0.4 + 0.2*float64(categoryCount) + 0.1*float64(keywordCount)
	if c > 0.95 {
		c = 0.95
	}
	return c
}

// normalizeText lowercases, strips apostrophes, and folds every other
// non-alphanumeric rune to a single space so "can't breathe!!" matches
// the "cant breathe" table entry.
func normalizeText(s string) string {
	s = strings.ToLower(s)
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r == '\'' || r == '’':
			// drop
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

func matchKeywords(normalized string, keywords []string) []string {
	if normalized == "" {
		return nil
	}
	var matched []string
	for _, kw := range keywords {
		if strings.Contains(normalized, normalizeText(kw)) {
			matched = append(matched, kw)
		}
	}
	return matched
}
