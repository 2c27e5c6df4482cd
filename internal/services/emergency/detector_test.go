// File: internal/services/emergency/detector_test.go
package emergency

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avicenna-labs/consult-core/internal/domain"
)

func TestDetectLevels(t *testing.T) {
	tests := []struct {
		name          string
		message       string
		wantScore     int
		wantLevel     domain.EmergencyLevel
		wantEmergency bool
	}{
		{
			name:          "routine symptom",
			message:       "I have a mild headache since this morning",
			wantScore:     0,
			wantLevel:     domain.EmergencyLow,
			wantEmergency: false,
		},
		{
			name:          "empty message",
			message:       "",
			wantScore:     0,
			wantLevel:     domain.EmergencyLow,
			wantEmergency: false,
		},
		{
			name:          "single low-weight category stays low",
			message:       "I hit my head on a cupboard door yesterday",
			wantScore:     3,
			wantLevel:     domain.EmergencyLow,
			wantEmergency: false,
		},
		{
			name:          "single cardiac symptom is moderate",
			message:       "I keep having palpitations at night",
			wantScore:     4,
			wantLevel:     domain.EmergencyModerate,
			wantEmergency: true,
		},
		{
			name:          "two categories accumulate to high",
			message:       "I have chest pain and some bleeding from a cut",
			wantScore:     7,
			wantLevel:     domain.EmergencyHigh,
			wantEmergency: true,
		},
		{
			name:          "cardiac plus respiratory reaches critical by score",
			message:       "I have severe chest pain and can't breathe",
			wantScore:     8,
			wantLevel:     domain.EmergencyCritical,
			wantEmergency: true,
		},
		{
			name:          "self harm forces critical",
			message:       "I want to kill myself",
			wantScore:     10,
			wantLevel:     domain.EmergencyCritical,
			wantEmergency: true,
		},
		{
			name:          "anaphylaxis forces critical",
			message:       "My throat is closing up after a bee sting",
			wantScore:     9,
			wantLevel:     domain.EmergencyCritical,
			wantEmergency: true,
		},
		{
			name:          "score is capped at the maximum",
			message:       "My cut is bleeding heavily and the bleeding wont stop",
			wantScore:     10,
			wantLevel:     domain.EmergencyCritical,
			wantEmergency: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDetector()
			got := d.Detect(tt.message, nil)

			assert.Equal(t, tt.wantScore, got.UrgencyScore)
			assert.Equal(t, tt.wantLevel, got.EmergencyLevel)
			assert.Equal(t, tt.wantEmergency, got.IsEmergency)
			assert.NotEmpty(t, got.EmergencyResponse, "every assessment carries pre-authored guidance")
		})
	}
}

func TestDetectIsDeterministic(t *testing.T) {
	d := NewDetector()
	first := d.Detect("I have chest pain and some bleeding", nil)
	second := d.Detect("I have chest pain and some bleeding", nil)

	assert.Equal(t, first.UrgencyScore, second.UrgencyScore)
	assert.Equal(t, first.EmergencyLevel, second.EmergencyLevel)
	assert.Equal(t, first.DetectedKeywords, second.DetectedKeywords)
	assert.Equal(t, first.Categories, second.Categories)
	assert.Equal(t, first.EmergencyResponse, second.EmergencyResponse)
}

func TestDetectCriticalAssessmentFields(t *testing.T) {
	d := NewDetector()
	got := d.Detect("I want to kill myself", nil)

	require.Equal(t, domain.EmergencyCritical, got.EmergencyLevel)
	assert.Contains(t, got.Categories, "self_harm")
	assert.Contains(t, got.DetectedKeywords, "kill myself")
	assert.NotEmpty(t, got.Recommendations)
	assert.Greater(t, got.Confidence, 0.0)
	assert.Contains(t, got.EmergencyResponse, "988")
}

func TestDetectNoMatchHasZeroConfidence(t *testing.T) {
	d := NewDetector()
	got := d.Detect("I have a mild headache since this morning", nil)

	assert.Zero(t, got.Confidence)
	assert.Empty(t, got.DetectedKeywords)
	assert.Empty(t, got.Categories)
	assert.Equal(t, genericGuidance, got.EmergencyResponse)
}

func TestDetectNormalizesPunctuationAndApostrophes(t *testing.T) {
	d := NewDetector()
	got := d.Detect("HELP!!! I CAN'T   BREATHE...", nil)

	assert.Contains(t, got.Categories, "respiratory")
	assert.Contains(t, got.DetectedKeywords, "cant breathe")
}

func TestStatistics(t *testing.T) {
	d := NewDetector()
	d.Detect("I have a mild headache", nil)                 // LOW
	d.Detect("I keep having palpitations", nil)             // MODERATE
	d.Detect("I have chest pain and some bleeding", nil)    // HIGH
	d.Detect("I want to kill myself", nil)                  // CRITICAL, forced

	stats := d.Statistics()
	assert.Equal(t, int64(4), stats.TotalAssessments)
	assert.Equal(t, int64(1), stats.LowCount)
	assert.Equal(t, int64(1), stats.ModerateCount)
	assert.Equal(t, int64(1), stats.HighCount)
	assert.Equal(t, int64(1), stats.CriticalCount)
	assert.Equal(t, int64(1), stats.CriticalOverrides)
}

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"CAN'T   Breathe!!", "cant breathe"},
		{"chest-pain, now", "chest pain now"},
		{"  ", ""},
		{"won’t stop", "wont stop"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, normalizeText(tt.in), "input %q", tt.in)
	}
}
