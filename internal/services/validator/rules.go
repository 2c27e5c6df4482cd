// File: internal/services/validator/rules.go
package validator

import "regexp"

// StandardDisclaimer is appended to any candidate response that lacks one.
const StandardDisclaimer = "This information is for general educational purposes and is not a substitute for professional medical advice. Please consult a qualified healthcare provider about your specific situation."

// disclaimerMarker is the phrase whose presence satisfies the disclaimer
// check. Matching on the marker rather than the full text keeps the check
// stable when providers phrase their own disclaimers.
const disclaimerMarker = "not a substitute for professional medical advice"

// contentRule is one disallowed-content pattern. Replacement text must never
// itself match any rule, otherwise validation would not be idempotent.
type contentRule struct {
	name        string
	pattern     *regexp.Regexp
	replacement string
	note        string
}

var contentRules = []contentRule{
	{
		name:        "dosage_instruction",
		pattern:     regexp.MustCompile(`(?i)\b(?:take|taking|use|using|inject|swallow|administer)\s+(?:about\s+|up\s+to\s+)?\d+(?:\.\d+)?\s*(?:mg|mcg|g|ml|milligrams?|micrograms?|grams?|milliliters?|units?|tablets?|pills?|capsules?|drops?)\b`),
		replacement: "follow the dosing guidance of your prescriber or pharmacist",
		note:        "removed explicit dosage instruction",
	},
	{
		name:        "bare_dose_amount",
		pattern:     regexp.MustCompile(`(?i)\b\d+(?:\.\d+)?\s*(?:mg|mcg|milligrams?|micrograms?)\b`),
		replacement: "an amount determined by your prescriber",
		note:        "removed specific dose amount",
	},
	{
		name:        "prescription_claim",
		pattern:     regexp.MustCompile(`(?i)\b(?:i|we)\s+(?:can\s+|will\s+|hereby\s+)?prescribe\b`),
		replacement: "a licensed clinician would need to evaluate whether to prescribe",
		note:        "removed prescription claim",
	},
	{
		name:        "definitive_diagnosis",
		pattern:     regexp.MustCompile(`(?i)\byou\s+(?:definitely\s+|certainly\s+|clearly\s+)?have\b`),
		replacement: "your symptoms may be consistent with",
		note:        "softened definitive diagnostic statement",
	},
	{
		name:        "diagnosis_claim",
		pattern:     regexp.MustCompile(`(?i)\b(?:my|your|the)\s+diagnosis\s+is\b|\bi\s+diagnose\b`),
		replacement: "only an examining clinician can make a diagnosis; the overall picture suggests",
		note:        "removed diagnosis claim",
	},
	{
		name:        "definitive_assertion",
		pattern:     regexp.MustCompile(`(?i)\b(?:it|this)\s+is\s+(?:definitely|certainly|without\s+a\s+doubt)\b`),
		replacement: "it may be",
		note:        "softened definitive assertion",
	},
}

var empathyMarkers = []string{
	"sorry", "understand", "i hear", "that sounds", "concern", "difficult", "help you",
}

var guidanceMarkers = []string{
	"consult", "recommend", "healthcare", "doctor", "clinician", "seek", "emergency",
}

var contradictionMarkers = []string{
	"but actually", "on second thought", "ignore what i said", "disregard the above", "forget the previous",
}
