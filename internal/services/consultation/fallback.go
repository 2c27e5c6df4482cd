// File: internal/services/consultation/fallback.go
package consultation

// Provider markers used in ai_metadata when the response text is not
// provider-sourced.
const (
	bypassProviderID   = "emergency-bypass"
	fallbackProviderID = "safety-fallback"
	systemProviderID   = "system-fallback"
)

// Urgency banner tiers prepended at assembly time.
const (
	urgencyBannerThreshold = 6
	strongBannerThreshold  = 8

	strongUrgencyBanner = "URGENT: your symptoms may indicate a medical emergency. Call your local emergency number (911, 112) or go to the nearest emergency department now."
	mildUrgencyBanner   = "Important: your symptoms may need prompt medical attention. Please contact a healthcare provider today, and seek emergency care if things get worse."
)

// Canned "technical difficulties" responses in three severity bands keyed by
// urgency score. Pre-authored text only; nothing here is AI-generated.
const (
	fallbackUrgent = "We are experiencing technical difficulties and cannot generate a full reply right now. Based on your description, your symptoms may need urgent attention: please call your local emergency number (911, 112) or go to the nearest emergency department without waiting for this service to recover."

	fallbackElevated = "We are experiencing technical difficulties and cannot generate a full reply right now. Your description suggests symptoms that should be looked at soon: please contact your healthcare provider promptly, and seek emergency care if anything worsens."

	fallbackRoutine = "We are experiencing technical difficulties and cannot generate a full reply right now. Please try again in a few minutes, and reach out to a healthcare provider if your symptoms persist or worsen."
)

// systemFailureText is the generic, non-specific safe message for unexpected
// pipeline failures. It is deliberately conservative: at this point the
// system cannot reason about true urgency.
const systemFailureText = "Something went wrong while processing your consultation and we could not assess your message. Out of caution, please treat any severe, sudden, or worsening symptoms as urgent: contact a healthcare professional, or call your local emergency number (911, 112) if you feel your condition may be serious."

// fallbackForScore picks the canned band for an urgency score. The top band
// explicitly instructs the user to seek emergency care.
func fallbackForScore(urgencyScore int) string {
	switch {
	case urgencyScore >= urgencyBannerThreshold:
		return fallbackUrgent
	case urgencyScore >= 4:
		return fallbackElevated
	default:
		return fallbackRoutine
	}
}

func urgencyBanner(urgencyScore int) string {
	if urgencyScore >= strongBannerThreshold {
		return strongUrgencyBanner
	}
	return mildUrgencyBanner
}
