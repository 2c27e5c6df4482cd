// File: internal/services/emergency/tables.go
package emergency

// category is one row of the static triage table. Weight is the urgency
// contribution when any keyword matches; critical categories force a
// CRITICAL assessment regardless of the aggregate score.
type category struct {
	name           string
	weight         int
	critical       bool
	keywords       []string
	recommendation string
	response       string
}

// Urgency score bands. The aggregate score is capped at maxUrgencyScore.
const (
	maxUrgencyScore   = 10
	moderateThreshold = 4
	highThreshold     = 6
	criticalThreshold = 8
)

const emergencyCallToAction = "Call your local emergency number (911, 112) or go to the nearest emergency department now. Do not wait for symptoms to pass."

// genericGuidance is returned when no category matches, so downstream
// fallback paths always have pre-authored text to work with.
const genericGuidance = "If your symptoms worsen suddenly, or if you develop chest pain, difficulty breathing, heavy bleeding, or confusion, seek immediate medical care or call your local emergency number."

// triageTable is ordered by descending severity; the first matched row
// supplies the pre-authored emergency response.
var triageTable = []category{
	{
		name:     "cardiac_arrest",
		weight:   10,
		critical: true,
		keywords: []string{
			"cardiac arrest", "heart has stopped", "heart stopped", "no pulse", "unresponsive and not breathing",
		},
		recommendation: "Start CPR immediately if the person is unresponsive and not breathing normally.",
		response:       "This sounds like a possible cardiac arrest. " + emergencyCallToAction + " If the person is unresponsive, start chest compressions and keep going until help arrives.",
	},
	{
		name:     "self_harm",
		weight:   10,
		critical: true,
		keywords: []string{
			"suicide", "suicidal", "kill myself", "end my life", "want to die", "hurt myself", "self harm", "overdose on purpose",
		},
		recommendation: "Contact a crisis line right away; in many regions you can call or text 988.",
		response:       "It sounds like you are going through something very painful. Please reach out for help right now: call or text a suicide and crisis line (988 in the US), or your local emergency number. You do not have to face this alone, and people are available to talk at any hour.",
	},
	{
		name:     "anaphylaxis",
		weight:   9,
		critical: true,
		keywords: []string{
			"anaphylaxis", "throat is closing", "throat closing", "throat swelling", "tongue swelling", "face swelling after sting",
		},
		recommendation: "Use an epinephrine auto-injector immediately if one has been prescribed.",
		response:       "Swelling of the throat or tongue can be a sign of a severe allergic reaction. " + emergencyCallToAction + " If an epinephrine auto-injector is available, use it without delay.",
	},
	{
		name:     "severe_bleeding",
		weight:   8,
		critical: true,
		keywords: []string{
			"bleeding wont stop", "wont stop bleeding", "spurting blood", "bleeding heavily",
		},
		recommendation: "Apply firm, continuous pressure to the wound with a clean cloth.",
		response:       "Bleeding that does not stop with pressure is an emergency. " + emergencyCallToAction + " While waiting, press firmly on the wound with a clean cloth and keep the pressure constant.",
	},
	{
		name:     "cardiac",
		weight:   4,
		critical: false,
		keywords: []string{
			"chest pain", "chest pressure", "chest tightness", "heart attack", "crushing pain", "pain spreading to my arm", "pain radiating", "palpitations",
		},
		recommendation: "Stop all activity and sit down; chest symptoms should be assessed urgently.",
		response:       "Chest pain or pressure can signal a serious heart problem, especially with sweating, nausea, or pain spreading to the arm or jaw. " + emergencyCallToAction,
	},
	{
		name:     "respiratory",
		weight:   4,
		critical: false,
		keywords: []string{
			"cant breathe", "cannot breathe", "difficulty breathing", "shortness of breath", "struggling to breathe", "gasping", "choking", "turning blue",
		},
		recommendation: "Sit upright, loosen tight clothing, and avoid exertion while waiting for help.",
		response:       "Serious trouble breathing needs immediate attention. " + emergencyCallToAction + " Sit upright and try to stay calm while help is on the way.",
	},
	{
		name:     "neurological",
		weight:   4,
		critical: false,
		keywords: []string{
			"stroke", "face drooping", "slurred speech", "seizure", "sudden numbness", "sudden weakness", "worst headache of my life", "lost consciousness", "passed out",
		},
		recommendation: "Note the time symptoms started; stroke treatment is time-critical.",
		response:       "Sudden weakness, facial drooping, slurred speech, or an abrupt severe headache can be signs of a stroke. " + emergencyCallToAction + " Note when the symptoms began.",
	},
	{
		name:     "poisoning",
		weight:   4,
		critical: false,
		keywords: []string{
			"poisoned", "poisoning", "swallowed bleach", "swallowed chemicals", "took too many pills", "overdose",
		},
		recommendation: "Contact poison control immediately and keep the product container at hand.",
		response:       "Possible poisoning or overdose needs urgent assessment. Call poison control or your local emergency number now, and keep the packaging of whatever was taken so responders can see it.",
	},
	{
		name:     "bleeding",
		weight:   3,
		critical: false,
		keywords: []string{
			"bleeding", "blood in vomit", "vomiting blood", "blood in stool", "coughing up blood",
		},
		recommendation: "Monitor the amount of blood loss and seek care promptly if it continues.",
		response:       "Ongoing or internal bleeding should be checked urgently. If the bleeding is heavy, continuous, or accompanied by dizziness, " + emergencyCallToAction,
	},
	{
		name:     "trauma",
		weight:   3,
		critical: false,
		keywords: []string{
			"car accident", "hit my head", "head injury", "fell from", "broken bone", "deep cut", "severe burn",
		},
		recommendation: "Avoid moving if a head, neck, or back injury is possible.",
		response:       "Significant injuries should be assessed in person without delay. " + emergencyCallToAction + " Avoid moving if there is any chance of a head, neck, or back injury.",
	},
	{
		name:     "obstetric",
		weight:   3,
		critical: false,
		keywords: []string{
			"water broke", "contractions", "pregnant and bleeding", "labor",
		},
		recommendation: "Contact your maternity unit or obstetric provider right away.",
		response:       "Pregnancy-related bleeding, broken waters, or strong contractions should be assessed right away. Contact your maternity unit or local emergency number now.",
	},
	{
		name:     "allergic",
		weight:   2,
		critical: false,
		keywords: []string{
			"allergic reaction", "hives", "rash spreading",
		},
		recommendation: "Watch closely for any swelling of the lips, tongue, or throat.",
		response:       "Allergic reactions can escalate quickly. If any swelling of the lips, tongue, or throat develops, or breathing becomes difficult, " + emergencyCallToAction,
	},
}
