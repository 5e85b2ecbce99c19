package extract

import "github.com/PabloGalante/atelier-agent/internal/domain"

// DetectIntents returns every intent whose phrases occur in the input, in
// IntentRules order. It does not look at profile or phase.
func DetectIntents(input string) []domain.Intent {
	text := Normalize(input)

	var out []domain.Intent
	for _, rule := range IntentRules {
		if ContainsAny(text, rule.Phrases) {
			out = append(out, rule.Intent)
		}
	}
	return out
}

// HasIntent reports whether want is among intents.
func HasIntent(intents []domain.Intent, want domain.Intent) bool {
	for _, in := range intents {
		if in == want {
			return true
		}
	}
	return false
}
