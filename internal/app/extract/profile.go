package extract

import (
	"regexp"

	"github.com/PabloGalante/atelier-agent/internal/domain"
)

var emailPattern = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)

// ExtractProfile returns current updated with whatever the input reveals.
// It never clears a field: a later match overwrites, goals and interests
// only accumulate. Safe to call on every turn.
func ExtractProfile(input string, current domain.UserProfile) domain.UserProfile {
	p := current
	p.Goals = append([]domain.Goal{}, current.Goals...)
	p.Interests = append([]string(nil), current.Interests...)

	text := Normalize(input)

	if exp := matchExperience(text); exp != domain.ExperienceUnset {
		p.Experience = exp
	}

	for _, rule := range GoalRules {
		if ContainsAny(text, rule.Phrases) {
			p.AddGoal(rule.Goal)
		}
	}

	for _, rule := range InterestRules {
		if ContainsAny(text, rule.Phrases) {
			p.AddInterest(rule.Interest)
		}
	}

	for _, rule := range TimeRules {
		if ContainsAny(text, rule.Phrases) {
			p.TimeCommitment = rule.Commitment
			break
		}
	}

	if style := matchStyle(text); style != domain.StyleUnset {
		p.PreferredStyle = style
	}

	if email := ExtractEmail(input); email != "" {
		p.Email = email
	}

	if lang, explicit := DetectLanguage(input); lang != domain.LanguageUnset {
		switch {
		case explicit:
			p.Language = lang
			p.LanguageExplicit = true
		case !p.LanguageExplicit:
			p.Language = lang
		}
	}

	return p
}

func matchExperience(text string) domain.Experience {
	for _, rule := range ExperienceRules {
		if ContainsAny(text, rule.Phrases) {
			return rule.Experience
		}
	}
	return domain.ExperienceUnset
}

// matchStyle resolves mixed signals before single-style phrases, so
// "creative and technical" is mixed rather than the first style seen.
func matchStyle(text string) domain.LearningStyle {
	if ContainsAny(text, MixedStylePhrases) {
		return domain.StyleMixed
	}
	if ContainsAny(text, TechnicalCues) && ContainsAny(text, CreativeCues) {
		return domain.StyleMixed
	}
	for _, rule := range StyleRules {
		if ContainsAny(text, rule.Phrases) {
			return rule.Style
		}
	}
	return domain.StyleUnset
}

// ExtractEmail returns the first email address in the input, or "".
func ExtractEmail(input string) string {
	return emailPattern.FindString(input)
}
