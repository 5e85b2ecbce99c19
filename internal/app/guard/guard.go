// Package guard holds the input and output boundary of a conversation turn:
// prompt-injection detection, input cleaning and secret redaction.
package guard

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PabloGalante/atelier-agent/internal/domain"
)

// DefaultMaxInputChars caps sanitized input.
const DefaultMaxInputChars = 2000

// Redacted replaces secret-like substrings in outgoing text.
const Redacted = "[REDACTED]"

// InjectionPatterns are checked in order against raw user text.
var InjectionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)ignore\s+(all\s+)?(the\s+)?(previous|prior|above|earlier)\s+(instructions|prompts?|rules)`),
	regexp.MustCompile(`(?i)disregard\s+(all\s+)?(the\s+)?(previous|prior|above|your)\s+(instructions|prompts?|rules)`),
	regexp.MustCompile(`(?i)forget\s+(all\s+)?(your|the|previous)\s+(instructions|rules)`),
	regexp.MustCompile(`(?i)\byou\s+are\s+now\b`),
	regexp.MustCompile(`(?i)\bact\s+as\s+(an?\s+)?(unrestricted|unfiltered|different)\b`),
	regexp.MustCompile(`(?i)\bpretend\s+(to\s+be|you\s+are)\b`),
	regexp.MustCompile(`(?i)\bjailbreak`),
	regexp.MustCompile(`(?i)\bDAN\s+mode\b`),
	regexp.MustCompile(`(?i)\bdeveloper\s+mode\b`),
	regexp.MustCompile(`(?i)system\s*(override|prompt)`),
	regexp.MustCompile(`(?i)bypass\s+(the\s+)?(safety|security|filters?|restrictions)`),
	regexp.MustCompile(`(?i)reveal\s+(your|the)\s+(prompt|instructions|system)`),
	regexp.MustCompile(`(?i)ignoriere?\s+(alle\s+)?(vorherigen|bisherigen|obigen)\s+(anweisungen|instruktionen|regeln)`),
	regexp.MustCompile(`(?i)\bdu\s+bist\s+(jetzt|nun|ab\s+sofort)\b`),
	regexp.MustCompile(`(?i)vergiss\s+(alle\s+)?(deine|die)\s+(anweisungen|regeln)`),
	regexp.MustCompile(`(?i)</?\s*(system|assistant)\s*>`),
}

// SecretPatterns are redacted from every reply before it leaves the service.
var SecretPatterns = []*regexp.Regexp{
	regexp.MustCompile(`sk-[A-Za-z0-9_\-]{16,}`),
	regexp.MustCompile(`AIza[0-9A-Za-z_\-]{35}`),
	regexp.MustCompile(`(?i)(api[_-]?key|secret|password|token)\s*[:=]\s*\S+`),
	regexp.MustCompile(`(?i)bearer\s+[A-Za-z0-9\-._~+/]+=*`),
	regexp.MustCompile(`eyJ[A-Za-z0-9_\-]{10,}\.[A-Za-z0-9_\-]{10,}\.[A-Za-z0-9_\-]+`),
}

var angleBrackets = strings.NewReplacer("<", "", ">", "")

// Guard implements domain.InputGuard with the fixed pattern tables above.
type Guard struct {
	maxChars int
}

var _ domain.InputGuard = (*Guard)(nil)

// New returns a Guard capping input at maxChars runes. A non-positive value
// uses DefaultMaxInputChars.
func New(maxChars int) *Guard {
	if maxChars <= 0 {
		maxChars = DefaultMaxInputChars
	}
	return &Guard{maxChars: maxChars}
}

// ContainsInjection reports whether text matches any InjectionPatterns entry.
func (g *Guard) ContainsInjection(text string) bool {
	for _, re := range InjectionPatterns {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

// SanitizeInput trims, strips angle brackets and caps the length.
func (g *Guard) SanitizeInput(text string) string {
	out := strings.TrimSpace(angleBrackets.Replace(text))
	if utf8.RuneCountInString(out) > g.maxChars {
		out = string([]rune(out)[:g.maxChars])
	}
	return out
}

// SanitizeOutput redacts secret-like substrings.
func (g *Guard) SanitizeOutput(text string) string {
	for _, re := range SecretPatterns {
		text = re.ReplaceAllString(text, Redacted)
	}
	return text
}
