package extract

import "github.com/PabloGalante/atelier-agent/internal/domain"

// englishMargin is how many stopword hits English needs, both absolute and
// ahead of German, before it beats the German default.
const englishMargin = 2

// DetectLanguage returns an explicit language request if present (explicit
// is true), otherwise a stopword-count guess. LanguageUnset means no signal.
func DetectLanguage(input string) (lang domain.Language, explicit bool) {
	text := Normalize(input)
	for _, req := range LanguageRequests {
		if ContainsAny(text, req.Phrases) {
			return req.Language, true
		}
	}

	en, de := stopwordHits(input)
	switch {
	case en > englishMargin && en-de > englishMargin:
		return domain.LanguageEnglish, false
	case de > en:
		return domain.LanguageGerman, false
	default:
		return domain.LanguageUnset, false
	}
}

func stopwordHits(input string) (en, de int) {
	enSet := toSet(EnglishStopwords)
	deSet := toSet(GermanStopwords)
	for _, tok := range tokens(input) {
		if enSet[tok] {
			en++
		}
		if deSet[tok] {
			de++
		}
	}
	return en, de
}

func toSet(words []string) map[string]bool {
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return m
}
