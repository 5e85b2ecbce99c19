package recommend

import (
	"fmt"
	"math"
	"strings"

	"github.com/PabloGalante/atelier-agent/internal/domain"
)

// Fixed replies when a comparison cannot be built.
const (
	UnableToCompareEN = "I'm sorry, I can't compare those courses. Could you name two courses from our programme?"
	UnableToCompareDE = "Diese Kurse kann ich leider nicht vergleichen. Nenn mir gern zwei Kurse aus unserem Programm."
)

// UnableToCompare returns the fixed sentinel for lang.
func UnableToCompare(lang domain.Language) string {
	if lang == domain.LanguageEnglish {
		return UnableToCompareEN
	}
	return UnableToCompareDE
}

// CompareCourses contrasts two courses in English. If either id is unknown
// it returns UnableToCompareEN.
func (e *Engine) CompareCourses(id1, id2 string) string {
	return e.CompareCoursesIn(domain.LanguageEnglish, id1, id2)
}

// CompareCoursesIn is CompareCourses rendered in lang.
func (e *Engine) CompareCoursesIn(lang domain.Language, id1, id2 string) string {
	a, ok := e.catalog.Course(id1)
	if !ok {
		return UnableToCompare(lang)
	}
	b, ok := e.catalog.Course(id2)
	if !ok {
		return UnableToCompare(lang)
	}

	if lang == domain.LanguageEnglish {
		return fmt.Sprintf(
			"%s uses %s, while %s works with %s. %s takes %s and %s takes %s. "+
				"%s is perfect for %s; %s is perfect for %s. "+
				"Investment: %s costs %s and %s costs %s.",
			a.Name, approach(lang, a), b.Name, approach(lang, b),
			a.Name, a.Duration, b.Name, b.Duration,
			a.Name, audience(lang, a), b.Name, audience(lang, b),
			a.Name, FormatPrice(a.Pricing.Amount, a.Pricing.Currency),
			b.Name, FormatPrice(b.Pricing.Amount, b.Pricing.Currency),
		)
	}

	nameA, nameB := a.DisplayName(lang), b.DisplayName(lang)
	return fmt.Sprintf(
		"%s setzt auf %s, %s dagegen auf %s. %s dauert %s, %s dauert %s. "+
			"%s ist ideal für %s; %s ist ideal für %s. "+
			"Investition: %s kostet %s, %s kostet %s.",
		nameA, approach(lang, a), nameB, approach(lang, b),
		nameA, a.Duration, nameB, b.Duration,
		nameA, audience(lang, a), nameB, audience(lang, b),
		nameA, FormatPrice(a.Pricing.Amount, a.Pricing.Currency),
		nameB, FormatPrice(b.Pricing.Amount, b.Pricing.Currency),
	)
}

func approach(lang domain.Language, c domain.Course) string {
	construction := c.Category == domain.CategoryConstruction
	switch {
	case lang == domain.LanguageEnglish && construction:
		return "mathematical, precise methods"
	case lang == domain.LanguageEnglish:
		return "creative, intuitive techniques"
	case construction:
		return "mathematische, präzise Methoden"
	default:
		return "kreative, intuitive Techniken"
	}
}

func audience(lang domain.Language, c domain.Course) string {
	if len(c.PerfectFor) == 0 {
		if lang == domain.LanguageEnglish {
			return "anyone curious about fashion"
		}
		return "alle, die sich für Mode interessieren"
	}
	return strings.Join(c.PerfectFor, ", ")
}

// FormatPrice renders an amount such as "€690" or "€1419.50".
func FormatPrice(amount float64, currency string) string {
	num := fmt.Sprintf("%.0f", amount)
	if amount != math.Trunc(amount) {
		num = fmt.Sprintf("%.2f", amount)
	}
	switch strings.ToUpper(currency) {
	case "EUR", "":
		return "€" + num
	case "USD":
		return "$" + num
	default:
		return num + " " + strings.ToUpper(currency)
	}
}
