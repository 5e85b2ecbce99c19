package conversation

import (
	"fmt"
	"math"
	"strings"

	"github.com/PabloGalante/atelier-agent/internal/app/recommend"
	"github.com/PabloGalante/atelier-agent/internal/domain"
)

// replySet holds every fixed reply in one language.
type replySet struct {
	Welcome          string
	AskExperience    string
	ReAsk            string
	AskGoals         string
	AskStyle         string
	RecommendIntro   string // journey name, journey duration
	RecommendOutro   string
	NoRecommendation string
	Menu             string
	Followup         string
	Slots            []string
	SlotsIntro       string
	SlotsOutro       string
	ConsultationTo   string // email
	AskEmail         string
	EmailConfirmed   string // email
	EmailJourney     string // journey name
	PricingIntro     string
	PackageTip       string // package name, member count, price, discount percent
	ScheduleInfo     string
	Refusal          string
	TooLong          string // limit
	Apology          string
	Duration         string // duration, format
}

var replies = map[domain.Language]replySet{
	domain.LanguageGerman: {
		Welcome:          "Hallo und willkommen im Atelier! Ich helfe dir, den passenden Modekurs zu finden.",
		AskExperience:    "Wie viel Erfahrung hast du schon mit Nähen oder Schnittkonstruktion? Bist du absoluter Anfänger, hast du schon etwas genäht, oder bist du fortgeschritten?",
		ReAsk:            "Erzähl mir gern, wie viel Näherfahrung du schon mitbringst, dann finde ich den richtigen Einstieg für dich.",
		AskGoals:         "Danke! Was möchtest du mit Mode erreichen? Zum Beispiel ein Hobby, ein beruflicher Neustart, ein eigenes Label, nachhaltige Mode oder digitale Skills.",
		AskStyle:         "Super. Wie lernst du am liebsten: eher präzise und technisch, eher kreativ und intuitiv, oder ein bisschen von beidem?",
		RecommendIntro:   "Auf Basis deiner Antworten empfehle ich dir die Lernreise „%s“ (%s).",
		RecommendOutro:   "Möchtest du Kurse vergleichen, einen kostenlosen Beratungstermin buchen oder die Details per E-Mail bekommen?",
		NoRecommendation: "Ich konnte gerade keine passenden Kurse zusammenstellen. Magst du mir noch etwas mehr über deine Ziele erzählen?",
		Menu:             "Ich kann dir zwei Kurse im Vergleich zeigen, einen Beratungstermin vereinbaren oder dir alle Infos per E-Mail schicken. Was passt dir?",
		Followup:         "Kann ich dir sonst noch weiterhelfen? Frag mich gern nach Preisen, Kursvergleichen oder einem Beratungstermin.",
		Slots: []string{
			"Dienstag, 10:00 Uhr",
			"Mittwoch, 14:30 Uhr",
			"Freitag, 17:00 Uhr",
		},
		SlotsIntro:     "Sehr gern! Für eine kostenlose Beratung im Atelier sind diese Termine frei:",
		SlotsOutro:     "Welcher Termin passt dir am besten?",
		ConsultationTo: "Die Bestätigung schicke ich an %s.",
		AskEmail:       "Sehr gern! An welche E-Mail-Adresse darf ich dir die Informationen schicken?",
		EmailConfirmed: "Perfekt, ich schicke die Informationen an %s.",
		EmailJourney:   "Du bekommst alle Details zur Lernreise „%s“ und deinen empfohlenen Kursen.",
		PricingIntro:   "Hier die Investition für deine empfohlenen Kurse:",
		PackageTip:     "Tipp: Das %s enthält %d dieser Kurse für %s, du sparst %d%%.",
		ScheduleInfo:   "Unsere Kurse starten laufend. So sehen deine empfohlenen Kurse aus:",
		Refusal:        "Ich bin hier, um dir bei der Wahl des passenden Modekurses zu helfen. Lass uns dabei bleiben: Was möchtest du lernen?",
		TooLong:        "Deine Nachricht ist leider zu lang. Fass sie bitte in höchstens %d Zeichen zusammen, dann helfe ich dir gern weiter.",
		Apology:        "Entschuldige, da ist bei mir etwas schiefgelaufen. Magst du es noch einmal versuchen?",
		Duration:       "%s, %s",
	},
	domain.LanguageEnglish: {
		Welcome:          "Hello and welcome to the atelier! I'll help you find the fashion course that fits you.",
		AskExperience:    "How much experience do you have with sewing or pattern making? Are you a complete beginner, have you sewn a little, or are you more advanced?",
		ReAsk:            "Tell me how much sewing experience you already have and I'll find the right starting point for you.",
		AskGoals:         "Thanks! What would you like to achieve with fashion? For example a hobby, a career change, your own label, sustainable fashion or digital skills.",
		AskStyle:         "Great. How do you like to learn: precise and technical, creative and intuitive, or a bit of both?",
		RecommendIntro:   "Based on your answers I recommend the \"%s\" journey (%s).",
		RecommendOutro:   "Would you like to compare courses, book a free consultation, or get the details by email?",
		NoRecommendation: "I couldn't put together matching courses just now. Could you tell me a little more about your goals?",
		Menu:             "I can compare two courses for you, book a consultation, or send you all the details by email. What would you like?",
		Followup:         "Is there anything else I can help you with? Feel free to ask about prices, course comparisons or a consultation.",
		Slots: []string{
			"Tuesday, 10:00",
			"Wednesday, 14:30",
			"Friday, 17:00",
		},
		SlotsIntro:     "Happy to! These slots are open for a free consultation at the atelier:",
		SlotsOutro:     "Which one suits you best?",
		ConsultationTo: "I'll send the confirmation to %s.",
		AskEmail:       "Happy to! Which email address should I send the information to?",
		EmailConfirmed: "Perfect, I'll send the information to %s.",
		EmailJourney:   "You'll get all the details about the \"%s\" journey and your recommended courses.",
		PricingIntro:   "Here is the investment for your recommended courses:",
		PackageTip:     "Tip: the %s bundles %d of these courses for %s, saving you %d%%.",
		ScheduleInfo:   "Our courses start on a rolling basis. Here is how your recommended courses run:",
		Refusal:        "I'm here to help you choose the right fashion course. Let's stay on that: what would you like to learn?",
		TooLong:        "Your message is a bit too long. Please sum it up in at most %d characters and I'll gladly help.",
		Apology:        "Sorry, something went wrong on my side. Could you try that again?",
		Duration:       "%s, %s",
	},
}

func repliesFor(lang domain.Language) replySet {
	if r, ok := replies[lang]; ok {
		return r
	}
	return replies[domain.LanguageGerman]
}

// Welcome is the opening line of a new session.
func Welcome(lang domain.Language) string {
	return repliesFor(lang).Welcome
}

func recommendationText(lang domain.Language, journey domain.LearningJourney, recs []domain.Recommendation) string {
	r := repliesFor(lang)
	if len(recs) == 0 {
		return r.NoRecommendation
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf(r.RecommendIntro, journey.Name, journey.Duration))
	if journey.Description != "" {
		b.WriteString(" ")
		b.WriteString(journey.Description)
	}
	b.WriteString("\n\n")
	for i, rec := range recs {
		c := rec.Course
		fmt.Fprintf(&b, "%d. %s (%s, %s): %s\n",
			i+1, c.DisplayName(lang), c.Duration,
			recommend.FormatPrice(c.Pricing.Amount, c.Pricing.Currency), rec.Reasoning)
	}
	b.WriteString("\n")
	b.WriteString(r.RecommendOutro)
	return b.String()
}

func slotsText(lang domain.Language, email string) string {
	r := repliesFor(lang)
	var b strings.Builder
	b.WriteString(r.SlotsIntro)
	b.WriteString("\n")
	for _, s := range r.Slots {
		b.WriteString("- ")
		b.WriteString(s)
		b.WriteString("\n")
	}
	b.WriteString(r.SlotsOutro)
	if email != "" {
		b.WriteString(" ")
		b.WriteString(fmt.Sprintf(r.ConsultationTo, email))
	}
	return b.String()
}

func emailConfirmedText(lang domain.Language, email, journeyName string) string {
	r := repliesFor(lang)
	out := fmt.Sprintf(r.EmailConfirmed, email)
	if journeyName != "" {
		out += " " + fmt.Sprintf(r.EmailJourney, journeyName)
	}
	return out
}

func pricingText(lang domain.Language, recs []domain.Recommendation, pkg domain.CoursePackage, hasPkg bool) string {
	r := repliesFor(lang)
	var b strings.Builder
	b.WriteString(r.PricingIntro)
	b.WriteString("\n")
	for _, rec := range recs {
		c := rec.Course
		fmt.Fprintf(&b, "- %s: %s\n", c.DisplayName(lang), recommend.FormatPrice(c.Pricing.Amount, c.Pricing.Currency))
	}
	if hasPkg {
		members := 0
		for _, rec := range recs {
			for _, id := range pkg.CourseIDs {
				if id == rec.Course.ID {
					members++
				}
			}
		}
		fmt.Fprintf(&b, r.PackageTip, pkg.Name, members,
			recommend.FormatPrice(pkg.Pricing.Amount, pkg.Pricing.Currency),
			int(math.Round(pkg.Pricing.Discount*100)))
	}
	return strings.TrimRight(b.String(), "\n")
}

func scheduleInfoText(lang domain.Language, recs []domain.Recommendation) string {
	r := repliesFor(lang)
	var b strings.Builder
	b.WriteString(r.ScheduleInfo)
	b.WriteString("\n")
	for _, rec := range recs {
		c := rec.Course
		fmt.Fprintf(&b, "- %s: %s\n", c.DisplayName(lang), fmt.Sprintf(r.Duration, c.Duration, c.Format))
	}
	b.WriteString(r.Menu)
	return b.String()
}
