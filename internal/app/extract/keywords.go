package extract

import "github.com/PabloGalante/atelier-agent/internal/domain"

// ExperienceRule maps phrases to an experience tier. Rules are checked in
// slice order and the first match wins.
type ExperienceRule struct {
	Experience domain.Experience
	Phrases    []string
}

var ExperienceRules = []ExperienceRule{
	{domain.ExperienceCompleteBeginner, []string{
		"complete beginner", "total beginner", "absolute beginner", "beginner",
		"never sewn", "never sewed", "no experience", "never done",
		"anfänger", "noch nie genäht", "keine erfahrung", "keine vorkenntnisse",
	}},
	{domain.ExperienceSomeSewing, []string{
		"some experience", "some sewing", "a little", "bit of sewing", "basic sewing", "sewn before",
		"etwas erfahrung", "ein bisschen genäht", "ein wenig genäht", "ein bisschen erfahrung",
		"ein wenig erfahrung", "schon mal genäht", "grundkenntnisse",
	}},
	{domain.ExperienceIntermediate, []string{
		"intermediate", "quite experienced", "sew regularly", "regularly sew",
		"mittleres niveau", "mittelstufe", "regelmäßig",
	}},
	{domain.ExperienceAdvanced, []string{
		"advanced", "professional", "expert", "years of experience",
		"fortgeschritten", "profi", "professionell", "experte", "jahrelange erfahrung",
	}},
}

// GoalRule phrases are checked independently; every matching goal is added.
type GoalRule struct {
	Goal    domain.Goal
	Phrases []string
}

var GoalRules = []GoalRule{
	{domain.GoalHobby, []string{
		"hobby", "for fun", "for myself", "just for me",
		"spaß", "freizeit", "für mich",
	}},
	{domain.GoalCareerChange, []string{
		"career", "new job", "work in fashion", "change jobs",
		"berufswechsel", "karriere", "beruflich", "umschulung", "quereinstieg", "neuen beruf",
	}},
	{domain.GoalStartBusiness, []string{
		"own business", "start a business", "business", "own label", "own brand", "start my own",
		"selbstständig", "eigenes label", "eigene marke", "unternehmen", "gründen",
	}},
	{domain.GoalSustainability, []string{
		"sustainab", "eco-friendly", "eco friendly", "ecolog", "environment", "upcycl", "recycl", "zero waste", "zero-waste",
		"nachhaltig", "umweltfreundlich", "ökologisch",
	}},
	{domain.GoalDigitalSkills, []string{
		"digital", "clo3d", "clo 3d", " 3d ", " cad ", "software", "computer",
	}},
}

// InterestRule phrases add a free-text interest tag.
type InterestRule struct {
	Interest string
	Phrases  []string
}

var InterestRules = []InterestRule{
	{domain.InterestSustainableFashion, []string{"sustainable fashion", "slow fashion", "nachhaltige mode"}},
	{domain.InterestDigitalTools, []string{"digital tools", "digitale tools", "clo3d", "clo 3d", "digitale werkzeuge"}},
}

// TimeRule maps phrases to a time commitment; first match wins.
type TimeRule struct {
	Commitment domain.TimeCommitment
	Phrases    []string
}

var TimeRules = []TimeRule{
	{domain.TimeIntensive, []string{"full time", "full-time", "intensive", "every day", "vollzeit", "intensiv", "jeden tag"}},
	{domain.TimeModerate, []string{"part time", "part-time", "few evenings", "couple of evenings", "teilzeit", "abends", "moderate"}},
	{domain.TimeMinimal, []string{"few hours", "little time", "not much time", "weekends", "wenig zeit", "nebenbei", "ein paar stunden"}},
}

// StyleRule maps phrases to a learning style; first match wins.
type StyleRule struct {
	Style   domain.LearningStyle
	Phrases []string
}

// MixedStylePhrases are checked before StyleRules, together with the
// co-occurrence of a creative and a technical cue.
var MixedStylePhrases = []string{
	" both ", "either", "open to", " mix", "a bit of each",
	"beides", "beidem", "von beidem", " egal ", "offen für", "sowohl",
}

var (
	TechnicalCues = []string{"technical", "technisch"}
	CreativeCues  = []string{"creative", "kreativ"}
)

var StyleRules = []StyleRule{
	{domain.StylePreciseTechnical, []string{
		"technical", "precise", "systematic", "mathemat", "structured", "step by step",
		"technisch", "präzise", "genau", "systematisch", "strukturiert",
	}},
	{domain.StyleCreativeIntuitive, []string{
		"creative", "intuitive", "intuitiv", "experiment", "artistic", "freely",
		"kreativ", "künstlerisch", "frei arbeiten",
	}},
}

// IntentRule phrases tag an intent. Several intents may fire at once.
type IntentRule struct {
	Intent  domain.Intent
	Phrases []string
}

var IntentRules = []IntentRule{
	{domain.IntentSchedule, []string{
		"schedule", "book", "appointment", "consultation",
		" termin", "beratung", "buchen",
	}},
	{domain.IntentEmail, []string{
		"email", "e-mail", "send me", "information",
		"schick mir", "schicken sie mir", "zusenden", "infos",
	}},
	{domain.IntentCompare, []string{
		"compare", "comparison", "difference", " vs ", "versus",
		"vergleich", "unterschied",
	}},
	{domain.IntentPricing, []string{
		"price", " cost ", " costs ", " fee ", " fees ", "how much",
		"preis", "kosten", "kostet", "gebühr",
	}},
	{domain.IntentScheduleInfo, []string{
		"when", " starts ", "start date", "does it start", "course start", "available",
		"wann", " beginn ", "kursbeginn", "beginnt", "verfügbar",
	}},
}

// LanguageRequests are explicit requests that override the statistical guess.
// English requests are checked first.
var LanguageRequests = []struct {
	Language domain.Language
	Phrases  []string
}{
	{domain.LanguageEnglish, []string{"english", "englisch"}},
	{domain.LanguageGerman, []string{"deutsch", "german"}},
}

var (
	EnglishStopwords = []string{
		"the", "and", "i", "i'm", "you", "is", "are", "to", "a", "my", "with", "want",
		"would", "like", "have", "what", "how", "can", "for", "do", "me", "of", "it",
	}
	GermanStopwords = []string{
		"der", "die", "das", "und", "ich", "bin", "ist", "nicht", "mit", "möchte", "ein",
		"eine", "habe", "für", "wie", "mich", "mir", "du", "sie", "auf", "zu", "es", "auch",
	}
)
