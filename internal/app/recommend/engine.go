// Package recommend selects a learning journey for a profile and ranks the
// journey's courses with a deterministic additive score.
package recommend

import (
	"sort"
	"strings"

	"github.com/PabloGalante/atelier-agent/internal/domain"
)

// MaxRecommendations caps the ranked list.
const MaxRecommendations = 5

// Catalog is the read side of the course catalog the engine needs.
type Catalog interface {
	Course(id string) (domain.Course, bool)
	Journey(id string) (domain.LearningJourney, bool)
	Packages() []domain.CoursePackage
}

type Engine struct {
	catalog Catalog
}

func NewEngine(c Catalog) *Engine {
	return &Engine{catalog: c}
}

// RecommendJourney applies JourneyRules. ok is false only if the selected
// journey is missing from the catalog.
func (e *Engine) RecommendJourney(p domain.UserProfile) (domain.LearningJourney, bool) {
	return e.catalog.Journey(SelectJourneyID(p))
}

// GenerateRecommendations scores every course of the selected journey and
// returns at most MaxRecommendations, best first. Courses the catalog cannot
// resolve are skipped.
func (e *Engine) GenerateRecommendations(p domain.UserProfile) []domain.Recommendation {
	journey, ok := e.RecommendJourney(p)
	if !ok {
		return nil
	}

	lang := p.ReplyLanguage()
	recs := make([]domain.Recommendation, 0, len(journey.CourseIDs))
	for _, id := range journey.CourseIDs {
		course, ok := e.catalog.Course(id)
		if !ok {
			continue
		}
		b := ScoreCourse(p, course)
		recs = append(recs, domain.Recommendation{
			Course:     course,
			MatchScore: b.Score,
			Reasoning:  b.Reasoning(p, journey, lang),
			JourneyID:  journey.ID,
		})
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].MatchScore > recs[j].MatchScore
	})
	if len(recs) > MaxRecommendations {
		recs = recs[:MaxRecommendations]
	}
	return recs
}

// BestPackage returns the package sharing the most courses with recs.
// Ties go to the package listed first.
func (e *Engine) BestPackage(recs []domain.Recommendation) (domain.CoursePackage, bool) {
	inRecs := make(map[string]bool, len(recs))
	for _, r := range recs {
		inRecs[r.Course.ID] = true
	}

	var (
		best    domain.CoursePackage
		bestHit int
	)
	for _, pkg := range e.catalog.Packages() {
		hits := 0
		for _, id := range pkg.CourseIDs {
			if inRecs[id] {
				hits++
			}
		}
		if hits > bestHit {
			best, bestHit = pkg, hits
		}
	}
	return best, bestHit > 0
}

var reasonText = map[domain.Language]map[reason]string{
	domain.LanguageEnglish: {
		reasonSustainability: "Aligns with your sustainability goals",
		reasonDigital:        "Builds the digital skills you are after",
		reasonCareerChange:   "Excellent for career changers",
		reasonTime:           "Fits the time you have available",
	},
	domain.LanguageGerman: {
		reasonSustainability: "Passt zu deinen Nachhaltigkeitszielen",
		reasonDigital:        "Baut die digitalen Fähigkeiten auf, die du suchst",
		reasonCareerChange:   "Ideal für den Quereinstieg",
		reasonTime:           "Passt zu deiner verfügbaren Zeit",
	},
}

var experienceText = map[domain.Language]map[domain.Experience]string{
	domain.LanguageEnglish: {
		domain.ExperienceCompleteBeginner: "Perfect for complete beginners",
		domain.ExperienceSomeSewing:       "A good match for your sewing experience",
		domain.ExperienceIntermediate:     "Matches your intermediate skills",
		domain.ExperienceAdvanced:         "Built for advanced makers",
	},
	domain.LanguageGerman: {
		domain.ExperienceCompleteBeginner: "Perfekt für absolute Anfänger",
		domain.ExperienceSomeSewing:       "Passt gut zu deiner Näherfahrung",
		domain.ExperienceIntermediate:     "Passt zu deinem mittleren Niveau",
		domain.ExperienceAdvanced:         "Gemacht für Fortgeschrittene",
	},
}

var styleText = map[domain.Language]map[domain.LearningStyle]string{
	domain.LanguageEnglish: {
		domain.StylePreciseTechnical:  "Suits your precise, technical way of learning",
		domain.StyleCreativeIntuitive: "Suits your creative, intuitive way of learning",
	},
	domain.LanguageGerman: {
		domain.StylePreciseTechnical:  "Passt zu deiner präzisen, technischen Lernweise",
		domain.StyleCreativeIntuitive: "Passt zu deiner kreativen, intuitiven Lernweise",
	},
}

var genericReason = map[domain.Language]string{
	domain.LanguageEnglish: "A solid course to grow your fashion skills.",
	domain.LanguageGerman:  "Ein solider Kurs, um deine Modekenntnisse auszubauen.",
}

// Reasoning joins the fired components into one sentence, ending with the
// journey the course belongs to. Without any component it falls back to a
// generic sentence.
func (b Breakdown) Reasoning(p domain.UserProfile, j domain.LearningJourney, lang domain.Language) string {
	if len(b.reasons) == 0 {
		return genericReason[lang]
	}

	parts := make([]string, 0, len(b.reasons)+1)
	for _, r := range b.reasons {
		switch r {
		case reasonExperience:
			parts = append(parts, experienceText[lang][p.Experience])
		case reasonStyle:
			parts = append(parts, styleText[lang][p.PreferredStyle])
		default:
			parts = append(parts, reasonText[lang][r])
		}
	}
	if lang == domain.LanguageEnglish {
		parts = append(parts, "Part of your "+strings.ToLower(j.Name)+" journey")
	} else {
		parts = append(parts, "Teil deiner Lernreise „"+j.Name+"“")
	}
	return strings.Join(parts, ", ") + "."
}
