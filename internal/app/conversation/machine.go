package conversation

import (
	"sort"
	"strings"

	"github.com/PabloGalante/atelier-agent/internal/app/extract"
	"github.com/PabloGalante/atelier-agent/internal/app/recommend"
	"github.com/PabloGalante/atelier-agent/internal/domain"
)

// DefaultFollowupAfterTurns is the user turn count after which a
// recommendation-phase turn moves on to followup.
const DefaultFollowupAfterTurns = 8

// Default pair compared when the user names no course.
const (
	defaultCompareA = "pattern-construction-basics"
	defaultCompareB = "draping-fundamentals"
)

// CourseMention maps a phrase in user text to the course it refers to.
type CourseMention struct {
	Phrase   string
	CourseID string
}

// CourseMentions are matched against normalized text in slice order. A matched
// phrase is blanked out, so the specific entries must come before the
// generic ones ("digital pattern" before "pattern").
var CourseMentions = []CourseMention{
	{"zero waste", "zero-waste-pattern-cutting"},
	{"zero-waste", "zero-waste-pattern-cutting"},
	{"grading", "advanced-pattern-grading"},
	{"gradier", "advanced-pattern-grading"},
	{"couture", "couture-draping"},
	{"digital pattern", "digital-pattern-making"},
	{"digitale schnitt", "digital-pattern-making"},
	{"clo3d", "clo3d-virtual-prototyping"},
	{"clo 3d", "clo3d-virtual-prototyping"},
	{" 3d ", "clo3d-virtual-prototyping"},
	{"illustration", "digital-fashion-illustration"},
	{"upcycling", "upcycling-atelier"},
	{"textile", "textile-science"},
	{"textil", "textile-science"},
	{"portfolio", "portfolio-collection"},
	{"kollektion", "portfolio-collection"},
	{"collection", "portfolio-collection"},
	{"sustainable", "sustainable-design"},
	{"nachhaltig", "sustainable-design"},
	{"garment construction", "garment-construction-professional"},
	{"professional", "garment-construction-professional"},
	{"construction", "pattern-construction-basics"},
	{"konstruktion", "pattern-construction-basics"},
	{"pattern", "pattern-construction-basics"},
	{"schnitt", "pattern-construction-basics"},
	{"draping", "draping-fundamentals"},
	{"drapier", "draping-fundamentals"},
	{"sewing", "sewing-basics"},
	{"nähen", "sewing-basics"},
	{"nähkurs", "sewing-basics"},
	{"design", "fashion-design-foundations"},
	{"entwurf", "fashion-design-foundations"},
	{"digital", "digital-fashion-illustration"},
}

// MentionedCourses returns the course ids named in input, in the order they
// appear in the text, without duplicates.
func MentionedCourses(input string) []string {
	text := extract.Normalize(input)

	type hit struct {
		pos int
		id  string
	}
	var hits []hit
	for _, m := range CourseMentions {
		for {
			i := strings.Index(text, m.Phrase)
			if i < 0 {
				break
			}
			hits = append(hits, hit{pos: i, id: m.CourseID})
			text = text[:i] + strings.Repeat(" ", len(m.Phrase)) + text[i+len(m.Phrase):]
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].pos < hits[j].pos })

	seen := make(map[string]bool, len(hits))
	out := make([]string, 0, len(hits))
	for _, h := range hits {
		if !seen[h.id] {
			seen[h.id] = true
			out = append(out, h.id)
		}
	}
	return out
}

// Outcome is what one machine step produced.
type Outcome struct {
	Reply string
	// Lead is set when the step captured something the school follows up on.
	Lead *domain.Lead
}

// Machine is the phase state machine. It mutates the state it is given and
// holds no per-session data itself.
type Machine struct {
	engine        *recommend.Engine
	followupAfter int
}

func NewMachine(engine *recommend.Engine, followupAfter int) *Machine {
	if followupAfter <= 0 {
		followupAfter = DefaultFollowupAfterTurns
	}
	return &Machine{engine: engine, followupAfter: followupAfter}
}

// Step handles one already sanitized, non-blocked user turn. The profile must
// already include what was extracted from input. Compare, schedule and email
// intents override the phase in that order of priority.
func (m *Machine) Step(state *domain.ConversationState, input string, intents []domain.Intent) Outcome {
	switch {
	case extract.HasIntent(intents, domain.IntentCompare):
		return m.compare(state, input)
	case extract.HasIntent(intents, domain.IntentSchedule):
		return m.schedule(state)
	case extract.HasIntent(intents, domain.IntentEmail):
		return m.email(state)
	}

	lang := state.Profile.ReplyLanguage()
	r := repliesFor(lang)

	switch state.Phase {
	case domain.PhaseGreeting:
		state.Phase = domain.PhaseAssessment
		state.AssessmentStep = 1
		if state.UserTurns() == 0 {
			return Outcome{Reply: r.Welcome + " " + r.AskExperience}
		}
		return Outcome{Reply: r.ReAsk}

	case domain.PhaseAssessment:
		switch state.AssessmentStep {
		case 1:
			state.AssessmentStep = 2
			return Outcome{Reply: r.AskGoals}
		case 2:
			state.AssessmentStep = 3
			return Outcome{Reply: r.AskStyle}
		default:
			return Outcome{Reply: m.recommend(state)}
		}

	case domain.PhaseRecommendation:
		if reply, ok := m.answerQuestion(state, intents); ok {
			return Outcome{Reply: reply}
		}
		if state.UserTurns()+1 >= m.followupAfter {
			state.Phase = domain.PhaseFollowup
			return Outcome{Reply: r.Followup}
		}
		return Outcome{Reply: r.Menu}

	case domain.PhaseScheduling:
		return Outcome{Reply: slotsText(lang, "")}

	case domain.PhaseFollowup:
		if reply, ok := m.answerQuestion(state, intents); ok {
			return Outcome{Reply: reply}
		}
		return Outcome{Reply: r.Followup}

	default:
		state.Phase = domain.PhaseGreeting
		return Outcome{Reply: r.ReAsk}
	}
}

// recommend runs the engine and moves the conversation to recommendation.
func (m *Machine) recommend(state *domain.ConversationState) string {
	lang := state.Profile.ReplyLanguage()
	journey, _ := m.engine.RecommendJourney(state.Profile)
	state.Recommendations = m.engine.GenerateRecommendations(state.Profile)
	state.Phase = domain.PhaseRecommendation
	return recommendationText(lang, journey, state.Recommendations)
}

// answerQuestion covers pricing and start-date questions once recommendations exist.
func (m *Machine) answerQuestion(state *domain.ConversationState, intents []domain.Intent) (string, bool) {
	if len(state.Recommendations) == 0 {
		return "", false
	}
	lang := state.Profile.ReplyLanguage()
	switch {
	case extract.HasIntent(intents, domain.IntentPricing):
		pkg, ok := m.engine.BestPackage(state.Recommendations)
		return pricingText(lang, state.Recommendations, pkg, ok), true
	case extract.HasIntent(intents, domain.IntentScheduleInfo):
		return scheduleInfoText(lang, state.Recommendations), true
	}
	return "", false
}

func (m *Machine) compare(state *domain.ConversationState, input string) Outcome {
	a, b := m.comparePair(state, MentionedCourses(input))
	return Outcome{Reply: m.engine.CompareCoursesIn(state.Profile.ReplyLanguage(), a, b)}
}

// comparePair picks two courses to compare: the ones named, topped up from the
// current recommendations and finally from the default pair.
func (m *Machine) comparePair(state *domain.ConversationState, named []string) (string, string) {
	pair := append([]string(nil), named...)
	candidates := make([]string, 0, len(state.Recommendations)+2)
	for _, r := range state.Recommendations {
		candidates = append(candidates, r.Course.ID)
	}
	candidates = append(candidates, defaultCompareA, defaultCompareB)

	for _, id := range candidates {
		if len(pair) >= 2 {
			break
		}
		if len(pair) == 1 && pair[0] == id {
			continue
		}
		pair = append(pair, id)
	}
	return pair[0], pair[1]
}

func (m *Machine) schedule(state *domain.ConversationState) Outcome {
	state.Phase = domain.PhaseScheduling
	out := Outcome{Reply: slotsText(state.Profile.ReplyLanguage(), state.Profile.Email)}
	if state.Profile.Email != "" {
		out.Lead = m.lead(state, domain.LeadConsultation)
	}
	return out
}

func (m *Machine) email(state *domain.ConversationState) Outcome {
	lang := state.Profile.ReplyLanguage()
	if state.Profile.Email == "" {
		return Outcome{Reply: repliesFor(lang).AskEmail}
	}

	journeyName := ""
	if len(state.Recommendations) > 0 {
		if j, ok := m.engine.RecommendJourney(state.Profile); ok {
			journeyName = j.Name
		}
	}
	return Outcome{
		Reply: emailConfirmedText(lang, state.Profile.Email, journeyName),
		Lead:  m.lead(state, domain.LeadEmailCapture),
	}
}

func (m *Machine) lead(state *domain.ConversationState, kind domain.LeadKind) *domain.Lead {
	l := &domain.Lead{
		SessionID: state.SessionID,
		Kind:      kind,
		Email:     state.Profile.Email,
		Language:  state.Profile.ReplyLanguage(),
	}
	for _, r := range state.Recommendations {
		l.JourneyID = r.JourneyID
		l.CourseIDs = append(l.CourseIDs, r.Course.ID)
	}
	return l
}
