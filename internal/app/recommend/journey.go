package recommend

import "github.com/PabloGalante/atelier-agent/internal/domain"

// Journey ids the selection rules route to.
const (
	BeginnerJourneyID    = "beginner-journey"
	AdvancedJourneyID    = "advanced-journey"
	SustainableJourneyID = "sustainable-journey"
	DigitalJourneyID     = "digital-journey"
)

// JourneyRule routes a profile to a journey when Match holds.
type JourneyRule struct {
	Name      string
	Match     func(p domain.UserProfile) bool
	JourneyID string
}

// JourneyRules are evaluated top to bottom and the first match wins.
// Experience rules come before goal rules, so an advanced user with a
// sustainability goal lands in the advanced journey.
var JourneyRules = []JourneyRule{
	{
		Name: "beginner-with-career-goal",
		Match: func(p domain.UserProfile) bool {
			newcomer := p.Experience == domain.ExperienceCompleteBeginner || p.Experience == domain.ExperienceSomeSewing
			return newcomer && (p.HasGoal(domain.GoalCareerChange) || p.HasGoal(domain.GoalStartBusiness))
		},
		JourneyID: BeginnerJourneyID,
	},
	{
		Name: "experienced",
		Match: func(p domain.UserProfile) bool {
			return p.Experience == domain.ExperienceIntermediate || p.Experience == domain.ExperienceAdvanced
		},
		JourneyID: AdvancedJourneyID,
	},
	{
		Name: "sustainability",
		Match: func(p domain.UserProfile) bool {
			return p.HasGoal(domain.GoalSustainability) || p.HasInterest(domain.InterestSustainableFashion)
		},
		JourneyID: SustainableJourneyID,
	},
	{
		Name: "digital",
		Match: func(p domain.UserProfile) bool {
			return p.HasGoal(domain.GoalDigitalSkills) || p.HasInterest(domain.InterestDigitalTools)
		},
		JourneyID: DigitalJourneyID,
	},
	{
		Name:      "default",
		Match:     func(domain.UserProfile) bool { return true },
		JourneyID: BeginnerJourneyID,
	},
}

// SelectJourneyID returns the journey id of the first matching rule.
func SelectJourneyID(p domain.UserProfile) string {
	for _, r := range JourneyRules {
		if r.Match(p) {
			return r.JourneyID
		}
	}
	return BeginnerJourneyID
}
