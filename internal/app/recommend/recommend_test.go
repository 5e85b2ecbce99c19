package recommend_test

import (
	"strings"
	"testing"

	"github.com/PabloGalante/atelier-agent/internal/app/recommend"
	"github.com/PabloGalante/atelier-agent/internal/catalog"
	"github.com/PabloGalante/atelier-agent/internal/domain"
)

var (
	allExperiences = []domain.Experience{
		domain.ExperienceUnset, domain.ExperienceCompleteBeginner, domain.ExperienceSomeSewing,
		domain.ExperienceIntermediate, domain.ExperienceAdvanced,
	}
	allGoals = []domain.Goal{
		domain.GoalHobby, domain.GoalCareerChange, domain.GoalStartBusiness,
		domain.GoalSustainability, domain.GoalDigitalSkills,
	}
	allTimes  = []domain.TimeCommitment{domain.TimeUnset, domain.TimeMinimal, domain.TimeModerate, domain.TimeIntensive}
	allStyles = []domain.LearningStyle{domain.StyleUnset, domain.StylePreciseTechnical, domain.StyleCreativeIntuitive, domain.StyleMixed}
)

// goalSubsets returns every subset of allGoals.
func goalSubsets() [][]domain.Goal {
	var out [][]domain.Goal
	for mask := 0; mask < 1<<len(allGoals); mask++ {
		var set []domain.Goal
		for i, g := range allGoals {
			if mask&(1<<i) != 0 {
				set = append(set, g)
			}
		}
		out = append(out, set)
	}
	return out
}

func newEngine(t *testing.T) *recommend.Engine {
	t.Helper()
	return recommend.NewEngine(catalog.MustDefault())
}

func TestNewcomerWithCareerGoalGetsBeginnerJourney(t *testing.T) {
	e := newEngine(t)

	for _, exp := range []domain.Experience{domain.ExperienceCompleteBeginner, domain.ExperienceSomeSewing} {
		for _, goals := range goalSubsets() {
			p := domain.UserProfile{Experience: exp, Goals: goals}
			if !p.HasGoal(domain.GoalCareerChange) && !p.HasGoal(domain.GoalStartBusiness) {
				continue
			}
			j, ok := e.RecommendJourney(p)
			if !ok || j.ID != recommend.BeginnerJourneyID {
				t.Errorf("%s %v: journey = %q, want beginner", exp, goals, j.ID)
			}
		}
	}
}

func TestExperiencedAlwaysGetAdvancedJourney(t *testing.T) {
	e := newEngine(t)

	for _, exp := range []domain.Experience{domain.ExperienceIntermediate, domain.ExperienceAdvanced} {
		for _, goals := range goalSubsets() {
			p := domain.UserProfile{
				Experience: exp,
				Goals:      goals,
				Interests:  []string{domain.InterestSustainableFashion, domain.InterestDigitalTools},
			}
			j, _ := e.RecommendJourney(p)
			if j.ID != recommend.AdvancedJourneyID {
				t.Errorf("%s %v: journey = %q, want advanced", exp, goals, j.ID)
			}
		}
	}
}

func TestGoalRulesAndFallback(t *testing.T) {
	cases := []struct {
		name string
		p    domain.UserProfile
		want string
	}{
		{"sustainability goal", domain.UserProfile{Goals: []domain.Goal{domain.GoalSustainability}}, recommend.SustainableJourneyID},
		{"sustainable interest", domain.UserProfile{Interests: []string{domain.InterestSustainableFashion}}, recommend.SustainableJourneyID},
		{"sustainability beats digital", domain.UserProfile{Goals: []domain.Goal{domain.GoalDigitalSkills, domain.GoalSustainability}}, recommend.SustainableJourneyID},
		{"beginner hobby sustainability", domain.UserProfile{Experience: domain.ExperienceCompleteBeginner, Goals: []domain.Goal{domain.GoalHobby, domain.GoalSustainability}}, recommend.SustainableJourneyID},
		{"digital goal", domain.UserProfile{Goals: []domain.Goal{domain.GoalDigitalSkills}}, recommend.DigitalJourneyID},
		{"digital interest", domain.UserProfile{Interests: []string{domain.InterestDigitalTools}}, recommend.DigitalJourneyID},
		{"empty profile", domain.UserProfile{}, recommend.BeginnerJourneyID},
		{"hobby only", domain.UserProfile{Experience: domain.ExperienceSomeSewing, Goals: []domain.Goal{domain.GoalHobby}}, recommend.BeginnerJourneyID},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := recommend.SelectJourneyID(tc.p); got != tc.want {
				t.Errorf("journey = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestRecommendationsAreCappedSortedAndInJourney(t *testing.T) {
	e := newEngine(t)

	for _, exp := range allExperiences {
		for _, goals := range goalSubsets() {
			for _, style := range allStyles {
				p := domain.UserProfile{Experience: exp, Goals: goals, PreferredStyle: style}
				journey, _ := e.RecommendJourney(p)
				recs := e.GenerateRecommendations(p)

				if len(recs) == 0 || len(recs) > recommend.MaxRecommendations {
					t.Fatalf("%+v: got %d recommendations", p, len(recs))
				}
				for i, r := range recs {
					if i > 0 && recs[i-1].MatchScore < r.MatchScore {
						t.Errorf("%+v: not sorted at %d", p, i)
					}
					if !journey.Contains(r.Course.ID) || r.JourneyID != journey.ID {
						t.Errorf("%+v: course %s outside journey %s", p, r.Course.ID, journey.ID)
					}
					if r.Reasoning == "" {
						t.Errorf("%+v: empty reasoning for %s", p, r.Course.ID)
					}
				}
			}
		}
	}
}

func TestScoreIsAlwaysClamped(t *testing.T) {
	c := catalog.MustDefault()

	for _, course := range c.Courses() {
		for _, exp := range allExperiences {
			for _, goals := range goalSubsets() {
				for _, tc := range allTimes {
					for _, style := range allStyles {
						p := domain.UserProfile{Experience: exp, Goals: goals, TimeCommitment: tc, PreferredStyle: style}
						b := recommend.ScoreCourse(p, course)
						if b.Score < 0 || b.Score > 100 {
							t.Fatalf("score %d out of range for %s / %+v", b.Score, course.ID, p)
						}
					}
				}
			}
		}
	}
}

func TestScoreComponents(t *testing.T) {
	sustainable := domain.Course{ID: "s", Level: domain.LevelBeginner, Category: domain.CategorySustainable, Duration: "6 weeks"}
	construction := domain.Course{ID: "c", Level: domain.LevelIntermediate, Category: domain.CategoryConstruction, Duration: "12 weeks"}
	advancedDraping := domain.Course{ID: "d", Level: domain.LevelAdvanced, Category: domain.CategoryDraping, Duration: "4 weeks"}

	cases := []struct {
		name   string
		p      domain.UserProfile
		course domain.Course
		want   int
	}{
		{"empty profile is base", domain.UserProfile{}, construction, 50},
		{"beginner x intermediate", domain.UserProfile{Experience: domain.ExperienceCompleteBeginner}, construction, 60},
		{"beginner x advanced", domain.UserProfile{Experience: domain.ExperienceCompleteBeginner}, advancedDraping, 50},
		{"some sewing x advanced", domain.UserProfile{Experience: domain.ExperienceSomeSewing}, advancedDraping, 55},
		{"intermediate x beginner", domain.UserProfile{Experience: domain.ExperienceIntermediate}, sustainable, 55},
		{"advanced x intermediate", domain.UserProfile{Experience: domain.ExperienceAdvanced}, construction, 65},
		{"minimal time 6 weeks half", domain.UserProfile{TimeCommitment: domain.TimeMinimal}, sustainable, 55},
		{"minimal time 12 weeks none", domain.UserProfile{TimeCommitment: domain.TimeMinimal}, construction, 50},
		{"moderate time 12 weeks half", domain.UserProfile{TimeCommitment: domain.TimeModerate}, construction, 55},
		{"intensive 4 weeks half", domain.UserProfile{TimeCommitment: domain.TimeIntensive}, advancedDraping, 55},
		{"intensive 12 weeks full", domain.UserProfile{TimeCommitment: domain.TimeIntensive}, construction, 60},
		{"technical x construction", domain.UserProfile{PreferredStyle: domain.StylePreciseTechnical}, construction, 65},
		{"technical x draping", domain.UserProfile{PreferredStyle: domain.StylePreciseTechnical}, advancedDraping, 55},
		{"creative x draping", domain.UserProfile{PreferredStyle: domain.StyleCreativeIntuitive}, advancedDraping, 65},
		{"creative x sustainable", domain.UserProfile{PreferredStyle: domain.StyleCreativeIntuitive}, sustainable, 60},
		{"mixed flat", domain.UserProfile{PreferredStyle: domain.StyleMixed}, construction, 60},
		{
			"stacked goal bonuses clamp",
			domain.UserProfile{
				Experience:     domain.ExperienceCompleteBeginner,
				Goals:          []domain.Goal{domain.GoalSustainability, domain.GoalCareerChange},
				TimeCommitment: domain.TimeIntensive,
				PreferredStyle: domain.StyleCreativeIntuitive,
			},
			sustainable,
			100,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := recommend.ScoreCourse(tc.p, tc.course).Score; got != tc.want {
				t.Errorf("score = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestReasoningNamesFiredComponents(t *testing.T) {
	e := newEngine(t)
	p := domain.UserProfile{
		Experience: domain.ExperienceCompleteBeginner,
		Goals:      []domain.Goal{domain.GoalCareerChange},
		Language:   domain.LanguageEnglish,
	}

	recs := e.GenerateRecommendations(p)
	var sewing *domain.Recommendation
	for i := range recs {
		if recs[i].Course.ID == "sewing-basics" {
			sewing = &recs[i]
		}
	}
	if sewing == nil {
		t.Fatalf("sewing-basics missing from %v", recs)
	}
	want := "Perfect for complete beginners, Excellent for career changers, Part of your foundation to professional journey."
	if sewing.Reasoning != want {
		t.Errorf("reasoning = %q, want %q", sewing.Reasoning, want)
	}

	advanced := domain.Course{ID: "x", Level: domain.LevelAdvanced, Category: domain.CategoryDesign}
	j, _ := e.RecommendJourney(p)
	b := recommend.ScoreCourse(p, advanced)
	if got := b.Reasoning(p, j, domain.LanguageEnglish); got != "A solid course to grow your fashion skills." {
		t.Errorf("expected generic reasoning, got %q", got)
	}
}

func TestParseWeeks(t *testing.T) {
	cases := []struct {
		in   string
		want int
		ok   bool
	}{
		{"6 weeks", 6, true},
		{" 12 Wochen", 12, true},
		{"4-6 weeks", 4, true},
		{"three months", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, ok := recommend.ParseWeeks(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Errorf("ParseWeeks(%q) = (%d, %v), want (%d, %v)", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestCompareCourses(t *testing.T) {
	e := newEngine(t)
	c := catalog.MustDefault()
	a, _ := c.Course("pattern-construction-basics")
	b, _ := c.Course("draping-fundamentals")

	got := e.CompareCourses(a.ID, b.ID)
	for _, want := range []string{
		a.Name, b.Name,
		recommend.FormatPrice(a.Pricing.Amount, a.Pricing.Currency),
		recommend.FormatPrice(b.Pricing.Amount, b.Pricing.Currency),
		"mathematical, precise methods", "creative, intuitive techniques",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("comparison missing %q:\n%s", want, got)
		}
	}

	if got := e.CompareCourses(a.ID, a.ID); got == recommend.UnableToCompareEN {
		t.Errorf("same valid id twice should still compare")
	}
}

func TestCompareUnknownCourseReturnsSentinel(t *testing.T) {
	e := newEngine(t)

	for _, pair := range [][2]string{{"ghost", "draping-fundamentals"}, {"draping-fundamentals", "ghost"}, {"", ""}} {
		if got := e.CompareCourses(pair[0], pair[1]); got != recommend.UnableToCompareEN {
			t.Errorf("CompareCourses(%q, %q) = %q", pair[0], pair[1], got)
		}
		if got := e.CompareCoursesIn(domain.LanguageGerman, pair[0], pair[1]); got != recommend.UnableToCompareDE {
			t.Errorf("CompareCoursesIn(de, %q, %q) = %q", pair[0], pair[1], got)
		}
	}
}

// danglingCatalog serves a journey that references a course it does not have.
type danglingCatalog struct {
	course  domain.Course
	journey domain.LearningJourney
}

func (d danglingCatalog) Course(id string) (domain.Course, bool) {
	if id == d.course.ID {
		return d.course, true
	}
	return domain.Course{}, false
}

func (d danglingCatalog) Journey(id string) (domain.LearningJourney, bool) {
	if id == d.journey.ID {
		return d.journey, true
	}
	return domain.LearningJourney{}, false
}

func (d danglingCatalog) Packages() []domain.CoursePackage { return nil }

func TestUnresolvableJourneyCoursesAreDropped(t *testing.T) {
	cat := danglingCatalog{
		course:  domain.Course{ID: "real", Level: domain.LevelBeginner, Duration: "4 weeks"},
		journey: domain.LearningJourney{ID: recommend.BeginnerJourneyID, Name: "Foundation", CourseIDs: []string{"ghost", "real"}},
	}
	e := recommend.NewEngine(cat)

	recs := e.GenerateRecommendations(domain.UserProfile{})
	if len(recs) != 1 || recs[0].Course.ID != "real" {
		t.Fatalf("expected only the resolvable course, got %+v", recs)
	}

	if recs := e.GenerateRecommendations(domain.UserProfile{Experience: domain.ExperienceAdvanced}); recs != nil {
		t.Errorf("missing journey should yield no recommendations, got %+v", recs)
	}
}

func TestBestPackage(t *testing.T) {
	e := newEngine(t)
	p := domain.UserProfile{Goals: []domain.Goal{domain.GoalDigitalSkills}}

	pkg, ok := e.BestPackage(e.GenerateRecommendations(p))
	if !ok || pkg.ID != "digital-package" {
		t.Errorf("best package = %q (%v), want digital-package", pkg.ID, ok)
	}

	if _, ok := e.BestPackage(nil); ok {
		t.Errorf("no recommendations should yield no package")
	}
}

func TestFormatPrice(t *testing.T) {
	cases := map[string]string{
		recommend.FormatPrice(690, "EUR"):    "€690",
		recommend.FormatPrice(1419.5, "EUR"): "€1419.50",
		recommend.FormatPrice(99, "usd"):     "$99",
		recommend.FormatPrice(120, "CHF"):    "120 CHF",
	}
	for got, want := range cases {
		if got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	}
}
