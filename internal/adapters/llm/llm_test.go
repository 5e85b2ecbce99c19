package llm_test

import (
	"context"
	"strings"
	"testing"

	"github.com/PabloGalante/atelier-agent/internal/adapters/llm"
	"github.com/PabloGalante/atelier-agent/internal/domain"
)

func TestBuildPromptCarriesSignals(t *testing.T) {
	pc := domain.ProseContext{
		Phase: domain.PhaseRecommendation,
		Profile: domain.UserProfile{
			Experience:     domain.ExperienceCompleteBeginner,
			Goals:          []domain.Goal{domain.GoalCareerChange},
			PreferredStyle: domain.StylePreciseTechnical,
			Language:       domain.LanguageEnglish,
		},
		Intents: []domain.Intent{domain.IntentPricing},
		Recommendations: []domain.Recommendation{
			{Course: domain.Course{Name: "Sewing Basics"}, MatchScore: 90},
		},
		UserMessage: "what does it cost?",
		Draft:       "Sewing Basics costs €390.",
	}

	p := llm.BuildPrompt(pc)

	if !strings.Contains(p.System, "Phase: recommendation") {
		t.Errorf("system prompt lacks phase instructions")
	}
	for _, want := range []string{
		"experience: complete-beginner",
		"goals: career-change",
		"learning style: precise-technical",
		"Detected intents: pricing",
		"- Sewing Basics (match 90)",
		"Reply language: English",
		"what does it cost?",
		"DRAFT reply:\nSewing Basics costs €390.",
	} {
		if !strings.Contains(p.User, want) {
			t.Errorf("user prompt missing %q:\n%s", want, p.User)
		}
	}
}

func TestBuildPromptEmptyProfileDefaultsToGerman(t *testing.T) {
	p := llm.BuildPrompt(domain.ProseContext{Draft: "Hallo!"})

	if !strings.Contains(p.User, "nothing known yet") || !strings.Contains(p.User, "Reply language: German") {
		t.Errorf("unexpected prompt:\n%s", p.User)
	}
	if !strings.Contains(p.System, "Phase: greeting") {
		t.Errorf("unknown phase should fall back to greeting instructions")
	}
}

func TestMockProse(t *testing.T) {
	ctx := context.Background()
	pc := domain.ProseContext{Draft: "draft"}

	got, err := llm.NewMockProse().GenerateProse(ctx, pc)
	if err != nil || got != "draft" {
		t.Errorf("got %q, %v", got, err)
	}

	got, _ = (&llm.MockProse{Prefix: "Hi!"}).GenerateProse(ctx, pc)
	if got != "Hi! draft" {
		t.Errorf("got %q", got)
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := llm.NewMockProse().GenerateProse(cancelled, pc); err == nil {
		t.Errorf("expected error on cancelled context")
	}
}
