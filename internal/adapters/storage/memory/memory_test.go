package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/PabloGalante/atelier-agent/internal/adapters/storage/memory"
	"github.com/PabloGalante/atelier-agent/internal/domain"
)

func TestSessionStoreRoundTripIsolatesCallers(t *testing.T) {
	ctx := context.Background()
	store := memory.NewSessionStore()

	state := domain.NewConversationState("s1", time.Now())
	if err := store.Create(ctx, state); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := store.Create(ctx, state); !errors.Is(err, memory.ErrSessionExists) {
		t.Fatalf("expected ErrSessionExists, got %v", err)
	}

	state.Profile.AddGoal(domain.GoalHobby)
	got, err := store.Get(ctx, "s1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(got.Profile.Goals) != 0 {
		t.Fatalf("store shares slices with caller: %v", got.Profile.Goals)
	}

	got.Phase = domain.PhaseAssessment
	if err := store.Put(ctx, got); err != nil {
		t.Fatalf("Put: %v", err)
	}
	again, _ := store.Get(ctx, "s1")
	if again.Phase != domain.PhaseAssessment {
		t.Errorf("phase = %q after Put", again.Phase)
	}
}

func TestSessionStoreMissing(t *testing.T) {
	ctx := context.Background()
	store := memory.NewSessionStore()

	if _, err := store.Get(ctx, "nope"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Errorf("Get: expected ErrSessionNotFound, got %v", err)
	}
	if err := store.Put(ctx, domain.NewConversationState("nope", time.Now())); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Errorf("Put: expected ErrSessionNotFound, got %v", err)
	}
}

func TestLeadStoreListsNewestWindow(t *testing.T) {
	ctx := context.Background()
	store := memory.NewLeadStore()

	for _, email := range []string{"a@x.de", "b@x.de", "c@x.de"} {
		if err := store.AppendLead(ctx, &domain.Lead{Kind: domain.LeadEmailCapture, Email: email}); err != nil {
			t.Fatalf("AppendLead: %v", err)
		}
	}

	all, _ := store.ListLeads(ctx, 0)
	if len(all) != 3 || all[0].ID == "" {
		t.Fatalf("expected 3 leads with ids, got %+v", all)
	}

	last, _ := store.ListLeads(ctx, 2)
	if len(last) != 2 || last[0].Email != "b@x.de" || last[1].Email != "c@x.de" {
		t.Errorf("unexpected window: %+v", last)
	}
}
