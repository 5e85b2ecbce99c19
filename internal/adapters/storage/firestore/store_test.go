package firestore_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"

	fsstore "github.com/PabloGalante/atelier-agent/internal/adapters/storage/firestore"
	"github.com/PabloGalante/atelier-agent/internal/domain"
)

func newStore(t *testing.T) *fsstore.Store {
	t.Helper()
	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		t.Skip("set FIRESTORE_EMULATOR_HOST to run firestore integration tests")
	}
	store, err := fsstore.NewStore(context.Background(), "atelier-test")
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestNewStoreRequiresProject(t *testing.T) {
	if _, err := fsstore.NewStore(context.Background(), ""); err == nil {
		t.Fatal("expected error without project id")
	}
}

func TestSessionRoundTrip(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	id := domain.SessionID(uuid.NewString())
	state := domain.NewConversationState(id, time.Now().UTC())
	state.Profile.AddGoal(domain.GoalSustainability)

	if err := store.Create(ctx, state); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := store.Create(ctx, state); !errors.Is(err, fsstore.ErrSessionExists) {
		t.Fatalf("expected ErrSessionExists, got %v", err)
	}

	state.Phase = domain.PhaseAssessment
	if err := store.Put(ctx, state); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err := store.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Phase != domain.PhaseAssessment || !got.Profile.HasGoal(domain.GoalSustainability) {
		t.Errorf("unexpected state %+v", got)
	}

	if _, err := store.Get(ctx, "missing-"+id); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestLeadsAppendAndList(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	lead := &domain.Lead{Kind: domain.LeadConsultation, Email: "a@b.de", CreatedAt: time.Now().UTC()}
	if err := store.AppendLead(ctx, lead); err != nil {
		t.Fatalf("AppendLead: %v", err)
	}
	if lead.ID == "" {
		t.Fatal("expected generated lead id")
	}

	leads, err := store.ListLeads(ctx, 1)
	if err != nil {
		t.Fatalf("ListLeads: %v", err)
	}
	if len(leads) != 1 || leads[0].ID != lead.ID {
		t.Errorf("unexpected leads %+v", leads)
	}
}
