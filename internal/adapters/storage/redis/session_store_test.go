package redis_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"

	redisstore "github.com/PabloGalante/atelier-agent/internal/adapters/storage/redis"
	"github.com/PabloGalante/atelier-agent/internal/domain"
)

func newStore(t *testing.T, ttl time.Duration) *redisstore.SessionStore {
	t.Helper()
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("set TEST_REDIS_ADDR to run redis integration tests")
	}
	store, err := redisstore.NewSessionStore(context.Background(), redisstore.Options{
		Addr:      addr,
		TTL:       ttl,
		KeyPrefix: "atelier-test:" + uuid.NewString() + ":",
	})
	if err != nil {
		t.Fatalf("NewSessionStore: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestNewSessionStoreRequiresAddr(t *testing.T) {
	if _, err := redisstore.NewSessionStore(context.Background(), redisstore.Options{}); err == nil {
		t.Fatal("expected error without address")
	}
}

func TestCreateGetPut(t *testing.T) {
	store := newStore(t, time.Minute)
	ctx := context.Background()

	state := domain.NewConversationState("s1", time.Now().UTC())
	if _, err := store.Get(ctx, "s1"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound before create, got %v", err)
	}
	if err := store.Put(ctx, state); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected Put on unknown id to fail, got %v", err)
	}

	if err := store.Create(ctx, state); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := store.Create(ctx, state); !errors.Is(err, redisstore.ErrSessionExists) {
		t.Fatalf("expected ErrSessionExists, got %v", err)
	}

	state.Phase = domain.PhaseRecommendation
	state.Profile.AddGoal(domain.GoalDigitalSkills)
	if err := store.Put(ctx, state); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err := store.Get(ctx, "s1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Phase != domain.PhaseRecommendation || !got.Profile.HasGoal(domain.GoalDigitalSkills) {
		t.Errorf("unexpected state %+v", got)
	}

	ttl, err := store.TTL(ctx, "s1")
	if err != nil {
		t.Fatalf("TTL: %v", err)
	}
	if ttl <= 0 || ttl > time.Minute {
		t.Errorf("unexpected ttl %s", ttl)
	}
}
