package gormdb_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/PabloGalante/atelier-agent/internal/adapters/storage/gormdb"
	"github.com/PabloGalante/atelier-agent/internal/domain"
)

func openSQLite(t *testing.T) *gormdb.LeadStore {
	t.Helper()
	store, err := gormdb.Open(gormdb.DialectSQLite, filepath.Join(t.TempDir(), "leads.db"))
	if err != nil {
		// go-sqlite3 needs cgo
		t.Skipf("sqlite unavailable: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestOpenValidation(t *testing.T) {
	if _, err := gormdb.Open(gormdb.DialectSQLite, ""); err == nil {
		t.Error("expected error for empty dsn")
	}
	if _, err := gormdb.Open("oracle", "x"); err == nil {
		t.Error("expected error for unknown dialect")
	}
}

func exerciseStore(t *testing.T, store *gormdb.LeadStore) {
	t.Helper()
	ctx := context.Background()
	base := time.Now().UTC().Truncate(time.Second)

	for i, email := range []string{"a@x.de", "b@x.de", "c@x.de"} {
		lead := &domain.Lead{
			SessionID: "s1",
			Kind:      domain.LeadEmailCapture,
			Email:     email,
			JourneyID: "beginner-journey",
			CourseIDs: []string{"sewing-basics", "pattern-construction-basics"},
			Language:  domain.LanguageGerman,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		if err := store.AppendLead(ctx, lead); err != nil {
			t.Fatalf("AppendLead: %v", err)
		}
		if lead.ID == "" {
			t.Fatal("expected an id to be assigned")
		}
	}

	got, err := store.ListLeads(ctx, 2)
	if err != nil {
		t.Fatalf("ListLeads: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 leads, got %d", len(got))
	}
	if got[0].Email != "b@x.de" || got[1].Email != "c@x.de" {
		t.Errorf("expected newest two oldest first, got %s, %s", got[0].Email, got[1].Email)
	}
	if len(got[0].CourseIDs) != 2 || got[0].CourseIDs[1] != "pattern-construction-basics" {
		t.Errorf("course ids not restored: %v", got[0].CourseIDs)
	}
}

func TestSQLiteLeadStore(t *testing.T) {
	exerciseStore(t, openSQLite(t))
}

func TestPostgresLeadStore(t *testing.T) {
	dsn := os.Getenv("TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("set TEST_POSTGRES_DSN to run postgres integration tests")
	}
	store, err := gormdb.Open(gormdb.DialectPostgres, dsn)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	exerciseStore(t, store)
}
