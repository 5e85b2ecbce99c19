package catalog_test

import (
	"errors"
	"testing"

	"github.com/PabloGalante/atelier-agent/internal/catalog"
	"github.com/PabloGalante/atelier-agent/internal/domain"
)

func TestDefaultCatalogIsValid(t *testing.T) {
	c, err := catalog.Default()
	if err != nil {
		t.Fatalf("Default() failed: %v", err)
	}
	if len(c.Courses()) == 0 || len(c.Journeys()) == 0 || len(c.Packages()) == 0 {
		t.Fatalf("expected non-empty catalog")
	}
}

func TestEveryJourneyCourseResolves(t *testing.T) {
	c := catalog.MustDefault()

	for _, j := range c.Journeys() {
		for _, id := range j.CourseIDs {
			if _, ok := c.Course(id); !ok {
				t.Errorf("journey %s references unknown course %s", j.ID, id)
			}
		}
		for _, ph := range j.Phases {
			for _, id := range ph.CourseIDs {
				if !j.Contains(id) {
					t.Errorf("journey %s phase %d course %s not in flat list", j.ID, ph.Phase, id)
				}
			}
		}
	}
}

func TestJourneyIDsUsedByRecommendations(t *testing.T) {
	c := catalog.MustDefault()
	for _, id := range []string{"beginner-journey", "advanced-journey", "sustainable-journey", "digital-journey"} {
		if _, ok := c.Journey(id); !ok {
			t.Errorf("missing journey %s", id)
		}
	}
}

func TestPackageDiscountsAreConsistent(t *testing.T) {
	c := catalog.MustDefault()

	for _, p := range c.Packages() {
		want, ok := c.ExpectedDiscount(p)
		if !ok {
			t.Fatalf("package %s has no resolvable courses", p.ID)
		}
		if !c.DiscountConsistent(p, 0.005) {
			t.Errorf("package %s: declared discount %.4f, derived %.4f", p.ID, p.Pricing.Discount, want)
		}
	}
}

func TestLookupMissReturnsNotFound(t *testing.T) {
	c := catalog.MustDefault()

	if _, ok := c.Course("no-such-course"); ok {
		t.Errorf("expected course miss")
	}
	if _, ok := c.Journey("no-such-journey"); ok {
		t.Errorf("expected journey miss")
	}
	if _, ok := c.Package("no-such-package"); ok {
		t.Errorf("expected package miss")
	}
}

func TestFilters(t *testing.T) {
	c := catalog.MustDefault()

	for _, course := range c.CoursesByLevel(domain.LevelBeginner) {
		if course.Level != domain.LevelBeginner {
			t.Errorf("CoursesByLevel returned %s with level %s", course.ID, course.Level)
		}
	}
	if len(c.CoursesByCategory(domain.CategoryConstruction)) == 0 {
		t.Errorf("expected construction courses")
	}
	if got := c.CoursesByCategory("millinery"); len(got) != 0 {
		t.Errorf("expected no millinery courses, got %d", len(got))
	}

	got := c.CoursesByIDs([]string{"sewing-basics", "ghost", "draping-fundamentals"})
	if len(got) != 2 || got[0].ID != "sewing-basics" || got[1].ID != "draping-fundamentals" {
		t.Errorf("CoursesByIDs should keep order and drop unknown ids, got %+v", got)
	}

	if len(c.JourneysForCourse("sewing-basics")) < 2 {
		t.Errorf("sewing-basics should belong to at least two journeys")
	}
	if len(c.PackagesForCourse("clo3d-virtual-prototyping")) != 1 {
		t.Errorf("expected clo3d course in exactly one package")
	}
}

func TestParseRejectsDanglingReferences(t *testing.T) {
	raw := []byte(`
courses:
  - id: a
    name: A
    level: beginner
    duration: 4 weeks
    category: sewing
    pricing: {amount: 100, currency: EUR}
journeys:
  - id: j
    name: J
    courses: [a, missing]
    phases:
      - phase: 1
        name: P
        courses: [a]
packages:
  - id: p
    name: P
    courses: [ghost]
    pricing: {amount: 50, currency: EUR, discount: 0.5}
`)

	_, err := catalog.Parse(raw)
	if err == nil {
		t.Fatalf("expected validation error")
	}
	if !errors.Is(err, domain.ErrCourseNotFound) {
		t.Errorf("expected ErrCourseNotFound in chain, got %v", err)
	}
}

func TestParseRejectsBadYAML(t *testing.T) {
	if _, err := catalog.Parse([]byte("courses: [")); err == nil {
		t.Fatalf("expected parse error")
	}
}
