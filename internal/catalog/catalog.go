// Package catalog holds the static course, journey and package records the
// advisor recommends from. A Catalog is immutable after construction.
package catalog

import (
	"github.com/PabloGalante/atelier-agent/internal/domain"
)

// Catalog provides lookup and filter accessors over the static records.
// Unknown ids return ok=false, never an error.
type Catalog struct {
	courses  []domain.Course
	journeys []domain.LearningJourney
	packages []domain.CoursePackage

	courseIdx  map[string]int
	journeyIdx map[string]int
	packageIdx map[string]int
}

// New builds a Catalog. Later duplicates of an id shadow earlier ones in lookups.
func New(courses []domain.Course, journeys []domain.LearningJourney, packages []domain.CoursePackage) *Catalog {
	c := &Catalog{
		courses:    append([]domain.Course(nil), courses...),
		journeys:   append([]domain.LearningJourney(nil), journeys...),
		packages:   append([]domain.CoursePackage(nil), packages...),
		courseIdx:  make(map[string]int, len(courses)),
		journeyIdx: make(map[string]int, len(journeys)),
		packageIdx: make(map[string]int, len(packages)),
	}
	for i, course := range c.courses {
		c.courseIdx[course.ID] = i
	}
	for i, j := range c.journeys {
		c.journeyIdx[j.ID] = i
	}
	for i, p := range c.packages {
		c.packageIdx[p.ID] = i
	}
	return c
}

// ─────────────────────────────────────────
// Courses
// ─────────────────────────────────────────

func (c *Catalog) Course(id string) (domain.Course, bool) {
	i, ok := c.courseIdx[id]
	if !ok {
		return domain.Course{}, false
	}
	return c.courses[i], true
}

func (c *Catalog) Courses() []domain.Course {
	return append([]domain.Course(nil), c.courses...)
}

func (c *Catalog) CoursesByLevel(level domain.Level) []domain.Course {
	return c.filterCourses(func(course domain.Course) bool { return course.Level == level })
}

func (c *Catalog) CoursesByCategory(category domain.Category) []domain.Course {
	return c.filterCourses(func(course domain.Course) bool { return course.Category == category })
}

// CoursesByIDs resolves ids in order and silently drops unknown ones.
func (c *Catalog) CoursesByIDs(ids []string) []domain.Course {
	out := make([]domain.Course, 0, len(ids))
	for _, id := range ids {
		if course, ok := c.Course(id); ok {
			out = append(out, course)
		}
	}
	return out
}

func (c *Catalog) filterCourses(keep func(domain.Course) bool) []domain.Course {
	var out []domain.Course
	for _, course := range c.courses {
		if keep(course) {
			out = append(out, course)
		}
	}
	return out
}

// ─────────────────────────────────────────
// Journeys
// ─────────────────────────────────────────

func (c *Catalog) Journey(id string) (domain.LearningJourney, bool) {
	i, ok := c.journeyIdx[id]
	if !ok {
		return domain.LearningJourney{}, false
	}
	return c.journeys[i], true
}

func (c *Catalog) Journeys() []domain.LearningJourney {
	return append([]domain.LearningJourney(nil), c.journeys...)
}

// JourneysForCourse lists the journeys that include the course.
func (c *Catalog) JourneysForCourse(courseID string) []domain.LearningJourney {
	var out []domain.LearningJourney
	for _, j := range c.journeys {
		if j.Contains(courseID) {
			out = append(out, j)
		}
	}
	return out
}

// ─────────────────────────────────────────
// Packages
// ─────────────────────────────────────────

func (c *Catalog) Package(id string) (domain.CoursePackage, bool) {
	i, ok := c.packageIdx[id]
	if !ok {
		return domain.CoursePackage{}, false
	}
	return c.packages[i], true
}

func (c *Catalog) Packages() []domain.CoursePackage {
	return append([]domain.CoursePackage(nil), c.packages...)
}

func (c *Catalog) PackagesForCourse(courseID string) []domain.CoursePackage {
	var out []domain.CoursePackage
	for _, p := range c.packages {
		for _, id := range p.CourseIDs {
			if id == courseID {
				out = append(out, p)
				break
			}
		}
	}
	return out
}
