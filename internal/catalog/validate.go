package catalog

import (
	"errors"
	"fmt"
	"math"

	"github.com/PabloGalante/atelier-agent/internal/domain"
)

// Validate checks that every id referenced by a journey, journey phase or
// package exists and that course records are well formed. All problems are
// reported together.
func (c *Catalog) Validate() error {
	var errs []error

	seen := make(map[string]bool, len(c.courses))
	for _, course := range c.courses {
		if course.ID == "" {
			errs = append(errs, errors.New("course with empty id"))
			continue
		}
		if seen[course.ID] {
			errs = append(errs, fmt.Errorf("course %q: duplicate id", course.ID))
		}
		seen[course.ID] = true

		switch course.Level {
		case domain.LevelBeginner, domain.LevelIntermediate, domain.LevelAdvanced:
		default:
			errs = append(errs, fmt.Errorf("course %q: unknown level %q", course.ID, course.Level))
		}
		if course.Pricing.Amount <= 0 {
			errs = append(errs, fmt.Errorf("course %q: price must be positive", course.ID))
		}
	}

	for _, j := range c.journeys {
		for _, id := range j.CourseIDs {
			if _, ok := c.Course(id); !ok {
				errs = append(errs, fmt.Errorf("journey %q: %w: %q", j.ID, domain.ErrCourseNotFound, id))
			}
		}
		for _, ph := range j.Phases {
			for _, id := range ph.CourseIDs {
				if _, ok := c.Course(id); !ok {
					errs = append(errs, fmt.Errorf("journey %q phase %d: %w: %q", j.ID, ph.Phase, domain.ErrCourseNotFound, id))
				} else if !j.Contains(id) {
					errs = append(errs, fmt.Errorf("journey %q phase %d: course %q missing from journey course list", j.ID, ph.Phase, id))
				}
			}
		}
	}

	for _, p := range c.packages {
		for _, id := range p.CourseIDs {
			if _, ok := c.Course(id); !ok {
				errs = append(errs, fmt.Errorf("package %q: %w: %q", p.ID, domain.ErrCourseNotFound, id))
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("catalog: invalid: %w", errors.Join(errs...))
	}
	return nil
}

// ListPrice is the sum of the member course prices of a package.
func (c *Catalog) ListPrice(p domain.CoursePackage) float64 {
	var sum float64
	for _, course := range c.CoursesByIDs(p.CourseIDs) {
		sum += course.Pricing.Amount
	}
	return sum
}

// ExpectedDiscount derives 1 - amount/sum(member prices). ok is false when
// the package has no resolvable members.
func (c *Catalog) ExpectedDiscount(p domain.CoursePackage) (float64, bool) {
	sum := c.ListPrice(p)
	if sum <= 0 {
		return 0, false
	}
	return 1 - p.Pricing.Amount/sum, true
}

// DiscountConsistent reports whether the declared discount matches the
// derived one within tolerance.
func (c *Catalog) DiscountConsistent(p domain.CoursePackage, tolerance float64) bool {
	want, ok := c.ExpectedDiscount(p)
	if !ok {
		return false
	}
	return math.Abs(want-p.Pricing.Discount) <= tolerance
}
