package httpadapter

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/PabloGalante/atelier-agent/internal/domain"
)

type courseResponse struct {
	Course     domain.Course `json:"course"`
	JourneyIDs []string      `json:"journeys"`
	PackageIDs []string      `json:"packages"`
}

type journeyResponse struct {
	Journey domain.LearningJourney `json:"journey"`
	Courses []domain.Course        `json:"courses"`
}

type packageResponse struct {
	domain.CoursePackage
	ListPrice float64 `json:"list_price"`
}

// GET /catalog/courses?level=&category=
func (s *Server) handleListCourses(c *gin.Context) {
	level := domain.Level(strings.ToLower(c.Query("level")))
	category := domain.Category(strings.ToLower(c.Query("category")))

	out := make([]domain.Course, 0)
	for _, course := range s.catalog.Courses() {
		if level != "" && course.Level != level {
			continue
		}
		if category != "" && course.Category != category {
			continue
		}
		out = append(out, course)
	}
	c.JSON(http.StatusOK, gin.H{"courses": out})
}

func (s *Server) handleGetCourse(c *gin.Context) {
	id := c.Param("id")
	course, ok := s.catalog.Course(id)
	if !ok {
		respondError(c, http.StatusNotFound, "course_not_found", domain.ErrCourseNotFound)
		return
	}

	resp := courseResponse{Course: course, JourneyIDs: []string{}, PackageIDs: []string{}}
	for _, j := range s.catalog.JourneysForCourse(id) {
		resp.JourneyIDs = append(resp.JourneyIDs, j.ID)
	}
	for _, p := range s.catalog.PackagesForCourse(id) {
		resp.PackageIDs = append(resp.PackageIDs, p.ID)
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleListJourneys(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"journeys": nonNil(s.catalog.Journeys())})
}

func (s *Server) handleGetJourney(c *gin.Context) {
	journey, ok := s.catalog.Journey(c.Param("id"))
	if !ok {
		respondError(c, http.StatusNotFound, "journey_not_found", domain.ErrJourneyNotFound)
		return
	}
	c.JSON(http.StatusOK, journeyResponse{
		Journey: journey,
		Courses: nonNil(s.catalog.CoursesByIDs(journey.CourseIDs)),
	})
}

func (s *Server) handleListPackages(c *gin.Context) {
	pkgs := s.catalog.Packages()
	out := make([]packageResponse, 0, len(pkgs))
	for _, p := range pkgs {
		out = append(out, packageResponse{CoursePackage: p, ListPrice: s.catalog.ListPrice(p)})
	}
	c.JSON(http.StatusOK, gin.H{"packages": out})
}

// GET /catalog/compare?a=&b=&lang=
// Unknown ids yield the fixed "unable to compare" text, not an error.
func (s *Server) handleCompare(c *gin.Context) {
	a, b := strings.TrimSpace(c.Query("a")), strings.TrimSpace(c.Query("b"))
	if a == "" || b == "" {
		badRequest(c, "missing_course", "query parameters a and b are required")
		return
	}

	lang := domain.LanguageEnglish
	if l, ok := parseLanguage(c.Query("lang")); ok && l != domain.LanguageUnset {
		lang = l
	}

	c.JSON(http.StatusOK, gin.H{
		"a":          a,
		"b":          b,
		"comparison": s.engine.CompareCoursesIn(lang, a, b),
	})
}
