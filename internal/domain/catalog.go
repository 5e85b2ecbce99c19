package domain

import "errors"

var (
	ErrCourseNotFound  = errors.New("course not found")
	ErrJourneyNotFound = errors.New("journey not found")
	ErrPackageNotFound = errors.New("package not found")
)

type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

type Format string

const (
	FormatOnline   Format = "online"
	FormatInPerson Format = "in-person"
	FormatHybrid   Format = "hybrid"
)

type Category string

const (
	CategoryConstruction  Category = "construction"
	CategoryDraping       Category = "draping"
	CategoryDigital       Category = "digital"
	CategorySustainable   Category = "sustainable"
	CategorySewing        Category = "sewing"
	CategoryDesign        Category = "design"
	CategoryTextiles      Category = "textiles"
	CategoryPatternmaking Category = "patternmaking"
)

// Pricing of a single course.
type Pricing struct {
	Amount       float64 `yaml:"amount" json:"amount"`
	Currency     string  `yaml:"currency" json:"currency"`
	Installments bool    `yaml:"installments,omitempty" json:"installments,omitempty"`
}

// Course is an immutable catalog entry.
type Course struct {
	ID            string   `yaml:"id" json:"id"`
	Name          string   `yaml:"name" json:"name"`
	NameDE        string   `yaml:"nameDe" json:"name_de"`
	Description   string   `yaml:"description" json:"description"`
	Level         Level    `yaml:"level" json:"level"`
	Duration      string   `yaml:"duration" json:"duration"`
	Format        Format   `yaml:"format" json:"format"`
	Skills        []string `yaml:"skills" json:"skills"`
	Prerequisites []string `yaml:"prerequisites" json:"prerequisites"`
	Outcomes      []string `yaml:"outcomes" json:"outcomes"`
	Category      Category `yaml:"category" json:"category"`
	Pricing       Pricing  `yaml:"pricing" json:"pricing"`
	PerfectFor    []string `yaml:"perfectFor" json:"perfect_for"`
}

// DisplayName returns the course name in the given language.
func (c Course) DisplayName(lang Language) string {
	if lang == LanguageGerman && c.NameDE != "" {
		return c.NameDE
	}
	return c.Name
}

// JourneyPhase is one ordered stage of a learning journey.
type JourneyPhase struct {
	Phase       int      `yaml:"phase" json:"phase"`
	Name        string   `yaml:"name" json:"name"`
	Duration    string   `yaml:"duration" json:"duration"`
	CourseIDs   []string `yaml:"courses" json:"courses"`
	Description string   `yaml:"description" json:"description"`
}

// LearningJourney groups courses into a multi-phase curriculum.
type LearningJourney struct {
	ID             string         `yaml:"id" json:"id"`
	Name           string         `yaml:"name" json:"name"`
	Description    string         `yaml:"description" json:"description"`
	TargetAudience string         `yaml:"targetAudience" json:"target_audience"`
	Duration       string         `yaml:"duration" json:"duration"`
	Phases         []JourneyPhase `yaml:"phases" json:"phases"`
	Outcome        string         `yaml:"outcome" json:"outcome"`
	CourseIDs      []string       `yaml:"courses" json:"courses"`
}

// Contains reports whether the journey lists the course.
func (j LearningJourney) Contains(courseID string) bool {
	for _, id := range j.CourseIDs {
		if id == courseID {
			return true
		}
	}
	return false
}

type PackagePricing struct {
	Amount   float64 `yaml:"amount" json:"amount"`
	Currency string  `yaml:"currency" json:"currency"`
	Discount float64 `yaml:"discount" json:"discount"`
}

// CoursePackage bundles several courses at a discounted price.
type CoursePackage struct {
	ID             string         `yaml:"id" json:"id"`
	Name           string         `yaml:"name" json:"name"`
	CourseIDs      []string       `yaml:"courses" json:"courses"`
	Pricing        PackagePricing `yaml:"pricing" json:"pricing"`
	TargetAudience string         `yaml:"targetAudience" json:"target_audience"`
	Outcomes       []string       `yaml:"outcomes" json:"outcomes"`
}
