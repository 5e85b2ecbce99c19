package recommend

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/PabloGalante/atelier-agent/internal/domain"
)

const (
	baseScore = 50
	maxScore  = 100
	minScore  = 0

	sustainabilityBonus = 20
	digitalBonus        = 20
	careerChangeBonus   = 15

	timeFullCredit = 10
	timeHalfCredit = 5

	styleStrongMatch = 15
	styleNearMatch   = 10
	styleMixed       = 10
	styleDefault     = 5

	// experience points at or above this count as a stated reason
	experienceReasonThreshold = 20
)

// ExperienceLevelPoints is the experience x course level match table.
// An unset experience scores 0 for every level.
var ExperienceLevelPoints = map[domain.Experience]map[domain.Level]int{
	domain.ExperienceCompleteBeginner: {domain.LevelBeginner: 25, domain.LevelIntermediate: 10, domain.LevelAdvanced: 0},
	domain.ExperienceSomeSewing:       {domain.LevelBeginner: 20, domain.LevelIntermediate: 20, domain.LevelAdvanced: 5},
	domain.ExperienceIntermediate:     {domain.LevelBeginner: 5, domain.LevelIntermediate: 25, domain.LevelAdvanced: 15},
	domain.ExperienceAdvanced:         {domain.LevelBeginner: 0, domain.LevelIntermediate: 15, domain.LevelAdvanced: 25},
}

type reason int

const (
	reasonExperience reason = iota
	reasonSustainability
	reasonDigital
	reasonCareerChange
	reasonTime
	reasonStyle
)

// Breakdown records which scoring components contributed to a course score.
type Breakdown struct {
	Experience int
	Goals      int
	Time       int
	Style      int
	Score      int

	reasons []reason
}

// ScoreCourse scores a course for a profile: base 50 plus experience, goal,
// time and style components, clamped to [0,100].
func ScoreCourse(p domain.UserProfile, c domain.Course) Breakdown {
	var b Breakdown

	b.Experience = ExperienceLevelPoints[p.Experience][c.Level]
	if b.Experience >= experienceReasonThreshold {
		b.reasons = append(b.reasons, reasonExperience)
	}

	// goal bonuses are independent and may all apply
	if p.HasGoal(domain.GoalSustainability) && c.Category == domain.CategorySustainable {
		b.Goals += sustainabilityBonus
		b.reasons = append(b.reasons, reasonSustainability)
	}
	if p.HasGoal(domain.GoalDigitalSkills) && c.Category == domain.CategoryDigital {
		b.Goals += digitalBonus
		b.reasons = append(b.reasons, reasonDigital)
	}
	if p.HasGoal(domain.GoalCareerChange) && c.Level == domain.LevelBeginner {
		b.Goals += careerChangeBonus
		b.reasons = append(b.reasons, reasonCareerChange)
	}

	b.Time = timePoints(p.TimeCommitment, c.Duration)
	if b.Time == timeFullCredit {
		b.reasons = append(b.reasons, reasonTime)
	}

	b.Style = stylePoints(p.PreferredStyle, c.Category)
	if b.Style == styleStrongMatch {
		b.reasons = append(b.reasons, reasonStyle)
	}

	b.Score = clamp(baseScore+b.Experience+b.Goals+b.Time+b.Style, minScore, maxScore)
	return b
}

func timePoints(tc domain.TimeCommitment, duration string) int {
	weeks, ok := ParseWeeks(duration)
	if !ok {
		return 0
	}
	switch tc {
	case domain.TimeMinimal:
		switch {
		case weeks <= 4:
			return timeFullCredit
		case weeks <= 6:
			return timeHalfCredit
		default:
			return 0
		}
	case domain.TimeModerate:
		if weeks >= 4 && weeks <= 8 {
			return timeFullCredit
		}
		return timeHalfCredit
	case domain.TimeIntensive:
		if weeks >= 6 {
			return timeFullCredit
		}
		return timeHalfCredit
	default:
		return 0
	}
}

func stylePoints(style domain.LearningStyle, cat domain.Category) int {
	switch style {
	case domain.StylePreciseTechnical:
		switch cat {
		case domain.CategoryConstruction:
			return styleStrongMatch
		case domain.CategoryDigital:
			return styleNearMatch
		default:
			return styleDefault
		}
	case domain.StyleCreativeIntuitive:
		switch cat {
		case domain.CategoryDraping:
			return styleStrongMatch
		case domain.CategorySustainable:
			return styleNearMatch
		default:
			return styleDefault
		}
	case domain.StyleMixed:
		return styleMixed
	default:
		return 0
	}
}

// ParseWeeks reads the leading integer of a free-text duration such as
// "6 weeks" or "12 Wochen".
func ParseWeeks(duration string) (int, bool) {
	s := strings.TrimSpace(duration)
	end := 0
	for end < len(s) && unicode.IsDigit(rune(s[end])) {
		end++
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
