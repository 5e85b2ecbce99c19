package domain

import "time"

type SessionID string
type LeadID string

type Role string

const (
	RoleUser  Role = "user"
	RoleAgent Role = "agent"
)

// Phase is the stage of the advisory funnel a conversation is in.
type Phase string

const (
	PhaseGreeting       Phase = "greeting"
	PhaseAssessment     Phase = "assessment"
	PhaseRecommendation Phase = "recommendation"
	PhaseScheduling     Phase = "scheduling"
	PhaseFollowup       Phase = "followup"
)

type Experience string

const (
	ExperienceUnset            Experience = ""
	ExperienceCompleteBeginner Experience = "complete-beginner"
	ExperienceSomeSewing       Experience = "some-sewing"
	ExperienceIntermediate     Experience = "intermediate"
	ExperienceAdvanced         Experience = "advanced"
)

type Goal string

const (
	GoalHobby          Goal = "hobby"
	GoalCareerChange   Goal = "career-change"
	GoalStartBusiness  Goal = "start-business"
	GoalSustainability Goal = "sustainability"
	GoalDigitalSkills  Goal = "digital-skills"
)

type TimeCommitment string

const (
	TimeUnset     TimeCommitment = ""
	TimeMinimal   TimeCommitment = "minimal"
	TimeModerate  TimeCommitment = "moderate"
	TimeIntensive TimeCommitment = "intensive"
)

type LearningStyle string

const (
	StyleUnset             LearningStyle = ""
	StylePreciseTechnical  LearningStyle = "precise-technical"
	StyleCreativeIntuitive LearningStyle = "creative-intuitive"
	StyleMixed             LearningStyle = "mixed"
)

type Language string

const (
	LanguageUnset   Language = ""
	LanguageGerman  Language = "de"
	LanguageEnglish Language = "en"
)

// Intent is a request type detected independently of the conversation phase.
type Intent string

const (
	IntentSchedule     Intent = "schedule"
	IntentEmail        Intent = "email"
	IntentCompare      Intent = "compare"
	IntentPricing      Intent = "pricing"
	IntentScheduleInfo Intent = "schedule_info"
)

// Interest tags read by journey selection.
const (
	InterestSustainableFashion = "sustainable fashion"
	InterestDigitalTools       = "digital tools"
)

type Timestamp = time.Time
