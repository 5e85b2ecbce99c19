package domain

import "errors"

var ErrSessionNotFound = errors.New("session not found")

// UserProfile is the partial picture of a visitor built up from chat text.
type UserProfile struct {
	Experience       Experience     `json:"experience,omitempty"`
	Goals            []Goal         `json:"goals"`
	Interests        []string       `json:"interests,omitempty"`
	TimeCommitment   TimeCommitment `json:"time_commitment,omitempty"`
	PreferredStyle   LearningStyle  `json:"preferred_style,omitempty"`
	Budget           string         `json:"budget,omitempty"`
	Timeline         string         `json:"timeline,omitempty"`
	Email            string         `json:"email,omitempty"`
	Language         Language       `json:"preferred_language,omitempty"`
	LanguageExplicit bool           `json:"language_explicit,omitempty"`
}

// HasGoal reports whether g was collected.
func (p UserProfile) HasGoal(g Goal) bool {
	for _, have := range p.Goals {
		if have == g {
			return true
		}
	}
	return false
}

// AddGoal appends g unless present. Goals never shrink.
func (p *UserProfile) AddGoal(g Goal) {
	if !p.HasGoal(g) {
		p.Goals = append(p.Goals, g)
	}
}

func (p UserProfile) HasInterest(interest string) bool {
	for _, have := range p.Interests {
		if have == interest {
			return true
		}
	}
	return false
}

func (p *UserProfile) AddInterest(interest string) {
	if !p.HasInterest(interest) {
		p.Interests = append(p.Interests, interest)
	}
}

// ReplyLanguage is the language templated replies are rendered in.
// German is the default until English is detected or requested.
func (p UserProfile) ReplyLanguage() Language {
	if p.Language == LanguageEnglish {
		return LanguageEnglish
	}
	return LanguageGerman
}

// Turn is one entry of the conversation history.
type Turn struct {
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp Timestamp `json:"timestamp"`
}

// Recommendation is a scored course within the selected journey.
type Recommendation struct {
	Course     Course `json:"course"`
	MatchScore int    `json:"match_score"`
	Reasoning  string `json:"reasoning"`
	JourneyID  string `json:"journey_id"`
}

// ConversationState is owned by exactly one session.
type ConversationState struct {
	SessionID       SessionID        `json:"session_id"`
	Phase           Phase            `json:"phase"`
	Profile         UserProfile      `json:"user_profile"`
	AssessmentStep  int              `json:"assessment_step"`
	Recommendations []Recommendation `json:"recommendations"`
	History         []Turn           `json:"conversation_history"`
	Intents         []Intent         `json:"intents"`
	CreatedAt       Timestamp        `json:"created_at"`
	UpdatedAt       Timestamp        `json:"updated_at"`
}

// NewConversationState returns an empty state in the greeting phase.
func NewConversationState(id SessionID, now Timestamp) *ConversationState {
	return &ConversationState{
		SessionID: id,
		Phase:     PhaseGreeting,
		Profile:   UserProfile{Goals: []Goal{}},
		History:   []Turn{},
		Intents:   []Intent{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// UserTurns counts user entries in the history.
func (s *ConversationState) UserTurns() int {
	n := 0
	for _, t := range s.History {
		if t.Role == RoleUser {
			n++
		}
	}
	return n
}

// Clone returns a deep copy, so stores never share slices with callers.
func (s *ConversationState) Clone() *ConversationState {
	if s == nil {
		return nil
	}
	out := *s
	out.Profile.Goals = append([]Goal{}, s.Profile.Goals...)
	out.Profile.Interests = append([]string(nil), s.Profile.Interests...)
	out.Recommendations = append([]Recommendation(nil), s.Recommendations...)
	out.History = append([]Turn{}, s.History...)
	out.Intents = append([]Intent{}, s.Intents...)
	return &out
}
