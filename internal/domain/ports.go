package domain

import "context"

// ProseGenerator rewrites a templated reply into free prose, typically via an LLM.
type ProseGenerator interface {
	GenerateProse(ctx context.Context, pc ProseContext) (string, error)
}

// ProseContext gives the generator the signals the rule engine derived for this turn.
type ProseContext struct {
	SessionID       SessionID
	Phase           Phase
	Profile         UserProfile
	Intents         []Intent
	Recommendations []Recommendation
	Draft           string // templated reply, also the fallback
	UserMessage     string
	History         []Turn // for the MVP, last N turns
}

// SessionStore defines conversation state persistence.
// Get returns ErrSessionNotFound for unknown ids.
type SessionStore interface {
	Get(ctx context.Context, id SessionID) (*ConversationState, error)
	Create(ctx context.Context, state *ConversationState) error
	Put(ctx context.Context, state *ConversationState) error
}

// InputGuard is the sanitization and injection-detection boundary.
type InputGuard interface {
	ContainsInjection(text string) bool
	SanitizeInput(text string) string
	SanitizeOutput(text string) string
}
