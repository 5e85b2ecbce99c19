package conversation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/PabloGalante/atelier-agent/internal/app/extract"
	"github.com/PabloGalante/atelier-agent/internal/app/guard"
	"github.com/PabloGalante/atelier-agent/internal/app/recommend"
	"github.com/PabloGalante/atelier-agent/internal/domain"
	"github.com/PabloGalante/atelier-agent/internal/observability"
)

// Reason codes reported with a refused turn.
const (
	ReasonInjection     = "injection_detected"
	ReasonInputTooLong  = "input_too_long"
	ReasonInternalError = "internal_error"
)

// DefaultProseTimeout bounds a prose generation call.
const DefaultProseTimeout = 8 * time.Second

// proseHistory is how many history entries the prose generator sees.
const proseHistory = 10

// Settings tune the service. Zero values fall back to defaults.
type Settings struct {
	MaxInputChars      int
	FollowupAfterTurns int
	ProseTimeout       time.Duration
	// Guard overrides the default pattern guard.
	Guard domain.InputGuard
}

type Service struct {
	sessionStore domain.SessionStore
	leadStore    domain.LeadStore
	prose        domain.ProseGenerator
	guard        domain.InputGuard
	machine      *Machine

	maxInputChars int
	proseTimeout  time.Duration

	now   func() time.Time
	newID func() string

	locks sessionLocks
}

// NewService wires the turn pipeline. leadStore and prose may be nil: leads are
// then not persisted and replies stay templated.
func NewService(
	engine *recommend.Engine,
	sessionStore domain.SessionStore,
	leadStore domain.LeadStore,
	prose domain.ProseGenerator,
	settings Settings,
) *Service {
	if settings.MaxInputChars <= 0 {
		settings.MaxInputChars = guard.DefaultMaxInputChars
	}
	if settings.ProseTimeout <= 0 {
		settings.ProseTimeout = DefaultProseTimeout
	}
	g := settings.Guard
	if g == nil {
		g = guard.New(settings.MaxInputChars)
	}

	return &Service{
		sessionStore:  sessionStore,
		leadStore:     leadStore,
		prose:         prose,
		guard:         g,
		machine:       NewMachine(engine, settings.FollowupAfterTurns),
		maxInputChars: settings.MaxInputChars,
		proseTimeout:  settings.ProseTimeout,
		now:           time.Now,
		newID:         uuid.NewString,
	}
}

// WithClock replaces the time source. Used by tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

type StartSessionInput struct {
	Language domain.Language
}

type StartSessionOutput struct {
	State   *domain.ConversationState
	Welcome string
}

// StartSession creates an empty session in the greeting phase.
func (s *Service) StartSession(ctx context.Context, in StartSessionInput) (*StartSessionOutput, error) {
	state := domain.NewConversationState(domain.SessionID(s.newID()), s.now())
	if in.Language != domain.LanguageUnset {
		state.Profile.Language = in.Language
		state.Profile.LanguageExplicit = true
	}

	log := observability.LoggerFromContext(ctx).With("session_id", state.SessionID)

	if err := s.sessionStore.Create(ctx, state); err != nil {
		log.Error("failed to create session", "error", err)
		return nil, fmt.Errorf("create session: %w", err)
	}
	log.Info("session started", "language", state.Profile.ReplyLanguage())

	return &StartSessionOutput{
		State:   state,
		Welcome: Welcome(state.Profile.ReplyLanguage()),
	}, nil
}

// TurnResult is what the caller gets back for one user message.
type TurnResult struct {
	SessionID       domain.SessionID
	Response        string
	Blocked         bool
	ReasonCode      string
	Phase           domain.Phase
	Intents         []domain.Intent
	Profile         domain.UserProfile
	Recommendations []domain.Recommendation
}

// ProcessTurn runs one user message through the conversation. Unknown session
// ids are created on first sight. Refusals and internal failures still produce
// a reply and are recorded in the history.
func (s *Service) ProcessTurn(ctx context.Context, sessionID domain.SessionID, text string) (*TurnResult, error) {
	ctx, span := observability.Tracer().Start(ctx, "conversation.process_turn")
	defer span.End()

	if sessionID == "" {
		sessionID = domain.SessionID(s.newID())
	}

	unlock := s.locks.lock(sessionID)
	defer unlock()

	start := s.now()
	log := observability.LoggerFromContext(ctx).With("session_id", sessionID)

	state, created, err := s.load(ctx, sessionID)
	if err != nil {
		log.Error("failed to load session", "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "load session")
		return nil, err
	}
	phaseBefore := state.Phase

	t := s.respond(ctx, state, text)
	t.reply = s.guard.SanitizeOutput(t.reply)

	now := s.now()
	state.History = append(state.History,
		domain.Turn{Role: domain.RoleUser, Content: s.guard.SanitizeInput(text), Timestamp: now},
		domain.Turn{Role: domain.RoleAgent, Content: t.reply, Timestamp: now},
	)
	state.UpdatedAt = now

	if created {
		err = s.sessionStore.Create(ctx, state)
	} else {
		err = s.sessionStore.Put(ctx, state)
	}
	if err != nil {
		log.Error("failed to save session", "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "save session")
		return nil, fmt.Errorf("save session: %w", err)
	}

	span.SetAttributes(
		attribute.String("conversation.phase", string(state.Phase)),
		attribute.Bool("conversation.blocked", t.blocked),
		attribute.String("conversation.reason_code", t.reasonCode),
	)
	log.Info("turn processed",
		"phase_before", phaseBefore,
		"phase_after", state.Phase,
		"intents", t.intents,
		"blocked", t.blocked,
		"reason_code", t.reasonCode,
		"elapsed_ms", s.now().Sub(start).Milliseconds(),
	)

	return &TurnResult{
		SessionID:       state.SessionID,
		Response:        t.reply,
		Blocked:         t.blocked,
		ReasonCode:      t.reasonCode,
		Phase:           state.Phase,
		Intents:         t.intents,
		Profile:         state.Profile,
		Recommendations: state.Recommendations,
	}, nil
}

// GetSession returns the stored state or domain.ErrSessionNotFound.
func (s *Service) GetSession(ctx context.Context, id domain.SessionID) (*domain.ConversationState, error) {
	state, err := s.sessionStore.Get(ctx, id)
	if err != nil {
		if !errors.Is(err, domain.ErrSessionNotFound) {
			observability.LoggerFromContext(ctx).Error("failed to get session", "session_id", id, "error", err)
		}
		return nil, err
	}
	return state, nil
}

func (s *Service) load(ctx context.Context, id domain.SessionID) (*domain.ConversationState, bool, error) {
	state, err := s.sessionStore.Get(ctx, id)
	switch {
	case err == nil:
		return state, false, nil
	case errors.Is(err, domain.ErrSessionNotFound):
		return domain.NewConversationState(id, s.now()), true, nil
	default:
		return nil, false, fmt.Errorf("get session: %w", err)
	}
}

type turn struct {
	reply      string
	blocked    bool
	reasonCode string
	intents    []domain.Intent
}

// respond produces the reply and mutates state, except for the history.
func (s *Service) respond(ctx context.Context, state *domain.ConversationState, raw string) (t turn) {
	r := repliesFor(state.Profile.ReplyLanguage())

	if s.guard.ContainsInjection(raw) {
		observability.LoggerFromContext(ctx).Warn("injection attempt blocked", "session_id", state.SessionID)
		return turn{reply: r.Refusal, blocked: true, reasonCode: ReasonInjection}
	}
	if utf8.RuneCountInString(strings.TrimSpace(raw)) > s.maxInputChars {
		return turn{reply: fmt.Sprintf(r.TooLong, s.maxInputChars), reasonCode: ReasonInputTooLong}
	}

	defer func() {
		if rec := recover(); rec != nil {
			observability.LoggerFromContext(ctx).Error("turn panicked", "session_id", state.SessionID, "panic", rec)
			t = turn{reply: repliesFor(state.Profile.ReplyLanguage()).Apology, reasonCode: ReasonInternalError, intents: t.intents}
		}
	}()

	text := s.guard.SanitizeInput(raw)
	state.Profile = extract.ExtractProfile(text, state.Profile)
	t.intents = extract.DetectIntents(text)
	state.Intents = append(state.Intents, t.intents...)

	out := s.machine.Step(state, text, t.intents)
	lang := state.Profile.ReplyLanguage()

	if out.Lead != nil {
		if err := s.saveLead(ctx, out.Lead); err != nil {
			observability.LoggerFromContext(ctx).Error("failed to save lead", "session_id", state.SessionID, "error", err)
			t.reply = repliesFor(lang).Apology
			t.reasonCode = ReasonInternalError
			return t
		}
	}

	t.reply = s.polish(ctx, state, text, t.intents, out.Reply)
	return t
}

func (s *Service) saveLead(ctx context.Context, lead *domain.Lead) error {
	if s.leadStore == nil {
		return nil
	}
	lead.ID = domain.LeadID(s.newID())
	lead.CreatedAt = s.now()
	return s.leadStore.AppendLead(ctx, lead)
}

// polish asks the prose generator to rewrite the templated draft. Any error,
// timeout or empty answer keeps the draft.
func (s *Service) polish(ctx context.Context, state *domain.ConversationState, text string, intents []domain.Intent, draft string) string {
	if s.prose == nil {
		return draft
	}

	ctx, span := observability.Tracer().Start(ctx, "conversation.generate_prose")
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, s.proseTimeout)
	defer cancel()

	history := state.History
	if len(history) > proseHistory {
		history = history[len(history)-proseHistory:]
	}

	out, err := s.prose.GenerateProse(ctx, domain.ProseContext{
		SessionID:       state.SessionID,
		Phase:           state.Phase,
		Profile:         state.Profile,
		Intents:         intents,
		Recommendations: state.Recommendations,
		Draft:           draft,
		UserMessage:     text,
		History:         append([]domain.Turn(nil), history...),
	})
	if err != nil {
		span.RecordError(err)
		observability.LoggerFromContext(ctx).Warn("prose generation failed, using template", "session_id", state.SessionID, "error", err)
		return draft
	}
	if strings.TrimSpace(out) == "" {
		return draft
	}
	return out
}

// sessionLocks serializes turns of the same session.
type sessionLocks struct {
	mu    sync.Mutex
	locks map[domain.SessionID]*sessionLock
}

type sessionLock struct {
	mu   sync.Mutex
	refs int
}

func (l *sessionLocks) lock(id domain.SessionID) func() {
	l.mu.Lock()
	if l.locks == nil {
		l.locks = make(map[domain.SessionID]*sessionLock)
	}
	sl, ok := l.locks[id]
	if !ok {
		sl = &sessionLock{}
		l.locks[id] = sl
	}
	sl.refs++
	l.mu.Unlock()

	sl.mu.Lock()
	return func() {
		sl.mu.Unlock()
		l.mu.Lock()
		sl.refs--
		if sl.refs == 0 {
			delete(l.locks, id)
		}
		l.mu.Unlock()
	}
}
