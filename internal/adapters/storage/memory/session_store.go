package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/PabloGalante/atelier-agent/internal/domain"
)

var ErrSessionExists = errors.New("session already exists")

// SessionStore keeps conversation states in a map. States are cloned on the
// way in and out, so callers never share slices with the store.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[domain.SessionID]*domain.ConversationState
}

var _ domain.SessionStore = (*SessionStore)(nil)

func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[domain.SessionID]*domain.ConversationState),
	}
}

func (s *SessionStore) Create(_ context.Context, state *domain.ConversationState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.sessions[state.SessionID]; exists {
		return ErrSessionExists
	}

	s.sessions[state.SessionID] = state.Clone()
	return nil
}

func (s *SessionStore) Put(_ context.Context, state *domain.ConversationState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.sessions[state.SessionID]; !exists {
		return domain.ErrSessionNotFound
	}

	s.sessions[state.SessionID] = state.Clone()
	return nil
}

func (s *SessionStore) Get(_ context.Context, id domain.SessionID) (*domain.ConversationState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state, ok := s.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}

	return state.Clone(), nil
}

// Len reports how many sessions are stored.
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
