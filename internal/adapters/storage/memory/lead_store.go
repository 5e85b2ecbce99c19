package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/PabloGalante/atelier-agent/internal/domain"
)

// LeadStore is a simple in-memory implementation of domain.LeadStore.
// It is NOT persistent and is only suitable for development / local mode.
type LeadStore struct {
	mu    sync.RWMutex
	leads []*domain.Lead
}

var _ domain.LeadStore = (*LeadStore)(nil)

func NewLeadStore() *LeadStore {
	return &LeadStore{}
}

// AppendLead saves a copy of the lead, assigning an id if it has none.
func (s *LeadStore) AppendLead(_ context.Context, lead *domain.Lead) error {
	if lead == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if lead.ID == "" {
		lead.ID = domain.LeadID(uuid.NewString())
	}

	cp := *lead
	cp.CourseIDs = append([]string(nil), lead.CourseIDs...)
	s.leads = append(s.leads, &cp)
	return nil
}

// ListLeads returns the last `limit` leads, oldest first.
// If limit <= 0, returns all.
func (s *LeadStore) ListLeads(_ context.Context, limit int) ([]*domain.Lead, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 || limit > len(s.leads) {
		limit = len(s.leads)
	}

	selected := s.leads[len(s.leads)-limit:]
	out := make([]*domain.Lead, 0, len(selected))
	for _, l := range selected {
		cp := *l
		cp.CourseIDs = append([]string(nil), l.CourseIDs...)
		out = append(out, &cp)
	}
	return out, nil
}
