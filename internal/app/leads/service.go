package leads

import (
	"context"

	"github.com/PabloGalante/atelier-agent/internal/domain"
	"github.com/PabloGalante/atelier-agent/internal/observability"
)

// DefaultLimit is used when a caller asks for a non-positive number of leads.
const DefaultLimit = 50

// Service holds the logic of reading captured leads
type Service struct {
	store domain.LeadStore
}

// NewService creates a lead service from a LeadStore
func NewService(store domain.LeadStore) *Service {
	return &Service{
		store: store,
	}
}

// ListLeads returns the last `limit` leads, oldest first.
// If limit <= 0, DefaultLimit is used.
func (s *Service) ListLeads(ctx context.Context, limit int) ([]*domain.Lead, error) {
	if s.store == nil {
		return []*domain.Lead{}, nil
	}

	if limit <= 0 {
		limit = DefaultLimit
	}

	out, err := s.store.ListLeads(ctx, limit)
	if err != nil {
		observability.LoggerFromContext(ctx).Error("failed to list leads", "limit", limit, "error", err)
		return nil, err
	}
	if out == nil {
		out = []*domain.Lead{}
	}
	return out, nil
}
