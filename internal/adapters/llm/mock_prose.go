package llm

import (
	"context"
	"strings"

	"github.com/PabloGalante/atelier-agent/internal/domain"
)

// MockProse stands in for the model in local mode. It returns the draft,
// optionally behind a fixed greeting, without any network call.
type MockProse struct {
	Prefix string
}

var _ domain.ProseGenerator = (*MockProse)(nil)

func NewMockProse() *MockProse {
	return &MockProse{}
}

func (m *MockProse) GenerateProse(ctx context.Context, pc domain.ProseContext) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if m.Prefix == "" {
		return pc.Draft, nil
	}
	return strings.TrimSpace(m.Prefix + " " + pc.Draft), nil
}
