package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/PabloGalante/atelier-agent/internal/domain"
	"google.golang.org/genai"
)

var ErrEmptyResponse = errors.New("vertex returned empty text")

// VertexConfig selects the Vertex AI project and Gemini model.
type VertexConfig struct {
	Project   string
	Location  string
	ModelName string
}

type VertexClient struct {
	client    *genai.Client
	modelName string
}

var _ domain.ProseGenerator = (*VertexClient)(nil)

// NewVertexClient creates a ProseGenerator based on Vertex AI (Gemini).
func NewVertexClient(ctx context.Context, cfg VertexConfig) (*VertexClient, error) {
	if cfg.Project == "" || cfg.Location == "" {
		return nil, fmt.Errorf("vertex: project and location must be set")
	}

	modelName := cfg.ModelName
	if modelName == "" {
		modelName = "gemini-2.5-flash"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Project:  cfg.Project,
		Location: cfg.Location,
		Backend:  genai.BackendVertexAI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating Vertex AI client: %w", err)
	}

	return &VertexClient{
		client:    client,
		modelName: modelName,
	}, nil
}

// GenerateProse implements domain.ProseGenerator using Vertex AI.
func (v *VertexClient) GenerateProse(ctx context.Context, pc domain.ProseContext) (string, error) {
	prompt := BuildPrompt(pc)

	// history as conversation, then the turn with the draft
	contents := historyContents(pc.History)
	contents = append(contents, genai.NewContentFromText(prompt.User, genai.RoleUser))

	temp := float32(0.4)
	topP := float32(0.9)

	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(prompt.System, genai.RoleUser),
		Temperature:       &temp,
		TopP:              &topP,
		MaxOutputTokens:   int32(1024),
	}

	res, err := v.client.Models.GenerateContent(ctx, v.modelName, contents, cfg)
	if err != nil {
		return "", fmt.Errorf("vertex generate content: %w", err)
	}

	text := res.Text()
	if text == "" {
		return "", ErrEmptyResponse
	}

	return text, nil
}

func historyContents(history []domain.Turn) []*genai.Content {
	contents := make([]*genai.Content, 0, len(history)+1)
	for _, t := range history {
		role := genai.Role(genai.RoleUser)
		if t.Role == domain.RoleAgent {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(t.Content, role))
	}
	return contents
}
