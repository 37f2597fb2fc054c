// Package generation turns activities into press-opportunity summaries and
// social media drafts using a generative text model.
package generation

import (
	"context"
	"errors"
	"strings"

	"google.golang.org/genai"
)

// DefaultModel is used when no model name is configured.
const DefaultModel = "gemini-2.5-flash"

// Model produces text for a prompt.
type Model interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// GeminiModel calls the Gemini API through the genai client.
type GeminiModel struct {
	client *genai.Client
	name   string
}

// NewGeminiModel creates a client for the Gemini API backend. An empty
// apiKey is rejected; callers run without a model instead.
func NewGeminiModel(ctx context.Context, apiKey, name string) (*GeminiModel, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini API key is not set")
	}
	if strings.TrimSpace(name) == "" {
		name = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	return &GeminiModel{client: client, name: name}, nil
}

// Name returns the model identifier sent with each request.
func (m *GeminiModel) Name() string {
	return m.name
}

func (m *GeminiModel) GenerateContent(ctx context.Context, prompt string) (string, error) {
	result, err := m.client.Models.GenerateContent(ctx, m.name, genai.Text(prompt), nil)
	if err != nil {
		return "", err
	}
	return result.Text(), nil
}
