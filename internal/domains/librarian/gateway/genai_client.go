package gateway

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// CompletionClient sends a prompt to a language model and returns its text
type CompletionClient interface {
	Complete(ctx context.Context, model, prompt string) (string, error)
}

// GenAIClient talks to the Gemini API
type GenAIClient struct {
	client *genai.Client
}

// NewGenAIClient creates a Gemini API client for apiKey
func NewGenAIClient(ctx context.Context, apiKey string) (*GenAIClient, error) {
	if apiKey == "" {
		return nil, ErrNotConfigured
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return &GenAIClient{client: client}, nil
}

func (c *GenAIClient) Complete(ctx context.Context, model, prompt string) (string, error) {
	resp, err := c.client.Models.GenerateContent(ctx, model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	return resp.Text(), nil
}

// UnconfiguredClient fails every call with ErrNotConfigured.
// Used when no API key is set so the librarian still answers with fallback text.
type UnconfiguredClient struct{}

func (UnconfiguredClient) Complete(context.Context, string, string) (string, error) {
	return "", ErrNotConfigured
}
