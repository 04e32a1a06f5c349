package classifier

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// GeminiRemote calls the Gemini API for classification prompts.
type GeminiRemote struct {
	client *genai.Client
	model  string
}

func NewGeminiRemote(ctx context.Context, apiKey, model string) (*GeminiRemote, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      apiKey,
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}

	return &GeminiRemote{client: client, model: model}, nil
}

func (g *GeminiRemote) Generate(ctx context.Context, prompt string) (string, error) {
	contents := []*genai.Content{
		{
			Role:  "user",
			Parts: []*genai.Part{{Text: prompt}},
		},
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	return resp.Text(), nil
}
