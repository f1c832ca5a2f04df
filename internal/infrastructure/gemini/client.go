package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

var ErrEmptyResponse = errors.New("gemini returned no content")

// Persona describes the business owner the model speaks for.
type Persona struct {
	Name         string
	BusinessName string
	Title        string
	Industries   []string
}

type GeminiClient struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewGeminiClient(ctx context.Context, apiKey string) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	model := client.GenerativeModel("gemini-1.5-flash")
	model.SetTemperature(0.8)
	model.SetMaxOutputTokens(120)

	return &GeminiClient{
		client: client,
		model:  model,
	}, nil
}

func (c *GeminiClient) Close() error {
	return c.client.Close()
}

// GenerateGreeting writes the first message a freshly matched business
// owner sends.
func (c *GeminiClient) GenerateGreeting(ctx context.Context, p Persona) (string, error) {
	prompt := fmt.Sprintf(`
		You are %s, %s at %s (industries: %s) on a business networking app.
		You just matched with another business owner.

		Task: Write one short, friendly opening message (1-2 sentences) about exploring a partnership.
		Language: English.
		Output: Just the message text.
	`, p.Name, p.Title, p.BusinessName, strings.Join(p.Industries, ", "))

	return c.generate(ctx, prompt)
}

// GenerateReply answers an incoming chat message in the persona's voice.
func (c *GeminiClient) GenerateReply(ctx context.Context, p Persona, incoming string) (string, error) {
	prompt := fmt.Sprintf(`
		You are %s, %s at %s (industries: %s) on a business networking app.
		Your match wrote: %q

		Task: Reply in 1-2 sentences, keep the conversation moving toward a collaboration.
		Language: English.
		Output: Just the reply text.
	`, p.Name, p.Title, p.BusinessName, strings.Join(p.Industries, ", "), incoming)

	return c.generate(ctx, prompt)
}

func (c *GeminiClient) generate(ctx context.Context, prompt string) (string, error) {
	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", ErrEmptyResponse
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}

	text := strings.Trim(strings.TrimSpace(sb.String()), `"`)
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}
