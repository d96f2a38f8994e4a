package providers

import (
	"context"
	"fmt"
	"os"
	"strings"

	"google.golang.org/genai"
)

// Gemini is a Client for Google's Gemini API via the official SDK.
type Gemini struct {
	cli         *genai.Client
	model       string
	temperature float64
}

// NewGemini creates a new Gemini client. The SDK reads the API key from
// GOOGLE_API_KEY or GEMINI_API_KEY.
func NewGemini(ctx context.Context, model string, opts Options) (*Gemini, error) {
	if os.Getenv("GOOGLE_API_KEY") == "" && os.Getenv("GEMINI_API_KEY") == "" {
		return nil, fmt.Errorf("GOOGLE_API_KEY or GEMINI_API_KEY environment variable is not set")
	}
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{Backend: genai.BackendGeminiAPI})
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}
	return &Gemini{
		cli:         cli,
		model:       model,
		temperature: opts.Temperature,
	}, nil
}

func (g *Gemini) Name() string { return "gemini" }

func (g *Gemini) Invoke(ctx context.Context, prompt string) (Reply, error) {
	cfg := &genai.GenerateContentConfig{}
	if g.temperature > 0 {
		t := float32(g.temperature)
		cfg.Temperature = &t
	}

	contents := []*genai.Content{
		{Parts: []*genai.Part{{Text: prompt}}},
	}

	resp, err := g.cli.Models.GenerateContent(ctx, g.model, contents, cfg)
	if err != nil {
		return EmptyReply(), fmt.Errorf("generating content: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return EmptyReply(), fmt.Errorf("no candidates in response")
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil {
			b.WriteString(part.Text)
		}
	}

	return TextReply(b.String()), nil
}
