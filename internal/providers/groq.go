package providers

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"
)

const defaultGroqURL = "https://api.groq.com/openai/v1/chat/completions"

// Groq is a Client for Groq's OpenAI-compatible chat completions API.
type Groq struct {
	apiKey      string
	model       string
	baseURL     string
	temperature float64
	maxTokens   int
	client      *http.Client
}

// NewGroq creates a new Groq client.
func NewGroq(model string, opts Options) (*Groq, error) {
	key := os.Getenv("GROQ_API_KEY")
	if key == "" {
		return nil, fmt.Errorf("GROQ_API_KEY environment variable is not set")
	}
	baseURL := os.Getenv("CRITIC_GROQ_BASE_URL")
	if baseURL == "" {
		baseURL = defaultGroqURL
	}
	return &Groq{
		apiKey:      key,
		model:       model,
		baseURL:     baseURL,
		temperature: opts.Temperature,
		maxTokens:   opts.MaxTokens,
		client:      &http.Client{Timeout: 120 * time.Second},
	}, nil
}

func (g *Groq) Name() string { return "groq" }

func (g *Groq) Invoke(ctx context.Context, prompt string) (Reply, error) {
	content, err := chatCompletion(ctx, g.client, g.baseURL, g.apiKey, chatParams{
		model:       g.model,
		prompt:      prompt,
		temperature: g.temperature,
		maxTokens:   g.maxTokens,
	})
	if err != nil {
		return EmptyReply(), err
	}
	return TextReply(content), nil
}
