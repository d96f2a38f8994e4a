package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

const defaultHuggingFaceURL = "https://api-inference.huggingface.co/models/"

// HuggingFace is a Client for the HuggingFace inference API.
type HuggingFace struct {
	token       string
	model       string
	baseURL     string
	temperature float64
	maxTokens   int
	client      *http.Client
}

// NewHuggingFace creates a new HuggingFace client.
func NewHuggingFace(model string, opts Options) (*HuggingFace, error) {
	token := os.Getenv("HUGGINGFACEHUB_API_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("HUGGINGFACEHUB_API_TOKEN environment variable is not set")
	}
	// The configured model takes precedence over the variant default.
	if opts.Model != "" {
		model = opts.Model
	}
	baseURL := os.Getenv("CRITIC_HF_BASE_URL")
	if baseURL == "" {
		baseURL = defaultHuggingFaceURL
	}
	return &HuggingFace{
		token:       token,
		model:       model,
		baseURL:     baseURL,
		temperature: opts.Temperature,
		maxTokens:   opts.MaxTokens,
		client:      &http.Client{Timeout: 120 * time.Second},
	}, nil
}

func (h *HuggingFace) Name() string { return "huggingface" }

func (h *HuggingFace) Invoke(ctx context.Context, prompt string) (Reply, error) {
	maxTokens := h.maxTokens
	if maxTokens == 0 {
		maxTokens = 1024
	}

	body := hfRequest{
		Inputs: prompt,
		Parameters: hfParameters{
			MaxNewTokens:   maxTokens,
			ReturnFullText: false,
		},
	}
	if h.temperature > 0 {
		body.Parameters.Temperature = &h.temperature
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return EmptyReply(), fmt.Errorf("marshaling request: %w", err)
	}

	var text string
	err = retryWithBackoff(ctx, 3, func() error {
		httpReq, err := http.NewRequestWithContext(ctx, "POST", h.baseURL+h.model, bytes.NewReader(payload))
		if err != nil {
			return fmt.Errorf("creating request: %w", err)
		}
		httpReq.Header.Set("Content-Type", "application/json")
		httpReq.Header.Set("Authorization", "Bearer "+h.token)

		httpResp, err := h.client.Do(httpReq)
		if err != nil {
			return fmt.Errorf("sending request: %w", err)
		}
		defer httpResp.Body.Close()

		respBody, err := io.ReadAll(httpResp.Body)
		if err != nil {
			return fmt.Errorf("reading response: %w", err)
		}

		if httpResp.StatusCode == 429 {
			return &rateLimitError{}
		}
		if httpResp.StatusCode == 401 || httpResp.StatusCode == 403 {
			return &authError{message: string(respBody)}
		}
		if httpResp.StatusCode >= 500 {
			return &serverError{statusCode: httpResp.StatusCode, body: string(respBody)}
		}
		if httpResp.StatusCode != 200 {
			return fmt.Errorf("API error (status %d): %s", httpResp.StatusCode, string(respBody))
		}

		var result []hfGeneration
		if err := json.Unmarshal(respBody, &result); err != nil {
			return fmt.Errorf("parsing response: %w", err)
		}
		if len(result) == 0 {
			return fmt.Errorf("no generations in response")
		}

		text = result[0].GeneratedText
		return nil
	})
	if err != nil {
		return EmptyReply(), err
	}

	return TextReply(text), nil
}

type hfRequest struct {
	Inputs     string       `json:"inputs"`
	Parameters hfParameters `json:"parameters"`
}

type hfParameters struct {
	MaxNewTokens   int      `json:"max_new_tokens"`
	Temperature    *float64 `json:"temperature,omitempty"`
	ReturnFullText bool     `json:"return_full_text"`
}

type hfGeneration struct {
	GeneratedText string `json:"generated_text"`
}
