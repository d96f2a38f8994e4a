package providers

import (
	"context"
	"encoding/json"
	"os"
)

// Client is a text-generation backend. Invoke sends one prompt and returns
// the backend's reply.
type Client interface {
	Invoke(ctx context.Context, prompt string) (Reply, error)
	Name() string
}

// Options carries the generation parameters shared by all clients.
type Options struct {
	// Model overrides the first model variant where a provider honors a
	// configured model (currently HuggingFace).
	Model       string
	Temperature float64
	MaxTokens   int
}

// replyKind discriminates the Reply variants.
type replyKind int

const (
	replyEmpty replyKind = iota
	replyText
	replyStructured
)

// Reply is what a backend answered. It is one of three variants: empty,
// plain text, or a structured mapping. Callers use Flatten to get a single
// text form without inspecting the variant.
type Reply struct {
	kind replyKind
	text string
	data map[string]any
}

// EmptyReply returns the empty variant.
func EmptyReply() Reply { return Reply{kind: replyEmpty} }

// TextReply wraps plain text. Empty text yields the empty variant.
func TextReply(s string) Reply {
	if s == "" {
		return EmptyReply()
	}
	return Reply{kind: replyText, text: s}
}

// StructuredReply wraps a decoded mapping. A nil map yields the empty variant.
func StructuredReply(m map[string]any) Reply {
	if m == nil {
		return EmptyReply()
	}
	return Reply{kind: replyStructured, data: m}
}

// IsEmpty reports whether the reply carries no content.
func (r Reply) IsEmpty() bool { return r.kind == replyEmpty }

// Flatten reduces the reply to text. Structured replies flatten to their
// "content" field when it is a string, otherwise to their JSON encoding.
func (r Reply) Flatten() string {
	switch r.kind {
	case replyText:
		return r.text
	case replyStructured:
		if s, ok := r.data["content"].(string); ok {
			return s
		}
		b, err := json.Marshal(r.data)
		if err != nil {
			return ""
		}
		return string(b)
	default:
		return ""
	}
}

// Descriptor describes a provider slot in the resolution chain.
type Descriptor struct {
	// Name labels the provider in logs and reports.
	Name string
	// CredentialVars lists the env vars that can supply the credential.
	// Any one being set makes the provider available. Empty means the
	// provider needs no credential.
	CredentialVars []string
	// Models are the variants tried in order during resolution.
	Models []string
	// Build constructs a client for one model variant.
	Build func(ctx context.Context, model string, opts Options) (Client, error)
}

// Available reports whether the provider's credential is present in the
// environment. Providers without credential vars are always available.
func (d Descriptor) Available() bool {
	if len(d.CredentialVars) == 0 {
		return true
	}
	for _, v := range d.CredentialVars {
		if os.Getenv(v) != "" {
			return true
		}
	}
	return false
}

const defaultHuggingFaceModel = "bigcode/starcoder"

// DefaultDescriptors returns the fixed resolution chain: huggingface,
// gemini, groq, openai, then the deterministic fallback.
func DefaultDescriptors() []Descriptor {
	return []Descriptor{
		{
			Name:           "huggingface",
			CredentialVars: []string{"HUGGINGFACEHUB_API_TOKEN"},
			Models:         []string{defaultHuggingFaceModel},
			Build: func(ctx context.Context, model string, opts Options) (Client, error) {
				return NewHuggingFace(model, opts)
			},
		},
		{
			Name:           "gemini",
			CredentialVars: []string{"GOOGLE_API_KEY", "GEMINI_API_KEY"},
			Models:         []string{"gemini-2.5-flash", "gemini-1.5-flash", "gemini-1.5-pro"},
			Build: func(ctx context.Context, model string, opts Options) (Client, error) {
				return NewGemini(ctx, model, opts)
			},
		},
		{
			Name:           "groq",
			CredentialVars: []string{"GROQ_API_KEY"},
			Models:         []string{"llama-3.1-8b-instant", "llama3-70b-8192", "llama3-8b-8192", "mixtral-8x7b-32768"},
			Build: func(ctx context.Context, model string, opts Options) (Client, error) {
				return NewGroq(model, opts)
			},
		},
		{
			Name:           "openai",
			CredentialVars: []string{"OPENAI_API_KEY"},
			Models:         []string{"gpt-4o-mini", "gpt-4-turbo", "gpt-3.5-turbo"},
			Build: func(ctx context.Context, model string, opts Options) (Client, error) {
				return NewOpenAI(model, opts)
			},
		},
		{
			Name:   "static",
			Models: []string{"static"},
			Build: func(ctx context.Context, model string, opts Options) (Client, error) {
				return &Static{}, nil
			},
		},
	}
}
