package analysis

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/dshills/critic/internal/config"
	"github.com/dshills/critic/internal/providers"
)

// scriptedClient replays a fixed reply (or error) and records prompts.
type scriptedClient struct {
	reply   providers.Reply
	err     error
	prompts []string
}

func (s *scriptedClient) Name() string { return "scripted" }

func (s *scriptedClient) Invoke(ctx context.Context, prompt string) (providers.Reply, error) {
	s.prompts = append(s.prompts, prompt)
	return s.reply, s.err
}

func testConfig() config.Config {
	cfg := config.Default()
	cfg.Cache.Enabled = false
	return cfg
}

func remoteBinding(client providers.Client) *providers.Resolved {
	return &providers.Resolved{
		Provider:   "scripted",
		Model:      "test-model",
		Client:     client,
		ResolvedAt: time.Now(),
	}
}

func fallbackBinding() *providers.Resolved {
	return &providers.Resolved{
		Provider:   "static",
		Model:      "static",
		Client:     &providers.Static{},
		ResolvedAt: time.Now(),
		Fallback:   true,
	}
}

func TestEngineFallbackBindingUsesStaticAnalyzer(t *testing.T) {
	eng := NewWithBackend(testConfig(), fallbackBinding())

	res := eng.Analyze(context.Background(), Request{
		Path: "app.py",
		Text: "result = eval(user_input)\n",
		Task: TaskReview,
	})

	if res.Provenance != ProvenanceStaticFallback {
		t.Errorf("provenance = %s, want static_fallback", res.Provenance)
	}
	if len(findIssues(res.Issues, TypeSecurity)) == 0 {
		t.Error("expected static security findings")
	}
	if !eng.Backend().FallbackMode {
		t.Error("backend info should report fallback mode")
	}
}

func TestEngineRemoteAnalyze(t *testing.T) {
	client := &scriptedClient{
		reply: providers.TextReply(`{"issues":[{"type":"security","severity":"high","line":2,"description":"bad"}]}`),
	}
	eng := NewWithBackend(testConfig(), remoteBinding(client))

	res := eng.Analyze(context.Background(), Request{
		Path:     "app.py",
		Language: "Python",
		Text:     "x = 1\n",
		Task:     TaskReview,
	})

	if res.Provenance != ProvenanceRemote {
		t.Errorf("provenance = %s, want remote", res.Provenance)
	}
	if len(client.prompts) != 1 {
		t.Fatalf("got %d invocations, want 1", len(client.prompts))
	}
	if !strings.Contains(client.prompts[0], "x = 1") {
		t.Error("prompt should carry the source text")
	}
	if !strings.Contains(client.prompts[0], "Language: Python") {
		t.Error("prompt should carry the language tag")
	}
}

func TestEngineInvokeFailureDegradesToStatic(t *testing.T) {
	client := &scriptedClient{err: errors.New("backend exploded")}
	eng := NewWithBackend(testConfig(), remoteBinding(client))

	res := eng.Analyze(context.Background(), Request{
		Path: "app.py",
		Text: "x = 1\n",
		Task: TaskReview,
	})

	if res.Provenance != ProvenanceStaticFallback {
		t.Errorf("provenance = %s, want static_fallback", res.Provenance)
	}
}

func TestEngineChunksLargeInputSequentially(t *testing.T) {
	client := &scriptedClient{
		reply: providers.TextReply(`{"issues":[{"type":"readability","severity":"low","line":1,"description":"meh"}]}`),
	}
	cfg := testConfig()
	cfg.ChunkSize = 100
	cfg.ChunkOverlap = 10
	eng := NewWithBackend(cfg, remoteBinding(client))

	lines := make([]string, 200)
	for i := range lines {
		lines[i] = "some_function_call(argument_one, argument_two)"
	}

	res := eng.Analyze(context.Background(), Request{
		Path: "big.py",
		Text: strings.Join(lines, "\n"),
		Task: TaskReview,
	})

	if len(client.prompts) <= 1 {
		t.Fatalf("expected multiple chunk invocations, got %d", len(client.prompts))
	}
	if res.Provenance != ProvenanceRemote {
		t.Errorf("provenance = %s, want remote for all-remote chunks", res.Provenance)
	}
	if len(res.Issues) != len(client.prompts) {
		t.Errorf("issues = %d, chunks = %d", len(res.Issues), len(client.prompts))
	}
	approx := 0
	for _, is := range res.Issues {
		if is.LineApproximate {
			approx++
		}
	}
	if approx != len(res.Issues)-1 {
		t.Errorf("all non-first-chunk issues should be approximate: %d of %d", approx, len(res.Issues))
	}
}

func TestEngineRedactsSecretsBeforeSending(t *testing.T) {
	client := &scriptedClient{reply: providers.TextReply(`{"issues":[]}`)}
	eng := NewWithBackend(testConfig(), remoteBinding(client))

	eng.Analyze(context.Background(), Request{
		Path: "cfg.py",
		Text: `token = "hf_ABCDEFGHIJKLMNOPQRSTUVwxyz123456"`,
		Task: TaskReview,
	})

	if len(client.prompts) != 1 {
		t.Fatalf("got %d invocations", len(client.prompts))
	}
	if strings.Contains(client.prompts[0], "hf_ABCDEFGHIJKLMNOPQRSTUVwxyz123456") {
		t.Error("secret leaked into the prompt")
	}
	if !strings.Contains(client.prompts[0], "[REDACTED]") {
		t.Error("expected redaction placeholder in prompt")
	}
}

func TestEngineRedactsPathMatchedFiles(t *testing.T) {
	client := &scriptedClient{reply: providers.TextReply(`{"issues":[]}`)}
	eng := NewWithBackend(testConfig(), remoteBinding(client))

	eng.Analyze(context.Background(), Request{
		Path: "config/.env",
		Text: "DB_PASSWORD=hunter2\nDB_HOST=localhost\n",
		Task: TaskReview,
	})

	if len(client.prompts) != 1 {
		t.Fatalf("got %d invocations", len(client.prompts))
	}
	if strings.Contains(client.prompts[0], "hunter2") {
		t.Error("path-matched file content leaked into the prompt")
	}
	if !strings.Contains(client.prompts[0], "file content redacted by path policy") {
		t.Error("expected whole-file redaction notice in prompt")
	}
}

func TestEngineImproveExtractsCodeBlock(t *testing.T) {
	client := &scriptedClient{
		reply: providers.TextReply("Here you go:\n```python\nx = 2\n```\nEnjoy."),
	}
	eng := NewWithBackend(testConfig(), remoteBinding(client))

	got := eng.Improve(context.Background(), Request{Path: "app.py", Text: "x = 1\n", Task: TaskImprove}, nil)
	if got != "x = 2" {
		t.Errorf("Improve = %q, want extracted block", got)
	}
}

func TestEngineImproveFallsBackToOriginal(t *testing.T) {
	client := &scriptedClient{reply: providers.TextReply("I cannot help with that.")}
	eng := NewWithBackend(testConfig(), remoteBinding(client))

	original := "x = 1\n"
	if got := eng.Improve(context.Background(), Request{Path: "app.py", Text: original}, nil); got != original {
		t.Errorf("Improve without code block = %q, want original", got)
	}

	eng = NewWithBackend(testConfig(), fallbackBinding())
	if got := eng.Improve(context.Background(), Request{Path: "app.py", Text: original}, nil); got != original {
		t.Errorf("Improve in fallback mode = %q, want original", got)
	}
}

func TestEngineDocument(t *testing.T) {
	client := &scriptedClient{
		reply: providers.TextReply("```go\n// Package main does things.\npackage main\n```"),
	}
	eng := NewWithBackend(testConfig(), remoteBinding(client))

	got := eng.Document(context.Background(), Request{Path: "main.go", Language: "Go", Text: "package main\n"})
	if !strings.Contains(got, "// Package main does things.") {
		t.Errorf("Document = %q", got)
	}
}

func TestExtractCode(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     string
	}{
		{"fenced with language", "```go\ncode here\n```", "code here"},
		{"fenced bare", "```\ncode here\n```", "code here"},
		{"no fence", "just prose", "original"},
		{"empty", "", "original"},
		{"empty block", "```\n\n```", "original"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractCode(tt.response, "original"); got != tt.want {
				t.Errorf("extractCode = %q, want %q", got, tt.want)
			}
		})
	}
}
