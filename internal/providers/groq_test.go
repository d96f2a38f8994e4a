package providers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGroqInvoke(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req openaiRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decoding request: %v", err)
		}
		if req.Model != "llama-3.1-8b-instant" {
			t.Errorf("model = %q", req.Model)
		}
		if len(req.Messages) != 1 || req.Messages[0].Role != "user" {
			t.Errorf("messages = %+v", req.Messages)
		}
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"groq says hi"}}]}`))
	}))
	defer server.Close()

	t.Setenv("GROQ_API_KEY", "test-key")
	t.Setenv("CRITIC_GROQ_BASE_URL", server.URL)

	client, err := NewGroq("llama-3.1-8b-instant", Options{Temperature: 0.1})
	if err != nil {
		t.Fatalf("NewGroq: %v", err)
	}

	reply, err := client.Invoke(context.Background(), "Test")
	if err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	if got := reply.Flatten(); got != "groq says hi" {
		t.Errorf("reply = %q", got)
	}
}

func TestGroqMissingKey(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "")
	if _, err := NewGroq("llama3-8b-8192", Options{}); err == nil {
		t.Error("expected error without API key")
	}
}
