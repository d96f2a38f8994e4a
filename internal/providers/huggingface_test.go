package providers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestHuggingFaceInvoke(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "bigcode/starcoder") {
			t.Errorf("path = %q, want model suffix", r.URL.Path)
		}
		w.Write([]byte(`[{"generated_text":"reviewed"}]`))
	}))
	defer server.Close()

	t.Setenv("HUGGINGFACEHUB_API_TOKEN", "hf-token")
	t.Setenv("CRITIC_HF_BASE_URL", server.URL+"/")

	client, err := NewHuggingFace("bigcode/starcoder", Options{})
	if err != nil {
		t.Fatalf("NewHuggingFace: %v", err)
	}

	reply, err := client.Invoke(context.Background(), "Test")
	if err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	if got := reply.Flatten(); got != "reviewed" {
		t.Errorf("reply = %q", got)
	}
}

func TestHuggingFaceConfiguredModelOverridesVariant(t *testing.T) {
	t.Setenv("HUGGINGFACEHUB_API_TOKEN", "hf-token")

	client, err := NewHuggingFace("bigcode/starcoder", Options{Model: "custom/model"})
	if err != nil {
		t.Fatalf("NewHuggingFace: %v", err)
	}
	if client.model != "custom/model" {
		t.Errorf("model = %q, want configured override", client.model)
	}
}

func TestHuggingFaceMissingToken(t *testing.T) {
	t.Setenv("HUGGINGFACEHUB_API_TOKEN", "")
	if _, err := NewHuggingFace("bigcode/starcoder", Options{}); err == nil {
		t.Error("expected error without token")
	}
}

func TestHuggingFaceEmptyGenerations(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	t.Setenv("HUGGINGFACEHUB_API_TOKEN", "hf-token")
	t.Setenv("CRITIC_HF_BASE_URL", server.URL+"/")

	client, err := NewHuggingFace("bigcode/starcoder", Options{})
	if err != nil {
		t.Fatalf("NewHuggingFace: %v", err)
	}

	if _, err := client.Invoke(context.Background(), "Test"); err == nil {
		t.Error("expected error for empty generations")
	}
}
