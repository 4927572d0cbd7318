package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestOllamaProvider_Complete_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			t.Errorf("Expected path /api/generate, got %s", r.URL.Path)
		}

		var req ollamaRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("Failed to decode request: %v", err)
		}
		if req.Stream {
			t.Error("Expected stream=false")
		}

		resp := ollamaResponse{
			Model:           "llama3.1",
			Response:        `{"bills": [], "people": [], "organizations": [], "projects": [], "votes": []}`,
			Done:            true,
			PromptEvalCount: 10,
			EvalCount:       20,
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	provider, err := NewOllamaProvider(Config{
		BaseURL: server.URL,
		Model:   "llama3.1",
		Timeout: 5,
	})
	if err != nil {
		t.Fatalf("Failed to create provider: %v", err)
	}

	resp, err := provider.Complete(context.Background(), CompletionRequest{
		System: "You are an extraction assistant.",
		Prompt: "Extract entities from this transcript.",
	})
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}

	if resp.Text == "" {
		t.Error("Expected non-empty response text")
	}
	if resp.TokensUsed != 30 {
		t.Errorf("Expected 30 tokens used, got %d", resp.TokensUsed)
	}
	if resp.Model != "llama3.1" {
		t.Errorf("Expected model llama3.1, got %s", resp.Model)
	}
}

func TestOllamaProvider_Complete_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error": "model not found"}`))
	}))
	defer server.Close()

	provider, err := NewOllamaProvider(Config{
		BaseURL: server.URL,
		Model:   "llama3.1",
		Timeout: 5,
	})
	if err != nil {
		t.Fatalf("Failed to create provider: %v", err)
	}

	_, err = provider.Complete(context.Background(), CompletionRequest{Prompt: "test"})
	if err == nil {
		t.Fatal("Expected error from API failure")
	}
}

func TestOllamaProvider_Complete_RequiresModel(t *testing.T) {
	provider, err := NewOllamaProvider(Config{BaseURL: "http://localhost:11434"})
	if err != nil {
		t.Fatalf("Failed to create provider: %v", err)
	}

	_, err = provider.Complete(context.Background(), CompletionRequest{Prompt: "test"})
	if err == nil {
		t.Fatal("Expected error when no model configured")
	}
}

func TestOllamaProvider_IsAvailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tags" {
			t.Errorf("Expected path /api/tags, got %s", r.URL.Path)
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"models": []}`))
	}))
	defer server.Close()

	provider, err := NewOllamaProvider(Config{BaseURL: server.URL, Timeout: 5})
	if err != nil {
		t.Fatalf("Failed to create provider: %v", err)
	}

	if !provider.IsAvailable(context.Background()) {
		t.Error("Expected provider to be available")
	}
}

func TestNewProvider_Factory(t *testing.T) {
	if _, err := NewProvider(Config{Provider: "openai", APIKey: "sk-test"}); err != nil {
		t.Errorf("Expected openai provider, got error: %v", err)
	}
	if _, err := NewProvider(Config{Provider: "ollama"}); err != nil {
		t.Errorf("Expected ollama provider, got error: %v", err)
	}
	if _, err := NewProvider(Config{Provider: ""}); err == nil {
		t.Error("Expected error for empty provider")
	}
	if _, err := NewProvider(Config{Provider: "unknown"}); err == nil {
		t.Error("Expected error for unknown provider")
	}
}
