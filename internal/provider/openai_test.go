package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestOpenAICompleteSuccess(t *testing.T) {
	var gotAuth string
	var gotBody openAIRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": "generated strategy"}},
			},
		})
	}))
	defer srv.Close()

	c := NewOpenAI(OpenAIConfig{APIKey: "test-key", BaseURL: srv.URL})
	out, err := c.Complete(context.Background(), Request{Prompt: "analyze this", MaxTokens: 100, Temperature: 0.7})
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if out != "generated strategy" {
		t.Fatalf("unexpected completion: %q", out)
	}
	if gotAuth != "Bearer test-key" {
		t.Fatalf("unexpected auth header: %q", gotAuth)
	}
	if gotBody.Model != "gpt-4o-mini" || gotBody.MaxTokens != 100 {
		t.Fatalf("unexpected request body: %+v", gotBody)
	}
}

func TestOpenAICompleteAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"message": "Incorrect API key", "type": "invalid_request_error"},
		})
	}))
	defer srv.Close()

	c := NewOpenAI(OpenAIConfig{APIKey: "bad-key", BaseURL: srv.URL})
	_, err := c.Complete(context.Background(), Request{Prompt: "x"})
	if err == nil {
		t.Fatal("expected API error")
	}
	if !strings.Contains(err.Error(), "Incorrect API key") {
		t.Fatalf("error should carry the provider message: %v", err)
	}
}

func TestOpenAICompleteMissingKey(t *testing.T) {
	c := NewOpenAI(OpenAIConfig{})
	_, err := c.Complete(context.Background(), Request{Prompt: "x"})
	if err == nil || !strings.Contains(err.Error(), "API key not configured") {
		t.Fatalf("expected missing-key error, got %v", err)
	}
}

func TestOpenAICompleteEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	}))
	defer srv.Close()

	c := NewOpenAI(OpenAIConfig{APIKey: "k", BaseURL: srv.URL})
	_, err := c.Complete(context.Background(), Request{Prompt: "x"})
	if err == nil || !strings.Contains(err.Error(), "no choices") {
		t.Fatalf("expected empty-choices error, got %v", err)
	}
}
