// internal/provider/gemini.go
package provider

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/genai"
)

// Gemini calls the Google Gemini API through the genai SDK.
type Gemini struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

// GeminiConfig holds configuration for the Gemini completer.
type GeminiConfig struct {
	APIKey  string
	Model   string
	Timeout time.Duration
}

// NewGemini creates a Gemini completer. Unlike the OpenAI client the SDK
// refuses to construct without a key, so the factory only selects Gemini when
// one is configured.
func NewGemini(ctx context.Context, cfg GeminiConfig) (*Gemini, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini: API key is required")
	}
	if cfg.Model == "" {
		cfg.Model = "gemini-2.0-flash"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: cfg.APIKey})
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}

	return &Gemini{client: client, model: cfg.Model, timeout: cfg.Timeout}, nil
}

// Model returns the configured model name for health reporting.
func (c *Gemini) Model() string { return c.model }

// Complete sends the prompt and returns the generated text.
func (c *Gemini) Complete(ctx context.Context, req Request) (string, error) {
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	cfg := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(req.Temperature)),
	}
	if req.MaxTokens > 0 {
		cfg.MaxOutputTokens = int32(req.MaxTokens)
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(req.Prompt), cfg)
	if err != nil {
		return "", fmt.Errorf("gemini: generate content: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("gemini: response contained no text")
	}
	return text, nil
}
