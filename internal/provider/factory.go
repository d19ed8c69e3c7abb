// internal/provider/factory.go
package provider

import (
	"context"
	"fmt"
	"time"
)

// Kind names a completer implementation.
type Kind string

const (
	KindOpenAI  Kind = "openai"
	KindGemini  Kind = "gemini"
	KindOffline Kind = "offline"
)

// Config selects and configures a completer.
type Config struct {
	Kind           Kind
	APIKey         string
	Model          string
	Timeout        time.Duration
	OfflineLatency time.Duration
}

// Info describes the constructed completer for health reporting.
type Info struct {
	Kind       Kind
	Model      string
	Configured bool
}

// New builds the completer named by cfg.Kind. An OpenAI completer without a
// key is still constructed — calls fail individually, matching the service's
// warn-at-startup policy — while Gemini requires one up front.
func New(ctx context.Context, cfg Config) (Completer, Info, error) {
	switch cfg.Kind {
	case KindOpenAI:
		c := NewOpenAI(OpenAIConfig{APIKey: cfg.APIKey, Model: cfg.Model, Timeout: cfg.Timeout})
		return c, Info{Kind: KindOpenAI, Model: c.Model(), Configured: cfg.APIKey != ""}, nil
	case KindGemini:
		c, err := NewGemini(ctx, GeminiConfig{APIKey: cfg.APIKey, Model: cfg.Model, Timeout: cfg.Timeout})
		if err != nil {
			return nil, Info{}, err
		}
		return c, Info{Kind: KindGemini, Model: c.Model(), Configured: true}, nil
	case KindOffline, "":
		c := NewOffline(cfg.OfflineLatency)
		return c, Info{Kind: KindOffline, Model: c.Model(), Configured: true}, nil
	default:
		return nil, Info{}, fmt.Errorf("unknown provider kind %q", cfg.Kind)
	}
}
