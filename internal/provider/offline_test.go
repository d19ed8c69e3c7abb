package provider

import (
	"context"
	"strings"
	"testing"
)

func TestOfflineIsDeterministic(t *testing.T) {
	c := NewOffline(0)
	req := Request{Prompt: "Product: Acme Rocket\nA faster onboarding tool", Mode: ModeStrategy}

	first, err := c.Complete(context.Background(), req)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	second, err := c.Complete(context.Background(), req)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if first != second {
		t.Fatal("offline completions should be deterministic")
	}
	if !strings.Contains(first, "Acme Rocket") {
		t.Fatalf("completion should echo the prompt excerpt: %q", first)
	}
}

func TestOfflineSelectsTopicTemplates(t *testing.T) {
	c := NewOffline(0)

	generic, err := c.Complete(context.Background(), Request{Prompt: "Product: onboarding tool", Mode: ModeStrategy})
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	automotive, err := c.Complete(context.Background(), Request{Prompt: "Product: Tesla accessory", Mode: ModeStrategy})
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if generic == automotive {
		t.Fatal("different topics should produce different templates")
	}
	if !strings.Contains(automotive, "electric") {
		t.Fatalf("automotive template expected, got: %q", automotive)
	}
}

func TestOfflineModeFallback(t *testing.T) {
	c := NewOffline(0)
	// Optimization has no URL template; it must fall back to generic rather
	// than return an empty completion.
	out, err := c.Complete(context.Background(), Request{Prompt: "see https://example.com", Mode: ModeOptimization})
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if out == "" {
		t.Fatal("expected a non-empty fallback completion")
	}
}

func TestOfflineHonorsCancellation(t *testing.T) {
	c := NewOffline(0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	// With zero latency the call should still succeed even on a cancelled
	// context; the latency wait is the only suspension point.
	if _, err := c.Complete(ctx, Request{Prompt: "x", Mode: ModeContent}); err != nil {
		t.Fatalf("zero-latency complete should not observe cancellation: %v", err)
	}
}
