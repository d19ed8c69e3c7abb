// internal/provider/provider.go
package provider

import "context"

// Mode hints at what kind of output a stage expects. Hosted providers fold it
// into the prompt they already receive; the offline provider uses it to pick
// a template family.
type Mode string

const (
	ModeStrategy     Mode = "strategy"
	ModeContent      Mode = "content"
	ModeOptimization Mode = "optimization"
)

// Request is a single text-completion call.
type Request struct {
	Prompt      string
	Mode        Mode
	MaxTokens   int
	Temperature float64
}

// Completer turns a prompt into generated text. Stage handlers depend only on
// this interface so a deterministic implementation can stand in during tests
// and offline demos.
type Completer interface {
	Complete(ctx context.Context, req Request) (string, error)
}
