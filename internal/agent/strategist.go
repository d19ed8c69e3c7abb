// internal/agent/strategist.go
package agent

import (
	"context"
	"fmt"

	"github.com/zerotomarket/campaign-service/internal/provider"
	"github.com/zerotomarket/campaign-service/pkg/schema"
)

// Strategist produces the positioning analysis the later stages build on.
type Strategist struct {
	base
}

func (a *Strategist) Stage() schema.Stage { return schema.StageStrategist }
func (a *Strategist) ResultKey() string   { return schema.ResultStrategist }

func (a *Strategist) Run(ctx context.Context, campaignID string, in Input) Result {
	logger := a.cfg.Logger.With("campaign_id", campaignID, "stage", a.Stage())
	logger.Info("running strategist")

	a.setStage(campaignID, a.Stage(), schema.StageRunning, 20, "")

	prompt := strategistPrompt(in.Product)
	a.setStage(campaignID, a.Stage(), schema.StageRunning, 60, "generating strategy")

	text, err := a.cfg.Completer.Complete(ctx, provider.Request{
		Prompt:      prompt,
		Mode:        provider.ModeStrategy,
		MaxTokens:   1000,
		Temperature: 0.7,
	})
	if err != nil {
		return a.fail(campaignID, a.Stage(), err)
	}

	result := Result{
		"agent":             string(a.Stage()),
		"strategy_content":  text,
		"value_proposition": fmt.Sprintf("The go-to %s for %s", in.Product.Name, in.Product.TargetAudience),
		"marketing_angle":   "Focus on immediate problem-solving value",
		"tone":              "professional yet approachable",
		"target_persona":    fmt.Sprintf("Busy %s looking for efficient solutions", in.Product.TargetAudience),
	}
	return a.finish(campaignID, a.Stage(), a.ResultKey(), result)
}
