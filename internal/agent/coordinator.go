// internal/agent/coordinator.go
package agent

import (
	"context"

	"github.com/zerotomarket/campaign-service/internal/provider"
	"github.com/zerotomarket/campaign-service/pkg/schema"
)

// Coordinator reviews the assembled campaign and scores its readiness.
type Coordinator struct {
	base
}

func (a *Coordinator) Stage() schema.Stage { return schema.StageCoordinator }
func (a *Coordinator) ResultKey() string   { return schema.ResultCoordination }

func (a *Coordinator) Run(ctx context.Context, campaignID string, in Input) Result {
	logger := a.cfg.Logger.With("campaign_id", campaignID, "stage", a.Stage())
	logger.Info("running coordinator")

	a.setStage(campaignID, a.Stage(), schema.StageRunning, 20, "")

	valueProp := str(in.Strategy, "value_proposition", "No strategy")
	trends := str(in.Research, "market_trends", "No research")
	pieces := CountPieces(in.Content)

	a.setStage(campaignID, a.Stage(), schema.StageRunning, 60, "optimizing campaign")

	text, err := a.cfg.Completer.Complete(ctx, provider.Request{
		Prompt:      coordinatorPrompt(in.Product, valueProp, trends, pieces),
		Mode:        provider.ModeOptimization,
		MaxTokens:   800,
		Temperature: 0.6,
	})
	if err != nil {
		return a.fail(campaignID, a.Stage(), err)
	}

	result := Result{
		"agent":                 string(a.Stage()),
		"campaign_id":           campaignID,
		"product_name":          in.Product.Name,
		"readiness_score":       readinessScore(in, pieces),
		"optimization_analysis": text,
		"content_pieces":        pieces,
		"recommended_timeline": map[string]string{
			"twitter":  "Post immediately for engagement",
			"linkedin": "Post during business hours",
			"blog":     "Schedule for next week",
			"email":    "Send to subscribers first",
		},
		"success_metrics": []string{
			"Engagement rate on social media",
			"Click-through rate from content",
			"Lead generation from campaign",
		},
		"next_steps":     "Ready for publication across all channels",
		"campaign_ready": pieces > 0,
	}
	return a.finish(campaignID, a.Stage(), a.ResultKey(), result)
}

// readinessScore rates the campaign 1-10 from what upstream actually
// delivered rather than a fixed number: two points per healthy analysis
// stage and one per content piece, on a base of two.
func readinessScore(in Input, pieces int) float64 {
	score := 2.0
	if in.Strategy != nil && !in.Strategy.Failed() {
		score += 2
	}
	if in.Research != nil && !in.Research.Failed() {
		score += 2
	}
	score += float64(pieces)
	if score > 10 {
		score = 10
	}
	return score
}
