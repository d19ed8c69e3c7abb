// internal/agent/researcher.go
package agent

import (
	"context"
	"fmt"

	"github.com/zerotomarket/campaign-service/internal/provider"
	"github.com/zerotomarket/campaign-service/pkg/schema"
)

// Researcher gathers competitive intelligence for the product's market.
type Researcher struct {
	base
}

func (a *Researcher) Stage() schema.Stage { return schema.StageResearcher }
func (a *Researcher) ResultKey() string   { return schema.ResultResearcher }

func (a *Researcher) Run(ctx context.Context, campaignID string, in Input) Result {
	logger := a.cfg.Logger.With("campaign_id", campaignID, "stage", a.Stage())
	logger.Info("running researcher")

	a.setStage(campaignID, a.Stage(), schema.StageRunning, 20, "")

	prompt := researcherPrompt(in.Product)
	a.setStage(campaignID, a.Stage(), schema.StageRunning, 60, "analyzing market")

	text, err := a.cfg.Completer.Complete(ctx, provider.Request{
		Prompt:      prompt,
		Mode:        provider.ModeStrategy,
		MaxTokens:   1000,
		Temperature: 0.5,
	})
	if err != nil {
		return a.fail(campaignID, a.Stage(), err)
	}

	industry := in.Product.Industry
	result := Result{
		"agent":           string(a.Stage()),
		"market_analysis": text,
		"competitor_insights": map[string]any{
			"successful_headlines": []string{
				fmt.Sprintf("Revolutionary %s solution", industry),
				fmt.Sprintf("Streamline your %s workflow", in.Product.TargetAudience),
				"10x productivity with AI automation",
			},
			"common_messaging": []string{
				"Save time and increase efficiency",
				"Built specifically for modern teams",
				"Seamless integration with existing tools",
			},
			"engagement_patterns": map[string]any{
				"best_posting_times": []string{"9AM", "2PM", "6PM"},
				"effective_hashtags": []string{"#productivity", "#automation", "#innovation"},
				"content_length":     map[string]string{"twitter": "150-200 chars", "linkedin": "2-3 sentences"},
			},
		},
		"market_trends":           fmt.Sprintf("Growing demand for %s solutions", industry),
		"content_recommendations": "Focus on problem-solution fit messaging",
	}
	return a.finish(campaignID, a.Stage(), a.ResultKey(), result)
}
