// internal/agent/creator.go
package agent

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/zerotomarket/campaign-service/internal/provider"
	"github.com/zerotomarket/campaign-service/pkg/schema"
)

// Platforms lists the channels the creator produces copy for, in call order.
var Platforms = []string{"twitter", "linkedin", "blog", "email"}

// Creator writes one piece of copy per platform, pacing its provider calls.
type Creator struct {
	base
}

func (a *Creator) Stage() schema.Stage { return schema.StageCreator }
func (a *Creator) ResultKey() string   { return schema.ResultContent }

func (a *Creator) Run(ctx context.Context, campaignID string, in Input) Result {
	logger := a.cfg.Logger.With("campaign_id", campaignID, "stage", a.Stage())
	logger.Info("running creator")

	a.setStage(campaignID, a.Stage(), schema.StageRunning, 20, "")

	angle := str(in.Strategy, "marketing_angle", "Focus on value")
	tone := str(in.Strategy, "tone", "professional")

	result := Result{"agent": string(a.Stage())}
	for i, platform := range Platforms {
		a.setStage(campaignID, a.Stage(), schema.StageRunning, 20+i*20, "creating "+platform)

		text, err := a.cfg.Completer.Complete(ctx, provider.Request{
			Prompt:      creatorPrompt(in.Product, platform, angle, tone),
			Mode:        provider.ModeContent,
			MaxTokens:   300,
			Temperature: 0.8,
		})
		if err != nil {
			return a.fail(campaignID, a.Stage(), fmt.Errorf("%s content: %w", platform, err))
		}
		result[platform] = strings.TrimSpace(text)

		// Pacing between provider calls, not a correctness requirement.
		if a.cfg.Pace > 0 && i < len(Platforms)-1 {
			select {
			case <-time.After(a.cfg.Pace):
			case <-ctx.Done():
				return a.fail(campaignID, a.Stage(), ctx.Err())
			}
		}
	}

	result["content_strategy"] = "Multi-platform value-driven messaging"
	result["optimization"] = "Tailored for audience engagement patterns"
	return a.finish(campaignID, a.Stage(), a.ResultKey(), result)
}

// CountPieces reports how many platform entries a creator result carries.
func CountPieces(content Result) int {
	n := 0
	for _, platform := range Platforms {
		if _, ok := content[platform]; ok {
			n++
		}
	}
	return n
}
