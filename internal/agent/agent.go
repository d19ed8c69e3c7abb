// internal/agent/agent.go
package agent

import (
	"context"
	"log/slog"
	"time"

	"github.com/zerotomarket/campaign-service/internal/provider"
	"github.com/zerotomarket/campaign-service/internal/store"
	"github.com/zerotomarket/campaign-service/pkg/schema"
)

// Input carries the product data plus whatever upstream stages produced.
// Strategy/Research/Content are nil for stages that run before them.
type Input struct {
	Product  schema.ProductInput
	Strategy Result
	Research Result
	Content  Result
}

// Result is a stage's named JSON payload.
type Result map[string]any

// Failed reports whether a result carries a stage-level error.
func (r Result) Failed() bool {
	_, ok := r["error"]
	return ok
}

// Handler runs one agent role for a campaign. Run never returns an error:
// provider failures are recorded in the store and surface as an "error" field
// in the result, so one stage's failure cannot abort the pipeline.
type Handler interface {
	Stage() schema.Stage
	ResultKey() string
	Run(ctx context.Context, campaignID string, in Input) Result
}

// Config wires the dependencies every handler shares.
type Config struct {
	Store     store.Store
	Completer provider.Completer
	Logger    *slog.Logger
	// Pace is the delay between the creator's per-platform calls.
	Pace time.Duration
	// Notify mirrors each stage status write to the event bus; nil disables.
	Notify func(schema.StageLifecycleEvent)
}

// Handlers constructs the four stage handlers in pipeline order.
func Handlers(cfg Config) []Handler {
	b := base{cfg: cfg}
	return []Handler{
		&Strategist{base: b},
		&Researcher{base: b},
		&Creator{base: b},
		&Coordinator{base: b},
	}
}

type base struct {
	cfg Config
}

// setStage writes one status update and mirrors it onto the bus. A missing
// record (evicted mid-run) is logged and skipped; it must never crash a run.
func (b base) setStage(campaignID string, stage schema.Stage, state schema.StageState, progress int, message string) {
	err := b.cfg.Store.UpdateStage(campaignID, stage, store.StagePatch{
		State:    state,
		Progress: progress,
		Message:  message,
	})
	if err != nil {
		b.cfg.Logger.Warn("stage status update skipped", "campaign_id", campaignID, "stage", stage, "err", err)
		return
	}
	if b.cfg.Notify != nil {
		b.cfg.Notify(schema.StageLifecycleEvent{
			CampaignID: campaignID,
			Stage:      stage,
			State:      state,
			Progress:   progress,
			Message:    message,
			HappenedAt: time.Now().Unix(),
		})
	}
}

// fail marks the stage failed and returns the error-bearing result the
// driver passes downstream.
func (b base) fail(campaignID string, stage schema.Stage, err error) Result {
	b.cfg.Logger.Error("stage failed", "campaign_id", campaignID, "stage", stage, "err", err)
	b.setStage(campaignID, stage, schema.StageFailed, 0, err.Error())
	return Result{"agent": string(stage), "error": err.Error()}
}

// finish stores the result and marks the stage completed. Completion is
// written first so the result only ever appears on a completed stage.
func (b base) finish(campaignID string, stage schema.Stage, key string, result Result) Result {
	b.setStage(campaignID, stage, schema.StageCompleted, 100, "")
	if err := b.cfg.Store.SetResult(campaignID, key, map[string]any(result)); err != nil {
		b.cfg.Logger.Warn("result write skipped", "campaign_id", campaignID, "stage", stage, "err", err)
	}
	return result
}

// str pulls a string field out of an upstream result, falling back when the
// stage failed or the field is absent.
func str(r Result, key, fallback string) string {
	if r == nil {
		return fallback
	}
	if v, ok := r[key].(string); ok && v != "" {
		return v
	}
	return fallback
}
