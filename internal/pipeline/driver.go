// internal/pipeline/driver.go
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/zerotomarket/campaign-service/internal/agent"
	"github.com/zerotomarket/campaign-service/internal/bus"
	"github.com/zerotomarket/campaign-service/internal/store"
	"github.com/zerotomarket/campaign-service/pkg/schema"
)

// Config wires one Driver.
type Config struct {
	Store    store.Store
	Handlers []agent.Handler
	Logger   *slog.Logger
	// Bus and DoneSubject control the campaign-done event; both optional.
	Bus         *bus.Client
	DoneSubject string
}

// Driver sequences the four stage handlers for one campaign run: strategist
// and researcher concurrently, then creator, then coordinator. It is invoked
// once per campaign by a queue worker, detached from the HTTP request that
// created the record.
type Driver struct {
	cfg      Config
	handlers map[schema.Stage]agent.Handler
}

func New(cfg Config) *Driver {
	handlers := make(map[schema.Stage]agent.Handler, len(cfg.Handlers))
	for _, h := range cfg.Handlers {
		handlers[h.Stage()] = h
	}
	return &Driver{cfg: cfg, handlers: handlers}
}

// Run drives one campaign to a terminal status. Stage failures degrade the
// run: later stages still execute against partial inputs and the campaign
// completes best-effort. Only a panic escaping a handler, or all four stages
// failing, marks the campaign failed.
func (d *Driver) Run(ctx context.Context, campaignID string, product schema.ProductInput) {
	logger := d.cfg.Logger.With("campaign_id", campaignID)
	start := time.Now()

	logger.Info("starting agent workflow", "product", product.Name)
	_ = d.cfg.Store.SetStatus(campaignID, schema.CampaignRunning)

	// Phase 1: strategy and research in parallel. Both handlers reach a
	// terminal per-stage state before the group returns.
	var strategy, research agent.Result
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		strategy, err = d.runStage(gctx, schema.StageStrategist, campaignID, agent.Input{Product: product})
		return err
	})
	g.Go(func() (err error) {
		research, err = d.runStage(gctx, schema.StageResearcher, campaignID, agent.Input{Product: product})
		return err
	})
	if err := g.Wait(); err != nil {
		d.abort(campaignID, start, err)
		return
	}

	// Phase 2: content creation from whatever phase 1 produced.
	content, err := d.runStage(ctx, schema.StageCreator, campaignID, agent.Input{
		Product:  product,
		Strategy: strategy,
		Research: research,
	})
	if err != nil {
		d.abort(campaignID, start, err)
		return
	}

	// Phase 3: coordination over the full set of upstream outputs.
	coordination, err := d.runStage(ctx, schema.StageCoordinator, campaignID, agent.Input{
		Product:  product,
		Strategy: strategy,
		Research: research,
		Content:  content,
	})
	if err != nil {
		d.abort(campaignID, start, err)
		return
	}

	failed := 0
	for _, result := range []agent.Result{strategy, research, content, coordination} {
		if result.Failed() {
			failed++
		}
	}

	status := schema.CampaignCompleted
	if failed == len(d.handlers) {
		status = schema.CampaignFailed
	}
	_ = d.cfg.Store.SetStatus(campaignID, status)

	logger.Info("agent workflow finished", "status", status, "stages_failed", failed, "duration_ms", time.Since(start).Milliseconds())
	errMsg := ""
	if status == schema.CampaignFailed {
		errMsg = "all stages failed"
	}
	d.publishDone(campaignID, status, failed, start, errMsg)
}

// runStage converts a panic escaping a handler into a driver-level error.
// Handlers report ordinary provider failures inside their result, so a
// non-nil error here always means something unrecoverable.
func (d *Driver) runStage(ctx context.Context, stage schema.Stage, campaignID string, in agent.Input) (result agent.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s: %v", stage, r)
		}
	}()
	return d.handlers[stage].Run(ctx, campaignID, in), nil
}

// abort terminates the run after a driver-level error.
func (d *Driver) abort(campaignID string, start time.Time, err error) {
	d.cfg.Logger.Error("pipeline run aborted", "campaign_id", campaignID, "err", err)
	_ = d.cfg.Store.SetResult(campaignID, schema.ResultError, err.Error())
	_ = d.cfg.Store.SetStatus(campaignID, schema.CampaignFailed)
	d.publishDone(campaignID, schema.CampaignFailed, 0, start, err.Error())
}

func (d *Driver) publishDone(campaignID string, status schema.CampaignState, failed int, start time.Time, errMsg string) {
	if d.cfg.DoneSubject == "" {
		return
	}
	done := schema.CampaignDone{
		CampaignID:       campaignID,
		Status:           status,
		StagesFailed:     failed,
		ProcessingTimeMs: time.Since(start).Milliseconds(),
		Error:            errMsg,
		FailureType:      classifyFailure(errMsg),
		HappenedAt:       time.Now().Unix(),
	}
	if err := d.cfg.Bus.PublishJSON(d.cfg.DoneSubject, done); err != nil {
		d.cfg.Logger.Error("publish campaign done failed", "campaign_id", campaignID, "err", err)
	}
}

// classifyFailure sorts a terminal error into the failure taxonomy so
// consumers can decide whether a resubmission might succeed.
func classifyFailure(errMsg string) schema.FailureType {
	if errMsg == "" {
		return ""
	}
	for _, marker := range []string{"timeout", "deadline exceeded", "connection refused", "temporarily"} {
		if strings.Contains(errMsg, marker) {
			return schema.FailureTypeRetryable
		}
	}
	return schema.FailureTypePermanent
}
