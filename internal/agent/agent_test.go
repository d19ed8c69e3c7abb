package agent

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/zerotomarket/campaign-service/internal/provider"
	"github.com/zerotomarket/campaign-service/internal/store"
	"github.com/zerotomarket/campaign-service/pkg/schema"
)

type stubCompleter struct {
	mu    sync.Mutex
	calls []provider.Request
	reply func(req provider.Request) (string, error)
}

func (s *stubCompleter) Complete(ctx context.Context, req provider.Request) (string, error) {
	s.mu.Lock()
	s.calls = append(s.calls, req)
	s.mu.Unlock()

	if s.reply != nil {
		return s.reply(req)
	}
	return "stub completion", nil
}

func testConfig(t *testing.T, completer provider.Completer) (Config, *store.Memory) {
	t.Helper()
	m := store.NewMemory()
	return Config{
		Store:     m,
		Completer: completer,
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}, m
}

func product() schema.ProductInput {
	return schema.ProductInput{
		Name:           "Acme Rocket",
		Description:    "A faster onboarding tool",
		TargetAudience: "startup founders",
		Industry:       "saas",
	}
}

func TestStrategistSuccess(t *testing.T) {
	stub := &stubCompleter{}
	cfg, m := testConfig(t, stub)
	id := m.Create().ID

	h := &Strategist{base: base{cfg: cfg}}
	result := h.Run(context.Background(), id, Input{Product: product()})

	if result.Failed() {
		t.Fatalf("unexpected failure: %v", result["error"])
	}
	if result["strategy_content"] != "stub completion" {
		t.Fatalf("strategy_content missing: %#v", result)
	}

	record, _ := m.Get(id)
	status := record.Agents[schema.StageStrategist]
	if status.Status != schema.StageCompleted || status.Progress != 100 {
		t.Fatalf("stage not completed: %+v", status)
	}
	stored, ok := record.Results[schema.ResultStrategist].(map[string]any)
	if !ok || stored["value_proposition"] == "" {
		t.Fatalf("stored result malformed: %#v", record.Results)
	}
}

func TestStrategistProviderFailure(t *testing.T) {
	stub := &stubCompleter{reply: func(provider.Request) (string, error) {
		return "", errors.New("connection refused")
	}}
	cfg, m := testConfig(t, stub)
	id := m.Create().ID

	h := &Strategist{base: base{cfg: cfg}}
	result := h.Run(context.Background(), id, Input{Product: product()})

	if !result.Failed() {
		t.Fatal("expected error-bearing result")
	}

	record, _ := m.Get(id)
	status := record.Agents[schema.StageStrategist]
	if status.Status != schema.StageFailed || status.Progress != 0 {
		t.Fatalf("stage should be failed/0: %+v", status)
	}
	if status.Message == "" {
		t.Fatal("failure message not recorded")
	}
	if _, ok := record.Results[schema.ResultStrategist]; ok {
		t.Fatal("failed stage must not store a result")
	}
}

func TestCreatorProducesAllPlatforms(t *testing.T) {
	stub := &stubCompleter{}
	cfg, m := testConfig(t, stub)
	id := m.Create().ID

	h := &Creator{base: base{cfg: cfg}}
	result := h.Run(context.Background(), id, Input{
		Product:  product(),
		Strategy: Result{"marketing_angle": "speed", "tone": "casual"},
	})

	if result.Failed() {
		t.Fatalf("unexpected failure: %v", result["error"])
	}
	if got := CountPieces(result); got != len(Platforms) {
		t.Fatalf("expected %d pieces, got %d", len(Platforms), got)
	}
	if len(stub.calls) != len(Platforms) {
		t.Fatalf("expected one provider call per platform, got %d", len(stub.calls))
	}
	for _, call := range stub.calls {
		if call.Mode != provider.ModeContent {
			t.Fatalf("creator should use content mode, got %s", call.Mode)
		}
	}

	record, _ := m.Get(id)
	if record.Agents[schema.StageCreator].Status != schema.StageCompleted {
		t.Fatalf("creator stage not completed: %+v", record.Agents[schema.StageCreator])
	}
}

func TestCreatorFailsOnPlatformError(t *testing.T) {
	calls := 0
	stub := &stubCompleter{reply: func(provider.Request) (string, error) {
		calls++
		if calls == 3 {
			return "", errors.New("rate limited")
		}
		return "copy", nil
	}}
	cfg, m := testConfig(t, stub)
	id := m.Create().ID

	h := &Creator{base: base{cfg: cfg}}
	result := h.Run(context.Background(), id, Input{Product: product()})

	if !result.Failed() {
		t.Fatal("expected failure once a platform call errors")
	}
	record, _ := m.Get(id)
	if record.Agents[schema.StageCreator].Status != schema.StageFailed {
		t.Fatal("creator stage should be failed")
	}
}

func TestCoordinatorReadinessScore(t *testing.T) {
	stub := &stubCompleter{}
	cfg, m := testConfig(t, stub)
	id := m.Create().ID

	h := &Coordinator{base: base{cfg: cfg}}
	full := Input{
		Product:  product(),
		Strategy: Result{"value_proposition": "vp"},
		Research: Result{"market_trends": "up"},
		Content:  Result{"twitter": "a", "linkedin": "b", "blog": "c", "email": "d"},
	}
	result := h.Run(context.Background(), id, full)

	score, ok := result["readiness_score"].(float64)
	if !ok {
		t.Fatalf("readiness_score missing or not numeric: %#v", result)
	}
	if score != 10 {
		t.Fatalf("full campaign should score 10, got %v", score)
	}
	if result["campaign_ready"] != true {
		t.Fatal("campaign with content should be ready")
	}
}

func TestCoordinatorScoresPartialFailures(t *testing.T) {
	stub := &stubCompleter{}
	cfg, m := testConfig(t, stub)
	id := m.Create().ID

	h := &Coordinator{base: base{cfg: cfg}}
	partial := Input{
		Product:  product(),
		Strategy: Result{"error": "provider down"},
		Research: nil,
		Content:  Result{"twitter": "a"},
	}
	result := h.Run(context.Background(), id, partial)

	score := result["readiness_score"].(float64)
	if score != 3 {
		t.Fatalf("expected score 3 (base 2 + 1 piece), got %v", score)
	}
}

func TestSetStageNotifies(t *testing.T) {
	stub := &stubCompleter{}
	cfg, m := testConfig(t, stub)
	var events []schema.StageLifecycleEvent
	cfg.Notify = func(ev schema.StageLifecycleEvent) { events = append(events, ev) }
	id := m.Create().ID

	h := &Strategist{base: base{cfg: cfg}}
	h.Run(context.Background(), id, Input{Product: product()})

	if len(events) == 0 {
		t.Fatal("expected lifecycle events")
	}
	last := events[len(events)-1]
	if last.State != schema.StageCompleted || last.CampaignID != id {
		t.Fatalf("unexpected final event: %+v", last)
	}
}

func TestSetStageUnknownCampaignDoesNotPanic(t *testing.T) {
	stub := &stubCompleter{}
	cfg, _ := testConfig(t, stub)

	h := &Strategist{base: base{cfg: cfg}}
	result := h.Run(context.Background(), "evicted-id", Input{Product: product()})
	if result.Failed() {
		t.Fatalf("missing record should not fail the handler: %v", result["error"])
	}
}
