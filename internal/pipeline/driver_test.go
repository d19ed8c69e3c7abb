package pipeline

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/zerotomarket/campaign-service/internal/agent"
	"github.com/zerotomarket/campaign-service/internal/provider"
	"github.com/zerotomarket/campaign-service/internal/store"
	"github.com/zerotomarket/campaign-service/pkg/schema"
)

type scriptedCompleter struct {
	fail func(req provider.Request) error
}

func (s *scriptedCompleter) Complete(ctx context.Context, req provider.Request) (string, error) {
	if s.fail != nil {
		if err := s.fail(req); err != nil {
			return "", err
		}
	}
	return "generated text", nil
}

func newTestDriver(t *testing.T, completer provider.Completer) (*Driver, *store.Memory) {
	t.Helper()
	m := store.NewMemory()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handlers := agent.Handlers(agent.Config{Store: m, Completer: completer, Logger: logger})
	return New(Config{Store: m, Handlers: handlers, Logger: logger}), m
}

func testProduct() schema.ProductInput {
	return schema.ProductInput{
		Name:           "Acme Rocket",
		Description:    "A faster onboarding tool",
		TargetAudience: "startup founders",
		Industry:       "saas",
	}
}

func TestRunCompletesCampaign(t *testing.T) {
	d, m := newTestDriver(t, &scriptedCompleter{})
	id := m.Create().ID

	d.Run(context.Background(), id, testProduct())

	record, err := m.Get(id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if record.Status != schema.CampaignCompleted {
		t.Fatalf("expected completed, got %s", record.Status)
	}
	for _, stage := range schema.Stages() {
		if record.Agents[stage].Status != schema.StageCompleted {
			t.Fatalf("stage %s not completed: %+v", stage, record.Agents[stage])
		}
	}

	for _, key := range []string{schema.ResultStrategist, schema.ResultResearcher, schema.ResultContent, schema.ResultCoordination} {
		if _, ok := record.Results[key]; !ok {
			t.Fatalf("missing result %q", key)
		}
	}
	coordination := record.Results[schema.ResultCoordination].(map[string]any)
	if _, ok := coordination["readiness_score"].(float64); !ok {
		t.Fatalf("readiness_score missing: %#v", coordination)
	}
}

func TestRunStageOrdering(t *testing.T) {
	d, m := newTestDriver(t, &scriptedCompleter{})
	id := m.Create().ID

	d.Run(context.Background(), id, testProduct())

	record, _ := m.Get(id)
	strategistDone := record.Agents[schema.StageStrategist].UpdatedAt
	researcherDone := record.Agents[schema.StageResearcher].UpdatedAt
	creatorDone := record.Agents[schema.StageCreator].UpdatedAt
	coordinatorDone := record.Agents[schema.StageCoordinator].UpdatedAt

	if creatorDone.Before(strategistDone) || creatorDone.Before(researcherDone) {
		t.Fatal("creator finished before phase 1")
	}
	if coordinatorDone.Before(creatorDone) {
		t.Fatal("coordinator finished before creator")
	}
}

func TestRunDegradesOnSingleStageFailure(t *testing.T) {
	completer := &scriptedCompleter{fail: func(req provider.Request) error {
		// Strategist is the only stage issuing a strategy-mode call with
		// temperature 0.7; fail just that one.
		if req.Mode == provider.ModeStrategy && req.Temperature == 0.7 {
			return errors.New("provider unavailable")
		}
		return nil
	}}
	d, m := newTestDriver(t, completer)
	id := m.Create().ID

	d.Run(context.Background(), id, testProduct())

	record, _ := m.Get(id)
	if record.Status != schema.CampaignCompleted {
		t.Fatalf("partial failure should still complete, got %s", record.Status)
	}
	if record.Agents[schema.StageStrategist].Status != schema.StageFailed {
		t.Fatal("strategist should be failed")
	}
	if _, ok := record.Results[schema.ResultStrategist]; ok {
		t.Fatal("failed strategist must not have a result")
	}
	if _, ok := record.Results[schema.ResultContent]; !ok {
		t.Fatal("creator should still run with partial inputs")
	}
}

func TestRunFailsWhenEveryStageFails(t *testing.T) {
	completer := &scriptedCompleter{fail: func(provider.Request) error {
		return errors.New("provider down")
	}}
	d, m := newTestDriver(t, completer)
	id := m.Create().ID

	d.Run(context.Background(), id, testProduct())

	record, _ := m.Get(id)
	if record.Status != schema.CampaignFailed {
		t.Fatalf("all-stage failure should fail the campaign, got %s", record.Status)
	}
}

type panickingHandler struct {
	stage schema.Stage
}

func (h *panickingHandler) Stage() schema.Stage { return h.stage }
func (h *panickingHandler) ResultKey() string   { return string(h.stage) }
func (h *panickingHandler) Run(context.Context, string, agent.Input) agent.Result {
	panic("nil map write")
}

func TestRunAbortsOnHandlerPanic(t *testing.T) {
	m := store.NewMemory()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handlers := agent.Handlers(agent.Config{Store: m, Completer: &scriptedCompleter{}, Logger: logger})
	// Swap the creator for one that panics.
	for i, h := range handlers {
		if h.Stage() == schema.StageCreator {
			handlers[i] = &panickingHandler{stage: schema.StageCreator}
		}
	}
	d := New(Config{Store: m, Handlers: handlers, Logger: logger})
	id := m.Create().ID

	d.Run(context.Background(), id, testProduct())

	record, _ := m.Get(id)
	if record.Status != schema.CampaignFailed {
		t.Fatalf("panic should fail the campaign, got %s", record.Status)
	}
	msg, ok := record.Results[schema.ResultError].(string)
	if !ok || !strings.Contains(msg, "nil map write") {
		t.Fatalf("panic message not recorded: %#v", record.Results)
	}
}

func TestClassifyFailure(t *testing.T) {
	if got := classifyFailure(""); got != "" {
		t.Fatalf("no error must not classify, got %q", got)
	}
	if got := classifyFailure("strategist: context deadline exceeded"); got != schema.FailureTypeRetryable {
		t.Fatalf("timeout should be retryable, got %q", got)
	}
	if got := classifyFailure("creator: nil map write"); got != schema.FailureTypePermanent {
		t.Fatalf("unknown errors are permanent, got %q", got)
	}
}

func TestRunStatusIsTerminallySticky(t *testing.T) {
	d, m := newTestDriver(t, &scriptedCompleter{})
	id := m.Create().ID

	d.Run(context.Background(), id, testProduct())
	first, _ := m.Get(id)

	// A second run against the same id must not move the record out of its
	// terminal state.
	d.Run(context.Background(), id, testProduct())
	second, _ := m.Get(id)

	if first.Status != second.Status {
		t.Fatalf("terminal status changed: %s -> %s", first.Status, second.Status)
	}
}
