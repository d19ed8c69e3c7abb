// internal/queue/nats.go
package queue

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/zerotomarket/campaign-service/internal/bus"
	"github.com/zerotomarket/campaign-service/pkg/schema"
)

// NATS publishes jobs to a subject and consumes them through a queue group,
// so exactly one worker picks up each campaign.
type NATS struct {
	client  *bus.Client
	subject string
	sub     *nats.Subscription
	logger  *slog.Logger
}

// NewNATS subscribes the given queue group and returns a queue whose Enqueue
// publishes to the subject. runTimeout bounds each consumed pipeline run.
func NewNATS(client *bus.Client, subject, group string, runTimeout time.Duration, run RunFunc, logger *slog.Logger) (*NATS, error) {
	sub, err := client.QueueSubscribeJSON(subject, group, runTimeout, func(ctx context.Context, data []byte) {
		var job schema.CampaignRequested
		if err := json.Unmarshal(data, &job); err != nil {
			logger.Error("discarding malformed campaign job", "subject", subject, "err", err)
			return
		}
		run(ctx, job)
	})
	if err != nil {
		return nil, err
	}
	return &NATS{client: client, subject: subject, sub: sub, logger: logger}, nil
}

func (q *NATS) Enqueue(ctx context.Context, job schema.CampaignRequested) error {
	return q.client.PublishJSON(q.subject, job)
}

func (q *NATS) Close(ctx context.Context) error {
	if q.sub == nil {
		return nil
	}
	return q.sub.Drain()
}
