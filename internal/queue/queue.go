// internal/queue/queue.go
package queue

import (
	"context"
	"errors"

	"github.com/zerotomarket/campaign-service/pkg/schema"
)

// ErrFull is returned when a job cannot be accepted without blocking the
// HTTP handler that enqueues it.
var ErrFull = errors.New("pipeline queue full")

// ErrClosed is returned when the queue is shutting down.
var ErrClosed = errors.New("pipeline queue closed")

// RunFunc drives one campaign pipeline run for a consumed job.
type RunFunc func(ctx context.Context, job schema.CampaignRequested)

// Queue decouples campaign creation from pipeline execution: the HTTP
// handler enqueues, a worker consumes. The in-process implementation is the
// default; the NATS implementation hands jobs to a queue group.
type Queue interface {
	Enqueue(ctx context.Context, job schema.CampaignRequested) error
	// Close stops accepting jobs and waits for in-flight runs, up to the
	// context deadline.
	Close(ctx context.Context) error
}
