// internal/queue/memory.go
package queue

import (
	"context"
	"log/slog"
	"sync"

	"github.com/zerotomarket/campaign-service/pkg/schema"
)

// Memory is a channel-backed queue consumed by a fixed pool of worker
// goroutines inside the same process as the campaign store.
type Memory struct {
	jobs   chan schema.CampaignRequested
	run    RunFunc
	logger *slog.Logger

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

// NewMemory starts workers goroutines consuming a buffer-deep queue.
func NewMemory(workers, buffer int, run RunFunc, logger *slog.Logger) *Memory {
	if workers <= 0 {
		workers = 1
	}
	if buffer <= 0 {
		buffer = 1024
	}

	m := &Memory{
		jobs:   make(chan schema.CampaignRequested, buffer),
		run:    run,
		logger: logger,
	}
	for i := 0; i < workers; i++ {
		m.wg.Add(1)
		go m.worker(i)
	}
	return m
}

func (m *Memory) worker(n int) {
	defer m.wg.Done()
	for job := range m.jobs {
		m.logger.Debug("worker picked up job", "worker", n, "campaign_id", job.CampaignID)
		// Detached from the HTTP request on purpose: the run outlives it.
		m.run(context.Background(), job)
	}
}

func (m *Memory) Enqueue(ctx context.Context, job schema.CampaignRequested) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	select {
	case m.jobs <- job:
		return nil
	default:
		return ErrFull
	}
}

func (m *Memory) Close(ctx context.Context) error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil
	}
	m.closed = true
	close(m.jobs)
	m.mu.Unlock()

	done := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
