// internal/store/memory.go
package store

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/zerotomarket/campaign-service/pkg/schema"
)

// Memory is the in-process Store used by the single-binary deployment.
// Records live until evicted; EvictExpired is wired to a ticker in main when
// a TTL is configured.
type Memory struct {
	mu        sync.RWMutex
	campaigns map[string]*schema.Campaign
	now       func() time.Time
}

func NewMemory() *Memory {
	return &Memory{
		campaigns: make(map[string]*schema.Campaign),
		now:       time.Now,
	}
}

func (m *Memory) Create() schema.Campaign {
	agents := make(map[schema.Stage]schema.AgentStatus, 4)
	for _, stage := range schema.Stages() {
		agents[stage] = schema.AgentStatus{Status: schema.StagePending, Progress: 0}
	}

	record := &schema.Campaign{
		ID:        uuid.New().String(),
		Status:    schema.CampaignInitializing,
		Agents:    agents,
		CreatedAt: m.now().UTC(),
	}

	m.mu.Lock()
	m.campaigns[record.ID] = record
	m.mu.Unlock()

	return snapshot(record)
}

func (m *Memory) Get(id string) (schema.Campaign, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.campaigns[id]
	if !ok {
		return schema.Campaign{}, ErrNotFound
	}
	return snapshot(record), nil
}

func (m *Memory) UpdateStage(id string, stage schema.Stage, patch StagePatch) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	record, ok := m.campaigns[id]
	if !ok {
		return ErrNotFound
	}

	status := record.Agents[stage]
	if patch.State != "" {
		status.Status = patch.State
	}
	status.Progress = patch.Progress
	status.Message = patch.Message
	status.UpdatedAt = m.now().UTC()
	record.Agents[stage] = status
	return nil
}

func (m *Memory) SetResult(id string, key string, payload any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	record, ok := m.campaigns[id]
	if !ok {
		return ErrNotFound
	}
	if record.Results == nil {
		record.Results = make(map[string]any)
	}
	record.Results[key] = payload
	return nil
}

func (m *Memory) SetStatus(id string, status schema.CampaignState) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	record, ok := m.campaigns[id]
	if !ok {
		return ErrNotFound
	}
	if record.Status.Terminal() {
		return nil
	}
	record.Status = status
	return nil
}

func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.campaigns)
}

// EvictExpired removes terminal records created before now-ttl and returns
// how many were dropped. Running campaigns are never evicted; their stage
// writes would otherwise race the sweep.
func (m *Memory) EvictExpired(ttl time.Duration) int {
	cutoff := m.now().Add(-ttl)

	m.mu.Lock()
	defer m.mu.Unlock()

	evicted := 0
	for id, record := range m.campaigns {
		if record.Status.Terminal() && record.CreatedAt.Before(cutoff) {
			delete(m.campaigns, id)
			evicted++
		}
	}
	return evicted
}

func snapshot(record *schema.Campaign) schema.Campaign {
	out := *record
	out.Agents = make(map[schema.Stage]schema.AgentStatus, len(record.Agents))
	for stage, status := range record.Agents {
		out.Agents[stage] = status
	}
	if record.Results != nil {
		out.Results = make(map[string]any, len(record.Results))
		for key, value := range record.Results {
			out.Results[key] = value
		}
	}
	return out
}
