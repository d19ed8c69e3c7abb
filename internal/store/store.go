// internal/store/store.go
package store

import (
	"errors"

	"github.com/zerotomarket/campaign-service/pkg/schema"
)

// ErrNotFound is returned when a campaign id is unknown to the store.
var ErrNotFound = errors.New("campaign not found")

// StagePatch is a partial update applied to one agent's status.
type StagePatch struct {
	State    schema.StageState
	Progress int
	Message  string
}

// Store holds campaign records. Agents and the pipeline driver write to it,
// the HTTP surface reads from it. Implementations must be safe for
// concurrent use.
type Store interface {
	// Create inserts a fresh record with a newly generated id, overall
	// status "initializing" and all four stages pending. It never fails
	// and never reuses an id.
	Create() schema.Campaign

	// Get returns a snapshot of the record. Mutating the snapshot does not
	// affect the stored record.
	Get(id string) (schema.Campaign, error)

	// UpdateStage merges the patch into one agent's status and stamps
	// updated_at. Unknown ids return ErrNotFound; callers on the pipeline
	// path treat that as a skip, never a crash.
	UpdateStage(id string, stage schema.Stage, patch StagePatch) error

	// SetResult stores a stage's result payload under the given key.
	SetResult(id string, key string, payload any) error

	// SetStatus sets the overall campaign status. Transitions out of a
	// terminal state are ignored.
	SetStatus(id string, status schema.CampaignState) error

	// Len reports how many records the store currently tracks.
	Len() int
}
