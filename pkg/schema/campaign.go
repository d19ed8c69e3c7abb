// pkg/schema/campaign.go
package schema

import "time"

// Stage identifies one of the four agent roles in the campaign pipeline.
type Stage string

const (
	StageStrategist  Stage = "strategist"
	StageResearcher  Stage = "researcher"
	StageCreator     Stage = "creator"
	StageCoordinator Stage = "coordinator"
)

// Stages returns the pipeline stages in execution order. Strategist and
// researcher run concurrently but share the first phase.
func Stages() []Stage {
	return []Stage{StageStrategist, StageResearcher, StageCreator, StageCoordinator}
}

// StageState is the lifecycle state of a single agent within a campaign.
type StageState string

const (
	StagePending   StageState = "pending"
	StageRunning   StageState = "running"
	StageCompleted StageState = "completed"
	StageFailed    StageState = "failed"
)

// Terminal reports whether a stage can no longer change state.
func (s StageState) Terminal() bool {
	return s == StageCompleted || s == StageFailed
}

// CampaignState is the overall state of a campaign run.
type CampaignState string

const (
	CampaignInitializing CampaignState = "initializing"
	CampaignRunning      CampaignState = "running"
	CampaignCompleted    CampaignState = "completed"
	CampaignFailed       CampaignState = "failed"
)

// Terminal reports whether the campaign has reached a final state.
func (s CampaignState) Terminal() bool {
	return s == CampaignCompleted || s == CampaignFailed
}

// ProductInput is the user-submitted product description a campaign is built from.
type ProductInput struct {
	Name           string `json:"name"`
	Description    string `json:"description"`
	TargetAudience string `json:"target_audience"`
	Industry       string `json:"industry,omitempty"`
}

// AgentStatus tracks one agent's progress within a campaign.
type AgentStatus struct {
	Status    StageState `json:"status"`
	Progress  int        `json:"progress"`
	Message   string     `json:"message,omitempty"`
	UpdatedAt time.Time  `json:"updated_at,omitzero"`
}

// Campaign is the full status and result record for one submitted product.
// It is both the store record and the JSON body of GET /campaign/{id}.
type Campaign struct {
	ID        string                `json:"campaign_id"`
	Status    CampaignState         `json:"status"`
	Agents    map[Stage]AgentStatus `json:"agents"`
	Results   map[string]any        `json:"results,omitempty"`
	CreatedAt time.Time             `json:"created_at"`
}

// Result keys within Campaign.Results. Strategist and researcher store under
// their stage name; creator and coordinator use the names the frontend reads.
const (
	ResultStrategist   = "strategist"
	ResultResearcher   = "researcher"
	ResultContent      = "content"
	ResultCoordination = "coordination"
	ResultError        = "error"
)
