// pkg/schema/events.go
package schema

// CampaignRequested is the job published when a campaign is accepted over
// HTTP. The pipeline worker consumes it and drives the agent workflow.
type CampaignRequested struct {
	CampaignID  string       `json:"campaign_id"`
	Product     ProductInput `json:"product"`
	RequestedAt int64        `json:"requested_at"`
}

type FailureType string

const (
	FailureTypeRetryable  FailureType = "retryable"
	FailureTypePermanent  FailureType = "permanent"
	FailureTypeValidation FailureType = "validation"
)

// StageLifecycleEvent mirrors every stage status write so external consumers
// can follow a campaign without polling the HTTP surface.
type StageLifecycleEvent struct {
	CampaignID string     `json:"campaign_id"`
	Stage      Stage      `json:"stage"`
	State      StageState `json:"state"`
	Progress   int        `json:"progress"`
	Message    string     `json:"message,omitempty"`
	HappenedAt int64      `json:"happened_at"`
}

// CampaignDone is published once per campaign when the pipeline finishes.
type CampaignDone struct {
	CampaignID       string        `json:"campaign_id"`
	Status           CampaignState `json:"status"`
	StagesFailed     int           `json:"stages_failed"`
	ProcessingTimeMs int64         `json:"processing_time_ms"`
	Error            string        `json:"error,omitempty"`
	FailureType      FailureType   `json:"failure_type,omitempty"`
	HappenedAt       int64         `json:"happened_at"`
}
