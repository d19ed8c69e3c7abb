// cmd/server/config.go
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/zerotomarket/campaign-service/internal/provider"
)

type config struct {
	Port            int
	FrontendOrigins []string

	ProviderKind    provider.Kind
	ProviderAPIKey  string
	ProviderModel   string
	ProviderTimeout time.Duration
	OfflineLatency  time.Duration

	CreatorPace     time.Duration
	PipelineWorkers int
	QueueBuffer     int
	CampaignTTL     time.Duration

	NATSURL          string
	JobSubject       string
	WorkerQueue      string
	LifecycleSubject string
	DoneSubject      string
	RunTimeout       time.Duration
}

func loadConfig() (config, error) {
	cfg := config{
		FrontendOrigins:  splitOrigins(getenv("FRONTEND_ORIGINS", "http://localhost:3000,http://127.0.0.1:3000")),
		ProviderModel:    getenv("AI_MODEL", ""),
		NATSURL:          getenv("NATS_URL", ""),
		JobSubject:       getenv("CAMPAIGN_JOB_SUBJECT", "campaigns.requested"),
		WorkerQueue:      getenv("CAMPAIGN_WORKER_QUEUE", "campaign-workers"),
		LifecycleSubject: getenv("CAMPAIGN_LIFECYCLE_SUBJECT", "campaigns.lifecycle"),
		DoneSubject:      getenv("CAMPAIGN_DONE_SUBJECT", "campaigns.done"),
	}

	port, err := parsePositiveInt(getenv("PORT", "8000"), "PORT")
	if err != nil {
		return config{}, err
	}
	cfg.Port = port

	workers, err := parsePositiveInt(getenv("PIPELINE_WORKERS", "4"), "PIPELINE_WORKERS")
	if err != nil {
		return config{}, err
	}
	cfg.PipelineWorkers = workers

	buffer, err := parsePositiveInt(getenv("QUEUE_BUFFER", "1024"), "QUEUE_BUFFER")
	if err != nil {
		return config{}, err
	}
	cfg.QueueBuffer = buffer

	providerTimeout, err := parsePositiveInt(getenv("PROVIDER_TIMEOUT_S", "60"), "PROVIDER_TIMEOUT_S")
	if err != nil {
		return config{}, err
	}
	cfg.ProviderTimeout = time.Duration(providerTimeout) * time.Second

	runTimeout, err := parsePositiveInt(getenv("PIPELINE_RUN_TIMEOUT_S", "600"), "PIPELINE_RUN_TIMEOUT_S")
	if err != nil {
		return config{}, err
	}
	cfg.RunTimeout = time.Duration(runTimeout) * time.Second

	pace, err := parseNonNegativeInt(getenv("CREATOR_PACE_MS", "200"), "CREATOR_PACE_MS")
	if err != nil {
		return config{}, err
	}
	cfg.CreatorPace = time.Duration(pace) * time.Millisecond

	offlineLatency, err := parseNonNegativeInt(getenv("OFFLINE_LATENCY_MS", "150"), "OFFLINE_LATENCY_MS")
	if err != nil {
		return config{}, err
	}
	cfg.OfflineLatency = time.Duration(offlineLatency) * time.Millisecond

	ttl, err := parseNonNegativeInt(getenv("CAMPAIGN_TTL_MIN", "0"), "CAMPAIGN_TTL_MIN")
	if err != nil {
		return config{}, err
	}
	cfg.CampaignTTL = time.Duration(ttl) * time.Minute

	cfg.ProviderKind, cfg.ProviderAPIKey = resolveProvider()
	return cfg, nil
}

// resolveProvider picks the completer implementation. An explicit AI_PROVIDER
// wins even without a key (calls then fail individually); otherwise whichever
// key is present decides, falling back to the offline templates.
func resolveProvider() (provider.Kind, string) {
	openaiKey := os.Getenv("OPENAI_API_KEY")
	geminiKey := os.Getenv("GEMINI_API_KEY")

	switch provider.Kind(strings.ToLower(getenv("AI_PROVIDER", ""))) {
	case provider.KindOpenAI:
		return provider.KindOpenAI, openaiKey
	case provider.KindGemini:
		return provider.KindGemini, geminiKey
	case provider.KindOffline:
		return provider.KindOffline, ""
	}

	if openaiKey != "" {
		return provider.KindOpenAI, openaiKey
	}
	if geminiKey != "" {
		return provider.KindGemini, geminiKey
	}
	return provider.KindOffline, ""
}

func splitOrigins(raw string) []string {
	var origins []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

func parsePositiveInt(value string, name string) (int, error) {
	v, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}
	if v <= 0 {
		return 0, fmt.Errorf("%s must be greater than zero (got %d)", name, v)
	}
	return v, nil
}

func parseNonNegativeInt(value string, name string) (int, error) {
	v, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}
	if v < 0 {
		return 0, fmt.Errorf("%s must not be negative (got %d)", name, v)
	}
	return v, nil
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}
