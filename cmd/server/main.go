// cmd/server/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/zerotomarket/campaign-service/internal/agent"
	"github.com/zerotomarket/campaign-service/internal/bus"
	"github.com/zerotomarket/campaign-service/internal/pipeline"
	"github.com/zerotomarket/campaign-service/internal/provider"
	"github.com/zerotomarket/campaign-service/internal/queue"
	"github.com/zerotomarket/campaign-service/internal/server"
	"github.com/zerotomarket/campaign-service/internal/store"
	"github.com/zerotomarket/campaign-service/pkg/schema"
)

func main() {
	_ = godotenv.Load()

	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := loadConfig()
	if err != nil {
		fatal(logger, "load config", err)
	}
	logger.Info("server starting",
		"port", cfg.Port,
		"provider", cfg.ProviderKind,
		"workers", cfg.PipelineWorkers,
		"nats_url", cfg.NATSURL)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	campaigns := store.NewMemory()
	if cfg.CampaignTTL > 0 {
		go sweepExpired(ctx, campaigns, cfg.CampaignTTL, logger)
	}

	completer, info, err := provider.New(ctx, provider.Config{
		Kind:           cfg.ProviderKind,
		APIKey:         cfg.ProviderAPIKey,
		Model:          cfg.ProviderModel,
		Timeout:        cfg.ProviderTimeout,
		OfflineLatency: cfg.OfflineLatency,
	})
	if err != nil {
		fatal(logger, "build completion provider", err, "provider", cfg.ProviderKind)
	}
	if !info.Configured {
		logger.Warn("provider API key not configured, completion calls will fail", "provider", info.Kind)
	}
	logger.Info("completion provider ready", "provider", info.Kind, "model", info.Model)

	var events *bus.Client // nil drops publishes
	if cfg.NATSURL != "" {
		events, err = bus.Connect(cfg.NATSURL)
		if err != nil {
			fatal(logger, "connect to NATS", err, "nats_url", cfg.NATSURL)
		}
		logger.Info("connected to NATS", "nats_url", cfg.NATSURL)
		defer events.Close()
	}

	handlers := agent.Handlers(agent.Config{
		Store:     campaigns,
		Completer: completer,
		Logger:    logger,
		Pace:      cfg.CreatorPace,
		Notify: func(ev schema.StageLifecycleEvent) {
			if err := events.PublishJSON(cfg.LifecycleSubject, ev); err != nil {
				logger.Warn("publish lifecycle event failed", "subject", cfg.LifecycleSubject, "err", err)
			}
		},
	})
	driver := pipeline.New(pipeline.Config{
		Store:       campaigns,
		Handlers:    handlers,
		Logger:      logger,
		Bus:         events,
		DoneSubject: cfg.DoneSubject,
	})
	run := func(runCtx context.Context, job schema.CampaignRequested) {
		driver.Run(runCtx, job.CampaignID, job.Product)
	}

	var jobs queue.Queue
	if cfg.NATSURL != "" {
		jobs, err = queue.NewNATS(events, cfg.JobSubject, cfg.WorkerQueue, cfg.RunTimeout, run, logger)
		if err != nil {
			fatal(logger, "subscribe campaign workers", err, "subject", cfg.JobSubject, "queue", cfg.WorkerQueue)
		}
		logger.Info("consuming campaign jobs", "subject", cfg.JobSubject, "queue", cfg.WorkerQueue)
	} else {
		jobs = queue.NewMemory(cfg.PipelineWorkers, cfg.QueueBuffer, run, logger)
		logger.Info("in-process campaign workers started", "workers", cfg.PipelineWorkers, "buffer", cfg.QueueBuffer)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	srv := server.New(server.Config{
		Store:          campaigns,
		Queue:          jobs,
		Logger:         logger,
		AllowedOrigins: cfg.FrontendOrigins,
		Provider:       info,
		Registry:       registry,
	})
	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: srv.Handler(),
	}

	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			fatal(logger, "http server", err, "addr", httpServer.Addr)
		}
	}()
	logger.Info("listening", "addr", httpServer.Addr)

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown failed", "err", err)
	}
	// Let in-flight campaign runs finish before dropping the store.
	if err := jobs.Close(shutdownCtx); err != nil {
		logger.Error("queue drain failed", "err", err)
	}
	logger.Info("stopped")
}

// sweepExpired periodically drops terminal campaigns older than the TTL.
func sweepExpired(ctx context.Context, campaigns *store.Memory, ttl time.Duration, logger *slog.Logger) {
	interval := ttl / 4
	if interval < time.Minute {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := campaigns.EvictExpired(ttl); n > 0 {
				logger.Info("evicted expired campaigns", "count", n, "tracked", campaigns.Len())
			}
		}
	}
}

func fatal(logger *slog.Logger, msg string, err error, attrs ...any) {
	attrs = append(attrs, "err", err)
	logger.Error(msg, attrs...)
	os.Exit(1)
}
