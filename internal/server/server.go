// internal/server/server.go
package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	metricsprom "github.com/slok/go-http-metrics/metrics/prometheus"
	metricsmw "github.com/slok/go-http-metrics/middleware"
	metricsstd "github.com/slok/go-http-metrics/middleware/std"

	"github.com/zerotomarket/campaign-service/internal/provider"
	"github.com/zerotomarket/campaign-service/internal/queue"
	"github.com/zerotomarket/campaign-service/internal/store"
)

// Config wires the HTTP surface.
type Config struct {
	Store  store.Store
	Queue  queue.Queue
	Logger *slog.Logger
	// AllowedOrigins restricts CORS to the demo frontend.
	AllowedOrigins []string
	// Provider describes the configured completer for /health.
	Provider provider.Info
	// Registry, when set, enables the metrics middleware and /metrics.
	Registry *prometheus.Registry
}

// Server exposes campaign creation and status retrieval over HTTP.
type Server struct {
	cfg Config
}

func New(cfg Config) *Server {
	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	}
	return &Server{cfg: cfg}
}

// Handler builds the chi router with logging, CORS and metrics middleware.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	requestLogger := httplog.NewLogger("campaign-service", httplog.Options{
		LogLevel: slog.LevelInfo,
		Concise:  true,
	})
	r.Use(httplog.RequestLogger(requestLogger))
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	if s.cfg.Registry != nil {
		mdlw := metricsmw.New(metricsmw.Config{
			Recorder: metricsprom.NewRecorder(metricsprom.Config{Registry: s.cfg.Registry}),
		})
		r.Use(metricsstd.HandlerProvider("", mdlw))
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.cfg.Registry, promhttp.HandlerOpts{}))
	}

	r.Post("/start-campaign", s.startCampaign)
	r.Get("/campaign/{campaign_id}", s.getCampaign)
	r.Get("/health", s.health)

	return r
}
