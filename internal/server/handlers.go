// internal/server/handlers.go
package server

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/zerotomarket/campaign-service/internal/store"
	"github.com/zerotomarket/campaign-service/pkg/schema"
)

type startResponse struct {
	CampaignID string `json:"campaign_id"`
	Status     string `json:"status"`
	Message    string `json:"message"`
}

type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error   string       `json:"error"`
	Details []fieldError `json:"details,omitempty"`
}

func (s *Server) startCampaign(w http.ResponseWriter, r *http.Request) {
	var input schema.ProductInput
	if err := render.DecodeJSON(r.Body, &input); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, errorResponse{Error: "invalid JSON body"})
		return
	}

	if details := validateProduct(input); len(details) > 0 {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, errorResponse{Error: "validation failed", Details: details})
		return
	}
	if strings.TrimSpace(input.Industry) == "" {
		input.Industry = "tech"
	}

	record := s.cfg.Store.Create()
	job := schema.CampaignRequested{
		CampaignID:  record.ID,
		Product:     input,
		RequestedAt: time.Now().Unix(),
	}
	if err := s.cfg.Queue.Enqueue(r.Context(), job); err != nil {
		s.cfg.Logger.Error("enqueue campaign failed", "campaign_id", record.ID, "err", err)
		_ = s.cfg.Store.SetStatus(record.ID, schema.CampaignFailed)
		render.Status(r, http.StatusServiceUnavailable)
		render.JSON(w, r, errorResponse{Error: "campaign could not be scheduled"})
		return
	}

	s.cfg.Logger.Info("campaign accepted", "campaign_id", record.ID, "product", input.Name)
	render.JSON(w, r, startResponse{
		CampaignID: record.ID,
		Status:     "started",
		Message:    "Multi-agent campaign workflow initiated",
	})
}

func (s *Server) getCampaign(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "campaign_id")
	record, err := s.cfg.Store.Get(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, errorResponse{Error: "Campaign not found"})
			return
		}
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, errorResponse{Error: "campaign lookup failed"})
		return
	}
	render.JSON(w, r, record)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]any{
		"status":  "healthy",
		"message": "campaign service ready",
		"agents": []string{
			"StrategistAgent", "ResearcherAgent", "CreatorAgent", "CoordinatorAgent",
		},
		"ai_model":            fmt.Sprintf("%s/%s", s.cfg.Provider.Kind, s.cfg.Provider.Model),
		"provider_configured": s.cfg.Provider.Configured,
		"tracked_campaigns":   s.cfg.Store.Len(),
		"timestamp":           time.Now().UTC().Format(time.RFC3339),
	})
}

func validateProduct(in schema.ProductInput) []fieldError {
	var details []fieldError
	if strings.TrimSpace(in.Name) == "" {
		details = append(details, fieldError{Field: "name", Message: "Product name is required"})
	}
	if strings.TrimSpace(in.Description) == "" {
		details = append(details, fieldError{Field: "description", Message: "Product description is required"})
	}
	if strings.TrimSpace(in.TargetAudience) == "" {
		details = append(details, fieldError{Field: "target_audience", Message: "Target audience is required"})
	}
	return details
}
