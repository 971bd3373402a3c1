package httpapi

import (
	"log"
	"net/http"
	"strings"

	"github.com/planwise/planwise/internal/assist"
)

type dailyPlanRequest struct {
	Prompt string `json:"prompt"`
}

func (s *Server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	id, _ := callerIdentity(r)
	text, err := s.assist.Suggest(r.Context(), id.UserID)
	if err != nil {
		log.Printf("ai suggest failed: %v", err)
		respondError(w, http.StatusInternalServerError, "provider_error", "Failed to generate suggestions")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"suggestions": text})
}

func (s *Server) handlePrioritize(w http.ResponseWriter, r *http.Request) {
	id, _ := callerIdentity(r)
	annotations, err := s.assist.Prioritize(r.Context(), id.UserID)
	if err != nil {
		log.Printf("ai sort failed: %v", err)
		respondError(w, http.StatusInternalServerError, "provider_error", "Failed to prioritize tasks")
		return
	}
	if annotations == nil {
		annotations = []assist.Annotation{}
	}
	respondJSON(w, http.StatusOK, map[string]any{"prioritized": annotations})
}

func (s *Server) handleDailyPlan(w http.ResponseWriter, r *http.Request) {
	id, _ := callerIdentity(r)

	var req dailyPlanRequest
	if err := decodeJSON(r, &req); err != nil || strings.TrimSpace(req.Prompt) == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "prompt is required")
		return
	}

	text, err := s.assist.DailyPlan(r.Context(), id.UserID, req.Prompt)
	if err != nil {
		log.Printf("ai plan failed: %v", err)
		respondError(w, http.StatusInternalServerError, "provider_error", "Failed to generate plan")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"plan": text})
}
