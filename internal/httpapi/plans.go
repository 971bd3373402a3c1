package httpapi

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/planwise/planwise/internal/plans"
)

func (s *Server) handleListPlans(w http.ResponseWriter, r *http.Request) {
	id, _ := callerIdentity(r)
	items, err := s.planSvc.List(r.Context(), id.UserID)
	if err != nil {
		log.Printf("list plans failed: %v", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "Failed to fetch plans")
		return
	}

	// The bare route returns everything newest-first; any filter, search or
	// category parameter switches to the filtered, priority-ordered view.
	q := r.URL.Query()
	if q.Has("filter") || q.Has("search") || q.Has("category") {
		mode := plans.FilterMode(q.Get("filter"))
		if mode == "" {
			mode = plans.FilterAll
		}
		category := q.Get("category")
		if category == "" {
			category = "all"
		}
		items = plans.Filter(items, mode, q.Get("search"), category)
	}
	respondJSON(w, http.StatusOK, items)
}

func (s *Server) handleGetPlan(w http.ResponseWriter, r *http.Request) {
	id, _ := callerIdentity(r)
	planID := strings.TrimSpace(chi.URLParam(r, "id"))

	p, err := s.planSvc.Get(r.Context(), id.UserID, planID)
	if err != nil {
		if errors.Is(err, plans.ErrNotFound) {
			respondError(w, http.StatusNotFound, "plan_not_found", "Plan not found")
			return
		}
		log.Printf("get plan failed: %v", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "Failed to fetch plan")
		return
	}
	respondJSON(w, http.StatusOK, p)
}

func (s *Server) handleCreatePlan(w http.ResponseWriter, r *http.Request) {
	id, _ := callerIdentity(r)

	var req plans.CreateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid plan data")
		return
	}

	p, err := s.planSvc.Create(r.Context(), id.UserID, req)
	if err != nil {
		if errors.Is(err, plans.ErrValidation) {
			respondError(w, http.StatusBadRequest, "invalid_request", "Invalid plan data")
			return
		}
		log.Printf("create plan failed: %v", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "Failed to create plan")
		return
	}
	respondJSON(w, http.StatusCreated, p)
}

func (s *Server) handleUpdatePlan(w http.ResponseWriter, r *http.Request) {
	id, _ := callerIdentity(r)
	planID := strings.TrimSpace(chi.URLParam(r, "id"))

	var req plans.UpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid plan data")
		return
	}

	p, err := s.planSvc.Update(r.Context(), id.UserID, planID, req)
	if err != nil {
		switch {
		case errors.Is(err, plans.ErrValidation):
			respondError(w, http.StatusBadRequest, "invalid_request", "Invalid plan data")
		case errors.Is(err, plans.ErrNotFound):
			respondError(w, http.StatusNotFound, "plan_not_found", "Plan not found")
		default:
			log.Printf("update plan failed: %v", err)
			respondError(w, http.StatusInternalServerError, "internal_error", "Failed to update plan")
		}
		return
	}
	respondJSON(w, http.StatusOK, p)
}

func (s *Server) handleDeletePlan(w http.ResponseWriter, r *http.Request) {
	id, _ := callerIdentity(r)
	planID := strings.TrimSpace(chi.URLParam(r, "id"))

	if err := s.planSvc.Delete(r.Context(), id.UserID, planID); err != nil {
		if errors.Is(err, plans.ErrNotFound) {
			respondError(w, http.StatusNotFound, "plan_not_found", "Plan not found")
			return
		}
		log.Printf("delete plan failed: %v", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "Failed to delete plan")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	id, _ := callerIdentity(r)
	snapshot, err := s.planSvc.Stats(r.Context(), id.UserID)
	if err != nil {
		log.Printf("stats failed: %v", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "Failed to compute stats")
		return
	}
	respondJSON(w, http.StatusOK, snapshot)
}
