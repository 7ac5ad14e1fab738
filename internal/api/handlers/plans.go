package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"taxi-dispatch-service/internal/api/dto"
	"taxi-dispatch-service/internal/domain"
	"taxi-dispatch-service/internal/services"
)

// DispatchPlanner is satisfied by *services.Planner.
type DispatchPlanner interface {
	Plan(ctx context.Context, req services.PlanDispatchRequest) (*domain.DispatchPlan, error)
}

type PlanHandler struct {
	Planner DispatchPlanner
	// Upper bound a request may ask for; 0 means no bound.
	MaxExpansions int
}

// Plan computes (or fetches from cache) the optimal dispatch for one instance.
func (h *PlanHandler) Plan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.PlanRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	name := strings.TrimSpace(req.Instance)
	if name == "" {
		writeError(w, r, http.StatusBadRequest, "instance is required")
		return
	}

	algorithm := strings.ToLower(strings.TrimSpace(req.Algorithm))
	if algorithm == "" {
		algorithm = domain.AlgorithmAStar
	}
	if !domain.ValidAlgorithm(algorithm) {
		writeError(w, r, http.StatusBadRequest, "algorithm must be one of astar, dijkstra, greedy")
		return
	}

	if req.MaxExpansions < 0 {
		writeError(w, r, http.StatusBadRequest, "max_expansions must be >= 0")
		return
	}
	if h.MaxExpansions > 0 && req.MaxExpansions > h.MaxExpansions {
		writeError(w, r, http.StatusBadRequest, fmt.Sprintf("max_expansions must not exceed %d", h.MaxExpansions))
		return
	}

	svcReq := services.PlanDispatchRequest{
		Instance:      name,
		Algorithm:     algorithm,
		MaxExpansions: req.MaxExpansions,
	}

	plan, err := h.Planner.Plan(r.Context(), svcReq)
	if err != nil {
		writeServiceError(w, r, "plan dispatch", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.NewPlanResponse(plan))
}
