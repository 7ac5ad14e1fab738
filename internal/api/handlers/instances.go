package handlers

import (
	"net/http"
	"strings"
	"taxi-dispatch-service/internal/api/dto"
	"taxi-dispatch-service/internal/ports"
)

// InstanceHandler exposes read-only instance retrieval endpoints.
type InstanceHandler struct {
	Repo ports.InstanceRepository
}

func (h *InstanceHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	list, err := h.Repo.ListInstances(r.Context())
	if err != nil {
		writeServiceError(w, r, "list instances", err)
		return
	}

	res := dto.ListInstancesResponse{
		Instances: make([]dto.InstanceSummaryResponse, 0, len(list)),
	}
	for _, s := range list {
		res.Instances = append(res.Instances, dto.InstanceSummaryResponse{
			Name:      s.Name,
			Speed:     s.Speed,
			Customers: s.Customers,
			Taxis:     s.Taxis,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}

func (h *InstanceHandler) Get(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	name := strings.TrimSpace(r.PathValue("name"))
	if name == "" {
		writeError(w, r, http.StatusBadRequest, "instance name is required")
		return
	}

	inst, err := h.Repo.GetInstance(r.Context(), name)
	if err != nil {
		writeServiceError(w, r, "get instance", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.NewInstanceResponse(inst))
}
