package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"taxi-dispatch-service/internal/domain"
	"taxi-dispatch-service/internal/platform/obs"
	"taxi-dispatch-service/internal/ports"
	"taxi-dispatch-service/internal/services"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

// Map a service error onto a status code. Client errors echo the message,
// server errors are logged and hidden.
func writeServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrInvalidPlanRequest), errors.Is(err, domain.ErrInvalidInstance):
		status = http.StatusBadRequest
	case errors.Is(err, ports.ErrInstanceNotFound):
		status = http.StatusNotFound
	case errors.Is(err, services.ErrUnsolvable), errors.Is(err, services.ErrExpansionLimit):
		status = http.StatusUnprocessableEntity
	}

	if status == http.StatusInternalServerError {
		log.Printf("req_id=%s %s failed: %v", obs.RequestID(r.Context()), op, err)
		writeError(w, r, status, "internal server error")
		return
	}
	writeError(w, r, status, err.Error())
}
