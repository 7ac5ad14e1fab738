package api

import (
	"net/http"
	"taxi-dispatch-service/internal/api/handlers"
	"taxi-dispatch-service/internal/platform/metrics"
	"taxi-dispatch-service/internal/ports"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"
)

// Dependencies of the HTTP API.
type RouterConfig struct {
	Repo          ports.InstanceRepository
	Planner       handlers.DispatchPlanner
	DB            handlers.Pinger
	PlanLimiter   *rate.Limiter
	MaxExpansions int
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(cfg RouterConfig) http.Handler {
	metrics.RegisterDefault()

	mux := http.NewServeMux()

	healthHandler := &handlers.HealthHandler{DB: cfg.DB}
	instanceHandler := &handlers.InstanceHandler{Repo: cfg.Repo}
	planHandler := &handlers.PlanHandler{
		Planner:       cfg.Planner,
		MaxExpansions: cfg.MaxExpansions,
	}

	mux.HandleFunc("/health", healthHandler.Health)
	mux.HandleFunc("/instances", instanceHandler.List)
	mux.HandleFunc("/instances/{name}", instanceHandler.Get)
	mux.Handle("/plans", rateLimit(cfg.PlanLimiter, http.HandlerFunc(planHandler.Plan)))
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	return requestIDMiddleware(loggingMiddleware(mux))
}
