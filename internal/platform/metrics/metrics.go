package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	// Registry is the dedicated Prometheus registry for the service.
	Registry = prometheus.NewRegistry()

	// HTTPRequests counts requests by method, path and status.
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "Total HTTP requests."},
		[]string{"method", "path", "status"},
	)
	// HTTPDuration records request durations in seconds.
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "http_request_duration_seconds", Help: "HTTP request duration in seconds.", Buckets: prometheus.DefBuckets},
		[]string{"method", "path", "status"},
	)

	// SearchExpanded records how many states a dispatch search expanded.
	SearchExpanded = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "dispatch_search_expanded_states", Help: "States expanded per dispatch search.", Buckets: prometheus.ExponentialBuckets(1, 4, 10)},
		[]string{"algorithm"},
	)
	// SearchDuration records the wall time of a dispatch search.
	SearchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "dispatch_search_duration_seconds", Help: "Dispatch search duration in seconds.", Buckets: prometheus.DefBuckets},
		[]string{"algorithm", "outcome"},
	)
	// PlanCacheResults counts plan cache lookups by result (hit, miss, error).
	PlanCacheResults = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "dispatch_plan_cache_results_total", Help: "Plan cache lookups by result."},
		[]string{"result"},
	)
	// OperationDuration records timed operations reported through obs.Time.
	OperationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "operation_duration_seconds", Help: "Duration of timed operations in seconds.", Buckets: prometheus.DefBuckets},
		[]string{"op", "status"},
	)
)

// RegisterDefault registers collectors to the service registry.
func RegisterDefault() {
	regOnce.Do(func() {
		Registry.MustRegister(HTTPRequests)
		Registry.MustRegister(HTTPDuration)
		Registry.MustRegister(SearchExpanded)
		Registry.MustRegister(SearchDuration)
		Registry.MustRegister(PlanCacheResults)
		Registry.MustRegister(OperationDuration)
		// Go/process collectors on our registry
		Registry.MustRegister(collectors.NewGoCollector())
		Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	})
}

var regOnce sync.Once
