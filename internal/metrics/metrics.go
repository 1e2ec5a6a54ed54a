package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "barter_service"

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path"},
	)

	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_requests_in_flight",
			Help:      "Number of HTTP requests currently being processed",
		},
	)

	// Business metrics
	suggestionRegenerationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "suggestion_regenerations_total",
			Help:      "Total number of suggestion list regenerations",
		},
		[]string{"trigger", "result"}, // explicit | debounced | stale ; ok | error
	)

	suggestionRegenerationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "suggestion_regeneration_duration_seconds",
			Help:      "Suggestion regeneration duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"trigger"},
	)

	suggestionListSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "suggestion_list_size",
			Help:      "Number of suggestions per generated list",
			Buckets:   []float64{0, 1, 2, 3, 5, 8, 10},
		},
	)

	suggestionRefreshPending = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "suggestion_refresh_pending",
			Help:      "Number of users with a debounced suggestion refresh scheduled",
		},
	)

	planDeniedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "plan_denied_total",
			Help:      "Total number of actions denied by the caller's plan",
		},
		[]string{"action", "plan"},
	)

	domainEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "domain_events_total",
			Help:      "Total number of domain events published",
		},
		[]string{"routing_key", "result"},
	)
)

// HTTPRequestStarted returns the func that must run when the request ends.
func HTTPRequestStarted() func() {
	httpRequestsInFlight.Inc()
	return httpRequestsInFlight.Dec
}

// ObserveHTTPRequest records one finished request; path should be the route pattern.
func ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	httpRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordSuggestionRegeneration records one regeneration and the size of its result.
func RecordSuggestionRegeneration(trigger string, duration time.Duration, size int, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	suggestionRegenerationsTotal.WithLabelValues(trigger, result).Inc()
	suggestionRegenerationDuration.WithLabelValues(trigger).Observe(duration.Seconds())
	if err == nil {
		suggestionListSize.Observe(float64(size))
	}
}

func SetSuggestionRefreshPending(n int) {
	suggestionRefreshPending.Set(float64(n))
}

func RecordPlanDenied(action, plan string) {
	planDeniedTotal.WithLabelValues(action, plan).Inc()
}

func RecordDomainEvent(routingKey string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	domainEventsTotal.WithLabelValues(routingKey, result).Inc()
}

// MetricsHandler returns the Prometheus metrics handler
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
