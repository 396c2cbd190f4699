package service

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	outcomeSuccess = "success"
	outcomeStatus  = "upstream_error"
	outcomeFailure = "transport_error"
)

var (
	registry = prometheus.NewRegistry()

	requestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "validator_requests_total",
			Help: "Validate requests handled, by response status code",
		},
		[]string{"status"},
	)

	upstreamRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "validator_upstream_requests_total",
			Help: "Completion API calls, by outcome",
		},
		[]string{"outcome"},
	)

	upstreamLatency = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "validator_upstream_request_duration_seconds",
			Help:    "Completion API call latency in seconds",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 20, 30, 60, 120},
		},
	)
)

func init() {
	registry.MustRegister(
		requestsTotal,
		upstreamRequestsTotal,
		upstreamLatency,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

// MetricsHandler exposes the service registry in the Prometheus text format.
func MetricsHandler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}

func recordRequest(status int) {
	requestsTotal.WithLabelValues(strconv.Itoa(status)).Inc()
}

// recordUpstreamCall records an upstream service call
func recordUpstreamCall(duration time.Duration, outcome string) {
	upstreamRequestsTotal.WithLabelValues(outcome).Inc()
	upstreamLatency.Observe(duration.Seconds())
}
