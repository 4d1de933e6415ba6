// Package metrics holds the Prometheus collectors exported at /metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "movieapi_http_requests_total",
		Help: "Total number of HTTP requests served",
	}, []string{"method", "path", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "movieapi_http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"path"})

	RelayTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "movieapi_relay_total",
		Help: "Relayed upstream lookups by query mode and outcome",
	}, []string{"mode", "outcome"})

	UpstreamDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "movieapi_upstream_duration_seconds",
		Help:    "Latency of outbound calls to the movie metadata API",
		Buckets: prometheus.DefBuckets,
	}, []string{"mode"})
)

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
