// Package metrics provides the centralized Prometheus registry for the
// Sportology API.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	AnalysesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sportology",
		Name:      "analyses_total",
		Help:      "Total number of match analyses performed",
	}, []string{"sport", "caller"})
	AnalysisFailuresTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "sportology",
		Name:      "analysis_failures_total",
		Help:      "Total number of match analyses that failed",
	})
	RateLimitRejectionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sportology",
		Name:      "rate_limit_rejections_total",
		Help:      "Total number of requests rejected by rate limiting",
	}, []string{"kind"})
	SignupsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "sportology",
		Name:      "signups_total",
		Help:      "Total number of account signups",
	})
	LoginsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "sportology",
		Name:      "logins_total",
		Help:      "Total number of successful logins",
	})
)

// Gauge metrics
var (
	ActiveWebsocketSessions = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "sportology",
		Name:      "active_websocket_sessions",
		Help:      "Number of currently open live-analysis websocket sessions",
	})
)

// Histogram metrics
var (
	AnalysisDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "sportology",
		Name:      "analysis_duration_seconds",
		Help:      "Duration of match analysis calls",
		Buckets:   prometheus.DefBuckets,
	})
	PlayerSearchDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "sportology",
		Name:      "player_search_duration_seconds",
		Help:      "Duration of player autocomplete queries",
		Buckets:   prometheus.DefBuckets,
	})
)

// Registry returns the global metrics registry, creating and
// registering all collectors on first use
func Registry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()
		registry.MustRegister(
			AnalysesTotal,
			AnalysisFailuresTotal,
			RateLimitRejectionsTotal,
			SignupsTotal,
			LoginsTotal,
			ActiveWebsocketSessions,
			AnalysisDuration,
			PlayerSearchDuration,
		)
	})
	return registry
}

// Handler returns the HTTP handler serving the registry
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry(), promhttp.HandlerOpts{})
}
