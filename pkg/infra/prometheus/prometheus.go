package prometheus

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"net/http"
)

var registry = prometheus.NewRegistry()

var registerer = prometheus.WrapRegistererWith(nil, registry)

var (
	latencyBuckets = []float64{
		5, 10, 25,
		50, 100, 250,
		500, 1000, 2500,
		5000, 10000,
	}

	BehaviorAnalysisTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "sentinel_behavior_analysis_total",
			Help: "Behavior analyses by resulting risk level",
		},
		[]string{"risk_level"},
	)

	ModerationTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "sentinel_moderation_total",
			Help: "Moderated content items by resulting status",
		},
		[]string{"status"},
	)

	IncidentsTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "sentinel_incidents_total",
			Help: "Safety incidents recorded, by incident type",
		},
		[]string{"incident_type"},
	)

	OracleFailuresTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "sentinel_oracle_failures_total",
			Help: "External oracle calls that fell back to the neutral default",
		},
		[]string{"oracle"},
	)

	AnalysisLatency = promauto.With(registerer).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sentinel_analysis_latency_ms",
			Help:    "End-to-end latency of top-level operations in milliseconds",
			Buckets: latencyBuckets,
		},
		[]string{"operation"},
	)
)

// Handler exposes the engine registry for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}
