package metrics

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	SnapshotTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ai_bridge_snapshot_total",
			Help: "Total number of engine snapshots computed",
		},
		[]string{"status"},
	)

	SnapshotDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ai_bridge_snapshot_duration_seconds",
			Help:    "Engine snapshot computation duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
	)

	ConfidenceLevel = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ai_bridge_estimate_confidence",
			Help:    "Confidence level of computed cost estimates",
			Buckets: []float64{30, 40, 50, 60, 70, 80, 90, 95},
		},
	)

	MatchScore = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ai_bridge_match_score",
			Help:    "Vendor match scores",
			Buckets: []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
		},
	)

	SessionsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "ai_bridge_sessions_created_total",
			Help: "Total wizard sessions created",
		},
	)

	AnswersRecorded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ai_bridge_answers_recorded_total",
			Help: "Total answers recorded, by question",
		},
		[]string{"question_id"},
	)

	SessionStoreErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ai_bridge_session_store_errors_total",
			Help: "Session store operation failures",
		},
		[]string{"operation"},
	)

	VendorsInCatalog = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "ai_bridge_catalog_vendors",
			Help: "Number of vendors in the catalog",
		},
	)
)

func Init() {
	prometheus.MustRegister(SnapshotTotal)
	prometheus.MustRegister(SnapshotDuration)
	prometheus.MustRegister(ConfidenceLevel)
	prometheus.MustRegister(MatchScore)
	prometheus.MustRegister(SessionsCreated)
	prometheus.MustRegister(AnswersRecorded)
	prometheus.MustRegister(SessionStoreErrors)
	prometheus.MustRegister(VendorsInCatalog)
}

func MetricsHandler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
