package metrics

import "github.com/prometheus/client_golang/prometheus"

// Recommendation Prometheus metrics.
var (
	RecommendRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cartrec",
			Name:      "recommend_requests_total",
			Help:      "Total number of recommendation computations",
		},
		[]string{"status"}, // "ok" / "catalog_error" / "history_error"
	)

	RecommendHistoryRows = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "cartrec",
			Name:      "recommend_history_rows",
			Help:      "Purchase history rows read per recommendation",
			Buckets:   []float64{0, 10, 50, 100, 250, 500, 1000, 2500, 5000},
		},
	)

	RecommendNeighborsScored = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "cartrec",
			Name:      "recommend_neighbors_scored",
			Help:      "Historical customers scored per recommendation",
			Buckets:   []float64{0, 5, 10, 25, 50, 100, 250, 500, 1000},
		},
	)

	RecommendSuggestionsReturned = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "cartrec",
			Name:      "recommend_suggestions_returned",
			Help:      "Suggestions returned per recommendation",
			Buckets:   []float64{0, 1, 2, 3, 4, 5},
		},
	)
)

var recommendMetricsRegistered bool

// RegisterRecommendMetrics registers recommendation metrics. Must be called once from main.
func RegisterRecommendMetrics() {
	if recommendMetricsRegistered {
		return
	}
	prometheus.MustRegister(RecommendRequestsTotal)
	prometheus.MustRegister(RecommendHistoryRows)
	prometheus.MustRegister(RecommendNeighborsScored)
	prometheus.MustRegister(RecommendSuggestionsReturned)
	recommendMetricsRegistered = true
}
