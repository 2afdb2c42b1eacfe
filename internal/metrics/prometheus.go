package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Dataset metrics
	LoadDuration = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "gdpdash_load_duration_seconds",
			Help: "Time taken to load and reshape the dataset",
		},
	)

	SeriesPoints = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "gdpdash_series_points",
			Help: "Number of points in the long-form series",
		},
	)

	LoadErrors = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "gdpdash_load_errors_total",
			Help: "Dataset loads that failed",
		},
	)

	// Query metrics
	Queries = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gdpdash_queries_total",
			Help: "Total number of series queries",
		},
		[]string{"endpoint", "status"}, // status: ok|bad_request|unavailable
	)

	QueryDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gdpdash_query_duration_seconds",
			Help:    "Series query latency in seconds",
			Buckets: []float64{0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05},
		},
		[]string{"endpoint"},
	)

	QueryPoints = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gdpdash_query_points",
			Help:    "Points returned per query",
			Buckets: prometheus.ExponentialBuckets(1, 4, 10),
		},
		[]string{"endpoint"},
	)
)

func init() {
	prometheus.MustRegister(
		LoadDuration,
		SeriesPoints,
		LoadErrors,
		Queries,
		QueryDuration,
		QueryPoints,
	)
}

// RecordLoad stores the outcome of the startup load.
func RecordLoad(d time.Duration, points int) {
	LoadDuration.Set(d.Seconds())
	SeriesPoints.Set(float64(points))
}

// RecordQuery observes one served query.
func RecordQuery(endpoint string, d time.Duration, points int) {
	Queries.WithLabelValues(endpoint, "ok").Inc()
	QueryDuration.WithLabelValues(endpoint).Observe(d.Seconds())
	QueryPoints.WithLabelValues(endpoint).Observe(float64(points))
}

// RecordRejected counts a query that never reached the engine.
func RecordRejected(endpoint, status string) {
	Queries.WithLabelValues(endpoint, status).Inc()
}

// Handler exposes the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
