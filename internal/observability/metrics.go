package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// stageDurationBuckets suit an in-memory batch transform: stages finish in
// microseconds to low milliseconds even for large tables.
var stageDurationBuckets = []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1}

// Metrics holds the Prometheus counters, histograms, and gauges for the
// observation pipeline.
type Metrics struct {
	RowsFetched       prometheus.Counter
	RowsDropped       prometheus.Counter
	RowsProcessed     prometheus.Counter
	AnomaliesDetected prometheus.Counter
	SchemaViolations  prometheus.Counter
	PipelineRunning   prometheus.Gauge

	// Per-stage timings. labels: stage={clean,summarize,detect,classify}
	StageDuration *prometheus.HistogramVec
	RunDuration   prometheus.Histogram
}

// NewMetrics creates and registers all pipeline metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		RowsFetched: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "weather_etl",
			Name:      "rows_fetched_total",
			Help:      "Total raw rows received from the upstream producer.",
		}),
		RowsDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "weather_etl",
			Name:      "rows_dropped_total",
			Help:      "Total rows removed during cleaning for failed coercion.",
		}),
		RowsProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "weather_etl",
			Name:      "rows_processed_total",
			Help:      "Total rows carried through to the processed table.",
		}),
		AnomaliesDetected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "weather_etl",
			Name:      "anomalies_detected_total",
			Help:      "Total rows flagged outside the anomaly band.",
		}),
		SchemaViolations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "weather_etl",
			Name:      "schema_violations_total",
			Help:      "Total runs aborted because a required column was missing.",
		}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "weather_etl",
			Name:      "pipeline_running",
			Help:      "1 while a pipeline run is in progress, 0 otherwise.",
		}),
		StageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "weather_etl",
			Name:      "stage_duration_seconds",
			Help:      "Duration of each pipeline stage.",
			Buckets:   stageDurationBuckets,
		}, []string{"stage"}),
		RunDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "weather_etl",
			Name:      "run_duration_seconds",
			Help:      "Duration of a complete fetch-clean-detect-classify-write run.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		}),
	}

	prometheus.MustRegister(
		m.RowsFetched,
		m.RowsDropped,
		m.RowsProcessed,
		m.AnomaliesDetected,
		m.SchemaViolations,
		m.PipelineRunning,
		m.StageDuration,
		m.RunDuration,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		RowsFetched:       prometheus.NewCounter(prometheus.CounterOpts{Namespace: "weather_etl", Name: "rows_fetched_total"}),
		RowsDropped:       prometheus.NewCounter(prometheus.CounterOpts{Namespace: "weather_etl", Name: "rows_dropped_total"}),
		RowsProcessed:     prometheus.NewCounter(prometheus.CounterOpts{Namespace: "weather_etl", Name: "rows_processed_total"}),
		AnomaliesDetected: prometheus.NewCounter(prometheus.CounterOpts{Namespace: "weather_etl", Name: "anomalies_detected_total"}),
		SchemaViolations:  prometheus.NewCounter(prometheus.CounterOpts{Namespace: "weather_etl", Name: "schema_violations_total"}),
		PipelineRunning:   prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "weather_etl", Name: "pipeline_running"}),
		StageDuration:     prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: "weather_etl", Name: "stage_duration_seconds"}, []string{"stage"}),
		RunDuration:       prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "weather_etl", Name: "run_duration_seconds"}),
	}
}
