package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// crop health analysis engine and its collaborators.
type Metrics struct {
	AnalysesTotal    *prometheus.CounterVec // labels: outcome={success,no_data,error}
	AnalysisDuration prometheus.Histogram
	ScenesFetched    *prometheus.CounterVec // labels: window={current,baseline}, source={live_cdse,fallback_sample}
	StressSignals    *prometheus.CounterVec // labels: type
	AlertsTotal      *prometheus.CounterVec // labels: severity
	MonitorRunning   prometheus.Gauge

	// Insight publishing metrics.
	InsightsPublished prometheus.Counter
	PublishErrors     prometheus.Counter

	// Catalog client metrics.
	CatalogRequests    *prometheus.CounterVec // labels: outcome={success,error,empty}
	CatalogCache       *prometheus.CounterVec // labels: result={hit,miss}
	CatalogAPIDuration prometheus.Histogram
}

// NewMetrics creates and registers all engine metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		AnalysesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "crop_insight",
			Name:      "analyses_total",
			Help:      "Analysis runs by outcome.",
		}, []string{"outcome"}),
		AnalysisDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "crop_insight",
			Name:      "analysis_duration_seconds",
			Help:      "Duration of a complete analysis run including scene fetches.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		ScenesFetched: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "crop_insight",
			Name:      "scenes_fetched_total",
			Help:      "Scenes returned by the ingest collaborator by window and data source.",
		}, []string{"window", "source"}),
		StressSignals: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "crop_insight",
			Name:      "stress_signals_total",
			Help:      "Detected stress signals by type.",
		}, []string{"type"}),
		AlertsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "crop_insight",
			Name:      "alerts_total",
			Help:      "Emitted health alerts by severity.",
		}, []string{"severity"}),
		MonitorRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "crop_insight",
			Name:      "monitor_running",
			Help:      "1 when the monitor sweep loop is active, 0 when shut down.",
		}),
		InsightsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "crop_insight",
			Name:      "insights_published_total",
			Help:      "Insight events written to the sink topic.",
		}),
		PublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "crop_insight",
			Name:      "publish_errors_total",
			Help:      "Failed insight event publishes.",
		}),
		CatalogRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "crop_insight",
			Name:      "catalog_requests_total",
			Help:      "CDSE catalog search requests by outcome.",
		}, []string{"outcome"}),
		CatalogCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "crop_insight",
			Name:      "catalog_cache_total",
			Help:      "Catalog cache lookups by result.",
		}, []string{"result"}),
		CatalogAPIDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "crop_insight",
			Name:      "catalog_api_duration_seconds",
			Help:      "CDSE catalog request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
	}

	prometheus.MustRegister(
		m.AnalysesTotal,
		m.AnalysisDuration,
		m.ScenesFetched,
		m.StressSignals,
		m.AlertsTotal,
		m.MonitorRunning,
		m.InsightsPublished,
		m.PublishErrors,
		m.CatalogRequests,
		m.CatalogCache,
		m.CatalogAPIDuration,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		AnalysesTotal:      prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "crop_insight", Name: "analyses_total"}, []string{"outcome"}),
		AnalysisDuration:   prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "crop_insight", Name: "analysis_duration_seconds"}),
		ScenesFetched:      prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "crop_insight", Name: "scenes_fetched_total"}, []string{"window", "source"}),
		StressSignals:      prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "crop_insight", Name: "stress_signals_total"}, []string{"type"}),
		AlertsTotal:        prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "crop_insight", Name: "alerts_total"}, []string{"severity"}),
		MonitorRunning:     prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "crop_insight", Name: "monitor_running"}),
		InsightsPublished:  prometheus.NewCounter(prometheus.CounterOpts{Namespace: "crop_insight", Name: "insights_published_total"}),
		PublishErrors:      prometheus.NewCounter(prometheus.CounterOpts{Namespace: "crop_insight", Name: "publish_errors_total"}),
		CatalogRequests:    prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "crop_insight", Name: "catalog_requests_total"}, []string{"outcome"}),
		CatalogCache:       prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "crop_insight", Name: "catalog_cache_total"}, []string{"result"}),
		CatalogAPIDuration: prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "crop_insight", Name: "catalog_api_duration_seconds"}),
	}
}
