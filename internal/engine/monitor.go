package engine

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/NoobSambit/KisanSetu-Hackathon-sub000/internal/domain"
	"github.com/NoobSambit/KisanSetu-Hackathon-sub000/internal/observability"
)

// InsightPublisher delivers completed analysis results to downstream
// alerting and analytics consumers.
type InsightPublisher interface {
	PublishInsight(ctx context.Context, result AnalysisResult) error
}

// Monitor periodically re-analyzes a configured list of AOIs and publishes
// each insight. It is the service loop around the otherwise stateless
// Analyzer.
type Monitor struct {
	analyzer      *Analyzer
	publisher     InsightPublisher // nil disables publishing
	aois          []domain.AreaOfInterest
	interval      time.Duration
	allowFallback bool
	logger        *slog.Logger
	metrics       *observability.Metrics
	ready         atomic.Bool
}

// NewMonitor creates a Monitor. Pass a nil publisher to run analysis-only.
func NewMonitor(analyzer *Analyzer, publisher InsightPublisher, aois []domain.AreaOfInterest, interval time.Duration, allowFallback bool, logger *slog.Logger, metrics *observability.Metrics) *Monitor {
	return &Monitor{
		analyzer:      analyzer,
		publisher:     publisher,
		aois:          aois,
		interval:      interval,
		allowFallback: allowFallback,
		logger:        logger,
		metrics:       metrics,
	}
}

// CheckReadiness returns nil once the monitor has completed at least one
// full sweep, or an error describing why the service is not yet ready.
func (m *Monitor) CheckReadiness(_ context.Context) error {
	if !m.ready.Load() {
		return errors.New("monitor has not completed a sweep yet")
	}
	return nil
}

// Run sweeps all AOIs immediately, then on every interval tick until the
// context is cancelled.
func (m *Monitor) Run(ctx context.Context) error {
	m.logger.Info("monitor started", "aois", len(m.aois), "interval", m.interval)
	m.metrics.MonitorRunning.Set(1)
	defer m.metrics.MonitorRunning.Set(0)

	for {
		m.sweep(ctx)
		m.ready.Store(true)

		if !sleepWithContext(ctx, m.interval) {
			m.logger.Info("monitor stopping", "reason", ctx.Err())
			return nil
		}
	}
}

// sweep analyzes every configured AOI once.
func (m *Monitor) sweep(ctx context.Context) {
	for _, aoi := range m.aois {
		if ctx.Err() != nil {
			return
		}

		result := m.analyzer.Analyze(ctx, AnalysisRequest{
			AOI:           aoi,
			AOISource:     "farm_profile",
			AllowFallback: m.allowFallback,
		})

		if !result.Success {
			m.logger.Warn("analysis failed", "aoi_id", aoi.ID, "error", result.Error)
			continue
		}

		m.logger.Info("analysis complete",
			"aoi_id", aoi.ID,
			"score", result.Insight.CurrentScore,
			"trend", result.Insight.Trend,
			"data_source", result.Insight.DataSource,
			"alerts", len(result.Insight.Alerts),
		)

		m.publish(ctx, result)
	}
}

func (m *Monitor) publish(ctx context.Context, result AnalysisResult) {
	if m.publisher == nil {
		return
	}
	if err := m.publisher.PublishInsight(ctx, result); err != nil {
		m.logger.Error("insight publish failed", "aoi_id", result.Metadata.AOIID, "error", err)
		m.metrics.PublishErrors.Inc()
		return
	}
	m.metrics.InsightsPublished.Inc()
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
