// Package engine orchestrates crop health analysis runs: it fans out the
// scene-metadata fetches, drives the pure computation in internal/domain,
// and assembles the final insight. It performs no I/O beyond the two
// collaborator fetches per run.
package engine

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/paulmach/orb"

	"github.com/NoobSambit/KisanSetu-Hackathon-sub000/internal/domain"
	"github.com/NoobSambit/KisanSetu-Hackathon-sub000/internal/observability"
)

// Window defaults, in days.
const (
	DefaultCurrentWindowDays  = 35
	DefaultBaselineOffsetDays = 90
	DefaultBaselineWindowDays = 35
	DefaultMaxCloudCover      = 60.0
	DefaultMaxScenes          = 10
)

// SceneQuery asks the ingest collaborator for scenes over one date window.
type SceneQuery struct {
	AOI           domain.AreaOfInterest
	Start         time.Time
	End           time.Time
	MaxCloudCover float64
	MaxScenes     int
	AllowFallback bool
}

// SceneFetchResult is the ingest collaborator's answer for one window.
type SceneFetchResult struct {
	DataSource domain.DataSource
	Scenes     []domain.SceneMetadata
}

// SceneFetcher is the ingest collaborator contract. The engine treats it as
// a black box: it only inspects the returned scenes and data source tag.
type SceneFetcher interface {
	FetchScenes(ctx context.Context, q SceneQuery) (SceneFetchResult, error)
}

// AnalysisRequest carries everything one analysis run needs. Zero-valued
// window parameters take the defaults above.
type AnalysisRequest struct {
	AOI       domain.AreaOfInterest
	AOISource string

	// FarmBoundary is the farmer-drawn boundary polygon, when one exists.
	// Nil renders the AOI bbox as its own rectangle.
	FarmBoundary orb.Polygon

	AllowFallback bool
	MaxCloudCover float64
	MaxScenes     int

	CurrentWindowDays  int
	BaselineOffsetDays int
	BaselineWindowDays int
}

func (r AnalysisRequest) withDefaults() AnalysisRequest {
	if r.CurrentWindowDays <= 0 {
		r.CurrentWindowDays = DefaultCurrentWindowDays
	}
	if r.BaselineOffsetDays <= 0 {
		r.BaselineOffsetDays = DefaultBaselineOffsetDays
	}
	if r.BaselineWindowDays <= 0 {
		r.BaselineWindowDays = DefaultBaselineWindowDays
	}
	if r.MaxCloudCover <= 0 {
		r.MaxCloudCover = DefaultMaxCloudCover
	}
	if r.MaxScenes <= 0 {
		r.MaxScenes = DefaultMaxScenes
	}
	return r
}

// AnalysisMetadata is returned on every run, success or failure, for
// diagnostics and caching by the caller.
type AnalysisMetadata struct {
	AOIID              string            `json:"aoiId"`
	AOISource          string            `json:"aoiSource"`
	CurrentRange       domain.DateRange  `json:"currentRange"`
	BaselineRange      domain.DateRange  `json:"baselineRange"`
	CurrentSceneCount  int               `json:"currentSceneCount"`
	BaselineSceneCount int               `json:"baselineSceneCount"`
	CurrentDataSource  domain.DataSource `json:"currentDataSource,omitempty"`
	BaselineDataSource domain.DataSource `json:"baselineDataSource,omitempty"`
	GeneratedAt        time.Time         `json:"generatedAt"`
}

// AnalysisResult is the typed outcome of one run. Failures are data, never
// panics or sentinel-free errors: Success false means Insight is nil and
// Error holds a human-readable message, with Metadata still populated.
type AnalysisResult struct {
	Success  bool                  `json:"success"`
	Insight  *domain.HealthInsight `json:"insight"`
	Error    string                `json:"error,omitempty"`
	Metadata AnalysisMetadata      `json:"metadata"`
}

// Analyzer runs the estimation engine against the ingest collaborator.
type Analyzer struct {
	fetcher SceneFetcher
	logger  *slog.Logger
	metrics *observability.Metrics
	clock   clockwork.Clock
}

// NewAnalyzer creates an Analyzer with the real clock.
func NewAnalyzer(fetcher SceneFetcher, logger *slog.Logger, metrics *observability.Metrics) *Analyzer {
	return &Analyzer{
		fetcher: fetcher,
		logger:  logger,
		metrics: metrics,
		clock:   clockwork.NewRealClock(),
	}
}

// SetClock swaps the time source so tests can freeze the analysis windows.
func (a *Analyzer) SetClock(c clockwork.Clock) {
	a.clock = c
}

// fetchOutcome pairs one window's fetch result with its error.
type fetchOutcome struct {
	res SceneFetchResult
	err error
}

// Analyze runs one full analysis pass for the request's AOI. It never
// returns an error: every outcome, including collaborator failures and
// empty current windows, is expressed in the AnalysisResult.
func (a *Analyzer) Analyze(ctx context.Context, req AnalysisRequest) AnalysisResult {
	req = req.withDefaults()
	start := time.Now()

	today := a.clock.Now().UTC().Truncate(24 * time.Hour)
	currentRange := domain.DateRange{
		Start: today.AddDate(0, 0, -req.CurrentWindowDays),
		End:   today,
	}
	baselineEnd := today.AddDate(0, 0, -req.BaselineOffsetDays)
	baselineRange := domain.DateRange{
		Start: baselineEnd.AddDate(0, 0, -req.BaselineWindowDays),
		End:   baselineEnd,
	}

	// Fire both window fetches concurrently; there is no shared state
	// between them.
	var current, baseline fetchOutcome
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		current.res, current.err = a.fetcher.FetchScenes(ctx, a.query(req, currentRange))
	}()
	go func() {
		defer wg.Done()
		baseline.res, baseline.err = a.fetcher.FetchScenes(ctx, a.query(req, baselineRange))
	}()
	wg.Wait()

	meta := AnalysisMetadata{
		AOIID:              req.AOI.ID,
		AOISource:          req.AOISource,
		CurrentRange:       currentRange,
		BaselineRange:      baselineRange,
		CurrentSceneCount:  len(current.res.Scenes),
		BaselineSceneCount: len(baseline.res.Scenes),
		CurrentDataSource:  current.res.DataSource,
		BaselineDataSource: baseline.res.DataSource,
		GeneratedAt:        a.clock.Now().UTC(),
	}

	if current.err != nil {
		a.logger.Error("current window fetch failed", "aoi_id", req.AOI.ID, "error", current.err)
		a.metrics.AnalysesTotal.WithLabelValues("error").Inc()
		return AnalysisResult{Error: current.err.Error(), Metadata: meta}
	}
	if len(current.res.Scenes) == 0 {
		a.logger.Warn("no usable scenes in current window", "aoi_id", req.AOI.ID,
			"start", currentRange.Start, "end", currentRange.End)
		a.metrics.AnalysesTotal.WithLabelValues("no_data").Inc()
		return AnalysisResult{Error: "no usable satellite scenes found for the current window", Metadata: meta}
	}
	a.metrics.ScenesFetched.WithLabelValues("current", string(current.res.DataSource)).Add(float64(len(current.res.Scenes)))

	// Missing or failed baseline degrades to self-comparison rather than
	// failing the whole analysis.
	baselineScenes := baseline.res.Scenes
	baselineSource := baseline.res.DataSource
	if baseline.err != nil {
		a.logger.Warn("baseline window fetch failed, comparing against current window",
			"aoi_id", req.AOI.ID, "error", baseline.err)
		baselineScenes = nil
	} else {
		a.metrics.ScenesFetched.WithLabelValues("baseline", string(baseline.res.DataSource)).Add(float64(len(baselineScenes)))
	}
	if len(baselineScenes) == 0 {
		baselineScenes = current.res.Scenes
		baselineSource = current.res.DataSource
	}

	insight, err := a.buildInsight(req, current.res, baselineScenes, baselineSource, meta)
	if err != nil {
		a.metrics.AnalysesTotal.WithLabelValues("error").Inc()
		return AnalysisResult{Error: err.Error(), Metadata: meta}
	}

	a.observeInsight(insight)
	a.metrics.AnalysesTotal.WithLabelValues("success").Inc()
	a.metrics.AnalysisDuration.Observe(time.Since(start).Seconds())

	return AnalysisResult{Success: true, Insight: insight, Metadata: meta}
}

func (a *Analyzer) query(req AnalysisRequest, window domain.DateRange) SceneQuery {
	return SceneQuery{
		AOI:           req.AOI,
		Start:         window.Start,
		End:           window.End,
		MaxCloudCover: req.MaxCloudCover,
		MaxScenes:     req.MaxScenes,
		AllowFallback: req.AllowFallback,
	}
}

// buildInsight runs the pure computation chain: estimator, comparator, zone
// decomposition, stress rules, recommendations, overlay, summary.
func (a *Analyzer) buildInsight(req AnalysisRequest, current SceneFetchResult, baselineScenes []domain.SceneMetadata, baselineSource domain.DataSource, meta AnalysisMetadata) (*domain.HealthInsight, error) {
	// The first current scene is the canonical observation.
	scene := current.Scenes[0]
	currentEst := domain.EstimateScene(scene)

	baselineEsts := make([]domain.SceneEstimate, len(baselineScenes))
	for i, s := range baselineScenes {
		baselineEsts[i] = domain.EstimateScene(s)
	}

	comparison, err := domain.CompareToBaseline(currentEst, baselineEsts)
	if err != nil {
		return nil, err
	}

	zones := domain.BuildZones(currentEst.ZoneNDVI, comparison.BaselineZoneNDVI)

	dataSource := domain.DataSourceLiveCDSE
	if current.DataSource == domain.DataSourceFallbackSample || baselineSource == domain.DataSourceFallbackSample {
		dataSource = domain.DataSourceFallbackSample
	}

	sceneCount := meta.CurrentSceneCount + meta.BaselineSceneCount
	confidence := domain.BlendConfidence(
		currentEst.Confidence, comparison.BaselineConfidence,
		current.DataSource, baselineSource, sceneCount,
	)

	var zoneScores [3]int
	for i, z := range zones {
		zoneScores[i] = z.NormalizedHealthScore
	}
	stressIn := domain.StressInput{
		CurrentScore: comparison.CurrentScore,
		ScoreDelta:   comparison.ScoreDelta,
		ZoneScores:   zoneScores,
		CloudCover:   scene.CloudCover,
		Confidence:   confidence,
	}

	signals := domain.DetectStressSignals(stressIn)
	alerts := domain.BuildAlerts(stressIn)
	recommendations := domain.BuildRecommendations(signals)
	overlay := domain.BuildMapOverlay(req.AOI, req.AOISource, req.FarmBoundary, zones, scene.BBox)

	return &domain.HealthInsight{
		GeneratedAt:          meta.GeneratedAt,
		DataSource:           dataSource,
		Confidence:           confidence,
		ScoreLabel:           domain.ScoreLabel(comparison.CurrentScore),
		CurrentScore:         comparison.CurrentScore,
		BaselineScore:        comparison.BaselineScore,
		ScoreDelta:           comparison.ScoreDelta,
		Trend:                comparison.Trend,
		NDVIEstimate:         currentEst.NDVIEstimate,
		BaselineNDVIEstimate: comparison.BaselineNDVIEstimate,
		EstimateMethod:       currentEst.Method,
		SummaryCardText:      domain.ComposeSummary(comparison.CurrentScore, comparison.ScoreDelta, comparison.Trend, zones),
		UncertaintyNote:      domain.UncertaintyNote(currentEst.Method, dataSource, scene.CloudCover),
		CurrentScene: domain.SceneRef{
			SceneID:    scene.SceneID,
			CapturedAt: scene.CapturedAt,
			CloudCover: scene.CloudCover,
			TileID:     scene.TileID,
			Collection: scene.Collection,
		},
		Zones:                         zones,
		StressSignals:                 signals,
		Recommendations:               recommendations,
		Alerts:                        alerts,
		MapOverlay:                    overlay,
		HighAccuracyUnavailableReason: domain.HighAccuracyReason(currentEst.Method, dataSource),
	}, nil
}

func (a *Analyzer) observeInsight(insight *domain.HealthInsight) {
	for _, s := range insight.StressSignals {
		a.metrics.StressSignals.WithLabelValues(string(s.Type)).Inc()
	}
	for _, al := range insight.Alerts {
		a.metrics.AlertsTotal.WithLabelValues(string(al.Severity)).Inc()
	}
}
