package engine

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NoobSambit/KisanSetu-Hackathon-sub000/internal/domain"
	"github.com/NoobSambit/KisanSetu-Hackathon-sub000/internal/observability"
)

var testNow = time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fetcherFunc adapts a function to the SceneFetcher interface.
type fetcherFunc func(ctx context.Context, q SceneQuery) (SceneFetchResult, error)

func (f fetcherFunc) FetchScenes(ctx context.Context, q SceneQuery) (SceneFetchResult, error) {
	return f(ctx, q)
}

// windowFetcher serves one canned result per window, keyed on whether the
// query's end date is today.
func windowFetcher(t *testing.T, current, baseline SceneFetchResult, baselineErr error) SceneFetcher {
	t.Helper()
	today := testNow.UTC().Truncate(24 * time.Hour)
	return fetcherFunc(func(_ context.Context, q SceneQuery) (SceneFetchResult, error) {
		if q.End.Equal(today) {
			return current, nil
		}
		return baseline, baselineErr
	})
}

func testScene() domain.SceneMetadata {
	return domain.SceneMetadata{
		SceneID:    "S2B_MSIL2A_20250710T053639_N0511_R005_T43QDE",
		CapturedAt: time.Date(2025, 7, 10, 5, 36, 39, 0, time.UTC),
		CloudCover: 10,
		TileID:     "T43QDE",
		Collection: "SENTINEL-2",
	}
}

func testRequest() AnalysisRequest {
	return AnalysisRequest{
		AOI: domain.AreaOfInterest{
			ID:   "test-farm",
			Name: "Test Farm",
			BBox: domain.BBox{75.0, 30.0, 75.3, 30.3},
		},
		AOISource:     "farm_profile",
		AllowFallback: true,
	}
}

func newTestAnalyzer(fetcher SceneFetcher) *Analyzer {
	a := NewAnalyzer(fetcher, testLogger(), observability.NewMetricsForTesting())
	a.SetClock(clockwork.NewFakeClockAt(testNow))
	return a
}

func TestAnalyze(t *testing.T) {
	t.Run("full insight from a single live scene", func(t *testing.T) {
		live := SceneFetchResult{
			DataSource: domain.DataSourceLiveCDSE,
			Scenes:     []domain.SceneMetadata{testScene()},
		}
		a := newTestAnalyzer(windowFetcher(t, live, SceneFetchResult{DataSource: domain.DataSourceLiveCDSE}, nil))

		result := a.Analyze(context.Background(), testRequest())

		require.True(t, result.Success, "error: %s", result.Error)
		insight := result.Insight
		require.NotNil(t, insight)

		assert.Equal(t, domain.DataSourceLiveCDSE, insight.DataSource)
		assert.Equal(t, domain.MethodMetadataProxy, insight.EstimateMethod)
		assert.Equal(t, 0.377, insight.NDVIEstimate)
		assert.Equal(t, 35, insight.CurrentScore)
		assert.Equal(t, "Poor", insight.ScoreLabel)

		// Empty baseline window degrades to self-comparison.
		assert.Equal(t, 35, insight.BaselineScore)
		assert.Equal(t, 0, insight.ScoreDelta)
		assert.Equal(t, domain.TrendStable, insight.Trend)

		assert.Equal(t, 0.6, insight.Confidence)

		require.Len(t, insight.Zones, 3)
		assert.Equal(t, domain.ZoneStatusWatch, insight.Zones[0].Status)
		assert.Equal(t, domain.ZoneStatusCritical, insight.Zones[1].Status)
		assert.Equal(t, domain.ZoneStatusCritical, insight.Zones[2].Status)
		for _, z := range insight.Zones {
			assert.Equal(t, domain.TrendStable, z.Trend)
		}

		require.Len(t, insight.StressSignals, 2)
		assert.Equal(t, domain.StressWaterStress, insight.StressSignals[0].Type)
		assert.Equal(t, 0.55, insight.StressSignals[0].Confidence)
		assert.Equal(t, domain.StressPestOrDiseaseRisk, insight.StressSignals[1].Type)
		assert.Equal(t, 0.62, insight.StressSignals[1].Confidence)

		assert.Empty(t, insight.Alerts)

		require.Len(t, insight.Recommendations, 2)
		assert.Equal(t, "water-balance-check", insight.Recommendations[0].ID)
		assert.Equal(t, "pest-scouting", insight.Recommendations[1].ID)

		assert.Contains(t, insight.SummaryCardText, "South Zone")
		assert.NotEmpty(t, insight.UncertaintyNote)
		assert.NotEmpty(t, insight.HighAccuracyUnavailableReason)

		assert.Equal(t, "test-farm", result.Metadata.AOIID)
		assert.Equal(t, 1, result.Metadata.CurrentSceneCount)
		assert.Equal(t, 0, result.Metadata.BaselineSceneCount)
		require.Len(t, insight.MapOverlay.ZonePolygons, 3)
		assert.Equal(t, testScene().SceneID, insight.CurrentScene.SceneID)
	})

	t.Run("fallback data source propagates into the insight", func(t *testing.T) {
		sample := SceneFetchResult{
			DataSource: domain.DataSourceFallbackSample,
			Scenes:     []domain.SceneMetadata{testScene()},
		}
		a := newTestAnalyzer(windowFetcher(t, sample, SceneFetchResult{DataSource: domain.DataSourceFallbackSample}, nil))

		result := a.Analyze(context.Background(), testRequest())

		require.True(t, result.Success)
		assert.Equal(t, domain.DataSourceFallbackSample, result.Insight.DataSource)
		assert.Equal(t, 0.47, result.Insight.Confidence)
		assert.Contains(t, result.Insight.UncertaintyNote, "sample scenes")
		assert.NotEmpty(t, result.Insight.HighAccuracyUnavailableReason)
	})

	t.Run("no usable current scenes", func(t *testing.T) {
		empty := SceneFetchResult{DataSource: domain.DataSourceLiveCDSE}
		a := newTestAnalyzer(windowFetcher(t, empty, empty, nil))

		result := a.Analyze(context.Background(), testRequest())

		assert.False(t, result.Success)
		assert.Nil(t, result.Insight)
		assert.Equal(t, "no usable satellite scenes found for the current window", result.Error)
		assert.Equal(t, "test-farm", result.Metadata.AOIID)
	})

	t.Run("current window fetch failure", func(t *testing.T) {
		a := newTestAnalyzer(fetcherFunc(func(_ context.Context, _ SceneQuery) (SceneFetchResult, error) {
			return SceneFetchResult{}, errors.New("catalog unreachable")
		}))

		result := a.Analyze(context.Background(), testRequest())

		assert.False(t, result.Success)
		assert.Equal(t, "catalog unreachable", result.Error)
	})

	t.Run("baseline fetch failure degrades to self-comparison", func(t *testing.T) {
		live := SceneFetchResult{
			DataSource: domain.DataSourceLiveCDSE,
			Scenes:     []domain.SceneMetadata{testScene()},
		}
		a := newTestAnalyzer(windowFetcher(t, live, SceneFetchResult{}, errors.New("catalog timeout")))

		result := a.Analyze(context.Background(), testRequest())

		require.True(t, result.Success)
		assert.Equal(t, result.Insight.CurrentScore, result.Insight.BaselineScore)
		assert.Equal(t, 0, result.Insight.ScoreDelta)
	})

	t.Run("analysis windows derive from the clock", func(t *testing.T) {
		var mu sync.Mutex
		var queries []SceneQuery
		a := newTestAnalyzer(fetcherFunc(func(_ context.Context, q SceneQuery) (SceneFetchResult, error) {
			mu.Lock()
			queries = append(queries, q)
			mu.Unlock()
			return SceneFetchResult{DataSource: domain.DataSourceLiveCDSE}, nil
		}))

		a.Analyze(context.Background(), testRequest())

		require.Len(t, queries, 2)
		today := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)

		var current, baseline SceneQuery
		if queries[0].End.Equal(today) {
			current, baseline = queries[0], queries[1]
		} else {
			current, baseline = queries[1], queries[0]
		}

		assert.Equal(t, today, current.End)
		assert.Equal(t, today.AddDate(0, 0, -DefaultCurrentWindowDays), current.Start)
		assert.Equal(t, today.AddDate(0, 0, -DefaultBaselineOffsetDays), baseline.End)
		assert.Equal(t, today.AddDate(0, 0, -DefaultBaselineOffsetDays-DefaultBaselineWindowDays), baseline.Start)
		assert.Equal(t, DefaultMaxCloudCover, current.MaxCloudCover)
		assert.Equal(t, DefaultMaxScenes, current.MaxScenes)
		assert.True(t, current.AllowFallback)
	})
}
