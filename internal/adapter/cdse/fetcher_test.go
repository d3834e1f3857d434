package cdse

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NoobSambit/KisanSetu-Hackathon-sub000/internal/domain"
	"github.com/NoobSambit/KisanSetu-Hackathon-sub000/internal/engine"
)

// stubCatalog serves a fixed search answer.
type stubCatalog struct {
	scenes []domain.SceneMetadata
	err    error
	calls  int
}

func (s *stubCatalog) Search(_ context.Context, _ engine.SceneQuery) ([]domain.SceneMetadata, error) {
	s.calls++
	return s.scenes, s.err
}

func liveScene() domain.SceneMetadata {
	return domain.SceneMetadata{
		SceneID:    "S2B_MSIL2A_20250710T053639_N0511_R005_T43QDE",
		CapturedAt: time.Date(2025, 7, 10, 5, 36, 39, 0, time.UTC),
		CloudCover: 10,
		TileID:     "T43QDE",
		Collection: "SENTINEL-2",
	}
}

func TestFetcherFetchScenes(t *testing.T) {
	t.Run("live scenes pass through", func(t *testing.T) {
		catalog := &stubCatalog{scenes: []domain.SceneMetadata{liveScene()}}
		f := NewFetcher(catalog, testLogger())

		result, err := f.FetchScenes(context.Background(), testQuery())
		require.NoError(t, err)

		assert.Equal(t, domain.DataSourceLiveCDSE, result.DataSource)
		require.Len(t, result.Scenes, 1)
		assert.Equal(t, liveScene().SceneID, result.Scenes[0].SceneID)
	})

	t.Run("search failure substitutes samples when permitted", func(t *testing.T) {
		catalog := &stubCatalog{err: errors.New("catalog unreachable")}
		f := NewFetcher(catalog, testLogger())

		result, err := f.FetchScenes(context.Background(), testQuery())
		require.NoError(t, err)

		assert.Equal(t, domain.DataSourceFallbackSample, result.DataSource)
		assert.NotEmpty(t, result.Scenes)
	})

	t.Run("search failure propagates when fallback not permitted", func(t *testing.T) {
		catalog := &stubCatalog{err: errors.New("catalog unreachable")}
		f := NewFetcher(catalog, testLogger())

		q := testQuery()
		q.AllowFallback = false
		_, err := f.FetchScenes(context.Background(), q)

		assert.ErrorContains(t, err, "catalog unreachable")
	})

	t.Run("empty live window substitutes samples when permitted", func(t *testing.T) {
		f := NewFetcher(&stubCatalog{}, testLogger())

		result, err := f.FetchScenes(context.Background(), testQuery())
		require.NoError(t, err)

		assert.Equal(t, domain.DataSourceFallbackSample, result.DataSource)
		assert.NotEmpty(t, result.Scenes)
	})

	t.Run("empty live window stays empty when fallback not permitted", func(t *testing.T) {
		f := NewFetcher(&stubCatalog{}, testLogger())

		q := testQuery()
		q.AllowFallback = false
		result, err := f.FetchScenes(context.Background(), q)

		require.NoError(t, err)
		assert.Empty(t, result.Scenes)
	})

	t.Run("nil catalog serves samples only", func(t *testing.T) {
		f := NewFetcher(nil, testLogger())

		result, err := f.FetchScenes(context.Background(), testQuery())
		require.NoError(t, err)
		assert.Equal(t, domain.DataSourceFallbackSample, result.DataSource)
		assert.NotEmpty(t, result.Scenes)
	})

	t.Run("nil catalog without fallback is an error", func(t *testing.T) {
		f := NewFetcher(nil, testLogger())

		q := testQuery()
		q.AllowFallback = false
		_, err := f.FetchScenes(context.Background(), q)

		assert.Error(t, err)
	})
}

func TestSampleScenes(t *testing.T) {
	t.Run("deterministic ids from aoi and window", func(t *testing.T) {
		first := sampleScenes(testQuery())
		second := sampleScenes(testQuery())

		require.NotEmpty(t, first)
		assert.Equal(t, first, second)
		assert.Equal(t, "SAMPLE_TESTFARM_20250801", first[0].SceneID)
		assert.Equal(t, "SAMPLE", first[0].Collection)
		require.NotNil(t, first[0].BBox)
		assert.Equal(t, testQuery().AOI.BBox, *first[0].BBox)
	})

	t.Run("spaced by the revisit cadence", func(t *testing.T) {
		scenes := sampleScenes(testQuery())

		require.Len(t, scenes, 3)
		assert.Equal(t, time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC), scenes[0].CapturedAt)
		assert.Equal(t, time.Date(2025, 7, 20, 0, 0, 0, 0, time.UTC), scenes[1].CapturedAt)
		assert.Equal(t, time.Date(2025, 7, 8, 0, 0, 0, 0, time.UTC), scenes[2].CapturedAt)
	})

	t.Run("respects the cloud cover cap", func(t *testing.T) {
		q := testQuery()
		q.MaxCloudCover = 20

		for _, s := range sampleScenes(q) {
			assert.LessOrEqual(t, s.CloudCover, 20.0)
		}
	})

	t.Run("stays inside the query window", func(t *testing.T) {
		q := testQuery()
		q.Start = q.End.AddDate(0, 0, -10)

		scenes := sampleScenes(q)
		require.Len(t, scenes, 1)
		assert.Equal(t, q.End, scenes[0].CapturedAt)
	})
}
