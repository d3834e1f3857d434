package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

const (
	testProxySceneID  = "S2B_MSIL2A_20250710T053639_N0511_R005_T43QDE"
	testCloudySceneID = "S2A_MSIL2A_20250715T053641_N0511_R005_T43QDE"
	testSeedSceneID   = "S2A_MSIL2A_20240612T050701_N0510_R019_T43QGF"
)

func TestEstimateScene(t *testing.T) {
	julyCapture := time.Date(2025, 7, 10, 5, 36, 39, 0, time.UTC)

	t.Run("metadata proxy with low cloud cover", func(t *testing.T) {
		est := EstimateScene(SceneMetadata{
			SceneID:    testProxySceneID,
			CapturedAt: julyCapture,
			CloudCover: 10,
		})

		assert.Equal(t, MethodMetadataProxy, est.Method)
		assert.Equal(t, 0.377, est.NDVIEstimate)
		assert.Equal(t, [3]float64{0.431, 0.364, 0.31}, est.ZoneNDVI)
		assert.Equal(t, 0.604, est.Confidence)
	})

	t.Run("metadata proxy with heavy cloud cover", func(t *testing.T) {
		est := EstimateScene(SceneMetadata{
			SceneID:    testCloudySceneID,
			CapturedAt: time.Date(2025, 7, 15, 5, 36, 41, 0, time.UTC),
			CloudCover: 45,
		})

		assert.Equal(t, MethodMetadataProxy, est.Method)
		assert.Equal(t, 0.327, est.NDVIEstimate)
		assert.Equal(t, [3]float64{0.411, 0.306, 0.223}, est.ZoneNDVI)
		assert.Equal(t, 0.33, est.Confidence)
	})

	t.Run("reference seed", func(t *testing.T) {
		est := EstimateScene(SceneMetadata{
			SceneID:    testSeedSceneID,
			CapturedAt: time.Date(2024, 6, 12, 5, 7, 1, 0, time.UTC),
			CloudCover: 22,
		})

		assert.Equal(t, MethodReferenceSeed, est.Method)
		assert.Equal(t, 0.598, est.NDVIEstimate)
		assert.Equal(t, [3]float64{0.638, 0.588, 0.548}, est.ZoneNDVI)
		assert.Equal(t, 0.74, est.Confidence)
	})

	t.Run("reference seed lookup is format insensitive", func(t *testing.T) {
		canonical := EstimateScene(SceneMetadata{
			SceneID:    testSeedSceneID,
			CapturedAt: julyCapture,
			CloudCover: 22,
		})
		mangled := EstimateScene(SceneMetadata{
			SceneID:    "s2a-msil2a-20240612t050701-n0510-r019-t43qgf.SAFE",
			CapturedAt: julyCapture,
			CloudCover: 22,
		})

		assert.Equal(t, MethodReferenceSeed, mangled.Method)
		assert.Equal(t, canonical, mangled)
	})

	t.Run("deterministic for identical input", func(t *testing.T) {
		scene := SceneMetadata{
			SceneID:    testProxySceneID,
			CapturedAt: julyCapture,
			CloudCover: 37.5,
		}

		assert.Equal(t, EstimateScene(scene), EstimateScene(scene))
	})

	t.Run("north zone reads above south zone", func(t *testing.T) {
		est := EstimateScene(SceneMetadata{
			SceneID:    "S2B_MSIL2A_20251101T053639_N0511_R005_T43QDE",
			CapturedAt: time.Date(2025, 11, 1, 5, 36, 39, 0, time.UTC),
			CloudCover: 5,
		})

		assert.Greater(t, est.ZoneNDVI[0], est.ZoneNDVI[1])
		assert.Greater(t, est.ZoneNDVI[1], est.ZoneNDVI[2])
	})

	t.Run("cloud cover lowers proxy confidence", func(t *testing.T) {
		clear := EstimateScene(SceneMetadata{SceneID: testProxySceneID, CapturedAt: julyCapture, CloudCover: 5})
		cloudy := EstimateScene(SceneMetadata{SceneID: testProxySceneID, CapturedAt: julyCapture, CloudCover: 55})

		assert.Greater(t, clear.Confidence, cloudy.Confidence)
		assert.GreaterOrEqual(t, clear.Confidence, 0.28)
		assert.LessOrEqual(t, clear.Confidence, 0.76)
	})

	t.Run("reference seed confidence floor", func(t *testing.T) {
		est := EstimateScene(SceneMetadata{
			SceneID:    testSeedSceneID,
			CapturedAt: julyCapture,
			CloudCover: 100,
		})

		assert.Equal(t, 0.45, est.Confidence)
	})
}

func TestHashUnit(t *testing.T) {
	t.Run("stays in unit interval", func(t *testing.T) {
		for _, s := range []string{"", "a", testProxySceneID, testSeedSceneID + "|drift"} {
			v := hashUnit(s)
			assert.GreaterOrEqual(t, v, 0.0)
			assert.Less(t, v, 1.0)
		}
	})

	t.Run("distinct salts give distinct values", func(t *testing.T) {
		assert.NotEqual(t, hashUnit(testProxySceneID+"|drift"), hashUnit(testProxySceneID+"|spread"))
	})
}
