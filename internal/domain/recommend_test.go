package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildRecommendations(t *testing.T) {
	t.Run("maps each stress type to its action", func(t *testing.T) {
		cases := []struct {
			stress StressType
			wantID string
		}{
			{StressWaterStress, "water-balance-check"},
			{StressNutrientStress, "nutrient-correction"},
			{StressPestOrDiseaseRisk, "pest-scouting"},
			{StressCloudUncertainty, "field-verification"},
		}

		for _, tc := range cases {
			recs := BuildRecommendations([]StressSignal{{Type: tc.stress}})
			require.Len(t, recs, 1, "stress %s", tc.stress)
			assert.Equal(t, tc.wantID, recs[0].ID)
			assert.NotEmpty(t, recs[0].Title)
			assert.NotEmpty(t, recs[0].Rationale)
		}
	})

	t.Run("catalog order regardless of signal order", func(t *testing.T) {
		recs := BuildRecommendations([]StressSignal{
			{Type: StressCloudUncertainty},
			{Type: StressPestOrDiseaseRisk},
			{Type: StressWaterStress},
		})

		require.Len(t, recs, 3)
		assert.Equal(t, "water-balance-check", recs[0].ID)
		assert.Equal(t, "pest-scouting", recs[1].ID)
		assert.Equal(t, "field-verification", recs[2].ID)
	})

	t.Run("all four actionable types cap the list at four", func(t *testing.T) {
		recs := BuildRecommendations([]StressSignal{
			{Type: StressWaterStress},
			{Type: StressNutrientStress},
			{Type: StressPestOrDiseaseRisk},
			{Type: StressCloudUncertainty},
			{Type: StressGrowthRecovery},
		})

		require.Len(t, recs, 4)
		assert.Equal(t, "water-balance-check", recs[0].ID)
		assert.Equal(t, "nutrient-correction", recs[1].ID)
		assert.Equal(t, "pest-scouting", recs[2].ID)
		assert.Equal(t, "field-verification", recs[3].ID)

		seen := make(map[string]bool)
		for _, r := range recs {
			assert.False(t, seen[r.ID], "duplicate id %s", r.ID)
			seen[r.ID] = true
		}
	})

	t.Run("duplicate signal types collapse to one action", func(t *testing.T) {
		recs := BuildRecommendations([]StressSignal{
			{Type: StressWaterStress, Confidence: 0.5},
			{Type: StressWaterStress, Confidence: 0.8},
		})

		require.Len(t, recs, 1)
		assert.Equal(t, "water-balance-check", recs[0].ID)
	})

	t.Run("growth recovery maps to no action", func(t *testing.T) {
		recs := BuildRecommendations([]StressSignal{{Type: StressGrowthRecovery}})

		require.Len(t, recs, 1)
		assert.Equal(t, "maintain-practice", recs[0].ID)
	})

	t.Run("no signals yields maintain-practice", func(t *testing.T) {
		recs := BuildRecommendations(nil)

		require.Len(t, recs, 1)
		assert.Equal(t, "maintain-practice", recs[0].ID)
		assert.Equal(t, PriorityLow, recs[0].Priority)
	})

	t.Run("priorities and confidences come from the catalog", func(t *testing.T) {
		recs := BuildRecommendations([]StressSignal{
			{Type: StressWaterStress},
			{Type: StressCloudUncertainty},
		})

		require.Len(t, recs, 2)
		assert.Equal(t, PriorityHigh, recs[0].Priority)
		assert.Equal(t, 0.82, recs[0].Confidence)
		assert.Equal(t, PriorityMedium, recs[1].Priority)
		assert.Equal(t, 0.68, recs[1].Confidence)
	})
}
