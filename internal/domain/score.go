package domain

import (
	"errors"
	"math"

	"github.com/montanaflynn/stats"
)

// trendThreshold is the score-delta magnitude at which a trend stops being
// "stable". Deltas of exactly +4 / -4 classify as up / down.
const trendThreshold = 4

// BaselineComparison aggregates the baseline window and positions the
// current scene against it.
type BaselineComparison struct {
	CurrentScore         int
	BaselineScore        int
	ScoreDelta           int
	Trend                Trend
	BaselineNDVIEstimate float64
	BaselineZoneNDVI     [3]float64
	BaselineConfidence   float64
}

// ScoreFromNDVI converts an NDVI estimate to a normalized 0-100 health score.
func ScoreFromNDVI(ndvi float64) int {
	return int(math.Round(clamp((ndvi-0.15)/0.65, 0, 1) * 100))
}

// TrendOf classifies a score delta.
func TrendOf(delta int) Trend {
	switch {
	case delta >= trendThreshold:
		return TrendUp
	case delta <= -trendThreshold:
		return TrendDown
	default:
		return TrendStable
	}
}

// CompareToBaseline averages the baseline-window estimates and computes the
// current scene's score delta and trend against them. The baseline set must
// be non-empty; the orchestrator substitutes the current window as its own
// baseline when no historical scenes exist.
func CompareToBaseline(current SceneEstimate, baseline []SceneEstimate) (BaselineComparison, error) {
	if len(baseline) == 0 {
		return BaselineComparison{}, errors.New("at least one baseline estimate required")
	}

	ndvis := make([]float64, len(baseline))
	confs := make([]float64, len(baseline))
	zones := [3][]float64{}
	for i := range zones {
		zones[i] = make([]float64, len(baseline))
	}
	for i, est := range baseline {
		ndvis[i] = est.NDVIEstimate
		confs[i] = est.Confidence
		for z := range est.ZoneNDVI {
			zones[z][i] = est.ZoneNDVI[z]
		}
	}

	baselineNDVI := round3(mean(ndvis))
	var baselineZones [3]float64
	for z := range zones {
		baselineZones[z] = round3(mean(zones[z]))
	}

	currentScore := ScoreFromNDVI(current.NDVIEstimate)
	baselineScore := ScoreFromNDVI(baselineNDVI)
	delta := currentScore - baselineScore

	return BaselineComparison{
		CurrentScore:         currentScore,
		BaselineScore:        baselineScore,
		ScoreDelta:           delta,
		Trend:                TrendOf(delta),
		BaselineNDVIEstimate: baselineNDVI,
		BaselineZoneNDVI:     baselineZones,
		BaselineConfidence:   round3(mean(confs)),
	}, nil
}

// mean wraps stats.Mean for inputs already guarded non-empty.
func mean(values []float64) float64 {
	m, err := stats.Mean(values)
	if err != nil {
		return 0
	}
	return m
}
