package domain

import (
	"fmt"
	"time"
)

// HealthInsight is the aggregate returned to callers for one analysis run.
type HealthInsight struct {
	GeneratedAt          time.Time      `json:"generatedAt"`
	DataSource           DataSource     `json:"dataSource"`
	Confidence           float64        `json:"confidence"`
	ScoreLabel           string         `json:"scoreLabel"`
	CurrentScore         int            `json:"currentScore"`
	BaselineScore        int            `json:"baselineScore"`
	ScoreDelta           int            `json:"scoreDelta"`
	Trend                Trend          `json:"trend"`
	NDVIEstimate         float64        `json:"ndviEstimate"`
	BaselineNDVIEstimate float64        `json:"baselineNdviEstimate"`
	EstimateMethod       EstimateMethod `json:"estimateMethod"`
	SummaryCardText      string         `json:"summaryCardText"`
	UncertaintyNote      string         `json:"uncertaintyNote,omitempty"`
	CurrentScene         SceneRef       `json:"currentScene"`
	Zones                []ZoneHealth   `json:"zones"`
	StressSignals        []StressSignal `json:"stressSignals"`
	Recommendations      []ActionRecommendation `json:"recommendations"`
	Alerts               []HealthAlert  `json:"alerts"`
	MapOverlay           MapOverlay     `json:"mapOverlay"`

	// HighAccuracyUnavailableReason explains why a pixel-accurate result
	// could not be produced, when that is the case.
	HighAccuracyUnavailableReason string `json:"highAccuracyUnavailableReason,omitempty"`
}

// Score label bands. 75 is the empirical "excellent" cutoff from the source
// product; 65 and 40 mirror the zone status thresholds.
const excellentScore = 75

// ScoreLabel maps a health score to its display label.
func ScoreLabel(score int) string {
	switch {
	case score >= excellentScore:
		return "Excellent"
	case score >= zoneHealthyScore:
		return "Good"
	case score >= zoneWatchScore:
		return "Moderate"
	default:
		return "Poor"
	}
}

// ComposeSummary builds the one-line summary card text from the score label,
// the delta phrasing, and the single weakest zone.
func ComposeSummary(score, delta int, trend Trend, zones []ZoneHealth) string {
	var deltaPhrase string
	switch trend {
	case TrendUp:
		deltaPhrase = fmt.Sprintf("up %d points vs the baseline period", delta)
	case TrendDown:
		deltaPhrase = fmt.Sprintf("down %d points vs the baseline period", -delta)
	default:
		deltaPhrase = "holding steady vs the baseline period"
	}

	weakest := WeakestZone(zones)
	return fmt.Sprintf("Crop health is %s (%d/100), %s. Weakest area: %s (%s).",
		ScoreLabel(score), score, deltaPhrase, weakest.ZoneLabel, weakest.Status)
}

// BlendConfidence combines the current and mean-baseline estimate confidence
// into the insight-level confidence: penalized when either window used
// fallback sample data, rewarded slightly when the combined scene count is
// at least four, clamped to [0.28, 0.9].
func BlendConfidence(currentConf, baselineConf float64, currentSource, baselineSource DataSource, sceneCount int) float64 {
	blended := (currentConf + baselineConf) / 2
	if currentSource == DataSourceFallbackSample {
		blended -= 0.08
	}
	if baselineSource == DataSourceFallbackSample {
		blended -= 0.05
	}
	if sceneCount >= 4 {
		blended += 0.05
	}
	return round2(clamp(blended, 0.28, 0.9))
}

// UncertaintyNote explains degraded observation quality to the farmer, or
// returns "" when the scan is as good as this engine produces.
func UncertaintyNote(method EstimateMethod, source DataSource, cloudCover float64) string {
	switch {
	case source == DataSourceFallbackSample:
		return "Live satellite data was unavailable; pre-canned sample scenes were substituted for this scan."
	case cloudCover > highCloudCover:
		return fmt.Sprintf("High cloud cover (%.0f%%) reduced the quality of this observation.", cloudCover)
	case method == MethodMetadataProxy:
		return "This estimate is derived from scene metadata rather than pixel-level imagery."
	default:
		return ""
	}
}

// HighAccuracyReason names why a pixel-accurate result was not produced, or
// "" when the reference-seed path was used with live data.
func HighAccuracyReason(method EstimateMethod, source DataSource) string {
	switch {
	case source == DataSourceFallbackSample:
		return "live satellite catalog unreachable; sample scenes used"
	case method == MethodMetadataProxy:
		return "pixel-level NDVI rasters unavailable for this scene; metadata-based estimate used"
	default:
		return ""
	}
}
