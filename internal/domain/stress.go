package domain

import "fmt"

// Rule thresholds. Set empirically in the source advisory product; kept
// verbatim for compatibility.
const (
	waterStressScore      = 45
	waterStressDelta      = -10
	nutrientScoreLow      = 40
	nutrientScoreHigh     = 65
	nutrientZoneSpread    = 15
	pestMinZoneScore      = 35
	pestZoneSpread        = 18
	highCloudCover        = 30.0
	lowConfidence         = 0.6
	recoveryDelta         = 8
	criticalScore         = 35
	declineDelta          = -12
	alertCodeCriticalDrop = "health-critical-drop"
	alertCodeDecline      = "health-decline"
	alertCodeLowConf      = "low-observation-confidence"
)

// StressInput carries the derived signals the rule engine inspects.
type StressInput struct {
	CurrentScore int
	ScoreDelta   int
	ZoneScores   [3]int
	CloudCover   float64
	Confidence   float64
}

func (in StressInput) zoneSpread() int {
	lo, hi := in.ZoneScores[0], in.ZoneScores[0]
	for _, s := range in.ZoneScores[1:] {
		if s < lo {
			lo = s
		}
		if s > hi {
			hi = s
		}
	}
	return hi - lo
}

func (in StressInput) minZone() int {
	lo := in.ZoneScores[0]
	for _, s := range in.ZoneScores[1:] {
		if s < lo {
			lo = s
		}
	}
	return lo
}

// DetectStressSignals evaluates the stress rules in catalog order. Order
// matters: the recommendation builder preserves it when mapping signal types
// to actions.
func DetectStressSignals(in StressInput) []StressSignal {
	spread := in.zoneSpread()
	minZone := in.minZone()
	absDelta := in.ScoreDelta
	if absDelta < 0 {
		absDelta = -absDelta
	}

	var signals []StressSignal

	if in.CurrentScore < waterStressScore || in.ScoreDelta <= waterStressDelta {
		signals = append(signals, StressSignal{
			Type:       StressWaterStress,
			Confidence: round2(clamp(0.55+float64(absDelta)/40, 0.45, 0.9)),
			Message:    "Vegetation vigor is low or falling sharply; possible moisture deficit.",
		})
	}

	if in.CurrentScore >= nutrientScoreLow && in.CurrentScore < nutrientScoreHigh && spread >= nutrientZoneSpread {
		signals = append(signals, StressSignal{
			Type:       StressNutrientStress,
			Confidence: round2(clamp(0.5+float64(spread)/80, 0.4, 0.86)),
			Message:    "Mid-range health with strong zone imbalance; possible nutrient deficiency.",
		})
	}

	if minZone < pestMinZoneScore && spread >= pestZoneSpread {
		signals = append(signals, StressSignal{
			Type:       StressPestOrDiseaseRisk,
			Confidence: round2(clamp(0.45+float64(pestMinZoneScore-minZone)/60, 0.35, 0.8)),
			Message:    "A localized zone is far weaker than the rest; possible pest or disease pocket.",
		})
	}

	if in.CloudCover > highCloudCover || in.Confidence < lowConfidence {
		signals = append(signals, StressSignal{
			Type:       StressCloudUncertainty,
			Confidence: round2(clamp(0.5+in.CloudCover/150, 0.45, 0.82)),
			Message:    "High cloud cover or low confidence reduces observation reliability.",
		})
	}

	if in.ScoreDelta >= recoveryDelta {
		signals = append(signals, StressSignal{
			Type:       StressGrowthRecovery,
			Confidence: round2(clamp(0.55+float64(in.ScoreDelta)/40, 0.45, 0.9)),
			Message:    "Health is trending upward versus the baseline period.",
		})
	}

	return signals
}

// BuildAlerts emits severity-tagged alerts on thresholds independent of the
// stress rules. The critical and warning alerts are mutually exclusive; the
// low-confidence info alert can co-occur with either.
func BuildAlerts(in StressInput) []HealthAlert {
	var alerts []HealthAlert

	switch {
	case in.CurrentScore < criticalScore:
		alerts = append(alerts, HealthAlert{
			Severity: SeverityCritical,
			Code:     alertCodeCriticalDrop,
			Title:    "Critical crop health",
			Message:  fmt.Sprintf("Overall health score %d/100 is critically low. Inspect the field as soon as possible.", in.CurrentScore),
		})
	case in.ScoreDelta <= declineDelta:
		alerts = append(alerts, HealthAlert{
			Severity: SeverityWarning,
			Code:     alertCodeDecline,
			Title:    "Crop health declining",
			Message:  fmt.Sprintf("Health dropped %d points versus the baseline period.", -in.ScoreDelta),
		})
	}

	if in.Confidence < lowConfidence || in.CloudCover > highCloudCover {
		alerts = append(alerts, HealthAlert{
			Severity: SeverityInfo,
			Code:     alertCodeLowConf,
			Title:    "Low observation confidence",
			Message:  "Cloud cover or sparse data reduced the reliability of this scan. Treat the score as indicative.",
		})
	}

	return alerts
}
