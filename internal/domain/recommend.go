package domain

// maxRecommendations caps the action list per run.
const maxRecommendations = 4

// recommendationTemplate is one catalog entry. The catalog order is the
// output priority order.
type recommendationTemplate struct {
	trigger    StressType
	id         string
	title      string
	rationale  string
	priority   Priority
	confidence float64
}

var recommendationCatalog = []recommendationTemplate{
	{
		trigger:    StressWaterStress,
		id:         "water-balance-check",
		title:      "Check irrigation and soil moisture",
		rationale:  "Low or falling vegetation vigor often traces back to a water deficit. Verify irrigation coverage and soil moisture before adjusting anything else.",
		priority:   PriorityHigh,
		confidence: 0.82,
	},
	{
		trigger:    StressNutrientStress,
		id:         "nutrient-correction",
		title:      "Review the fertilizer program",
		rationale:  "Uneven zone health at mid-range vigor suggests patchy nutrient availability. A soil test in the weaker zones will confirm before corrective application.",
		priority:   PriorityMedium,
		confidence: 0.74,
	},
	{
		trigger:    StressPestOrDiseaseRisk,
		id:         "pest-scouting",
		title:      "Scout weak zones for pests and disease",
		rationale:  "A sharply weaker zone is the typical signature of a localized pest or disease pocket. Walk the affected zone and check leaves and stems.",
		priority:   PriorityHigh,
		confidence: 0.76,
	},
	{
		trigger:    StressCloudUncertainty,
		id:         "field-verification",
		title:      "Verify conditions on the ground",
		rationale:  "Satellite confidence is reduced for this scan. A quick field walk confirms whether the estimated stress is real before acting on it.",
		priority:   PriorityMedium,
		confidence: 0.68,
	},
}

var maintainPractice = ActionRecommendation{
	ID:         "maintain-practice",
	Title:      "Maintain current practices",
	Rationale:  "No stress signal crossed an action threshold in this scan. Keep the current irrigation and nutrition schedule and re-check after the next pass.",
	Priority:   PriorityLow,
	Confidence: 0.7,
}

// BuildRecommendations maps the set of detected stress-signal types to the
// action catalog, deduplicated by id, capped at four, in catalog order. When
// no signal maps to an action, a single maintain-practice entry is returned.
func BuildRecommendations(signals []StressSignal) []ActionRecommendation {
	present := make(map[StressType]bool, len(signals))
	for _, s := range signals {
		present[s.Type] = true
	}

	var recs []ActionRecommendation
	seen := make(map[string]bool)
	for _, tpl := range recommendationCatalog {
		if !present[tpl.trigger] || seen[tpl.id] {
			continue
		}
		seen[tpl.id] = true
		recs = append(recs, ActionRecommendation{
			ID:         tpl.id,
			Title:      tpl.title,
			Rationale:  tpl.rationale,
			Priority:   tpl.priority,
			Confidence: round2(tpl.confidence),
		})
		if len(recs) == maxRecommendations {
			break
		}
	}

	if len(recs) == 0 {
		return []ActionRecommendation{maintainPractice}
	}
	return recs
}
