package domain

import "strings"

// referenceSeed holds empirically set NDVI data for a known scene.
type referenceSeed struct {
	ndviMean   float64
	zoneDeltas [3]float64
}

// referenceSeeds maps normalized scene ids to curated seeds. The table is
// read-only after startup; entries were calibrated against quicklook review
// of the listed passes.
var referenceSeeds = map[string]referenceSeed{
	normalizeSceneID("S2A_MSIL2A_20240612T050701_N0510_R019_T43QGF"): {
		ndviMean:   0.62,
		zoneDeltas: [3]float64{0.04, -0.01, -0.05},
	},
	normalizeSceneID("S2B_MSIL2A_20240701T050659_N0510_R019_T43QGF"): {
		ndviMean:   0.58,
		zoneDeltas: [3]float64{0.02, 0.01, -0.06},
	},
	normalizeSceneID("S2A_MSIL2A_20240809T050701_N0511_R019_T43QGF"): {
		ndviMean:   0.66,
		zoneDeltas: [3]float64{0.03, -0.02, -0.04},
	},
	normalizeSceneID("S2B_MSIL2A_20241012T051829_N0511_R062_T43QDE"): {
		ndviMean:   0.54,
		zoneDeltas: [3]float64{0.05, 0.0, -0.07},
	},
	normalizeSceneID("S2A_MSIL2A_20250114T052141_N0511_R062_T43QDE"): {
		ndviMean:   0.47,
		zoneDeltas: [3]float64{0.02, -0.03, -0.05},
	},
	normalizeSceneID("S2B_MSIL2A_20250306T051659_N0511_R062_T43QDE"): {
		ndviMean:   0.51,
		zoneDeltas: [3]float64{0.04, -0.01, -0.06},
	},
}

// lookupReferenceSeed returns the curated seed for a scene id, matching
// case- and format-insensitively.
func lookupReferenceSeed(sceneID string) (referenceSeed, bool) {
	seed, ok := referenceSeeds[normalizeSceneID(sceneID)]
	return seed, ok
}

// normalizeSceneID uppercases and strips separators so lookups tolerate the
// id format differences between catalog responses (dots, dashes, suffixes).
func normalizeSceneID(sceneID string) string {
	var b strings.Builder
	b.Grow(len(sceneID))
	for _, r := range strings.ToUpper(sceneID) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
