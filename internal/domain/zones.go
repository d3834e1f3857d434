package domain

// Zone status thresholds: score >= 65 healthy, >= 40 watch, else critical.
const (
	zoneHealthyScore = 65
	zoneWatchScore   = 40
)

// zoneLabels are fixed in index order, north to south.
var zoneLabels = [3]string{"North Zone", "Central Zone", "South Zone"}

var zoneIDs = [3]string{"zone-north", "zone-central", "zone-south"}

// BuildZones converts per-zone NDVI into labeled zone health records,
// trending each zone against its baseline counterpart. Always returns
// exactly three zones.
func BuildZones(zoneNDVI, baselineZoneNDVI [3]float64) []ZoneHealth {
	result := make([]ZoneHealth, 0, len(zoneNDVI))
	for i, ndvi := range zoneNDVI {
		score := ScoreFromNDVI(ndvi)
		baselineScore := ScoreFromNDVI(baselineZoneNDVI[i])

		result = append(result, ZoneHealth{
			ZoneID:                zoneIDs[i],
			ZoneLabel:             zoneLabels[i],
			NormalizedHealthScore: score,
			NDVIEstimate:          ndvi,
			Trend:                 TrendOf(score - baselineScore),
			Status:                zoneStatus(score),
		})
	}
	return result
}

func zoneStatus(score int) ZoneStatus {
	switch {
	case score >= zoneHealthyScore:
		return ZoneStatusHealthy
	case score >= zoneWatchScore:
		return ZoneStatusWatch
	default:
		return ZoneStatusCritical
	}
}

// WeakestZone returns the zone with the lowest score, first on ties.
func WeakestZone(zones []ZoneHealth) ZoneHealth {
	weakest := zones[0]
	for _, z := range zones[1:] {
		if z.NormalizedHealthScore < weakest.NormalizedHealthScore {
			weakest = z
		}
	}
	return weakest
}
