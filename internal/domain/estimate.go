package domain

import (
	"hash/fnv"
	"math"
)

// Estimation constants. Empirically tuned in the source advisory product;
// kept verbatim for compatibility.
const (
	ndviFloor = 0.1
	ndviCeil  = 0.9

	proxyNDVIFloor = 0.12
	proxyNDVICeil  = 0.86

	seasonBase      = 0.5
	seasonAmplitude = 0.13

	driftRange   = 0.09 // drift in [-0.09, 0.09)
	spreadMin    = 0.04
	spreadRange  = 0.08 // spread in [0.04, 0.12)
	cloudCapProx = 80.0
)

// EstimateScene derives a vegetation-index estimate from one scene's
// metadata. Pure and total: it never fails, and the same scene id with the
// same cloud cover and capture month always yields the same estimate.
func EstimateScene(scene SceneMetadata) SceneEstimate {
	if seed, ok := lookupReferenceSeed(scene.SceneID); ok {
		return estimateFromReferenceSeed(seed, scene.CloudCover)
	}
	return estimateFromMetadataProxy(scene)
}

// estimateFromReferenceSeed applies the curated seed's NDVI mean and zone
// deltas, penalized lightly for cloud cover.
func estimateFromReferenceSeed(seed referenceSeed, cloudCover float64) SceneEstimate {
	ndvi := round3(clamp(seed.ndviMean-cloudCover/1000, ndviFloor, ndviCeil))

	var zones [3]float64
	for i, delta := range seed.zoneDeltas {
		zones[i] = round3(clamp(ndvi+delta, ndviFloor, ndviCeil))
	}

	return SceneEstimate{
		NDVIEstimate: ndvi,
		ZoneNDVI:     zones,
		Confidence:   round3(clamp(0.84-cloudCover/220, 0.45, 0.9)),
		Method:       MethodReferenceSeed,
	}
}

// estimateFromMetadataProxy is the common path for unseen scenes: a seasonal
// curve for the capture month, a deterministic drift hashed from the scene
// id, and a cloud-cover penalty.
func estimateFromMetadataProxy(scene SceneMetadata) SceneEstimate {
	month := float64(scene.CapturedAt.UTC().Month())
	seasonCurve := seasonBase + seasonAmplitude*math.Sin(month/12*2*math.Pi)

	drift := (hashUnit(scene.SceneID+"|drift")*2 - 1) * driftRange
	cloudPenalty := clamp(scene.CloudCover, 0, cloudCapProx) / 320

	ndvi := round3(clamp(seasonCurve+drift-cloudPenalty, proxyNDVIFloor, proxyNDVICeil))

	spread := spreadMin + hashUnit(scene.SceneID+"|spread")*spreadRange
	zones := [3]float64{
		round3(clamp(ndvi+0.8*spread, ndviFloor, ndviCeil)),
		round3(clamp(ndvi-0.2*spread, ndviFloor, ndviCeil)),
		round3(clamp(ndvi-spread, ndviFloor, ndviCeil)),
	}

	lowCloudBonus := 0.0
	if scene.CloudCover < 15 {
		lowCloudBonus = 0.08
	}

	return SceneEstimate{
		NDVIEstimate: ndvi,
		ZoneNDVI:     zones,
		Confidence:   round3(clamp(0.58-scene.CloudCover/180+lowCloudBonus, 0.28, 0.76)),
		Method:       MethodMetadataProxy,
	}
}

// hashUnit maps a string to a deterministic value in [0, 1) using FNV-1a
// 32-bit. The hash algorithm is pinned: determinism across runs and across
// reimplementations is part of the estimator contract.
func hashUnit(s string) float64 {
	h := fnv.New32a()
	h.Write([]byte(s)) //nolint:errcheck // fnv never errors
	return float64(h.Sum32()%10000) / 10000
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
