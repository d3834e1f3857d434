package cdse

import (
	"fmt"
	"strings"

	"github.com/NoobSambit/KisanSetu-Hackathon-sub000/internal/domain"
	"github.com/NoobSambit/KisanSetu-Hackathon-sub000/internal/engine"
)

// sampleRevisitDays approximates the Sentinel-2 revisit cadence used to
// space fallback scenes across a window.
const sampleRevisitDays = 12

// sampleCloudCovers cycles plausible cloud-cover values over the generated
// scenes, newest first.
var sampleCloudCovers = []float64{12, 34, 8}

// sampleScenes generates a deterministic pre-canned scene set for a query
// window. Scene ids depend only on the AOI and capture date, so repeated
// fallback runs produce identical estimates downstream.
func sampleScenes(q engine.SceneQuery) []domain.SceneMetadata {
	maxScenes := q.MaxScenes
	if maxScenes > 3 {
		maxScenes = 3
	}

	aoiTag := strings.ToUpper(strings.ReplaceAll(q.AOI.ID, "-", ""))
	if aoiTag == "" {
		aoiTag = "DEMO"
	}

	var scenes []domain.SceneMetadata
	for i := 0; i < maxScenes; i++ {
		capturedAt := q.End.AddDate(0, 0, -i*sampleRevisitDays)
		if capturedAt.Before(q.Start) {
			break
		}
		cloud := sampleCloudCovers[i%len(sampleCloudCovers)]
		if cloud > q.MaxCloudCover {
			continue
		}

		bbox := q.AOI.BBox
		scenes = append(scenes, domain.SceneMetadata{
			SceneID:    fmt.Sprintf("SAMPLE_%s_%s", aoiTag, capturedAt.UTC().Format("20060102")),
			CapturedAt: capturedAt.UTC(),
			CloudCover: cloud,
			TileID:     "T43QGF",
			Collection: "SAMPLE",
			BBox:       &bbox,
		})
	}
	return scenes
}
