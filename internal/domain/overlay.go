package domain

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// OverlayStrategy names how the overlay geometry was produced.
type OverlayStrategy string

const (
	// OverlayEstimatedZones is the only strategy this engine produces.
	OverlayEstimatedZones OverlayStrategy = "estimated_zones"
	// OverlayNDVIRaster is reserved for a higher-fidelity raster collaborator.
	OverlayNDVIRaster OverlayStrategy = "ndvi_raster"
)

// LegendEntry maps a zone status to its score range and render color.
type LegendEntry struct {
	Status   ZoneStatus `json:"status"`
	Label    string     `json:"label"`
	MinScore int        `json:"minScore"`
	MaxScore int        `json:"maxScore"`
	Color    string     `json:"color"`
}

// ZonePolygon is one renderable zone band with its health classification.
type ZonePolygon struct {
	ZoneID    string            `json:"zoneId"`
	ZoneLabel string            `json:"zoneLabel"`
	Status    ZoneStatus        `json:"status"`
	Score     int               `json:"score"`
	Geometry  *geojson.Geometry `json:"geometry"`
}

// MapOverlay packages the renderable geometry and legend for an insight.
type MapOverlay struct {
	Strategy           OverlayStrategy   `json:"strategy"`
	AOISource          string            `json:"aoiSource"`
	FarmBoundary       *geojson.Geometry `json:"farmBoundary"`
	ZonePolygons       []ZonePolygon     `json:"zonePolygons"`
	SceneFootprintBBox *BBox             `json:"sceneFootprintBbox,omitempty"`
	Legend             []LegendEntry     `json:"legend"`
	Disclaimer         string            `json:"disclaimer"`
}

const overlayDisclaimer = "Zone boundaries and colors are model-estimated from scene metadata, not per-pixel NDVI raster values."

var overlayLegend = []LegendEntry{
	{Status: ZoneStatusHealthy, Label: "Healthy", MinScore: 65, MaxScore: 100, Color: "#22c55e"},
	{Status: ZoneStatusWatch, Label: "Watch", MinScore: 40, MaxScore: 64, Color: "#f59e0b"},
	{Status: ZoneStatusCritical, Label: "Critical", MinScore: 0, MaxScore: 39, Color: "#ef4444"},
}

// BuildMapOverlay slices the AOI bounding box into three equal horizontal
// latitude bands, north to south, one band per zone in index order. When the
// farmer has drawn a true boundary it is passed through verbatim; otherwise
// the AOI bbox is rendered as its own rectangle.
func BuildMapOverlay(aoi AreaOfInterest, aoiSource string, farmBoundary orb.Polygon, zones []ZoneHealth, sceneFootprint *BBox) MapOverlay {
	boundary := farmBoundary
	if boundary == nil {
		boundary = bboxPolygon(aoi.BBox)
	}

	return MapOverlay{
		Strategy:           OverlayEstimatedZones,
		AOISource:          aoiSource,
		FarmBoundary:       geojson.NewGeometry(boundary),
		ZonePolygons:       zoneBands(aoi.BBox, zones),
		SceneFootprintBBox: sceneFootprint,
		Legend:             overlayLegend,
		Disclaimer:         overlayDisclaimer,
	}
}

// zoneBands splits the bbox latitude extent into three bands. Band 0 is the
// northernmost, matching zone index order.
func zoneBands(b BBox, zones []ZoneHealth) []ZonePolygon {
	bandHeight := (b.MaxLat() - b.MinLat()) / 3

	polygons := make([]ZonePolygon, 0, len(zones))
	for i, zone := range zones {
		top := b.MaxLat() - bandHeight*float64(i)
		bottom := top - bandHeight
		if i == len(zones)-1 {
			bottom = b.MinLat()
		}

		band := orb.Polygon{orb.Ring{
			{b.MinLon(), top},
			{b.MaxLon(), top},
			{b.MaxLon(), bottom},
			{b.MinLon(), bottom},
			{b.MinLon(), top},
		}}

		polygons = append(polygons, ZonePolygon{
			ZoneID:    zone.ZoneID,
			ZoneLabel: zone.ZoneLabel,
			Status:    zone.Status,
			Score:     zone.NormalizedHealthScore,
			Geometry:  geojson.NewGeometry(band),
		})
	}
	return polygons
}

// bboxPolygon renders a bbox as a closed five-point ring.
func bboxPolygon(b BBox) orb.Polygon {
	return orb.Polygon{orb.Ring{
		{b.MinLon(), b.MaxLat()},
		{b.MaxLon(), b.MaxLat()},
		{b.MaxLon(), b.MinLat()},
		{b.MinLon(), b.MinLat()},
		{b.MinLon(), b.MaxLat()},
	}}
}
