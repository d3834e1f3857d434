package domain

import "time"

// BBox is a WGS-84 bounding rectangle: [minLon, minLat, maxLon, maxLat].
type BBox [4]float64

func (b BBox) MinLon() float64 { return b[0] }
func (b BBox) MinLat() float64 { return b[1] }
func (b BBox) MaxLon() float64 { return b[2] }
func (b BBox) MaxLat() float64 { return b[3] }

// AreaOfInterest identifies the farm boundary (or a demo fallback boundary)
// to analyze. Immutable per request.
type AreaOfInterest struct {
	ID   string `json:"aoiId"`
	Name string `json:"name"`
	BBox BBox   `json:"bbox"`
}

// DataSource tags where a scene set came from.
type DataSource string

const (
	DataSourceLiveCDSE       DataSource = "live_cdse"
	DataSourceFallbackSample DataSource = "fallback_sample"
)

// SceneMetadata describes one satellite pass result as returned by the
// ingest collaborator. CloudCover is a percentage in [0, 100].
type SceneMetadata struct {
	SceneID      string    `json:"sceneId"`
	CapturedAt   time.Time `json:"capturedAt"`
	CloudCover   float64   `json:"cloudCover"`
	TileID       string    `json:"tileId"`
	Collection   string    `json:"collection"`
	BBox         *BBox     `json:"bbox,omitempty"`
	QuicklookURL string    `json:"quicklookUrl,omitempty"`
}

// EstimateMethod records how a scene estimate was derived.
type EstimateMethod string

const (
	MethodReferenceSeed EstimateMethod = "reference_seed"
	MethodMetadataProxy EstimateMethod = "metadata_proxy"
)

// SceneEstimate is the derived vegetation-index estimate for one scene.
// It is internal to an analysis run and never persisted. The same scene id
// always yields the same estimate.
type SceneEstimate struct {
	NDVIEstimate float64
	ZoneNDVI     [3]float64
	Confidence   float64
	Method       EstimateMethod
}

// Trend classifies a score delta versus the baseline window.
type Trend string

const (
	TrendUp     Trend = "up"
	TrendDown   Trend = "down"
	TrendStable Trend = "stable"
)

// ZoneStatus is the health classification of a single zone.
type ZoneStatus string

const (
	ZoneStatusHealthy  ZoneStatus = "healthy"
	ZoneStatusWatch    ZoneStatus = "watch"
	ZoneStatusCritical ZoneStatus = "critical"
)

// ZoneHealth is one spatial zone's health record, created fresh on every
// analysis run and never mutated afterward.
type ZoneHealth struct {
	ZoneID                string     `json:"zoneId"`
	ZoneLabel             string     `json:"zoneLabel"`
	NormalizedHealthScore int        `json:"normalizedHealthScore"`
	NDVIEstimate          float64    `json:"ndviEstimate"`
	Trend                 Trend      `json:"trend"`
	Status                ZoneStatus `json:"status"`
}

// StressType enumerates the rule-based stress categories.
type StressType string

const (
	StressWaterStress       StressType = "water_stress"
	StressNutrientStress    StressType = "nutrient_stress"
	StressPestOrDiseaseRisk StressType = "pest_or_disease_risk"
	StressCloudUncertainty  StressType = "cloud_uncertainty"
	StressGrowthRecovery    StressType = "growth_recovery"
)

// StressSignal is one inferred stress condition with rule confidence.
type StressSignal struct {
	Type       StressType `json:"type"`
	Confidence float64    `json:"confidence"`
	Message    string     `json:"message"`
}

// Priority ranks a recommendation for the farmer.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// ActionRecommendation is one prioritized action derived from stress signals.
type ActionRecommendation struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Rationale  string   `json:"rationale"`
	Priority   Priority `json:"priority"`
	Confidence float64  `json:"confidence"`
}

// Severity grades a health alert.
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// HealthAlert is a human-readable alert with a stable code.
type HealthAlert struct {
	Severity Severity `json:"severity"`
	Code     string   `json:"code"`
	Title    string   `json:"title"`
	Message  string   `json:"message"`
}

// SceneRef points at the canonical observation behind an insight.
type SceneRef struct {
	SceneID    string    `json:"sceneId"`
	CapturedAt time.Time `json:"capturedAt"`
	CloudCover float64   `json:"cloudCover"`
	TileID     string    `json:"tileId,omitempty"`
	Collection string    `json:"collection,omitempty"`
}

// DateRange is an inclusive calendar date window.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}
