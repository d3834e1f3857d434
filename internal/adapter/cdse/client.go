// Package cdse implements the scene ingest collaborator against the
// Copernicus Data Space Ecosystem (CDSE) OpenSearch catalog. It searches
// scene metadata only; no imagery is downloaded or decoded here.
package cdse

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/paulmach/orb/geojson"

	"github.com/NoobSambit/KisanSetu-Hackathon-sub000/internal/domain"
	"github.com/NoobSambit/KisanSetu-Hackathon-sub000/internal/engine"
	"github.com/NoobSambit/KisanSetu-Hackathon-sub000/internal/observability"
)

const defaultBaseURL = "https://catalogue.dataspace.copernicus.eu"

// Client searches the CDSE Sentinel-2 catalog. Catalog search is
// unauthenticated; only imagery downloads (out of scope) need credentials.
type Client struct {
	httpClient *http.Client
	baseURL    string
	collection string
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates a CDSE catalog client. An empty baseURL selects the
// public catalog endpoint.
func NewClient(baseURL string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		collection: "Sentinel2",
		metrics:    metrics,
		logger:     logger,
	}
}

// Search returns scene metadata for the query window, newest first.
func (c *Client) Search(ctx context.Context, q engine.SceneQuery) ([]domain.SceneMetadata, error) {
	params := url.Values{
		"box": {fmt.Sprintf("%.6f,%.6f,%.6f,%.6f",
			q.AOI.BBox.MinLon(), q.AOI.BBox.MinLat(), q.AOI.BBox.MaxLon(), q.AOI.BBox.MaxLat())},
		"startDate":       {q.Start.UTC().Format("2006-01-02T15:04:05Z")},
		"completionDate":  {q.End.UTC().Format("2006-01-02T15:04:05Z")},
		"cloudCover":      {fmt.Sprintf("[0,%.0f]", q.MaxCloudCover)},
		"maxRecords":      {fmt.Sprintf("%d", q.MaxScenes)},
		"processingLevel": {"S2MSI2A"},
		"sortParam":       {"startDate"},
		"sortOrder":       {"descending"},
	}
	fullURL := fmt.Sprintf("%s/resto/api/collections/%s/search.json?%s", c.baseURL, c.collection, params.Encode())

	start := time.Now()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create catalog request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.CatalogRequests.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("cdse catalog search: %w", err)
	}
	defer resp.Body.Close()
	c.metrics.CatalogAPIDuration.Observe(time.Since(start).Seconds())

	if resp.StatusCode != http.StatusOK {
		c.metrics.CatalogRequests.WithLabelValues("error").Inc()
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("cdse catalog error: status %d: %s", resp.StatusCode, body)
	}

	var search searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&search); err != nil {
		c.metrics.CatalogRequests.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("decode catalog response: %w", err)
	}

	if len(search.Features) == 0 {
		c.metrics.CatalogRequests.WithLabelValues("empty").Inc()
		return nil, nil
	}
	c.metrics.CatalogRequests.WithLabelValues("success").Inc()

	scenes := make([]domain.SceneMetadata, 0, len(search.Features))
	for _, f := range search.Features {
		scenes = append(scenes, mapFeatureToScene(f))
	}
	return scenes, nil
}

func mapFeatureToScene(f feature) domain.SceneMetadata {
	capturedAt, err := time.Parse(time.RFC3339, f.Properties.StartDate)
	if err != nil {
		// resto also emits fractional-second timestamps without a zone.
		capturedAt, _ = time.Parse("2006-01-02T15:04:05.999999", f.Properties.StartDate)
	}

	scene := domain.SceneMetadata{
		SceneID:      f.Properties.Title,
		CapturedAt:   capturedAt.UTC(),
		CloudCover:   f.Properties.CloudCover,
		TileID:       tileIDFromTitle(f.Properties.Title),
		Collection:   f.Properties.Collection,
		QuicklookURL: f.Properties.Quicklook,
	}
	if scene.SceneID == "" {
		scene.SceneID = f.ID
	}
	if f.Geometry != nil {
		bound := f.Geometry.Geometry().Bound()
		bbox := domain.BBox{bound.Min[0], bound.Min[1], bound.Max[0], bound.Max[1]}
		scene.BBox = &bbox
	}
	return scene
}

// tileIDFromTitle extracts the MGRS tile segment from a Sentinel-2 product
// title, e.g. "S2B_MSIL2A_..._T43QGF_..." -> "T43QGF".
func tileIDFromTitle(title string) string {
	for _, part := range strings.Split(title, "_") {
		if len(part) == 6 && strings.HasPrefix(part, "T") {
			return part
		}
	}
	return ""
}

// CDSE resto API response types.

type searchResponse struct {
	Features []feature `json:"features"`
}

type feature struct {
	ID         string            `json:"id"`
	Geometry   *geojson.Geometry `json:"geometry"`
	Properties properties        `json:"properties"`
}

type properties struct {
	Title      string  `json:"title"`
	StartDate  string  `json:"startDate"`
	CloudCover float64 `json:"cloudCover"`
	Collection string  `json:"collection"`
	Quicklook  string  `json:"quicklook"`
}
