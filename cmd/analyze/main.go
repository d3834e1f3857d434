// Command analyze runs a single crop health analysis for one area of
// interest and prints the result as JSON. It is meant for local checks and
// for inspecting what the monitor would publish for a given farm.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/NoobSambit/KisanSetu-Hackathon-sub000/internal/adapter/cdse"
	"github.com/NoobSambit/KisanSetu-Hackathon-sub000/internal/config"
	"github.com/NoobSambit/KisanSetu-Hackathon-sub000/internal/domain"
	"github.com/NoobSambit/KisanSetu-Hackathon-sub000/internal/engine"
	"github.com/NoobSambit/KisanSetu-Hackathon-sub000/internal/observability"
)

func main() {
	_ = godotenv.Load()

	var (
		aoiID         = flag.String("aoi", "cli-field", "area of interest identifier")
		name          = flag.String("name", "Field", "area of interest display name")
		bboxFlag      = flag.String("bbox", "", "bounding box as minLon,minLat,maxLon,maxLat (required)")
		windowDays    = flag.Int("window", engine.DefaultCurrentWindowDays, "current observation window in days")
		maxCloud      = flag.Float64("max-cloud", engine.DefaultMaxCloudCover, "maximum scene cloud cover percent")
		allowFallback = flag.Bool("allow-fallback", true, "permit deterministic sample scenes when the catalog is unavailable")
		pretty        = flag.Bool("pretty", true, "indent JSON output")
	)
	flag.Parse()

	bbox, err := parseBBox(*bboxFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid -bbox: %v\n", err)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := observability.NewLogger("warn", "text")
	metrics := observability.NewMetricsForTesting()

	var catalog cdse.Catalog
	if cfg.CDSEEnabled {
		catalog = cdse.NewClient(cfg.CDSEBaseURL, cfg.CDSETimeout, metrics, logger)
	}
	fetcher := cdse.NewCachedFetcher(cdse.NewFetcher(catalog, logger), cfg.CDSECacheSize, metrics)
	analyzer := engine.NewAnalyzer(fetcher, logger, metrics)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	result := analyzer.Analyze(ctx, engine.AnalysisRequest{
		AOI: domain.AreaOfInterest{
			ID:   *aoiID,
			Name: *name,
			BBox: bbox,
		},
		AOISource:         "cli",
		CurrentWindowDays: *windowDays,
		MaxCloudCover:     *maxCloud,
		AllowFallback:     *allowFallback,
	})

	enc := json.NewEncoder(os.Stdout)
	if *pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(result); err != nil {
		fmt.Fprintf(os.Stderr, "failed to encode result: %v\n", err)
		os.Exit(1)
	}
	if !result.Success {
		os.Exit(1)
	}
}

func parseBBox(s string) (domain.BBox, error) {
	var bbox domain.BBox
	if s == "" {
		return bbox, fmt.Errorf("bounding box is required")
	}
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return bbox, fmt.Errorf("expected 4 comma-separated values, got %d", len(parts))
	}
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return bbox, fmt.Errorf("value %d: %w", i+1, err)
		}
		bbox[i] = v
	}
	if bbox.MinLon() >= bbox.MaxLon() || bbox.MinLat() >= bbox.MaxLat() {
		return bbox, fmt.Errorf("min corner must be south-west of max corner")
	}
	return bbox, nil
}
