package cdse

import (
	"context"
	"errors"
	"log/slog"

	"github.com/NoobSambit/KisanSetu-Hackathon-sub000/internal/domain"
	"github.com/NoobSambit/KisanSetu-Hackathon-sub000/internal/engine"
)

// Catalog searches a satellite scene catalog.
type Catalog interface {
	Search(ctx context.Context, q engine.SceneQuery) ([]domain.SceneMetadata, error)
}

// Fetcher implements engine.SceneFetcher on top of a live catalog with
// per-call fallback substitution: when the live search fails or comes back
// empty and the query permits it, a deterministic sample scene set tagged
// fallback_sample is returned instead.
type Fetcher struct {
	catalog Catalog // nil when live search is disabled
	logger  *slog.Logger
}

// NewFetcher creates a Fetcher. Pass a nil catalog to serve fallback
// samples only (live search disabled).
func NewFetcher(catalog Catalog, logger *slog.Logger) *Fetcher {
	return &Fetcher{catalog: catalog, logger: logger}
}

// FetchScenes resolves one window's scene set.
func (f *Fetcher) FetchScenes(ctx context.Context, q engine.SceneQuery) (engine.SceneFetchResult, error) {
	if f.catalog == nil {
		if !q.AllowFallback {
			return engine.SceneFetchResult{}, errors.New("live scene catalog disabled and fallback not permitted")
		}
		return f.fallback(q), nil
	}

	scenes, err := f.catalog.Search(ctx, q)
	if err != nil {
		if !q.AllowFallback {
			return engine.SceneFetchResult{}, err
		}
		f.logger.Warn("live catalog search failed, substituting sample scenes",
			"aoi_id", q.AOI.ID, "error", err)
		return f.fallback(q), nil
	}

	if len(scenes) == 0 && q.AllowFallback {
		f.logger.Info("live catalog returned no scenes, substituting sample scenes",
			"aoi_id", q.AOI.ID, "start", q.Start, "end", q.End)
		return f.fallback(q), nil
	}

	return engine.SceneFetchResult{DataSource: domain.DataSourceLiveCDSE, Scenes: scenes}, nil
}

func (f *Fetcher) fallback(q engine.SceneQuery) engine.SceneFetchResult {
	return engine.SceneFetchResult{
		DataSource: domain.DataSourceFallbackSample,
		Scenes:     sampleScenes(q),
	}
}
