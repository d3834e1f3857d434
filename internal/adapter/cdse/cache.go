package cdse

import (
	"container/list"
	"context"
	"fmt"
	"sync"

	"github.com/NoobSambit/KisanSetu-Hackathon-sub000/internal/engine"
	"github.com/NoobSambit/KisanSetu-Hackathon-sub000/internal/observability"
)

// CachedFetcher wraps a SceneFetcher with an in-memory LRU cache keyed by
// the full query. The engine itself stays stateless; memoization lives here
// at the collaborator boundary.
type CachedFetcher struct {
	inner   engine.SceneFetcher
	metrics *observability.Metrics

	mu      sync.Mutex
	max     int
	order   *list.List // front = most recently used
	entries map[string]*list.Element
}

type cacheEntry struct {
	key    string
	result engine.SceneFetchResult
}

// NewCachedFetcher creates a cache decorator around a scene fetcher.
func NewCachedFetcher(inner engine.SceneFetcher, maxEntries int, metrics *observability.Metrics) *CachedFetcher {
	return &CachedFetcher{
		inner:   inner,
		metrics: metrics,
		max:     maxEntries,
		order:   list.New(),
		entries: make(map[string]*list.Element, maxEntries),
	}
}

func (c *CachedFetcher) FetchScenes(ctx context.Context, q engine.SceneQuery) (engine.SceneFetchResult, error) {
	key := queryKey(q)
	if result, ok := c.lookup(key); ok {
		c.metrics.CatalogCache.WithLabelValues("hit").Inc()
		return result, nil
	}
	c.metrics.CatalogCache.WithLabelValues("miss").Inc()

	result, err := c.inner.FetchScenes(ctx, q)
	if err != nil {
		return result, err
	}
	// Only cache non-empty results so a transiently empty window can be
	// retried on the next sweep.
	if len(result.Scenes) > 0 {
		c.store(key, result)
	}
	return result, nil
}

func (c *CachedFetcher) lookup(key string) (engine.SceneFetchResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.entries[key]
	if !ok {
		return engine.SceneFetchResult{}, false
	}
	c.order.MoveToFront(elem)
	return elem.Value.(*cacheEntry).result, true
}

func (c *CachedFetcher) store(key string, result engine.SceneFetchResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.entries[key]; ok {
		elem.Value.(*cacheEntry).result = result
		c.order.MoveToFront(elem)
		return
	}

	c.entries[key] = c.order.PushFront(&cacheEntry{key: key, result: result})

	for len(c.entries) > c.max {
		oldest := c.order.Back()
		if oldest == nil {
			break
		}
		c.order.Remove(oldest)
		delete(c.entries, oldest.Value.(*cacheEntry).key)
	}
}

func queryKey(q engine.SceneQuery) string {
	return fmt.Sprintf("%s|%s|%s|%.0f|%d|%t",
		q.AOI.ID,
		q.Start.UTC().Format("2006-01-02"),
		q.End.UTC().Format("2006-01-02"),
		q.MaxCloudCover, q.MaxScenes, q.AllowFallback)
}
