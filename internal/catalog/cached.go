package catalog

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/BrandishReveal_Go/internal/domain"
	"github.com/osse101/BrandishReveal_Go/internal/logger"
	"github.com/osse101/BrandishReveal_Go/internal/metrics"
)

// Cached keeps recently used pools in an expiring LRU. Lookup errors are not
// cached.
type Cached struct {
	next ItemCatalog
	lru  *expirable.LRU[string, []domain.PoolItem]
}

// NewCached wraps next with a cache of size entries living ttl
func NewCached(next ItemCatalog, size int, ttl time.Duration) *Cached {
	if size <= 0 {
		size = DefaultCacheSize
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Cached{
		next: next,
		lru:  expirable.NewLRU[string, []domain.PoolItem](size, nil, ttl),
	}
}

// Pool returns a cached pool or loads it from the wrapped catalog
func (c *Cached) Pool(ctx context.Context, boxName string) ([]domain.PoolItem, error) {
	log := logger.FromContext(ctx)
	if pool, ok := c.lru.Get(boxName); ok {
		log.Debug(LogMsgCacheHit, "box", boxName)
		metrics.CatalogLookups.WithLabelValues(metrics.CacheResultHit).Inc()
		return clonePool(pool), nil
	}

	log.Debug(LogMsgCacheMiss, "box", boxName)
	metrics.CatalogLookups.WithLabelValues(metrics.CacheResultMiss).Inc()
	pool, err := c.next.Pool(ctx, boxName)
	if err != nil {
		return nil, err
	}
	c.lru.Add(boxName, clonePool(pool))
	return pool, nil
}

// Invalidate drops one box from the cache
func (c *Cached) Invalidate(boxName string) {
	c.lru.Remove(boxName)
}

// Clear drops every cached pool
func (c *Cached) Clear() {
	c.lru.Purge()
}

// Len returns the number of cached pools
func (c *Cached) Len() int {
	return c.lru.Len()
}

func clonePool(pool []domain.PoolItem) []domain.PoolItem {
	out := make([]domain.PoolItem, len(pool))
	copy(out, pool)
	return out
}
