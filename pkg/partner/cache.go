package partner

import (
	"context"
	"sync"
	"time"

	"github.com/snaplink-hq/paybridge/pkg/metrics"
)

// MetadataCache memoizes the token-info directory for a fixed TTL
// measured from the last successful fetch. A fetch failure propagates to
// the caller: stale pool state would produce an incorrect quote, so there
// is no stale-while-error fallback.
//
// Concurrent refreshes on simultaneous expiry are allowed to race; the
// write is a last-writer-wins replace of an immutable snapshot.
type MetadataCache struct {
	mu        sync.RWMutex
	value     Directory
	fetchedAt time.Time
	ttl       time.Duration
	fetch     func(ctx context.Context) (Directory, error)
}

// NewMetadataCache creates a cache over the given fetch function
func NewMetadataCache(ttl time.Duration, fetch func(ctx context.Context) (Directory, error)) *MetadataCache {
	return &MetadataCache{
		ttl:   ttl,
		fetch: fetch,
	}
}

// Get returns the cached directory, refreshing from the partner when the
// TTL has elapsed. A cache hit performs no I/O.
func (c *MetadataCache) Get(ctx context.Context) (Directory, error) {
	c.mu.RLock()
	value, fetchedAt := c.value, c.fetchedAt
	c.mu.RUnlock()

	if value != nil && time.Since(fetchedAt) < c.ttl {
		metrics.MetadataCacheHits.Inc()
		return value, nil
	}

	metrics.MetadataCacheMisses.Inc()
	fresh, err := c.fetch(ctx)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.value = fresh
	c.fetchedAt = time.Now()
	c.mu.Unlock()

	return fresh, nil
}

// Invalidate drops the cached snapshot, forcing a fetch on the next Get
func (c *MetadataCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.value = nil
	c.fetchedAt = time.Time{}
}
