package datasource

import (
	"context"
	"sync"
	"time"

	cache "github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"
	"github.com/yourusername/fairline/internal/models"
)

// SnapshotCache provides short-TTL in-memory caching of per-league snapshots.
// The TTL should stay below the pass interval so consecutive passes do not
// recompute against identical data while still absorbing bursty callers.
type SnapshotCache struct {
	cache     *cache.Cache
	ttl       time.Duration
	mu        sync.RWMutex
	hitCount  uint64
	missCount uint64
}

// NewSnapshotCache creates a new snapshot cache
func NewSnapshotCache(ttl time.Duration) *SnapshotCache {
	return &SnapshotCache{
		cache: cache.New(ttl, ttl*2),
		ttl:   ttl,
	}
}

// Get retrieves a cached snapshot for a league
func (sc *SnapshotCache) Get(league string) []*models.BetRecord {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if result, found := sc.cache.Get(league); found {
		sc.hitCount++
		if records, ok := result.([]*models.BetRecord); ok {
			return records
		}
	}

	sc.missCount++
	return nil
}

// Set stores a snapshot for a league
func (sc *SnapshotCache) Set(league string, records []*models.BetRecord) {
	sc.cache.Set(league, records, sc.ttl)
}

// Stats returns cache hit and miss counts
func (sc *SnapshotCache) Stats() (hits, misses uint64) {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.hitCount, sc.missCount
}

// CachedOddsSource wraps an OddsSource with snapshot caching
type CachedOddsSource struct {
	source OddsSource
	cache  *SnapshotCache
	logger *logrus.Logger
}

// NewCachedOddsSource creates a new cached odds source
func NewCachedOddsSource(source OddsSource, ttl time.Duration, logger *logrus.Logger) *CachedOddsSource {
	return &CachedOddsSource{
		source: source,
		cache:  NewSnapshotCache(ttl),
		logger: logger,
	}
}

// Stats returns the hit and miss counts of the underlying cache
func (c *CachedOddsSource) Stats() (hits, misses uint64) {
	return c.cache.Stats()
}

// Name returns the name of the underlying data source
func (c *CachedOddsSource) Name() string {
	return c.source.Name()
}

// Healthy reports the health of the underlying data source
func (c *CachedOddsSource) Healthy() bool {
	return c.source.Healthy()
}

// FetchRecords retrieves a league snapshot, serving from cache when fresh
func (c *CachedOddsSource) FetchRecords(ctx context.Context, league string) ([]*models.BetRecord, error) {
	if cached := c.cache.Get(league); cached != nil {
		c.logger.WithField("league", league).Debug("Cache hit for snapshot")
		return cached, nil
	}

	records, err := c.source.FetchRecords(ctx, league)
	if err != nil {
		return nil, err
	}

	c.cache.Set(league, records)
	return records, nil
}
