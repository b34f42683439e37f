package compliance

import (
	"strings"
	"sync"
	"time"
)

// matrixCache memoizes full-organization matrices for a bounded interval so
// repeated dashboard loads skip recomputation. Keys carry the as-of date, and
// any write to the org's documents, catalog or roster must call invalidate:
// freshness wins over hit rate. A non-positive ttl disables the cache.
type matrixCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]cacheEntry
}

type cacheEntry struct {
	matrix  ComplianceMatrix
	expires time.Time
}

func newMatrixCache(ttl time.Duration) *matrixCache {
	return &matrixCache{ttl: ttl, entries: make(map[string]cacheEntry)}
}

func cacheKey(orgID string, asOf time.Time) string {
	return orgID + "|" + asOf.UTC().Format("2006-01-02")
}

func (c *matrixCache) get(orgID string, asOf time.Time) (ComplianceMatrix, bool) {
	if c.ttl <= 0 {
		return ComplianceMatrix{}, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[cacheKey(orgID, asOf)]
	if !ok || time.Now().After(entry.expires) {
		return ComplianceMatrix{}, false
	}
	return entry.matrix, true
}

func (c *matrixCache) put(orgID string, asOf time.Time, matrix ComplianceMatrix) {
	if c.ttl <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[cacheKey(orgID, asOf)] = cacheEntry{matrix: matrix, expires: time.Now().Add(c.ttl)}
}

func (c *matrixCache) invalidate(orgID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.entries {
		if strings.HasPrefix(key, orgID+"|") {
			delete(c.entries, key)
		}
	}
}
