package repositories

import (
	"sync"
	"time"
)

// defaultCacheTTL matches the GitHub rate limit budget: repeated analyses of
// the same repository within this window reuse the previous result.
const defaultCacheTTL = 5 * time.Minute

type cacheEntry struct {
	analysis  Analysis
	expiresAt time.Time
}

// resultCache is a TTL cache of completed analyses keyed by repository.
type resultCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]cacheEntry

	// now is swapped out in tests.
	now func() time.Time
}

func newResultCache(ttl time.Duration) *resultCache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &resultCache{
		ttl:     ttl,
		entries: make(map[string]cacheEntry),
		now:     time.Now,
	}
}

func cacheKey(owner, repo, branch string) string {
	return owner + "/" + repo + "@" + branch
}

func (c *resultCache) get(key string) (Analysis, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[key]
	if !ok {
		return Analysis{}, false
	}
	if c.now().After(entry.expiresAt) {
		delete(c.entries, key)
		return Analysis{}, false
	}
	return entry.analysis, true
}

func (c *resultCache) put(key string, analysis Analysis) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{analysis: analysis, expiresAt: c.now().Add(c.ttl)}
}

func (c *resultCache) invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}
