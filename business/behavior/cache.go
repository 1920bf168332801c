package behavior

import (
	"sort"
	"sync"

	"ivolexMarket/domain"
)

// recoCache memoizes per-parameter recommendation results behind an explicit
// bound. Least-recently-used entries are dropped once the bound is exceeded.
type recoCache struct {
	mu      sync.Mutex
	maxSize int
	seq     uint64
	entries map[string]*recoCacheEntry
}

type recoCacheEntry struct {
	recs     []domain.ScoredProduct
	lastUsed uint64
}

func newRecoCache(maxSize int) *recoCache {
	if maxSize <= 0 {
		maxSize = defaultCacheSize
	}
	return &recoCache{
		maxSize: maxSize,
		entries: make(map[string]*recoCacheEntry),
	}
}

func (c *recoCache) get(key string) ([]domain.ScoredProduct, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}

	c.seq++
	e.lastUsed = c.seq

	return e.recs, true
}

func (c *recoCache) put(key string, recs []domain.ScoredProduct) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.seq++
	c.entries[key] = &recoCacheEntry{
		recs:     recs,
		lastUsed: c.seq,
	}

	c.evictLocked()
}

func (c *recoCache) purge() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]*recoCacheEntry)
}

func (c *recoCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}

func (c *recoCache) evictLocked() {
	if len(c.entries) <= c.maxSize {
		return
	}

	type entryInfo struct {
		key      string
		lastUsed uint64
	}

	infos := make([]entryInfo, 0, len(c.entries))
	for key, e := range c.entries {
		infos = append(infos, entryInfo{key: key, lastUsed: e.lastUsed})
	}

	// oldest first
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].lastUsed < infos[j].lastUsed
	})

	toDrop := len(c.entries) - c.maxSize
	for i := 0; i < toDrop && i < len(infos); i++ {
		delete(c.entries, infos[i].key)
	}
}
