package behavior

import (
	"fmt"
	"testing"

	"ivolexMarket/domain"
)

func cacheEntry(id uint64) []domain.ScoredProduct {
	return []domain.ScoredProduct{{ProductID: id, Score: 1}}
}

func TestRecoCache_Bound(t *testing.T) {
	c := newRecoCache(3)

	for i := 1; i <= 5; i++ {
		c.put(fmt.Sprintf("k%d", i), cacheEntry(uint64(i)))
	}

	if c.len() != 3 {
		t.Fatalf("len = %d, want 3", c.len())
	}
	for _, stale := range []string{"k1", "k2"} {
		if _, ok := c.get(stale); ok {
			t.Errorf("stale entry %s survived eviction", stale)
		}
	}
	for _, fresh := range []string{"k3", "k4", "k5"} {
		if _, ok := c.get(fresh); !ok {
			t.Errorf("recent entry %s evicted", fresh)
		}
	}
}

func TestRecoCache_GetRefreshesRecency(t *testing.T) {
	c := newRecoCache(3)
	c.put("a", cacheEntry(1))
	c.put("b", cacheEntry(2))
	c.put("c", cacheEntry(3))

	if _, ok := c.get("a"); !ok {
		t.Fatal("entry a missing")
	}

	c.put("d", cacheEntry(4))

	if _, ok := c.get("a"); !ok {
		t.Error("recently read entry a evicted")
	}
	if _, ok := c.get("b"); ok {
		t.Error("least recently used entry b survived")
	}
}

func TestRecoCache_Purge(t *testing.T) {
	c := newRecoCache(3)
	c.put("a", cacheEntry(1))
	c.purge()

	if c.len() != 0 {
		t.Errorf("len = %d after purge, want 0", c.len())
	}
	if _, ok := c.get("a"); ok {
		t.Error("entry survived purge")
	}
}
