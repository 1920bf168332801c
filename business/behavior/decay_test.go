package behavior

import (
	"math"
	"testing"
	"time"

	"ivolexMarket/domain"
)

func TestDecayFactor(t *testing.T) {
	if got := decayFactor(0); got != 1 {
		t.Errorf("decayFactor(0) = %v, want 1", got)
	}
	if got := decayFactor(-time.Hour); got != 1 {
		t.Errorf("decayFactor(negative) = %v, want 1 (clock skew tolerated)", got)
	}

	week := 7 * 24 * time.Hour
	if got := decayFactor(week); math.Abs(got-math.Exp(-1)) > 1e-12 {
		t.Errorf("decayFactor(7d) = %v, want e^-1", got)
	}

	if decayFactor(time.Hour) <= decayFactor(24*time.Hour) {
		t.Error("decay must be monotonically decreasing with age")
	}
}

func TestComputeDecayedAffinity(t *testing.T) {
	cfg := DefaultConfig()
	now := testBase

	fresh := leatherEvent(domain.ActionView, now)
	stale := leatherEvent(domain.ActionView, now.Add(-7*24*time.Hour))
	noSnap := leatherEvent(domain.ActionView, now)
	noSnap.Snapshot = nil

	da := computeDecayedAffinity([]domain.BehaviorEvent{fresh, stale, noSnap}, now, cfg)

	want := 1 + math.Exp(-1)
	if got := da.category["leather"]; math.Abs(got-want) > 1e-9 {
		t.Errorf("category[leather] = %v, want %v", got, want)
	}
	if got := da.segment["accessories"]; math.Abs(got-want) > 1e-9 {
		t.Errorf("segment[accessories] = %v, want %v", got, want)
	}
	if got := da.priceRange["low"]; math.Abs(got-want) > 1e-9 {
		t.Errorf("priceRange[low] = %v, want %v", got, want)
	}
}
