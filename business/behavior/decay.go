package behavior

import (
	"math"
	"time"

	"ivolexMarket/domain"
)

// decayWindowSec is the 7-day personalization decay constant. A modeling
// constant, not user-configurable.
const decayWindowSec = 7 * 24 * 60 * 60

func decayFactor(age time.Duration) float64 {
	if age < 0 {
		age = 0
	}
	return math.Exp(-age.Seconds() / decayWindowSec)
}

// decayedAffinity holds affinity maps recomputed from the event history with
// per-event time decay, as used at personalization read time.
type decayedAffinity struct {
	category   map[string]float64
	segment    map[string]float64
	tag        map[string]float64
	priceRange map[string]float64
}

func computeDecayedAffinity(history []domain.BehaviorEvent, now time.Time, cfg Config) decayedAffinity {
	da := decayedAffinity{
		category:   make(map[string]float64),
		segment:    make(map[string]float64),
		tag:        make(map[string]float64),
		priceRange: make(map[string]float64),
	}

	for _, ev := range history {
		snap := ev.Snapshot
		if snap == nil {
			continue
		}

		w := ev.Weight * decayFactor(now.Sub(ev.Timestamp))

		da.category[snap.Category] += w
		da.segment[snap.Segment] += w
		for _, tag := range snap.Tags {
			da.tag[tag] += w
		}
		da.priceRange[priceBucket(snap.Price, cfg)] += w
	}

	return da
}
