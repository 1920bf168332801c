package behavior

import (
	"math"
	"sort"

	"ivolexMarket/domain"
)

const (
	engagementMin = 0.0
	engagementMax = 100.0
)

// applyEvent updates the derived affinity state for one event. Weights are
// applied raw; decay is a read-time concern only.
func applyEvent(aff *domain.AffinityState, ev domain.BehaviorEvent, cfg Config) {
	w := ev.Weight

	if snap := ev.Snapshot; snap != nil {
		aff.CategoryScores[snap.Category] += w
		aff.SegmentScores[snap.Segment] += w
		for _, tag := range snap.Tags {
			aff.TagScores[tag] += w
		}
		aff.PriceRangeScores[priceBucket(snap.Price, cfg)] += w

		upsertPreferredCategory(aff, snap.Category)
	}

	// Engagement only moves up: any interaction counts toward intensity,
	// even when the action weight is negative.
	aff.EngagementScore = clamp(aff.EngagementScore+math.Abs(w), engagementMin, engagementMax)

	hour := ev.Timestamp.Hour()
	dow := int(ev.Timestamp.Weekday())
	aff.TimeOfDayPattern[hour]++
	aff.DayOfWeekPattern[dow]++
}

func priceBucket(price float64, cfg Config) string {
	switch {
	case price < cfg.PriceBucketLow:
		return "low"
	case price < cfg.PriceBucketMid:
		return "medium"
	default:
		return "high"
	}
}

// upsertPreferredCategory syncs the sorted preferred-category list with the
// category score map. O(n) re-sort is acceptable at catalog cardinality.
func upsertPreferredCategory(aff *domain.AffinityState, name string) {
	if name == "" {
		return
	}

	score := aff.CategoryScores[name]
	found := false
	for i := range aff.PreferredCategories {
		if aff.PreferredCategories[i].Name == name {
			aff.PreferredCategories[i].Score = score
			found = true
			break
		}
	}
	if !found {
		aff.PreferredCategories = append(aff.PreferredCategories, domain.CategoryScore{
			Name:  name,
			Score: score,
		})
	}

	sort.SliceStable(aff.PreferredCategories, func(i, j int) bool {
		return aff.PreferredCategories[i].Score > aff.PreferredCategories[j].Score
	})
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
