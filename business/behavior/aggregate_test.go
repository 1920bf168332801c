package behavior

import (
	"testing"
	"time"

	"ivolexMarket/domain"
)

func leatherEvent(action domain.BehaviorAction, at time.Time) domain.BehaviorEvent {
	return domain.BehaviorEvent{
		ID:        "ev",
		SessionID: "s1",
		Action:    action,
		ProductID: 7,
		Timestamp: at,
		Weight:    weightFor(action, domain.EventMetadata{}),
		Snapshot: &domain.ProductSnapshot{
			Category:    "leather",
			Subcategory: "wallets",
			Segment:     "accessories",
			Tags:        []string{"handmade", "gift"},
			Price:       1500,
		},
	}
}

func TestApplyEvent_ViewsAccumulate(t *testing.T) {
	cfg := DefaultConfig()
	aff := domain.NewAffinityState()
	at := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		applyEvent(&aff, leatherEvent(domain.ActionView, at), cfg)
	}

	if got := aff.CategoryScores["leather"]; got != 3 {
		t.Errorf("CategoryScores[leather] = %v, want 3", got)
	}
	if got := aff.SegmentScores["accessories"]; got != 3 {
		t.Errorf("SegmentScores[accessories] = %v, want 3", got)
	}
	if got := aff.TagScores["handmade"]; got != 3 {
		t.Errorf("TagScores[handmade] = %v, want 3", got)
	}
	if got := aff.PriceRangeScores["low"]; got != 3 {
		t.Errorf("PriceRangeScores[low] = %v, want 3", got)
	}
	if aff.EngagementScore != 3 {
		t.Errorf("EngagementScore = %v, want 3", aff.EngagementScore)
	}
	if len(aff.PreferredCategories) != 1 || aff.PreferredCategories[0].Name != "leather" {
		t.Errorf("PreferredCategories = %+v, want single leather entry", aff.PreferredCategories)
	}
	if aff.TimeOfDayPattern[10] != 3 {
		t.Errorf("TimeOfDayPattern[10] = %d, want 3", aff.TimeOfDayPattern[10])
	}
	if aff.DayOfWeekPattern[int(at.Weekday())] != 3 {
		t.Errorf("DayOfWeekPattern = %+v, want 3 at weekday %d", aff.DayOfWeekPattern, int(at.Weekday()))
	}
}

func TestApplyEvent_NegativeWeightStillEngages(t *testing.T) {
	cfg := DefaultConfig()
	aff := domain.NewAffinityState()

	applyEvent(&aff, leatherEvent(domain.ActionRemoveFromCart, time.Now()), cfg)

	if got := aff.CategoryScores["leather"]; got != -1 {
		t.Errorf("CategoryScores[leather] = %v, want -1", got)
	}
	if aff.EngagementScore != 1 {
		t.Errorf("EngagementScore = %v, want 1 (activity counts regardless of sign)", aff.EngagementScore)
	}
}

func TestApplyEvent_EngagementClamped(t *testing.T) {
	cfg := DefaultConfig()
	aff := domain.NewAffinityState()

	for i := 0; i < 30; i++ {
		applyEvent(&aff, leatherEvent(domain.ActionPurchase, time.Now()), cfg)
	}

	if aff.EngagementScore != 100 {
		t.Errorf("EngagementScore = %v, want clamp at 100", aff.EngagementScore)
	}
}

func TestApplyEvent_NoSnapshotOnlyEngagement(t *testing.T) {
	cfg := DefaultConfig()
	aff := domain.NewAffinityState()
	ev := leatherEvent(domain.ActionView, time.Now())
	ev.Snapshot = nil

	applyEvent(&aff, ev, cfg)

	if len(aff.CategoryScores) != 0 {
		t.Errorf("CategoryScores = %+v, want empty without product snapshot", aff.CategoryScores)
	}
	if aff.EngagementScore != 1 {
		t.Errorf("EngagementScore = %v, want 1", aff.EngagementScore)
	}
}

func TestApplyEvent_PreferredCategoriesSorted(t *testing.T) {
	cfg := DefaultConfig()
	aff := domain.NewAffinityState()
	at := time.Now()

	applyEvent(&aff, leatherEvent(domain.ActionView, at), cfg)

	fur := leatherEvent(domain.ActionPurchase, at)
	fur.Snapshot.Category = "furniture"
	applyEvent(&aff, fur, cfg)

	if len(aff.PreferredCategories) != 2 {
		t.Fatalf("PreferredCategories len = %d, want 2", len(aff.PreferredCategories))
	}
	if aff.PreferredCategories[0].Name != "furniture" {
		t.Errorf("top category = %s, want furniture", aff.PreferredCategories[0].Name)
	}
	if aff.PreferredCategories[0].Score < aff.PreferredCategories[1].Score {
		t.Errorf("PreferredCategories not sorted descending: %+v", aff.PreferredCategories)
	}
}

func TestPriceBucket(t *testing.T) {
	cfg := DefaultConfig()
	cases := []struct {
		price float64
		want  string
	}{
		{0, "low"},
		{1999.99, "low"},
		{2000, "medium"},
		{7999.99, "medium"},
		{8000, "high"},
		{250000, "high"},
	}
	for _, tc := range cases {
		if got := priceBucket(tc.price, cfg); got != tc.want {
			t.Errorf("priceBucket(%v) = %s, want %s", tc.price, got, tc.want)
		}
	}
}
