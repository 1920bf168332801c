package behavior

import (
	"testing"

	"ivolexMarket/domain"
)

func TestWeightFor_FixedTable(t *testing.T) {
	cases := []struct {
		action domain.BehaviorAction
		want   float64
	}{
		{domain.ActionView, 1},
		{domain.ActionQuickView, 1.5},
		{domain.ActionAddToCart, 3},
		{domain.ActionRemoveFromCart, -1},
		{domain.ActionPurchase, 5},
		{domain.ActionWishlist, 2},
		{domain.ActionRemoveFromWishlist, -0.5},
		{domain.ActionSearch, 1},
		{domain.ActionCategoryView, 0.5},
		{domain.ActionFilterApply, 0.8},
		{domain.ActionSortApply, 0.3},
		{domain.ActionImageZoom, 0.5},
		{domain.ActionReviewRead, 0.7},
		{domain.ActionReviewWrite, 2},
		{domain.ActionShareProduct, 1.5},
		{domain.ActionCompareProduct, 1.2},
		{domain.ActionEmailInquiry, 2.5},
		{domain.ActionChatInquiry, 2},
		{domain.ActionClickRecommendation, 1.8},
	}

	for _, tc := range cases {
		got := weightFor(tc.action, domain.EventMetadata{})
		if got != tc.want {
			t.Errorf("weightFor(%s) = %v, want %v", tc.action, got, tc.want)
		}
	}
}

func TestWeightFor_ScaledActions(t *testing.T) {
	got := weightFor(domain.ActionTimeOnProduct, domain.EventMetadata{DurationSec: 30})
	if got != 3 {
		t.Errorf("timeOnProduct for 30s = %v, want 3", got)
	}

	got = weightFor(domain.ActionScrollDepth, domain.EventMetadata{ScrollPct: 80})
	if got != 4 {
		t.Errorf("scrollDepth for 80%% = %v, want 4", got)
	}
}

func TestWeightFor_DefaultWeight(t *testing.T) {
	// cartAbandonment and pageView carry no table entry, like any
	// unrecognized action; none of them is ever rejected.
	for _, action := range []domain.BehaviorAction{
		domain.ActionCartAbandonment,
		domain.ActionPageView,
		domain.BehaviorAction("somethingNew"),
	} {
		if got := weightFor(action, domain.EventMetadata{}); got != 1 {
			t.Errorf("weightFor(%s) = %v, want default 1", action, got)
		}
	}
}
