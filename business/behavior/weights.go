package behavior

import "ivolexMarket/domain"

// actionWeights is the fixed action weight table. Actions absent from the
// table (cartAbandonment, pageView, anything unrecognized) carry the default
// weight; an event is never rejected for an unknown action.
var actionWeights = map[domain.BehaviorAction]float64{
	domain.ActionView:                1,
	domain.ActionQuickView:           1.5,
	domain.ActionAddToCart:           3,
	domain.ActionRemoveFromCart:      -1,
	domain.ActionPurchase:            5,
	domain.ActionWishlist:            2,
	domain.ActionRemoveFromWishlist:  -0.5,
	domain.ActionSearch:              1,
	domain.ActionCategoryView:        0.5,
	domain.ActionFilterApply:         0.8,
	domain.ActionSortApply:           0.3,
	domain.ActionImageZoom:           0.5,
	domain.ActionReviewRead:          0.7,
	domain.ActionReviewWrite:         2,
	domain.ActionShareProduct:        1.5,
	domain.ActionCompareProduct:      1.2,
	domain.ActionEmailInquiry:        2.5,
	domain.ActionChatInquiry:         2,
	domain.ActionClickRecommendation: 1.8,
}

const (
	defaultWeight          = 1.0
	weightPerSecond        = 0.1
	weightPerScrollPercent = 0.05
)

func weightFor(action domain.BehaviorAction, meta domain.EventMetadata) float64 {
	switch action {
	case domain.ActionTimeOnProduct:
		return weightPerSecond * meta.DurationSec
	case domain.ActionScrollDepth:
		return weightPerScrollPercent * meta.ScrollPct
	}

	if w, ok := actionWeights[action]; ok {
		return w
	}

	return defaultWeight
}
