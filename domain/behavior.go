package domain

import (
	"time"

	"gorm.io/datatypes"
)

type BehaviorAction string

const (
	ActionView                BehaviorAction = "view"
	ActionQuickView           BehaviorAction = "quickView"
	ActionAddToCart           BehaviorAction = "addToCart"
	ActionRemoveFromCart      BehaviorAction = "removeFromCart"
	ActionPurchase            BehaviorAction = "purchase"
	ActionWishlist            BehaviorAction = "wishlist"
	ActionRemoveFromWishlist  BehaviorAction = "removeFromWishlist"
	ActionSearch              BehaviorAction = "search"
	ActionCategoryView        BehaviorAction = "categoryView"
	ActionFilterApply         BehaviorAction = "filterApply"
	ActionSortApply           BehaviorAction = "sortApply"
	ActionImageZoom           BehaviorAction = "imageZoom"
	ActionReviewRead          BehaviorAction = "reviewRead"
	ActionReviewWrite         BehaviorAction = "reviewWrite"
	ActionShareProduct        BehaviorAction = "shareProduct"
	ActionCompareProduct      BehaviorAction = "compareProduct"
	ActionEmailInquiry        BehaviorAction = "emailInquiry"
	ActionChatInquiry         BehaviorAction = "chatInquiry"
	ActionClickRecommendation BehaviorAction = "clickRecommendation"
	ActionTimeOnProduct       BehaviorAction = "timeOnProduct"
	ActionScrollDepth         BehaviorAction = "scrollDepth"
	ActionCartAbandonment     BehaviorAction = "cartAbandonment"
	ActionPageView            BehaviorAction = "pageView"
)

// EventMetadata carries browsing context captured at record time.
type EventMetadata struct {
	Page        string  `json:"page,omitempty"`
	Device      string  `json:"device,omitempty"`
	Platform    string  `json:"platform,omitempty"`
	Locale      string  `json:"locale,omitempty"`
	Referrer    string  `json:"referrer,omitempty"`
	HourOfDay   int     `json:"hour_of_day"`
	DayOfWeek   int     `json:"day_of_week"`
	DurationSec float64 `json:"duration_sec,omitempty"`
	ScrollPct   float64 `json:"scroll_pct,omitempty"`
}

// ProductSnapshot freezes catalog fields at event time so later catalog
// changes cannot retroactively alter historical scoring.
type ProductSnapshot struct {
	Category    string   `json:"category"`
	Subcategory string   `json:"subcategory"`
	Segment     string   `json:"segment"`
	Price       float64  `json:"price"`
	Rating      float64  `json:"rating"`
	Tags        []string `json:"tags,omitempty"`
}

// BehaviorEvent is immutable once recorded.
type BehaviorEvent struct {
	ID        string           `json:"id"`
	SessionID string           `json:"session_id"`
	Action    BehaviorAction   `json:"action"`
	ProductID uint64           `json:"product_id,omitempty"`
	Timestamp time.Time        `json:"timestamp"`
	Weight    float64          `json:"weight"`
	Metadata  EventMetadata    `json:"metadata"`
	Snapshot  *ProductSnapshot `json:"snapshot,omitempty"`
}

// BehaviorEventRecord is the durable copy of a recorded event.
type BehaviorEventRecord struct {
	ID        uint              `gorm:"primaryKey" json:"id"`
	EventID   string            `gorm:"column:event_id;not null" json:"event_id"`
	SessionID string            `gorm:"column:session_id;not null" json:"session_id"`
	Action    string            `gorm:"column:action;not null" json:"action"`
	ProductID uint64            `gorm:"column:product_id" json:"product_id"`
	Weight    float64           `gorm:"column:weight" json:"weight"`
	CreatedAt time.Time         `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	Context   datatypes.JSONMap `gorm:"column:context;type:jsonb" json:"context"`
}

func (BehaviorEventRecord) TableName() string {
	return "behavior_events"
}
