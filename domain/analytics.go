package domain

type CategoryScore struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

// AffinityState is derived from the event stream, updated incrementally per
// event. No decay is applied at write time; decay happens at read time only.
type AffinityState struct {
	CategoryScores      map[string]float64 `json:"category_scores"`
	SegmentScores       map[string]float64 `json:"segment_scores"`
	TagScores           map[string]float64 `json:"tag_scores"`
	PriceRangeScores    map[string]float64 `json:"price_range_scores"`
	EngagementScore     float64            `json:"engagement_score"`
	TimeOfDayPattern    [24]int            `json:"time_of_day_pattern"`
	DayOfWeekPattern    [7]int             `json:"day_of_week_pattern"`
	PreferredCategories []CategoryScore    `json:"preferred_categories"`
}

func NewAffinityState() AffinityState {
	return AffinityState{
		CategoryScores:   make(map[string]float64),
		SegmentScores:    make(map[string]float64),
		TagScores:        make(map[string]float64),
		PriceRangeScores: make(map[string]float64),
	}
}

// UserAnalytics is the aggregate snapshot returned to callers.
type UserAnalytics struct {
	SessionID           string          `json:"session_id"`
	EngagementScore     float64         `json:"engagement_score"`
	LoyaltyScore        float64         `json:"loyalty_score"`
	PreferredCategories []CategoryScore `json:"preferred_categories"`
	PricePreference     string          `json:"price_preference"`
	RecentActivity      []BehaviorEvent `json:"recent_activity"`
}
