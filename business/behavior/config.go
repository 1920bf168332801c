package behavior

import "time"

type Config struct {
	HistoryLimit int

	// catalog-currency-specific bucket thresholds
	PriceBucketLow float64
	PriceBucketMid float64

	// personalization scoring weights
	WCategory   float64
	WSegment    float64
	WTag        float64
	WPriceRange float64
	WRating     float64
	JitterMax   float64
	SeenPenalty float64

	TrendingLimit     int
	PersonalizedLimit int
	RelatedLimit      int
	CoInteractedLimit int
	CategoryLimit     int
	CrossSellLimit    int
	UpsellLimit       int
	SearchLimit       int

	// memo cache capacity for related / category-based results
	CacheSize int

	SessionMaxAge time.Duration
}

const (
	defaultHistoryLimit   = 2000
	defaultPriceBucketLow = 2000
	defaultPriceBucketMid = 8000

	defaultWCategory   = 0.3
	defaultWSegment    = 0.25
	defaultWTag        = 0.1
	defaultWPriceRange = 0.15
	defaultWRating     = 2.0
	defaultJitterMax   = 5.0
	defaultSeenPenalty = 0.3

	defaultTrendingLimit     = 8
	defaultPersonalizedLimit = 12
	defaultRelatedLimit      = 6
	defaultCoInteractedLimit = 4
	defaultCategoryLimit     = 6
	defaultCrossSellLimit    = 6
	defaultUpsellLimit       = 4
	defaultSearchLimit       = 20

	defaultCacheSize = 128
)

func DefaultConfig() Config {
	return Config{
		HistoryLimit: defaultHistoryLimit,

		PriceBucketLow: defaultPriceBucketLow,
		PriceBucketMid: defaultPriceBucketMid,

		WCategory:   defaultWCategory,
		WSegment:    defaultWSegment,
		WTag:        defaultWTag,
		WPriceRange: defaultWPriceRange,
		WRating:     defaultWRating,
		JitterMax:   defaultJitterMax,
		SeenPenalty: defaultSeenPenalty,

		TrendingLimit:     defaultTrendingLimit,
		PersonalizedLimit: defaultPersonalizedLimit,
		RelatedLimit:      defaultRelatedLimit,
		CoInteractedLimit: defaultCoInteractedLimit,
		CategoryLimit:     defaultCategoryLimit,
		CrossSellLimit:    defaultCrossSellLimit,
		UpsellLimit:       defaultUpsellLimit,
		SearchLimit:       defaultSearchLimit,

		CacheSize: defaultCacheSize,

		SessionMaxAge: 24 * time.Hour,
	}
}

// complementaryPairs is the fixed table used for cross-sell and
// co-interaction suggestions in the absence of real co-occurrence data.
var complementaryPairs = [][2]string{
	{"leather", "electronics"},
	{"furniture", "electronics"},
	{"furniture", "leather"},
}

func complementaryCategories() map[string][]string {
	out := make(map[string][]string)
	for _, pair := range complementaryPairs {
		out[pair[0]] = append(out[pair[0]], pair[1])
		out[pair[1]] = append(out[pair[1]], pair[0])
	}
	return out
}
