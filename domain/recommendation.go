package domain

// ScoredProduct is a single ranked recommendation or search hit.
type ScoredProduct struct {
	ProductID uint64  `json:"product_id"`
	Name      string  `json:"name"`
	Score     float64 `json:"score"`
}

// SearchContext carries optional caller-supplied constraints for advanced
// search. A zero MaxPrice means no upper bound was supplied.
type SearchContext struct {
	MinPrice float64 `json:"min_price"`
	MaxPrice float64 `json:"max_price"`
}
