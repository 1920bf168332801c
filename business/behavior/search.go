package behavior

import (
	"context"
	"fmt"
	"strings"

	"ivolexMarket/domain"
)

const (
	searchNameExactBonus  = 50.0
	searchNameWordBonus   = 20.0
	searchCategoryBonus   = 15.0
	searchSubcatBonus     = 15.0
	searchTagWordBonus    = 10.0
	searchCategoryExact   = 40.0
	searchSubcatExact     = 35.0
	searchTagExact        = 30.0
	searchAffinityWeight  = 0.1
	searchRatingWeight    = 2.0
	searchPriceRangeBonus = 10.0

	searchMinWordLen = 3
)

// scoreAgainstQuery mixes lexical matching with the session's category
// affinity. Items scoring zero or below are dropped by the callers.
func scoreAgainstQuery(p domain.Product, query string, categoryScores map[string]float64, sc *domain.SearchContext) float64 {
	q := strings.ToLower(strings.TrimSpace(query))
	name := strings.ToLower(p.ProductName)
	category := strings.ToLower(p.Category)
	subcategory := strings.ToLower(p.Subcategory)

	tags := make([]string, 0, len(p.Tags))
	for _, tag := range p.Tags {
		tags = append(tags, strings.ToLower(tag))
	}

	score := 0.0

	if q != "" && strings.Contains(name, q) {
		score += searchNameExactBonus
	}

	for _, word := range strings.Fields(q) {
		if len(word) < searchMinWordLen {
			continue
		}
		if strings.Contains(name, word) {
			score += searchNameWordBonus
		}
		if strings.Contains(category, word) {
			score += searchCategoryBonus
		}
		if strings.Contains(subcategory, word) {
			score += searchSubcatBonus
		}
		for _, tag := range tags {
			if strings.Contains(tag, word) {
				score += searchTagWordBonus
				break
			}
		}
	}

	if category == q {
		score += searchCategoryExact
	}
	if subcategory == q {
		score += searchSubcatExact
	}
	for _, tag := range tags {
		if tag == q {
			score += searchTagExact
			break
		}
	}

	score += searchAffinityWeight * categoryScores[p.Category]
	score += searchRatingWeight * p.Rating

	if sc != nil && sc.MaxPrice > 0 && p.Price >= sc.MinPrice && p.Price <= sc.MaxPrice {
		score += searchPriceRangeBonus
	}

	return score
}

func (s *BehaviorService) rankSearch(
	ctx context.Context,
	sessionID string,
	query string,
	sc *domain.SearchContext,
) ([]domain.ScoredProduct, error) {
	products, err := s.loadCatalog(ctx)
	if err != nil {
		return nil, err
	}

	st := s.session(ctx, sessionID)
	st.mu.Lock()
	categoryScores := make(map[string]float64, len(st.affinity.CategoryScores))
	for cat, score := range st.affinity.CategoryScores {
		categoryScores[cat] = score
	}
	st.mu.Unlock()

	items := make([]scoredItem, 0, len(products))
	for _, p := range products {
		score := scoreAgainstQuery(p, query, categoryScores, sc)
		if score <= 0 {
			continue
		}
		items = append(items, scoredItem{product: p, score: score})
	}

	return topN(items, len(items)), nil
}

// GetSearchRecommendations is the basic search: ranked hits capped at the
// configured limit.
func (s *BehaviorService) GetSearchRecommendations(ctx context.Context, sessionID string, query string) ([]domain.ScoredProduct, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	ranked, err := s.rankSearch(ctx, sessionID, query, nil)
	if err != nil {
		return nil, err
	}

	if len(ranked) > s.cfg.SearchLimit {
		ranked = ranked[:s.cfg.SearchLimit]
	}

	return ranked, nil
}

// GetAdvancedSearchRecommendations returns the full ranked list, with the
// optional caller-supplied price range contributing a flat bonus.
func (s *BehaviorService) GetAdvancedSearchRecommendations(
	ctx context.Context,
	sessionID string,
	query string,
	sc *domain.SearchContext,
) ([]domain.ScoredProduct, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	return s.rankSearch(ctx, sessionID, query, sc)
}
