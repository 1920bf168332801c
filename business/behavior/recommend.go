package behavior

import (
	"context"
	"fmt"
	"math"
	"sort"

	"ivolexMarket/domain"
	"ivolexMarket/pkg/logger"
)

// Each derivation below is a pure function of (catalog, history, affinity
// state) at call time, excepting the explicit jitter terms drawn from the
// injectable random source.

func (s *BehaviorService) loadCatalog(ctx context.Context) ([]domain.Product, error) {
	products, err := s.catalogRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return products, nil
}

type scoredItem struct {
	product domain.Product
	score   float64
}

func topN(items []scoredItem, n int) []domain.ScoredProduct {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].score > items[j].score
	})

	if n > len(items) {
		n = len(items)
	}

	out := make([]domain.ScoredProduct, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, domain.ScoredProduct{
			ProductID: items[i].product.ID,
			Name:      items[i].product.ProductName,
			Score:     items[i].score,
		})
	}

	return out
}

// GetTrending ranks the catalog by rating times a fresh random draw.
// Intentionally re-randomized on every call.
func (s *BehaviorService) GetTrending(ctx context.Context) ([]domain.ScoredProduct, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	products, err := s.loadCatalog(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]scoredItem, 0, len(products))
	for _, p := range products {
		items = append(items, scoredItem{
			product: p,
			score:   p.Rating * s.rng.Float64(),
		})
	}

	return topN(items, s.cfg.TrendingLimit), nil
}

// GetPersonalized scores the catalog against the session's time-decayed
// affinities. Items already interacted with are penalized to keep the list
// diverse. Falls back to trending when the session has no history.
func (s *BehaviorService) GetPersonalized(ctx context.Context, sessionID string) ([]domain.ScoredProduct, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	st := s.session(ctx, sessionID)
	st.mu.Lock()
	history := make([]domain.BehaviorEvent, len(st.history))
	copy(history, st.history)
	st.mu.Unlock()

	if len(history) == 0 {
		return s.GetTrending(ctx)
	}

	products, err := s.loadCatalog(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	da := computeDecayedAffinity(history, now, s.cfg)

	seen := make(map[uint64]struct{}, len(history))
	for _, ev := range history {
		if ev.ProductID != 0 {
			seen[ev.ProductID] = struct{}{}
		}
	}

	items := make([]scoredItem, 0, len(products))
	for _, p := range products {
		tagSum := 0.0
		for _, tag := range p.Tags {
			tagSum += da.tag[tag]
		}

		score := s.cfg.WCategory*da.category[p.Category] +
			s.cfg.WSegment*da.segment[p.Segment] +
			s.cfg.WTag*tagSum +
			s.cfg.WPriceRange*da.priceRange[priceBucket(p.Price, s.cfg)] +
			s.cfg.WRating*p.Rating +
			s.rng.Float64()*s.cfg.JitterMax

		if _, ok := seen[p.ID]; ok {
			score *= s.cfg.SeenPenalty
		}

		items = append(items, scoredItem{product: p, score: score})
	}

	return topN(items, s.cfg.PersonalizedLimit), nil
}

// GetRelated ranks catalog items by similarity to the target product. The
// target itself is never included. Results are memoized per product id.
func (s *BehaviorService) GetRelated(ctx context.Context, productID uint64) ([]domain.ScoredProduct, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	cacheKey := fmt.Sprintf("related:%d", productID)
	if recs, ok := s.relatedCache.get(cacheKey); ok {
		return recs, nil
	}

	target, err := s.catalogRepo.FindByID(ctx, productID)
	if err != nil {
		logger.Debug("related_target_missing", "product_id", productID, "error", err)
		return []domain.ScoredProduct{}, nil
	}

	products, err := s.loadCatalog(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]scoredItem, 0, len(products))
	for _, p := range products {
		if p.ID == target.ID {
			continue
		}

		sim := 0.0
		if p.Category == target.Category {
			sim += 3
		}
		if p.Segment == target.Segment {
			sim += 2
		}
		sim += float64(tagOverlap(p.Tags, target.Tags))
		if priceWithin(p.Price, target.Price, 0.5) {
			sim += 1
		}

		items = append(items, scoredItem{product: p, score: sim})
	}

	recs := topN(items, s.cfg.RelatedLimit)
	s.relatedCache.put(cacheKey, recs)

	return recs, nil
}

// GetFrequentlyCoInteracted is a heuristic, not a co-occurrence computation:
// same-segment items from another subcategory, plus items reachable through
// the fixed complementary-category table, in random order.
func (s *BehaviorService) GetFrequentlyCoInteracted(ctx context.Context, productID uint64) ([]domain.ScoredProduct, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	target, err := s.catalogRepo.FindByID(ctx, productID)
	if err != nil {
		logger.Debug("co_interacted_target_missing", "product_id", productID, "error", err)
		return []domain.ScoredProduct{}, nil
	}

	products, err := s.loadCatalog(ctx)
	if err != nil {
		return nil, err
	}

	complements := make(map[string]struct{})
	for _, cat := range complementaryCategories()[target.Category] {
		complements[cat] = struct{}{}
	}

	candidates := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if p.ID == target.ID {
			continue
		}

		sameSegmentOtherSub := p.Segment == target.Segment && p.Subcategory != target.Subcategory
		_, complementary := complements[p.Category]

		if sameSegmentOtherSub || complementary {
			candidates = append(candidates, p)
		}
	}

	s.rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	limit := s.cfg.CoInteractedLimit
	if limit > len(candidates) {
		limit = len(candidates)
	}

	out := make([]domain.ScoredProduct, 0, limit)
	for i := 0; i < limit; i++ {
		out = append(out, domain.ScoredProduct{
			ProductID: candidates[i].ID,
			Name:      candidates[i].ProductName,
			Score:     candidates[i].Rating,
		})
	}

	return out, nil
}

// GetCategoryBased returns the top-rated items of a category, optionally
// excluding one product id. Memoized per (category, excludeID).
func (s *BehaviorService) GetCategoryBased(ctx context.Context, category string, excludeID uint64) ([]domain.ScoredProduct, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	cacheKey := fmt.Sprintf("category:%s|%d", category, excludeID)
	if recs, ok := s.categoryCache.get(cacheKey); ok {
		return recs, nil
	}

	products, err := s.loadCatalog(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]scoredItem, 0, len(products))
	for _, p := range products {
		if p.Category != category || p.ID == excludeID {
			continue
		}
		items = append(items, scoredItem{product: p, score: p.Rating})
	}

	recs := topN(items, s.cfg.CategoryLimit)
	s.categoryCache.put(cacheKey, recs)

	return recs, nil
}

// GetCrossSell maps each cart item's category through the complementary
// table. Items already in the cart are never returned.
func (s *BehaviorService) GetCrossSell(ctx context.Context, cartIDs []uint64) ([]domain.ScoredProduct, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	products, err := s.loadCatalog(ctx)
	if err != nil {
		return nil, err
	}

	inCart := make(map[uint64]struct{}, len(cartIDs))
	for _, id := range cartIDs {
		inCart[id] = struct{}{}
	}

	table := complementaryCategories()
	wantCategories := make(map[string]struct{})
	for _, p := range products {
		if _, ok := inCart[p.ID]; !ok {
			continue
		}
		for _, cat := range table[p.Category] {
			wantCategories[cat] = struct{}{}
		}
	}

	items := make([]scoredItem, 0, len(products))
	for _, p := range products {
		if _, ok := inCart[p.ID]; ok {
			continue
		}
		if _, ok := wantCategories[p.Category]; !ok {
			continue
		}
		items = append(items, scoredItem{product: p, score: p.Rating})
	}

	return topN(items, s.cfg.CrossSellLimit), nil
}

// GetUpsell returns same-category items priced strictly 20%-200% above the
// target, ranked by rating over price premium.
func (s *BehaviorService) GetUpsell(ctx context.Context, productID uint64) ([]domain.ScoredProduct, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	target, err := s.catalogRepo.FindByID(ctx, productID)
	if err != nil {
		logger.Debug("upsell_target_missing", "product_id", productID, "error", err)
		return []domain.ScoredProduct{}, nil
	}
	if target.Price <= 0 {
		return []domain.ScoredProduct{}, nil
	}

	products, err := s.loadCatalog(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]scoredItem, 0, len(products))
	for _, p := range products {
		if p.ID == target.ID || p.Category != target.Category {
			continue
		}

		ratio := p.Price / target.Price
		if ratio <= 1.2 || ratio >= 3.0 {
			continue
		}

		items = append(items, scoredItem{product: p, score: p.Rating / (ratio - 1)})
	}

	return topN(items, s.cfg.UpsellLimit), nil
}

func tagOverlap(a []string, b []string) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	set := make(map[string]struct{}, len(a))
	for _, tag := range a {
		set[tag] = struct{}{}
	}

	n := 0
	for _, tag := range b {
		if _, ok := set[tag]; ok {
			n++
		}
	}

	return n
}

// priceWithin reports whether price is within frac of reference.
func priceWithin(price, reference, frac float64) bool {
	if reference <= 0 {
		return false
	}
	return math.Abs(price-reference) <= frac*reference
}
