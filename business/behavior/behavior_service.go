package behavior

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"ivolexMarket/domain"
	"ivolexMarket/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ---- Repository interfaces ----

type CatalogRepository interface {
	FindAll(ctx context.Context) ([]domain.Product, error)
	FindByID(ctx context.Context, id uint64) (domain.Product, error)
}

// StateStore is the durable key-value store holding history and analytics
// snapshots. Get returns "" with a nil error for a missing key.
type StateStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string) error
}

// EventLogRepository keeps the append-only durable copy of recorded events.
type EventLogRepository interface {
	SaveEvent(ctx context.Context, record domain.BehaviorEventRecord) error
}

// ---- state keys ----

func historyKey(sessionID string) string {
	return "behavior:history:" + sessionID
}

func analyticsKey(sessionID string) string {
	return "behavior:analytics:" + sessionID
}

// ---- randomness ----

// lockedRand serializes access to a seeded source so independent sessions can
// score in parallel while tests pin a seed.
type lockedRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

func (l *lockedRand) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Float64()
}

func (l *lockedRand) Shuffle(n int, swap func(i, j int)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.r.Shuffle(n, swap)
}

// ---- Usecase / Service ----

// sessionState is the per-session engine state. All access is serialized by
// its mutex; the engine core itself is plain single-threaded data.
type sessionState struct {
	mu       sync.Mutex
	history  []domain.BehaviorEvent
	affinity domain.AffinityState
	loaded   bool
}

type BehaviorService struct {
	catalogRepo CatalogRepository
	stateStore  StateStore
	eventLog    EventLogRepository
	cfg         Config

	rng *lockedRand
	now func() time.Time

	mu       sync.Mutex
	sessions map[string]*sessionState

	relatedCache  *recoCache
	categoryCache *recoCache
}

// NewBehaviorService builds the engine. A nil rng seeds from the current
// time; tests pass a seeded source for deterministic jitter.
func NewBehaviorService(
	catalogRepo CatalogRepository,
	stateStore StateStore,
	eventLog EventLogRepository,
	cfg Config,
	rng *rand.Rand,
) *BehaviorService {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	return &BehaviorService{
		catalogRepo:   catalogRepo,
		stateStore:    stateStore,
		eventLog:      eventLog,
		cfg:           cfg,
		rng:           &lockedRand{r: rng},
		now:           time.Now,
		sessions:      make(map[string]*sessionState),
		relatedCache:  newRecoCache(cfg.CacheSize),
		categoryCache: newRecoCache(cfg.CacheSize),
	}
}

// SetClock overrides the time source. Intended for tests.
func (s *BehaviorService) SetClock(now func() time.Time) {
	s.now = now
}

// session returns the state for sessionID, rehydrating it from the durable
// store on first touch. Missing or corrupt snapshots fall back to defaults.
func (s *BehaviorService) session(ctx context.Context, sessionID string) *sessionState {
	s.mu.Lock()
	st, ok := s.sessions[sessionID]
	if !ok {
		st = &sessionState{affinity: domain.NewAffinityState()}
		s.sessions[sessionID] = st
	}
	s.mu.Unlock()

	st.mu.Lock()
	defer st.mu.Unlock()
	if !st.loaded {
		s.rehydrateLocked(ctx, sessionID, st)
		st.loaded = true
	}

	return st
}

func (s *BehaviorService) rehydrateLocked(ctx context.Context, sessionID string, st *sessionState) {
	raw, err := s.stateStore.Get(ctx, historyKey(sessionID))
	if err != nil {
		logger.Warn("behavior_history_load_failed", "session_id", sessionID, "error", err)
	} else if raw != "" {
		var history []domain.BehaviorEvent
		if err := json.Unmarshal([]byte(raw), &history); err != nil {
			logger.Warn("behavior_history_corrupt", "session_id", sessionID, "error", err)
		} else {
			if len(history) > s.cfg.HistoryLimit {
				history = history[len(history)-s.cfg.HistoryLimit:]
			}
			st.history = history
		}
	}

	raw, err = s.stateStore.Get(ctx, analyticsKey(sessionID))
	if err != nil {
		logger.Warn("behavior_analytics_load_failed", "session_id", sessionID, "error", err)
		return
	}
	if raw == "" {
		return
	}

	var aff domain.AffinityState
	if err := json.Unmarshal([]byte(raw), &aff); err != nil {
		logger.Warn("behavior_analytics_corrupt", "session_id", sessionID, "error", err)
		return
	}
	if aff.CategoryScores == nil {
		aff.CategoryScores = make(map[string]float64)
	}
	if aff.SegmentScores == nil {
		aff.SegmentScores = make(map[string]float64)
	}
	if aff.TagScores == nil {
		aff.TagScores = make(map[string]float64)
	}
	if aff.PriceRangeScores == nil {
		aff.PriceRangeScores = make(map[string]float64)
	}
	st.affinity = aff
}

//  Event recording

// Record validates nothing away: unknown actions default to weight 1 and a
// productId without a catalog match is recorded without a snapshot. Durable
// write failures are logged and swallowed; the in-memory append stands.
func (s *BehaviorService) Record(
	ctx context.Context,
	sessionID string,
	action domain.BehaviorAction,
	productID uint64,
	meta domain.EventMetadata,
) (domain.BehaviorEvent, error) {
	if err := ctx.Err(); err != nil {
		return domain.BehaviorEvent{}, fmt.Errorf("context error: %w", err)
	}
	if sessionID == "" {
		return domain.BehaviorEvent{}, fmt.Errorf("session id is required")
	}

	st := s.session(ctx, sessionID)
	st.mu.Lock()
	defer st.mu.Unlock()

	now := s.now()
	meta.HourOfDay = now.Hour()
	meta.DayOfWeek = int(now.Weekday())

	ev := domain.BehaviorEvent{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		Action:    action,
		ProductID: productID,
		Timestamp: now,
		Weight:    weightFor(action, meta),
		Metadata:  meta,
	}

	if productID != 0 {
		product, err := s.catalogRepo.FindByID(ctx, productID)
		if err != nil {
			logger.Debug("behavior_snapshot_missing",
				"session_id", sessionID,
				"product_id", productID,
				"error", err,
			)
		} else {
			ev.Snapshot = &domain.ProductSnapshot{
				Category:    product.Category,
				Subcategory: product.Subcategory,
				Segment:     product.Segment,
				Price:       product.Price,
				Rating:      product.Rating,
				Tags:        product.Tags,
			}
		}
	}

	st.history = append(st.history, ev)
	if len(st.history) > s.cfg.HistoryLimit {
		st.history = st.history[len(st.history)-s.cfg.HistoryLimit:]
	}

	applyEvent(&st.affinity, ev, s.cfg)

	s.persistSessionLocked(ctx, sessionID, st)

	if s.eventLog != nil {
		if err := s.eventLog.SaveEvent(ctx, toEventRecord(ev)); err != nil {
			logger.Warn("behavior_event_log_failed", "event_id", ev.ID, "error", err)
			StateWriteFailuresTotal.WithLabelValues("event_log").Inc()
		}
	}

	logger.Debug("behavior_record",
		"session_id", sessionID,
		"action", string(action),
		"product_id", productID,
		"weight", ev.Weight,
	)

	BehaviorEventsTotal.WithLabelValues(string(action)).Inc()

	return ev, nil
}

// persistSessionLocked writes the history and analytics snapshots. Failures
// never roll back in-memory state.
func (s *BehaviorService) persistSessionLocked(ctx context.Context, sessionID string, st *sessionState) {
	payload, err := json.Marshal(st.history)
	if err == nil {
		err = s.stateStore.Set(ctx, historyKey(sessionID), string(payload))
	}
	if err != nil {
		logger.Warn("behavior_history_write_failed", "session_id", sessionID, "error", err)
		StateWriteFailuresTotal.WithLabelValues("history").Inc()
	}

	payload, err = json.Marshal(st.affinity)
	if err == nil {
		err = s.stateStore.Set(ctx, analyticsKey(sessionID), string(payload))
	}
	if err != nil {
		logger.Warn("behavior_analytics_write_failed", "session_id", sessionID, "error", err)
		StateWriteFailuresTotal.WithLabelValues("analytics").Inc()
	}
}

// Flush best-effort persists every loaded session. Called on shutdown; no
// delivery guarantee.
func (s *BehaviorService) Flush(ctx context.Context) {
	s.mu.Lock()
	ids := make([]string, 0, len(s.sessions))
	for id := range s.sessions {
		ids = append(ids, id)
	}
	s.mu.Unlock()

	for _, id := range ids {
		s.mu.Lock()
		st := s.sessions[id]
		s.mu.Unlock()
		if st == nil {
			continue
		}

		st.mu.Lock()
		s.persistSessionLocked(ctx, id, st)
		st.mu.Unlock()
	}
}

//  Analytics snapshot

const recentActivityLimit = 20

func (s *BehaviorService) GetUserAnalytics(ctx context.Context, sessionID string) (domain.UserAnalytics, error) {
	if err := ctx.Err(); err != nil {
		return domain.UserAnalytics{}, fmt.Errorf("context error: %w", err)
	}

	st := s.session(ctx, sessionID)
	st.mu.Lock()
	defer st.mu.Unlock()

	recent := make([]domain.BehaviorEvent, 0, recentActivityLimit)
	for i := len(st.history) - 1; i >= 0 && len(recent) < recentActivityLimit; i-- {
		recent = append(recent, st.history[i])
	}

	prefs := make([]domain.CategoryScore, len(st.affinity.PreferredCategories))
	copy(prefs, st.affinity.PreferredCategories)

	return domain.UserAnalytics{
		SessionID:           sessionID,
		EngagementScore:     st.affinity.EngagementScore,
		LoyaltyScore:        loyaltyScore(st.history, st.affinity),
		PreferredCategories: prefs,
		PricePreference:     pricePreference(st.affinity),
		RecentActivity:      recent,
	}, nil
}

// loyaltyScore summarizes repeat-purchase behavior on the same [0,100] scale
// as engagement.
func loyaltyScore(history []domain.BehaviorEvent, aff domain.AffinityState) float64 {
	purchases := 0
	for _, ev := range history {
		if ev.Action == domain.ActionPurchase {
			purchases++
		}
	}

	return clamp(float64(purchases)*10+aff.EngagementScore*0.3, 0, 100)
}

// pricePreference is the highest-scoring price bucket, or "" with no signal.
func pricePreference(aff domain.AffinityState) string {
	best := ""
	bestScore := 0.0
	for bucket, score := range aff.PriceRangeScores {
		if score > bestScore {
			best = bucket
			bestScore = score
		}
	}
	return best
}

// History returns a copy of the session's event history, most recent last.
func (s *BehaviorService) History(ctx context.Context, sessionID string) ([]domain.BehaviorEvent, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	st := s.session(ctx, sessionID)
	st.mu.Lock()
	defer st.mu.Unlock()

	out := make([]domain.BehaviorEvent, len(st.history))
	copy(out, st.history)

	return out, nil
}

func toEventRecord(ev domain.BehaviorEvent) domain.BehaviorEventRecord {
	ctxMap := datatypes.JSONMap{
		"page":        ev.Metadata.Page,
		"device":      ev.Metadata.Device,
		"platform":    ev.Metadata.Platform,
		"referrer":    ev.Metadata.Referrer,
		"hour_of_day": ev.Metadata.HourOfDay,
		"day_of_week": ev.Metadata.DayOfWeek,
	}

	return domain.BehaviorEventRecord{
		EventID:   ev.ID,
		SessionID: ev.SessionID,
		Action:    string(ev.Action),
		ProductID: ev.ProductID,
		Weight:    ev.Weight,
		CreatedAt: ev.Timestamp,
		Context:   ctxMap,
	}
}
