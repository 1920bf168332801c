package session

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"ivolexMarket/domain"
	"ivolexMarket/pkg/logger"
)

// SessionStore is the durable key-value store for session snapshots.
type SessionStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string) error
}

// DeviceProfile holds the read-only browsing facts attached to a fresh
// session: device class, platform, locale.
type DeviceProfile struct {
	Device   string
	Platform string
	Locale   string
}

type SessionService struct {
	store  SessionStore
	maxAge time.Duration
	now    func() time.Time
}

func NewSessionService(store SessionStore, maxAge time.Duration) *SessionService {
	if maxAge <= 0 {
		maxAge = 24 * time.Hour
	}

	return &SessionService{
		store:  store,
		maxAge: maxAge,
		now:    time.Now,
	}
}

// SetClock overrides the time source. Intended for tests.
func (s *SessionService) SetClock(now func() time.Time) {
	s.now = now
}

func sessionKey(sessionID string) string {
	return "behavior:session:" + sessionID
}

// Resume reloads a persisted session when its start time is under the max
// age, otherwise mints a fresh one from the current timestamp. Storage
// failures and corrupt snapshots both degrade to a fresh session.
func (s *SessionService) Resume(ctx context.Context, sessionID string, profile DeviceProfile) (domain.SessionContext, error) {
	if err := ctx.Err(); err != nil {
		return domain.SessionContext{}, fmt.Errorf("context error: %w", err)
	}

	if sessionID != "" {
		raw, err := s.store.Get(ctx, sessionKey(sessionID))
		if err != nil {
			logger.Warn("session_load_failed", "session_id", sessionID, "error", err)
		} else if raw != "" {
			var sc domain.SessionContext
			if err := json.Unmarshal([]byte(raw), &sc); err != nil {
				logger.Warn("session_snapshot_corrupt", "session_id", sessionID, "error", err)
			} else if s.now().Sub(sc.StartTime) < s.maxAge {
				return sc, nil
			}
		}
	}

	now := s.now()
	sc := domain.SessionContext{
		SessionID: fmt.Sprintf("session_%d", now.UnixMilli()),
		StartTime: now,
		Device:    profile.Device,
		Platform:  profile.Platform,
		Locale:    profile.Locale,
	}

	s.Save(ctx, sc)

	logger.Debug("session_minted",
		"session_id", sc.SessionID,
		"device", sc.Device,
		"platform", sc.Platform,
	)

	return sc, nil
}

// Touch records page navigation and accumulated time on site.
func (s *SessionService) Touch(ctx context.Context, sc *domain.SessionContext, page string, secondsSpent float64) {
	if page != "" {
		sc.CurrentPage = page
	}
	if secondsSpent > 0 {
		sc.TimeSpentSec += secondsSpent
	}

	s.Save(ctx, *sc)
}

// Save persists the session snapshot. Best effort; failures are logged and
// swallowed.
func (s *SessionService) Save(ctx context.Context, sc domain.SessionContext) {
	payload, err := json.Marshal(sc)
	if err == nil {
		err = s.store.Set(ctx, sessionKey(sc.SessionID), string(payload))
	}
	if err != nil {
		logger.Warn("session_write_failed", "session_id", sc.SessionID, "error", err)
	}
}

var mobileAgentMarkers = []string{
	"mobile", "android", "iphone", "ipad", "ipod", "windows phone", "opera mini",
}

// ClassifyDevice buckets a User-Agent into mobile or desktop.
func ClassifyDevice(userAgent string) string {
	ua := strings.ToLower(userAgent)
	for _, marker := range mobileAgentMarkers {
		if strings.Contains(ua, marker) {
			return "mobile"
		}
	}
	return "desktop"
}
