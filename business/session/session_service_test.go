package session

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"ivolexMarket/domain"
)

type fakeSessionStore struct {
	mu      sync.Mutex
	data    map[string]string
	failGet bool
	failSet bool
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{data: make(map[string]string)}
}

func (f *fakeSessionStore) Get(ctx context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failGet {
		return "", errors.New("store unavailable")
	}
	return f.data[key], nil
}

func (f *fakeSessionStore) Set(ctx context.Context, key string, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failSet {
		return errors.New("store unavailable")
	}
	f.data[key] = value
	return nil
}

var testNow = time.Date(2026, 5, 1, 9, 30, 0, 0, time.UTC)

func newTestSessionService(store SessionStore) *SessionService {
	svc := NewSessionService(store, 24*time.Hour)
	svc.SetClock(func() time.Time { return testNow })
	return svc
}

func seedSession(t *testing.T, store *fakeSessionStore, sc domain.SessionContext) {
	t.Helper()
	payload, err := json.Marshal(sc)
	if err != nil {
		t.Fatalf("marshal session: %v", err)
	}
	store.mu.Lock()
	store.data[sessionKey(sc.SessionID)] = string(payload)
	store.mu.Unlock()
}

func TestResume_ReusesFreshSession(t *testing.T) {
	store := newFakeSessionStore()
	svc := newTestSessionService(store)

	existing := domain.SessionContext{
		SessionID: "session_abc",
		StartTime: testNow.Add(-2 * time.Hour),
		Device:    "mobile",
		Platform:  "ios",
		Locale:    "en",
	}
	seedSession(t, store, existing)

	got, err := svc.Resume(context.Background(), "session_abc", DeviceProfile{Device: "desktop"})
	if err != nil {
		t.Fatalf("Resume: %v", err)
	}
	if got.SessionID != "session_abc" {
		t.Errorf("SessionID = %s, want existing session_abc", got.SessionID)
	}
	if got.Device != "mobile" {
		t.Errorf("Device = %s, want persisted mobile (profile must not overwrite)", got.Device)
	}
}

func TestResume_ExpiredSessionMintsNew(t *testing.T) {
	store := newFakeSessionStore()
	svc := newTestSessionService(store)

	seedSession(t, store, domain.SessionContext{
		SessionID: "session_old",
		StartTime: testNow.Add(-25 * time.Hour),
	})

	got, err := svc.Resume(context.Background(), "session_old", DeviceProfile{Device: "desktop", Platform: "windows", Locale: "de"})
	if err != nil {
		t.Fatalf("Resume: %v", err)
	}
	if got.SessionID == "session_old" {
		t.Error("expired session reused")
	}
	if got.Device != "desktop" || got.Platform != "windows" || got.Locale != "de" {
		t.Errorf("fresh session profile = %+v, want caller profile", got)
	}
	if !got.StartTime.Equal(testNow) {
		t.Errorf("StartTime = %v, want %v", got.StartTime, testNow)
	}

	store.mu.Lock()
	_, persisted := store.data[sessionKey(got.SessionID)]
	store.mu.Unlock()
	if !persisted {
		t.Error("fresh session not persisted")
	}
}

func TestResume_NoIDMintsNew(t *testing.T) {
	svc := newTestSessionService(newFakeSessionStore())

	got, err := svc.Resume(context.Background(), "", DeviceProfile{})
	if err != nil {
		t.Fatalf("Resume: %v", err)
	}
	if got.SessionID == "" {
		t.Error("minted session has empty id")
	}
}

func TestResume_CorruptSnapshotMintsNew(t *testing.T) {
	store := newFakeSessionStore()
	store.data[sessionKey("session_bad")] = "{broken"
	svc := newTestSessionService(store)

	got, err := svc.Resume(context.Background(), "session_bad", DeviceProfile{})
	if err != nil {
		t.Fatalf("Resume: %v", err)
	}
	if got.SessionID == "session_bad" {
		t.Error("corrupt session snapshot reused")
	}
}

func TestResume_StoreFailureMintsNew(t *testing.T) {
	store := newFakeSessionStore()
	store.failGet = true
	store.failSet = true
	svc := newTestSessionService(store)

	got, err := svc.Resume(context.Background(), "session_abc", DeviceProfile{})
	if err != nil {
		t.Fatalf("Resume with failing store: %v", err)
	}
	if got.SessionID == "" || got.SessionID == "session_abc" {
		t.Errorf("SessionID = %s, want a freshly minted id", got.SessionID)
	}
}

func TestTouch(t *testing.T) {
	store := newFakeSessionStore()
	svc := newTestSessionService(store)

	sc := domain.SessionContext{SessionID: "session_abc", StartTime: testNow}
	svc.Touch(context.Background(), &sc, "/products/1", 12.5)
	svc.Touch(context.Background(), &sc, "", 7.5)

	if sc.CurrentPage != "/products/1" {
		t.Errorf("CurrentPage = %s, want /products/1 (empty page keeps previous)", sc.CurrentPage)
	}
	if sc.TimeSpentSec != 20 {
		t.Errorf("TimeSpentSec = %v, want 20", sc.TimeSpentSec)
	}

	store.mu.Lock()
	raw := store.data[sessionKey("session_abc")]
	store.mu.Unlock()

	var persisted domain.SessionContext
	if err := json.Unmarshal([]byte(raw), &persisted); err != nil {
		t.Fatalf("unmarshal persisted session: %v", err)
	}
	if persisted.TimeSpentSec != 20 {
		t.Errorf("persisted TimeSpentSec = %v, want 20", persisted.TimeSpentSec)
	}
}

func TestClassifyDevice(t *testing.T) {
	cases := []struct {
		ua   string
		want string
	}{
		{"Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X)", "mobile"},
		{"Mozilla/5.0 (Linux; Android 14; Pixel 8)", "mobile"},
		{"Mozilla/5.0 (Windows NT 10.0; Win64; x64)", "desktop"},
		{"Opera Mini/36.2", "mobile"},
		{"", "desktop"},
	}
	for _, tc := range cases {
		if got := ClassifyDevice(tc.ua); got != tc.want {
			t.Errorf("ClassifyDevice(%q) = %s, want %s", tc.ua, got, tc.want)
		}
	}
}
