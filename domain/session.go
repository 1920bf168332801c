package domain

import "time"

// SessionContext is the one active session per browsing context. A persisted
// session is reused across reloads while its start time is under 24 hours old.
type SessionContext struct {
	SessionID    string    `json:"session_id"`
	StartTime    time.Time `json:"start_time"`
	Device       string    `json:"device"`
	Platform     string    `json:"platform"`
	Locale       string    `json:"locale"`
	CurrentPage  string    `json:"current_page"`
	TimeSpentSec float64   `json:"time_spent_sec"`
}
