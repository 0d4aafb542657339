package domain

import (
	"errors"
	"time"
)

// Session binds a platform/topic/audience/tone choice to its current plan.
type Session struct {
	SessionID string      `json:"session_id"`
	Platform  string      `json:"platform"`
	Topic     string      `json:"topic"`
	Audience  string      `json:"audience"`
	Tone      string      `json:"tone"`
	Content   ContentPlan `json:"content"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// SessionSummary is the listing view of a session.
type SessionSummary struct {
	SessionID string    `json:"session_id"`
	Platform  string    `json:"platform"`
	Topic     string    `json:"topic"`
	Audience  string    `json:"audience"`
	Tone      string    `json:"tone"`
	CreatedAt time.Time `json:"created_at"`
}

// Touch refreshes UpdatedAt. The new value is always strictly later than the
// previous one, even when the clock has not advanced.
func (s *Session) Touch(now time.Time) {
	now = now.UTC()
	if !now.After(s.UpdatedAt) {
		now = s.UpdatedAt.Add(time.Microsecond)
	}
	s.UpdatedAt = now
}

// Summary returns the listing view of s.
func (s Session) Summary() SessionSummary {
	return SessionSummary{
		SessionID: s.SessionID,
		Platform:  s.Platform,
		Topic:     s.Topic,
		Audience:  s.Audience,
		Tone:      s.Tone,
		CreatedAt: s.CreatedAt,
	}
}

// Clone returns a deep copy of s so stores never share slices with callers.
func (s Session) Clone() Session {
	s.Content = s.Content.Clone()
	return s
}

// ErrSessionNotFound is returned by session stores for unknown ids.
var ErrSessionNotFound = errors.New("session not found")
