package room

import "time"

const (
	EventMessage    = "message"
	EventSystem     = "system"
	EventNarration  = "narration"
	EventIcebreaker = "icebreaker"
	EventTwist      = "twist"
	EventOutcome    = "outcome"
)

// Event is one immutable entry in a session's chronological log.
type Event struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	SenderID   string    `json:"sender_id,omitempty"`
	SenderName string    `json:"sender_name,omitempty"`
	Content    string    `json:"content"`
	Timestamp  time.Time `json:"timestamp"`
}
