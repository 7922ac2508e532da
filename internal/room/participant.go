package room

import "time"

// Participant is a member of one session. Owned by that session; all access
// goes through the session's lock.
type Participant struct {
	ID           string    `json:"id"`
	DisplayName  string    `json:"display_name"`
	Persona      string    `json:"persona,omitempty"`
	JoinedAt     time.Time `json:"joined_at"`
	LastActive   time.Time `json:"last_active"`
	MessageCount int       `json:"message_count"`
	Ready        bool      `json:"is_ready"`
}
