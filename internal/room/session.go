package room

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// GenerateOptions are the knobs every oracle call carries.
type GenerateOptions struct {
	Temperature float64
	MaxTokens   int
}

// Oracle is the external text generator. The engine only ever sees this
// interface; the HTTP client lives in internal/oracle.
type Oracle interface {
	Generate(ctx context.Context, systemPrompt, userPrompt string, opts GenerateOptions) (string, error)
}

const DefaultMaxParticipants = 12

// Session is the shared core of both room variants: an insertion-ordered
// roster and an append-only event log. All state of one session is guarded
// by a single mutex, so mutations never interleave (the oracle call is made
// while holding it, which is what serializes a logical turn).
type Session struct {
	mu sync.Mutex

	id              string
	title           string
	participants    []*Participant
	events          []Event
	active          bool
	maxParticipants int
	createdAt       time.Time
	lastEventAt     time.Time

	votekicks map[string]*Votekick

	// injected clock so timer behavior is testable
	now func() time.Time
}

// initSession fills in a zero Session in place; the embedded mutex must
// never be copied once the session is shared.
func initSession(s *Session, title string, maxParticipants int) {
	if maxParticipants <= 0 {
		maxParticipants = DefaultMaxParticipants
	}
	s.id = uuid.NewString()
	s.title = title
	s.active = true
	s.maxParticipants = maxParticipants
	s.votekicks = make(map[string]*Votekick)
	s.now = time.Now
	s.createdAt = s.now()
	s.lastEventAt = s.createdAt
}

func (s *Session) ID() string { return s.id }

func (s *Session) Title() string { return s.title }

func (s *Session) CreatedAt() time.Time { return s.createdAt }

func (s *Session) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// End marks the session inactive. The event log survives for export.
func (s *Session) End() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = false
}

// LastEventAt reports when the log last grew, used by the registry TTL sweep.
func (s *Session) LastEventAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastEventAt
}

// AddParticipant appends p to the roster and logs a join notice.
func (s *Session) AddParticipant(p *Participant) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.active {
		return ErrRoomInactive
	}
	if len(s.participants) >= s.maxParticipants {
		return ErrRoomFull
	}
	for _, existing := range s.participants {
		if existing.ID == p.ID {
			return ErrAlreadyJoined
		}
	}

	if p.JoinedAt.IsZero() {
		p.JoinedAt = s.now()
	}
	p.LastActive = p.JoinedAt
	s.participants = append(s.participants, p)
	s.systemNotice(p.DisplayName + " joined the chat")
	return nil
}

// RemoveParticipant drops the participant if present and reports whether it
// was found. Leaving always purges votekick state involving the leaver.
func (s *Session) RemoveParticipant(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.removeParticipant(id)
}

// callers hold mu
func (s *Session) removeParticipant(id string) bool {
	for i, p := range s.participants {
		if p.ID == id {
			s.systemNotice(p.DisplayName + " left the chat")
			s.participants = append(s.participants[:i], s.participants[i+1:]...)
			s.cleanupVotekicksFor(id)
			return true
		}
	}
	return false
}

// callers hold mu
func (s *Session) participant(id string) *Participant {
	for _, p := range s.participants {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (s *Session) ParticipantCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.participants)
}

// AddMessage appends a participant message and bumps activity counters.
func (s *Session) AddMessage(senderID, content string) (Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addMessage(senderID, content)
}

// callers hold mu
func (s *Session) addMessage(senderID, content string) (Event, error) {
	p := s.participant(senderID)
	if p == nil {
		return Event{}, ErrNotFound
	}

	ev := s.appendEvent(Event{
		Type:       EventMessage,
		SenderID:   senderID,
		SenderName: p.DisplayName,
		Content:    content,
	})
	p.MessageCount++
	p.LastActive = s.now()
	return ev, nil
}

// appendEvent is the only way the log grows. Entries are immutable once
// appended. callers hold mu.
func (s *Session) appendEvent(ev Event) Event {
	ev.ID = uuid.NewString()
	ev.Timestamp = s.now()
	s.events = append(s.events, ev)
	s.lastEventAt = ev.Timestamp
	return ev
}

// callers hold mu
func (s *Session) systemNotice(content string) Event {
	return s.appendEvent(Event{
		Type:       EventSystem,
		SenderID:   "system",
		SenderName: "System",
		Content:    content,
	})
}

// Events returns a copy of the log.
func (s *Session) Events() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Event, len(s.events))
	copy(out, s.events)
	return out
}

// Participants returns a snapshot of the roster in join order.
func (s *Session) Participants() []Participant {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Participant, len(s.participants))
	for i, p := range s.participants {
		out[i] = *p
	}
	return out
}
