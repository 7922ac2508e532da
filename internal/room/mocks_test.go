package room

import (
	"context"
	"sync"
	"time"
)

// scriptedOracle replays canned replies in order. Once the script runs out it
// keeps returning the last entry.
type scriptedOracle struct {
	mu      sync.Mutex
	replies []string
	err     error
	calls   int
	prompts []string // user prompts, in call order
}

func (o *scriptedOracle) Generate(_ context.Context, _, userPrompt string, _ GenerateOptions) (string, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.calls++
	o.prompts = append(o.prompts, userPrompt)
	if o.err != nil {
		return "", o.err
	}
	i := o.calls - 1
	if i >= len(o.replies) {
		i = len(o.replies) - 1
	}
	return o.replies[i], nil
}

// fakeClock is a hand-cranked clock injected through the session's now field.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func newTestSession(title string, maxParticipants int) *Session {
	s := &Session{}
	initSession(s, title, maxParticipants)
	return s
}

// cannedMemories hands back the same recall list for every participant.
type cannedMemories struct {
	items []string
}

func (m *cannedMemories) Relevant(_, _ string, k int) []string {
	if k > len(m.items) {
		k = len(m.items)
	}
	return m.items[:k]
}

func mustJoin(s interface{ AddParticipant(*Participant) error }, id, name string) {
	if err := s.AddParticipant(&Participant{ID: id, DisplayName: name}); err != nil {
		panic(err)
	}
}
