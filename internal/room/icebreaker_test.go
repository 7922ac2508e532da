package room

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRoom(t *testing.T, o Oracle) (*IcebreakerRoom, *fakeClock) {
	t.Helper()
	r := NewIcebreakerRoom("study group", "", o, 0)
	clock := newFakeClock()
	r.now = clock.Now
	mustJoin(r, "p1", "Alice")
	mustJoin(r, "p2", "Bob")
	mustJoin(r, "p3", "Carol")
	return r, clock
}

func TestSetReady(t *testing.T) {
	ctx := context.Background()

	t.Run("Unknown Participant", func(t *testing.T) {
		r, _ := newTestRoom(t, &scriptedOracle{replies: []string{"Who are you?"}})
		_, err := r.SetReady(ctx, "ghost", true)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Repeat Ready Is Idempotent", func(t *testing.T) {
		r, _ := newTestRoom(t, &scriptedOracle{replies: []string{"Who are you?"}})
		status, err := r.SetReady(ctx, "p1", true)
		require.NoError(t, err)
		assert.Equal(t, 1, status.ReadyCount)

		status, err = r.SetReady(ctx, "p1", true)
		require.NoError(t, err)
		assert.Equal(t, 1, status.ReadyCount)
		assert.False(t, status.TimerActive)
	})

	t.Run("Unready Flips Back", func(t *testing.T) {
		r, _ := newTestRoom(t, &scriptedOracle{replies: []string{"Who are you?"}})
		_, err := r.SetReady(ctx, "p1", true)
		require.NoError(t, err)
		status, err := r.SetReady(ctx, "p1", false)
		require.NoError(t, err)
		assert.Equal(t, 0, status.ReadyCount)
	})

	t.Run("Half Quorum Starts Countdown Once", func(t *testing.T) {
		r, clock := newTestRoom(t, &scriptedOracle{replies: []string{"Who are you?"}})

		status, err := r.SetReady(ctx, "p1", true)
		require.NoError(t, err)
		assert.False(t, status.TimerActive) // 1 of 3 is below quorum

		status, err = r.SetReady(ctx, "p2", true)
		require.NoError(t, err)
		require.True(t, status.TimerActive)
		require.NotNil(t, status.SecondsRemaining)
		assert.Equal(t, 60, *status.SecondsRemaining)

		// flapping a ready flag must not restart the countdown
		clock.Advance(20 * time.Second)
		_, err = r.SetReady(ctx, "p2", false)
		require.NoError(t, err)
		status, err = r.SetReady(ctx, "p2", true)
		require.NoError(t, err)
		require.NotNil(t, status.SecondsRemaining)
		assert.Equal(t, 40, *status.SecondsRemaining)
	})

	t.Run("Full Quorum Mints Immediately", func(t *testing.T) {
		o := &scriptedOracle{replies: []string{"What's your go-to study snack?"}}
		r, _ := newTestRoom(t, o)

		_, err := r.SetReady(ctx, "p1", true)
		require.NoError(t, err)
		_, err = r.SetReady(ctx, "p2", true)
		require.NoError(t, err)
		status, err := r.SetReady(ctx, "p3", true)
		require.NoError(t, err)

		assert.True(t, status.NewTopic)
		assert.Equal(t, 0, status.ReadyCount)
		assert.Equal(t, 1, o.calls)

		state := r.State(ctx)
		assert.Equal(t, "What's your go-to study snack?", state.CurrentTopic)
		assert.Equal(t, 1, countEvents(state.Events, EventIcebreaker))
		assert.False(t, state.ReadyStatus.TimerActive)
		assert.Equal(t, 0, state.ReadyStatus.ReadyCount) // flags reset on mint
	})
}

func TestTopicCountdown(t *testing.T) {
	ctx := context.Background()

	t.Run("Due Countdown Rotates Before Message Lands", func(t *testing.T) {
		o := &scriptedOracle{replies: []string{"If you could teleport anywhere right now, where?"}}
		r, clock := newTestRoom(t, o)

		_, err := r.SetReady(ctx, "p1", true)
		require.NoError(t, err)
		_, err = r.SetReady(ctx, "p2", true)
		require.NoError(t, err)

		clock.Advance(readyWindow)
		_, err = r.SendMessage(ctx, "p3", "sorry, got distracted")
		require.NoError(t, err)

		events := r.Events()
		var topicIdx, msgIdx int
		for i, ev := range events {
			switch {
			case ev.Type == EventIcebreaker:
				topicIdx = i
			case ev.Type == EventMessage && ev.Content == "sorry, got distracted":
				msgIdx = i
			}
		}
		assert.Less(t, topicIdx, msgIdx)
	})

	t.Run("State Read Triggers Due Rotation", func(t *testing.T) {
		o := &scriptedOracle{replies: []string{"What's the best class you've taken?"}}
		r, clock := newTestRoom(t, o)

		_, err := r.SetReady(ctx, "p1", true)
		require.NoError(t, err)
		_, err = r.SetReady(ctx, "p2", true)
		require.NoError(t, err)

		clock.Advance(readyWindow + time.Second)
		state := r.State(ctx)
		assert.Equal(t, "What's the best class you've taken?", state.CurrentTopic)
		assert.False(t, state.ReadyStatus.TimerActive)
	})

	t.Run("Ready Toggle Rotates A Due Countdown First", func(t *testing.T) {
		o := &scriptedOracle{replies: []string{"What's one thing you can't study without?"}}
		r, clock := newTestRoom(t, o)

		_, err := r.SetReady(ctx, "p1", true)
		require.NoError(t, err)
		_, err = r.SetReady(ctx, "p2", true)
		require.NoError(t, err)

		clock.Advance(readyWindow)
		status, err := r.SetReady(ctx, "p3", true)
		require.NoError(t, err)

		// the rotation resets every flag before this toggle is counted
		assert.Equal(t, 1, status.ReadyCount)
		assert.False(t, status.TimerActive)
		assert.False(t, status.NewTopic)

		state := r.State(ctx)
		assert.Equal(t, "What's one thing you can't study without?", state.CurrentTopic)
		assert.Equal(t, 1, countEvents(state.Events, EventIcebreaker))
	})

	t.Run("Countdown Not Yet Due", func(t *testing.T) {
		o := &scriptedOracle{replies: []string{"unused"}}
		r, clock := newTestRoom(t, o)

		_, err := r.SetReady(ctx, "p1", true)
		require.NoError(t, err)
		_, err = r.SetReady(ctx, "p2", true)
		require.NoError(t, err)

		clock.Advance(30 * time.Second)
		state := r.State(ctx)
		assert.Empty(t, state.CurrentTopic)
		require.NotNil(t, state.ReadyStatus.SecondsRemaining)
		assert.Equal(t, 30, *state.ReadyStatus.SecondsRemaining)
	})
}

func TestMintTopic(t *testing.T) {
	ctx := context.Background()

	t.Run("Fallback On Oracle Error", func(t *testing.T) {
		r, _ := newTestRoom(t, &scriptedOracle{err: assert.AnError})
		r.mu.Lock()
		topic := r.mintTopic(ctx)
		r.mu.Unlock()
		assert.Equal(t, fallbackTopics[activityIntroductions], topic)
	})

	t.Run("Question Mark Appended", func(t *testing.T) {
		r, _ := newTestRoom(t, &scriptedOracle{replies: []string{`"Describe your perfect Saturday"`}})
		r.mu.Lock()
		topic := r.mintTopic(ctx)
		r.mu.Unlock()
		assert.Equal(t, "Describe your perfect Saturday?", topic)
	})

	t.Run("Category Ladder", func(t *testing.T) {
		r, _ := newTestRoom(t, &scriptedOracle{replies: []string{"A question?"}})

		want := []string{
			activityIntroductions,
			activityGettingToKnow, activityGettingToKnow,
			activityCreative, activityCreative,
			activityReflection, activityReflection,
		}
		for i, category := range want {
			r.mu.Lock()
			r.mintTopic(ctx)
			got := r.activityType
			r.mu.Unlock()
			assert.Equal(t, category, got, "topic %d", i+1)
		}
	})
}
