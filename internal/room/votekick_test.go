package room

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var rosterNames = []string{"Alice", "Bob", "Carol", "Dave", "Eve", "Frank", "Grace", "Heidi", "Ivan", "Judy"}

func TestVotesNeeded(t *testing.T) {
	cases := []struct {
		roster int
		needed int
	}{
		{3, 2},
		{4, 2},
		{5, 3},
		{6, 3},
		{10, 6},
	}
	for _, tc := range cases {
		s := newTestSession("test", 0)
		for i := 0; i < tc.roster; i++ {
			mustJoin(s, rosterNames[i], rosterNames[i])
		}
		assert.Equal(t, tc.needed, s.votesNeeded(), "roster of %d", tc.roster)
	}
}

func TestStartVotekick(t *testing.T) {
	join := func(n int) (*Session, *fakeClock) {
		s := newTestSession("test", 0)
		clock := newFakeClock()
		s.now = clock.Now
		for i := 0; i < n; i++ {
			mustJoin(s, rosterNames[i], rosterNames[i])
		}
		return s, clock
	}

	t.Run("Initiator Auto Votes Yes", func(t *testing.T) {
		s, _ := join(4)
		tally, err := s.StartVotekick("Alice", "Bob", "spamming")
		require.NoError(t, err)
		assert.Equal(t, "Bob", tally.TargetID)
		assert.Equal(t, 1, tally.CurrentVotes)
		assert.Equal(t, 2, tally.VotesNeeded)
		assert.Equal(t, 60, tally.TimeRemaining)

		states := s.ActiveVotekicks()
		require.Len(t, states, 1)
		assert.Equal(t, []string{"Alice"}, states[0].VotesFor)
	})

	t.Run("Unknown Initiator Or Target", func(t *testing.T) {
		s, _ := join(3)
		_, err := s.StartVotekick("ghost", "Bob", "")
		assert.ErrorIs(t, err, ErrNotFound)
		_, err = s.StartVotekick("Alice", "ghost", "")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Self Target", func(t *testing.T) {
		s, _ := join(3)
		_, err := s.StartVotekick("Alice", "Alice", "")
		assert.ErrorIs(t, err, ErrSelfTarget)
	})

	t.Run("Roster Too Small", func(t *testing.T) {
		s, _ := join(2)
		_, err := s.StartVotekick("Alice", "Bob", "")
		assert.ErrorIs(t, err, ErrTooFewParticipants)
	})

	t.Run("Duplicate Against Same Target", func(t *testing.T) {
		s, _ := join(3)
		_, err := s.StartVotekick("Alice", "Bob", "")
		require.NoError(t, err)
		_, err = s.StartVotekick("Carol", "Bob", "")
		assert.ErrorIs(t, err, ErrVotekickActive)
	})

	t.Run("Reason Defaults And Caps", func(t *testing.T) {
		s, _ := join(3)
		_, err := s.StartVotekick("Alice", "Bob", "   ")
		require.NoError(t, err)
		states := s.ActiveVotekicks()
		require.Len(t, states, 1)
		assert.Equal(t, "No reason provided", states[0].Reason)

		s2, _ := join(3)
		long := make([]byte, 150)
		for i := range long {
			long[i] = 'x'
		}
		_, err = s2.StartVotekick("Alice", "Bob", string(long))
		require.NoError(t, err)
		states = s2.ActiveVotekicks()
		require.Len(t, states, 1)
		assert.Len(t, states[0].Reason, 100)
	})
}

func TestVoteOnKick(t *testing.T) {
	join := func(n int) (*Session, *fakeClock) {
		s := newTestSession("test", 0)
		clock := newFakeClock()
		s.now = clock.Now
		for i := 0; i < n; i++ {
			mustJoin(s, rosterNames[i], rosterNames[i])
		}
		return s, clock
	}

	t.Run("Threshold Reached Kicks", func(t *testing.T) {
		s, _ := join(3)
		_, err := s.StartVotekick("Alice", "Bob", "")
		require.NoError(t, err)

		outcome, err := s.VoteOnKick("Carol", "Bob", true)
		require.NoError(t, err)
		assert.Equal(t, VoteResultKicked, outcome.Result)
		assert.Equal(t, 2, outcome.YesVotes)
		assert.Equal(t, 2, s.ParticipantCount())
		assert.Empty(t, s.ActiveVotekicks())
	})

	t.Run("No Active Votekick", func(t *testing.T) {
		s, _ := join(3)
		_, err := s.VoteOnKick("Alice", "Bob", true)
		assert.ErrorIs(t, err, ErrNoActiveVotekick)
	})

	t.Run("Unknown Voter", func(t *testing.T) {
		s, _ := join(3)
		_, err := s.StartVotekick("Alice", "Bob", "")
		require.NoError(t, err)
		_, err = s.VoteOnKick("ghost", "Bob", true)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Still Reachable Stays Ongoing", func(t *testing.T) {
		// five in the roster, three yes votes needed; with one yes and two no
		// the two silent voters could still tip it
		s, _ := join(5)
		_, err := s.StartVotekick("Alice", "Eve", "")
		require.NoError(t, err)

		_, err = s.VoteOnKick("Bob", "Eve", false)
		require.NoError(t, err)
		outcome, err := s.VoteOnKick("Carol", "Eve", false)
		require.NoError(t, err)
		assert.Equal(t, VoteResultOngoing, outcome.Result)
		assert.Equal(t, 1, outcome.YesVotes)
		assert.Equal(t, 3, outcome.VotesNeeded)
	})

	t.Run("Unreachable Threshold Fails Early", func(t *testing.T) {
		s, _ := join(5)
		_, err := s.StartVotekick("Alice", "Eve", "")
		require.NoError(t, err)

		_, err = s.VoteOnKick("Bob", "Eve", false)
		require.NoError(t, err)
		_, err = s.VoteOnKick("Carol", "Eve", false)
		require.NoError(t, err)
		outcome, err := s.VoteOnKick("Dave", "Eve", false)
		require.NoError(t, err)
		assert.Equal(t, VoteResultFailed, outcome.Result)
		assert.Equal(t, 5, s.ParticipantCount())
		assert.Empty(t, s.ActiveVotekicks())
	})

	t.Run("Later Vote Overwrites Earlier", func(t *testing.T) {
		s, _ := join(4)
		_, err := s.StartVotekick("Alice", "Dave", "")
		require.NoError(t, err)

		outcome, err := s.VoteOnKick("Bob", "Dave", false)
		require.NoError(t, err)
		assert.Equal(t, VoteResultOngoing, outcome.Result)
		assert.Equal(t, 1, outcome.YesVotes)

		outcome, err = s.VoteOnKick("Bob", "Dave", true)
		require.NoError(t, err)
		assert.Equal(t, VoteResultKicked, outcome.Result)
		assert.Equal(t, 2, outcome.YesVotes)
	})

	t.Run("Expired Vote Rejected And Purged", func(t *testing.T) {
		s, clock := join(3)
		_, err := s.StartVotekick("Alice", "Bob", "")
		require.NoError(t, err)

		clock.Advance(votekickWindow + time.Second)
		_, err = s.VoteOnKick("Carol", "Bob", true)
		assert.ErrorIs(t, err, ErrVotekickExpired)
		assert.Empty(t, s.ActiveVotekicks())
		assert.Equal(t, 3, s.ParticipantCount())
	})

	t.Run("Sweep Purges Expired Records", func(t *testing.T) {
		s, clock := join(3)
		_, err := s.StartVotekick("Alice", "Bob", "")
		require.NoError(t, err)
		require.Len(t, s.ActiveVotekicks(), 1)

		clock.Advance(votekickWindow + time.Second)
		assert.Empty(t, s.ActiveVotekicks())
	})
}

func TestVotekickCleanupOnLeave(t *testing.T) {
	join := func(n int) *Session {
		s := newTestSession("test", 0)
		for i := 0; i < n; i++ {
			mustJoin(s, rosterNames[i], rosterNames[i])
		}
		return s
	}

	t.Run("Target Leaving Cancels The Vote", func(t *testing.T) {
		s := join(4)
		_, err := s.StartVotekick("Alice", "Bob", "")
		require.NoError(t, err)

		assert.True(t, s.RemoveParticipant("Bob"))
		assert.Empty(t, s.ActiveVotekicks())
	})

	t.Run("Voter Leaving Strips Their Vote", func(t *testing.T) {
		s := join(5)
		_, err := s.StartVotekick("Alice", "Eve", "")
		require.NoError(t, err)
		_, err = s.VoteOnKick("Bob", "Eve", true)
		require.NoError(t, err)

		assert.True(t, s.RemoveParticipant("Bob"))
		states := s.ActiveVotekicks()
		require.Len(t, states, 1)
		assert.Equal(t, []string{"Alice"}, states[0].VotesFor)
	})
}
