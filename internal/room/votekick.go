package room

import (
	"fmt"
	"math"
	"strings"
	"time"
)

const (
	votekickWindow    = 60 * time.Second
	votekickThreshold = 0.6
	votekickMinRoster = 3
	maxReasonLength   = 100
)

// Vote results
const (
	VoteResultKicked  = "kicked"
	VoteResultFailed  = "failed"
	VoteResultOngoing = "ongoing"
)

// Votekick is one active vote to remove a participant. At most one exists
// per target. Expiry is evaluated lazily on access, never by a timer.
type Votekick struct {
	TargetID      string
	TargetName    string
	InitiatorID   string
	InitiatorName string
	Reason        string
	Votes         map[string]bool // voter id -> yes/no
	StartedAt     time.Time
	ExpiresAt     time.Time
}

// VotekickTally is returned when a votekick is started.
type VotekickTally struct {
	TargetID      string `json:"votekick_id"`
	VotesNeeded   int    `json:"votes_needed"`
	CurrentVotes  int    `json:"current_votes"`
	TimeRemaining int    `json:"time_remaining"`
}

// VoteOutcome is returned for each recorded vote.
type VoteOutcome struct {
	Result      string `json:"result"`
	YesVotes    int    `json:"votes"`
	VotesNeeded int    `json:"votes_needed"`
	TotalVotes  int    `json:"total_votes,omitempty"`
}

// VotekickState is the snapshot form used in room state reads.
type VotekickState struct {
	TargetID       string    `json:"target_id"`
	TargetName     string    `json:"target_name"`
	InitiatorName  string    `json:"initiator_name"`
	Reason         string    `json:"reason"`
	VotesFor       []string  `json:"votes_for"`
	VotesAgainst   []string  `json:"votes_against"`
	EligibleVoters []string  `json:"eligible_voters"`
	VotesNeeded    int       `json:"votes_needed"`
	ExpiresAt      time.Time `json:"expiry_time"`
	TimeRemaining  int       `json:"time_remaining"`
}

// StartVotekick opens a vote to remove targetID. The initiator's yes vote is
// recorded automatically.
func (s *Session) StartVotekick(initiatorID, targetID, reason string) (*VotekickTally, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	initiator := s.participant(initiatorID)
	if initiator == nil {
		return nil, ErrNotFound
	}
	target := s.participant(targetID)
	if target == nil {
		return nil, ErrNotFound
	}
	if initiatorID == targetID {
		return nil, ErrSelfTarget
	}
	if len(s.participants) < votekickMinRoster {
		return nil, ErrTooFewParticipants
	}
	if _, exists := s.votekicks[targetID]; exists {
		return nil, ErrVotekickActive
	}

	reason = strings.TrimSpace(reason)
	if len(reason) > maxReasonLength {
		reason = reason[:maxReasonLength]
	}
	if reason == "" {
		reason = "No reason provided"
	}

	now := s.now()
	vk := &Votekick{
		TargetID:      targetID,
		TargetName:    target.DisplayName,
		InitiatorID:   initiatorID,
		InitiatorName: initiator.DisplayName,
		Reason:        reason,
		Votes:         map[string]bool{initiatorID: true},
		StartedAt:     now,
		ExpiresAt:     now.Add(votekickWindow),
	}
	s.votekicks[targetID] = vk

	notice := fmt.Sprintf("%s started a vote to remove %s", initiator.DisplayName, target.DisplayName)
	if reason != "No reason provided" {
		notice += fmt.Sprintf(" (Reason: %s)", reason)
	}
	notice += fmt.Sprintf(". Vote within %d seconds.", int(votekickWindow.Seconds()))
	s.systemNotice(notice)

	return &VotekickTally{
		TargetID:      targetID,
		VotesNeeded:   s.votesNeeded(),
		CurrentVotes:  1,
		TimeRemaining: int(votekickWindow.Seconds()),
	}, nil
}

// VoteOnKick records a yes/no vote on the active votekick against targetID.
// A later vote from the same voter overwrites the earlier one. Reaching the
// threshold removes the target; a mathematically unreachable threshold fails
// the vote early instead of waiting out the clock.
func (s *Session) VoteOnKick(voterID, targetID string, vote bool) (*VoteOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.participant(voterID) == nil {
		return nil, ErrNotFound
	}
	vk, exists := s.votekicks[targetID]
	if !exists {
		return nil, ErrNoActiveVotekick
	}

	if s.now().After(vk.ExpiresAt) {
		s.expireVotekick(targetID)
		return nil, ErrVotekickExpired
	}

	vk.Votes[voterID] = vote

	yesVotes := 0
	for _, v := range vk.Votes {
		if v {
			yesVotes++
		}
	}
	totalVotes := len(vk.Votes)
	votesNeeded := s.votesNeeded()

	if yesVotes >= votesNeeded {
		name := vk.TargetName
		s.removeParticipant(targetID) // also purges this record
		s.systemNotice(fmt.Sprintf("%s has been removed from the room by vote (%d voted yes)", name, yesVotes))
		delete(s.votekicks, targetID)
		return &VoteOutcome{Result: VoteResultKicked, YesVotes: yesVotes, VotesNeeded: votesNeeded}, nil
	}

	maxPossibleYes := yesVotes + (len(s.participants) - totalVotes)
	if maxPossibleYes < votesNeeded {
		s.systemNotice(fmt.Sprintf("Vote to remove %s failed - not enough support", vk.TargetName))
		delete(s.votekicks, targetID)
		return &VoteOutcome{Result: VoteResultFailed, YesVotes: yesVotes, VotesNeeded: votesNeeded}, nil
	}

	return &VoteOutcome{
		Result:      VoteResultOngoing,
		YesVotes:    yesVotes,
		VotesNeeded: votesNeeded,
		TotalVotes:  totalVotes,
	}, nil
}

// votesNeeded is computed against the roster size at evaluation time. The
// target cannot vote on their own removal. callers hold mu.
func (s *Session) votesNeeded() int {
	eligible := len(s.participants) - 1
	needed := int(math.Ceil(float64(eligible) * votekickThreshold))
	if needed < 2 {
		needed = 2
	}
	return needed
}

// callers hold mu
func (s *Session) expireVotekick(targetID string) {
	vk, ok := s.votekicks[targetID]
	if !ok {
		return
	}
	s.systemNotice(fmt.Sprintf("Vote to remove %s expired without reaching threshold", vk.TargetName))
	delete(s.votekicks, targetID)
}

// sweepExpiredVotekicks purges every record past its expiry. callers hold mu.
func (s *Session) sweepExpiredVotekicks() {
	now := s.now()
	for targetID, vk := range s.votekicks {
		if now.After(vk.ExpiresAt) {
			s.expireVotekick(targetID)
		}
	}
}

// cleanupVotekicksFor runs when a participant leaves for any reason: records
// targeting them are purged and their votes stripped from the rest. The
// early-failure check is deliberately not re-run here. callers hold mu.
func (s *Session) cleanupVotekicksFor(participantID string) {
	delete(s.votekicks, participantID)
	for _, vk := range s.votekicks {
		delete(vk.Votes, participantID)
	}
}

// ActiveVotekicks sweeps expired records, then snapshots the rest.
func (s *Session) ActiveVotekicks() []VotekickState {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweepExpiredVotekicks()
	return s.votekickStates()
}

// callers hold mu
func (s *Session) votekickStates() []VotekickState {
	states := make([]VotekickState, 0, len(s.votekicks))
	for _, vk := range s.votekicks {
		var votesFor, votesAgainst []string
		for voterID, v := range vk.Votes {
			if v {
				votesFor = append(votesFor, voterID)
			} else {
				votesAgainst = append(votesAgainst, voterID)
			}
		}
		var eligible []string
		for _, p := range s.participants {
			if p.ID != vk.TargetID {
				eligible = append(eligible, p.ID)
			}
		}
		remaining := int(vk.ExpiresAt.Sub(s.now()).Seconds())
		if remaining < 0 {
			remaining = 0
		}
		states = append(states, VotekickState{
			TargetID:       vk.TargetID,
			TargetName:     vk.TargetName,
			InitiatorName:  vk.InitiatorName,
			Reason:         vk.Reason,
			VotesFor:       votesFor,
			VotesAgainst:   votesAgainst,
			EligibleVoters: eligible,
			VotesNeeded:    s.votesNeeded(),
			ExpiresAt:      vk.ExpiresAt,
			TimeRemaining:  remaining,
		})
	}
	return states
}
