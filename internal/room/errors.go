package room

import "errors"

var (
	ErrRoomFull        = errors.New("room-full")
	ErrAlreadyJoined   = errors.New("already-joined")
	ErrNotFound        = errors.New("participant-not-found")
	ErrRoomInactive    = errors.New("room-inactive")
	ErrScenarioUnknown = errors.New("scenario-not-found")
	ErrGMUnknown       = errors.New("gm-not-found")
)

// Votekick errors
var (
	ErrSelfTarget         = errors.New("cannot-kick-self")
	ErrTooFewParticipants = errors.New("too-few-participants")
	ErrVotekickActive     = errors.New("votekick-already-active")
	ErrNoActiveVotekick   = errors.New("no-active-votekick")
	ErrVotekickExpired    = errors.New("votekick-expired")
)
