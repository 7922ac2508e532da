package handlers

import (
	"errors"
	"net/http"

	"github.com/mateolarreaferro/Icebreakers/internal/room"
)

type ErrorResponse struct {
	Error string `json:"error" example:"something went wrong"`
}

type MessageResponse struct {
	Message string `json:"message" example:"operation successful"`
}

// statusForError maps engine sentinels onto HTTP codes; anything unknown is
// a plain bad request.
func statusForError(err error) int {
	switch {
	case errors.Is(err, room.ErrNotFound),
		errors.Is(err, room.ErrNoActiveVotekick),
		errors.Is(err, room.ErrScenarioUnknown),
		errors.Is(err, room.ErrGMUnknown):
		return http.StatusNotFound
	case errors.Is(err, room.ErrAlreadyJoined),
		errors.Is(err, room.ErrVotekickActive),
		errors.Is(err, room.ErrSelfTarget):
		return http.StatusConflict
	case errors.Is(err, room.ErrRoomFull),
		errors.Is(err, room.ErrTooFewParticipants):
		return http.StatusUnprocessableEntity
	case errors.Is(err, room.ErrVotekickExpired),
		errors.Is(err, room.ErrRoomInactive):
		return http.StatusGone
	default:
		return http.StatusBadRequest
	}
}
