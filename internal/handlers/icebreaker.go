package handlers

import (
	"net/http"
	"time"

	"github.com/mateolarreaferro/Icebreakers/internal/room"
	"github.com/mateolarreaferro/Icebreakers/internal/services"
	"github.com/mateolarreaferro/Icebreakers/internal/ws"

	"github.com/gin-gonic/gin"
)

type RoomHandler struct {
	registry *room.Registry
	oracle   room.Oracle
	stats    *services.StatsService
	hub      *ws.Hub
}

func NewRoomHandler(registry *room.Registry, oracle room.Oracle, stats *services.StatsService, hub *ws.Hub) *RoomHandler {
	return &RoomHandler{registry: registry, oracle: oracle, stats: stats, hub: hub}
}

type CreateRoomRequest struct {
	Title           string   `json:"title" binding:"required"`
	DisplayName     string   `json:"display_name" binding:"required"`
	Facilitator     string   `json:"facilitator_name"`
	MaxParticipants int      `json:"max_participants"`
	ContextTags     []string `json:"context_tags"`
}

func (h *RoomHandler) CreateRoom(c *gin.Context) {
	var req CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	r := room.NewIcebreakerRoom(req.Title, req.Facilitator, h.oracle, req.MaxParticipants)
	if len(req.ContextTags) > 0 {
		r.SetContextTags(req.ContextTags)
	}

	if err := r.AddParticipant(&room.Participant{
		ID:          participantID(c),
		DisplayName: req.DisplayName,
	}); err != nil {
		c.JSON(statusForError(err), ErrorResponse{Error: err.Error()})
		return
	}

	h.registry.PutRoom(r)
	h.stats.RecordJoin(c.GetUint("user_id"), r.ID())

	c.JSON(http.StatusCreated, r.State(c.Request.Context()))
}

type RoomSummary struct {
	SessionID    string    `json:"session_id"`
	RoomTitle    string    `json:"room_title"`
	Participants int       `json:"participant_count"`
	CreatedAt    time.Time `json:"created_at"`
}

func (h *RoomHandler) ListRooms(c *gin.Context) {
	rooms := h.registry.ActiveRooms()
	out := make([]RoomSummary, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, RoomSummary{
			SessionID:    r.ID(),
			RoomTitle:    r.Title(),
			Participants: r.ParticipantCount(),
			CreatedAt:    r.CreatedAt(),
		})
	}
	c.JSON(http.StatusOK, out)
}

func (h *RoomHandler) getRoom(c *gin.Context) (*room.IcebreakerRoom, bool) {
	r, ok := h.registry.Room(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "room not found"})
		return nil, false
	}
	return r, true
}

// GetRoom returns the full snapshot; reading it runs the lazy timer and
// votekick expiry checks.
func (h *RoomHandler) GetRoom(c *gin.Context) {
	r, ok := h.getRoom(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, r.State(c.Request.Context()))
}

type JoinRoomRequest struct {
	DisplayName string `json:"display_name" binding:"required"`
}

func (h *RoomHandler) JoinRoom(c *gin.Context) {
	r, ok := h.getRoom(c)
	if !ok {
		return
	}

	var req JoinRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	if err := r.AddParticipant(&room.Participant{
		ID:          participantID(c),
		DisplayName: req.DisplayName,
	}); err != nil {
		c.JSON(statusForError(err), ErrorResponse{Error: err.Error()})
		return
	}

	h.stats.RecordJoin(c.GetUint("user_id"), r.ID())
	state := r.State(c.Request.Context())
	h.hub.Broadcast(r.ID(), ws.WSMessage{Type: "participant_joined", Data: state})

	c.JSON(http.StatusOK, state)
}

func (h *RoomHandler) LeaveRoom(c *gin.Context) {
	r, ok := h.getRoom(c)
	if !ok {
		return
	}

	if !r.RemoveParticipant(participantID(c)) {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: room.ErrNotFound.Error()})
		return
	}

	h.stats.RecordLeave(c.GetUint("user_id"))
	if r.ParticipantCount() == 0 {
		r.End()
		h.registry.Remove(r.ID())
	} else {
		h.hub.Broadcast(r.ID(), ws.WSMessage{Type: "participant_left", Data: r.State(c.Request.Context())})
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "left room"})
}

type SendMessageRequest struct {
	Content string `json:"content" binding:"required"`
}

func (h *RoomHandler) SendMessage(c *gin.Context) {
	r, ok := h.getRoom(c)
	if !ok {
		return
	}

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	ev, err := r.SendMessage(c.Request.Context(), participantID(c), req.Content)
	if err != nil {
		c.JSON(statusForError(err), ErrorResponse{Error: err.Error()})
		return
	}

	h.stats.RecordMessage(c.GetUint("user_id"), r.ID())
	h.hub.Broadcast(r.ID(), ws.WSMessage{Type: "message", Data: ev})

	c.JSON(http.StatusOK, ev)
}

type SetReadyRequest struct {
	Ready *bool `json:"is_ready" binding:"required"`
}

func (h *RoomHandler) SetReady(c *gin.Context) {
	r, ok := h.getRoom(c)
	if !ok {
		return
	}

	var req SetReadyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	status, err := r.SetReady(c.Request.Context(), participantID(c), *req.Ready)
	if err != nil {
		c.JSON(statusForError(err), ErrorResponse{Error: err.Error()})
		return
	}

	if *req.Ready {
		h.stats.RecordReadyVote(c.GetUint("user_id"), r.ID())
	}
	if status.NewTopic {
		h.hub.Broadcast(r.ID(), ws.WSMessage{Type: "icebreaker", Data: r.State(c.Request.Context())})
	} else {
		h.hub.Broadcast(r.ID(), ws.WSMessage{Type: "ready_status", Data: status})
	}

	c.JSON(http.StatusOK, status)
}

type StartVotekickRequest struct {
	TargetID string `json:"target_id" binding:"required"`
	Reason   string `json:"reason"`
}

func (h *RoomHandler) StartVotekick(c *gin.Context) {
	r, ok := h.getRoom(c)
	if !ok {
		return
	}

	var req StartVotekickRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	tally, err := r.StartVotekick(participantID(c), req.TargetID, req.Reason)
	if err != nil {
		c.JSON(statusForError(err), ErrorResponse{Error: err.Error()})
		return
	}

	h.hub.Broadcast(r.ID(), ws.WSMessage{Type: "votekick_started", Data: tally})
	c.JSON(http.StatusOK, tally)
}

type VoteRequest struct {
	Vote *bool `json:"vote" binding:"required"`
}

func (h *RoomHandler) VoteOnKick(c *gin.Context) {
	r, ok := h.getRoom(c)
	if !ok {
		return
	}

	var req VoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	outcome, err := r.VoteOnKick(participantID(c), c.Param("target"), *req.Vote)
	if err != nil {
		c.JSON(statusForError(err), ErrorResponse{Error: err.Error()})
		return
	}

	h.hub.Broadcast(r.ID(), ws.WSMessage{Type: "votekick_" + outcome.Result, Data: outcome})
	c.JSON(http.StatusOK, outcome)
}

func (h *RoomHandler) CloseRoom(c *gin.Context) {
	r, ok := h.getRoom(c)
	if !ok {
		return
	}
	r.End()
	h.registry.Remove(r.ID())
	h.hub.Broadcast(r.ID(), ws.WSMessage{Type: "room_closed", Data: nil})
	c.JSON(http.StatusOK, MessageResponse{Message: "room closed"})
}
