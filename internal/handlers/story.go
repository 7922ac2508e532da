package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/mateolarreaferro/Icebreakers/internal/room"
	"github.com/mateolarreaferro/Icebreakers/internal/services"
	"github.com/mateolarreaferro/Icebreakers/internal/ws"

	"github.com/gin-gonic/gin"
)

type StoryHandler struct {
	registry *room.Registry
	oracle   room.Oracle
	bios     room.BioProvider
	memories room.MemoryProvider
	stats    *services.StatsService
	hub      *ws.Hub
}

func NewStoryHandler(registry *room.Registry, oracle room.Oracle, bios room.BioProvider, memories room.MemoryProvider, stats *services.StatsService, hub *ws.Hub) *StoryHandler {
	return &StoryHandler{registry: registry, oracle: oracle, bios: bios, memories: memories, stats: stats, hub: hub}
}

func participantID(c *gin.Context) string {
	return strconv.FormatUint(uint64(c.GetUint("user_id")), 10)
}

type ScenarioSummary struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

func (h *StoryHandler) ListScenarios(c *gin.Context) {
	out := make([]ScenarioSummary, len(room.Scenarios))
	for i, s := range room.Scenarios {
		out[i] = ScenarioSummary{ID: s.ID, Title: s.Title}
	}
	c.JSON(http.StatusOK, out)
}

func (h *StoryHandler) ListGMs(c *gin.Context) {
	c.JSON(http.StatusOK, room.GMProfiles)
}

type CreateStoryRequest struct {
	ScenarioID string `json:"scenario_id" binding:"required"`
	GMID       string `json:"gm_id" binding:"required"`
	Name       string `json:"name" binding:"required"`
	Persona    string `json:"persona" binding:"required"`
	NPCCount   *int   `json:"npc_count"` // omitted: fill every seat but one
}

func (h *StoryHandler) CreateStory(c *gin.Context) {
	var req CreateStoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	npcCount := -1
	if req.NPCCount != nil {
		npcCount = *req.NPCCount
	}

	story, err := room.NewStoryRoom(room.StoryConfig{
		ScenarioID:  req.ScenarioID,
		GMID:        req.GMID,
		Oracle:      h.oracle,
		Bios:        h.bios,
		Memories:    h.memories,
		NPCCount:    npcCount,
		CreatorName: req.Name,
	})
	if err != nil {
		c.JSON(statusForError(err), ErrorResponse{Error: err.Error()})
		return
	}

	if err := story.AddParticipant(&room.Participant{
		ID:          participantID(c),
		DisplayName: req.Name,
		Persona:     req.Persona,
	}); err != nil {
		c.JSON(statusForError(err), ErrorResponse{Error: err.Error()})
		return
	}

	h.registry.PutStory(story)
	h.stats.RecordJoin(c.GetUint("user_id"), story.ID())

	c.JSON(http.StatusCreated, story.State())
}

type StorySummary struct {
	SessionID     string    `json:"session_id"`
	ScenarioTitle string    `json:"scenario_title"`
	GMName        string    `json:"gm_name"`
	PhaseLabel    string    `json:"phase_label"`
	Participants  int       `json:"participant_count"`
	CreatedAt     time.Time `json:"created_at"`
}

func (h *StoryHandler) ListStories(c *gin.Context) {
	stories := h.registry.ActiveStories()
	out := make([]StorySummary, 0, len(stories))
	for _, s := range stories {
		state := s.State()
		out = append(out, StorySummary{
			SessionID:     state.SessionID,
			ScenarioTitle: state.ScenarioTitle,
			GMName:        state.GMName,
			PhaseLabel:    state.PhaseLabel,
			Participants:  len(state.Participants),
			CreatedAt:     state.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, out)
}

func (h *StoryHandler) GetStory(c *gin.Context) {
	story, ok := h.registry.Story(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "session not found"})
		return
	}
	c.JSON(http.StatusOK, story.State())
}

type JoinStoryRequest struct {
	Name    string `json:"name" binding:"required"`
	Persona string `json:"persona" binding:"required"`
}

func (h *StoryHandler) JoinStory(c *gin.Context) {
	story, ok := h.registry.Story(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "session not found"})
		return
	}

	var req JoinStoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	if err := story.AddParticipant(&room.Participant{
		ID:          participantID(c),
		DisplayName: req.Name,
		Persona:     req.Persona,
	}); err != nil {
		c.JSON(statusForError(err), ErrorResponse{Error: err.Error()})
		return
	}

	h.stats.RecordJoin(c.GetUint("user_id"), story.ID())
	h.hub.Broadcast(story.ID(), ws.WSMessage{Type: "participant_joined", Data: story.State()})

	c.JSON(http.StatusOK, story.State())
}

type SubmitTurnRequest struct {
	Instruction string `json:"instruction" binding:"required"`
}

func (h *StoryHandler) SubmitTurn(c *gin.Context) {
	story, ok := h.registry.Story(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "session not found"})
		return
	}

	var req SubmitTurnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	result, err := story.SubmitTurn(c.Request.Context(), participantID(c), req.Instruction)
	if err != nil {
		status := statusForError(err)
		if status == http.StatusBadRequest {
			// oracle transport failure surfaces as an upstream error
			status = http.StatusBadGateway
		}
		c.JSON(status, ErrorResponse{Error: err.Error()})
		return
	}

	h.stats.RecordMessage(c.GetUint("user_id"), story.ID())
	h.hub.Broadcast(story.ID(), ws.WSMessage{Type: "turn", Data: result})

	c.JSON(http.StatusOK, result)
}

// ExportStory streams the session transcript as a markdown download.
func (h *StoryHandler) ExportStory(c *gin.Context) {
	story, ok := h.registry.Story(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "session not found"})
		return
	}

	md := story.Transcript()
	filename := fmt.Sprintf("%s_session.md", story.Scenario().ID)
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(md))
}

func (h *StoryHandler) EndStory(c *gin.Context) {
	story, ok := h.registry.Story(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "session not found"})
		return
	}
	story.End()
	h.hub.Broadcast(story.ID(), ws.WSMessage{Type: "session_ended", Data: nil})
	c.JSON(http.StatusOK, MessageResponse{Message: "session ended"})
}
