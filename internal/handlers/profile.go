package handlers

import (
	"net/http"

	"github.com/mateolarreaferro/Icebreakers/internal/models"
	"github.com/mateolarreaferro/Icebreakers/internal/services"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	profiles *services.ProfileService
	stats    *services.StatsService
}

func NewProfileHandler(profiles *services.ProfileService, stats *services.StatsService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, stats: stats}
}

type UpsertProfileRequest struct {
	Name        string `json:"name" binding:"required"`
	Persona     string `json:"persona" binding:"required"`
	Home        string `json:"home"`
	Hobbies     string `json:"hobbies"`
	FunFact     string `json:"fun_fact"`
	Personality string `json:"personality"`
}

func (h *ProfileHandler) UpsertProfile(c *gin.Context) {
	var req UpsertProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	profile := models.Profile{
		Name:        req.Name,
		Persona:     req.Persona,
		Home:        req.Home,
		Hobbies:     req.Hobbies,
		FunFact:     req.FunFact,
		Personality: req.Personality,
	}
	if err := h.profiles.Upsert(&profile); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	profile, err := h.profiles.Get(c.Param("name"))
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *ProfileHandler) ListProfiles(c *gin.Context) {
	names, err := h.profiles.List()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, names)
}

func (h *ProfileHandler) GetMyStats(c *gin.Context) {
	summary, err := h.stats.Summary(c.GetUint("user_id"))
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, summary)
}
