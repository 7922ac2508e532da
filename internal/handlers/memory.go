package handlers

import (
	"net/http"
	"strconv"

	"github.com/mateolarreaferro/Icebreakers/internal/services"

	"github.com/gin-gonic/gin"
)

type MemoryHandler struct {
	memories *services.MemoryService
}

func NewMemoryHandler(memories *services.MemoryService) *MemoryHandler {
	return &MemoryHandler{memories: memories}
}

type AddMemoryRequest struct {
	Name string `json:"name" binding:"required"`
	Text string `json:"text" binding:"required"`
}

func (h *MemoryHandler) AddMemory(c *gin.Context) {
	var req AddMemoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	if err := h.memories.Add(req.Name, req.Text); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusCreated, MessageResponse{Message: "memory stored"})
}

func (h *MemoryHandler) ListMemories(c *gin.Context) {
	limit := 20
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	rows, err := h.memories.Recent(c.Param("name"), limit)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, rows)
}
