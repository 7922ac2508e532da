package handlers

import (
	"log"
	"net/http"

	"github.com/mateolarreaferro/Icebreakers/internal/room"
	"github.com/mateolarreaferro/Icebreakers/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type WSHandler struct {
	registry *room.Registry
	hub      *ws.Hub
}

func NewWSHandler(registry *room.Registry, hub *ws.Hub) *WSHandler {
	return &WSHandler{registry: registry, hub: hub}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// HandleRoomWebSocket keeps a client subscribed to a room's broadcasts until
// it disconnects.
func (h *WSHandler) HandleRoomWebSocket(c *gin.Context) {
	sessionID := c.Param("id")
	if _, ok := h.registry.Room(sessionID); !ok {
		if _, ok := h.registry.Story(sessionID); !ok {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "session not found"})
			return
		}
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}

	h.hub.AddConnection(sessionID, conn)
	defer h.hub.RemoveConnection(sessionID, conn)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}
