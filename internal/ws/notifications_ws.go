package ws

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"career-service/internal/observability"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// NotificationHandler upgrades authenticated requests to a notification
// socket. The connection is read-drained only; all traffic is server push.
type NotificationHandler struct {
	hub *Hub
}

// NewNotificationHandler builds a NotificationHandler.
func NewNotificationHandler(hub *Hub) *NotificationHandler {
	return &NotificationHandler{hub: hub}
}

// Handle serves GET /ws/notifications.
func (h *NotificationHandler) Handle(c *gin.Context) {
	userID := c.GetInt("userID")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing session"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("websocket upgrade failed: %v", err)
		return
	}

	h.hub.AddClient(userID, conn)
	observability.IncWSActive()

	go func() {
		defer func() {
			h.hub.RemoveClient(userID, conn)
			observability.DecWSActive()
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
