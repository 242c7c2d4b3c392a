package ws

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"

	"career-service/internal/models"
)

// Hub maintains active notification connections keyed by user id.
type Hub struct {
	clients map[int]map[*websocket.Conn]bool
	mu      sync.RWMutex
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		clients: make(map[int]map[*websocket.Conn]bool),
	}
}

// AddClient registers a websocket connection for a user.
func (h *Hub) AddClient(userID int, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[userID]; !ok {
		h.clients[userID] = make(map[*websocket.Conn]bool)
	}
	h.clients[userID][conn] = true
}

// RemoveClient removes a websocket connection.
func (h *Hub) RemoveClient(userID int, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if conns, ok := h.clients[userID]; ok {
		delete(conns, conn)
		if len(conns) == 0 {
			delete(h.clients, userID)
		}
	}
}

// Notify sends a notification to all of the user's connections.
func (h *Hub) Notify(userID int, n models.Notification) {
	if h == nil {
		return
	}
	h.mu.RLock()
	conns := h.clients[userID]
	h.mu.RUnlock()

	payload, _ := json.Marshal(n)
	for conn := range conns {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			log.Printf("websocket write error: %v", err)
			conn.Close()
			h.RemoveClient(userID, conn)
		}
	}
}
