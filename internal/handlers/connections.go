package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"career-service/internal/cache"
	"career-service/internal/models"
	"career-service/internal/repositories"
	"career-service/internal/ws"
)

// ConnectionHandler manages the user connection graph.
type ConnectionHandler struct {
	connectionRepo repositories.ConnectionRepository
	userRepo       repositories.UserRepository
	cache          cache.Store
	ttl            time.Duration
	hub            *ws.Hub
}

// NewConnectionHandler builds a ConnectionHandler.
func NewConnectionHandler(connectionRepo repositories.ConnectionRepository, userRepo repositories.UserRepository, store cache.Store, ttl time.Duration, hub *ws.Hub) *ConnectionHandler {
	return &ConnectionHandler{connectionRepo: connectionRepo, userRepo: userRepo, cache: store, ttl: ttl, hub: hub}
}

func connectionsTag(userID int) string {
	return fmt.Sprintf("connections:%d", userID)
}

// Request sends a connection request to another user.
func (h *ConnectionHandler) Request(c *gin.Context) {
	receiverID, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}
	requesterID := c.GetInt("userID")
	if receiverID == requesterID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot connect to yourself"})
		return
	}

	if _, err := h.userRepo.GetUserByID(c.Request.Context(), receiverID); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to send request"})
		return
	}

	conn, err := h.connectionRepo.CreateRequest(c.Request.Context(), requesterID, receiverID)
	if err != nil {
		if errors.Is(err, repositories.ErrConnectionExists) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "connection already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to send request"})
		return
	}

	h.cache.Invalidate(connectionsTag(requesterID), connectionsTag(receiverID))
	h.hub.Notify(receiverID, models.Notification{Type: "connection.requested", Payload: conn})
	c.JSON(http.StatusCreated, gin.H{"data": conn})
}

// Accept moves a pending request to accepted. Receiver only.
func (h *ConnectionHandler) Accept(c *gin.Context) {
	conn, ok := h.pendingForReceiver(c)
	if !ok {
		return
	}

	if err := h.connectionRepo.UpdateStatus(c.Request.Context(), conn.ID, models.ConnectionStatusAccepted); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to accept request"})
		return
	}

	h.cache.Invalidate(connectionsTag(conn.RequesterID), connectionsTag(conn.ReceiverID))
	h.hub.Notify(conn.RequesterID, models.Notification{Type: "connection.accepted", Payload: gin.H{"id": conn.ID}})
	c.Status(http.StatusNoContent)
}

// Reject deletes a pending request, returning the pair to the implicit
// unconnected state. Receiver only.
func (h *ConnectionHandler) Reject(c *gin.Context) {
	conn, ok := h.pendingForReceiver(c)
	if !ok {
		return
	}

	if err := h.connectionRepo.DeleteConnection(c.Request.Context(), conn.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to reject request"})
		return
	}

	h.cache.Invalidate(connectionsTag(conn.RequesterID), connectionsTag(conn.ReceiverID))
	c.Status(http.StatusNoContent)
}

// List returns the user's accepted connections, cache-aside.
func (h *ConnectionHandler) List(c *gin.Context) {
	userID := c.GetInt("userID")
	tag := connectionsTag(userID)
	key := tag + ":accepted"

	if val, ok := h.cache.Get(key); ok {
		c.JSON(http.StatusOK, gin.H{"data": val})
		return
	}

	conns, err := h.connectionRepo.ListAccepted(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load connections"})
		return
	}

	h.cache.Set(key, conns, h.ttl, tag)
	c.JSON(http.StatusOK, gin.H{"data": conns})
}

// ListPending returns incoming requests awaiting the user.
func (h *ConnectionHandler) ListPending(c *gin.Context) {
	conns, err := h.connectionRepo.ListPending(c.Request.Context(), c.GetInt("userID"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load requests"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": conns})
}

// pendingForReceiver loads a connection and checks the caller is its
// receiver and it is still pending, writing the error response itself
// on failure.
func (h *ConnectionHandler) pendingForReceiver(c *gin.Context) (models.Connection, bool) {
	connectionID, ok := parseIDParam(c, "id")
	if !ok {
		return models.Connection{}, false
	}

	conn, err := h.connectionRepo.GetConnection(c.Request.Context(), connectionID)
	if err != nil {
		if errors.Is(err, repositories.ErrConnectionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "connection not found"})
			return models.Connection{}, false
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load connection"})
		return models.Connection{}, false
	}
	if conn.ReceiverID != c.GetInt("userID") {
		c.JSON(http.StatusForbidden, gin.H{"error": "not your request"})
		return models.Connection{}, false
	}
	if conn.Status != models.ConnectionStatusPending {
		c.JSON(http.StatusBadRequest, gin.H{"error": "request is not pending"})
		return models.Connection{}, false
	}
	return conn, true
}
