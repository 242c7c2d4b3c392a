package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"career-service/internal/models"
	"career-service/internal/repositories"
	"career-service/internal/telemetry"
	"career-service/internal/ws"
)

// MessageHandler manages direct messages between users.
type MessageHandler struct {
	messageRepo repositories.MessageRepository
	userRepo    repositories.UserRepository
	audit       *telemetry.AuditEmitter
	hub         *ws.Hub
}

// NewMessageHandler builds a MessageHandler.
func NewMessageHandler(messageRepo repositories.MessageRepository, userRepo repositories.UserRepository, audit *telemetry.AuditEmitter, hub *ws.Hub) *MessageHandler {
	return &MessageHandler{messageRepo: messageRepo, userRepo: userRepo, audit: audit, hub: hub}
}

// Send delivers a message to each recipient email independently. One
// message row is created per resolved recipient; failures for one
// recipient do not abort the others and are reported back.
func (h *MessageHandler) Send(c *gin.Context) {
	senderID := c.GetInt("userID")

	var req struct {
		RecipientEmails []string `json:"recipient_emails" binding:"required,min=1"`
		Subject         string   `json:"subject"`
		Content         string   `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recipients, err := h.userRepo.GetUsersByEmails(c.Request.Context(), req.RecipientEmails)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to resolve recipients"})
		return
	}
	byEmail := make(map[string]models.User, len(recipients))
	for _, u := range recipients {
		byEmail[u.Email] = u
	}

	var sent []models.Message
	var failed []string
	for _, email := range req.RecipientEmails {
		recipient, ok := byEmail[email]
		if !ok || recipient.ID == senderID {
			failed = append(failed, email)
			continue
		}

		conv, err := h.messageRepo.GetOrCreateConversation(c.Request.Context(), senderID, recipient.ID)
		if err != nil {
			failed = append(failed, email)
			continue
		}
		msg, err := h.messageRepo.CreateMessage(c.Request.Context(), conv.ID, senderID, recipient.ID, req.Subject, req.Content)
		if err != nil {
			failed = append(failed, email)
			continue
		}

		sent = append(sent, msg)
		h.hub.Notify(recipient.ID, models.Notification{Type: "message.received", Payload: msg})
	}

	h.audit.Emit(c.Request.Context(), "send", "message", requestIDFromContext(c), auditUserID(c))

	status := http.StatusCreated
	if len(sent) == 0 {
		status = http.StatusBadRequest
	}
	c.JSON(status, gin.H{"data": gin.H{"sent": sent, "failed": failed}})
}

// Inbox returns received messages the caller has not trashed.
func (h *MessageHandler) Inbox(c *gin.Context) {
	msgs, err := h.messageRepo.ListInbox(c.Request.Context(), c.GetInt("userID"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load inbox"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": msgs})
}

// Sent returns sent messages the caller has not trashed.
func (h *MessageHandler) Sent(c *gin.Context) {
	msgs, err := h.messageRepo.ListSent(c.Request.Context(), c.GetInt("userID"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load sent messages"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": msgs})
}

// Trash returns messages the caller has soft-deleted.
func (h *MessageHandler) Trash(c *gin.Context) {
	msgs, err := h.messageRepo.ListTrash(c.Request.Context(), c.GetInt("userID"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load trash"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": msgs})
}

// MarkRead flags a message as read. Recipient only.
func (h *MessageHandler) MarkRead(c *gin.Context) {
	msg, ok := h.messageForActor(c)
	if !ok {
		return
	}
	if msg.RecipientID != c.GetInt("userID") {
		c.JSON(http.StatusForbidden, gin.H{"error": "not your message"})
		return
	}

	if err := h.messageRepo.MarkRead(c.Request.Context(), msg.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to mark read"})
		return
	}
	c.Status(http.StatusNoContent)
}

// SoftDelete moves the message to the caller's trash.
func (h *MessageHandler) SoftDelete(c *gin.Context) {
	msg, ok := h.messageForActor(c)
	if !ok {
		return
	}

	if err := h.messageRepo.SoftDeleteForUser(c.Request.Context(), msg.ID, msg.SenderID == c.GetInt("userID")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete message"})
		return
	}
	c.Status(http.StatusNoContent)
}

// Restore clears the caller's soft-delete flag, moving the message back
// out of trash.
func (h *MessageHandler) Restore(c *gin.Context) {
	msg, ok := h.messageForActor(c)
	if !ok {
		return
	}

	if err := h.messageRepo.RestoreForUser(c.Request.Context(), msg.ID, msg.SenderID == c.GetInt("userID")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to restore message"})
		return
	}
	c.Status(http.StatusNoContent)
}

// HardDelete removes a message permanently. Only allowed once the caller
// has already soft-deleted it.
func (h *MessageHandler) HardDelete(c *gin.Context) {
	msg, ok := h.messageForActor(c)
	if !ok {
		return
	}

	err := h.messageRepo.HardDeleteFromTrash(c.Request.Context(), msg.ID, msg.SenderID == c.GetInt("userID"))
	if err != nil {
		if errors.Is(err, repositories.ErrMessageNotInTrash) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "message is not in trash"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete message"})
		return
	}
	c.Status(http.StatusNoContent)
}

// messageForActor loads a message and checks the caller is its sender or
// recipient, writing the error response itself on failure.
func (h *MessageHandler) messageForActor(c *gin.Context) (models.Message, bool) {
	messageID, ok := parseIDParam(c, "id")
	if !ok {
		return models.Message{}, false
	}

	msg, err := h.messageRepo.GetMessage(c.Request.Context(), messageID)
	if err != nil {
		if errors.Is(err, repositories.ErrMessageNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "message not found"})
			return models.Message{}, false
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load message"})
		return models.Message{}, false
	}

	userID := c.GetInt("userID")
	if msg.SenderID != userID && msg.RecipientID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "not your message"})
		return models.Message{}, false
	}
	return msg, true
}
