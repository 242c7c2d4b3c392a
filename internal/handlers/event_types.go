package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"career-service/internal/repositories"
	"career-service/internal/scheduling"
)

// EventTypeHandler manages bookable meeting templates and serves the
// computed slot listing for them.
type EventTypeHandler struct {
	eventTypeRepo repositories.EventTypeRepository
	eventRepo     repositories.EventRepository
}

// NewEventTypeHandler builds an EventTypeHandler.
func NewEventTypeHandler(eventTypeRepo repositories.EventTypeRepository, eventRepo repositories.EventRepository) *EventTypeHandler {
	return &EventTypeHandler{eventTypeRepo: eventTypeRepo, eventRepo: eventRepo}
}

// CreateEventType adds a template, snapshotting the owner's current
// availability windows.
func (h *EventTypeHandler) CreateEventType(c *gin.Context) {
	var req struct {
		Title         string `json:"title" binding:"required"`
		LengthMinutes int    `json:"length_minutes" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.LengthMinutes <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "length must be positive"})
		return
	}

	created, err := h.eventTypeRepo.CreateEventType(c.Request.Context(), c.GetInt("userID"), req.Title, req.LengthMinutes)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create event type"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": created})
}

// GetEventType returns a template with its snapshotted windows.
func (h *EventTypeHandler) GetEventType(c *gin.Context) {
	eventTypeID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	et, err := h.eventTypeRepo.GetEventType(c.Request.Context(), eventTypeID)
	if err != nil {
		if errors.Is(err, repositories.ErrEventTypeNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "event type not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load event type"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": et})
}

// ListEventTypes returns the user's templates.
func (h *EventTypeHandler) ListEventTypes(c *gin.Context) {
	types, err := h.eventTypeRepo.ListEventTypes(c.Request.Context(), c.GetInt("userID"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load event types"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": types})
}

// DeleteEventType removes a template owned by the user.
func (h *EventTypeHandler) DeleteEventType(c *gin.Context) {
	eventTypeID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	err := h.eventTypeRepo.DeleteEventType(c.Request.Context(), eventTypeID, c.GetInt("userID"))
	if err != nil {
		if errors.Is(err, repositories.ErrEventTypeNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "event type not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete event type"})
		return
	}
	c.Status(http.StatusNoContent)
}

// ListSlots computes the open slots for a template within ?from&to.
// Slots are derived fresh on every request and never cached.
func (h *EventTypeHandler) ListSlots(c *gin.Context) {
	eventTypeID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	from, to, ok := parseSlotRange(c)
	if !ok {
		return
	}

	et, err := h.eventTypeRepo.GetEventType(c.Request.Context(), eventTypeID)
	if err != nil {
		if errors.Is(err, repositories.ErrEventTypeNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "event type not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load event type"})
		return
	}

	booked, err := h.eventRepo.ListBookedInRange(c.Request.Context(), et.OwnerID, from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load bookings"})
		return
	}

	slots := scheduling.ComputeSlots(et.Windows, et.LengthMinutes, from, to, booked)
	c.JSON(http.StatusOK, gin.H{"data": slots})
}

// parseSlotRange reads ?from&to as RFC3339 or YYYY-MM-DD, defaulting to
// the next seven days, writing a 400 on malformed input.
func parseSlotRange(c *gin.Context) (time.Time, time.Time, bool) {
	now := time.Now().UTC()
	from, to := now, now.AddDate(0, 0, 7)

	if raw := c.Query("from"); raw != "" {
		parsed, err := parseFlexibleTime(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from"})
			return time.Time{}, time.Time{}, false
		}
		from = parsed
	}
	if raw := c.Query("to"); raw != "" {
		parsed, err := parseFlexibleTime(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to"})
			return time.Time{}, time.Time{}, false
		}
		to = parsed
	}
	if !from.Before(to) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "from must be before to"})
		return time.Time{}, time.Time{}, false
	}
	return from, to, true
}

func parseFlexibleTime(raw string) (time.Time, error) {
	if parsed, err := time.Parse(time.RFC3339, raw); err == nil {
		return parsed.UTC(), nil
	}
	return time.Parse("2006-01-02", raw)
}
