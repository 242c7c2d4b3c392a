package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"

	"career-service/internal/cache"
	"career-service/internal/calendar"
	"career-service/internal/models"
	"career-service/internal/repositories"
	"career-service/internal/scheduling"
	"career-service/internal/telemetry"
	"career-service/internal/ws"
)

// EventHandler manages booked events: booking, cancelling, rescheduling,
// listing and calendar export.
type EventHandler struct {
	eventRepo     repositories.EventRepository
	eventTypeRepo repositories.EventTypeRepository
	userRepo      repositories.UserRepository
	cache         cache.Store
	ttl           time.Duration
	audit         *telemetry.AuditEmitter
	hub           *ws.Hub
	google        *calendar.GoogleClient
}

// NewEventHandler builds an EventHandler. google may be nil when the
// integration is not configured.
func NewEventHandler(
	eventRepo repositories.EventRepository,
	eventTypeRepo repositories.EventTypeRepository,
	userRepo repositories.UserRepository,
	store cache.Store,
	ttl time.Duration,
	audit *telemetry.AuditEmitter,
	hub *ws.Hub,
	google *calendar.GoogleClient,
) *EventHandler {
	return &EventHandler{
		eventRepo:     eventRepo,
		eventTypeRepo: eventTypeRepo,
		userRepo:      userRepo,
		cache:         store,
		ttl:           ttl,
		audit:         audit,
		hub:           hub,
		google:        google,
	}
}

func eventsTag(userID int) string {
	return fmt.Sprintf("events:%d", userID)
}

// Book creates a booked event. With an event_type_id the slot is
// re-validated against a freshly computed slot set and the end time is
// derived from the template length; without one, start and end are taken
// as given for a manual calendar entry on the caller's own calendar.
func (h *EventHandler) Book(c *gin.Context) {
	var req struct {
		EventTypeID      *int       `json:"event_type_id"`
		ParticipantName  string     `json:"participant_name" binding:"required"`
		ParticipantEmail string     `json:"participant_email" binding:"required,email"`
		Title            string     `json:"title"`
		Description      string     `json:"description"`
		StartTime        time.Time  `json:"start_time" binding:"required"`
		EndTime          *time.Time `json:"end_time"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ev := models.BookedEvent{
		ParticipantName:  req.ParticipantName,
		ParticipantEmail: req.ParticipantEmail,
		EventTypeID:      req.EventTypeID,
		Title:            req.Title,
		Description:      req.Description,
		StartTime:        req.StartTime.UTC(),
	}

	if req.EventTypeID != nil {
		et, err := h.eventTypeRepo.GetEventType(c.Request.Context(), *req.EventTypeID)
		if err != nil {
			if errors.Is(err, repositories.ErrEventTypeNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "event type not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load event type"})
			return
		}

		ev.CreatorID = et.OwnerID
		ev.EndTime = ev.StartTime.Add(time.Duration(et.LengthMinutes) * time.Minute)
		if ev.Title == "" {
			ev.Title = et.Title
		}

		if !h.slotIsOpen(c, et, ev.StartTime, ev.EndTime) {
			return
		}
	} else {
		if req.EndTime == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "end_time is required"})
			return
		}
		ev.CreatorID = c.GetInt("userID")
		ev.EndTime = req.EndTime.UTC()
	}

	if !ev.StartTime.Before(ev.EndTime) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start time must be before end time"})
		return
	}

	created, err := h.eventRepo.CreateBookedEvent(c.Request.Context(), ev)
	if err != nil {
		if errors.Is(err, repositories.ErrSlotTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": "slot already booked"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to book event"})
		return
	}

	h.cache.Invalidate(eventsTag(created.CreatorID))
	h.audit.Emit(c.Request.Context(), "book", "event", requestIDFromContext(c), auditUserID(c))
	h.hub.Notify(created.CreatorID, models.Notification{Type: "booking.created", Payload: created})
	c.JSON(http.StatusCreated, gin.H{"data": created})
}

// slotIsOpen re-validates the requested interval against a freshly
// computed slot set for the booking day, writing the error response on
// failure.
func (h *EventHandler) slotIsOpen(c *gin.Context, et models.EventType, start, end time.Time) bool {
	dayStart := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.Add(24 * time.Hour)

	booked, err := h.eventRepo.ListBookedInRange(c.Request.Context(), et.OwnerID, dayStart, dayEnd)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load bookings"})
		return false
	}

	slots := scheduling.ComputeSlots(et.Windows, et.LengthMinutes, dayStart, dayEnd, booked)
	if !scheduling.ContainsSlot(slots, start, end) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "slot not available"})
		return false
	}
	return true
}

// Cancel deletes a booking. The creator or the participant may cancel.
func (h *EventHandler) Cancel(c *gin.Context) {
	eventID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	ev, ok := h.eventForActor(c, eventID)
	if !ok {
		return
	}

	if err := h.eventRepo.DeleteBookedEvent(c.Request.Context(), eventID); err != nil {
		if errors.Is(err, repositories.ErrEventNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to cancel event"})
		return
	}

	h.cache.Invalidate(eventsTag(ev.CreatorID))
	h.audit.Emit(c.Request.Context(), "cancel", "event", requestIDFromContext(c), auditUserID(c))
	h.hub.Notify(ev.CreatorID, models.Notification{Type: "booking.cancelled", Payload: gin.H{"id": ev.ID}})
	c.Status(http.StatusNoContent)
}

// Reschedule moves a booking to a new interval, re-checking conflicts.
func (h *EventHandler) Reschedule(c *gin.Context) {
	eventID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		StartTime *time.Time `json:"start_time"`
		EndTime   *time.Time `json:"end_time"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.StartTime == nil || req.EndTime == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start_time and end_time are required"})
		return
	}
	start, end := req.StartTime.UTC(), req.EndTime.UTC()
	if !start.Before(end) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start time must be before end time"})
		return
	}

	ev, ok := h.eventForActor(c, eventID)
	if !ok {
		return
	}

	updated, err := h.eventRepo.RescheduleBookedEvent(c.Request.Context(), eventID, start, end)
	if err != nil {
		if errors.Is(err, repositories.ErrSlotTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": "slot already booked"})
			return
		}
		if errors.Is(err, repositories.ErrEventNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to reschedule event"})
		return
	}

	h.cache.Invalidate(eventsTag(ev.CreatorID))
	h.audit.Emit(c.Request.Context(), "reschedule", "event", requestIDFromContext(c), auditUserID(c))
	c.JSON(http.StatusOK, gin.H{"data": updated})
}

// List returns the user's events partitioned into upcoming and past,
// grouped by calendar date. Cache-aside per user.
func (h *EventHandler) List(c *gin.Context) {
	userID := c.GetInt("userID")
	tag := eventsTag(userID)
	key := tag + ":grouped"

	if val, ok := h.cache.Get(key); ok {
		c.JSON(http.StatusOK, gin.H{"data": val})
		return
	}

	user, err := h.userRepo.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load events"})
		return
	}

	events, err := h.eventRepo.ListEventsForUser(c.Request.Context(), userID, user.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load events"})
		return
	}

	upcoming, past := scheduling.PartitionByDate(events, time.Now().UTC())
	grouped := gin.H{"upcoming": upcoming, "past": past}

	h.cache.Set(key, grouped, h.ttl, tag)
	c.JSON(http.StatusOK, gin.H{"data": grouped})
}

// ExportICal serves the user's booked events as an iCalendar feed.
func (h *EventHandler) ExportICal(c *gin.Context) {
	userID := c.GetInt("userID")

	user, err := h.userRepo.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load events"})
		return
	}

	events, err := h.eventRepo.ListEventsForUser(c.Request.Context(), userID, user.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load events"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="events.ics"`)
	c.Data(http.StatusOK, "text/calendar", []byte(calendar.EventsToICal(events)))
}

// GoogleAuthURL returns the consent URL for linking a Google calendar.
func (h *EventHandler) GoogleAuthURL(c *gin.Context) {
	if h.google == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "google calendar is not configured"})
		return
	}
	state := fmt.Sprintf("user-%d", c.GetInt("userID"))
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"auth_url": h.google.AuthURL(state)}})
}

// GoogleCallback trades the authorization code for a token, which the
// client holds and presents on listing calls. Tokens are not persisted.
func (h *EventHandler) GoogleCallback(c *gin.Context) {
	if h.google == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "google calendar is not configured"})
		return
	}
	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing code"})
		return
	}
	token, err := h.google.Exchange(c.Request.Context(), code)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to exchange code"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": token})
}

// GoogleEvents lists the user's external Google events for display
// alongside bookings.
func (h *EventHandler) GoogleEvents(c *gin.Context) {
	if h.google == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "google calendar is not configured"})
		return
	}
	accessToken := c.Query("access_token")
	if accessToken == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing access_token"})
		return
	}

	token := &oauth2.Token{AccessToken: accessToken, TokenType: "Bearer"}
	events, err := h.google.ListEvents(c.Request.Context(), token, c.Query("from"), c.Query("to"))
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to list google events"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": events})
}

// eventForActor loads a booking and checks the caller is its creator or
// its participant (matched by account email), writing the error response
// itself on failure.
func (h *EventHandler) eventForActor(c *gin.Context, eventID int) (models.BookedEvent, bool) {
	ev, err := h.eventRepo.GetBookedEvent(c.Request.Context(), eventID)
	if err != nil {
		if errors.Is(err, repositories.ErrEventNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
			return models.BookedEvent{}, false
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load event"})
		return models.BookedEvent{}, false
	}

	userID := c.GetInt("userID")
	if ev.CreatorID == userID {
		return ev, true
	}

	user, err := h.userRepo.GetUserByID(c.Request.Context(), userID)
	if err == nil && user.Email == ev.ParticipantEmail {
		return ev, true
	}

	c.JSON(http.StatusForbidden, gin.H{"error": "not your event"})
	return models.BookedEvent{}, false
}
