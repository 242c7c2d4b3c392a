package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"career-service/internal/models"
	"career-service/internal/repositories"
)

// AvailabilityHandler manages a user's bookable windows.
type AvailabilityHandler struct {
	availabilityRepo repositories.AvailabilityRepository
}

// NewAvailabilityHandler builds an AvailabilityHandler.
func NewAvailabilityHandler(availabilityRepo repositories.AvailabilityRepository) *AvailabilityHandler {
	return &AvailabilityHandler{availabilityRepo: availabilityRepo}
}

// CreateWindow adds an availability window. Recurring windows repeat
// weekly on day_of_week; one-off windows carry the full date in their
// start and end times.
func (h *AvailabilityHandler) CreateWindow(c *gin.Context) {
	var req struct {
		DayOfWeek   int       `json:"day_of_week"`
		StartTime   time.Time `json:"start_time" binding:"required"`
		EndTime     time.Time `json:"end_time" binding:"required"`
		IsRecurring bool      `json:"is_recurring"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !req.StartTime.Before(req.EndTime) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start time must be before end time"})
		return
	}
	if req.IsRecurring && (req.DayOfWeek < 0 || req.DayOfWeek > 6) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "day_of_week must be 0 through 6"})
		return
	}

	dayOfWeek := req.DayOfWeek
	if !req.IsRecurring {
		dayOfWeek = int(req.StartTime.UTC().Weekday())
	}

	created, err := h.availabilityRepo.CreateWindow(c.Request.Context(), models.AvailabilityWindow{
		OwnerID:     c.GetInt("userID"),
		DayOfWeek:   dayOfWeek,
		StartTime:   req.StartTime.UTC(),
		EndTime:     req.EndTime.UTC(),
		IsRecurring: req.IsRecurring,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create window"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": created})
}

// ListWindows returns the user's availability windows.
func (h *AvailabilityHandler) ListWindows(c *gin.Context) {
	windows, err := h.availabilityRepo.ListWindows(c.Request.Context(), c.GetInt("userID"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load windows"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": windows})
}

// ResetDate clears every window that applies to the given calendar date.
// Repeating the call is a no-op.
func (h *AvailabilityHandler) ResetDate(c *gin.Context) {
	date, err := time.Parse("2006-01-02", c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return
	}

	if err := h.availabilityRepo.ResetWindowsForDate(c.Request.Context(), c.GetInt("userID"), date); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to reset availability"})
		return
	}
	c.Status(http.StatusNoContent)
}
