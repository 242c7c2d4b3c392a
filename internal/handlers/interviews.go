package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"career-service/internal/cache"
	"career-service/internal/calendar"
	"career-service/internal/models"
	"career-service/internal/repositories"
)

// InterviewHandler manages tracked interviews tied to job applications.
type InterviewHandler struct {
	interviewRepo repositories.InterviewRepository
	jobRepo       repositories.JobRepository
	cache         cache.Store
	ttl           time.Duration
}

// NewInterviewHandler builds an InterviewHandler.
func NewInterviewHandler(interviewRepo repositories.InterviewRepository, jobRepo repositories.JobRepository, store cache.Store, ttl time.Duration) *InterviewHandler {
	return &InterviewHandler{interviewRepo: interviewRepo, jobRepo: jobRepo, cache: store, ttl: ttl}
}

func interviewsTag(userID int) string {
	return fmt.Sprintf("interviews:%d", userID)
}

// CreateInterview records an interview against an owned job.
func (h *InterviewHandler) CreateInterview(c *gin.Context) {
	userID := c.GetInt("userID")

	var req struct {
		JobID         int       `json:"job_id" binding:"required"`
		InterviewDate time.Time `json:"interview_date" binding:"required"`
		InterviewType string    `json:"interview_type" binding:"required"`
		VideoURL      *string   `json:"video_url"`
		Passcode      *string   `json:"passcode"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, ok := h.ownedJob(c, req.JobID); !ok {
		return
	}

	created, err := h.interviewRepo.CreateInterview(c.Request.Context(), models.Interview{
		UserID:        userID,
		JobID:         req.JobID,
		InterviewDate: req.InterviewDate,
		InterviewType: req.InterviewType,
		VideoURL:      req.VideoURL,
		Passcode:      req.Passcode,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create interview"})
		return
	}

	h.cache.Invalidate(interviewsTag(userID))
	c.JSON(http.StatusCreated, gin.H{"data": created})
}

// ListInterviews returns the user's interviews, cache-aside.
func (h *InterviewHandler) ListInterviews(c *gin.Context) {
	userID := c.GetInt("userID")
	key := interviewsTag(userID)

	if val, ok := h.cache.Get(key); ok {
		c.JSON(http.StatusOK, gin.H{"data": val})
		return
	}

	interviews, err := h.interviewRepo.ListInterviews(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load interviews"})
		return
	}

	h.cache.Set(key, interviews, h.ttl, key)
	c.JSON(http.StatusOK, gin.H{"data": interviews})
}

// UpdateInterview rewrites the mutable fields of an interview.
func (h *InterviewHandler) UpdateInterview(c *gin.Context) {
	interviewID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	iv, ok := h.ownedInterview(c, interviewID)
	if !ok {
		return
	}

	var req struct {
		InterviewDate time.Time `json:"interview_date" binding:"required"`
		InterviewType string    `json:"interview_type" binding:"required"`
		VideoURL      *string   `json:"video_url"`
		Passcode      *string   `json:"passcode"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	iv.InterviewDate = req.InterviewDate
	iv.InterviewType = req.InterviewType
	iv.VideoURL = req.VideoURL
	iv.Passcode = req.Passcode

	updated, err := h.interviewRepo.UpdateInterview(c.Request.Context(), iv)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update interview"})
		return
	}

	h.cache.Invalidate(interviewsTag(iv.UserID))
	c.JSON(http.StatusOK, gin.H{"data": updated})
}

// DeleteInterview removes an interview.
func (h *InterviewHandler) DeleteInterview(c *gin.Context) {
	interviewID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	userID := c.GetInt("userID")
	err := h.interviewRepo.DeleteInterview(c.Request.Context(), interviewID, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrInterviewNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "interview not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete interview"})
		return
	}

	h.cache.Invalidate(interviewsTag(userID))
	c.Status(http.StatusNoContent)
}

// ExportICal serves the user's interviews as an iCalendar feed.
func (h *InterviewHandler) ExportICal(c *gin.Context) {
	userID := c.GetInt("userID")

	interviews, err := h.interviewRepo.ListInterviews(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load interviews"})
		return
	}
	jobs, err := h.jobRepo.ListJobs(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load jobs"})
		return
	}

	jobsByID := make(map[int]models.Job, len(jobs))
	for _, job := range jobs {
		jobsByID[job.ID] = job
	}

	c.Header("Content-Disposition", `attachment; filename="interviews.ics"`)
	c.Data(http.StatusOK, "text/calendar", []byte(calendar.InterviewsToICal(interviews, jobsByID)))
}

func (h *InterviewHandler) ownedJob(c *gin.Context, jobID int) (models.Job, bool) {
	job, err := h.jobRepo.GetJob(c.Request.Context(), jobID)
	if err != nil {
		if errors.Is(err, repositories.ErrJobNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "job not found"})
			return models.Job{}, false
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load job"})
		return models.Job{}, false
	}
	if job.UserID != c.GetInt("userID") {
		c.JSON(http.StatusForbidden, gin.H{"error": "not your job"})
		return models.Job{}, false
	}
	return job, true
}

func (h *InterviewHandler) ownedInterview(c *gin.Context, interviewID int) (models.Interview, bool) {
	iv, err := h.interviewRepo.GetInterview(c.Request.Context(), interviewID)
	if err != nil {
		if errors.Is(err, repositories.ErrInterviewNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "interview not found"})
			return models.Interview{}, false
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load interview"})
		return models.Interview{}, false
	}
	if iv.UserID != c.GetInt("userID") {
		c.JSON(http.StatusForbidden, gin.H{"error": "not your interview"})
		return models.Interview{}, false
	}
	return iv, true
}
