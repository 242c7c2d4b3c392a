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
	"career-service/internal/telemetry"
)

// JobHandler manages the job application pipeline.
type JobHandler struct {
	jobRepo repositories.JobRepository
	cache   cache.Store
	ttl     time.Duration
	audit   *telemetry.AuditEmitter
}

// NewJobHandler builds a JobHandler.
func NewJobHandler(jobRepo repositories.JobRepository, store cache.Store, ttl time.Duration, audit *telemetry.AuditEmitter) *JobHandler {
	return &JobHandler{jobRepo: jobRepo, cache: store, ttl: ttl, audit: audit}
}

func jobsTag(userID int) string {
	return fmt.Sprintf("jobs:%d", userID)
}

// CreateJob adds a job application to the pipeline.
func (h *JobHandler) CreateJob(c *gin.Context) {
	userID := c.GetInt("userID")

	var req struct {
		Title    string `json:"title" binding:"required"`
		Company  string `json:"company" binding:"required"`
		Location string `json:"location"`
		URL      string `json:"url"`
		Salary   string `json:"salary"`
		Status   string `json:"status"`
		Notes    string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	status := req.Status
	if status == "" {
		status = models.JobStatusSaved
	}
	if !models.ValidJobStatus(status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown status"})
		return
	}

	job := models.Job{
		UserID:   userID,
		Title:    req.Title,
		Company:  req.Company,
		Location: req.Location,
		URL:      req.URL,
		Salary:   req.Salary,
		Status:   status,
		Notes:    req.Notes,
	}
	if status == models.JobStatusApplied {
		now := time.Now().UTC()
		job.AppliedAt = &now
	}

	created, err := h.jobRepo.CreateJob(c.Request.Context(), job)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create job"})
		return
	}

	h.cache.Invalidate(jobsTag(userID))
	h.audit.Emit(c.Request.Context(), "create", "job", requestIDFromContext(c), auditUserID(c))
	c.JSON(http.StatusCreated, gin.H{"data": created})
}

// ListJobs returns the user's applications, cache-aside.
func (h *JobHandler) ListJobs(c *gin.Context) {
	userID := c.GetInt("userID")
	key := jobsTag(userID)

	if val, ok := h.cache.Get(key); ok {
		c.JSON(http.StatusOK, gin.H{"data": val})
		return
	}

	jobs, err := h.jobRepo.ListJobs(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load jobs"})
		return
	}

	h.cache.Set(key, jobs, h.ttl, key)
	c.JSON(http.StatusOK, gin.H{"data": jobs})
}

// GetJob returns a single application.
func (h *JobHandler) GetJob(c *gin.Context) {
	jobID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	job, ok := h.ownedJob(c, jobID)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": job})
}

// UpdateJob rewrites the mutable fields of an application.
func (h *JobHandler) UpdateJob(c *gin.Context) {
	jobID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	job, ok := h.ownedJob(c, jobID)
	if !ok {
		return
	}

	var req struct {
		Title    string `json:"title" binding:"required"`
		Company  string `json:"company" binding:"required"`
		Location string `json:"location"`
		URL      string `json:"url"`
		Salary   string `json:"salary"`
		Notes    string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	job.Title = req.Title
	job.Company = req.Company
	job.Location = req.Location
	job.URL = req.URL
	job.Salary = req.Salary
	job.Notes = req.Notes

	updated, err := h.jobRepo.UpdateJob(c.Request.Context(), job)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update job"})
		return
	}

	h.cache.Invalidate(jobsTag(job.UserID))
	c.JSON(http.StatusOK, gin.H{"data": updated})
}

// UpdateJobStatus moves an application through the pipeline.
func (h *JobHandler) UpdateJobStatus(c *gin.Context) {
	jobID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	job, ok := h.ownedJob(c, jobID)
	if !ok {
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !models.ValidJobStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown status"})
		return
	}
	if models.TerminalJobStatus(job.Status) && job.Status != req.Status {
		c.JSON(http.StatusBadRequest, gin.H{"error": "application already " + job.Status})
		return
	}

	var appliedAt *time.Time
	if req.Status == models.JobStatusApplied && job.AppliedAt == nil {
		now := time.Now().UTC()
		appliedAt = &now
	}

	if err := h.jobRepo.UpdateJobStatus(c.Request.Context(), jobID, req.Status, appliedAt); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update status"})
		return
	}

	h.cache.Invalidate(jobsTag(job.UserID))
	h.audit.Emit(c.Request.Context(), "status:"+req.Status, "job", requestIDFromContext(c), auditUserID(c))
	c.Status(http.StatusNoContent)
}

// DeleteJob removes an application.
func (h *JobHandler) DeleteJob(c *gin.Context) {
	jobID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	job, ok := h.ownedJob(c, jobID)
	if !ok {
		return
	}

	if err := h.jobRepo.DeleteJob(c.Request.Context(), jobID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete job"})
		return
	}

	h.cache.Invalidate(jobsTag(job.UserID))
	c.Status(http.StatusNoContent)
}

// ownedJob loads a job and enforces ownership, writing the error response
// itself on failure.
func (h *JobHandler) ownedJob(c *gin.Context, jobID int) (models.Job, bool) {
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
