package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"career-service/internal/cache"
	"career-service/internal/models"
	"career-service/internal/repositories"
)

// OutcomeHandler manages offers and rejections tied to jobs.
type OutcomeHandler struct {
	outcomeRepo repositories.OutcomeRepository
	jobRepo     repositories.JobRepository
	cache       cache.Store
}

// NewOutcomeHandler builds an OutcomeHandler.
func NewOutcomeHandler(outcomeRepo repositories.OutcomeRepository, jobRepo repositories.JobRepository, store cache.Store) *OutcomeHandler {
	return &OutcomeHandler{outcomeRepo: outcomeRepo, jobRepo: jobRepo, cache: store}
}

// CreateOffer records an offer and moves the job to the offer status.
func (h *OutcomeHandler) CreateOffer(c *gin.Context) {
	userID := c.GetInt("userID")

	var req struct {
		JobID     int        `json:"job_id" binding:"required"`
		Amount    string     `json:"amount"`
		OfferDate *time.Time `json:"offer_date"`
		Deadline  *time.Time `json:"deadline"`
		Notes     string     `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	job, ok := h.ownedJob(c, req.JobID)
	if !ok {
		return
	}
	if models.TerminalJobStatus(job.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "application already " + job.Status})
		return
	}

	offerDate := time.Now().UTC()
	if req.OfferDate != nil {
		offerDate = *req.OfferDate
	}

	offer, err := h.outcomeRepo.CreateOffer(c.Request.Context(), models.Offer{
		UserID:    userID,
		JobID:     req.JobID,
		Amount:    req.Amount,
		OfferDate: offerDate,
		Deadline:  req.Deadline,
		Notes:     req.Notes,
	})
	if err != nil {
		if errors.Is(err, repositories.ErrOutcomeExists) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "job already has an offer"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record offer"})
		return
	}

	if err := h.jobRepo.UpdateJobStatus(c.Request.Context(), req.JobID, models.JobStatusOffer, nil); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update job status"})
		return
	}

	h.cache.Invalidate(jobsTag(userID))
	c.JSON(http.StatusCreated, gin.H{"data": offer})
}

// ListOffers returns the user's offers.
func (h *OutcomeHandler) ListOffers(c *gin.Context) {
	offers, err := h.outcomeRepo.ListOffers(c.Request.Context(), c.GetInt("userID"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load offers"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": offers})
}

// DeleteOffer removes an offer.
func (h *OutcomeHandler) DeleteOffer(c *gin.Context) {
	offerID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	err := h.outcomeRepo.DeleteOffer(c.Request.Context(), offerID, c.GetInt("userID"))
	if err != nil {
		if errors.Is(err, repositories.ErrOfferNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "offer not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete offer"})
		return
	}
	c.Status(http.StatusNoContent)
}

// CreateRejection records a rejection and moves the job to the rejected
// status.
func (h *OutcomeHandler) CreateRejection(c *gin.Context) {
	userID := c.GetInt("userID")

	var req struct {
		JobID      int        `json:"job_id" binding:"required"`
		RejectedAt *time.Time `json:"rejected_at"`
		Reason     string     `json:"reason"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	job, ok := h.ownedJob(c, req.JobID)
	if !ok {
		return
	}
	if models.TerminalJobStatus(job.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "application already " + job.Status})
		return
	}

	rejectedAt := time.Now().UTC()
	if req.RejectedAt != nil {
		rejectedAt = *req.RejectedAt
	}

	rejection, err := h.outcomeRepo.CreateRejection(c.Request.Context(), models.Rejection{
		UserID:     userID,
		JobID:      req.JobID,
		RejectedAt: rejectedAt,
		Reason:     req.Reason,
	})
	if err != nil {
		if errors.Is(err, repositories.ErrOutcomeExists) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "job already has a rejection"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record rejection"})
		return
	}

	if err := h.jobRepo.UpdateJobStatus(c.Request.Context(), req.JobID, models.JobStatusRejected, nil); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update job status"})
		return
	}

	h.cache.Invalidate(jobsTag(userID))
	c.JSON(http.StatusCreated, gin.H{"data": rejection})
}

// ListRejections returns the user's rejections.
func (h *OutcomeHandler) ListRejections(c *gin.Context) {
	rejections, err := h.outcomeRepo.ListRejections(c.Request.Context(), c.GetInt("userID"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load rejections"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": rejections})
}

// DeleteRejection removes a rejection.
func (h *OutcomeHandler) DeleteRejection(c *gin.Context) {
	rejectionID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	err := h.outcomeRepo.DeleteRejection(c.Request.Context(), rejectionID, c.GetInt("userID"))
	if err != nil {
		if errors.Is(err, repositories.ErrRejectionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "rejection not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete rejection"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *OutcomeHandler) ownedJob(c *gin.Context, jobID int) (models.Job, bool) {
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
