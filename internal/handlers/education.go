package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"career-service/internal/models"
	"career-service/internal/repositories"
)

// EducationHandler manages profile education entries.
type EducationHandler struct {
	educationRepo repositories.EducationRepository
}

// NewEducationHandler builds an EducationHandler.
func NewEducationHandler(educationRepo repositories.EducationRepository) *EducationHandler {
	return &EducationHandler{educationRepo: educationRepo}
}

type educationRequest struct {
	School       string `json:"school" binding:"required"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"field_of_study"`
	StartYear    *int   `json:"start_year"`
	EndYear      *int   `json:"end_year"`
}

func (req educationRequest) validYears() bool {
	return req.StartYear == nil || req.EndYear == nil || *req.EndYear >= *req.StartYear
}

// CreateEducation adds an education entry.
func (h *EducationHandler) CreateEducation(c *gin.Context) {
	var req educationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !req.validYears() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "end year before start year"})
		return
	}

	created, err := h.educationRepo.CreateEducation(c.Request.Context(), models.Education{
		UserID:       c.GetInt("userID"),
		School:       req.School,
		Degree:       req.Degree,
		FieldOfStudy: req.FieldOfStudy,
		StartYear:    req.StartYear,
		EndYear:      req.EndYear,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create education entry"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": created})
}

// ListEducation returns the user's education entries.
func (h *EducationHandler) ListEducation(c *gin.Context) {
	entries, err := h.educationRepo.ListEducation(c.Request.Context(), c.GetInt("userID"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load education"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": entries})
}

// UpdateEducation rewrites an education entry.
func (h *EducationHandler) UpdateEducation(c *gin.Context) {
	entryID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req educationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !req.validYears() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "end year before start year"})
		return
	}

	updated, err := h.educationRepo.UpdateEducation(c.Request.Context(), models.Education{
		ID:           entryID,
		UserID:       c.GetInt("userID"),
		School:       req.School,
		Degree:       req.Degree,
		FieldOfStudy: req.FieldOfStudy,
		StartYear:    req.StartYear,
		EndYear:      req.EndYear,
	})
	if err != nil {
		if errors.Is(err, repositories.ErrEducationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "education entry not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update education entry"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": updated})
}

// DeleteEducation removes an entry.
func (h *EducationHandler) DeleteEducation(c *gin.Context) {
	entryID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	err := h.educationRepo.DeleteEducation(c.Request.Context(), entryID, c.GetInt("userID"))
	if err != nil {
		if errors.Is(err, repositories.ErrEducationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "education entry not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete education entry"})
		return
	}
	c.Status(http.StatusNoContent)
}
