package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"career-service/internal/models"
	"career-service/internal/repositories"
	"career-service/internal/storage"
)

// DocumentHandler manages resume and cover letter uploads. Files go
// directly to object storage through pre-signed URLs; only metadata is
// stored here.
type DocumentHandler struct {
	documentRepo repositories.DocumentRepository
	uploader     storage.Uploader
}

// NewDocumentHandler builds a DocumentHandler. uploader may be nil when
// object storage is not configured.
func NewDocumentHandler(documentRepo repositories.DocumentRepository, uploader storage.Uploader) *DocumentHandler {
	return &DocumentHandler{documentRepo: documentRepo, uploader: uploader}
}

// PresignUpload issues a pre-signed upload URL for a new document.
func (h *DocumentHandler) PresignUpload(c *gin.Context) {
	if h.uploader == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "uploads are not configured"})
		return
	}

	var req struct {
		FileName    string `json:"file_name" binding:"required"`
		ContentType string `json:"content_type" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	target, err := h.uploader.PresignUpload(c.Request.Context(), c.GetInt("userID"), req.FileName, req.ContentType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to prepare upload"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": target})
}

// CreateDocument records metadata after the client finishes uploading.
func (h *DocumentHandler) CreateDocument(c *gin.Context) {
	var req struct {
		FileName    string `json:"file_name" binding:"required"`
		ObjectKey   string `json:"object_key" binding:"required"`
		ContentType string `json:"content_type"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.documentRepo.CreateDocument(c.Request.Context(), models.Document{
		UserID:      c.GetInt("userID"),
		FileName:    req.FileName,
		ObjectKey:   req.ObjectKey,
		ContentType: req.ContentType,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record document"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": created})
}

// ListDocuments returns the user's documents.
func (h *DocumentHandler) ListDocuments(c *gin.Context) {
	docs, err := h.documentRepo.ListDocuments(c.Request.Context(), c.GetInt("userID"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load documents"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": docs})
}

// DeleteDocument removes a document record.
func (h *DocumentHandler) DeleteDocument(c *gin.Context) {
	documentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	err := h.documentRepo.DeleteDocument(c.Request.Context(), documentID, c.GetInt("userID"))
	if err != nil {
		if errors.Is(err, repositories.ErrDocumentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "document not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete document"})
		return
	}
	c.Status(http.StatusNoContent)
}
