package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hollandale/planfreeze-api/internal/database"
	apierrors "github.com/hollandale/planfreeze-api/internal/errors"
	"github.com/hollandale/planfreeze-api/internal/middleware"
	"github.com/hollandale/planfreeze-api/internal/models"
	"github.com/hollandale/planfreeze-api/internal/utils"
)

type DocumentHandler struct{}

func NewDocumentHandler() *DocumentHandler {
	return &DocumentHandler{}
}

// CreateDocument registers a document against a project
func (h *DocumentHandler) CreateDocument(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type CreateDocumentRequest struct {
		ProjectID uint64 `json:"project_id" binding:"required"`
		Category  string `json:"category" binding:"required"`
		Filename  string `json:"filename" binding:"required"`
		FilePath  string `json:"file_path" binding:"required"`
	}

	var req CreateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	var count int64
	if err := database.GetDB().Model(&models.Project{}).Where("id = ?", req.ProjectID).Count(&count).Error; err != nil || count == 0 {
		apierrors.BadRequestWithDetails(c, "Validation failed", gin.H{"project_id": "project does not exist"})
		return
	}

	document := models.Document{
		ProjectID:        req.ProjectID,
		Category:         req.Category,
		Filename:         req.Filename,
		FilePath:         req.FilePath,
		UploadedByUserID: userID,
	}

	if err := database.GetDB().Create(&document).Error; err != nil {
		apierrors.InternalError(c, "Failed to create document")
		return
	}

	c.JSON(http.StatusCreated, document)
}

// ListDocuments returns documents, optionally filtered by project and category
func (h *DocumentHandler) ListDocuments(c *gin.Context) {
	query := database.GetDB().Model(&models.Document{})

	if projectIDStr := c.Query("project_id"); projectIDStr != "" {
		projectID, err := strconv.ParseUint(projectIDStr, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid project_id")
			return
		}
		query = query.Where("project_id = ?", projectID)
	}
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		apierrors.InternalError(c, "Failed to fetch documents")
		return
	}

	params := utils.GetPaginationParams(c)
	var documents []models.Document
	if err := query.Order("created_at DESC").Scopes(database.Paginate(params)).Find(&documents).Error; err != nil {
		apierrors.InternalError(c, "Failed to fetch documents")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"documents": documents,
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// DeleteDocument deletes a document entry
func (h *DocumentHandler) DeleteDocument(c *gin.Context) {
	documentID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid document ID")
		return
	}

	res := database.GetDB().Delete(&models.Document{}, documentID)
	if res.Error != nil {
		apierrors.InternalError(c, "Failed to delete document")
		return
	}
	if res.RowsAffected == 0 {
		apierrors.NotFound(c, "Document not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Document deleted successfully"})
}
