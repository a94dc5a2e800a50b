package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hollandale/planfreeze-api/internal/database"
	apierrors "github.com/hollandale/planfreeze-api/internal/errors"
	"github.com/hollandale/planfreeze-api/internal/models"
)

type RelationshipHandler struct{}

func NewRelationshipHandler() *RelationshipHandler {
	return &RelationshipHandler{}
}

func validEntityType(t string) bool {
	switch t {
	case "project", "task", "resource":
		return true
	}
	return false
}

// CreateRelationship links two entities with a typed edge
func (h *RelationshipHandler) CreateRelationship(c *gin.Context) {
	type CreateRelationshipRequest struct {
		FromEntityType   string `json:"from_entity_type" binding:"required"`
		FromEntityID     uint64 `json:"from_entity_id" binding:"required"`
		ToEntityType     string `json:"to_entity_type" binding:"required"`
		ToEntityID       uint64 `json:"to_entity_id" binding:"required"`
		RelationshipType string `json:"relationship_type" binding:"required"`
	}

	var req CreateRelationshipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if !validEntityType(req.FromEntityType) {
		apierrors.BadRequestWithDetails(c, "Validation failed", gin.H{"from_entity_type": "unknown entity type"})
		return
	}
	if !validEntityType(req.ToEntityType) {
		apierrors.BadRequestWithDetails(c, "Validation failed", gin.H{"to_entity_type": "unknown entity type"})
		return
	}

	relationship := models.Relationship{
		FromEntityType:   req.FromEntityType,
		FromEntityID:     req.FromEntityID,
		ToEntityType:     req.ToEntityType,
		ToEntityID:       req.ToEntityID,
		RelationshipType: req.RelationshipType,
	}

	if err := database.GetDB().Create(&relationship).Error; err != nil {
		apierrors.InternalError(c, "Failed to create relationship")
		return
	}

	c.JSON(http.StatusCreated, relationship)
}

// ListRelationships returns relationships, optionally those touching a project
func (h *RelationshipHandler) ListRelationships(c *gin.Context) {
	query := database.GetDB().Model(&models.Relationship{})

	if projectIDStr := c.Query("project_id"); projectIDStr != "" {
		projectID, err := strconv.ParseUint(projectIDStr, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid project_id")
			return
		}
		query = query.Where(
			"(from_entity_type = ? AND from_entity_id = ?) OR (to_entity_type = ? AND to_entity_id = ?)",
			"project", projectID, "project", projectID,
		)
	}

	var relationships []models.Relationship
	if err := query.Order("created_at DESC").Find(&relationships).Error; err != nil {
		apierrors.InternalError(c, "Failed to fetch relationships")
		return
	}

	c.JSON(http.StatusOK, gin.H{"relationships": relationships})
}

// DeleteRelationship deletes a relationship
func (h *RelationshipHandler) DeleteRelationship(c *gin.Context) {
	relationshipID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid relationship ID")
		return
	}

	res := database.GetDB().Delete(&models.Relationship{}, relationshipID)
	if res.Error != nil {
		apierrors.InternalError(c, "Failed to delete relationship")
		return
	}
	if res.RowsAffected == 0 {
		apierrors.NotFound(c, "Relationship not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Relationship deleted successfully"})
}
