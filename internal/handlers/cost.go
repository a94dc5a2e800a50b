package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hollandale/planfreeze-api/internal/database"
	apierrors "github.com/hollandale/planfreeze-api/internal/errors"
	"github.com/hollandale/planfreeze-api/internal/models"
	"github.com/hollandale/planfreeze-api/internal/utils"
)

type CostHandler struct{}

func NewCostHandler() *CostHandler {
	return &CostHandler{}
}

// CreateCost records a cost entry against a project
func (h *CostHandler) CreateCost(c *gin.Context) {
	type CreateCostRequest struct {
		ProjectID   uint64    `json:"project_id" binding:"required"`
		Category    string    `json:"category" binding:"required"`
		Amount      float64   `json:"amount" binding:"required"`
		Date        time.Time `json:"date" binding:"required"`
		Description string    `json:"description"`
	}

	var req CreateCostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	var count int64
	if err := database.GetDB().Model(&models.Project{}).Where("id = ?", req.ProjectID).Count(&count).Error; err != nil || count == 0 {
		apierrors.BadRequestWithDetails(c, "Validation failed", gin.H{"project_id": "project does not exist"})
		return
	}

	cost := models.Cost{
		ProjectID:   req.ProjectID,
		Category:    req.Category,
		Amount:      req.Amount,
		Date:        req.Date,
		Description: req.Description,
	}

	if err := database.GetDB().Create(&cost).Error; err != nil {
		apierrors.InternalError(c, "Failed to create cost")
		return
	}

	c.JSON(http.StatusCreated, cost)
}

// ListCosts returns cost entries, optionally per project
func (h *CostHandler) ListCosts(c *gin.Context) {
	query := database.GetDB().Model(&models.Cost{})

	if projectIDStr := c.Query("project_id"); projectIDStr != "" {
		projectID, err := strconv.ParseUint(projectIDStr, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid project_id")
			return
		}
		query = query.Where("project_id = ?", projectID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		apierrors.InternalError(c, "Failed to fetch costs")
		return
	}

	params := utils.GetPaginationParams(c)
	var costs []models.Cost
	if err := query.Order("date DESC").Scopes(database.Paginate(params)).Find(&costs).Error; err != nil {
		apierrors.InternalError(c, "Failed to fetch costs")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"costs": costs,
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// DeleteCost deletes a cost entry
func (h *CostHandler) DeleteCost(c *gin.Context) {
	costID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid cost ID")
		return
	}

	res := database.GetDB().Delete(&models.Cost{}, costID)
	if res.Error != nil {
		apierrors.InternalError(c, "Failed to delete cost")
		return
	}
	if res.RowsAffected == 0 {
		apierrors.NotFound(c, "Cost not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Cost deleted successfully"})
}
