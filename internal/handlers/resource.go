package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hollandale/planfreeze-api/internal/database"
	apierrors "github.com/hollandale/planfreeze-api/internal/errors"
	"github.com/hollandale/planfreeze-api/internal/models"
)

type ResourceHandler struct{}

func NewResourceHandler() *ResourceHandler {
	return &ResourceHandler{}
}

// CreateResource creates a new resource
func (h *ResourceHandler) CreateResource(c *gin.Context) {
	type CreateResourceRequest struct {
		Name         string              `json:"name" binding:"required"`
		Type         models.ResourceType `json:"type" binding:"required"`
		Availability string              `json:"availability"`
		CostPerHour  float64             `json:"cost_per_hour"`
	}

	var req CreateResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if !models.ValidResourceType(req.Type) {
		apierrors.BadRequestWithDetails(c, "Validation failed", gin.H{"type": "unknown resource type"})
		return
	}
	if req.Availability == "" {
		req.Availability = "available"
	}

	resource := models.Resource{
		Name:         req.Name,
		Type:         req.Type,
		Availability: req.Availability,
		CostPerHour:  req.CostPerHour,
	}

	if err := database.GetDB().Create(&resource).Error; err != nil {
		apierrors.InternalError(c, "Failed to create resource")
		return
	}

	c.JSON(http.StatusCreated, resource)
}

// ListResources returns all resources
func (h *ResourceHandler) ListResources(c *gin.Context) {
	var resources []models.Resource
	if err := database.GetDB().Order("created_at DESC").Find(&resources).Error; err != nil {
		apierrors.InternalError(c, "Failed to fetch resources")
		return
	}

	c.JSON(http.StatusOK, gin.H{"resources": resources})
}

// UpdateResource updates an existing resource
func (h *ResourceHandler) UpdateResource(c *gin.Context) {
	resourceID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid resource ID")
		return
	}

	var resource models.Resource
	if err := database.GetDB().First(&resource, resourceID).Error; err != nil {
		apierrors.NotFound(c, "Resource not found")
		return
	}

	type UpdateResourceRequest struct {
		Name         *string              `json:"name"`
		Type         *models.ResourceType `json:"type"`
		Availability *string              `json:"availability"`
		CostPerHour  *float64             `json:"cost_per_hour"`
	}

	var req UpdateResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if req.Name != nil {
		resource.Name = *req.Name
	}
	if req.Type != nil {
		if !models.ValidResourceType(*req.Type) {
			apierrors.BadRequestWithDetails(c, "Validation failed", gin.H{"type": "unknown resource type"})
			return
		}
		resource.Type = *req.Type
	}
	if req.Availability != nil {
		resource.Availability = *req.Availability
	}
	if req.CostPerHour != nil {
		resource.CostPerHour = *req.CostPerHour
	}

	if err := database.GetDB().Save(&resource).Error; err != nil {
		apierrors.InternalError(c, "Failed to update resource")
		return
	}

	c.JSON(http.StatusOK, resource)
}

// DeleteResource deletes a resource
func (h *ResourceHandler) DeleteResource(c *gin.Context) {
	resourceID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid resource ID")
		return
	}

	res := database.GetDB().Delete(&models.Resource{}, resourceID)
	if res.Error != nil {
		apierrors.InternalError(c, "Failed to delete resource")
		return
	}
	if res.RowsAffected == 0 {
		apierrors.NotFound(c, "Resource not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Resource deleted successfully"})
}

// CreateAllocation allocates a resource to a project (optionally a task)
func (h *ResourceHandler) CreateAllocation(c *gin.Context) {
	type CreateAllocationRequest struct {
		ResourceID     uint64    `json:"resource_id" binding:"required"`
		ProjectID      uint64    `json:"project_id" binding:"required"`
		TaskID         *uint64   `json:"task_id"`
		AllocatedHours float64   `json:"allocated_hours" binding:"required"`
		AllocationDate time.Time `json:"allocation_date" binding:"required"`
	}

	var req CreateAllocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	var count int64
	if err := database.GetDB().Model(&models.Resource{}).Where("id = ?", req.ResourceID).Count(&count).Error; err != nil || count == 0 {
		apierrors.BadRequestWithDetails(c, "Validation failed", gin.H{"resource_id": "resource does not exist"})
		return
	}
	if err := database.GetDB().Model(&models.Project{}).Where("id = ?", req.ProjectID).Count(&count).Error; err != nil || count == 0 {
		apierrors.BadRequestWithDetails(c, "Validation failed", gin.H{"project_id": "project does not exist"})
		return
	}

	allocation := models.ResourceAllocation{
		ResourceID:     req.ResourceID,
		ProjectID:      req.ProjectID,
		TaskID:         req.TaskID,
		AllocatedHours: req.AllocatedHours,
		AllocationDate: req.AllocationDate,
	}

	if err := database.GetDB().Create(&allocation).Error; err != nil {
		apierrors.InternalError(c, "Failed to create allocation")
		return
	}

	c.JSON(http.StatusCreated, allocation)
}

// ListAllocations returns resource allocations, optionally per project
func (h *ResourceHandler) ListAllocations(c *gin.Context) {
	query := database.GetDB().Model(&models.ResourceAllocation{})

	if projectIDStr := c.Query("project_id"); projectIDStr != "" {
		projectID, err := strconv.ParseUint(projectIDStr, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid project_id")
			return
		}
		query = query.Where("project_id = ?", projectID)
	}

	var allocations []models.ResourceAllocation
	if err := query.Order("allocation_date DESC").Find(&allocations).Error; err != nil {
		apierrors.InternalError(c, "Failed to fetch allocations")
		return
	}

	c.JSON(http.StatusOK, gin.H{"allocations": allocations})
}
