package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	apierrors "github.com/hollandale/planfreeze-api/internal/errors"
	"github.com/hollandale/planfreeze-api/internal/middleware"
	"github.com/hollandale/planfreeze-api/internal/models"
	"github.com/hollandale/planfreeze-api/internal/services"
	"github.com/hollandale/planfreeze-api/internal/utils"
)

type TaskHandler struct {
	taskService *services.TaskService
}

func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// CreateTask creates a new task
func (h *TaskHandler) CreateTask(c *gin.Context) {
	type CreateTaskRequest struct {
		Name                   string              `json:"name" binding:"required"`
		Description            string              `json:"description"`
		ProjectID              uint64              `json:"project_id" binding:"required"`
		Status                 models.TaskStatus   `json:"status"`
		Priority               models.TaskPriority `json:"priority"`
		AssignedToUserID       *uint64             `json:"assigned_to_user_id"`
		AssignedResourceIDs    []uint64            `json:"assigned_resource_ids"`
		StartDate              *time.Time          `json:"start_date"`
		EndDate                *time.Time          `json:"end_date"`
		ExpectedCompletionDate *time.Time          `json:"expected_completion_date"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.CreateTask(services.CreateTaskInput{
		Name:                   req.Name,
		Description:            req.Description,
		ProjectID:              req.ProjectID,
		Status:                 req.Status,
		Priority:               req.Priority,
		AssignedToUserID:       req.AssignedToUserID,
		ResourceIDs:            req.AssignedResourceIDs,
		StartDate:              req.StartDate,
		EndDate:                req.EndDate,
		ExpectedCompletionDate: req.ExpectedCompletionDate,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, task)
}

// ListTasks returns tasks visible to the current user.
// Team members only see tasks assigned to them.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}
	role, _ := middleware.GetUserRole(c)

	input := services.ListTasksInput{
		ActorID:   userID,
		ActorRole: role,
	}

	if projectIDStr := c.Query("project_id"); projectIDStr != "" {
		projectID, err := strconv.ParseUint(projectIDStr, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid project_id")
			return
		}
		input.ProjectID = &projectID
	}
	if statusStr := c.Query("status"); statusStr != "" {
		status := models.TaskStatus(statusStr)
		if !models.ValidTaskStatus(status) {
			apierrors.BadRequest(c, "Invalid status")
			return
		}
		input.Status = &status
	}

	params := utils.GetPaginationParams(c)
	input.Page = params.Page
	input.PageSize = params.Limit

	tasks, total, err := h.taskService.ListTasks(input)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch tasks")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tasks": tasks,
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// GetTask returns a specific task by ID
func (h *TaskHandler) GetTask(c *gin.Context) {
	taskID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}

	task, err := h.taskService.GetTask(taskID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// UpdateTask applies a patch to a task. The patch schema is strict:
// unknown fields are rejected rather than silently dropped.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	taskID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}

	type UpdateTaskRequest struct {
		Name                   *string              `json:"name"`
		Description            *string              `json:"description"`
		Status                 *models.TaskStatus   `json:"status"`
		Priority               *models.TaskPriority `json:"priority"`
		AssignedToUserID       json.RawMessage      `json:"assigned_to_user_id"`
		AssignedResourceIDs    *[]uint64            `json:"assigned_resource_ids"`
		StartDate              *time.Time           `json:"start_date"`
		EndDate                *time.Time           `json:"end_date"`
		ExpectedCompletionDate *time.Time           `json:"expected_completion_date"`
		RealizedCompletionDate *time.Time           `json:"realized_completion_date"`
	}

	var req UpdateTaskRequest
	dec := json.NewDecoder(c.Request.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		apierrors.BadRequestWithDetails(c, "Invalid request body", err.Error())
		return
	}

	input := services.UpdateTaskInput{
		Name:                   req.Name,
		Description:            req.Description,
		Status:                 req.Status,
		Priority:               req.Priority,
		StartDate:              req.StartDate,
		EndDate:                req.EndDate,
		ExpectedCompletionDate: req.ExpectedCompletionDate,
		RealizedCompletionDate: req.RealizedCompletionDate,
	}

	// assigned_to_user_id distinguishes absent (untouched) from null (clear)
	if len(req.AssignedToUserID) > 0 {
		if string(req.AssignedToUserID) == "null" {
			input.ClearAssignee = true
		} else {
			var assignee uint64
			if err := json.Unmarshal(req.AssignedToUserID, &assignee); err != nil {
				apierrors.BadRequestWithDetails(c, "Validation failed", gin.H{"assigned_to_user_id": "must be a user ID or null"})
				return
			}
			input.AssignedToUserID = &assignee
		}
	}
	if req.AssignedResourceIDs != nil {
		ids := *req.AssignedResourceIDs
		if ids == nil {
			ids = []uint64{}
		}
		input.ResourceIDs = ids
	}

	task, err := h.taskService.UpdateTask(taskID, input)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// DeleteTask deletes a task
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	taskID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}

	if err := h.taskService.DeleteTask(taskID); err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
}

func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, "Task not found")
	case errors.Is(err, services.ErrTaskFrozen):
		apierrors.FrozenTask(c, "")
	case errors.Is(err, services.ErrTaskNameRequired):
		apierrors.BadRequestWithDetails(c, "Validation failed", gin.H{"name": "name is required"})
	case errors.Is(err, services.ErrTaskNameEmpty):
		apierrors.BadRequestWithDetails(c, "Validation failed", gin.H{"name": "name cannot be empty"})
	case errors.Is(err, services.ErrTaskProjectRequired):
		apierrors.BadRequestWithDetails(c, "Validation failed", gin.H{"project_id": "project_id is required"})
	case errors.Is(err, services.ErrProjectNotFound):
		apierrors.BadRequestWithDetails(c, "Validation failed", gin.H{"project_id": "project does not exist"})
	case errors.Is(err, services.ErrInvalidStatus):
		apierrors.BadRequestWithDetails(c, "Validation failed", gin.H{"status": "unknown status"})
	case errors.Is(err, services.ErrInvalidPriority):
		apierrors.BadRequestWithDetails(c, "Validation failed", gin.H{"priority": "unknown priority"})
	case errors.Is(err, services.ErrUnknownResource):
		apierrors.BadRequestWithDetails(c, "Validation failed", gin.H{"assigned_resource_ids": "one or more resources do not exist"})
	default:
		apierrors.InternalError(c, "")
	}
}
