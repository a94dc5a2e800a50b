package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	apierrors "github.com/hollandale/planfreeze-api/internal/errors"
	"github.com/hollandale/planfreeze-api/internal/middleware"
	"github.com/hollandale/planfreeze-api/internal/services"
)

// BaselineHandler exposes the freeze and baseline listing endpoints.
type BaselineHandler struct {
	baselineService *services.BaselineService
}

func NewBaselineHandler(baselineService *services.BaselineService) *BaselineHandler {
	return &BaselineHandler{
		baselineService: baselineService,
	}
}

// freezeRequest is the optional freeze body. snapshot_data is accepted for
// wire compatibility but ignored: the server captures the snapshot itself.
type freezeRequest struct {
	Name         string          `json:"name"`
	SnapshotData json.RawMessage `json:"snapshot_data"`
}

// FreezeTask snapshots a task into a baseline and marks it frozen.
// Freezing an already-frozen task responds with an informational
// ALREADY_FROZEN notice and records nothing.
func (h *BaselineHandler) FreezeTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	taskID, err := strconv.ParseUint(c.Query("task_id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid task_id")
		return
	}

	var req freezeRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	baseline, err := h.baselineService.FreezeTask(taskID, req.Name, userID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTaskNotFound):
			apierrors.NotFound(c, "Task not found")
		case errors.Is(err, services.ErrTaskAlreadyFrozen):
			apierrors.AlreadyFrozenNotice(c, "")
		default:
			apierrors.InternalError(c, "")
		}
		return
	}

	c.JSON(http.StatusCreated, baseline)
}

// ListTaskBaselines lists the baselines recorded for a task
func (h *BaselineHandler) ListTaskBaselines(c *gin.Context) {
	taskID, err := strconv.ParseUint(c.Param("task_id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}

	baselines, err := h.baselineService.ListTaskBaselines(taskID)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"baselines": baselines})
}

// SnapshotProject records an informational baseline of a project
func (h *BaselineHandler) SnapshotProject(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	projectID, err := strconv.ParseUint(c.Query("project_id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid project_id")
		return
	}

	var req freezeRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	baseline, err := h.baselineService.SnapshotProject(projectID, req.Name, userID)
	if err != nil {
		if errors.Is(err, services.ErrProjectNotFound) {
			apierrors.NotFound(c, "Project not found")
		} else {
			apierrors.InternalError(c, "")
		}
		return
	}

	c.JSON(http.StatusCreated, baseline)
}

// ListProjectBaselines lists the baselines recorded for a project
func (h *BaselineHandler) ListProjectBaselines(c *gin.Context) {
	projectID, err := strconv.ParseUint(c.Param("project_id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid project ID")
		return
	}

	baselines, err := h.baselineService.ListProjectBaselines(projectID)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"baselines": baselines})
}
