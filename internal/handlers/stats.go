package handlers

import (
	"math"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hollandale/planfreeze-api/internal/database"
	apierrors "github.com/hollandale/planfreeze-api/internal/errors"
	"github.com/hollandale/planfreeze-api/internal/middleware"
	"github.com/hollandale/planfreeze-api/internal/models"
	"gorm.io/gorm"
)

type StatsHandler struct{}

func NewStatsHandler() *StatsHandler {
	return &StatsHandler{}
}

// DashboardStats returns project and task totals for the dashboard.
// Team members only see their own slice of the portfolio.
func (h *StatsHandler) DashboardStats(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}
	role, _ := middleware.GetUserRole(c)

	db := database.GetDB()
	teamMember := role == models.RoleTeamMember

	var projectIDs []uint64
	if teamMember {
		if err := db.Model(&models.Task{}).
			Where("assigned_to_user_id = ?", userID).
			Distinct().
			Pluck("project_id", &projectIDs).Error; err != nil {
			apierrors.InternalError(c, "Failed to compute stats")
			return
		}
	}

	taskScope := func() *gorm.DB {
		q := db.Model(&models.Task{})
		if teamMember {
			q = q.Where("assigned_to_user_id = ?", userID)
		}
		return q
	}
	projectScope := func() *gorm.DB {
		q := db.Model(&models.Project{})
		if teamMember {
			if len(projectIDs) == 0 {
				return q.Where("1 = 0")
			}
			q = q.Where("id IN ?", projectIDs)
		}
		return q
	}

	var totalProjects, activeProjects, totalTasks, completedTasks int64
	if err := projectScope().Count(&totalProjects).Error; err != nil {
		apierrors.InternalError(c, "Failed to compute stats")
		return
	}
	if err := projectScope().Where("status = ?", models.ProjectStatusActive).Count(&activeProjects).Error; err != nil {
		apierrors.InternalError(c, "Failed to compute stats")
		return
	}
	if err := taskScope().Count(&totalTasks).Error; err != nil {
		apierrors.InternalError(c, "Failed to compute stats")
		return
	}
	if err := taskScope().Where("status = ?", models.TaskStatusCompleted).Count(&completedTasks).Error; err != nil {
		apierrors.InternalError(c, "Failed to compute stats")
		return
	}

	completionRate := 0.0
	if totalTasks > 0 {
		completionRate = math.Round(float64(completedTasks)/float64(totalTasks)*1000) / 10
	}

	c.JSON(http.StatusOK, gin.H{
		"total_projects":  totalProjects,
		"active_projects": activeProjects,
		"total_tasks":     totalTasks,
		"completed_tasks": completedTasks,
		"completion_rate": completionRate,
	})
}
