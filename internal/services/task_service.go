package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hollandale/planfreeze-api/internal/models"
	"github.com/hollandale/planfreeze-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound        = errors.New("task not found")
	ErrTaskFrozen          = errors.New("task is frozen and can no longer be modified")
	ErrTaskNameRequired    = errors.New("name is required")
	ErrTaskNameEmpty       = errors.New("name cannot be empty")
	ErrTaskProjectRequired = errors.New("project_id is required")
	ErrInvalidStatus       = errors.New("invalid task status")
	ErrInvalidPriority     = errors.New("invalid task priority")
	ErrUnknownResource     = errors.New("one or more resources do not exist")
)

// TaskService owns the task lifecycle: every create, update and delete
// goes through here and is guarded against the frozen state.
type TaskService struct {
	taskRepo    repository.TaskRepository
	projectRepo repository.ProjectRepository
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository, projectRepo repository.ProjectRepository) *TaskService {
	return &TaskService{
		taskRepo:    taskRepo,
		projectRepo: projectRepo,
	}
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Name                   string
	Description            string
	ProjectID              uint64
	Status                 models.TaskStatus
	Priority               models.TaskPriority
	AssignedToUserID       *uint64
	ResourceIDs            []uint64
	StartDate              *time.Time
	EndDate                *time.Time
	ExpectedCompletionDate *time.Time
}

// UpdateTaskInput represents a validated patch for a task. Nil fields are
// left untouched.
type UpdateTaskInput struct {
	Name                   *string
	Description            *string
	Status                 *models.TaskStatus
	Priority               *models.TaskPriority
	AssignedToUserID       *uint64
	ClearAssignee          bool
	ResourceIDs            []uint64
	StartDate              *time.Time
	EndDate                *time.Time
	ExpectedCompletionDate *time.Time
	RealizedCompletionDate *time.Time
}

// ListTasksInput represents filters for listing tasks
type ListTasksInput struct {
	ActorID   uint64
	ActorRole models.UserRole
	ProjectID *uint64
	Status    *models.TaskStatus
	Page      int
	PageSize  int
}

// CreateTask creates a new task with validation. Tasks always start
// mutable (is_frozen false), status defaults to todo and priority to
// medium.
func (s *TaskService) CreateTask(input CreateTaskInput) (*models.Task, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrTaskNameRequired
	}
	if input.ProjectID == 0 {
		return nil, ErrTaskProjectRequired
	}

	exists, err := s.projectRepo.Exists(input.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to verify project: %w", err)
	}
	if !exists {
		return nil, ErrProjectNotFound
	}

	if input.Status == "" {
		input.Status = models.TaskStatusTodo
	} else if !models.ValidTaskStatus(input.Status) {
		return nil, ErrInvalidStatus
	}
	if input.Priority == "" {
		input.Priority = models.TaskPriorityMedium
	} else if !models.ValidTaskPriority(input.Priority) {
		return nil, ErrInvalidPriority
	}

	if len(input.ResourceIDs) > 0 {
		if err := s.verifyResources(input.ResourceIDs); err != nil {
			return nil, err
		}
	}

	task := &models.Task{
		Name:                   name,
		Description:            input.Description,
		ProjectID:              input.ProjectID,
		Status:                 input.Status,
		Priority:               input.Priority,
		AssignedToUserID:       input.AssignedToUserID,
		StartDate:              input.StartDate,
		EndDate:                input.EndDate,
		ExpectedCompletionDate: input.ExpectedCompletionDate,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	if len(input.ResourceIDs) > 0 {
		if err := s.taskRepo.UpdateUnfrozen(task.ID, nil, input.ResourceIDs); err != nil {
			return nil, fmt.Errorf("failed to assign resources: %w", err)
		}
	}

	return s.taskRepo.FindByID(task.ID, "Resources")
}

// GetTask returns a task with its assigned resources
func (s *TaskService) GetTask(taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID, "Resources")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// UpdateTask applies a patch to a task. Mutating a frozen task fails with
// ErrTaskFrozen; the check happens atomically with the write, so a freeze
// landing mid-flight rejects the update instead of losing it.
func (s *TaskService) UpdateTask(taskID uint64, input UpdateTaskInput) (*models.Task, error) {
	updates := map[string]any{}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrTaskNameEmpty
		}
		updates["name"] = name
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.Status != nil {
		if !models.ValidTaskStatus(*input.Status) {
			return nil, ErrInvalidStatus
		}
		updates["status"] = *input.Status
	}
	if input.Priority != nil {
		if !models.ValidTaskPriority(*input.Priority) {
			return nil, ErrInvalidPriority
		}
		updates["priority"] = *input.Priority
	}
	if input.ClearAssignee {
		updates["assigned_to_user_id"] = nil
	} else if input.AssignedToUserID != nil {
		updates["assigned_to_user_id"] = *input.AssignedToUserID
	}
	if input.StartDate != nil {
		updates["start_date"] = *input.StartDate
	}
	if input.EndDate != nil {
		updates["end_date"] = *input.EndDate
	}
	if input.ExpectedCompletionDate != nil {
		updates["expected_completion_date"] = *input.ExpectedCompletionDate
	}
	if input.RealizedCompletionDate != nil {
		updates["realized_completion_date"] = *input.RealizedCompletionDate
	}

	if len(input.ResourceIDs) > 0 {
		if err := s.verifyResources(input.ResourceIDs); err != nil {
			return nil, err
		}
	}

	if err := s.taskRepo.UpdateUnfrozen(taskID, updates, input.ResourceIDs); err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, ErrTaskNotFound
		case errors.Is(err, repository.ErrTaskFrozen):
			return nil, ErrTaskFrozen
		}
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return s.taskRepo.FindByID(taskID, "Resources")
}

// DeleteTask soft deletes a task. Frozen tasks are audit anchors and
// cannot be deleted; their baselines are retained either way.
func (s *TaskService) DeleteTask(taskID uint64) error {
	if err := s.taskRepo.DeleteUnfrozen(taskID); err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return ErrTaskNotFound
		case errors.Is(err, repository.ErrTaskFrozen):
			return ErrTaskFrozen
		}
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

// ListTasks returns tasks visible to the actor. Team members only see
// tasks assigned to them.
func (s *TaskService) ListTasks(input ListTasksInput) ([]models.Task, int64, error) {
	filter := repository.TaskFilter{
		ProjectID: input.ProjectID,
		Status:    input.Status,
		Page:      input.Page,
		PageSize:  input.PageSize,
	}
	if input.ActorRole == models.RoleTeamMember {
		filter.AssignedToUserID = &input.ActorID
	}

	tasks, total, err := s.taskRepo.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, total, nil
}

func (s *TaskService) verifyResources(resourceIDs []uint64) error {
	ids := uniqueUint64(resourceIDs)
	count, err := s.taskRepo.CountResourcesByIDs(ids)
	if err != nil {
		return fmt.Errorf("failed to verify resources: %w", err)
	}
	if int(count) != len(ids) {
		return ErrUnknownResource
	}
	return nil
}

// uniqueUint64 removes duplicate values from a slice of uint64
func uniqueUint64(values []uint64) []uint64 {
	seen := make(map[uint64]struct{}, len(values))
	result := make([]uint64, 0, len(values))

	for _, v := range values {
		if _, exists := seen[v]; exists {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}

	return result
}
