package repository

import (
	"errors"

	"github.com/hollandale/planfreeze-api/internal/models"
)

// Frozen-task guard outcomes. Data access methods return these instead of
// applying a mutation so callers can tell a frozen row from a missing one.
var (
	// ErrTaskFrozen is returned when a mutation targets a frozen task.
	ErrTaskFrozen = errors.New("task is frozen")

	// ErrTaskAlreadyFrozen is returned when a freeze targets a task that is
	// already frozen.
	ErrTaskAlreadyFrozen = errors.New("task is already frozen")
)

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Task, error)

	// List retrieves tasks with filtering and pagination
	List(filter TaskFilter) ([]models.Task, int64, error)

	// UpdateUnfrozen applies column updates and an optional resource
	// assignment replacement to a task, guarded against frozen rows.
	// The guard is a single conditional UPDATE, not a read followed by a
	// write, so a concurrent freeze cannot slip in between.
	// resourceIDs replaces the assigned resource set when non-nil.
	UpdateUnfrozen(id uint64, updates map[string]any, resourceIDs []uint64) error

	// DeleteUnfrozen soft deletes a task unless it is frozen.
	DeleteUnfrozen(id uint64) error

	// CountResourcesByIDs counts how many of the given resource IDs exist
	CountResourcesByIDs(resourceIDs []uint64) (int64, error)
}

// TaskFilter holds filtering options for listing tasks
type TaskFilter struct {
	ProjectID        *uint64
	AssignedToUserID *uint64
	Status           *models.TaskStatus
	Page             int
	PageSize         int
}

// BaselineRepository defines the interface for baseline data access.
// Baselines are write-once; there are no update or delete methods.
type BaselineRepository interface {
	// FreezeTask atomically marks the task frozen and records its baseline.
	// Returns gorm.ErrRecordNotFound for an unknown task and
	// ErrTaskAlreadyFrozen when the task was frozen before the call.
	FreezeTask(taskID uint64, name string, frozenByUserID uint64) (*models.Baseline, error)

	// FindByTaskID returns the baseline recorded for a task, if any
	FindByTaskID(taskID uint64) (*models.Baseline, error)

	// ListByTaskID lists baselines recorded for a task
	ListByTaskID(taskID uint64) ([]models.Baseline, error)

	// CreateProjectBaseline records an informational project snapshot
	CreateProjectBaseline(baseline *models.ProjectBaseline) error

	// ListByProjectID lists baselines recorded for a project
	ListByProjectID(projectID uint64) ([]models.ProjectBaseline, error)
}

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	// Create creates a new project
	Create(project *models.Project) error

	// FindByID finds a project by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Project, error)

	// List retrieves projects, optionally restricted to a set of IDs
	List(filter ProjectFilter) ([]models.Project, int64, error)

	// Update updates a project
	Update(project *models.Project) error

	// Delete soft deletes a project
	Delete(id uint64) error

	// Exists reports whether a project with the given ID exists
	Exists(id uint64) (bool, error)

	// IDsWithTasksAssignedTo returns the IDs of projects containing at
	// least one task assigned to the user
	IDsWithTasksAssignedTo(userID uint64) ([]uint64, error)
}

// ProjectFilter holds filtering options for listing projects
type ProjectFilter struct {
	IDs      []uint64
	Page     int
	PageSize int
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// List lists all users
	List() ([]models.User, error)

	// Update updates a user
	Update(user *models.User) error

	// Delete soft deletes a user
	Delete(id uint64) error
}
