package models

import (
	"time"

	"gorm.io/gorm"
)

type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

// ValidTaskStatus reports whether s is one of the known task statuses.
func ValidTaskStatus(s TaskStatus) bool {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusCompleted:
		return true
	}
	return false
}

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

// ValidTaskPriority reports whether p is one of the known task priorities.
func ValidTaskPriority(p TaskPriority) bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return true
	}
	return false
}

type Task struct {
	ID                     uint64         `gorm:"primarykey" json:"id"`
	Name                   string         `gorm:"type:varchar(255);not null" json:"name"`
	Description            string         `gorm:"type:text" json:"description"`
	ProjectID              uint64         `gorm:"not null;index" json:"project_id"`
	Status                 TaskStatus     `gorm:"type:varchar(20);not null;default:'todo'" json:"status"`
	Priority               TaskPriority   `gorm:"type:varchar(20);not null;default:'medium'" json:"priority"`
	AssignedToUserID       *uint64        `gorm:"index" json:"assigned_to_user_id"`
	StartDate              *time.Time     `json:"start_date"`
	EndDate                *time.Time     `json:"end_date"`
	ExpectedCompletionDate *time.Time     `json:"expected_completion_date"`
	RealizedCompletionDate *time.Time     `json:"realized_completion_date"`
	IsFrozen               bool           `gorm:"not null;default:false" json:"is_frozen"`
	CreatedAt              time.Time      `json:"created_at"`
	UpdatedAt              time.Time      `json:"updated_at"`
	DeletedAt              gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Project    Project    `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	AssignedTo *User      `gorm:"foreignKey:AssignedToUserID" json:"assigned_to,omitempty"`
	Resources  []Resource `gorm:"many2many:task_resources" json:"resources,omitempty"`
}

// TaskSnapshot is the point-in-time copy of a task's own fields that a
// baseline records. IsFrozen always reflects the pre-freeze value.
type TaskSnapshot struct {
	ID                     uint64       `json:"id"`
	Name                   string       `json:"name"`
	Description            string       `json:"description"`
	ProjectID              uint64       `json:"project_id"`
	Status                 TaskStatus   `json:"status"`
	Priority               TaskPriority `json:"priority"`
	AssignedToUserID       *uint64      `json:"assigned_to_user_id"`
	AssignedResourceIDs    []uint64     `json:"assigned_resource_ids"`
	StartDate              *time.Time   `json:"start_date"`
	EndDate                *time.Time   `json:"end_date"`
	ExpectedCompletionDate *time.Time   `json:"expected_completion_date"`
	RealizedCompletionDate *time.Time   `json:"realized_completion_date"`
	IsFrozen               bool         `json:"is_frozen"`
	CreatedAt              time.Time    `json:"created_at"`
	UpdatedAt              time.Time    `json:"updated_at"`
}

// Snapshot copies the task's current field values. Resources must be
// preloaded for the resource ids to be captured.
func (t *Task) Snapshot() TaskSnapshot {
	resourceIDs := make([]uint64, 0, len(t.Resources))
	for _, r := range t.Resources {
		resourceIDs = append(resourceIDs, r.ID)
	}

	return TaskSnapshot{
		ID:                     t.ID,
		Name:                   t.Name,
		Description:            t.Description,
		ProjectID:              t.ProjectID,
		Status:                 t.Status,
		Priority:               t.Priority,
		AssignedToUserID:       t.AssignedToUserID,
		AssignedResourceIDs:    resourceIDs,
		StartDate:              t.StartDate,
		EndDate:                t.EndDate,
		ExpectedCompletionDate: t.ExpectedCompletionDate,
		RealizedCompletionDate: t.RealizedCompletionDate,
		IsFrozen:               false,
		CreatedAt:              t.CreatedAt,
		UpdatedAt:              t.UpdatedAt,
	}
}
