package models

import (
	"time"

	"gorm.io/datatypes"
)

// Baseline is the immutable snapshot record produced by freezing a task.
// Rows are write-once: created during the freeze transaction and never
// updated or deleted afterwards. The unique index on TaskID guarantees at
// most one baseline per task at the storage level.
type Baseline struct {
	ID             uint64         `gorm:"primarykey" json:"id"`
	TaskID         uint64         `gorm:"not null;uniqueIndex" json:"task_id"`
	Name           string         `gorm:"type:varchar(255);not null" json:"name"`
	SnapshotData   datatypes.JSON `gorm:"not null" json:"snapshot_data"`
	FrozenByUserID uint64         `gorm:"not null" json:"frozen_by_user_id"`
	CreatedAt      time.Time      `json:"created_at"`
}

// ProjectBaseline is an informational snapshot of a project's fields.
// Unlike task baselines it does not freeze anything; a project may have
// many baselines.
type ProjectBaseline struct {
	ID             uint64         `gorm:"primarykey" json:"id"`
	ProjectID      uint64         `gorm:"not null;index" json:"project_id"`
	Name           string         `gorm:"type:varchar(255);not null" json:"name"`
	SnapshotData   datatypes.JSON `gorm:"not null" json:"snapshot_data"`
	FrozenByUserID uint64         `gorm:"not null" json:"frozen_by_user_id"`
	CreatedAt      time.Time      `json:"created_at"`
}
