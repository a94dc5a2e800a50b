package repository

import (
	"encoding/json"
	"fmt"

	"github.com/hollandale/planfreeze-api/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// GormBaselineRepository is a GORM implementation of BaselineRepository
type GormBaselineRepository struct {
	db *gorm.DB
}

// NewBaselineRepository creates a new BaselineRepository
func NewBaselineRepository(db *gorm.DB) BaselineRepository {
	return &GormBaselineRepository{db: db}
}

// FreezeTask atomically transitions a task to frozen and records its
// baseline. The freeze is claimed with a single conditional UPDATE; only
// one caller can ever win it, so concurrent freezes resolve to exactly one
// baseline and the loser observes ErrTaskAlreadyFrozen. The snapshot is
// read after the claim, inside the same transaction: the row can no longer
// change, so the captured values are exactly the pre-freeze state.
func (r *GormBaselineRepository) FreezeTask(taskID uint64, name string, frozenByUserID uint64) (*models.Baseline, error) {
	var baseline models.Baseline

	err := r.db.Transaction(func(tx *gorm.DB) error {
		// UpdateColumn leaves updated_at untouched; the snapshot must
		// carry the task's timestamps as they were before the freeze.
		res := tx.Model(&models.Task{}).
			Where("id = ? AND is_frozen = ?", taskID, false).
			UpdateColumn("is_frozen", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&models.Task{}).Where("id = ?", taskID).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return gorm.ErrRecordNotFound
			}
			return ErrTaskAlreadyFrozen
		}

		var task models.Task
		if err := tx.Preload("Resources").First(&task, taskID).Error; err != nil {
			return err
		}

		snapshot, err := json.Marshal(task.Snapshot())
		if err != nil {
			return fmt.Errorf("marshal snapshot: %w", err)
		}

		baseline = models.Baseline{
			TaskID:         taskID,
			Name:           name,
			SnapshotData:   datatypes.JSON(snapshot),
			FrozenByUserID: frozenByUserID,
		}
		return tx.Create(&baseline).Error
	})
	if err != nil {
		return nil, err
	}

	return &baseline, nil
}

// FindByTaskID returns the baseline recorded for a task, if any
func (r *GormBaselineRepository) FindByTaskID(taskID uint64) (*models.Baseline, error) {
	var baseline models.Baseline
	if err := r.db.Where("task_id = ?", taskID).First(&baseline).Error; err != nil {
		return nil, err
	}
	return &baseline, nil
}

// ListByTaskID lists baselines recorded for a task
func (r *GormBaselineRepository) ListByTaskID(taskID uint64) ([]models.Baseline, error) {
	var baselines []models.Baseline
	if err := r.db.Where("task_id = ?", taskID).Order("created_at DESC").Find(&baselines).Error; err != nil {
		return nil, err
	}
	return baselines, nil
}

// CreateProjectBaseline records an informational project snapshot
func (r *GormBaselineRepository) CreateProjectBaseline(baseline *models.ProjectBaseline) error {
	return r.db.Create(baseline).Error
}

// ListByProjectID lists baselines recorded for a project
func (r *GormBaselineRepository) ListByProjectID(projectID uint64) ([]models.ProjectBaseline, error) {
	var baselines []models.ProjectBaseline
	if err := r.db.Where("project_id = ?", projectID).Order("created_at DESC").Find(&baselines).Error; err != nil {
		return nil, err
	}
	return baselines, nil
}
