package repository

import (
	"github.com/hollandale/planfreeze-api/internal/models"
	"gorm.io/gorm"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

// FindByID finds a task by ID with optional preloading
func (r *GormTaskRepository) FindByID(id uint64, preload ...string) (*models.Task, error) {
	var task models.Task
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&task, id).Error; err != nil {
		return nil, err
	}

	return &task, nil
}

// List retrieves tasks with filtering and pagination
func (r *GormTaskRepository) List(filter TaskFilter) ([]models.Task, int64, error) {
	var tasks []models.Task

	query := r.db.Model(&models.Task{})

	if filter.ProjectID != nil {
		query = query.Where("tasks.project_id = ?", *filter.ProjectID)
	}
	if filter.AssignedToUserID != nil {
		query = query.Where("tasks.assigned_to_user_id = ?", *filter.AssignedToUserID)
	}
	if filter.Status != nil {
		query = query.Where("tasks.status = ?", *filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order("tasks.created_at DESC")
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		listQuery = listQuery.Offset(offset).Limit(filter.PageSize)
	}

	if err := listQuery.Preload("Resources").Find(&tasks).Error; err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

// UpdateUnfrozen applies updates to a task unless it is frozen.
// The frozen check rides on the UPDATE's WHERE clause: a row that froze
// after our last read simply matches nothing, and the follow-up read
// tells frozen apart from missing. Resource replacement happens in the
// same transaction, so the row lock taken by the UPDATE keeps a
// concurrent freeze out until commit.
func (r *GormTaskRepository) UpdateUnfrozen(id uint64, updates map[string]any, resourceIDs []uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			res := tx.Model(&models.Task{}).
				Where("id = ? AND is_frozen = ?", id, false).
				Updates(updates)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return frozenOrMissing(tx, id)
			}
		} else {
			if err := frozenOrMissing(tx, id); err != nil {
				return err
			}
		}

		if resourceIDs == nil {
			return nil
		}

		task := models.Task{ID: id}
		if len(resourceIDs) == 0 {
			return tx.Model(&task).Association("Resources").Clear()
		}

		resources := make([]models.Resource, len(resourceIDs))
		for i, rid := range resourceIDs {
			resources[i] = models.Resource{ID: rid}
		}
		return tx.Model(&task).Association("Resources").Replace(&resources)
	})
}

// DeleteUnfrozen soft deletes a task unless it is frozen
func (r *GormTaskRepository) DeleteUnfrozen(id uint64) error {
	res := r.db.Where("is_frozen = ?", false).Delete(&models.Task{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		if err := frozenOrMissing(r.db, id); err != nil {
			return err
		}
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CountResourcesByIDs counts how many of the given resource IDs exist
func (r *GormTaskRepository) CountResourcesByIDs(resourceIDs []uint64) (int64, error) {
	var count int64
	err := r.db.Model(&models.Resource{}).
		Where("id IN ?", resourceIDs).
		Count(&count).Error
	return count, err
}

// frozenOrMissing resolves why a guarded mutation matched no rows.
// Returns gorm.ErrRecordNotFound for a missing task, ErrTaskFrozen for a
// frozen one, and nil when the row exists unfrozen (no-op update).
func frozenOrMissing(tx *gorm.DB, id uint64) error {
	var task models.Task
	if err := tx.First(&task, id).Error; err != nil {
		return err
	}
	if task.IsFrozen {
		return ErrTaskFrozen
	}
	return nil
}
