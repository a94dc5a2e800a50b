package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hollandale/planfreeze-api/internal/models"
	"github.com/hollandale/planfreeze-api/internal/repository"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var ErrTaskAlreadyFrozen = errors.New("task is already frozen")

// BaselineService is the sole writer of baseline records and the sole
// trigger of a task's one-way mutable-to-frozen transition.
type BaselineService struct {
	baselineRepo repository.BaselineRepository
	projectRepo  repository.ProjectRepository
	now          func() time.Time
}

// NewBaselineService creates a new BaselineService
func NewBaselineService(baselineRepo repository.BaselineRepository, projectRepo repository.ProjectRepository) *BaselineService {
	return &BaselineService{
		baselineRepo: baselineRepo,
		projectRepo:  projectRepo,
		now:          time.Now,
	}
}

// FreezeTask snapshots the task's current state into a baseline and marks
// the task frozen, atomically with respect to concurrent updates. A second
// freeze fails with ErrTaskAlreadyFrozen and records nothing. The baseline
// name defaults to a timestamp-derived label when the caller omits one.
func (s *BaselineService) FreezeTask(taskID uint64, name string, actorID uint64) (*models.Baseline, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = "Baseline - " + s.now().UTC().Format(time.RFC3339)
	}

	baseline, err := s.baselineRepo.FreezeTask(taskID, name, actorID)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, ErrTaskNotFound
		case errors.Is(err, repository.ErrTaskAlreadyFrozen):
			return nil, ErrTaskAlreadyFrozen
		}
		return nil, fmt.Errorf("failed to freeze task: %w", err)
	}

	return baseline, nil
}

// ListTaskBaselines lists the baselines recorded for a task
func (s *BaselineService) ListTaskBaselines(taskID uint64) ([]models.Baseline, error) {
	baselines, err := s.baselineRepo.ListByTaskID(taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to list baselines: %w", err)
	}
	return baselines, nil
}

// SnapshotProject records an informational baseline of a project's current
// fields. Unlike a task freeze this does not lock the project.
func (s *BaselineService) SnapshotProject(projectID uint64, name string, actorID uint64) (*models.ProjectBaseline, error) {
	project, err := s.projectRepo.FindByID(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = "Baseline - " + s.now().UTC().Format(time.RFC3339)
	}

	snapshot, err := json.Marshal(project.Snapshot())
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}

	baseline := &models.ProjectBaseline{
		ProjectID:      projectID,
		Name:           name,
		SnapshotData:   datatypes.JSON(snapshot),
		FrozenByUserID: actorID,
	}
	if err := s.baselineRepo.CreateProjectBaseline(baseline); err != nil {
		return nil, fmt.Errorf("failed to create project baseline: %w", err)
	}

	return baseline, nil
}

// ListProjectBaselines lists the baselines recorded for a project
func (s *BaselineService) ListProjectBaselines(projectID uint64) ([]models.ProjectBaseline, error) {
	baselines, err := s.baselineRepo.ListByProjectID(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list project baselines: %w", err)
	}
	return baselines, nil
}
