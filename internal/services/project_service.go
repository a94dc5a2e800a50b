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
	ErrProjectNotFound      = errors.New("project not found")
	ErrProjectNameRequired  = errors.New("name is required")
	ErrInvalidProjectStatus = errors.New("invalid project status")
)

// ProjectService handles project business logic
type ProjectService struct {
	projectRepo repository.ProjectRepository
}

// NewProjectService creates a new ProjectService
func NewProjectService(projectRepo repository.ProjectRepository) *ProjectService {
	return &ProjectService{projectRepo: projectRepo}
}

// CreateProjectInput represents input for creating a project
type CreateProjectInput struct {
	Name        string
	Description string
	Status      models.ProjectStatus
	Budget      float64
	StartDate   *time.Time
	EndDate     *time.Time
	OwnerID     uint64
}

// UpdateProjectInput represents a patch for a project. Nil fields are left
// untouched.
type UpdateProjectInput struct {
	Name        *string
	Description *string
	Status      *models.ProjectStatus
	Budget      *float64
	StartDate   *time.Time
	EndDate     *time.Time
}

// ListProjectsInput represents filters for listing projects
type ListProjectsInput struct {
	ActorID   uint64
	ActorRole models.UserRole
	Page      int
	PageSize  int
}

// CreateProject creates a new project owned by the actor
func (s *ProjectService) CreateProject(input CreateProjectInput) (*models.Project, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrProjectNameRequired
	}

	if input.Status == "" {
		input.Status = models.ProjectStatusActive
	} else if !models.ValidProjectStatus(input.Status) {
		return nil, ErrInvalidProjectStatus
	}

	project := &models.Project{
		Name:        name,
		Description: input.Description,
		Status:      input.Status,
		Budget:      input.Budget,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		OwnerID:     input.OwnerID,
	}

	if err := s.projectRepo.Create(project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	return project, nil
}

// GetProject returns a project by ID
func (s *ProjectService) GetProject(projectID uint64) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	return project, nil
}

// ListProjects returns projects visible to the actor. Team members only
// see projects containing tasks assigned to them.
func (s *ProjectService) ListProjects(input ListProjectsInput) ([]models.Project, int64, error) {
	filter := repository.ProjectFilter{
		Page:     input.Page,
		PageSize: input.PageSize,
	}

	if input.ActorRole == models.RoleTeamMember {
		ids, err := s.projectRepo.IDsWithTasksAssignedTo(input.ActorID)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to resolve visible projects: %w", err)
		}
		if ids == nil {
			ids = []uint64{}
		}
		filter.IDs = ids
	}

	projects, total, err := s.projectRepo.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, total, nil
}

// UpdateProject applies a patch to a project
func (s *ProjectService) UpdateProject(projectID uint64, input UpdateProjectInput) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrProjectNameRequired
		}
		project.Name = name
	}
	if input.Description != nil {
		project.Description = *input.Description
	}
	if input.Status != nil {
		if !models.ValidProjectStatus(*input.Status) {
			return nil, ErrInvalidProjectStatus
		}
		project.Status = *input.Status
	}
	if input.Budget != nil {
		project.Budget = *input.Budget
	}
	if input.StartDate != nil {
		project.StartDate = input.StartDate
	}
	if input.EndDate != nil {
		project.EndDate = input.EndDate
	}

	if err := s.projectRepo.Update(project); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	return project, nil
}

// DeleteProject soft deletes a project
func (s *ProjectService) DeleteProject(projectID uint64) error {
	if err := s.projectRepo.Delete(projectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("failed to delete project: %w", err)
	}
	return nil
}
