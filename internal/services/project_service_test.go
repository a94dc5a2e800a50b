package services

import (
	"testing"

	"github.com/hollandale/planfreeze-api/internal/models"
	"github.com/hollandale/planfreeze-api/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// ProjectServiceTestSuite defines the test suite for ProjectService
type ProjectServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *ProjectService
}

// SetupTest runs before each test
func (suite *ProjectServiceTestSuite) SetupTest() {
	var err error

	// Create in-memory SQLite database
	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	// Run migrations
	err = suite.db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.Task{},
	)
	suite.Require().NoError(err)

	suite.service = NewProjectService(repository.NewProjectRepository(suite.db))
}

// TearDownTest runs after each test
func (suite *ProjectServiceTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

// Helper functions to create test data
func (suite *ProjectServiceTestSuite) createTestUser(username string, role models.UserRole) *models.User {
	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "hashedpassword",
		Role:         role,
	}
	suite.db.Create(user)
	return user
}

func (suite *ProjectServiceTestSuite) createTestProject(name string, ownerID uint64) *models.Project {
	project := &models.Project{
		Name:    name,
		Status:  models.ProjectStatusActive,
		OwnerID: ownerID,
	}
	suite.db.Create(project)
	return project
}

// TestCreateProject_Success tests creating a project
func (suite *ProjectServiceTestSuite) TestCreateProject_Success() {
	owner := suite.createTestUser("owner", models.RoleProjectManager)

	project, err := suite.service.CreateProject(CreateProjectInput{
		Name:    "Website",
		Budget:  5000,
		OwnerID: owner.ID,
	})

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Website", project.Name)
	assert.Equal(suite.T(), models.ProjectStatusActive, project.Status)
}

// TestCreateProject_MissingName tests creating a project without a name
func (suite *ProjectServiceTestSuite) TestCreateProject_MissingName() {
	owner := suite.createTestUser("owner", models.RoleProjectManager)

	_, err := suite.service.CreateProject(CreateProjectInput{
		Name:    "  ",
		OwnerID: owner.ID,
	})

	assert.ErrorIs(suite.T(), err, ErrProjectNameRequired)
}

// TestGetProject_NotFound tests fetching a missing project
func (suite *ProjectServiceTestSuite) TestGetProject_NotFound() {
	_, err := suite.service.GetProject(9999)

	assert.ErrorIs(suite.T(), err, ErrProjectNotFound)
}

// TestUpdateProject_Success tests updating a project
func (suite *ProjectServiceTestSuite) TestUpdateProject_Success() {
	owner := suite.createTestUser("owner", models.RoleProjectManager)
	project := suite.createTestProject("Website", owner.ID)

	status := models.ProjectStatusOnHold
	updated, err := suite.service.UpdateProject(project.ID, UpdateProjectInput{Status: &status})

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.ProjectStatusOnHold, updated.Status)
}

// TestUpdateProject_InvalidStatus tests updating with an unknown status
func (suite *ProjectServiceTestSuite) TestUpdateProject_InvalidStatus() {
	owner := suite.createTestUser("owner", models.RoleProjectManager)
	project := suite.createTestProject("Website", owner.ID)

	status := models.ProjectStatus("paused")
	_, err := suite.service.UpdateProject(project.ID, UpdateProjectInput{Status: &status})

	assert.ErrorIs(suite.T(), err, ErrInvalidProjectStatus)
}

// TestListProjects_TeamMemberFilter tests that team members only see projects
// where they have assigned tasks
func (suite *ProjectServiceTestSuite) TestListProjects_TeamMemberFilter() {
	owner := suite.createTestUser("owner", models.RoleProjectManager)
	member := suite.createTestUser("member", models.RoleTeamMember)
	visible := suite.createTestProject("Visible", owner.ID)
	suite.createTestProject("Hidden", owner.ID)

	task := &models.Task{
		Name:             "Assigned task",
		ProjectID:        visible.ID,
		Status:           models.TaskStatusTodo,
		Priority:         models.TaskPriorityMedium,
		AssignedToUserID: &member.ID,
	}
	suite.db.Create(task)

	projects, total, err := suite.service.ListProjects(ListProjectsInput{
		ActorID:   member.ID,
		ActorRole: models.RoleTeamMember,
	})

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(1), total)
	assert.Len(suite.T(), projects, 1)
	assert.Equal(suite.T(), "Visible", projects[0].Name)
}

// TestListProjects_TeamMemberNoAssignments tests that a team member with no
// assigned tasks sees no projects
func (suite *ProjectServiceTestSuite) TestListProjects_TeamMemberNoAssignments() {
	owner := suite.createTestUser("owner", models.RoleProjectManager)
	member := suite.createTestUser("member", models.RoleTeamMember)
	suite.createTestProject("Hidden", owner.ID)

	projects, total, err := suite.service.ListProjects(ListProjectsInput{
		ActorID:   member.ID,
		ActorRole: models.RoleTeamMember,
	})

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(0), total)
	assert.Empty(suite.T(), projects)
}

// TestDeleteProject_Success tests deleting a project
func (suite *ProjectServiceTestSuite) TestDeleteProject_Success() {
	owner := suite.createTestUser("owner", models.RoleProjectManager)
	project := suite.createTestProject("Doomed", owner.ID)

	err := suite.service.DeleteProject(project.ID)

	assert.NoError(suite.T(), err)

	var reloaded models.Project
	err = suite.db.First(&reloaded, project.ID).Error
	assert.Error(suite.T(), err) // Soft deleted
}

// TestSuite runs the test suite
func TestProjectServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ProjectServiceTestSuite))
}
