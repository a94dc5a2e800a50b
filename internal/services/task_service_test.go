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

// TaskServiceTestSuite defines the test suite for TaskService
type TaskServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *TaskService
}

// SetupTest runs before each test
func (suite *TaskServiceTestSuite) SetupTest() {
	var err error

	// Create in-memory SQLite database
	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	// Run migrations
	err = suite.db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.Task{},
		&models.Resource{},
		&models.Baseline{},
	)
	suite.Require().NoError(err)

	taskRepo := repository.NewTaskRepository(suite.db)
	projectRepo := repository.NewProjectRepository(suite.db)
	suite.service = NewTaskService(taskRepo, projectRepo)
}

// TearDownTest runs after each test
func (suite *TaskServiceTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

// Helper functions to create test data
func (suite *TaskServiceTestSuite) createTestUser(username string, role models.UserRole) *models.User {
	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "hashedpassword",
		Role:         role,
	}
	suite.db.Create(user)
	return user
}

func (suite *TaskServiceTestSuite) createTestProject(name string, ownerID uint64) *models.Project {
	project := &models.Project{
		Name:    name,
		Status:  models.ProjectStatusActive,
		OwnerID: ownerID,
	}
	suite.db.Create(project)
	return project
}

func (suite *TaskServiceTestSuite) createTestTask(name string, projectID uint64) *models.Task {
	task := &models.Task{
		Name:      name,
		ProjectID: projectID,
		Status:    models.TaskStatusTodo,
		Priority:  models.TaskPriorityMedium,
	}
	suite.db.Create(task)
	return task
}

func (suite *TaskServiceTestSuite) createTestResource(name string) *models.Resource {
	resource := &models.Resource{
		Name: name,
		Type: models.ResourceTypePerson,
	}
	suite.db.Create(resource)
	return resource
}

func (suite *TaskServiceTestSuite) freezeTask(taskID uint64) {
	err := suite.db.Model(&models.Task{}).Where("id = ?", taskID).Update("is_frozen", true).Error
	suite.Require().NoError(err)
}

// TestCreateTask_Defaults tests that a new task starts mutable with default status and priority
func (suite *TaskServiceTestSuite) TestCreateTask_Defaults() {
	owner := suite.createTestUser("owner", models.RoleProjectManager)
	project := suite.createTestProject("Website", owner.ID)

	task, err := suite.service.CreateTask(CreateTaskInput{
		Name:      "  Write copy  ",
		ProjectID: project.ID,
	})

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Write copy", task.Name)
	assert.Equal(suite.T(), models.TaskStatusTodo, task.Status)
	assert.Equal(suite.T(), models.TaskPriorityMedium, task.Priority)
	assert.False(suite.T(), task.IsFrozen)
}

// TestCreateTask_MissingName tests task creation without a name
func (suite *TaskServiceTestSuite) TestCreateTask_MissingName() {
	owner := suite.createTestUser("owner", models.RoleProjectManager)
	project := suite.createTestProject("Website", owner.ID)

	_, err := suite.service.CreateTask(CreateTaskInput{
		Name:      "   ",
		ProjectID: project.ID,
	})

	assert.ErrorIs(suite.T(), err, ErrTaskNameRequired)
}

// TestCreateTask_UnknownProject tests task creation against a missing project
func (suite *TaskServiceTestSuite) TestCreateTask_UnknownProject() {
	_, err := suite.service.CreateTask(CreateTaskInput{
		Name:      "Orphan",
		ProjectID: 9999,
	})

	assert.ErrorIs(suite.T(), err, ErrProjectNotFound)
}

// TestCreateTask_InvalidStatus tests task creation with an unknown status
func (suite *TaskServiceTestSuite) TestCreateTask_InvalidStatus() {
	owner := suite.createTestUser("owner", models.RoleProjectManager)
	project := suite.createTestProject("Website", owner.ID)

	_, err := suite.service.CreateTask(CreateTaskInput{
		Name:      "Bad status",
		ProjectID: project.ID,
		Status:    models.TaskStatus("cancelled"),
	})

	assert.ErrorIs(suite.T(), err, ErrInvalidStatus)
}

// TestCreateTask_WithResources tests that resources are attached on create
func (suite *TaskServiceTestSuite) TestCreateTask_WithResources() {
	owner := suite.createTestUser("owner", models.RoleProjectManager)
	project := suite.createTestProject("Website", owner.ID)
	r1 := suite.createTestResource("Designer")
	r2 := suite.createTestResource("Laptop")

	task, err := suite.service.CreateTask(CreateTaskInput{
		Name:        "Design mockups",
		ProjectID:   project.ID,
		ResourceIDs: []uint64{r1.ID, r2.ID},
	})

	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), task.Resources, 2)
}

// TestCreateTask_UnknownResource tests task creation with a missing resource
func (suite *TaskServiceTestSuite) TestCreateTask_UnknownResource() {
	owner := suite.createTestUser("owner", models.RoleProjectManager)
	project := suite.createTestProject("Website", owner.ID)

	_, err := suite.service.CreateTask(CreateTaskInput{
		Name:        "Design mockups",
		ProjectID:   project.ID,
		ResourceIDs: []uint64{9999},
	})

	assert.ErrorIs(suite.T(), err, ErrUnknownResource)
}

// TestUpdateTask_Success tests a normal patch on a mutable task
func (suite *TaskServiceTestSuite) TestUpdateTask_Success() {
	owner := suite.createTestUser("owner", models.RoleProjectManager)
	project := suite.createTestProject("Website", owner.ID)
	task := suite.createTestTask("Old name", project.ID)

	newName := "New name"
	status := models.TaskStatusInProgress
	updated, err := suite.service.UpdateTask(task.ID, UpdateTaskInput{
		Name:   &newName,
		Status: &status,
	})

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "New name", updated.Name)
	assert.Equal(suite.T(), models.TaskStatusInProgress, updated.Status)
}

// TestUpdateTask_Frozen tests that a patch on a frozen task is rejected
// and the live row stays unchanged
func (suite *TaskServiceTestSuite) TestUpdateTask_Frozen() {
	owner := suite.createTestUser("owner", models.RoleProjectManager)
	project := suite.createTestProject("Website", owner.ID)
	task := suite.createTestTask("Locked", project.ID)
	suite.freezeTask(task.ID)

	newName := "Renamed"
	status := models.TaskStatusCompleted
	_, err := suite.service.UpdateTask(task.ID, UpdateTaskInput{
		Name:   &newName,
		Status: &status,
	})

	assert.ErrorIs(suite.T(), err, ErrTaskFrozen)

	// Live row must be untouched
	var reloaded models.Task
	suite.Require().NoError(suite.db.First(&reloaded, task.ID).Error)
	assert.Equal(suite.T(), "Locked", reloaded.Name)
	assert.Equal(suite.T(), models.TaskStatusTodo, reloaded.Status)
}

// TestUpdateTask_FrozenResources tests that resource replacement on a frozen
// task is rejected
func (suite *TaskServiceTestSuite) TestUpdateTask_FrozenResources() {
	owner := suite.createTestUser("owner", models.RoleProjectManager)
	project := suite.createTestProject("Website", owner.ID)
	resource := suite.createTestResource("Designer")
	task := suite.createTestTask("Locked", project.ID)
	suite.freezeTask(task.ID)

	_, err := suite.service.UpdateTask(task.ID, UpdateTaskInput{
		ResourceIDs: []uint64{resource.ID},
	})

	assert.ErrorIs(suite.T(), err, ErrTaskFrozen)
}

// TestUpdateTask_EmptyName tests that a blank name patch is rejected
func (suite *TaskServiceTestSuite) TestUpdateTask_EmptyName() {
	owner := suite.createTestUser("owner", models.RoleProjectManager)
	project := suite.createTestProject("Website", owner.ID)
	task := suite.createTestTask("Task", project.ID)

	blank := "   "
	_, err := suite.service.UpdateTask(task.ID, UpdateTaskInput{Name: &blank})

	assert.ErrorIs(suite.T(), err, ErrTaskNameEmpty)
}

// TestUpdateTask_NotFound tests a patch against a missing task
func (suite *TaskServiceTestSuite) TestUpdateTask_NotFound() {
	name := "Ghost"
	_, err := suite.service.UpdateTask(9999, UpdateTaskInput{Name: &name})

	assert.ErrorIs(suite.T(), err, ErrTaskNotFound)
}

// TestUpdateTask_ClearAssignee tests clearing the assignee with an explicit null
func (suite *TaskServiceTestSuite) TestUpdateTask_ClearAssignee() {
	owner := suite.createTestUser("owner", models.RoleProjectManager)
	member := suite.createTestUser("member", models.RoleTeamMember)
	project := suite.createTestProject("Website", owner.ID)
	task := suite.createTestTask("Assigned", project.ID)
	suite.db.Model(task).Update("assigned_to_user_id", member.ID)

	updated, err := suite.service.UpdateTask(task.ID, UpdateTaskInput{ClearAssignee: true})

	assert.NoError(suite.T(), err)
	assert.Nil(suite.T(), updated.AssignedToUserID)
}

// TestDeleteTask_Success tests deleting a mutable task
func (suite *TaskServiceTestSuite) TestDeleteTask_Success() {
	owner := suite.createTestUser("owner", models.RoleProjectManager)
	project := suite.createTestProject("Website", owner.ID)
	task := suite.createTestTask("Doomed", project.ID)

	err := suite.service.DeleteTask(task.ID)

	assert.NoError(suite.T(), err)

	var reloaded models.Task
	err = suite.db.First(&reloaded, task.ID).Error
	assert.Error(suite.T(), err) // Soft deleted
}

// TestDeleteTask_Frozen tests that a frozen task cannot be deleted
func (suite *TaskServiceTestSuite) TestDeleteTask_Frozen() {
	owner := suite.createTestUser("owner", models.RoleProjectManager)
	project := suite.createTestProject("Website", owner.ID)
	task := suite.createTestTask("Anchor", project.ID)
	suite.freezeTask(task.ID)

	err := suite.service.DeleteTask(task.ID)

	assert.ErrorIs(suite.T(), err, ErrTaskFrozen)

	var reloaded models.Task
	assert.NoError(suite.T(), suite.db.First(&reloaded, task.ID).Error)
}

// TestDeleteTask_NotFound tests deleting a missing task
func (suite *TaskServiceTestSuite) TestDeleteTask_NotFound() {
	err := suite.service.DeleteTask(9999)

	assert.ErrorIs(suite.T(), err, ErrTaskNotFound)
}

// TestListTasks_TeamMemberFilter tests that team members only see their own tasks
func (suite *TaskServiceTestSuite) TestListTasks_TeamMemberFilter() {
	owner := suite.createTestUser("owner", models.RoleProjectManager)
	member := suite.createTestUser("member", models.RoleTeamMember)
	project := suite.createTestProject("Website", owner.ID)

	mine := suite.createTestTask("Mine", project.ID)
	suite.db.Model(mine).Update("assigned_to_user_id", member.ID)
	suite.createTestTask("Someone else's", project.ID)

	tasks, total, err := suite.service.ListTasks(ListTasksInput{
		ActorID:   member.ID,
		ActorRole: models.RoleTeamMember,
	})

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(1), total)
	assert.Len(suite.T(), tasks, 1)
	assert.Equal(suite.T(), "Mine", tasks[0].Name)
}

// TestListTasks_ManagerSeesAll tests that managers see every task
func (suite *TaskServiceTestSuite) TestListTasks_ManagerSeesAll() {
	owner := suite.createTestUser("owner", models.RoleProjectManager)
	project := suite.createTestProject("Website", owner.ID)
	suite.createTestTask("One", project.ID)
	suite.createTestTask("Two", project.ID)

	_, total, err := suite.service.ListTasks(ListTasksInput{
		ActorID:   owner.ID,
		ActorRole: models.RoleProjectManager,
	})

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(2), total)
}

// TestListTasks_StatusFilter tests filtering by status
func (suite *TaskServiceTestSuite) TestListTasks_StatusFilter() {
	owner := suite.createTestUser("owner", models.RoleProjectManager)
	project := suite.createTestProject("Website", owner.ID)
	suite.createTestTask("Todo", project.ID)
	done := suite.createTestTask("Done", project.ID)
	suite.db.Model(done).Update("status", models.TaskStatusCompleted)

	status := models.TaskStatusCompleted
	tasks, total, err := suite.service.ListTasks(ListTasksInput{
		ActorID:   owner.ID,
		ActorRole: models.RoleProjectManager,
		Status:    &status,
	})

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(1), total)
	assert.Equal(suite.T(), "Done", tasks[0].Name)
}

// TestSuite runs the test suite
func TestTaskServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TaskServiceTestSuite))
}
