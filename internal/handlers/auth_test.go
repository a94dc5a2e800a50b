package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hollandale/planfreeze-api/internal/middleware"
	"github.com/hollandale/planfreeze-api/internal/models"
	"github.com/hollandale/planfreeze-api/internal/repository"
	"github.com/hollandale/planfreeze-api/internal/services"
	"github.com/hollandale/planfreeze-api/internal/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// AuthHandlerTestSuite defines the test suite for AuthHandler
type AuthHandlerTestSuite struct {
	suite.Suite
	db     *gorm.DB
	tokens *token.Manager
	router *gin.Engine
}

// SetupTest runs before each test
func (suite *AuthHandlerTestSuite) SetupTest() {
	var err error

	// Create in-memory SQLite database
	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	// Run migrations
	err = suite.db.AutoMigrate(&models.User{})
	suite.Require().NoError(err)

	suite.tokens = token.NewManager("test-secret", time.Hour)
	authService := services.NewAuthService(repository.NewUserRepository(suite.db), suite.tokens)
	handler := NewAuthHandler(authService)

	// Set Gin to test mode
	gin.SetMode(gin.TestMode)

	suite.router = gin.New()
	auth := suite.router.Group("/api/auth")
	{
		auth.POST("/register", handler.Register)
		auth.POST("/login", handler.Login)
		auth.GET("/me", middleware.RequireAuth(suite.tokens), handler.GetCurrentUser)
	}
}

// TearDownTest runs after each test
func (suite *AuthHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

// Helper to perform a JSON request
func (suite *AuthHandlerTestSuite) request(method, url string, body interface{}, bearer string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, url, reader)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *AuthHandlerTestSuite) createTestUser(username, password string, role models.UserRole) *models.User {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	suite.Require().NoError(err)
	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: string(hash),
		Role:         role,
	}
	suite.db.Create(user)
	return user
}

// TestRegister_Success tests a successful registration
func (suite *AuthHandlerTestSuite) TestRegister_Success() {
	w := suite.request("POST", "/api/auth/register", map[string]interface{}{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "supersecret",
		"role":     "project_manager",
	}, "")

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "alice", response["username"])
	assert.Equal(suite.T(), "project_manager", response["role"])
	assert.NotContains(suite.T(), response, "password_hash")
}

// TestRegister_DefaultRole tests that registration defaults to team_member
func (suite *AuthHandlerTestSuite) TestRegister_DefaultRole() {
	w := suite.request("POST", "/api/auth/register", map[string]interface{}{
		"username": "bob",
		"email":    "bob@example.com",
		"password": "supersecret",
	}, "")

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "team_member", response["role"])
}

// TestRegister_DuplicateUsername tests registration with a taken username
func (suite *AuthHandlerTestSuite) TestRegister_DuplicateUsername() {
	suite.createTestUser("alice", "supersecret", models.RoleTeamMember)

	w := suite.request("POST", "/api/auth/register", map[string]interface{}{
		"username": "alice",
		"email":    "other@example.com",
		"password": "supersecret",
	}, "")

	assert.Equal(suite.T(), http.StatusConflict, w.Code)
	assert.Contains(suite.T(), w.Body.String(), "Username already exists")
}

// TestRegister_ShortPassword tests registration with a password below the minimum
func (suite *AuthHandlerTestSuite) TestRegister_ShortPassword() {
	w := suite.request("POST", "/api/auth/register", map[string]interface{}{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "short",
	}, "")

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

// TestRegister_InvalidRole tests registration with an unknown role
func (suite *AuthHandlerTestSuite) TestRegister_InvalidRole() {
	w := suite.request("POST", "/api/auth/register", map[string]interface{}{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "supersecret",
		"role":     "superuser",
	}, "")

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

// TestLogin_Success tests a successful login
func (suite *AuthHandlerTestSuite) TestLogin_Success() {
	suite.createTestUser("alice", "supersecret", models.RoleProjectManager)

	w := suite.request("POST", "/api/auth/login", map[string]interface{}{
		"username": "alice",
		"password": "supersecret",
	}, "")

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.NotEmpty(suite.T(), response["access_token"])

	user := response["user"].(map[string]interface{})
	assert.Equal(suite.T(), "alice", user["username"])
}

// TestLogin_WrongPassword tests login with a wrong password
func (suite *AuthHandlerTestSuite) TestLogin_WrongPassword() {
	suite.createTestUser("alice", "supersecret", models.RoleProjectManager)

	w := suite.request("POST", "/api/auth/login", map[string]interface{}{
		"username": "alice",
		"password": "wrongpassword",
	}, "")

	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)
	assert.Contains(suite.T(), w.Body.String(), "INVALID_CREDENTIALS")
}

// TestLogin_UnknownUser tests login for a user that does not exist
func (suite *AuthHandlerTestSuite) TestLogin_UnknownUser() {
	w := suite.request("POST", "/api/auth/login", map[string]interface{}{
		"username": "ghost",
		"password": "supersecret",
	}, "")

	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)
}

// TestGetCurrentUser_Success tests /me with a valid token
func (suite *AuthHandlerTestSuite) TestGetCurrentUser_Success() {
	user := suite.createTestUser("alice", "supersecret", models.RoleProjectManager)
	bearer, err := suite.tokens.Generate(user)
	suite.Require().NoError(err)

	w := suite.request("GET", "/api/auth/me", nil, bearer)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	err = json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "alice", response["username"])
}

// TestGetCurrentUser_NoToken tests /me without a token
func (suite *AuthHandlerTestSuite) TestGetCurrentUser_NoToken() {
	w := suite.request("GET", "/api/auth/me", nil, "")

	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)
}

// TestGetCurrentUser_BadToken tests /me with a garbage token
func (suite *AuthHandlerTestSuite) TestGetCurrentUser_BadToken() {
	w := suite.request("GET", "/api/auth/me", nil, "not-a-token")

	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)
}

// TestSuite runs the test suite
func TestAuthHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerTestSuite))
}
