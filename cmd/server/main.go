package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/hollandale/planfreeze-api/internal/config"
	"github.com/hollandale/planfreeze-api/internal/database"
	"github.com/hollandale/planfreeze-api/internal/handlers"
	"github.com/hollandale/planfreeze-api/internal/middleware"
	"github.com/hollandale/planfreeze-api/internal/repository"
	"github.com/hollandale/planfreeze-api/internal/services"
	"github.com/hollandale/planfreeze-api/internal/token"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	db := database.GetDB()
	tokens := token.NewManager(cfg.JWTSecret, cfg.TokenTTL)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	baselineRepo := repository.NewBaselineRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo, tokens)
	projectService := services.NewProjectService(projectRepo)
	taskService := services.NewTaskService(taskRepo, projectRepo)
	baselineService := services.NewBaselineService(baselineRepo, projectRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(authService)
	projectHandler := handlers.NewProjectHandler(projectService)
	taskHandler := handlers.NewTaskHandler(taskService)
	baselineHandler := handlers.NewBaselineHandler(baselineService)
	resourceHandler := handlers.NewResourceHandler()
	costHandler := handlers.NewCostHandler()
	documentHandler := handlers.NewDocumentHandler()
	relationshipHandler := handlers.NewRelationshipHandler()
	statsHandler := handlers.NewStatsHandler()

	// Initialize Gin router
	r := gin.Default()

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Project Management API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public except /me)
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.GET("/me", middleware.RequireAuth(tokens), authHandler.GetCurrentUser)
		}

		// User management routes (admin only)
		users := api.Group("/users")
		users.Use(middleware.RequireAuth(tokens), middleware.RequireAdmin())
		{
			users.GET("", userHandler.ListUsers)
			users.PUT("/:id", userHandler.UpdateUser)
			users.DELETE("/:id", userHandler.DeleteUser)
		}

		// Project routes
		projects := api.Group("/projects")
		projects.Use(middleware.RequireAuth(tokens))
		{
			projects.GET("", projectHandler.ListProjects)
			projects.GET("/:id", projectHandler.GetProject)
			projects.POST("", middleware.RequireManager(), projectHandler.CreateProject)
			projects.PUT("/:id", middleware.RequireManager(), projectHandler.UpdateProject)
			projects.DELETE("/:id", middleware.RequireManager(), projectHandler.DeleteProject)
		}

		// Task routes
		tasks := api.Group("/tasks")
		tasks.Use(middleware.RequireAuth(tokens))
		{
			tasks.GET("", taskHandler.ListTasks)
			tasks.GET("/:id", taskHandler.GetTask)
			tasks.POST("", middleware.RequireManager(), taskHandler.CreateTask)
			tasks.PUT("/:id", middleware.RequireManager(), taskHandler.UpdateTask)
			tasks.DELETE("/:id", middleware.RequireManager(), taskHandler.DeleteTask)
		}

		// Baseline routes
		baselines := api.Group("/baselines")
		baselines.Use(middleware.RequireAuth(tokens))
		{
			baselines.POST("/task", middleware.RequireManager(), baselineHandler.FreezeTask)
			baselines.GET("/task/:task_id", baselineHandler.ListTaskBaselines)
			baselines.POST("/project", middleware.RequireManager(), baselineHandler.SnapshotProject)
			baselines.GET("/project/:project_id", baselineHandler.ListProjectBaselines)
		}

		// Resource routes
		resources := api.Group("/resources")
		resources.Use(middleware.RequireAuth(tokens))
		{
			resources.GET("", resourceHandler.ListResources)
			resources.POST("", middleware.RequireManager(), resourceHandler.CreateResource)
			resources.PUT("/:id", middleware.RequireManager(), resourceHandler.UpdateResource)
			resources.DELETE("/:id", middleware.RequireAdmin(), resourceHandler.DeleteResource)
		}

		// Allocation routes
		allocations := api.Group("/allocations")
		allocations.Use(middleware.RequireAuth(tokens))
		{
			allocations.GET("", resourceHandler.ListAllocations)
			allocations.POST("", middleware.RequireManager(), resourceHandler.CreateAllocation)
		}

		// Cost routes
		costs := api.Group("/costs")
		costs.Use(middleware.RequireAuth(tokens))
		{
			costs.GET("", costHandler.ListCosts)
			costs.POST("", middleware.RequireManager(), costHandler.CreateCost)
			costs.DELETE("/:id", middleware.RequireManager(), costHandler.DeleteCost)
		}

		// Document routes
		documents := api.Group("/documents")
		documents.Use(middleware.RequireAuth(tokens))
		{
			documents.GET("", documentHandler.ListDocuments)
			documents.POST("", documentHandler.CreateDocument)
			documents.DELETE("/:id", documentHandler.DeleteDocument)
		}

		// Relationship routes
		relationships := api.Group("/relationships")
		relationships.Use(middleware.RequireAuth(tokens))
		{
			relationships.GET("", relationshipHandler.ListRelationships)
			relationships.POST("", middleware.RequireManager(), relationshipHandler.CreateRelationship)
			relationships.DELETE("/:id", middleware.RequireManager(), relationshipHandler.DeleteRelationship)
		}

		// Stats routes
		stats := api.Group("/stats")
		stats.Use(middleware.RequireAuth(tokens))
		{
			stats.GET("/dashboard", statsHandler.DashboardStats)
		}
	}

	// Start server
	addr := ":" + cfg.ServerPort
	log.Printf("Server starting on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
