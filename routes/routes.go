package routes

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"

	controller "togglenest/controllers"
	"togglenest/middleware"
)

func SetupAuthRoutes(app *fiber.App, db *gorm.DB) {
	authLogger := log.New(os.Stdout, "AUTH: ", log.Ldate|log.Ltime|log.Lshortfile)

	// Auth routes group with logging middleware
	auth := app.Group("/auth", logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	// Public auth endpoints (rate limited, no authentication required)
	limited := auth.Group("", middleware.AuthRateLimiter())
	limited.Post("/register", controller.Register)
	limited.Post("/login", controller.Login)
	auth.Post("/refresh", controller.RefreshToken)

	// Protected auth endpoints (require valid JWT)
	protectedAuth := auth.Group("", middleware.Protected())
	protectedAuth.Get("/me", controller.GetCurrentUser)

	authLogger.Println("Authentication routes initialized successfully")
}

func SetupAPIRoutes(app *fiber.App, db *gorm.DB) {
	// Initialize controllers with their respective loggers
	projectController := controller.NewProjectController(db, log.New(os.Stdout, "PROJECT: ", log.LstdFlags))
	taskController := controller.NewTaskController(db, log.New(os.Stdout, "TASK: ", log.LstdFlags))
	userController := controller.NewUserController(db, log.New(os.Stdout, "USER: ", log.LstdFlags))
	activityController := controller.NewActivityController(db, log.New(os.Stdout, "ACTIVITY: ", log.LstdFlags))
	dashboardController := controller.NewDashboardController(db, log.New(os.Stdout, "DASHBOARD: ", log.LstdFlags))

	// API group with protection and request logging
	api := app.Group("/api", middleware.Protected(), logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	// Project routes
	project := api.Group("/projects")
	project.Get("/stats", projectController.GetProjectStats)
	project.Get("/my-projects", projectController.GetMyProjects)
	project.Get("/", projectController.GetProjects)
	project.Post("/", projectController.CreateProject)
	project.Get("/:id", projectController.GetProject)
	project.Put("/:id", projectController.UpdateProject)
	project.Delete("/:id", projectController.DeleteProject)
	project.Put("/:id/owner", middleware.AdminOnly(), projectController.TransferOwnership)
	project.Post("/:id/members", projectController.AddMember)
	project.Delete("/:id/members/:userId", projectController.RemoveMember)

	// Task routes
	task := api.Group("/tasks")
	task.Get("/cleanup", taskController.CleanupTasks)
	task.Get("/my-tasks", taskController.GetMyTasks)
	task.Get("/", taskController.GetTasks)
	task.Post("/", taskController.CreateTask)
	task.Get("/:id", taskController.GetTask)
	task.Put("/:id", taskController.UpdateTask)
	task.Delete("/:id", taskController.DeleteTask)
	task.Patch("/:id/status", taskController.UpdateTaskStatus)
	task.Patch("/:id/assign", taskController.AssignTask)

	// User routes
	user := api.Group("/users")
	user.Get("/stats", middleware.AdminOnly(), userController.GetUserStats)
	user.Get("/", userController.GetUsers)
	user.Get("/:id", userController.GetUser)
	user.Put("/:id", userController.UpdateUser)
	user.Delete("/:id", middleware.AdminOnly(), userController.DeleteUser)
	user.Delete("/:id/permanent", middleware.AdminOnly(), userController.PermanentDeleteUser)

	// Activity log routes
	activity := api.Group("/activity-logs")
	activity.Get("/", activityController.GetActivityLogs)
	activity.Post("/", activityController.CreateActivityLog)

	// Dashboard routes
	dashboard := api.Group("/dashboard")
	dashboard.Get("/stats", dashboardController.GetDashboardStats)

	log.Println("API routes initialized successfully")
}

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	// Setup health check endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Setup auth routes
	SetupAuthRoutes(app, db)

	// Setup API routes
	SetupAPIRoutes(app, db)

	// Setup 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"error":   "The requested resource was not found",
		})
	})
}
