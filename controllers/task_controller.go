package controller

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"togglenest/models"
	"togglenest/utils"
)

type TaskController struct {
	DB     *gorm.DB
	Logger *log.Logger
}

func NewTaskController(db *gorm.DB, logger *log.Logger) *TaskController {
	return &TaskController{
		DB:     db,
		Logger: logger,
	}
}

type CreateTaskRequest struct {
	Title       string     `json:"title" validate:"required,max=100"`
	Description string     `json:"description" validate:"omitempty,max=500"`
	Project     uint       `json:"project"`
	ProjectID   uint       `json:"projectId"` // legacy field name, normalized to Project
	AssignedTo  *uint      `json:"assignedTo"`
	Status      string     `json:"status" validate:"omitempty,oneof=todo in-progress done"`
	Priority    string     `json:"priority" validate:"omitempty,oneof=low medium high"`
	DueDate     *time.Time `json:"due_date"`
	Tags        []string   `json:"tags"`
}

// CreateTask creates a task inside an existing project. The stage always
// starts at planning regardless of caller input.
func (tc *TaskController) CreateTask(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	var input CreateTaskRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), nil)
	}

	projectID := input.Project
	if projectID == 0 {
		projectID = input.ProjectID
	}
	if projectID == 0 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "project is required", nil)
	}

	var project models.Project
	if err := tc.DB.First(&project, projectID).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Project not found", nil)
	}

	task := models.Task{
		Title:        input.Title,
		Description:  input.Description,
		ProjectID:    project.ID,
		AssignedToID: input.AssignedTo,
		CreatedByID:  user.ID,
		Priority:     input.Priority,
		Stage:        models.StagePlanning,
		DueDate:      input.DueDate,
		Tags:         input.Tags,
	}
	if task.Priority == "" {
		task.Priority = models.PriorityMedium
	}
	status := input.Status
	if status == "" {
		status = models.TaskStatusTodo
	}
	task.SetStatus(status)

	if err := tc.DB.Create(&task).Error; err != nil {
		tc.Logger.Printf("Failed to create task: %v", err)
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create task", err)
	}

	recordActivity(tc.DB, tc.Logger, user.ID, "Created Task", &task.ProjectID, &task.ID)

	return c.Status(fiber.StatusCreated).JSON(utils.SuccessResponse(task))
}
