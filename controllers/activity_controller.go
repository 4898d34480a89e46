package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"togglenest/models"
	"togglenest/utils"
)

type ActivityController struct {
	DB     *gorm.DB
	Logger *log.Logger
}

func NewActivityController(db *gorm.DB, logger *log.Logger) *ActivityController {
	return &ActivityController{
		DB:     db,
		Logger: logger,
	}
}

// recordActivity appends an audit entry. Best effort: a failed write is
// logged and never fails the request it rides on.
func recordActivity(db *gorm.DB, logger *log.Logger, userID uint, action string, projectID, taskID *uint) {
	entry := models.ActivityLog{
		UserID:    userID,
		Action:    action,
		ProjectID: projectID,
		TaskID:    taskID,
	}
	if err := db.Create(&entry).Error; err != nil {
		logger.Printf("Failed to record activity %q: %v", action, err)
	}
}

type CreateActivityLogRequest struct {
	Action    string `json:"action" validate:"required,max=200"`
	ProjectID *uint  `json:"project"`
	TaskID    *uint  `json:"task"`
}

// CreateActivityLog appends an audit entry for the authenticated user
func (ac *ActivityController) CreateActivityLog(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	var input CreateActivityLogRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), nil)
	}

	entry := models.ActivityLog{
		UserID:    user.ID,
		Action:    input.Action,
		ProjectID: input.ProjectID,
		TaskID:    input.TaskID,
	}
	if err := ac.DB.Create(&entry).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create activity log", err)
	}

	return c.Status(fiber.StatusCreated).JSON(utils.SuccessResponse(entry))
}

// GetActivityLogs lists audit entries newest first with references resolved
func (ac *ActivityController) GetActivityLogs(c *fiber.Ctx) error {
	var logs []models.ActivityLog
	err := ac.DB.
		Preload("User").Preload("Project").Preload("Task").
		Order("created_at DESC").
		Find(&logs).Error
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch activity logs", err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"count":   len(logs),
		"data":    logs,
	})
}
