package controller

import (
	"github.com/gofiber/fiber/v2"

	"togglenest/models"
	"togglenest/utils"
)

// GetTasks returns tasks matching the query filters, newest first, with
// project, assignee and creator references resolved.
func (tc *TaskController) GetTasks(c *fiber.Ctx) error {
	query := tc.DB.Model(&models.Task{})
	if project := c.Query("project"); project != "" {
		query = query.Where("project_id = ?", utils.ParseUint(project))
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if priority := c.Query("priority"); priority != "" {
		query = query.Where("priority = ?", priority)
	}
	if assignedTo := c.Query("assignedTo"); assignedTo != "" {
		query = query.Where("assigned_to_id = ?", utils.ParseUint(assignedTo))
	}

	var tasks []models.Task
	err := query.
		Preload("Project").Preload("AssignedTo").Preload("CreatedBy").
		Order("created_at DESC").
		Find(&tasks).Error
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch tasks", err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"count":   len(tasks),
		"data":    tasks,
	})
}

// GetTask returns a single task with references resolved
func (tc *TaskController) GetTask(c *fiber.Ctx) error {
	task, err := models.FindTaskWithRefs(tc.DB, utils.ParseUint(c.Params("id")))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Task not found", nil)
	}

	return c.JSON(utils.SuccessResponse(task))
}

// GetMyTasks returns tasks assigned to the authenticated user
func (tc *TaskController) GetMyTasks(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	var tasks []models.Task
	err := tc.DB.
		Preload("Project").Preload("CreatedBy").
		Where("assigned_to_id = ?", user.ID).
		Order("created_at DESC").
		Find(&tasks).Error
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch tasks", err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"count":   len(tasks),
		"data":    tasks,
	})
}
