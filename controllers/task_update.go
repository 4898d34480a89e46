package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"togglenest/models"
	"togglenest/utils"
)

// UpdateTaskRequest is the allow-listed update command for a task. Project
// and creator are fixed at creation; status changes go through the Kanban
// endpoint so the completion timestamp stays consistent.
type UpdateTaskRequest struct {
	Title       *string    `json:"title" validate:"omitempty,max=100"`
	Description *string    `json:"description" validate:"omitempty,max=500"`
	Stage       *string    `json:"stage" validate:"omitempty,oneof=planning design development testing done"`
	Priority    *string    `json:"priority" validate:"omitempty,oneof=low medium high"`
	DueDate     *time.Time `json:"due_date"`
	Tags        []string   `json:"tags"`
}

// UpdateTask applies a partial update to a task. Only the creator or an
// admin may update.
func (tc *TaskController) UpdateTask(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)
	taskID := utils.ParseUint(c.Params("id"))

	var input UpdateTaskRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), nil)
	}

	var task models.Task
	if err := tc.DB.First(&task, taskID).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Task not found", nil)
	}

	if !utils.CanModify(user, task.CreatedByID) {
		return utils.ErrorResponse(c, fiber.StatusForbidden, "Not authorized to update this task", nil)
	}

	if input.Title != nil {
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Stage != nil {
		task.Stage = *input.Stage
	}
	if input.Priority != nil {
		task.Priority = *input.Priority
	}
	if input.DueDate != nil {
		task.DueDate = input.DueDate
	}
	if input.Tags != nil {
		task.Tags = input.Tags
	}

	if err := tc.DB.Save(&task).Error; err != nil {
		tc.Logger.Printf("Failed to update task %d: %v", task.ID, err)
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update task", err)
	}

	recordActivity(tc.DB, tc.Logger, user.ID, "Updated Task", &task.ProjectID, &task.ID)

	populated, err := models.FindTaskWithRefs(tc.DB, task.ID)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to load updated task", err)
	}

	return c.JSON(utils.SuccessResponse(populated))
}

type UpdateTaskStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// UpdateTaskStatus is the Kanban drag-and-drop transition. Any status in the
// unified set is reachable from any other; the completion timestamp is set
// exactly when the task lands on done and cleared on every other target.
func (tc *TaskController) UpdateTaskStatus(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)
	taskID := utils.ParseUint(c.Params("id"))

	var input UpdateTaskStatusRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	if !models.ValidTaskStatus(input.Status) {
		return utils.ErrorResponse(c, fiber.StatusBadRequest,
			"Invalid status. Must be one of: todo, in-progress, done", nil)
	}

	var task models.Task
	if err := tc.DB.First(&task, taskID).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Task not found", nil)
	}

	task.SetStatus(input.Status)

	if err := tc.DB.Save(&task).Error; err != nil {
		tc.Logger.Printf("Failed to update status of task %d: %v", task.ID, err)
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update task status", err)
	}

	tc.Logger.Printf("Task status updated: %s → %s", task.Title, task.Status)
	recordActivity(tc.DB, tc.Logger, user.ID, "Updated Task Status", &task.ProjectID, &task.ID)

	populated, err := models.FindTaskWithRefs(tc.DB, task.ID)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to load updated task", err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    populated,
		"message": "Task status updated to " + task.Status,
	})
}

type AssignTaskRequest struct {
	UserID uint `json:"userId" validate:"required"`
}

// AssignTask assigns a task to an active user. Only the creator or an admin
// may assign.
func (tc *TaskController) AssignTask(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)
	taskID := utils.ParseUint(c.Params("id"))

	var input AssignTaskRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), nil)
	}

	var task models.Task
	if err := tc.DB.First(&task, taskID).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Task not found", nil)
	}

	if !utils.CanModify(user, task.CreatedByID) {
		return utils.ErrorResponse(c, fiber.StatusForbidden, "Not authorized to assign this task", nil)
	}

	var assignee models.User
	if err := tc.DB.Where("id = ? AND is_active = ?", input.UserID, true).First(&assignee).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Assignee must be an active user", nil)
	}

	task.AssignedToID = &assignee.ID
	if err := tc.DB.Save(&task).Error; err != nil {
		tc.Logger.Printf("Failed to assign task %d: %v", task.ID, err)
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to assign task", err)
	}

	recordActivity(tc.DB, tc.Logger, user.ID, "Assigned Task", &task.ProjectID, &task.ID)

	populated, err := models.FindTaskWithRefs(tc.DB, task.ID)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to load updated task", err)
	}

	return c.JSON(utils.SuccessResponse(populated))
}
