package controller

import (
	"github.com/gofiber/fiber/v2"

	"togglenest/models"
	"togglenest/utils"
	"togglenest/worker"
)

// DeleteTask hard-deletes a task. Tasks have no children, so there is no
// cascade. Only the creator or an admin may delete.
func (tc *TaskController) DeleteTask(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)
	taskID := utils.ParseUint(c.Params("id"))

	var task models.Task
	if err := tc.DB.First(&task, taskID).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Task not found", nil)
	}

	if !utils.CanModify(user, task.CreatedByID) {
		return utils.ErrorResponse(c, fiber.StatusForbidden, "Not authorized to delete this task", nil)
	}

	if err := tc.DB.Delete(&task).Error; err != nil {
		tc.Logger.Printf("Failed to delete task %d: %v", task.ID, err)
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete task", err)
	}

	recordActivity(tc.DB, tc.Logger, user.ID, "Deleted Task", &task.ProjectID, nil)

	return c.JSON(fiber.Map{
		"success": true,
		"data":    fiber.Map{},
		"message": "Task deleted successfully",
	})
}

// CleanupTasks purges tasks whose project no longer exists. Orphans appear
// when the cascade delete is interrupted between its two store operations;
// the purge is idempotent and safe to re-run.
func (tc *TaskController) CleanupTasks(c *fiber.Ctx) error {
	deleted, err := worker.PurgeOrphanTasks(tc.DB)
	if err != nil {
		tc.Logger.Printf("Cleanup error: %v", err)
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to clean up tasks", err)
	}

	return c.JSON(fiber.Map{
		"success":      true,
		"deletedCount": deleted,
		"message":      "Orphaned tasks removed",
	})
}
