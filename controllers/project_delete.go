package controller

import (
	"github.com/gofiber/fiber/v2"

	"togglenest/models"
	"togglenest/utils"
)

// DeleteProject deletes a project and all tasks referencing it. The cascade
// is two independent store operations, tasks first; a crash between them
// leaves orphaned tasks, which the cleanup sweep reclaims.
func (pc *ProjectController) DeleteProject(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)
	projectID := utils.ParseUint(c.Params("id"))

	var project models.Project
	if err := pc.DB.First(&project, projectID).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Project not found", nil)
	}

	if !utils.CanModify(user, project.OwnerID) {
		return utils.ErrorResponse(c, fiber.StatusForbidden, "Not authorized to delete this project", nil)
	}

	if err := pc.DB.Where("project_id = ?", project.ID).Delete(&models.Task{}).Error; err != nil {
		pc.Logger.Printf("Failed to delete tasks for project %d: %v", project.ID, err)
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete project tasks", err)
	}
	pc.Logger.Printf("Deleted all tasks for project: %s", project.Title)

	if err := pc.DB.Delete(&project).Error; err != nil {
		pc.Logger.Printf("Failed to delete project %d: %v", project.ID, err)
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete project", err)
	}

	recordActivity(pc.DB, pc.Logger, user.ID, "Deleted Project", nil, nil)

	return c.JSON(fiber.Map{
		"success": true,
		"data":    fiber.Map{},
		"message": "Project and associated tasks deleted successfully",
	})
}
