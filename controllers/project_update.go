package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"togglenest/models"
	"togglenest/utils"
)

// UpdateProjectRequest is the allow-listed update command for a project.
// The owner is deliberately absent: ownership moves only through the
// dedicated transfer endpoint.
type UpdateProjectRequest struct {
	Title       *string    `json:"title" validate:"omitempty,max=100"`
	Description *string    `json:"description" validate:"omitempty,max=1000"`
	Status      *string    `json:"status" validate:"omitempty,oneof=active completed on-hold"`
	Priority    *string    `json:"priority" validate:"omitempty,oneof=low medium high"`
	Deadline    *time.Time `json:"deadline"`
	Color       *string    `json:"color"`
}

// UpdateProject applies a partial update to a project. Only the owner or an
// admin may update.
func (pc *ProjectController) UpdateProject(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)
	projectID := utils.ParseUint(c.Params("id"))

	var input UpdateProjectRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), nil)
	}

	var project models.Project
	if err := pc.DB.First(&project, projectID).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Project not found", nil)
	}

	if !utils.CanModify(user, project.OwnerID) {
		return utils.ErrorResponse(c, fiber.StatusForbidden, "Not authorized to update this project", nil)
	}

	if input.Title != nil {
		project.Title = *input.Title
	}
	if input.Description != nil {
		project.Description = *input.Description
	}
	if input.Status != nil {
		project.Status = *input.Status
	}
	if input.Priority != nil {
		project.Priority = *input.Priority
	}
	if input.Deadline != nil {
		project.Deadline = input.Deadline
	}
	if input.Color != nil {
		project.Color = *input.Color
	}

	if err := pc.DB.Save(&project).Error; err != nil {
		pc.Logger.Printf("Failed to update project %d: %v", project.ID, err)
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update project", err)
	}

	recordActivity(pc.DB, pc.Logger, user.ID, "Updated Project", &project.ID, nil)

	populated, err := models.FindProjectWithRefs(pc.DB, project.ID)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to load updated project", err)
	}

	return c.JSON(utils.SuccessResponse(populated))
}

type TransferOwnershipRequest struct {
	OwnerID uint `json:"ownerId" validate:"required"`
}

// TransferOwnership reassigns a project to a new owner. Admin only; the
// target must be an existing active user.
func (pc *ProjectController) TransferOwnership(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)
	projectID := utils.ParseUint(c.Params("id"))

	var input TransferOwnershipRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), nil)
	}

	var project models.Project
	if err := pc.DB.First(&project, projectID).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Project not found", nil)
	}

	var newOwner models.User
	if err := pc.DB.Where("id = ? AND is_active = ?", input.OwnerID, true).First(&newOwner).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "New owner must be an active user", nil)
	}

	previousOwner := project.OwnerID
	project.OwnerID = newOwner.ID
	if err := pc.DB.Save(&project).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to transfer ownership", err)
	}

	logrus.WithFields(logrus.Fields{
		"project_id": project.ID,
		"from_user":  previousOwner,
		"to_user":    newOwner.ID,
		"admin_id":   user.ID,
	}).Info("project ownership transferred")

	recordActivity(pc.DB, pc.Logger, user.ID, "Transferred Project Ownership", &project.ID, nil)

	populated, err := models.FindProjectWithRefs(pc.DB, project.ID)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to load project", err)
	}

	return c.JSON(utils.SuccessResponse(populated))
}
