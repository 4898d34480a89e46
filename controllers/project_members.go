package controller

import (
	"github.com/gofiber/fiber/v2"

	"togglenest/models"
	"togglenest/utils"
)

type AddMemberRequest struct {
	UserID uint `json:"userId" validate:"required"`
}

// AddMember adds a user to the project's member set. Adding a user who is
// already a member is a conflict.
func (pc *ProjectController) AddMember(c *fiber.Ctx) error {
	var input AddMemberRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), nil)
	}

	project, err := models.FindProjectWithRefs(pc.DB, utils.ParseUint(c.Params("id")))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Project not found", nil)
	}

	if project.HasMember(input.UserID) {
		return utils.ErrorResponse(c, fiber.StatusConflict, "User is already a member of this project", nil)
	}

	var member models.User
	if err := pc.DB.Where("id = ? AND is_active = ?", input.UserID, true).First(&member).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Member must be an active user", nil)
	}

	if err := pc.DB.Model(project).Association("Members").Append(&member); err != nil {
		pc.Logger.Printf("Failed to add member %d to project %d: %v", member.ID, project.ID, err)
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to add member", err)
	}

	updated, err := models.FindProjectWithRefs(pc.DB, project.ID)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to load project", err)
	}

	return c.JSON(utils.SuccessResponse(updated))
}

// RemoveMember removes a user from the member set. Removing a user who is
// not a member is a no-op.
func (pc *ProjectController) RemoveMember(c *fiber.Ctx) error {
	project, err := models.FindProjectWithRefs(pc.DB, utils.ParseUint(c.Params("id")))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Project not found", nil)
	}

	member := models.User{}
	member.ID = utils.ParseUint(c.Params("userId"))
	if err := pc.DB.Model(project).Association("Members").Delete(&member); err != nil {
		pc.Logger.Printf("Failed to remove member %d from project %d: %v", member.ID, project.ID, err)
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to remove member", err)
	}

	updated, err := models.FindProjectWithRefs(pc.DB, project.ID)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to load project", err)
	}

	return c.JSON(utils.SuccessResponse(updated))
}
