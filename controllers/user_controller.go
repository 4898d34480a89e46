package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"togglenest/models"
	"togglenest/utils"
)

type UserController struct {
	DB     *gorm.DB
	Logger *log.Logger
}

func NewUserController(db *gorm.DB, logger *log.Logger) *UserController {
	return &UserController{
		DB:     db,
		Logger: logger,
	}
}

// GetUsers returns all active team members, newest first
func (uc *UserController) GetUsers(c *fiber.Ctx) error {
	var users []models.User
	err := uc.DB.
		Where("is_active = ?", true).
		Order("created_at DESC").
		Find(&users).Error
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch users", err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"count":   len(users),
		"data":    users,
	})
}

// GetUser returns a single user by id
func (uc *UserController) GetUser(c *fiber.Ctx) error {
	var user models.User
	if err := uc.DB.First(&user, utils.ParseUint(c.Params("id"))).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "User not found", nil)
	}

	return c.JSON(utils.SuccessResponse(user))
}

// UpdateUserRequest is the allow-listed update command for a user. Role and
// active flag are admin-only fields.
type UpdateUserRequest struct {
	Name     *string `json:"name" validate:"omitempty,max=100"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Avatar   *string `json:"avatar" validate:"omitempty,max=500"`
	Role     *string `json:"role" validate:"omitempty,oneof=admin member"`
	IsActive *bool   `json:"isActive"`
}

// UpdateUser updates a user profile. Admins may update anyone; everyone else
// only themselves, and never their own role or active flag.
func (uc *UserController) UpdateUser(c *fiber.Ctx) error {
	principal := c.Locals("user").(*models.User)
	userID := utils.ParseUint(c.Params("id"))

	var input UpdateUserRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), nil)
	}

	var user models.User
	if err := uc.DB.First(&user, userID).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "User not found", nil)
	}

	if !utils.CanModify(principal, user.ID) {
		return utils.ErrorResponse(c, fiber.StatusForbidden, "Not authorized to update this user", nil)
	}

	// Non-admin users cannot change their own role
	if !utils.IsAdmin(principal) && input.Role != nil && *input.Role != user.Role {
		return utils.ErrorResponse(c, fiber.StatusForbidden, "You cannot change your own role", nil)
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Email != nil && *input.Email != user.Email {
		var existing models.User
		if err := uc.DB.Where("email = ?", *input.Email).First(&existing).Error; err == nil {
			return utils.ErrorResponse(c, fiber.StatusConflict, "Email already exists", nil)
		}
		user.Email = *input.Email
	}
	if input.Avatar != nil {
		user.Avatar = *input.Avatar
	}

	// Only admins may set role and active flag
	if utils.IsAdmin(principal) {
		if input.Role != nil {
			user.Role = *input.Role
		}
		if input.IsActive != nil {
			user.IsActive = *input.IsActive
		}
	}

	if err := uc.DB.Save(&user).Error; err != nil {
		uc.Logger.Printf("Failed to update user %d: %v", user.ID, err)
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update user", err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "User updated successfully",
		"data":    user,
	})
}

// DeleteUser deactivates a user account (soft delete)
func (uc *UserController) DeleteUser(c *fiber.Ctx) error {
	principal := c.Locals("user").(*models.User)
	userID := utils.ParseUint(c.Params("id"))

	var user models.User
	if err := uc.DB.First(&user, userID).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "User not found", nil)
	}

	// Admins cannot deactivate themselves
	if principal.ID == user.ID {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "You cannot delete your own account", nil)
	}

	user.IsActive = false
	if err := uc.DB.Save(&user).Error; err != nil {
		uc.Logger.Printf("Failed to deactivate user %d: %v", user.ID, err)
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to deactivate user", err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "User deactivated successfully",
		"data":    fiber.Map{"id": user.ID},
	})
}

// PermanentDeleteUser removes a user record entirely
func (uc *UserController) PermanentDeleteUser(c *fiber.Ctx) error {
	principal := c.Locals("user").(*models.User)
	userID := utils.ParseUint(c.Params("id"))

	var user models.User
	if err := uc.DB.First(&user, userID).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "User not found", nil)
	}

	if principal.ID == user.ID {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "You cannot delete your own account", nil)
	}

	if err := uc.DB.Unscoped().Delete(&user).Error; err != nil {
		uc.Logger.Printf("Failed to permanently delete user %d: %v", user.ID, err)
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to permanently delete user", err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "User permanently deleted",
		"data":    fiber.Map{"id": userID},
	})
}

// GetUserStats returns team composition counts
func (uc *UserController) GetUserStats(c *fiber.Ctx) error {
	var stats models.UserStats

	counts := []struct {
		dest  *int64
		where []interface{}
	}{
		{&stats.Total, nil},
		{&stats.Active, []interface{}{"is_active = ?", true}},
		{&stats.Inactive, []interface{}{"is_active = ?", false}},
		{&stats.Admins, []interface{}{"role = ? AND is_active = ?", models.RoleAdmin, true}},
		{&stats.Members, []interface{}{"role = ? AND is_active = ?", models.RoleMember, true}},
	}
	for _, count := range counts {
		query := uc.DB.Model(&models.User{})
		if count.where != nil {
			query = query.Where(count.where[0], count.where[1:]...)
		}
		if err := query.Count(count.dest).Error; err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch user statistics", err)
		}
	}

	return c.JSON(utils.SuccessResponse(stats))
}
