package utils

import (
	"togglenest/models"
)

// Authorization decisions. Pure functions over the authenticated user and
// the owning user id of a resource; no store access, no side effects.

// IsAdmin reports whether the principal holds the admin role.
func IsAdmin(user *models.User) bool {
	return user != nil && user.Role == models.RoleAdmin
}

// IsOwner reports whether the principal owns the resource.
func IsOwner(user *models.User, resourceOwnerID uint) bool {
	return user != nil && user.ID == resourceOwnerID
}

// CanModify reports whether the principal may mutate a resource owned by
// resourceOwnerID: admins always, everyone else only their own resources.
func CanModify(user *models.User, resourceOwnerID uint) bool {
	return IsAdmin(user) || IsOwner(user, resourceOwnerID)
}
