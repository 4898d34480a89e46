package models

import (
	"gorm.io/gorm"
)

// User roles
const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// User represents a team member account
type User struct {
	gorm.Model

	// Authentication fields
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`

	// Profile information
	Name   string `json:"name"`
	Avatar string `json:"avatar"`

	// Access control
	Role     string `gorm:"default:'member'" json:"role"` // admin, member
	IsActive bool   `gorm:"default:true" json:"is_active"`
}

// UserStats summarizes team composition for the stats endpoint
type UserStats struct {
	Total    int64 `json:"total"`
	Active   int64 `json:"active"`
	Inactive int64 `json:"inactive"`
	Admins   int64 `json:"admins"`
	Members  int64 `json:"members"`
}
