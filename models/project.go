package models

import (
	"time"

	"gorm.io/gorm"
)

// Project statuses
const (
	ProjectStatusActive    = "active"
	ProjectStatusCompleted = "completed"
	ProjectStatusOnHold    = "on-hold"
)

// Priorities shared by projects and tasks
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Project represents a project with an owning user and a member set.
// The owner is fixed at creation; changing it goes through the dedicated
// ownership-transfer endpoint, never the generic update path.
type Project struct {
	gorm.Model

	Title       string `gorm:"not null" json:"title"`
	Description string `json:"description"`

	OwnerID uint   `gorm:"not null;index" json:"owner_id"`
	Owner   User   `json:"owner,omitempty"`
	Members []User `gorm:"many2many:project_members" json:"members"`

	Status   string     `gorm:"default:'active';index" json:"status"` // active, completed, on-hold
	Priority string     `gorm:"default:'medium'" json:"priority"`     // low, medium, high
	Deadline *time.Time `json:"deadline"`
	Color    string     `gorm:"default:'#3B82F6'" json:"color"`
}

// HasMember reports whether userID is in the project's member set.
func (p *Project) HasMember(userID uint) bool {
	for _, m := range p.Members {
		if m.ID == userID {
			return true
		}
	}
	return false
}

// ProjectStats holds project counts grouped by status
type ProjectStats struct {
	Total    int64            `json:"total"`
	ByStatus map[string]int64 `json:"byStatus"`
}
