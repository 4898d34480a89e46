package models

import (
	"gorm.io/gorm"
)

// ActivityLog is an append-only audit entry. Entries are never updated or
// deleted and are read newest-first.
type ActivityLog struct {
	gorm.Model

	UserID uint   `gorm:"not null;index" json:"user_id"`
	User   User   `json:"user,omitempty"`
	Action string `gorm:"not null" json:"action"` // e.g. "Created Task", "Updated Project Status"

	ProjectID *uint    `json:"project_id"`
	Project   *Project `json:"project,omitempty"`
	TaskID    *uint    `json:"task_id"`
	Task      *Task    `json:"task,omitempty"`
}
