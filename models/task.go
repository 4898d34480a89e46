package models

import (
	"time"

	"gorm.io/gorm"
)

// Task statuses. One unified set: the Kanban status-update endpoint accepts
// exactly these values and nothing else.
const (
	TaskStatusTodo       = "todo"
	TaskStatusInProgress = "in-progress"
	TaskStatusDone       = "done"
)

// Task stages
const (
	StagePlanning    = "planning"
	StageDesign      = "design"
	StageDevelopment = "development"
	StageTesting     = "testing"
	StageDone        = "done"
)

// Task represents a unit of work inside a project
type Task struct {
	gorm.Model

	Title       string `gorm:"not null" json:"title"`
	Description string `json:"description"`

	ProjectID uint    `gorm:"not null;index" json:"project_id"`
	Project   Project `json:"project,omitempty"`

	AssignedToID *uint `gorm:"index" json:"assigned_to_id"`
	AssignedTo   *User `json:"assigned_to,omitempty"`
	CreatedByID  uint  `gorm:"not null" json:"created_by_id"`
	CreatedBy    User  `json:"created_by,omitempty"`

	Status   string `gorm:"default:'todo';index" json:"status"`   // todo, in-progress, done
	Stage    string `gorm:"default:'planning'" json:"stage"`      // planning, design, development, testing, done
	Priority string `gorm:"default:'medium'" json:"priority"`     // low, medium, high

	DueDate *time.Time `json:"due_date"`
	Tags    []string   `gorm:"serializer:json" json:"tags"`

	// Non-nil exactly while Status == done; maintained by SetStatus.
	CompletedAt *time.Time `json:"completed_at"`
}

// ValidTaskStatus reports membership in the unified status set.
func ValidTaskStatus(status string) bool {
	switch status {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusDone:
		return true
	}
	return false
}

// SetStatus applies the Kanban transition: any status in the unified set is
// a legal target, and CompletedAt is set or cleared atomically with it.
func (t *Task) SetStatus(status string) {
	t.Status = status
	if status == TaskStatusDone {
		now := time.Now()
		t.CompletedAt = &now
	} else {
		t.CompletedAt = nil
	}
}
