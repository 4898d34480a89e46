package models

import (
	"gorm.io/gorm"
)

// Read-model queries. Reference resolution (owner, members, assignee) lives
// here so handlers never hand-roll joins.

// FindProjectWithRefs loads a project with its owner and member set resolved.
func FindProjectWithRefs(db *gorm.DB, id uint) (*Project, error) {
	var project Project
	err := db.Preload("Owner").Preload("Members").First(&project, id).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// FindTaskWithRefs loads a task with its project, assignee and creator resolved.
func FindTaskWithRefs(db *gorm.DB, id uint) (*Task, error) {
	var task Task
	err := db.Preload("Project").Preload("AssignedTo").Preload("CreatedBy").First(&task, id).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// CountProjectTasks returns the number of tasks referencing the project.
func CountProjectTasks(db *gorm.DB, projectID uint) (int64, error) {
	var count int64
	err := db.Model(&Task{}).Where("project_id = ?", projectID).Count(&count).Error
	return count, err
}
