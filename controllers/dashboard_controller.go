package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"togglenest/models"
	"togglenest/utils"
)

type DashboardController struct {
	DB     *gorm.DB
	Logger *log.Logger
}

func NewDashboardController(db *gorm.DB, logger *log.Logger) *DashboardController {
	return &DashboardController{
		DB:     db,
		Logger: logger,
	}
}

type DashboardStats struct {
	TotalProjects    int64                `json:"totalProjects"`
	TotalTasks       int64                `json:"totalTasks"`
	TasksByStatus    map[string]int64     `json:"tasksByStatus"`
	RecentActivities []models.ActivityLog `json:"recentActivities"`
}

// GetDashboardStats returns the aggregate counts for the dashboard cards.
// Plain read-only aggregation, reflecting the store at query time.
func (dc *DashboardController) GetDashboardStats(c *fiber.Ctx) error {
	var stats DashboardStats

	if err := dc.DB.Model(&models.Project{}).Count(&stats.TotalProjects).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to count projects", err)
	}
	if err := dc.DB.Model(&models.Task{}).Count(&stats.TotalTasks).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to count tasks", err)
	}

	var rows []struct {
		Status string
		Count  int64
	}
	err := dc.DB.Model(&models.Task{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to group tasks by status", err)
	}
	stats.TasksByStatus = make(map[string]int64)
	for _, row := range rows {
		stats.TasksByStatus[row.Status] = row.Count
	}

	err = dc.DB.
		Preload("User").Preload("Project").Preload("Task").
		Order("created_at DESC").
		Limit(5).
		Find(&stats.RecentActivities).Error
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch recent activities", err)
	}

	return c.JSON(utils.SuccessResponse(stats))
}
