package controller

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"togglenest/models"
	"togglenest/utils"
)

// Sortable project fields, client name to column.
var projectSortFields = map[string]string{
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"title":     "title",
	"status":    "status",
	"priority":  "priority",
	"deadline":  "deadline",
}

// buildProjectOrder parses a comma-separated sort list ("-createdAt,title")
// into an ORDER BY clause. Unknown fields are ignored.
func buildProjectOrder(sort string) string {
	var clauses []string
	for _, field := range strings.Split(sort, ",") {
		field = strings.TrimSpace(field)
		desc := strings.HasPrefix(field, "-")
		field = strings.TrimPrefix(field, "-")
		col, ok := projectSortFields[field]
		if !ok {
			continue
		}
		if desc {
			col += " DESC"
		}
		clauses = append(clauses, col)
	}
	if len(clauses) == 0 {
		return "created_at DESC"
	}
	return strings.Join(clauses, ", ")
}

type projectWithTaskCount struct {
	models.Project
	TaskCount int64 `json:"taskCount"`
}

// GetProjects returns projects matching the query filters, newest first by
// default, annotated with their task counts.
func (pc *ProjectController) GetProjects(c *fiber.Ctx) error {
	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.Query("limit", "10"))
	if err != nil || limit < 1 {
		limit = 10
	}

	query := pc.DB.Model(&models.Project{})
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if owner := c.Query("owner"); owner != "" {
		query = query.Where("owner_id = ?", utils.ParseUint(owner))
	}
	if priority := c.Query("priority"); priority != "" {
		query = query.Where("priority = ?", priority)
	}
	if search := c.Query("search"); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to count projects", err)
	}

	var projects []models.Project
	err = query.
		Preload("Owner").Preload("Members").
		Order(buildProjectOrder(c.Query("sort"))).
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&projects).Error
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch projects", err)
	}

	response := make([]projectWithTaskCount, len(projects))
	for i, project := range projects {
		taskCount, err := models.CountProjectTasks(pc.DB, project.ID)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to count project tasks", err)
		}
		response[i] = projectWithTaskCount{Project: project, TaskCount: taskCount}
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"count":      len(response),
		"pagination": utils.NewPagination(page, limit, total),
		"data":       response,
	})
}

// GetProject returns a single project with owner and members resolved
func (pc *ProjectController) GetProject(c *fiber.Ctx) error {
	project, err := models.FindProjectWithRefs(pc.DB, utils.ParseUint(c.Params("id")))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Project not found", nil)
	}

	return c.JSON(utils.SuccessResponse(project))
}

// GetMyProjects returns projects the user owns or is a member of
func (pc *ProjectController) GetMyProjects(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	var projects []models.Project
	err := pc.DB.
		Preload("Owner").Preload("Members").
		Joins("LEFT JOIN project_members pm ON pm.project_id = projects.id AND pm.user_id = ?", user.ID).
		Where("projects.owner_id = ? OR pm.user_id IS NOT NULL", user.ID).
		Distinct().
		Order("projects.created_at DESC").
		Find(&projects).Error
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch projects", err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"count":   len(projects),
		"data":    projects,
	})
}

// GetProjectStats returns project counts grouped by status
func (pc *ProjectController) GetProjectStats(c *fiber.Ctx) error {
	var rows []struct {
		Status string
		Count  int64
	}
	err := pc.DB.Model(&models.Project{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch project stats", err)
	}

	stats := models.ProjectStats{ByStatus: make(map[string]int64)}
	for _, row := range rows {
		stats.ByStatus[row.Status] = row.Count
		stats.Total += row.Count
	}

	return c.JSON(utils.SuccessResponse(stats))
}
