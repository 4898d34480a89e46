package controller

import (
	"log"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"togglenest/models"
	"togglenest/utils"
)

type ProjectController struct {
	DB     *gorm.DB
	Logger *log.Logger
}

func NewProjectController(db *gorm.DB, logger *log.Logger) *ProjectController {
	return &ProjectController{
		DB:     db,
		Logger: logger,
	}
}

type EmbeddedTaskRequest struct {
	Title       string     `json:"title" validate:"required,max=100"`
	Description string     `json:"description" validate:"omitempty,max=500"`
	Priority    string     `json:"priority" validate:"omitempty,oneof=low medium high"`
	Status      string     `json:"status" validate:"omitempty,oneof=todo in-progress done"`
	DueDate     *time.Time `json:"due_date"`
	Tags        []string   `json:"tags"`
}

type CreateProjectRequest struct {
	Title       string                `json:"title" validate:"required,max=100"`
	Description string                `json:"description" validate:"omitempty,max=1000"`
	Status      string                `json:"status" validate:"omitempty,oneof=active completed on-hold"`
	Priority    string                `json:"priority" validate:"omitempty,oneof=low medium high"`
	Deadline    *time.Time            `json:"deadline"`
	Color       string                `json:"color"`
	Tasks       []EmbeddedTaskRequest `json:"tasks"`
}

// CreateProject creates a project owned by the authenticated user,
// optionally seeding it with an embedded list of tasks.
func (pc *ProjectController) CreateProject(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	var input CreateProjectRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), nil)
	}

	project := models.Project{
		Title:       input.Title,
		Description: input.Description,
		OwnerID:     user.ID,
		Status:      input.Status,
		Priority:    input.Priority,
		Deadline:    input.Deadline,
		Color:       input.Color,
	}
	if project.Status == "" {
		project.Status = models.ProjectStatusActive
	}
	if project.Priority == "" {
		project.Priority = models.PriorityMedium
	}

	if err := pc.DB.Create(&project).Error; err != nil {
		pc.Logger.Printf("Failed to create project: %v", err)
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create project", err)
	}

	// Seed embedded tasks. Each creation is an independent store call,
	// dispatched together and awaited together; a failing task rolls back
	// neither the project nor any task created before it.
	tasksCreated := 0
	if len(input.Tasks) > 0 {
		var wg sync.WaitGroup
		results := make([]error, len(input.Tasks))
		for i, t := range input.Tasks {
			wg.Add(1)
			go func(i int, t EmbeddedTaskRequest) {
				defer wg.Done()
				task := models.Task{
					Title:       t.Title,
					Description: t.Description,
					ProjectID:   project.ID,
					CreatedByID: user.ID,
					Priority:    t.Priority,
					Stage:       models.StagePlanning,
					DueDate:     t.DueDate,
					Tags:        t.Tags,
				}
				if task.Priority == "" {
					task.Priority = models.PriorityMedium
				}
				status := t.Status
				if status == "" {
					status = models.TaskStatusTodo
				}
				task.SetStatus(status)
				results[i] = pc.DB.Create(&task).Error
			}(i, t)
		}
		wg.Wait()

		for i, err := range results {
			if err != nil {
				pc.Logger.Printf("Failed to create embedded task %q: %v", input.Tasks[i].Title, err)
				continue
			}
			tasksCreated++
		}
		pc.Logger.Printf("Created %d tasks for project: %s", tasksCreated, project.Title)
	}

	recordActivity(pc.DB, pc.Logger, user.ID, "Created Project", &project.ID, nil)

	populated, err := models.FindProjectWithRefs(pc.DB, project.ID)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to load created project", err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":      true,
		"data":         populated,
		"tasksCreated": tasksCreated,
	})
}
