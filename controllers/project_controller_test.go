package controller_test

import (
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"

	"togglenest/models"
)

func TestCreateProjectSetsOwnerAndDefaults(t *testing.T) {
	app, db := setupTest(t)
	owner, token := createTestUser(t, db, "Alice", "alice@example.com", models.RoleMember)

	resp, body := doRequest(t, app, fiber.MethodPost, "/api/projects", token, fiber.Map{
		"title": "Launch",
	})
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("expected 201, got %d: %v", resp.StatusCode, body)
	}

	data := body["data"].(map[string]interface{})
	if got := uint(data["owner_id"].(float64)); got != owner.ID {
		t.Errorf("expected owner %d, got %d", owner.ID, got)
	}
	if data["status"] != models.ProjectStatusActive {
		t.Errorf("expected default status active, got %v", data["status"])
	}
	if data["priority"] != models.PriorityMedium {
		t.Errorf("expected default priority medium, got %v", data["priority"])
	}
}

func TestCreateProjectValidation(t *testing.T) {
	app, db := setupTest(t)
	_, token := createTestUser(t, db, "Alice", "alice@example.com", models.RoleMember)

	// Missing title
	resp, body := doRequest(t, app, fiber.MethodPost, "/api/projects", token, fiber.Map{
		"description": "no title here",
	})
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for missing title, got %d: %v", resp.StatusCode, body)
	}

	// Invalid status
	resp, body = doRequest(t, app, fiber.MethodPost, "/api/projects", token, fiber.Map{
		"title":  "Bad status",
		"status": "archived",
	})
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for invalid status, got %d: %v", resp.StatusCode, body)
	}
}

func TestCreateProjectWithEmbeddedTasks(t *testing.T) {
	app, db := setupTest(t)
	_, token := createTestUser(t, db, "Alice", "alice@example.com", models.RoleMember)

	resp, body := doRequest(t, app, fiber.MethodPost, "/api/projects", token, fiber.Map{
		"title": "Seeded",
		"tasks": []fiber.Map{
			{"title": "Design"},
			{"title": "Build", "priority": "high"},
			{"title": "Ship", "status": "in-progress"},
		},
	})
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("expected 201, got %d: %v", resp.StatusCode, body)
	}
	if got := int(body["tasksCreated"].(float64)); got != 3 {
		t.Fatalf("expected 3 tasks created, got %d", got)
	}

	projectID := uint(body["data"].(map[string]interface{})["ID"].(float64))
	var tasks []models.Task
	if err := db.Where("project_id = ?", projectID).Find(&tasks).Error; err != nil {
		t.Fatalf("failed to load tasks: %v", err)
	}
	if len(tasks) != 3 {
		t.Fatalf("expected 3 tasks in store, got %d", len(tasks))
	}
	for _, task := range tasks {
		if task.Stage != models.StagePlanning {
			t.Errorf("task %q: expected stage planning, got %s", task.Title, task.Stage)
		}
	}
}

func TestDeleteProjectCascadesToTasks(t *testing.T) {
	app, db := setupTest(t)
	_, token := createTestUser(t, db, "Alice", "alice@example.com", models.RoleMember)

	projectID := createTestProject(t, app, token, "Doomed")
	otherID := createTestProject(t, app, token, "Survivor")
	createTestTask(t, app, token, projectID, "task one")
	createTestTask(t, app, token, projectID, "task two")
	keptTask := createTestTask(t, app, token, otherID, "kept")

	resp, body := doRequest(t, app, fiber.MethodDelete, fmt.Sprintf("/api/projects/%d", projectID), token, nil)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d: %v", resp.StatusCode, body)
	}

	var count int64
	if err := db.Model(&models.Task{}).Where("project_id = ?", projectID).Count(&count).Error; err != nil {
		t.Fatalf("failed to count tasks: %v", err)
	}
	if count != 0 {
		t.Errorf("expected no tasks for deleted project, got %d", count)
	}

	// Listing by the deleted project returns an empty sequence
	resp, body = doRequest(t, app, fiber.MethodGet, fmt.Sprintf("/api/tasks?project=%d", projectID), token, nil)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if got := int(body["count"].(float64)); got != 0 {
		t.Errorf("expected empty task list, got %d entries", got)
	}

	// The other project's task is untouched
	var kept models.Task
	if err := db.First(&kept, keptTask).Error; err != nil {
		t.Errorf("expected task %d to survive, got %v", keptTask, err)
	}
}

func TestDeleteProjectRequiresOwnership(t *testing.T) {
	app, db := setupTest(t)
	_, ownerToken := createTestUser(t, db, "Alice", "alice@example.com", models.RoleMember)
	_, otherToken := createTestUser(t, db, "Bob", "bob@example.com", models.RoleMember)

	projectID := createTestProject(t, app, ownerToken, "Mine")

	resp, _ := doRequest(t, app, fiber.MethodDelete, fmt.Sprintf("/api/projects/%d", projectID), otherToken, nil)
	if resp.StatusCode != fiber.StatusForbidden {
		t.Fatalf("expected 403 for non-owner delete, got %d", resp.StatusCode)
	}
}

func TestAddMemberRejectsDuplicates(t *testing.T) {
	app, db := setupTest(t)
	_, token := createTestUser(t, db, "Alice", "alice@example.com", models.RoleMember)
	member, _ := createTestUser(t, db, "Bob", "bob@example.com", models.RoleMember)

	projectID := createTestProject(t, app, token, "Team project")
	path := fmt.Sprintf("/api/projects/%d/members", projectID)

	resp, body := doRequest(t, app, fiber.MethodPost, path, token, fiber.Map{"userId": member.ID})
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 on first add, got %d: %v", resp.StatusCode, body)
	}

	resp, _ = doRequest(t, app, fiber.MethodPost, path, token, fiber.Map{"userId": member.ID})
	if resp.StatusCode != fiber.StatusConflict {
		t.Fatalf("expected 409 on duplicate add, got %d", resp.StatusCode)
	}

	project, err := models.FindProjectWithRefs(db, projectID)
	if err != nil {
		t.Fatalf("failed to load project: %v", err)
	}
	occurrences := 0
	for _, m := range project.Members {
		if m.ID == member.ID {
			occurrences++
		}
	}
	if occurrences != 1 {
		t.Errorf("expected member to appear exactly once, got %d", occurrences)
	}
}

func TestRemoveMemberIsIdempotent(t *testing.T) {
	app, db := setupTest(t)
	_, token := createTestUser(t, db, "Alice", "alice@example.com", models.RoleMember)
	member, _ := createTestUser(t, db, "Bob", "bob@example.com", models.RoleMember)
	stranger, _ := createTestUser(t, db, "Carol", "carol@example.com", models.RoleMember)

	projectID := createTestProject(t, app, token, "Team project")
	doRequest(t, app, fiber.MethodPost, fmt.Sprintf("/api/projects/%d/members", projectID), token, fiber.Map{"userId": member.ID})

	// Removing a non-member succeeds and leaves membership unchanged
	resp, _ := doRequest(t, app, fiber.MethodDelete,
		fmt.Sprintf("/api/projects/%d/members/%d", projectID, stranger.ID), token, nil)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 removing non-member, got %d", resp.StatusCode)
	}

	project, err := models.FindProjectWithRefs(db, projectID)
	if err != nil {
		t.Fatalf("failed to load project: %v", err)
	}
	if len(project.Members) != 1 || project.Members[0].ID != member.ID {
		t.Errorf("expected membership unchanged, got %d members", len(project.Members))
	}
}

func TestSearchProjectsMatchesTitleOrDescription(t *testing.T) {
	app, db := setupTest(t)
	_, token := createTestUser(t, db, "Alice", "alice@example.com", models.RoleMember)

	doRequest(t, app, fiber.MethodPost, "/api/projects", token, fiber.Map{"title": "Launch Week"})
	doRequest(t, app, fiber.MethodPost, "/api/projects", token, fiber.Map{
		"title":       "Internal tools",
		"description": "Preparing the launch dashboard",
	})
	doRequest(t, app, fiber.MethodPost, "/api/projects", token, fiber.Map{"title": "Unrelated"})

	resp, body := doRequest(t, app, fiber.MethodGet, "/api/projects?search=launch", token, nil)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if got := int(body["count"].(float64)); got != 2 {
		t.Fatalf("expected 2 matches for case-insensitive search, got %d: %v", got, body["data"])
	}
}

func TestGetProjectsPaginationAndTaskCount(t *testing.T) {
	app, db := setupTest(t)
	_, token := createTestUser(t, db, "Alice", "alice@example.com", models.RoleMember)

	for i := 0; i < 3; i++ {
		createTestProject(t, app, token, fmt.Sprintf("Project %d", i))
	}
	firstID := createTestProject(t, app, token, "Busy project")
	createTestTask(t, app, token, firstID, "one")
	createTestTask(t, app, token, firstID, "two")

	resp, body := doRequest(t, app, fiber.MethodGet, "/api/projects?page=1&limit=2", token, nil)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	pagination := body["pagination"].(map[string]interface{})
	if got := int(pagination["totalProjects"].(float64)); got != 4 {
		t.Errorf("expected totalProjects 4, got %d", got)
	}
	if got := int(pagination["totalPages"].(float64)); got != 2 {
		t.Errorf("expected totalPages 2, got %d", got)
	}

	// Default sort is newest first, so the busy project leads the page
	data := body["data"].([]interface{})
	first := data[0].(map[string]interface{})
	if first["title"] != "Busy project" {
		t.Errorf("expected newest project first, got %v", first["title"])
	}
	if got := int(first["taskCount"].(float64)); got != 2 {
		t.Errorf("expected taskCount 2, got %d", got)
	}
}

func TestUpdateProjectIgnoresOwnerField(t *testing.T) {
	app, db := setupTest(t)
	owner, token := createTestUser(t, db, "Alice", "alice@example.com", models.RoleMember)
	intruder, _ := createTestUser(t, db, "Bob", "bob@example.com", models.RoleMember)

	projectID := createTestProject(t, app, token, "Held tight")

	resp, body := doRequest(t, app, fiber.MethodPut, fmt.Sprintf("/api/projects/%d", projectID), token, fiber.Map{
		"title":    "Renamed",
		"owner_id": intruder.ID,
	})
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d: %v", resp.StatusCode, body)
	}

	var project models.Project
	if err := db.First(&project, projectID).Error; err != nil {
		t.Fatalf("failed to load project: %v", err)
	}
	if project.OwnerID != owner.ID {
		t.Errorf("owner changed through generic update: got %d", project.OwnerID)
	}
	if project.Title != "Renamed" {
		t.Errorf("expected title updated, got %q", project.Title)
	}
}

func TestUpdateProjectRequiresOwnership(t *testing.T) {
	app, db := setupTest(t)
	_, ownerToken := createTestUser(t, db, "Alice", "alice@example.com", models.RoleMember)
	_, otherToken := createTestUser(t, db, "Bob", "bob@example.com", models.RoleMember)
	_, adminToken := createTestUser(t, db, "Root", "root@example.com", models.RoleAdmin)

	projectID := createTestProject(t, app, ownerToken, "Guarded")
	path := fmt.Sprintf("/api/projects/%d", projectID)

	resp, _ := doRequest(t, app, fiber.MethodPut, path, otherToken, fiber.Map{"title": "Hijacked"})
	if resp.StatusCode != fiber.StatusForbidden {
		t.Fatalf("expected 403 for non-owner update, got %d", resp.StatusCode)
	}

	resp, _ = doRequest(t, app, fiber.MethodPut, path, adminToken, fiber.Map{"title": "Admin touch"})
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for admin update, got %d", resp.StatusCode)
	}
}

func TestTransferOwnershipIsAdminGated(t *testing.T) {
	app, db := setupTest(t)
	_, ownerToken := createTestUser(t, db, "Alice", "alice@example.com", models.RoleMember)
	target, _ := createTestUser(t, db, "Bob", "bob@example.com", models.RoleMember)
	_, adminToken := createTestUser(t, db, "Root", "root@example.com", models.RoleAdmin)

	projectID := createTestProject(t, app, ownerToken, "Handover")
	path := fmt.Sprintf("/api/projects/%d/owner", projectID)

	// Even the owner cannot transfer without the admin role
	resp, _ := doRequest(t, app, fiber.MethodPut, path, ownerToken, fiber.Map{"ownerId": target.ID})
	if resp.StatusCode != fiber.StatusForbidden {
		t.Fatalf("expected 403 for non-admin transfer, got %d", resp.StatusCode)
	}

	resp, body := doRequest(t, app, fiber.MethodPut, path, adminToken, fiber.Map{"ownerId": target.ID})
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for admin transfer, got %d: %v", resp.StatusCode, body)
	}

	var project models.Project
	if err := db.First(&project, projectID).Error; err != nil {
		t.Fatalf("failed to load project: %v", err)
	}
	if project.OwnerID != target.ID {
		t.Errorf("expected new owner %d, got %d", target.ID, project.OwnerID)
	}
}

func TestGetMyProjects(t *testing.T) {
	app, db := setupTest(t)
	_, aliceToken := createTestUser(t, db, "Alice", "alice@example.com", models.RoleMember)
	bob, bobToken := createTestUser(t, db, "Bob", "bob@example.com", models.RoleMember)

	owned := createTestProject(t, app, bobToken, "Bob's own")
	joined := createTestProject(t, app, aliceToken, "Alice's, Bob joins")
	createTestProject(t, app, aliceToken, "Alice only")

	doRequest(t, app, fiber.MethodPost, fmt.Sprintf("/api/projects/%d/members", joined), aliceToken, fiber.Map{"userId": bob.ID})

	resp, body := doRequest(t, app, fiber.MethodGet, "/api/projects/my-projects", bobToken, nil)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if got := int(body["count"].(float64)); got != 2 {
		t.Fatalf("expected 2 projects for Bob, got %d", got)
	}

	seen := map[float64]bool{}
	for _, item := range body["data"].([]interface{}) {
		seen[item.(map[string]interface{})["ID"].(float64)] = true
	}
	if !seen[float64(owned)] || !seen[float64(joined)] {
		t.Errorf("expected owned and joined projects, got %v", seen)
	}
}

func TestGetProjectStats(t *testing.T) {
	app, db := setupTest(t)
	_, token := createTestUser(t, db, "Alice", "alice@example.com", models.RoleMember)

	doRequest(t, app, fiber.MethodPost, "/api/projects", token, fiber.Map{"title": "A"})
	doRequest(t, app, fiber.MethodPost, "/api/projects", token, fiber.Map{"title": "B", "status": "completed"})
	doRequest(t, app, fiber.MethodPost, "/api/projects", token, fiber.Map{"title": "C", "status": "on-hold"})
	doRequest(t, app, fiber.MethodPost, "/api/projects", token, fiber.Map{"title": "D", "status": "completed"})

	resp, body := doRequest(t, app, fiber.MethodGet, "/api/projects/stats", token, nil)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	data := body["data"].(map[string]interface{})
	if got := int(data["total"].(float64)); got != 4 {
		t.Errorf("expected total 4, got %d", got)
	}
	byStatus := data["byStatus"].(map[string]interface{})
	if got := int(byStatus["completed"].(float64)); got != 2 {
		t.Errorf("expected 2 completed, got %d", got)
	}
}

func TestGetProjectNotFound(t *testing.T) {
	app, db := setupTest(t)
	_, token := createTestUser(t, db, "Alice", "alice@example.com", models.RoleMember)

	resp, body := doRequest(t, app, fiber.MethodGet, "/api/projects/9999", token, nil)
	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
	if body["success"] != false {
		t.Errorf("expected success=false, got %v", body["success"])
	}
}
