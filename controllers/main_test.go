package controller_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"togglenest/config"
	"togglenest/models"
	"togglenest/routes"
	"togglenest/utils"
)

// setupTest wires a fresh in-memory store and a fully routed app. The single
// connection keeps every handler on the same sqlite database.
func setupTest(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := config.MigrateDB(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	config.DB = db
	config.AppConfig.JWTSecret = "test-secret"
	config.AppConfig.Environment = "development"
	config.AppConfig.RateLimitAuth = 1000
	config.AppConfig.Redis.Enabled = false

	app := fiber.New()
	routes.SetupRoutes(app, db)
	return app, db
}

func createTestUser(t *testing.T, db *gorm.DB, name, email, role string) (*models.User, string) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	user := models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     true,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user %s: %v", email, err)
	}

	token, _, err := utils.GenerateJWTToken(&user)
	if err != nil {
		t.Fatalf("failed to generate token for %s: %v", email, err)
	}
	return &user, token
}

// doRequest performs a request against the app and decodes the JSON body.
func doRequest(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reqBody *bytes.Buffer
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reqBody = bytes.NewBuffer(payload)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request %s %s failed: %v", method, path, err)
	}

	var decoded map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		t.Fatalf("failed to decode response of %s %s: %v", method, path, err)
	}
	return resp, decoded
}

func createTestProject(t *testing.T, app *fiber.App, token, title string) uint {
	t.Helper()

	resp, body := doRequest(t, app, fiber.MethodPost, "/api/projects", token, fiber.Map{
		"title": title,
	})
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("failed to create project %q: status %d, body %v", title, resp.StatusCode, body)
	}
	data := body["data"].(map[string]interface{})
	return uint(data["ID"].(float64))
}

func createTestTask(t *testing.T, app *fiber.App, token string, projectID uint, title string) uint {
	t.Helper()

	resp, body := doRequest(t, app, fiber.MethodPost, "/api/tasks", token, fiber.Map{
		"title":   title,
		"project": projectID,
	})
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("failed to create task %q: status %d, body %v", title, resp.StatusCode, body)
	}
	data := body["data"].(map[string]interface{})
	return uint(data["ID"].(float64))
}
