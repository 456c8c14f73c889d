package authController

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"lms/config"
	"lms/database"
	"lms/models"
	validators "lms/validators/auth"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.User{}))
	return db
}

func setupAuthApp(t *testing.T) *fiber.App {
	t.Helper()

	config.AppConfig = &config.Config{JWTKey: "test-secret", SaltRound: 4}

	app := fiber.New()
	app.Post("/auth/signup", validators.Signup(), Signup)
	app.Post("/auth/login", validators.Login(), Login)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, payload interface{}) (int, map[string]interface{}) {
	t.Helper()

	raw, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &decoded))
	return resp.StatusCode, decoded
}

func TestSignupCreatesStudentByDefault(t *testing.T) {
	db := newTestDB(t)
	database.Database = database.DbInstance{Db: db}

	app := setupAuthApp(t)
	status, body := postJSON(t, app, "/auth/signup", fiber.Map{
		"name":     "Alice",
		"email":    "alice@example.com",
		"password": "supersecret",
	})

	require.Equal(t, fiber.StatusCreated, status)
	assert.Equal(t, true, body["status"])

	var user models.User
	require.NoError(t, db.Where("email = ?", "alice@example.com").First(&user).Error)
	assert.Equal(t, models.RoleStudent, user.Role)
	assert.NotEqual(t, "supersecret", user.Password) // stored hashed
}

func TestSignupRefusesAdminRole(t *testing.T) {
	db := newTestDB(t)
	database.Database = database.DbInstance{Db: db}

	app := setupAuthApp(t)
	status, _ := postJSON(t, app, "/auth/signup", fiber.Map{
		"name":     "Eve",
		"email":    "eve@example.com",
		"password": "supersecret",
		"role":     "ADMIN",
	})
	require.Equal(t, fiber.StatusCreated, status)

	var user models.User
	require.NoError(t, db.Where("email = ?", "eve@example.com").First(&user).Error)
	assert.Equal(t, models.RoleStudent, user.Role)
}

func TestSignupRejectsDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	database.Database = database.DbInstance{Db: db}

	app := setupAuthApp(t)
	payload := fiber.Map{"name": "Alice", "email": "alice@example.com", "password": "supersecret"}

	status, _ := postJSON(t, app, "/auth/signup", payload)
	require.Equal(t, fiber.StatusCreated, status)

	status, _ = postJSON(t, app, "/auth/signup", payload)
	assert.Equal(t, fiber.StatusConflict, status)
}

func TestLoginReturnsToken(t *testing.T) {
	db := newTestDB(t)
	database.Database = database.DbInstance{Db: db}

	app := setupAuthApp(t)
	status, _ := postJSON(t, app, "/auth/signup", fiber.Map{
		"name":     "Alice",
		"email":    "alice@example.com",
		"password": "supersecret",
	})
	require.Equal(t, fiber.StatusCreated, status)

	status, body := postJSON(t, app, "/auth/login", fiber.Map{
		"email":    "alice@example.com",
		"password": "supersecret",
	})
	require.Equal(t, fiber.StatusOK, status)

	data := body["data"].(map[string]interface{})
	assert.NotEmpty(t, data["token"])
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	db := newTestDB(t)
	database.Database = database.DbInstance{Db: db}

	app := setupAuthApp(t)
	status, _ := postJSON(t, app, "/auth/signup", fiber.Map{
		"name":     "Alice",
		"email":    "alice@example.com",
		"password": "supersecret",
	})
	require.Equal(t, fiber.StatusCreated, status)

	status, _ = postJSON(t, app, "/auth/login", fiber.Map{
		"email":    "alice@example.com",
		"password": "wrong-password",
	})
	assert.Equal(t, fiber.StatusUnauthorized, status)
}
