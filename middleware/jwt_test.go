package middleware

import (
	"lms/config"
	"lms/models"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestApp() *fiber.App {
	config.AppConfig = &config.Config{JWTKey: "test-secret"}

	app := fiber.New()
	app.Get("/student-only", JWTMiddleware, IsStudent, func(c *fiber.Ctx) error {
		return JsonResponse(c, fiber.StatusOK, true, "ok", nil)
	})
	app.Get("/admin-only", JWTMiddleware, IsAdmin, func(c *fiber.Ctx) error {
		return JsonResponse(c, fiber.StatusOK, true, "ok", nil)
	})
	return app
}

func TestJWTMiddlewareRejectsMissingToken(t *testing.T) {
	app := setupTestApp()

	// No cookie, no body token, no Authorization header
	req := httptest.NewRequest("GET", "/student-only", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestJWTMiddlewareRejectsGarbageToken(t *testing.T) {
	app := setupTestApp()

	req := httptest.NewRequest("GET", "/student-only", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestJWTMiddlewareRejectsWrongSecret(t *testing.T) {
	config.AppConfig = &config.Config{JWTKey: "other-secret"}
	token, err := GenerateJWT(1, "Eve", models.RoleStudent, "eve@example.com")
	require.NoError(t, err)

	app := setupTestApp() // resets JWTKey to test-secret

	req := httptest.NewRequest("GET", "/student-only", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestJWTMiddlewareAcceptsBearerToken(t *testing.T) {
	app := setupTestApp()

	token, err := GenerateJWT(1, "Alice", models.RoleStudent, "alice@example.com")
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/student-only", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestJWTMiddlewareAcceptsCookieToken(t *testing.T) {
	app := setupTestApp()

	token, err := GenerateJWT(1, "Alice", models.RoleStudent, "alice@example.com")
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/student-only", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: token})
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRoleGuardRejectsWrongRole(t *testing.T) {
	app := setupTestApp()

	token, err := GenerateJWT(2, "Bob", models.RoleInstructor, "bob@example.com")
	require.NoError(t, err)

	// Instructor hitting a student-only route
	req := httptest.NewRequest("GET", "/student-only", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	// And a student hitting the admin route
	studentToken, err := GenerateJWT(1, "Alice", models.RoleStudent, "alice@example.com")
	require.NoError(t, err)

	req = httptest.NewRequest("GET", "/admin-only", nil)
	req.Header.Set("Authorization", "Bearer "+studentToken)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestRoleGuardAllowsMatchingRole(t *testing.T) {
	app := setupTestApp()

	token, err := GenerateJWT(3, "Carol", models.RoleAdmin, "carol@example.com")
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/admin-only", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
