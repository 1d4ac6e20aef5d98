// file: internals/features/users/auth/controller/auth_controller_test.go
package controller

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"kelasku_backend/internals/configs"
	authModel "kelasku_backend/internals/features/users/auth/model"
	userModel "kelasku_backend/internals/features/users/user/model"
)

func setupApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	configs.JWTSecret = "test-secret"

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&userModel.UserModel{}, &authModel.TokenBlacklist{}))

	app := fiber.New()
	ctrl := NewAuthController(db)
	app.Post("/api/auth/register", ctrl.Register)
	app.Post("/api/auth/login", ctrl.Login)
	return app, db
}

func postJSON(t *testing.T, app *fiber.App, path string, body interface{}) (int, map[string]interface{}) {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]interface{}
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp.StatusCode, out
}

func TestRegister_Success(t *testing.T) {
	app, db := setupApp(t)

	status, body := postJSON(t, app, "/api/auth/register", map[string]string{
		"user_name": "Budi Santoso",
		"email":     "Budi@Example.com",
		"password":  "rahasia-banget",
	})
	require.Equal(t, fiber.StatusCreated, status)
	assert.Equal(t, "success", body["status"])

	// email dinormalkan lowercase, password tidak disimpan plaintext
	var user userModel.UserModel
	require.NoError(t, db.First(&user, "user_email = ?", "budi@example.com").Error)
	assert.Equal(t, "student", user.UserRole)
	assert.NotEqual(t, "rahasia-banget", user.UserPassword)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	app, _ := setupApp(t)

	payload := map[string]string{
		"user_name": "Budi Santoso",
		"email":     "budi@example.com",
		"password":  "rahasia-banget",
	}
	status, _ := postJSON(t, app, "/api/auth/register", payload)
	require.Equal(t, fiber.StatusCreated, status)

	status, _ = postJSON(t, app, "/api/auth/register", payload)
	assert.Equal(t, fiber.StatusConflict, status)
}

func TestRegister_ValidationError(t *testing.T) {
	app, _ := setupApp(t)

	status, _ := postJSON(t, app, "/api/auth/register", map[string]string{
		"user_name": "B",
		"email":     "bukan-email",
		"password":  "pendek",
	})
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestLogin(t *testing.T) {
	app, _ := setupApp(t)

	status, _ := postJSON(t, app, "/api/auth/register", map[string]string{
		"user_name": "Budi Santoso",
		"email":     "budi@example.com",
		"password":  "rahasia-banget",
	})
	require.Equal(t, fiber.StatusCreated, status)

	status, body := postJSON(t, app, "/api/auth/login", map[string]string{
		"email":    "budi@example.com",
		"password": "rahasia-banget",
	})
	require.Equal(t, fiber.StatusOK, status)
	data, ok := body["data"].(map[string]interface{})
	require.True(t, ok)
	assert.NotEmpty(t, data["access_token"])
	assert.Equal(t, "student", data["user_role"])

	// password salah
	status, _ = postJSON(t, app, "/api/auth/login", map[string]string{
		"email":    "budi@example.com",
		"password": "salah-total",
	})
	assert.Equal(t, fiber.StatusUnauthorized, status)
}
