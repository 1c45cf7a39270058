package authController_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"lms/config"
	"lms/database"
	"lms/models"
	"lms/routers/authRoutes"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupApp(t *testing.T) *fiber.App {
	t.Helper()

	config.AppConfig = &config.Config{
		JWTKey:    "test-secret",
		SaltRound: 4,
	}

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	authRoutes.SetupAuthRoutes(app)
	return app
}

func doRequest(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (int, map[string]interface{}) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var parsed map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&parsed)
	return resp.StatusCode, parsed
}

func TestSignupAndLogin(t *testing.T) {
	app := setupApp(t)

	status, parsed := doRequest(t, app, "POST", "/auth/signup", "", map[string]string{
		"name":     "Bob",
		"email":    "bob@example.com",
		"password": "hunter2hunter2",
	})
	require.Equal(t, 201, status)

	data := parsed["data"].(map[string]interface{})
	assert.Equal(t, "bob@example.com", data["Email"])
	// Password never leaves the server
	assert.Equal(t, "", data["Password"])

	status, parsed = doRequest(t, app, "POST", "/auth/login", "", map[string]string{
		"email":    "bob@example.com",
		"password": "hunter2hunter2",
	})
	require.Equal(t, 200, status)

	loginData := parsed["data"].(map[string]interface{})
	assert.NotEmpty(t, loginData["token"])
}

func TestSignupValidation(t *testing.T) {
	app := setupApp(t)

	status, _ := doRequest(t, app, "POST", "/auth/signup", "", map[string]string{
		"name":     "Bob",
		"email":    "not-an-email",
		"password": "short",
	})
	assert.Equal(t, 422, status)
}

func TestSignupDuplicateEmail(t *testing.T) {
	app := setupApp(t)

	body := map[string]string{
		"name":     "Bob",
		"email":    "bob@example.com",
		"password": "hunter2hunter2",
	}
	status, _ := doRequest(t, app, "POST", "/auth/signup", "", body)
	require.Equal(t, 201, status)

	status, parsed := doRequest(t, app, "POST", "/auth/signup", "", body)
	assert.Equal(t, 409, status)
	assert.Equal(t, "Email is already registered!", parsed["message"])
}

func TestLoginBlocksAfterRepeatedFailures(t *testing.T) {
	app := setupApp(t)

	status, _ := doRequest(t, app, "POST", "/auth/signup", "", map[string]string{
		"name":     "Bob",
		"email":    "bob@example.com",
		"password": "hunter2hunter2",
	})
	require.Equal(t, 201, status)

	for i := 0; i < 5; i++ {
		status, _ := doRequest(t, app, "POST", "/auth/login", "", map[string]string{
			"email":    "bob@example.com",
			"password": "wrong-password",
		})
		assert.Equal(t, 401, status)
	}

	var user models.User
	require.NoError(t, database.Database.Db.Where("email = ?", "bob@example.com").First(&user).Error)
	assert.True(t, user.IsBlocked)

	// Even the correct password is refused once blocked
	status, parsed := doRequest(t, app, "POST", "/auth/login", "", map[string]string{
		"email":    "bob@example.com",
		"password": "hunter2hunter2",
	})
	assert.Equal(t, 401, status)
	assert.Equal(t, "Your account is blocked. Contact support.", parsed["message"])
}

func TestChangePassword(t *testing.T) {
	app := setupApp(t)

	status, _ := doRequest(t, app, "POST", "/auth/signup", "", map[string]string{
		"name":     "Bob",
		"email":    "bob@example.com",
		"password": "hunter2hunter2",
	})
	require.Equal(t, 201, status)

	status, parsed := doRequest(t, app, "POST", "/auth/login", "", map[string]string{
		"email":    "bob@example.com",
		"password": "hunter2hunter2",
	})
	require.Equal(t, 200, status)
	token := parsed["data"].(map[string]interface{})["token"].(string)

	status, _ = doRequest(t, app, "PUT", "/auth/change/password", token, map[string]string{
		"currentPassword": "wrong-password",
		"newPassword":     "anotherSecret99",
	})
	assert.Equal(t, 401, status)

	status, _ = doRequest(t, app, "PUT", "/auth/change/password", token, map[string]string{
		"currentPassword": "hunter2hunter2",
		"newPassword":     "anotherSecret99",
	})
	require.Equal(t, 200, status)

	status, _ = doRequest(t, app, "POST", "/auth/login", "", map[string]string{
		"email":    "bob@example.com",
		"password": "anotherSecret99",
	})
	assert.Equal(t, 200, status)
}
