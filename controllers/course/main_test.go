package controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"lms/config"
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	"lms/routers/courseRoutes"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupApp builds a fiber app with a fresh in-memory database and the
// course routes registered
func setupApp(t *testing.T) *fiber.App {
	t.Helper()

	config.AppConfig = &config.Config{
		JWTKey:    "test-secret",
		SaltRound: 4,
		AppURL:    "http://localhost:3000",
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
	courseRoutes.SetupCourseRoutes(app)
	courseRoutes.SetupInstructorCourseRoutes(app)
	return app
}

func createUser(t *testing.T, name, email string) (models.User, string) {
	t.Helper()

	user := models.User{Name: name, Email: email, Role: "USER", Password: "hashed"}
	require.NoError(t, database.Database.Db.Create(&user).Error)

	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Role, user.Email)
	require.NoError(t, err)
	return user, token
}

func seedCategory(t *testing.T, name string) models.Category {
	t.Helper()

	category := models.Category{Name: name}
	require.NoError(t, database.Database.Db.Create(&category).Error)
	return category
}

func seedCourse(t *testing.T, course courseModels.Course) courseModels.Course {
	t.Helper()

	require.NoError(t, database.Database.Db.Create(&course).Error)
	return course
}

func seedChapter(t *testing.T, courseID uint, title string, position int, published, free bool) courseModels.Chapter {
	t.Helper()

	chapter := courseModels.Chapter{
		CourseID:    courseID,
		Title:       title,
		Position:    position,
		IsPublished: published,
		IsFree:      free,
	}
	require.NoError(t, database.Database.Db.Create(&chapter).Error)
	return chapter
}

func seedPurchase(t *testing.T, userID, courseID uint) {
	t.Helper()

	require.NoError(t, database.Database.Db.Create(&courseModels.Purchase{UserID: userID, CourseID: courseID}).Error)
}

// doRequest performs a JSON request against the app and decodes the
// response envelope
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

func dataOf(t *testing.T, parsed map[string]interface{}) map[string]interface{} {
	t.Helper()

	data, ok := parsed["data"].(map[string]interface{})
	require.True(t, ok, "expected object data, got %v", parsed["data"])
	return data
}

func floatPtr(v float64) *float64 { return &v }
func uintPtr(v uint) *uint        { return &v }
