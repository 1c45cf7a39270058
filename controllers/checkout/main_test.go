package checkoutController_test

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
	"lms/routers/checkoutRoutes"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupApp(t *testing.T) *fiber.App {
	t.Helper()

	config.AppConfig = &config.Config{
		JWTKey:               "test-secret",
		AppURL:               "http://localhost:3000",
		PaymentApiKey:        "test-key",
		PaymentWebhookSecret: "test-webhook-secret",
		CheckoutTTLMinutes:   60,
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
	checkoutRoutes.SetupCheckoutRoutes(app)
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

func seedCourse(t *testing.T, ownerID uint, title string, price float64, published bool) courseModels.Course {
	t.Helper()

	course := courseModels.Course{
		UserID:      ownerID,
		Title:       title,
		Description: "A course.",
		Price:       &price,
		IsPublished: published,
	}
	require.NoError(t, database.Database.Db.Create(&course).Error)
	return course
}

func purchaseCount(t *testing.T, userID, courseID uint) int64 {
	t.Helper()

	var count int64
	database.Database.Db.Model(&courseModels.Purchase{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).Count(&count)
	return count
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
