package categoryRoutes

import (
	categoryControllers "lms/controllers/category"
	"lms/middleware"
	categoryValidators "lms/validators/category"

	"github.com/gofiber/fiber/v2"
)

func SetupCategoryRoutes(app *fiber.App) {
	app.Get("/categories", categoryControllers.GetCategories)

	adminGroup := app.Group("/admin/category")
	adminGroup.Post("/create", middleware.JWTMiddleware, categoryValidators.CreateCategory(), categoryControllers.AdminCreateCategory)
}
