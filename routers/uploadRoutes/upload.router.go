package uploadRoutes

import (
	uploadControllers "lms/controllers/upload"
	"lms/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupUploadRoutes(app *fiber.App) {
	app.Post("/upload", middleware.JWTMiddleware, uploadControllers.UploadFile)
}
