package checkoutRoutes

import (
	checkoutControllers "lms/controllers/checkout"
	"lms/middleware"
	validators "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

func SetupCheckoutRoutes(app *fiber.App) {
	courseGroup := app.Group("/course")
	courseGroup.Post("/:id/checkout", middleware.JWTMiddleware, validators.CourseID(), checkoutControllers.Checkout)

	// Provider webhook, authenticated by signature instead of JWT
	app.Post("/webhook/payment", checkoutControllers.PaymentWebhook)
}
