package main

import (
	"log"

	"lms/config"
	"lms/database"
	authRoutes "lms/routers/authRoutes"
	categoryRoutes "lms/routers/categoryRoutes"
	checkoutRoutes "lms/routers/checkoutRoutes"
	courseRoutes "lms/routers/courseRoutes"
	uploadRoutes "lms/routers/uploadRoutes"
	"lms/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE",   // Allowed HTTP methods
		AllowHeaders: "Content-Type,Authorization",  // Allowed headers
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	// Serve static files (uploaded images, videos, attachments)
	app.Static("/", "./public")

	authRoutes.SetupAuthRoutes(app)
	categoryRoutes.SetupCategoryRoutes(app)
	courseRoutes.SetupInstructorCourseRoutes(app)
	courseRoutes.SetupCourseRoutes(app)
	checkoutRoutes.SetupCheckoutRoutes(app)
	uploadRoutes.SetupUploadRoutes(app)

	// Expire abandoned checkout sessions in the background
	utils.StartCheckoutScheduler()

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
