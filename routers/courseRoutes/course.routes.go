package courseRoutes

import (
	controllers "lms/controllers/course"
	"lms/middleware"
	validators "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up all student-facing course routes
func SetupCourseRoutes(app *fiber.App) {
	userGroup := app.Group("/course")

	// Catalog browsing (published courses only)
	userGroup.Get("/list", middleware.JWTMiddleware, validators.List(), controllers.BrowseCourses)
	userGroup.Get("/:id", middleware.JWTMiddleware, validators.CourseID(), controllers.GetCatalogCourse)

	// Chapter viewing (free chapters or purchased courses)
	userGroup.Get("/:id/chapter/:chapter_id", middleware.JWTMiddleware, validators.CourseID(), validators.ChapterID(), controllers.GetCatalogChapter)

	// Progress tracking
	userGroup.Put("/:id/chapter/:chapter_id/progress", middleware.JWTMiddleware, validators.CourseID(), validators.ChapterID(), validators.UpdateProgress(), controllers.UpdateChapterProgress)

	// Student dashboard
	userEnrollGroup := app.Group("/user")
	userEnrollGroup.Get("/dashboard", middleware.JWTMiddleware, controllers.GetDashboard)
}
