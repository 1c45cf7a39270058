package courseRoutes

import (
	controllers "lms/controllers/course"
	"lms/middleware"
	validators "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupInstructorCourseRoutes sets up all instructor course management routes.
// Every route below /:id runs the ownership middleware first.
func SetupInstructorCourseRoutes(app *fiber.App) {
	teacherGroup := app.Group("/teacher/course")

	// Course CRUD
	teacherGroup.Post("/create", middleware.JWTMiddleware, validators.CreateCourse(), controllers.CreateCourse)
	teacherGroup.Get("/list", middleware.JWTMiddleware, validators.List(), controllers.GetMyCourses)
	teacherGroup.Get("/:id", middleware.JWTMiddleware, middleware.CourseOwnerMiddleware("id"), controllers.GetCourseDetails)
	teacherGroup.Patch("/:id", middleware.JWTMiddleware, middleware.CourseOwnerMiddleware("id"), validators.UpdateCourse(), controllers.UpdateCourse)
	teacherGroup.Delete("/:id", middleware.JWTMiddleware, middleware.CourseOwnerMiddleware("id"), controllers.DeleteCourse)

	// Publication gate
	teacherGroup.Post("/:id/publish", middleware.JWTMiddleware, middleware.CourseOwnerMiddleware("id"), controllers.PublishCourse)
	teacherGroup.Post("/:id/unpublish", middleware.JWTMiddleware, middleware.CourseOwnerMiddleware("id"), controllers.UnpublishCourse)

	// Chapter management
	teacherGroup.Post("/:id/chapter", middleware.JWTMiddleware, middleware.CourseOwnerMiddleware("id"), validators.CreateChapter(), controllers.CreateChapter)
	teacherGroup.Put("/:id/chapter/reorder", middleware.JWTMiddleware, middleware.CourseOwnerMiddleware("id"), validators.ReorderChapters(), controllers.ReorderChapters)
	teacherGroup.Get("/:id/chapter/:chapter_id", middleware.JWTMiddleware, middleware.CourseOwnerMiddleware("id"), validators.ChapterID(), controllers.GetChapter)
	teacherGroup.Patch("/:id/chapter/:chapter_id", middleware.JWTMiddleware, middleware.CourseOwnerMiddleware("id"), validators.ChapterID(), validators.UpdateChapter(), controllers.UpdateChapter)
	teacherGroup.Delete("/:id/chapter/:chapter_id", middleware.JWTMiddleware, middleware.CourseOwnerMiddleware("id"), validators.ChapterID(), controllers.DeleteChapter)
	teacherGroup.Post("/:id/chapter/:chapter_id/publish", middleware.JWTMiddleware, middleware.CourseOwnerMiddleware("id"), validators.ChapterID(), controllers.PublishChapter)
	teacherGroup.Post("/:id/chapter/:chapter_id/unpublish", middleware.JWTMiddleware, middleware.CourseOwnerMiddleware("id"), validators.ChapterID(), controllers.UnpublishChapter)

	// Attachments
	teacherGroup.Post("/:id/attachment", middleware.JWTMiddleware, middleware.CourseOwnerMiddleware("id"), validators.CreateAttachment(), controllers.CreateAttachment)
	teacherGroup.Delete("/:id/attachment/:attachment_id", middleware.JWTMiddleware, middleware.CourseOwnerMiddleware("id"), validators.AttachmentID(), controllers.DeleteAttachment)
}
