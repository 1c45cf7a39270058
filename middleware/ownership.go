package middleware

import (
	"strconv"

	"lms/database"
	courseModels "lms/models/course"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CourseOwnerMiddleware returns a middleware that loads the course named by the
// given route param and checks that the authenticated user owns it. Foreign
// courses are reported as not found rather than forbidden, so ownership is
// never leaked. The loaded course is stored in c.Locals("ownedCourse").
func CourseOwnerMiddleware(param string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Get user ID from context (set by JWT middleware)
		userID, ok := c.Locals("userId").(uint)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"status":  false,
				"message": "Unauthorized: User ID not found",
				"data":    nil,
			})
		}

		courseID, err := strconv.Atoi(c.Params(param))
		if err != nil || courseID < 1 {
			return JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course ID!", nil)
		}

		var course courseModels.Course
		err = database.Database.Db.Where("id = ? AND user_id = ? AND is_deleted = ?",
			courseID, userID, false).First(&course).Error

		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
			}
			// Other DB error
			return JsonResponse(c, fiber.StatusInternalServerError, false, "Server error while checking course ownership!", nil)
		}

		// Ownership confirmed, proceed
		c.Locals("ownedCourse", &course)
		return c.Next()
	}
}
