package controllers

import (
	"strings"

	"lms/database"
	"lms/middleware"
	courseModels "lms/models/course"

	"github.com/gofiber/fiber/v2"
)

// CreateAttachment links an uploaded file URL to a course
func CreateAttachment(c *fiber.Ctx) error {
	course, ok := c.Locals("ownedCourse").(*courseModels.Course)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	reqData, ok := c.Locals("validatedAttachment").(*struct {
		URL  string `json:"url"`
		Name string `json:"name"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	// Fall back to the last URL path segment as the display name
	name := reqData.Name
	if name == "" {
		parts := strings.Split(reqData.URL, "/")
		name = parts[len(parts)-1]
		if name == "" {
			name = "Attachment"
		}
	}

	attachment := courseModels.Attachment{
		CourseID: course.ID,
		URL:      reqData.URL,
		Name:     name,
	}

	if err := database.Database.Db.Create(&attachment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create attachment!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Attachment created successfully!", attachment)
}

// DeleteAttachment removes an attachment from a course
func DeleteAttachment(c *fiber.Ctx) error {
	course, ok := c.Locals("ownedCourse").(*courseModels.Course)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	attachmentID := c.Locals("attachmentID").(int)

	var attachment courseModels.Attachment
	if err := database.Database.Db.Where("id = ? AND course_id = ? AND is_deleted = ?", attachmentID, course.ID, false).First(&attachment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Attachment not found!", nil)
	}

	attachment.IsDeleted = true
	if err := database.Database.Db.Save(&attachment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete attachment!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Attachment deleted successfully!", attachment)
}
