package controllers

import (
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	"lms/utils"

	"github.com/gofiber/fiber/v2"
)

// CreateCourse creates a new draft course for the authenticated instructor
func CreateCourse(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedCourse").(*struct {
		Title string `json:"title"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	course := courseModels.Course{
		UserID: userId,
		Title:  reqData.Title,
	}

	if err := database.Database.Db.Create(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully!", course)
}

// UpdateCourse applies a partial update to a course owned by the caller
func UpdateCourse(c *fiber.Ctx) error {
	course, ok := c.Locals("ownedCourse").(*courseModels.Course)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	reqData, ok := c.Locals("validatedCourseUpdate").(*struct {
		Title       *string  `json:"title"`
		Description *string  `json:"description"`
		ImageURL    *string  `json:"image_url"`
		Price       *float64 `json:"price"`
		CategoryID  *uint    `json:"category_id"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	// Update only provided fields
	if reqData.Title != nil {
		course.Title = *reqData.Title
	}
	if reqData.Description != nil {
		course.Description = *reqData.Description
	}
	if reqData.ImageURL != nil {
		course.ImageURL = *reqData.ImageURL
	}
	if reqData.Price != nil {
		course.Price = reqData.Price
	}
	if reqData.CategoryID != nil {
		// Referenced category must exist
		var category models.Category
		if err := database.Database.Db.Where("id = ? AND is_deleted = ?", *reqData.CategoryID, false).First(&category).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Category not found!", nil)
		}
		course.CategoryID = reqData.CategoryID
	}

	if err := database.Database.Db.Save(course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully!", course)
}

// DeleteCourse soft deletes a course that has no purchases yet
func DeleteCourse(c *fiber.Ctx) error {
	course, ok := c.Locals("ownedCourse").(*courseModels.Course)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	// Purchases are permanent access grants; a purchased course cannot vanish
	var purchaseCount int64
	database.Database.Db.Model(&courseModels.Purchase{}).Where("course_id = ?", course.ID).Count(&purchaseCount)
	if purchaseCount > 0 {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Course has active purchases and cannot be deleted!", nil)
	}

	course.IsDeleted = true
	course.IsPublished = false
	if err := database.Database.Db.Save(course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course deleted successfully!", nil)
}

// GetMyCourses lists courses owned by the caller
func GetMyCourses(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedList").(*struct {
		Page  *int `json:"page"`
		Limit *int `json:"limit"`
	})

	page := 1
	limit := 10
	if ok && reqData.Page != nil && *reqData.Page > 0 {
		page = *reqData.Page
	}
	if ok && reqData.Limit != nil && *reqData.Limit > 0 {
		limit = *reqData.Limit
	}
	offset := (page - 1) * limit

	var courses []courseModels.Course
	var total int64

	db := database.Database.Db.Model(&courseModels.Course{}).Where("user_id = ? AND is_deleted = ?", userId, false)
	db.Count(&total)

	if err := db.Offset(offset).Limit(limit).Order("created_at desc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": courses,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// GetCourseDetails gets a single owned course with chapters and attachments
func GetCourseDetails(c *fiber.Ctx) error {
	course, ok := c.Locals("ownedCourse").(*courseModels.Course)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var chapters []courseModels.Chapter
	database.Database.Db.Where("course_id = ? AND is_deleted = ?", course.ID, false).Order("position asc").Find(&chapters)

	var attachments []courseModels.Attachment
	database.Database.Db.Where("course_id = ? AND is_deleted = ?", course.ID, false).Order("created_at desc").Find(&attachments)

	var purchaseCount int64
	database.Database.Db.Model(&courseModels.Purchase{}).Where("course_id = ?", course.ID).Count(&purchaseCount)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course details fetched successfully!", fiber.Map{
		"course":         course,
		"chapters":       chapters,
		"attachments":    attachments,
		"purchase_count": purchaseCount,
	})
}

// missingPublishFields lists the completeness requirements a course still
// fails. A course is publishable once all required fields are set and at
// least one chapter is published.
func missingPublishFields(course *courseModels.Course) []string {
	missing := []string{}
	if course.Title == "" {
		missing = append(missing, "title")
	}
	if course.Description == "" {
		missing = append(missing, "description")
	}
	if course.ImageURL == "" {
		missing = append(missing, "image_url")
	}
	if course.Price == nil {
		missing = append(missing, "price")
	}
	if course.CategoryID == nil {
		missing = append(missing, "category_id")
	}

	var publishedChapters int64
	database.Database.Db.Model(&courseModels.Chapter{}).
		Where("course_id = ? AND is_deleted = ? AND is_published = ?", course.ID, false, true).
		Count(&publishedChapters)
	if publishedChapters == 0 {
		missing = append(missing, "published_chapter")
	}

	return missing
}

// PublishCourse makes a complete course visible in the catalog
func PublishCourse(c *fiber.Ctx) error {
	course, ok := c.Locals("ownedCourse").(*courseModels.Course)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	missing := missingPublishFields(course)
	if len(missing) > 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course is incomplete and cannot be published!", fiber.Map{
			"missing_fields": missing,
		})
	}

	course.IsPublished = true
	if err := database.Database.Db.Save(course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to publish course!", nil)
	}

	var owner models.User
	if err := database.Database.Db.Where("id = ?", course.UserID).First(&owner).Error; err == nil {
		utils.SendCoursePublishedEmail(owner.Email, owner.Name, course.Title)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course published successfully!", course)
}

// UnpublishCourse pulls a course from the catalog. Chapters keep their own
// publication state.
func UnpublishCourse(c *fiber.Ctx) error {
	course, ok := c.Locals("ownedCourse").(*courseModels.Course)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	course.IsPublished = false
	if err := database.Database.Db.Save(course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to unpublish course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course unpublished successfully!", course)
}
