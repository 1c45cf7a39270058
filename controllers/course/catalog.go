package controllers

import (
	"strings"

	"lms/database"
	"lms/middleware"
	courseModels "lms/models/course"

	"github.com/gofiber/fiber/v2"
)

// BrowseCourses lists published courses for students, with the caller's
// progress and purchase state per course
func BrowseCourses(c *fiber.Ctx) error {
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

	search := c.Query("title")
	categoryID := c.QueryInt("category_id")

	db := database.Database.Db.Model(&courseModels.Course{}).Where("is_deleted = ? AND is_published = ?", false, true)
	if search != "" {
		db = db.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(search)+"%")
	}
	if categoryID > 0 {
		db = db.Where("category_id = ?", categoryID)
	}

	var total int64
	db.Count(&total)

	var courses []courseModels.Course
	if err := db.Offset(offset).Limit(limit).Order("created_at desc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	type CatalogCourse struct {
		courseModels.Course
		ChapterCount int64   `json:"chapter_count"`
		Purchased    bool    `json:"purchased"`
		Progress     float64 `json:"progress"`
	}

	result := make([]CatalogCourse, len(courses))
	for i, course := range courses {
		var chapterCount int64
		database.Database.Db.Model(&courseModels.Chapter{}).
			Where("course_id = ? AND is_deleted = ? AND is_published = ?", course.ID, false, true).
			Count(&chapterCount)

		purchased := hasPurchased(database.Database.Db, userId, course.ID)

		result[i] = CatalogCourse{
			Course:       course,
			ChapterCount: chapterCount,
			Purchased:    purchased,
		}
		if purchased {
			result[i].Progress = computeCourseProgress(database.Database.Db, userId, course.ID)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": result,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// GetCatalogCourse gets a published course for students. Unpublished courses
// and their chapters are invisible regardless of chapter state.
func GetCatalogCourse(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ? AND is_published = ?", courseID, false, true).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var chapters []courseModels.Chapter
	database.Database.Db.Where("course_id = ? AND is_deleted = ? AND is_published = ?", course.ID, false, true).
		Order("position asc").Find(&chapters)

	purchased := hasPurchased(database.Database.Db, userId, course.ID)

	// Attachments are part of the paid tier
	attachments := []courseModels.Attachment{}
	if purchased {
		database.Database.Db.Where("course_id = ? AND is_deleted = ?", course.ID, false).Find(&attachments)
	}

	progress := 0.0
	if purchased {
		progress = computeCourseProgress(database.Database.Db, userId, course.ID)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course fetched successfully!", fiber.Map{
		"course":      course,
		"chapters":    chapters,
		"attachments": attachments,
		"purchased":   purchased,
		"progress":    progress,
	})
}

// GetCatalogChapter serves a chapter to a student. Free chapters are open to
// any authenticated user; everything else requires a purchase.
func GetCatalogChapter(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)
	chapterID := c.Locals("chapterID").(int)

	db := database.Database.Db

	var course courseModels.Course
	if err := db.Where("id = ? AND is_deleted = ? AND is_published = ?", courseID, false, true).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var chapter courseModels.Chapter
	if err := db.Where("id = ? AND course_id = ? AND is_deleted = ? AND is_published = ?", chapterID, course.ID, false, true).First(&chapter).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Chapter not found!", nil)
	}

	purchased := hasPurchased(db, userId, course.ID)
	if !chapter.IsFree && !purchased {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Purchase this course to access this chapter!", nil)
	}

	// Next published chapter, if any
	var nextChapter courseModels.Chapter
	hasNext := db.Where("course_id = ? AND is_deleted = ? AND is_published = ? AND position > ?",
		course.ID, false, true, chapter.Position).Order("position asc").First(&nextChapter).Error == nil

	var progress courseModels.UserProgress
	db.Where("user_id = ? AND chapter_id = ?", userId, chapter.ID).First(&progress)

	response := fiber.Map{
		"chapter":       chapter,
		"purchased":     purchased,
		"user_progress": progress,
	}
	if hasNext {
		response["next_chapter_id"] = nextChapter.ID
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Chapter fetched successfully!", response)
}
