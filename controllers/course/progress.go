package controllers

import (
	"lms/database"
	"lms/middleware"
	courseModels "lms/models/course"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// computeCourseProgress derives the user's completion percentage for one
// course: completed published chapters over all published chapters, times
// 100. Courses without published chapters count as 0. Always computed fresh
// from the store; display rounding is the caller's concern.
func computeCourseProgress(db *gorm.DB, userID, courseID uint) float64 {
	var chapterIDs []uint
	db.Model(&courseModels.Chapter{}).
		Where("course_id = ? AND is_deleted = ? AND is_published = ?", courseID, false, true).
		Pluck("id", &chapterIDs)

	if len(chapterIDs) == 0 {
		return 0
	}

	var completed int64
	db.Model(&courseModels.UserProgress{}).
		Where("user_id = ? AND is_completed = ? AND chapter_id IN ?", userID, true, chapterIDs).
		Count(&completed)

	return float64(completed) / float64(len(chapterIDs)) * 100
}

// hasPurchased reports whether a permanent access grant exists
func hasPurchased(db *gorm.DB, userID, courseID uint) bool {
	var purchase courseModels.Purchase
	return db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&purchase).Error == nil
}

// UpdateChapterProgress marks a chapter completed or not for the caller
func UpdateChapterProgress(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)
	chapterID := c.Locals("chapterID").(int)

	reqData, ok := c.Locals("validatedProgress").(*struct {
		IsCompleted bool `json:"is_completed"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	// Progress only exists against published chapters of published courses
	var course courseModels.Course
	if err := db.Where("id = ? AND is_deleted = ? AND is_published = ?", courseID, false, true).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var chapter courseModels.Chapter
	if err := db.Where("id = ? AND course_id = ? AND is_deleted = ? AND is_published = ?", chapterID, courseID, false, true).First(&chapter).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Chapter not found!", nil)
	}

	// Same access rule as viewing the chapter
	if !chapter.IsFree && !hasPurchased(db, userId, course.ID) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Purchase this course to access this chapter!", nil)
	}

	// Upsert the per-chapter progress row
	var progress courseModels.UserProgress
	err := db.Where("user_id = ? AND chapter_id = ?", userId, chapter.ID).First(&progress).Error
	if err != nil {
		progress = courseModels.UserProgress{
			UserID:      userId,
			ChapterID:   chapter.ID,
			IsCompleted: reqData.IsCompleted,
		}
		if err := db.Create(&progress).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update progress!", nil)
		}
	} else {
		progress.IsCompleted = reqData.IsCompleted
		if err := db.Save(&progress).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update progress!", nil)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress updated successfully!", fiber.Map{
		"progress":        progress,
		"course_progress": computeCourseProgress(db, userId, course.ID),
	})
}

// GetDashboard lists the caller's purchased courses with progress each
func GetDashboard(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	var purchases []courseModels.Purchase
	if err := db.Where("user_id = ?", userId).Find(&purchases).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch purchases!", nil)
	}

	type CourseWithProgress struct {
		courseModels.Course
		Progress float64 `json:"progress"`
	}

	completed := []CourseWithProgress{}
	inProgress := []CourseWithProgress{}

	for _, purchase := range purchases {
		var course courseModels.Course
		if err := db.Where("id = ? AND is_deleted = ? AND is_published = ?", purchase.CourseID, false, true).First(&course).Error; err != nil {
			continue
		}

		// Each course's denominator counts only its own published chapters
		entry := CourseWithProgress{
			Course:   course,
			Progress: computeCourseProgress(db, userId, course.ID),
		}
		if entry.Progress == 100 {
			completed = append(completed, entry)
		} else {
			inProgress = append(inProgress, entry)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard fetched successfully!", fiber.Map{
		"completed_courses":   completed,
		"in_progress_courses": inProgress,
	})
}
