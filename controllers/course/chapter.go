package controllers

import (
	"errors"

	"lms/database"
	"lms/middleware"
	courseModels "lms/models/course"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// errOrderingMismatch aborts a reorder whose ID list no longer matches the
// course's chapter set
var errOrderingMismatch = errors.New("chapter ordering does not match the current chapter set")

// renumberChapters rewrites the positions of a course's remaining chapters
// into a dense 0..N-1 sequence, preserving their relative order. Must be
// called inside the surrounding transaction.
func renumberChapters(tx *gorm.DB, courseID uint) error {
	var remaining []courseModels.Chapter
	if err := tx.Where("course_id = ? AND is_deleted = ?", courseID, false).
		Order("position asc").Find(&remaining).Error; err != nil {
		return err
	}

	for i := range remaining {
		if remaining[i].Position == i {
			continue
		}
		if err := tx.Model(&courseModels.Chapter{}).Where("id = ?", remaining[i].ID).
			Update("position", i).Error; err != nil {
			return err
		}
	}
	return nil
}

// CreateChapter appends a new draft chapter at the end of the course
func CreateChapter(c *fiber.Ctx) error {
	course, ok := c.Locals("ownedCourse").(*courseModels.Course)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	reqData, ok := c.Locals("validatedChapter").(*struct {
		Title string `json:"title"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	// Count and insert in one transaction so concurrent creates on the same
	// course cannot claim the same position
	var chapter courseModels.Chapter
	err := database.Database.Db.Transaction(func(tx *gorm.DB) error {
		var chapterCount int64
		if err := tx.Model(&courseModels.Chapter{}).
			Where("course_id = ? AND is_deleted = ?", course.ID, false).Count(&chapterCount).Error; err != nil {
			return err
		}

		// New chapters go to the end of the sequence
		chapter = courseModels.Chapter{
			CourseID: course.ID,
			Title:    reqData.Title,
			Position: int(chapterCount),
		}
		return tx.Create(&chapter).Error
	})
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create chapter!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Chapter created successfully!", chapter)
}

// UpdateChapter applies a partial update to a chapter
func UpdateChapter(c *fiber.Ctx) error {
	course, ok := c.Locals("ownedCourse").(*courseModels.Course)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	chapterID := c.Locals("chapterID").(int)

	var chapter courseModels.Chapter
	if err := database.Database.Db.Where("id = ? AND course_id = ? AND is_deleted = ?", chapterID, course.ID, false).First(&chapter).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Chapter not found!", nil)
	}

	reqData, ok := c.Locals("validatedChapterUpdate").(*struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
		VideoURL    *string `json:"video_url"`
		IsFree      *bool   `json:"is_free"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	// Update only provided fields
	if reqData.Title != nil {
		chapter.Title = *reqData.Title
	}
	if reqData.Description != nil {
		chapter.Description = *reqData.Description
	}
	if reqData.VideoURL != nil {
		chapter.VideoURL = *reqData.VideoURL
	}
	if reqData.IsFree != nil {
		chapter.IsFree = *reqData.IsFree
	}

	if err := database.Database.Db.Save(&chapter).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update chapter!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Chapter updated successfully!", chapter)
}

// DeleteChapter removes a chapter and renumbers the remaining siblings
func DeleteChapter(c *fiber.Ctx) error {
	course, ok := c.Locals("ownedCourse").(*courseModels.Course)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	chapterID := c.Locals("chapterID").(int)

	var chapter courseModels.Chapter
	if err := database.Database.Db.Where("id = ? AND course_id = ? AND is_deleted = ?", chapterID, course.ID, false).First(&chapter).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Chapter not found!", nil)
	}

	// Delete and renumber as one atomic unit so readers never observe gaps
	err := database.Database.Db.Transaction(func(tx *gorm.DB) error {
		chapter.IsPublished = false
		chapter.IsDeleted = true
		if err := tx.Save(&chapter).Error; err != nil {
			return err
		}
		return renumberChapters(tx, course.ID)
	})
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete chapter!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Chapter deleted successfully!", chapter)
}

// ReorderChapters assigns positions from the caller's full desired ordering.
// The submitted list must contain exactly the course's current chapter IDs;
// a stale list (for example after a concurrent delete) is rejected and the
// caller should refetch and retry.
func ReorderChapters(c *fiber.Ctx) error {
	course, ok := c.Locals("ownedCourse").(*courseModels.Course)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	reqData, ok := c.Locals("validatedReorder").(*struct {
		ChapterIDs []uint `json:"chapter_ids"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	// Validate and apply inside one transaction so a concurrent delete cannot
	// slip between the set check and the position writes
	err := database.Database.Db.Transaction(func(tx *gorm.DB) error {
		var current []courseModels.Chapter
		if err := tx.Where("course_id = ? AND is_deleted = ?", course.ID, false).Find(&current).Error; err != nil {
			return err
		}

		// The submitted IDs must be exactly the current chapter set
		currentIDs := make(map[uint]bool, len(current))
		for _, ch := range current {
			currentIDs[ch.ID] = true
		}
		if len(reqData.ChapterIDs) != len(current) {
			return errOrderingMismatch
		}
		seen := make(map[uint]bool, len(reqData.ChapterIDs))
		for _, id := range reqData.ChapterIDs {
			if !currentIDs[id] || seen[id] {
				return errOrderingMismatch
			}
			seen[id] = true
		}

		for index, id := range reqData.ChapterIDs {
			if err := tx.Model(&courseModels.Chapter{}).
				Where("id = ? AND course_id = ? AND is_deleted = ?", id, course.ID, false).
				Update("position", index).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if errors.Is(err, errOrderingMismatch) {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Chapter ordering does not match the current chapter set!", nil)
	}
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to reorder chapters!", nil)
	}

	var chapters []courseModels.Chapter
	database.Database.Db.Where("course_id = ? AND is_deleted = ?", course.ID, false).Order("position asc").Find(&chapters)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Chapters reordered successfully!", chapters)
}

// PublishChapter publishes a chapter once every earlier chapter is published.
// Publishing on a draft course is allowed; students never see chapters of an
// unpublished course anyway.
func PublishChapter(c *fiber.Ctx) error {
	course, ok := c.Locals("ownedCourse").(*courseModels.Course)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	chapterID := c.Locals("chapterID").(int)

	var chapter courseModels.Chapter
	if err := database.Database.Db.Where("id = ? AND course_id = ? AND is_deleted = ?", chapterID, course.ID, false).First(&chapter).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Chapter not found!", nil)
	}

	// Every lower-position chapter must already be published, so students
	// never hit gaps in a sequential curriculum
	var unpublished []courseModels.Chapter
	database.Database.Db.Where("course_id = ? AND is_deleted = ? AND is_published = ? AND position < ?",
		course.ID, false, false, chapter.Position).Order("position asc").Find(&unpublished)

	if len(unpublished) > 0 {
		ids := make([]uint, len(unpublished))
		for i, ch := range unpublished {
			ids[i] = ch.ID
		}
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "All previous chapters must be published first!", fiber.Map{
			"unpublished_chapter_ids": ids,
		})
	}

	chapter.IsPublished = true
	if err := database.Database.Db.Save(&chapter).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to publish chapter!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Chapter published successfully!", chapter)
}

// UnpublishChapter reverts a chapter to draft. Does not cascade.
func UnpublishChapter(c *fiber.Ctx) error {
	course, ok := c.Locals("ownedCourse").(*courseModels.Course)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	chapterID := c.Locals("chapterID").(int)

	var chapter courseModels.Chapter
	if err := database.Database.Db.Where("id = ? AND course_id = ? AND is_deleted = ?", chapterID, course.ID, false).First(&chapter).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Chapter not found!", nil)
	}

	chapter.IsPublished = false
	if err := database.Database.Db.Save(&chapter).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to unpublish chapter!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Chapter unpublished successfully!", chapter)
}

// GetChapter fetches a single chapter for its course owner
func GetChapter(c *fiber.Ctx) error {
	course, ok := c.Locals("ownedCourse").(*courseModels.Course)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	chapterID := c.Locals("chapterID").(int)

	var chapter courseModels.Chapter
	if err := database.Database.Db.Where("id = ? AND course_id = ? AND is_deleted = ?", chapterID, course.ID, false).First(&chapter).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Chapter not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Chapter fetched successfully!", chapter)
}
