package controllers_test

import (
	"fmt"
	"testing"

	"lms/database"
	courseModels "lms/models/course"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedPublishedCourse(t *testing.T, ownerID uint, title string, price float64) courseModels.Course {
	t.Helper()

	return seedCourse(t, courseModels.Course{
		UserID:      ownerID,
		Title:       title,
		Description: "A course.",
		ImageURL:    "/uploads/cover.png",
		Price:       floatPtr(price),
		IsPublished: true,
	})
}

func TestBrowseCoursesListsOnlyPublished(t *testing.T) {
	app := setupApp(t)
	owner, _ := createUser(t, "Alice", "alice@example.com")
	_, token := createUser(t, "Bob", "bob@example.com")

	seedPublishedCourse(t, owner.ID, "Go Basics", 49)
	seedCourse(t, courseModels.Course{UserID: owner.ID, Title: "Unfinished Draft"})

	status, parsed := doRequest(t, app, "GET", "/course/list", token, nil)
	require.Equal(t, 200, status)

	courses := dataOf(t, parsed)["courses"].([]interface{})
	require.Len(t, courses, 1)
	assert.Equal(t, "Go Basics", courses[0].(map[string]interface{})["title"])
}

func TestBrowseCoursesFilters(t *testing.T) {
	app := setupApp(t)
	owner, _ := createUser(t, "Alice", "alice@example.com")
	_, token := createUser(t, "Bob", "bob@example.com")
	category := seedCategory(t, "Music")

	guitar := seedPublishedCourse(t, owner.ID, "Guitar for Beginners", 29)
	guitar.CategoryID = uintPtr(category.ID)
	require.NoError(t, database.Database.Db.Save(&guitar).Error)
	seedPublishedCourse(t, owner.ID, "Go Basics", 49)

	// Case-insensitive title search
	status, parsed := doRequest(t, app, "GET", "/course/list?title=guitar", token, nil)
	require.Equal(t, 200, status)
	courses := dataOf(t, parsed)["courses"].([]interface{})
	require.Len(t, courses, 1)
	assert.Equal(t, "Guitar for Beginners", courses[0].(map[string]interface{})["title"])

	// Category filter
	status, parsed = doRequest(t, app, "GET", fmt.Sprintf("/course/list?category_id=%d", category.ID), token, nil)
	require.Equal(t, 200, status)
	courses = dataOf(t, parsed)["courses"].([]interface{})
	require.Len(t, courses, 1)
	assert.Equal(t, "Guitar for Beginners", courses[0].(map[string]interface{})["title"])
}

func TestCatalogCourseHidesDrafts(t *testing.T) {
	app := setupApp(t)
	owner, _ := createUser(t, "Alice", "alice@example.com")
	_, token := createUser(t, "Bob", "bob@example.com")
	draft := seedCourse(t, courseModels.Course{UserID: owner.ID, Title: "Unfinished Draft"})
	// Chapters of a draft course are invisible even when published
	chapter := seedChapter(t, draft.ID, "Intro", 0, true, true)

	status, _ := doRequest(t, app, "GET", fmt.Sprintf("/course/%d", draft.ID), token, nil)
	assert.Equal(t, 404, status)

	status, _ = doRequest(t, app, "GET", fmt.Sprintf("/course/%d/chapter/%d", draft.ID, chapter.ID), token, nil)
	assert.Equal(t, 404, status)
}

func TestCatalogCourseAttachmentsRequirePurchase(t *testing.T) {
	app := setupApp(t)
	owner, _ := createUser(t, "Alice", "alice@example.com")
	student, token := createUser(t, "Bob", "bob@example.com")
	course := seedPublishedCourse(t, owner.ID, "Go Basics", 49)
	seedChapter(t, course.ID, "Intro", 0, true, true)
	seedChapter(t, course.ID, "Drafted", 1, false, false)

	attachment := courseModels.Attachment{CourseID: course.ID, Name: "slides.pdf", URL: "/uploads/slides.pdf"}
	require.NoError(t, database.Database.Db.Create(&attachment).Error)

	status, parsed := doRequest(t, app, "GET", fmt.Sprintf("/course/%d", course.ID), token, nil)
	require.Equal(t, 200, status)
	data := dataOf(t, parsed)
	assert.Equal(t, false, data["purchased"])
	assert.Empty(t, data["attachments"])
	// Students see published chapters only
	assert.Len(t, data["chapters"].([]interface{}), 1)

	seedPurchase(t, student.ID, course.ID)

	status, parsed = doRequest(t, app, "GET", fmt.Sprintf("/course/%d", course.ID), token, nil)
	require.Equal(t, 200, status)
	data = dataOf(t, parsed)
	assert.Equal(t, true, data["purchased"])
	assert.Len(t, data["attachments"].([]interface{}), 1)
}

func TestCatalogChapterAccess(t *testing.T) {
	app := setupApp(t)
	owner, _ := createUser(t, "Alice", "alice@example.com")
	student, token := createUser(t, "Bob", "bob@example.com")
	course := seedPublishedCourse(t, owner.ID, "Go Basics", 49)

	free := seedChapter(t, course.ID, "Intro", 0, true, true)
	paid := seedChapter(t, course.ID, "Deep Dive", 1, true, false)

	// Free chapters are open to any signed-in student
	status, parsed := doRequest(t, app, "GET",
		fmt.Sprintf("/course/%d/chapter/%d", course.ID, free.ID), token, nil)
	require.Equal(t, 200, status)
	assert.Equal(t, float64(paid.ID), dataOf(t, parsed)["next_chapter_id"])

	// Paid chapters are locked until purchase
	status, parsed = doRequest(t, app, "GET",
		fmt.Sprintf("/course/%d/chapter/%d", course.ID, paid.ID), token, nil)
	require.Equal(t, 403, status)
	assert.Equal(t, "Purchase this course to access this chapter!", parsed["message"])

	seedPurchase(t, student.ID, course.ID)

	status, parsed = doRequest(t, app, "GET",
		fmt.Sprintf("/course/%d/chapter/%d", course.ID, paid.ID), token, nil)
	require.Equal(t, 200, status)
	data := dataOf(t, parsed)
	assert.Equal(t, true, data["purchased"])
	// Last published chapter has no successor
	_, hasNext := data["next_chapter_id"]
	assert.False(t, hasNext)
}

func TestCatalogChapterHidesUnpublished(t *testing.T) {
	app := setupApp(t)
	owner, _ := createUser(t, "Alice", "alice@example.com")
	student, token := createUser(t, "Bob", "bob@example.com")
	course := seedPublishedCourse(t, owner.ID, "Go Basics", 49)
	draft := seedChapter(t, course.ID, "Drafted", 0, false, false)
	seedPurchase(t, student.ID, course.ID)

	status, _ := doRequest(t, app, "GET",
		fmt.Sprintf("/course/%d/chapter/%d", course.ID, draft.ID), token, nil)
	assert.Equal(t, 404, status)
}
