package checkoutController_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"lms/config"
	"lms/database"
	courseModels "lms/models/course"
	paymentModels "lms/models/payment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFreeCourseCheckoutEnrollsImmediately(t *testing.T) {
	app := setupApp(t)
	owner, _ := createUser(t, "Alice", "alice@example.com")
	student, token := createUser(t, "Bob", "bob@example.com")
	course := seedCourse(t, owner.ID, "Go Basics", 0, true)

	status, parsed := doRequest(t, app, "POST",
		fmt.Sprintf("/course/%d/checkout", course.ID), token, nil)
	require.Equal(t, 200, status)
	assert.Contains(t, parsed["data"].(map[string]interface{})["url"], "success=1")
	assert.Equal(t, int64(1), purchaseCount(t, student.ID, course.ID))

	// Re-enrolling in a free course is a no-op, not an error
	status, _ = doRequest(t, app, "POST",
		fmt.Sprintf("/course/%d/checkout", course.ID), token, nil)
	require.Equal(t, 200, status)
	assert.Equal(t, int64(1), purchaseCount(t, student.ID, course.ID))
}

func TestPaidCourseAlreadyPurchased(t *testing.T) {
	app := setupApp(t)
	owner, _ := createUser(t, "Alice", "alice@example.com")
	student, token := createUser(t, "Bob", "bob@example.com")
	course := seedCourse(t, owner.ID, "Go Basics", 49, true)

	require.NoError(t, database.Database.Db.Create(&courseModels.Purchase{
		UserID: student.ID, CourseID: course.ID,
	}).Error)

	status, parsed := doRequest(t, app, "POST",
		fmt.Sprintf("/course/%d/checkout", course.ID), token, nil)
	assert.Equal(t, 409, status)
	assert.Equal(t, "Course already purchased!", parsed["message"])
}

func TestCheckoutRequiresPublishedCourse(t *testing.T) {
	app := setupApp(t)
	owner, _ := createUser(t, "Alice", "alice@example.com")
	_, token := createUser(t, "Bob", "bob@example.com")
	draft := seedCourse(t, owner.ID, "Unfinished Draft", 0, false)

	status, _ := doRequest(t, app, "POST",
		fmt.Sprintf("/course/%d/checkout", draft.ID), token, nil)
	assert.Equal(t, 404, status)
}

func TestPaidCourseCreatesProviderSession(t *testing.T) {
	app := setupApp(t)

	// Stand-in payment provider
	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/checkout/sessions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"cs_123","url":"https://pay.example.com/cs_123","status":"open"}`))
	}))
	defer provider.Close()
	config.AppConfig.PaymentApiURL = provider.URL + "/"

	owner, _ := createUser(t, "Alice", "alice@example.com")
	student, token := createUser(t, "Bob", "bob@example.com")
	course := seedCourse(t, owner.ID, "Go Basics", 49, true)

	status, parsed := doRequest(t, app, "POST",
		fmt.Sprintf("/course/%d/checkout", course.ID), token, nil)
	require.Equal(t, 200, status)
	assert.Equal(t, "https://pay.example.com/cs_123", parsed["data"].(map[string]interface{})["url"])

	// No purchase until the webhook confirms payment
	assert.Equal(t, int64(0), purchaseCount(t, student.ID, course.ID))

	var session paymentModels.CheckoutSession
	require.NoError(t, database.Database.Db.
		Where("user_id = ? AND course_id = ?", student.ID, course.ID).First(&session).Error)
	assert.Equal(t, paymentModels.SessionPending, session.Status)
	assert.Equal(t, float64(49), session.Amount)
	assert.NotEmpty(t, session.Reference)
	assert.Equal(t, "https://pay.example.com/cs_123", session.PaymentURL)
}

func TestPaidCourseProviderFailure(t *testing.T) {
	app := setupApp(t)

	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer provider.Close()
	config.AppConfig.PaymentApiURL = provider.URL + "/"

	owner, _ := createUser(t, "Alice", "alice@example.com")
	student, token := createUser(t, "Bob", "bob@example.com")
	course := seedCourse(t, owner.ID, "Go Basics", 49, true)

	status, _ := doRequest(t, app, "POST",
		fmt.Sprintf("/course/%d/checkout", course.ID), token, nil)
	assert.Equal(t, 500, status)
	assert.Equal(t, int64(0), purchaseCount(t, student.ID, course.ID))

	var sessions int64
	database.Database.Db.Model(&paymentModels.CheckoutSession{}).Count(&sessions)
	assert.Equal(t, int64(0), sessions)
}
