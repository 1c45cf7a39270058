package checkoutController

import (
	"fmt"
	"log"

	"lms/config"
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	paymentModels "lms/models/payment"
	"lms/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Checkout starts enrollment for a published course. Free courses grant a
// Purchase immediately; paid courses get a provider checkout session and the
// Purchase is only created by the completion webhook.
func Checkout(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userId, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(int)

	db := database.Database.Db

	// Only published courses can be purchased
	var course courseModels.Course
	if err := db.Where("id = ? AND is_deleted = ? AND is_published = ?", courseID, false, true).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var existing courseModels.Purchase
	alreadyPurchased := db.Where("user_id = ? AND course_id = ?", userId, course.ID).First(&existing).Error == nil

	successURL := fmt.Sprintf("%s/courses/%d?success=1", config.AppConfig.AppURL, course.ID)

	// Free courses enroll immediately; double enrollment is a benign no-op
	if course.IsFree() {
		if !alreadyPurchased {
			purchase := courseModels.Purchase{UserID: userId, CourseID: course.ID}
			if err := db.Create(&purchase).Error; err != nil {
				// A concurrent enrollment may have won the unique-index race
				if db.Where("user_id = ? AND course_id = ?", userId, course.ID).First(&existing).Error != nil {
					return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to enroll in course!", nil)
				}
			} else {
				utils.SendPurchaseEmail(user.Email, user.Name, course.Title)
			}
		}
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrolled in course successfully!", fiber.Map{
			"url": successURL,
		})
	}

	if alreadyPurchased {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Course already purchased!", nil)
	}

	// Paid course: hand off to the payment provider. No Purchase exists
	// until the provider confirms completion.
	reference := uuid.NewString()
	providerSession, err := utils.CreateProviderCheckout(reference, userId, course.ID, course.Title, course.Description, *course.Price)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to start checkout!", nil)
	}

	session := paymentModels.CheckoutSession{
		Reference:  reference,
		UserID:     userId,
		CourseID:   course.ID,
		Amount:     *course.Price,
		Status:     paymentModels.SessionPending,
		PaymentURL: providerSession.URL,
	}
	if err := db.Create(&session).Error; err != nil {
		log.Printf("Error saving checkout session: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to start checkout!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Checkout session created!", fiber.Map{
		"url": providerSession.URL,
	})
}
