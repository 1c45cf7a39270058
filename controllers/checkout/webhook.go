package checkoutController

import (
	"encoding/json"
	"log"
	"strconv"

	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	paymentModels "lms/models/payment"
	"lms/utils"

	"github.com/gofiber/fiber/v2"
)

// webhookEvent mirrors the payment provider's webhook payload
type webhookEvent struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Metadata struct {
			Reference string `json:"reference"`
			UserID    string `json:"userId"`
			CourseID  string `json:"courseId"`
		} `json:"metadata"`
	} `json:"data"`
}

// PaymentWebhook handles completion events from the payment provider. The
// signature is verified against the raw body, the event is recorded once by
// its provider ID, and the Purchase is created idempotently.
func PaymentWebhook(c *fiber.Ctx) error {
	body := c.Body()

	signature := c.Get("X-Payment-Signature")
	if !utils.VerifyWebhookSignature(body, signature) {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid webhook signature!", nil)
	}

	var event webhookEvent
	if err := json.Unmarshal(body, &event); err != nil || event.ID == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid webhook payload!", nil)
	}

	// Events other than completions are acknowledged and ignored
	if event.Type != "checkout.session.completed" {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Event ignored.", nil)
	}

	userId, err1 := strconv.Atoi(event.Data.Metadata.UserID)
	courseId, err2 := strconv.Atoi(event.Data.Metadata.CourseID)
	if err1 != nil || err2 != nil || userId < 1 || courseId < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid session metadata!", nil)
	}

	db := database.Database.Db

	// Replayed deliveries short-circuit on the unique event ID
	var seen paymentModels.PaymentEvent
	if db.Where("event_id = ?", event.ID).First(&seen).Error == nil {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Event already processed.", nil)
	}

	record := paymentModels.PaymentEvent{
		EventID:   event.ID,
		EventType: event.Type,
		Payload:   body,
	}
	if err := db.Create(&record).Error; err != nil {
		// Unique-index race with a concurrent delivery of the same event
		if db.Where("event_id = ?", event.ID).First(&seen).Error == nil {
			return middleware.JsonResponse(c, fiber.StatusOK, true, "Event already processed.", nil)
		}
		log.Printf("Error saving payment event: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to record event!", nil)
	}

	// Idempotent access grant
	var purchase courseModels.Purchase
	if db.Where("user_id = ? AND course_id = ?", userId, courseId).First(&purchase).Error != nil {
		purchase = courseModels.Purchase{UserID: uint(userId), CourseID: uint(courseId)}
		if err := db.Create(&purchase).Error; err != nil {
			log.Printf("Error creating purchase from webhook: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to record purchase!", nil)
		}
	}

	// Close out the checkout session the reference points at
	if event.Data.Metadata.Reference != "" {
		db.Model(&paymentModels.CheckoutSession{}).
			Where("reference = ?", event.Data.Metadata.Reference).
			Update("status", paymentModels.SessionCompleted)
	}

	db.Model(&record).Update("processed", true)

	var user models.User
	var course courseModels.Course
	if db.Where("id = ?", userId).First(&user).Error == nil &&
		db.Where("id = ?", courseId).First(&course).Error == nil {
		utils.SendPurchaseEmail(user.Email, user.Name, course.Title)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Payment processed successfully.", nil)
}
