package utils

import (
	"log"
	"time"

	"lms/config"
	"lms/database"
	paymentModels "lms/models/payment"

	"github.com/robfig/cron/v3"
)

// StartCheckoutScheduler starts the cron job that expires abandoned checkout
// sessions. A session left PENDING longer than CHECKOUT_TTL_MINUTES will never
// complete; the provider link is dead and the student must check out again.
func StartCheckoutScheduler() {
	c := cron.New()

	// Run every 10 minutes
	c.AddFunc("*/10 * * * *", func() {
		ExpireStaleCheckoutSessions()
	})

	c.Start()
	log.Println("[CHECKOUT-SCHEDULER] Started, expiring stale sessions every 10 minutes")
}

// ExpireStaleCheckoutSessions marks aged PENDING sessions as EXPIRED
func ExpireStaleCheckoutSessions() {
	db := database.Database.Db
	cutoff := time.Now().Add(-time.Duration(config.AppConfig.CheckoutTTLMinutes) * time.Minute)

	result := db.Model(&paymentModels.CheckoutSession{}).
		Where("status = ? AND created_at < ?", paymentModels.SessionPending, cutoff).
		Updates(map[string]interface{}{"status": paymentModels.SessionExpired})

	if result.Error != nil {
		log.Printf("[CHECKOUT-SCHEDULER] Error expiring checkout sessions: %v", result.Error)
		return
	}

	if result.RowsAffected > 0 {
		log.Printf("[CHECKOUT-SCHEDULER] Expired %d stale checkout sessions", result.RowsAffected)
	}
}
