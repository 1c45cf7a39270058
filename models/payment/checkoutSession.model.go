package payment

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Checkout session statuses
const (
	SessionPending   = "PENDING"
	SessionCompleted = "COMPLETED"
	SessionExpired   = "EXPIRED"
)

// CheckoutSession tracks a payment-provider checkout initiated for a course.
// A Purchase is only created once the provider confirms completion.
type CheckoutSession struct {
	gorm.Model
	Reference  string  `json:"reference" gorm:"uniqueIndex;not null"` // Our idempotency key, sent as provider metadata
	UserID     uint    `json:"user_id" gorm:"index;not null"`
	CourseID   uint    `json:"course_id" gorm:"index;not null"`
	Amount     float64 `json:"amount"`
	Status     string  `json:"status" gorm:"default:'PENDING'"` // PENDING, COMPLETED, EXPIRED
	PaymentURL string  `json:"payment_url"`
}

// PaymentEvent stores every webhook delivery from the payment provider.
// The unique EventID makes replayed deliveries no-ops.
type PaymentEvent struct {
	gorm.Model
	EventID   string         `json:"event_id" gorm:"uniqueIndex;not null"`
	EventType string         `json:"event_type"`
	Payload   datatypes.JSON `json:"payload"`
	Processed bool           `json:"processed" gorm:"default:false"`
}
