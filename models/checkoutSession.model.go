package models

import (
	"time"

	"gorm.io/gorm"
)

// CheckoutSession statuses
const (
	CheckoutPending = "PENDING"
	CheckoutPaid    = "PAID"
)

// CheckoutSession mirrors one hosted-provider checkout session. PaymentID
// is the duplicate-processing guard: a provider payment is only ever
// converted into an enrollment once.
type CheckoutSession struct {
	gorm.Model
	SessionRef    string    `json:"session_ref" gorm:"unique;not null"`
	UserID        uint      `json:"user_id" gorm:"index;not null"`
	PaymentID     string    `json:"payment_id" gorm:"index"`
	Amount        float64   `json:"amount"`
	HoursRequired float64   `json:"hours_required"`
	Status        string    `json:"status" gorm:"default:'PENDING'"`
	EnrollmentID  *uint     `json:"enrollment_id"`
	ConfirmedAt   time.Time `json:"confirmed_at"`
	IsDeleted     bool      `gorm:"default:false"`
}
