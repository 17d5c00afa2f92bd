package models

import (
	"time"

	"gorm.io/gorm"
)

// Enrollment statuses
const (
	EnrollmentActive    = "active"
	EnrollmentCompleted = "completed"
	EnrollmentSuspended = "suspended"
	EnrollmentRefunded  = "refunded"
)

// Enrollment tracks one participant's commitment to complete a number of service hours.
// HoursCompleted never decreases except through an audited admin reset.
type Enrollment struct {
	gorm.Model
	UserID         uint       `json:"user_id" gorm:"index;not null"`
	HoursRequired  float64    `json:"hours_required" gorm:"not null"`
	HoursCompleted float64    `json:"hours_completed" gorm:"default:0"`
	Status         string     `json:"status" gorm:"default:'active'"`
	CheckoutRef    string     `json:"checkout_ref" gorm:"index"`
	StartedAt      time.Time  `json:"started_at"`
	CompletedAt    *time.Time `json:"completed_at"`
	IsDeleted      bool       `gorm:"default:false"`
}
