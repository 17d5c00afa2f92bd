package models

import (
	"time"

	"gorm.io/gorm"
)

// Certificate is the immutable completion record issued once an enrollment
// reaches its required hours. The unique index on EnrollmentID is the
// backstop against duplicate issuance; VerificationCode uniqueness is
// enforced at the storage layer with a retry loop at the issuer.
type Certificate struct {
	gorm.Model
	EnrollmentID     uint      `json:"enrollment_id" gorm:"uniqueIndex;not null"`
	UserID           uint      `json:"user_id" gorm:"index;not null"`
	VerificationCode string    `json:"verification_code" gorm:"unique;not null"` // TFOC-XXXX-XXXX
	HoursCompleted   float64   `json:"hours_completed"`                          // snapshot at issuance
	IssuedAt         time.Time `json:"issued_at"`
	IsDeleted        bool      `gorm:"default:false"`
}
