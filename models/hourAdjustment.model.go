package models

import "gorm.io/gorm"

// HourAdjustment is the audit trail for administrative hour edits.
// A decrease of hours_completed is only ever written with IsReset true.
type HourAdjustment struct {
	gorm.Model
	EnrollmentID  uint    `json:"enrollment_id" gorm:"index;not null"`
	AdminID       uint    `json:"admin_id" gorm:"index;not null"`
	PreviousHours float64 `json:"previous_hours"`
	NewHours      float64 `json:"new_hours"`
	Reason        string  `json:"reason"`
	IsReset       bool    `json:"is_reset" gorm:"default:false"`
	IsDeleted     bool    `gorm:"default:false"`
}
