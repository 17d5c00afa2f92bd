package models

import "gorm.io/gorm"

// DailyHourLog accumulates credited time for one enrollment on one
// participant-local calendar day. Seconds are kept alongside hours and
// minutes so 30-second sync flushes never lose sub-minute remainders.
// The decimal total of a single log never exceeds the daily cap.
type DailyHourLog struct {
	gorm.Model
	EnrollmentID uint   `json:"enrollment_id" gorm:"not null;uniqueIndex:idx_enrollment_log_date"`
	LogDate      string `json:"log_date" gorm:"size:10;not null;uniqueIndex:idx_enrollment_log_date"` // YYYY-MM-DD
	Hours        int    `json:"hours" gorm:"default:0"`
	Minutes      int    `json:"minutes" gorm:"default:0"`
	Seconds      int    `json:"seconds" gorm:"default:0"`
	Finalized    bool   `json:"finalized" gorm:"default:false"` // set once the day has passed
	IsDeleted    bool   `gorm:"default:false"`
}

// TotalSeconds returns the accumulated time of the day in whole seconds.
func (l *DailyHourLog) TotalSeconds() int {
	return l.Hours*3600 + l.Minutes*60 + l.Seconds
}

// DecimalHours returns the accumulated time of the day as decimal hours.
func (l *DailyHourLog) DecimalHours() float64 {
	return float64(l.TotalSeconds()) / 3600.0
}
