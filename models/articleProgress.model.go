package models

import (
	"time"

	"gorm.io/gorm"
)

// ArticleProgress statuses
const (
	ProgressReading    = "reading"
	ProgressReflecting = "reflecting"
	ProgressCompleted  = "completed"
)

// ArticleProgress records how long one enrollment has spent on one article.
// LastSavedAt anchors the wall-clock sanity check on absolute progress saves.
type ArticleProgress struct {
	gorm.Model
	EnrollmentID uint      `json:"enrollment_id" gorm:"not null;uniqueIndex:idx_enrollment_article"`
	ArticleID    uint      `json:"article_id" gorm:"not null;uniqueIndex:idx_enrollment_article"`
	SecondsSpent int       `json:"seconds_spent" gorm:"default:0"`
	Status       string    `json:"status" gorm:"default:'reading'"`
	LastSavedAt  time.Time `json:"last_saved_at"`
	IsDeleted    bool      `gorm:"default:false"`
}
