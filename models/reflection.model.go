package models

import "gorm.io/gorm"

// Reflection is a participant's free-text response to one article.
// The first submission is authoritative; later upserts may correct the
// text but never trigger additional hour credit.
type Reflection struct {
	gorm.Model
	EnrollmentID uint   `json:"enrollment_id" gorm:"not null;uniqueIndex:idx_enrollment_reflection"`
	ArticleID    uint   `json:"article_id" gorm:"not null;uniqueIndex:idx_enrollment_reflection"`
	ResponseText string `json:"response_text" gorm:"type:text;not null"`
	IsDeleted    bool   `gorm:"default:false"`
}
