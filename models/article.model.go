package models

import "gorm.io/gorm"

// Article is one entry in the educational reading library
type Article struct {
	gorm.Model
	Title            string `json:"title"`
	Slug             string `json:"slug" gorm:"unique;not null"`
	Summary          string `json:"summary"`
	Body             string `json:"body" gorm:"type:text"`
	EstimatedMinutes int    `json:"estimated_minutes" gorm:"default:30"`
	OrderIndex       int    `json:"order_index" gorm:"default:0"`
	IsPublished      bool   `json:"is_published" gorm:"default:false"`
	IsDeleted        bool   `gorm:"default:false"`
}
