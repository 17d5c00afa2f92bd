package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Name            string    `gorm:"default:''"`
	Email           string    `gorm:"unique;not null"`
	Role            string    `gorm:"default:'PARTICIPANT'"` // PARTICIPANT, ADMIN
	Password        string    `gorm:"not null"`
	Timezone        string    `gorm:"default:''"` // IANA zone name, e.g. America/Denver
	IsEmailVerified bool      `gorm:"default:false"`
	LastLogin       time.Time `gorm:"default:NULL"`
	IsDeleted       bool      `gorm:"default:false"`
}
