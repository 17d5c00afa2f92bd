package utils

import (
	"log"
	"tfoc/models"
	"time"

	"gorm.io/gorm"
)

// certificateCodeRetries bounds the collision retry loop. Two 4-character
// groups over a 32-symbol alphabet make collisions rare; the unique
// constraint catches the ones that happen anyway.
const certificateCodeRetries = 5

// EnsureCertificate issues the completion certificate for an enrollment if
// one does not already exist. Safe to call repeatedly: the existing
// certificate is returned untouched on every call after the first. Runs
// inside the caller's transaction.
func EnsureCertificate(tx *gorm.DB, enrollment *models.Enrollment) (*models.Certificate, error) {
	var existing models.Certificate
	if err := tx.Where("enrollment_id = ? AND is_deleted = ?", enrollment.ID, false).First(&existing).Error; err == nil {
		return &existing, nil
	}

	var lastErr error
	for attempt := 0; attempt < certificateCodeRetries; attempt++ {
		cert := models.Certificate{
			EnrollmentID:     enrollment.ID,
			UserID:           enrollment.UserID,
			VerificationCode: GenerateVerificationCode(),
			HoursCompleted:   enrollment.HoursCompleted,
			IssuedAt:         time.Now(),
		}
		if err := tx.Create(&cert).Error; err != nil {
			lastErr = err
			log.Printf("Certificate insert failed for enrollment %d (attempt %d): %v", enrollment.ID, attempt+1, err)
			// A concurrent request may have issued the certificate first.
			if err := tx.Where("enrollment_id = ? AND is_deleted = ?", enrollment.ID, false).First(&existing).Error; err == nil {
				return &existing, nil
			}
			continue
		}
		return &cert, nil
	}
	return nil, lastErr
}
