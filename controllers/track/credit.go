package controllers

import (
	"log"
	"tfoc/config"
	"tfoc/database"
	"tfoc/models"
	"tfoc/utils"
	"time"

	"gorm.io/gorm"
)

// creditResult is the outcome of one crediting pass, echoed back to clients.
type creditResult struct {
	SecondsLogged     int
	DailyHours        float64
	TotalHours        float64
	HoursRequired     float64
	IsCompleted       bool
	DailyLimitReached bool
	Certificate       *models.Certificate
}

// creditSeconds records seconds against today's hour log for the enrollment,
// capped at the daily limit, then re-aggregates the total. Must run inside a
// transaction holding the enrollment row lock so two near-simultaneous syncs
// cannot both pass the cap check against a stale total.
func creditSeconds(tx *gorm.DB, user *models.User, enrollment *models.Enrollment, seconds int) (*creditResult, error) {
	capHours := config.AppConfig.DailyCapHours
	today := utils.TodayInZone(user.Timezone)

	var hourLog models.DailyHourLog
	err := tx.Where("enrollment_id = ? AND log_date = ? AND is_deleted = ?", enrollment.ID, today, false).First(&hourLog).Error
	if err == gorm.ErrRecordNotFound {
		hourLog = models.DailyHourLog{EnrollmentID: enrollment.ID, LogDate: today}
		if err := tx.Create(&hourLog).Error; err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	daily := hourLog.DecimalHours()
	if daily >= capHours {
		return &creditResult{
			DailyHours:        daily,
			TotalHours:        enrollment.HoursCompleted,
			HoursRequired:     enrollment.HoursRequired,
			IsCompleted:       enrollment.Status == models.EnrollmentCompleted,
			DailyLimitReached: true,
		}, nil
	}

	allowed := utils.AllowedSeconds(seconds, daily, capHours)
	if allowed > 0 {
		hourLog.Hours, hourLog.Minutes, hourLog.Seconds = utils.SplitSeconds(hourLog.TotalSeconds() + allowed)
		if err := tx.Save(&hourLog).Error; err != nil {
			return nil, err
		}
	}

	result, err := aggregateEnrollment(tx, enrollment)
	if err != nil {
		return nil, err
	}

	result.SecondsLogged = allowed
	result.DailyHours = hourLog.DecimalHours()
	result.DailyLimitReached = result.DailyHours >= capHours
	return result, nil
}

// aggregateEnrollment recomputes the enrollment total from persisted hour
// logs, applies the never-decrease guard, and handles the completion
// transition with idempotent certificate issuance. Must run inside the same
// locked transaction as the write that triggered it.
func aggregateEnrollment(tx *gorm.DB, enrollment *models.Enrollment) (*creditResult, error) {
	var sumSeconds int64
	err := tx.Model(&models.DailyHourLog{}).
		Where("enrollment_id = ? AND is_deleted = ?", enrollment.ID, false).
		Select("COALESCE(SUM(hours * 3600 + minutes * 60 + seconds), 0)").
		Scan(&sumSeconds).Error
	if err != nil {
		return nil, err
	}

	newTotal := utils.DecimalHours(int(sumSeconds))
	if newTotal < enrollment.HoursCompleted {
		// An admin override may have set a higher value; keep it.
		log.Printf("Enrollment %d: recomputed total %.4f below stored %.4f, keeping stored", enrollment.ID, newTotal, enrollment.HoursCompleted)
		newTotal = enrollment.HoursCompleted
	}
	enrollment.HoursCompleted = newTotal

	result := &creditResult{
		TotalHours:    newTotal,
		HoursRequired: enrollment.HoursRequired,
		IsCompleted:   enrollment.Status == models.EnrollmentCompleted,
	}

	if newTotal >= enrollment.HoursRequired && enrollment.Status == models.EnrollmentActive {
		now := time.Now()
		enrollment.Status = models.EnrollmentCompleted
		enrollment.CompletedAt = &now
		result.IsCompleted = true

		cert, err := utils.EnsureCertificate(tx, enrollment)
		if err != nil {
			return nil, err
		}
		result.Certificate = cert
	}

	if err := tx.Save(enrollment).Error; err != nil {
		return nil, err
	}
	return result, nil
}

// lockActiveEnrollment loads and row-locks an enrollment owned by the user.
// Pass nil statuses to accept any non-deleted enrollment.
func lockActiveEnrollment(tx *gorm.DB, userID, enrollmentID uint, statuses []string) (*models.Enrollment, error) {
	var enrollment models.Enrollment
	q := database.LockForUpdate(tx).Where("id = ? AND user_id = ? AND is_deleted = ?", enrollmentID, userID, false)
	if len(statuses) > 0 {
		q = q.Where("status IN ?", statuses)
	}
	if err := q.First(&enrollment).Error; err != nil {
		return nil, err
	}
	return &enrollment, nil
}
