package controllers

import (
	"tfoc/config"
	"tfoc/database"
	"tfoc/middleware"
	"tfoc/models"
	"tfoc/utils"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SaveProgress is the absolute-save endpoint: the client reports the total
// seconds spent on an article. The gain over the stored value is
// sanity-checked against wall-clock time since the last save before any of
// it is credited, so a tampered client clock cannot mint hours.
func SaveProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	reqData, ok := c.Locals("validatedProgress").(*ProgressRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var article models.Article
	if err := database.Database.Db.Where("id = ? AND is_deleted = ? AND is_published = ?", reqData.ArticleID, false, true).First(&article).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Article not found!", nil)
	}

	now := time.Now()
	tx := database.Database.Db.Begin()

	enrollment, err := lockActiveEnrollment(tx, userID, reqData.EnrollmentID, []string{models.EnrollmentActive, models.EnrollmentCompleted})
	if err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "No active enrollment found!", nil)
	}

	var progress models.ArticleProgress
	created := false
	err = tx.Where("enrollment_id = ? AND article_id = ? AND is_deleted = ?", enrollment.ID, reqData.ArticleID, false).First(&progress).Error
	if err == gorm.ErrRecordNotFound {
		progress = models.ArticleProgress{
			EnrollmentID: enrollment.ID,
			ArticleID:    reqData.ArticleID,
			LastSavedAt:  now,
		}
		created = true
	} else if err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save progress!", nil)
	}

	gain := reqData.SecondsSpent - progress.SecondsSpent
	if gain < 0 {
		gain = 0 // stored progress never decreases
	}

	// Clamp against real elapsed time. A fresh record has no save anchor,
	// so its first report is bounded by time since enrollment start instead.
	anchor := progress.LastSavedAt
	if created {
		anchor = enrollment.StartedAt
	}
	elapsed := int(now.Sub(anchor).Seconds())
	gain = utils.ClampReportedGain(gain, elapsed)

	// Single-article ceiling
	if progress.SecondsSpent+gain > config.AppConfig.MaxArticleSecs {
		gain = config.AppConfig.MaxArticleSecs - progress.SecondsSpent
		if gain < 0 {
			gain = 0
		}
	}

	result, err := creditSeconds(tx, &user, enrollment, gain)
	if err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save progress!", nil)
	}

	if result.DailyLimitReached && result.SecondsLogged == 0 && gain > 0 {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusTooManyRequests, false, "Daily hour limit reached. Come back tomorrow!", fiber.Map{
			"secondsSaved":      progress.SecondsSpent,
			"totalHours":        result.TotalHours,
			"dailyLimitReached": true,
		})
	}

	progress.SecondsSpent += result.SecondsLogged
	progress.LastSavedAt = now
	if reqData.Status != "" {
		progress.Status = reqData.Status
	}

	if err := tx.Save(&progress).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save progress!", nil)
	}

	tx.Commit()

	if result.Certificate != nil {
		go utils.SendCertificateEmail(user.Email, user.Name, result.Certificate.VerificationCode, result.Certificate.HoursCompleted)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress saved successfully!", fiber.Map{
		"secondsSaved":      progress.SecondsSpent,
		"totalHours":        result.TotalHours,
		"isCompleted":       result.IsCompleted,
		"dailyLimitReached": result.DailyLimitReached,
	})
}

// GetProgress returns the stored per-article progress so a reload can
// resume where the participant left off.
func GetProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	enrollmentID := c.Locals("enrollmentID").(uint)
	articleID := c.Locals("articleID").(uint)

	var enrollment models.Enrollment
	if err := database.Database.Db.Where("id = ? AND user_id = ? AND is_deleted = ?", enrollmentID, userID, false).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "No active enrollment found!", nil)
	}

	var progress models.ArticleProgress
	if err := database.Database.Db.Where("enrollment_id = ? AND article_id = ? AND is_deleted = ?", enrollmentID, articleID, false).First(&progress).Error; err != nil {
		// No record yet: a fresh article starts at zero.
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", fiber.Map{
			"secondsSpent": 0,
			"status":       models.ProgressReading,
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", fiber.Map{
		"secondsSpent": progress.SecondsSpent,
		"status":       progress.Status,
	})
}

// upsertArticleSeconds mirrors credited seconds into the per-article record,
// bounded by the single-article ceiling. Used by the incremental sync path.
func upsertArticleSeconds(tx *gorm.DB, enrollmentID, articleID uint, seconds int) error {
	var progress models.ArticleProgress
	err := tx.Where("enrollment_id = ? AND article_id = ? AND is_deleted = ?", enrollmentID, articleID, false).First(&progress).Error
	if err == gorm.ErrRecordNotFound {
		progress = models.ArticleProgress{
			EnrollmentID: enrollmentID,
			ArticleID:    articleID,
		}
	} else if err != nil {
		return err
	}

	progress.SecondsSpent += seconds
	if progress.SecondsSpent > config.AppConfig.MaxArticleSecs {
		progress.SecondsSpent = config.AppConfig.MaxArticleSecs
	}
	progress.LastSavedAt = time.Now()
	return tx.Save(&progress).Error
}
