package controllers

import (
	"tfoc/database"
	"tfoc/middleware"
	"tfoc/models"
	"tfoc/utils"

	"github.com/gofiber/fiber/v2"
)

// TimeSync is the incremental sync endpoint: the client reports seconds
// accrued since its last flush and receives the authoritative totals back.
// Client-reported time is never trusted past the daily cap.
func TimeSync(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	reqData, ok := c.Locals("validatedTimeSync").(*TimeSyncRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var article models.Article
	if err := database.Database.Db.Where("id = ? AND is_deleted = ? AND is_published = ?", reqData.ArticleID, false, true).First(&article).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Article not found!", nil)
	}

	tx := database.Database.Db.Begin()

	enrollment, err := lockActiveEnrollment(tx, userID, reqData.EnrollmentID, []string{models.EnrollmentActive, models.EnrollmentCompleted})
	if err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "No active enrollment found!", nil)
	}

	result, err := creditSeconds(tx, &user, enrollment, reqData.SecondsToAdd)
	if err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to log time!", nil)
	}

	// Cap already exhausted before this request: distinct signal so the
	// client stops its timer instead of retrying.
	if result.DailyLimitReached && result.SecondsLogged == 0 && reqData.SecondsToAdd > 0 {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusTooManyRequests, false, "Daily hour limit reached. Come back tomorrow!", fiber.Map{
			"secondsLogged":     0,
			"dailyHours":        result.DailyHours,
			"totalHours":        result.TotalHours,
			"hoursRequired":     result.HoursRequired,
			"isCompleted":       result.IsCompleted,
			"dailyLimitReached": true,
		})
	}

	// Mirror the credited seconds into the per-article record for resume.
	if result.SecondsLogged > 0 {
		if err := upsertArticleSeconds(tx, enrollment.ID, reqData.ArticleID, result.SecondsLogged); err != nil {
			tx.Rollback()
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to log time!", nil)
		}
	}

	tx.Commit()

	if result.Certificate != nil {
		go utils.SendCertificateEmail(user.Email, user.Name, result.Certificate.VerificationCode, result.Certificate.HoursCompleted)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Time synced successfully!", fiber.Map{
		"secondsLogged":     result.SecondsLogged,
		"dailyHours":        result.DailyHours,
		"totalHours":        result.TotalHours,
		"hoursRequired":     result.HoursRequired,
		"isCompleted":       result.IsCompleted,
		"dailyLimitReached": result.DailyLimitReached,
	})
}
