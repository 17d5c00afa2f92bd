package controllers

import (
	"tfoc/database"
	"tfoc/middleware"
	"tfoc/models"
	"tfoc/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SubmitReflection stores a participant's reflection for an article and
// marks the article completed. Hours are credited from elapsed reading time
// only, so a reflection never adds hours itself; it does re-run the
// completion check in case the final sync already crossed the threshold.
func SubmitReflection(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	reqData, ok := c.Locals("validatedReflection").(*ReflectionRequest)
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

	// Upsert the reflection. The first submission is authoritative; a
	// repeat submission may correct the text but changes nothing else.
	var reflection models.Reflection
	err = tx.Where("enrollment_id = ? AND article_id = ? AND is_deleted = ?", enrollment.ID, reqData.ArticleID, false).First(&reflection).Error
	if err == gorm.ErrRecordNotFound {
		reflection = models.Reflection{
			EnrollmentID: enrollment.ID,
			ArticleID:    reqData.ArticleID,
			ResponseText: reqData.ResponseText,
		}
		if err := tx.Create(&reflection).Error; err != nil {
			tx.Rollback()
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save reflection!", nil)
		}
	} else if err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save reflection!", nil)
	} else {
		reflection.ResponseText = reqData.ResponseText
		if err := tx.Save(&reflection).Error; err != nil {
			tx.Rollback()
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save reflection!", nil)
		}
	}

	// The article is done once its reflection is in.
	var progress models.ArticleProgress
	err = tx.Where("enrollment_id = ? AND article_id = ? AND is_deleted = ?", enrollment.ID, reqData.ArticleID, false).First(&progress).Error
	if err == gorm.ErrRecordNotFound {
		progress = models.ArticleProgress{
			EnrollmentID: enrollment.ID,
			ArticleID:    reqData.ArticleID,
			Status:       models.ProgressCompleted,
		}
		err = tx.Create(&progress).Error
	} else if err == nil {
		progress.Status = models.ProgressCompleted
		err = tx.Save(&progress).Error
	}
	if err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save reflection!", nil)
	}

	result, err := aggregateEnrollment(tx, enrollment)
	if err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save reflection!", nil)
	}

	freshlyIssued := result.Certificate != nil

	// Completed on an earlier sync: surface the existing code.
	if result.IsCompleted && result.Certificate == nil {
		var existing models.Certificate
		if err := tx.Where("enrollment_id = ? AND is_deleted = ?", enrollment.ID, false).First(&existing).Error; err == nil {
			result.Certificate = &existing
		}
	}

	tx.Commit()

	if freshlyIssued {
		go utils.SendCertificateEmail(user.Email, user.Name, result.Certificate.VerificationCode, result.Certificate.HoursCompleted)
	}

	data := fiber.Map{
		"enrollmentCompleted": result.IsCompleted,
		"totalHours":          result.TotalHours,
	}
	if result.Certificate != nil {
		data["verificationCode"] = result.Certificate.VerificationCode
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Reflection submitted successfully!", data)
}
