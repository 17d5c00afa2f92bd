package controllers

import (
	"log"
	"tfoc/database"
	"tfoc/middleware"
	"tfoc/models"
	"tfoc/utils"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Request bodies, parsed by validators/admin.

type AdjustHoursRequest struct {
	Hours  float64 `json:"hours" validate:"min=0"`
	Reason string  `json:"reason" validate:"required"`
	Reset  bool    `json:"reset"`
}

type StatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active completed suspended refunded"`
}

// GetEnrollmentList is the admin back-office enrollment listing.
func GetEnrollmentList(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedEnrollmentList").(*struct {
		Page  *int `json:"page"`
		Limit *int `json:"limit"`
	})

	page := 1
	limit := 20
	if ok && reqData.Page != nil {
		page = *reqData.Page
	}
	if ok && reqData.Limit != nil {
		limit = *reqData.Limit
	}
	offset := (page - 1) * limit

	db := database.Database.Db.Model(&models.Enrollment{}).Where("is_deleted = ?", false)

	if status := c.Query("status"); status != "" {
		db = db.Where("status = ?", status)
	}

	var total int64
	db.Count(&total)

	var enrollments []models.Enrollment
	if err := db.Offset(offset).Limit(limit).Order("created_at desc").Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	response := map[string]interface{}{
		"enrollments": enrollments,
		"pagination": map[string]interface{}{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", response)
}

// AdjustHours is the sanctioned side channel for support staff to edit an
// enrollment's completed hours. Every edit writes an HourAdjustment audit
// row; a decrease is only honored with the explicit reset flag.
func AdjustHours(c *fiber.Ctx) error {
	adminID := c.Locals("userId").(uint)
	enrollmentID := c.Locals("enrollmentID").(uint)

	reqData, ok := c.Locals("validatedAdjustHours").(*AdjustHoursRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	tx := database.Database.Db.Begin()

	var enrollment models.Enrollment
	if err := database.LockForUpdate(tx).Where("id = ? AND is_deleted = ?", enrollmentID, false).First(&enrollment).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Enrollment not found!", nil)
	}

	previous := enrollment.HoursCompleted

	if reqData.Hours < previous && !reqData.Reset {
		tx.Rollback()
		log.Printf("Admin %d attempted non-reset hour decrease on enrollment %d (%.2f -> %.2f)", adminID, enrollmentID, previous, reqData.Hours)
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Completed hours cannot be reduced without an explicit reset!", nil)
	}

	adjustment := models.HourAdjustment{
		EnrollmentID:  enrollment.ID,
		AdminID:       adminID,
		PreviousHours: previous,
		NewHours:      reqData.Hours,
		Reason:        reqData.Reason,
		IsReset:       reqData.Reset,
	}
	if err := tx.Create(&adjustment).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to record adjustment!", nil)
	}

	enrollment.HoursCompleted = reqData.Hours

	if reqData.Reset {
		// A reset clears the accumulated logs so future aggregation cannot
		// restore the old total.
		if err := tx.Model(&models.DailyHourLog{}).
			Where("enrollment_id = ? AND is_deleted = ?", enrollment.ID, false).
			Update("is_deleted", true).Error; err != nil {
			tx.Rollback()
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to reset hour logs!", nil)
		}
		if enrollment.Status == models.EnrollmentCompleted && reqData.Hours < enrollment.HoursRequired {
			enrollment.Status = models.EnrollmentActive
			enrollment.CompletedAt = nil
		}
	}

	var cert *models.Certificate
	if enrollment.HoursCompleted >= enrollment.HoursRequired && enrollment.Status == models.EnrollmentActive {
		now := time.Now()
		enrollment.Status = models.EnrollmentCompleted
		enrollment.CompletedAt = &now

		issued, err := utils.EnsureCertificate(tx, &enrollment)
		if err != nil {
			tx.Rollback()
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to issue certificate!", nil)
		}
		cert = issued
	}

	if err := tx.Save(&enrollment).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update enrollment!", nil)
	}

	tx.Commit()

	data := fiber.Map{
		"enrollment": enrollment,
		"adjustment": adjustment,
	}
	if cert != nil {
		data["verificationCode"] = cert.VerificationCode
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Hours adjusted successfully!", data)
}

// UpdateEnrollmentStatus suspends, refunds, or reactivates an enrollment.
func UpdateEnrollmentStatus(c *fiber.Ctx) error {
	enrollmentID := c.Locals("enrollmentID").(uint)

	reqData, ok := c.Locals("validatedStatus").(*StatusRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var enrollment models.Enrollment
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", enrollmentID, false).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Enrollment not found!", nil)
	}

	enrollment.Status = reqData.Status
	if err := database.Database.Db.Save(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update status!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Status updated successfully!", enrollment)
}

// RegenerateCertificate deletes and reissues the certificate for a
// completed enrollment, e.g. after a participant name correction.
func RegenerateCertificate(c *fiber.Ctx) error {
	enrollmentID := c.Locals("enrollmentID").(uint)

	tx := database.Database.Db.Begin()

	var enrollment models.Enrollment
	if err := database.LockForUpdate(tx).Where("id = ? AND is_deleted = ?", enrollmentID, false).First(&enrollment).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Enrollment not found!", nil)
	}

	if enrollment.Status != models.EnrollmentCompleted {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Enrollment is not completed!", nil)
	}

	if err := tx.Unscoped().Where("enrollment_id = ?", enrollment.ID).Delete(&models.Certificate{}).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to remove old certificate!", nil)
	}

	cert, err := utils.EnsureCertificate(tx, &enrollment)
	if err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to issue certificate!", nil)
	}

	tx.Commit()

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate regenerated successfully!", cert)
}
