package controllers

import (
	"tfoc/database"
	"tfoc/middleware"
	"tfoc/models"
	"tfoc/utils"

	"github.com/gofiber/fiber/v2"
)

// GetActiveEnrollment returns the caller's current enrollment with today's
// accrued hours, for the tracking dashboard.
func GetActiveEnrollment(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	var enrollment models.Enrollment
	if err := database.Database.Db.
		Where("user_id = ? AND is_deleted = ? AND status IN ?", userID, false, []string{models.EnrollmentActive, models.EnrollmentCompleted}).
		Order("created_at desc").First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "No active enrollment found!", nil)
	}

	today := utils.TodayInZone(user.Timezone)
	dailyHours := 0.0
	var hourLog models.DailyHourLog
	if err := database.Database.Db.Where("enrollment_id = ? AND log_date = ? AND is_deleted = ?", enrollment.ID, today, false).First(&hourLog).Error; err == nil {
		dailyHours = hourLog.DecimalHours()
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollment fetched successfully!", fiber.Map{
		"enrollment": enrollment,
		"dailyHours": dailyHours,
	})
}

// GetEnrollmentList returns the caller's enrollments with pagination.
func GetEnrollmentList(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedEnrollmentList").(*struct {
		Page  *int `json:"page"`
		Limit *int `json:"limit"`
	})

	page := 1
	limit := 10
	if ok && reqData.Page != nil {
		page = *reqData.Page
	}
	if ok && reqData.Limit != nil {
		limit = *reqData.Limit
	}
	offset := (page - 1) * limit

	db := database.Database.Db.Model(&models.Enrollment{}).Where("user_id = ? AND is_deleted = ?", userID, false)

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

// GetEnrollmentHourLog returns the day-by-day log for one owned enrollment.
func GetEnrollmentHourLog(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	enrollmentID := c.Locals("enrollmentID").(uint)

	var enrollment models.Enrollment
	if err := database.Database.Db.Where("id = ? AND user_id = ? AND is_deleted = ?", enrollmentID, userID, false).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "No active enrollment found!", nil)
	}

	var logs []models.DailyHourLog
	if err := database.Database.Db.Where("enrollment_id = ? AND is_deleted = ?", enrollment.ID, false).Order("log_date asc").Find(&logs).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch hour logs!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Hour logs fetched successfully!", fiber.Map{
		"enrollment": enrollment,
		"logs":       logs,
	})
}
