package controllers

import (
	"fmt"
	"strings"
	"tfoc/config"
	"tfoc/database"
	"tfoc/middleware"
	"tfoc/models"

	"github.com/gofiber/fiber/v2"
)

// loadCertificate resolves a verification code to the certificate with its
// enrollment and participant. Codes are matched case-insensitively.
func loadCertificate(code string) (*models.Certificate, *models.Enrollment, *models.User, error) {
	code = strings.ToUpper(strings.TrimSpace(code))

	var cert models.Certificate
	if err := database.Database.Db.Where("verification_code = ? AND is_deleted = ?", code, false).First(&cert).Error; err != nil {
		return nil, nil, nil, err
	}

	var enrollment models.Enrollment
	if err := database.Database.Db.Where("id = ?", cert.EnrollmentID).First(&enrollment).Error; err != nil {
		return nil, nil, nil, err
	}

	var user models.User
	if err := database.Database.Db.Where("id = ?", cert.UserID).First(&user).Error; err != nil {
		return nil, nil, nil, err
	}

	return &cert, &enrollment, &user, nil
}

// VerifyCertificate is the public read-only authenticity lookup.
func VerifyCertificate(c *fiber.Ctx) error {
	cert, enrollment, user, err := loadCertificate(c.Params("code"))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Certificate not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate verified successfully!", fiber.Map{
		"verificationCode": cert.VerificationCode,
		"participantName":  user.Name,
		"hoursCompleted":   cert.HoursCompleted,
		"hoursRequired":    enrollment.HoursRequired,
		"issuedAt":         cert.IssuedAt,
		"startedAt":        enrollment.StartedAt,
		"completedAt":      enrollment.CompletedAt,
	})
}

// GetCertificateDocument renders the downloadable completion certificate.
func GetCertificateDocument(c *fiber.Ctx) error {
	cert, _, user, err := loadCertificate(c.Params("code"))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Certificate not found!", nil)
	}

	html := fmt.Sprintf(`<!DOCTYPE html>
<html>
	<body style="font-family: Georgia, serif; background-color: #f4f4f4; padding: 40px;">
		<div style="max-width: 800px; margin: auto; background-color: #ffffff; border: 12px double #2c3e50; padding: 60px; text-align: center;">
			<h1 style="color: #2c3e50; letter-spacing: 4px;">CERTIFICATE OF COMPLETION</h1>
			<p style="font-size: 16px; color: #555555;">This certifies that</p>
			<h2 style="color: #333333; font-size: 32px; margin: 20px 0;">%s</h2>
			<p style="font-size: 16px; color: #555555;">has completed</p>
			<h3 style="color: #4CAF50; font-size: 28px; margin: 20px 0;">%.1f hours of community service</h3>
			<p style="font-size: 14px; color: #666666;">Issued on %s</p>
			<div style="background-color: #f8f9fa; border-radius: 8px; padding: 16px; margin-top: 40px; display: inline-block;">
				<p style="font-size: 12px; color: #999999; margin: 0 0 6px 0;">Verification Code</p>
				<h3 style="color: #2196F3; margin: 0; letter-spacing: 2px;">%s</h3>
			</div>
			<p style="font-size: 12px; color: #bbbbbb; margin-top: 30px;">Verify authenticity at tfoc.org/verify</p>
		</div>
	</body>
</html>`, user.Name, cert.HoursCompleted, cert.IssuedAt.Format("January 2, 2006"), cert.VerificationCode)

	c.Set("Content-Type", "text/html; charset=utf-8")
	return c.SendString(html)
}

// GetHourLogDocument renders the day-by-day hour log that accompanies the
// certificate for court submission.
func GetHourLogDocument(c *fiber.Ctx) error {
	cert, enrollment, user, err := loadCertificate(c.Params("code"))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Certificate not found!", nil)
	}

	var logs []models.DailyHourLog
	if err := database.Database.Db.Where("enrollment_id = ? AND is_deleted = ?", enrollment.ID, false).Order("log_date asc").Find(&logs).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch hour logs!", nil)
	}

	var rows strings.Builder
	for _, l := range logs {
		rows.WriteString(fmt.Sprintf(
			`<tr><td style="padding: 8px; border: 1px solid #dddddd;">%s</td><td style="padding: 8px; border: 1px solid #dddddd; text-align: right;">%dh %02dm</td><td style="padding: 8px; border: 1px solid #dddddd; text-align: right;">%.2f</td></tr>`,
			l.LogDate, l.Hours, l.Minutes, l.DecimalHours()))
	}

	html := fmt.Sprintf(`<!DOCTYPE html>
<html>
	<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 40px;">
		<div style="max-width: 700px; margin: auto; background-color: #ffffff; border-radius: 8px; padding: 40px;">
			<h1 style="color: #2c3e50; text-align: center;">Community Service Hour Log</h1>
			<p style="font-size: 14px; color: #555555; text-align: center;">%s &mdash; %.1f of %.1f hours &mdash; Verification Code %s</p>
			<table style="width: 100%%; border-collapse: collapse; margin-top: 30px;">
				<tr style="background-color: #2c3e50; color: #ffffff;">
					<th style="padding: 10px; text-align: left;">Date</th>
					<th style="padding: 10px; text-align: right;">Time Logged</th>
					<th style="padding: 10px; text-align: right;">Decimal Hours</th>
				</tr>
				%s
			</table>
			<p style="font-size: 12px; color: #999999; margin-top: 30px;">Daily totals are capped at %.1f hours in the participant's local timezone.</p>
		</div>
	</body>
</html>`, user.Name, cert.HoursCompleted, enrollment.HoursRequired, cert.VerificationCode, rows.String(), config.AppConfig.DailyCapHours)

	c.Set("Content-Type", "text/html; charset=utf-8")
	return c.SendString(html)
}
