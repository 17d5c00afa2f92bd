package utils

import (
	"fmt"
	"log"
	"net/smtp"
	"tfoc/config"
)

// SendEmail sends an HTML email through the configured SMTP account.
func SendEmail(to []string, subject string, htmlBody string) error {
	smtpHost := "smtp.gmail.com"
	smtpPort := "587"

	from := config.AppConfig.EmailSender
	password := config.AppConfig.Password // App password

	header := fmt.Sprintf("Subject: %s\nMIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n\n", subject)
	message := []byte(header + "\n" + htmlBody)

	auth := smtp.PlainAuth("", from, password, smtpHost)

	if err := smtp.SendMail(smtpHost+":"+smtpPort, auth, from, to, message); err != nil {
		log.Printf("Error sending email to %v: %v", to, err)
		return err
	}
	return nil
}

func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
		<html>
			<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px;">
				<div style="max-width: 600px; margin: auto; background-color: #ffffff; border-radius: 8px; padding: 30px; box-shadow: 0 2px 8px rgba(0, 0, 0, 0.1);">
					<h2 style="color: #333333; text-align: center;">%s</h2>
					%s
					<p style="text-align: center; font-size: 12px; color: #bbbbbb; margin-top: 30px;">TFOC Community Service Team</p>
				</div>
			</body>
		</html>
	`, title, bodyContent)
}

// SendWelcomeEmail greets a newly registered participant.
func SendWelcomeEmail(email, name string) {
	body := fmt.Sprintf(`
		<p style="font-size: 16px; color: #555555;">Dear %s,</p>
		<p style="font-size: 16px; color: #555555;">Welcome to TFOC Community Service. Once your enrollment is active you can start reading, reflecting, and logging your service hours.</p>
	`, name)

	if err := SendEmail([]string{email}, "Welcome to TFOC Community Service", getEmailTemplate("Welcome!", body)); err != nil {
		log.Printf("Failed to send welcome email to %s: %v", email, err)
	}
}

// SendEnrollmentEmail confirms a new enrollment after checkout.
func SendEnrollmentEmail(email, name string, hoursRequired float64) {
	body := fmt.Sprintf(`
		<p style="font-size: 16px; color: #555555;">Dear %s,</p>
		<p style="font-size: 16px; color: #555555;">Your enrollment is confirmed. You are registered to complete:</p>
		<h3 style="text-align: center; color: #4CAF50; margin: 20px 0;">%.1f service hours</h3>
		<p style="font-size: 14px; color: #666666;">Log in to start reading articles and tracking your time. Hours are capped at 8 per day, so plan ahead of your deadline.</p>
	`, name, hoursRequired)

	if err := SendEmail([]string{email}, "Enrollment Confirmation - TFOC Community Service", getEmailTemplate("🎉 Enrollment Confirmed!", body)); err != nil {
		log.Printf("Failed to send enrollment email to %s: %v", email, err)
	}
}

// SendCertificateEmail notifies a participant that their completion
// certificate has been issued.
func SendCertificateEmail(email, name, verificationCode string, hours float64) {
	body := fmt.Sprintf(`
		<p style="font-size: 16px; color: #555555;">Dear %s,</p>
		<p style="font-size: 16px; color: #555555;">Congratulations on completing your %.1f service hours!</p>
		<div style="background-color: #f8f9fa; border-radius: 8px; padding: 20px; margin: 20px 0; text-align: center;">
			<p style="font-size: 14px; color: #666666; margin-bottom: 10px;">Your Verification Code:</p>
			<h2 style="color: #2196F3; margin: 0;">%s</h2>
		</div>
		<p style="font-size: 14px; color: #666666;">Your certificate is ready for download. Courts and agencies can confirm its authenticity with the verification code above.</p>
	`, name, hours, verificationCode)

	if err := SendEmail([]string{email}, "Certificate of Completion - TFOC Community Service", getEmailTemplate("🏆 Certificate of Completion", body)); err != nil {
		log.Printf("Failed to send certificate email to %s: %v", email, err)
	}
}
