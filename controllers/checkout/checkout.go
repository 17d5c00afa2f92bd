package controllers

import (
	"encoding/json"
	"log"
	"tfoc/config"
	"tfoc/database"
	"tfoc/middleware"
	"tfoc/models"
	"tfoc/utils"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/gofiber/fiber/v2"
)

// providerSession is the subset of the hosted checkout provider's session
// object this service reads.
type providerSession struct {
	ID        string  `json:"id"`
	PaymentID string  `json:"payment_id"`
	Status    string  `json:"status"` // open, paid, expired
	Amount    float64 `json:"amount"`
	Metadata  struct {
		HoursRequired float64 `json:"hours_required"`
	} `json:"metadata"`
}

// fetchProviderSession looks the session up at the payment provider. Split
// out so tests can point it at a stub server.
var fetchProviderSession = func(sessionRef string) (*providerSession, error) {
	client := resty.New().SetTimeout(10 * time.Second)
	resp, err := client.R().
		SetHeader("Authorization", "Bearer "+config.AppConfig.PaymentApiKey).
		Get(config.AppConfig.PaymentApiURL + "checkout/sessions/" + sessionRef)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode() != 200 {
		log.Printf("Provider session lookup failed (%d): %s", resp.StatusCode(), resp.String())
		return nil, fiber.ErrBadGateway
	}

	var session providerSession
	if err := json.Unmarshal(resp.Body(), &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// ConfirmCheckout verifies a completed checkout session with the payment
// provider and creates the enrollment. The provider payment id guards
// against processing the same payment twice.
func ConfirmCheckout(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	sessionRef, ok := c.Locals("sessionRef").(string)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	// Duplicate confirmation of the same session returns the existing enrollment.
	var existing models.CheckoutSession
	if err := database.Database.Db.Where("session_ref = ? AND is_deleted = ?", sessionRef, false).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Checkout already processed!", fiber.Map{
			"enrollmentId": existing.EnrollmentID,
		})
	}

	session, err := fetchProviderSession(sessionRef)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadGateway, false, "Failed to verify payment session!", nil)
	}

	if session.Status != "paid" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Payment not completed!", nil)
	}

	hoursRequired := session.Metadata.HoursRequired
	if hoursRequired <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid session: missing required hours!", nil)
	}

	// Same payment must never be converted into two enrollments.
	if session.PaymentID != "" {
		var dup models.CheckoutSession
		if err := database.Database.Db.Where("payment_id = ? AND is_deleted = ?", session.PaymentID, false).First(&dup).Error; err == nil {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Payment already processed!", nil)
		}
	}

	now := time.Now()
	enrollment := models.Enrollment{
		UserID:        userID,
		HoursRequired: hoursRequired,
		Status:        models.EnrollmentActive,
		CheckoutRef:   sessionRef,
		StartedAt:     now,
	}

	tx := database.Database.Db.Begin()

	if err := tx.Create(&enrollment).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create enrollment!", nil)
	}

	record := models.CheckoutSession{
		SessionRef:    sessionRef,
		UserID:        userID,
		PaymentID:     session.PaymentID,
		Amount:        session.Amount,
		HoursRequired: hoursRequired,
		Status:        models.CheckoutPaid,
		EnrollmentID:  &enrollment.ID,
		ConfirmedAt:   now,
	}

	if err := tx.Create(&record).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to record checkout!", nil)
	}

	tx.Commit()

	go utils.SendEnrollmentEmail(user.Email, user.Name, hoursRequired)

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Enrollment created successfully!", fiber.Map{
		"enrollment": enrollment,
	})
}

// GetCheckoutSession populates the post-purchase confirmation screen.
func GetCheckoutSession(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	sessionRef := c.Params("ref")

	var record models.CheckoutSession
	if err := database.Database.Db.Where("session_ref = ? AND user_id = ? AND is_deleted = ?", sessionRef, userID, false).First(&record).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Checkout session not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Checkout session fetched successfully!", fiber.Map{
		"sessionRef":    record.SessionRef,
		"amount":        record.Amount,
		"hoursRequired": record.HoursRequired,
		"status":        record.Status,
		"enrollmentId":  record.EnrollmentID,
		"confirmedAt":   record.ConfirmedAt,
	})
}
