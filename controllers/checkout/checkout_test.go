package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"
	"tfoc/config"
	"tfoc/database"
	"tfoc/middleware"
	"tfoc/models"
	checkoutValidators "tfoc/validators/checkout"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupCheckoutTest(t *testing.T) (*fiber.App, models.User, string) {
	config.AppConfig = &config.Config{
		JWTKey:          "test-secret",
		DailyCapHours:   8.0,
		DefaultTimezone: "America/Chicago",
	}

	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	require.NoError(t, err)
	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}

	user := models.User{Name: "Dana Reyes", Email: "dana@example.com", Password: "not-used"}
	require.NoError(t, db.Create(&user).Error)

	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Role, user.Email)
	require.NoError(t, err)

	app := fiber.New()
	app.Post("/checkout/confirm", middleware.JWTMiddleware, checkoutValidators.ConfirmCheckout(), ConfirmCheckout)
	app.Get("/checkout/session/:ref", middleware.JWTMiddleware, GetCheckoutSession)

	return app, user, token
}

func stubProvider(t *testing.T, session *providerSession, err error) {
	original := fetchProviderSession
	fetchProviderSession = func(string) (*providerSession, error) { return session, err }
	t.Cleanup(func() { fetchProviderSession = original })
}

func confirmRequest(t *testing.T, app *fiber.App, token, sessionRef string) (int, map[string]interface{}) {
	body, err := json.Marshal(map[string]string{"sessionRef": sessionRef})
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/checkout/confirm", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var envelope struct {
		Status bool                   `json:"status"`
		Data   map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	return resp.StatusCode, envelope.Data
}

func TestConfirmCheckoutCreatesEnrollment(t *testing.T) {
	app, user, token := setupCheckoutTest(t)
	sessionRef := uuid.NewString()

	stubProvider(t, &providerSession{
		ID:        sessionRef,
		PaymentID: "pay_123",
		Status:    "paid",
		Amount:    49.00,
		Metadata: struct {
			HoursRequired float64 `json:"hours_required"`
		}{HoursRequired: 40},
	}, nil)

	status, _ := confirmRequest(t, app, token, sessionRef)
	assert.Equal(t, 201, status)

	var enrollment models.Enrollment
	require.NoError(t, database.Database.Db.Where("user_id = ?", user.ID).First(&enrollment).Error)
	assert.Equal(t, 40.0, enrollment.HoursRequired)
	assert.Equal(t, models.EnrollmentActive, enrollment.Status)
	assert.Equal(t, sessionRef, enrollment.CheckoutRef)

	var record models.CheckoutSession
	require.NoError(t, database.Database.Db.Where("session_ref = ?", sessionRef).First(&record).Error)
	assert.Equal(t, "pay_123", record.PaymentID)
	require.NotNil(t, record.EnrollmentID)
	assert.Equal(t, enrollment.ID, *record.EnrollmentID)
}

func TestConfirmCheckoutIdempotentPerSession(t *testing.T) {
	app, user, token := setupCheckoutTest(t)
	sessionRef := uuid.NewString()

	stubProvider(t, &providerSession{
		ID:        sessionRef,
		PaymentID: "pay_456",
		Status:    "paid",
		Metadata: struct {
			HoursRequired float64 `json:"hours_required"`
		}{HoursRequired: 20},
	}, nil)

	status, _ := confirmRequest(t, app, token, sessionRef)
	require.Equal(t, 201, status)

	// A replayed confirmation must not mint a second enrollment
	status, data := confirmRequest(t, app, token, sessionRef)
	assert.Equal(t, 409, status)
	assert.NotNil(t, data["enrollmentId"])

	var count int64
	database.Database.Db.Model(&models.Enrollment{}).Where("user_id = ?", user.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestConfirmCheckoutRejectsUnpaidSession(t *testing.T) {
	app, user, token := setupCheckoutTest(t)

	stubProvider(t, &providerSession{
		ID:     "open-session",
		Status: "open",
		Metadata: struct {
			HoursRequired float64 `json:"hours_required"`
		}{HoursRequired: 40},
	}, nil)

	status, _ := confirmRequest(t, app, token, uuid.NewString())
	assert.Equal(t, 400, status)

	var count int64
	database.Database.Db.Model(&models.Enrollment{}).Where("user_id = ?", user.ID).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestConfirmCheckoutRejectsMalformedRef(t *testing.T) {
	app, _, token := setupCheckoutTest(t)

	status, _ := confirmRequest(t, app, token, "not-a-uuid")
	assert.Equal(t, 400, status)
}

func TestConfirmCheckoutRejectsDuplicatePayment(t *testing.T) {
	app, _, token := setupCheckoutTest(t)

	stubProvider(t, &providerSession{
		ID:        "first",
		PaymentID: "pay_once",
		Status:    "paid",
		Metadata: struct {
			HoursRequired float64 `json:"hours_required"`
		}{HoursRequired: 40},
	}, nil)

	status, _ := confirmRequest(t, app, token, uuid.NewString())
	require.Equal(t, 201, status)

	// The same provider payment arriving under a fresh session ref
	status, _ = confirmRequest(t, app, token, uuid.NewString())
	assert.Equal(t, 409, status)
}

func TestGetCheckoutSession(t *testing.T) {
	app, user, token := setupCheckoutTest(t)
	sessionRef := uuid.NewString()

	enrollmentID := uint(7)
	require.NoError(t, database.Database.Db.Create(&models.CheckoutSession{
		SessionRef:    sessionRef,
		UserID:        user.ID,
		PaymentID:     "pay_789",
		Amount:        49.00,
		HoursRequired: 40,
		Status:        models.CheckoutPaid,
		EnrollmentID:  &enrollmentID,
		ConfirmedAt:   time.Now(),
	}).Error)

	req := httptest.NewRequest("GET", "/checkout/session/"+sessionRef, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, 200, resp.StatusCode)

	var envelope struct {
		Data map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	assert.Equal(t, sessionRef, envelope.Data["sessionRef"])
	assert.Equal(t, 40.0, envelope.Data["hoursRequired"])
}
