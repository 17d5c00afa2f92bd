package controllers_test

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"tfoc/config"
	"tfoc/database"
	"tfoc/models"
	certificateRoutes "tfoc/routers/certificateRoutes"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupCertificateTest(t *testing.T) (*fiber.App, *gorm.DB) {
	config.AppConfig = &config.Config{
		JWTKey:          "test-secret",
		DailyCapHours:   8.0,
		DefaultTimezone: "America/Chicago",
	}

	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	require.NoError(t, err)
	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	certificateRoutes.SetupCertificateRoutes(app)
	return app, db
}

func seedIssuedCertificate(t *testing.T, db *gorm.DB) (models.User, models.Enrollment, models.Certificate) {
	user := models.User{Name: "Taylor Quinn", Email: "taylor@example.com", Password: "not-used"}
	require.NoError(t, db.Create(&user).Error)

	completed := time.Now()
	enrollment := models.Enrollment{
		UserID:         user.ID,
		HoursRequired:  40,
		HoursCompleted: 40,
		Status:         models.EnrollmentCompleted,
		StartedAt:      completed.AddDate(0, 0, -14),
		CompletedAt:    &completed,
	}
	require.NoError(t, db.Create(&enrollment).Error)

	require.NoError(t, db.Create(&models.DailyHourLog{
		EnrollmentID: enrollment.ID, LogDate: "2026-08-20", Hours: 5, Minutes: 30,
	}).Error)

	cert := models.Certificate{
		EnrollmentID:     enrollment.ID,
		UserID:           user.ID,
		VerificationCode: "TFOC-TEST-CODE",
		HoursCompleted:   40,
		IssuedAt:         completed,
	}
	require.NoError(t, db.Create(&cert).Error)

	return user, enrollment, cert
}

func TestVerifyCertificate(t *testing.T) {
	app, db := setupCertificateTest(t)
	user, _, cert := seedIssuedCertificate(t, db)

	// No Authorization header: verification is public
	req := httptest.NewRequest("GET", "/certificate/verify/"+cert.VerificationCode, nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, 200, resp.StatusCode)

	var envelope struct {
		Data map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	assert.Equal(t, cert.VerificationCode, envelope.Data["verificationCode"])
	assert.Equal(t, user.Name, envelope.Data["participantName"])
	assert.Equal(t, 40.0, envelope.Data["hoursCompleted"])
}

func TestVerifyCertificateCaseInsensitive(t *testing.T) {
	app, db := setupCertificateTest(t)
	_, _, cert := seedIssuedCertificate(t, db)

	req := httptest.NewRequest("GET", "/certificate/verify/"+strings.ToLower(cert.VerificationCode), nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, 200, resp.StatusCode)
}

func TestVerifyCertificateUnknownCode(t *testing.T) {
	app, db := setupCertificateTest(t)
	seedIssuedCertificate(t, db)

	req := httptest.NewRequest("GET", "/certificate/verify/TFOC-ZZZZ-ZZZZ", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, 404, resp.StatusCode)
}

func TestCertificateDocumentRendersHTML(t *testing.T) {
	app, db := setupCertificateTest(t)
	user, _, cert := seedIssuedCertificate(t, db)

	req := httptest.NewRequest("GET", "/certificate/"+cert.VerificationCode+"/document", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, 200, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), user.Name)
	assert.Contains(t, string(body), cert.VerificationCode)
}

func TestHourLogDocumentListsDays(t *testing.T) {
	app, db := setupCertificateTest(t)
	_, _, cert := seedIssuedCertificate(t, db)

	req := httptest.NewRequest("GET", "/certificate/"+cert.VerificationCode+"/hour-log", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, 200, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "2026-08-20")
	assert.Contains(t, string(body), "5h 30m")
}
