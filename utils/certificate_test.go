package utils

import (
	"testing"
	"tfoc/models"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func certificateTestDb(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Enrollment{}, &models.Certificate{}))
	return db
}

func TestEnsureCertificateIdempotent(t *testing.T) {
	db := certificateTestDb(t)

	enrollment := models.Enrollment{
		UserID:         1,
		HoursRequired:  40,
		HoursCompleted: 40,
		Status:         models.EnrollmentCompleted,
		StartedAt:      time.Now(),
	}
	require.NoError(t, db.Create(&enrollment).Error)

	first, err := EnsureCertificate(db, &enrollment)
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.NotEmpty(t, first.VerificationCode)
	assert.Equal(t, 40.0, first.HoursCompleted)

	// Repeated calls return the same certificate and create no new rows
	for i := 0; i < 5; i++ {
		again, err := EnsureCertificate(db, &enrollment)
		require.NoError(t, err)
		assert.Equal(t, first.ID, again.ID)
		assert.Equal(t, first.VerificationCode, again.VerificationCode)
	}

	var count int64
	db.Model(&models.Certificate{}).Where("enrollment_id = ?", enrollment.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestEnsureCertificateSnapshotsHours(t *testing.T) {
	db := certificateTestDb(t)

	enrollment := models.Enrollment{
		UserID:         2,
		HoursRequired:  10,
		HoursCompleted: 10.5,
		Status:         models.EnrollmentCompleted,
		StartedAt:      time.Now(),
	}
	require.NoError(t, db.Create(&enrollment).Error)

	cert, err := EnsureCertificate(db, &enrollment)
	require.NoError(t, err)
	assert.Equal(t, 10.5, cert.HoursCompleted)

	// Later hour changes do not rewrite the issued certificate
	enrollment.HoursCompleted = 12
	require.NoError(t, db.Save(&enrollment).Error)

	again, err := EnsureCertificate(db, &enrollment)
	require.NoError(t, err)
	assert.Equal(t, 10.5, again.HoursCompleted)
}
