package utils

import (
	"testing"
	"tfoc/config"
	"time"

	"github.com/stretchr/testify/assert"
)

func setTestConfig() {
	config.AppConfig = &config.Config{DefaultTimezone: "America/Chicago"}
}

func TestUserLocation(t *testing.T) {
	setTestConfig()

	assert.Equal(t, "Asia/Kolkata", UserLocation("Asia/Kolkata").String())
	assert.Equal(t, "America/Chicago", UserLocation("").String())
	assert.Equal(t, "America/Chicago", UserLocation("Not/AZone").String())
}

func TestDateInZone(t *testing.T) {
	setTestConfig()

	// 2026-03-01 03:30 UTC is still the previous day in Chicago
	instant := time.Date(2026, 3, 1, 3, 30, 0, 0, time.UTC)
	assert.Equal(t, "2026-02-28", DateInZone(instant, "America/Chicago"))
	assert.Equal(t, "2026-03-01", DateInZone(instant, "UTC"))
	assert.Equal(t, "2026-03-01", DateInZone(instant, "Asia/Kolkata"))
}

func TestTodayInZoneMatchesManualFormat(t *testing.T) {
	setTestConfig()

	want := time.Now().In(UserLocation("Asia/Kolkata")).Format("2006-01-02")
	assert.Equal(t, want, TodayInZone("Asia/Kolkata"))
}
