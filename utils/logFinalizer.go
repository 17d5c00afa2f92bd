package utils

import (
	"log"
	"tfoc/database"
	"tfoc/models"
	"time"

	"github.com/robfig/cron/v3"
)

// InitializeLogFinalizer sets up the nightly job that freezes past-day hour
// logs. Once finalized, a log only changes through an admin adjustment.
func InitializeLogFinalizer() {
	log.Println("[LOG-FINALIZER] Initializing hour log finalizer...")

	c := cron.New()

	// Runs every hour; a log is finalized once its calendar day has passed
	// in every timezone (36h guard covers UTC-12 through UTC+14).
	c.AddFunc("0 * * * *", func() {
		FinalizePastDayLogs()
	})

	c.Start()
	log.Println("[LOG-FINALIZER] Hour log finalizer started - runs hourly")
}

// FinalizePastDayLogs marks hour logs for finished calendar days immutable.
func FinalizePastDayLogs() {
	db := database.Database.Db

	cutoff := time.Now().Add(-36 * time.Hour).UTC().Format("2006-01-02")

	result := db.Model(&models.DailyHourLog{}).
		Where("finalized = ? AND is_deleted = ? AND log_date <= ?", false, false, cutoff).
		Update("finalized", true)
	if result.Error != nil {
		log.Printf("[LOG-FINALIZER] Error finalizing hour logs: %v", result.Error)
		return
	}

	if result.RowsAffected > 0 {
		log.Printf("[LOG-FINALIZER] Finalized %d hour logs up to %s", result.RowsAffected, cutoff)
	}
}
