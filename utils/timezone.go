package utils

import (
	"log"
	"tfoc/config"
	"time"
)

// UserLocation resolves a stored IANA timezone name, falling back to the
// configured default zone and finally UTC. The daily cap is keyed to the
// participant's local calendar day, never the server's UTC date.
func UserLocation(tz string) *time.Location {
	if tz != "" {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
		log.Printf("Unknown timezone %q, falling back to default", tz)
	}
	if loc, err := time.LoadLocation(config.AppConfig.DefaultTimezone); err == nil {
		return loc
	}
	return time.UTC
}

// TodayInZone returns the current calendar date (YYYY-MM-DD) in the user's
// stored timezone.
func TodayInZone(tz string) string {
	return time.Now().In(UserLocation(tz)).Format("2006-01-02")
}

// DateInZone formats an instant as a calendar date in the user's timezone.
func DateInZone(t time.Time, tz string) string {
	return t.In(UserLocation(tz)).Format("2006-01-02")
}
