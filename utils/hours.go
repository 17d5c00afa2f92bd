package utils

// Crediting math for the server-side time validator. All functions are pure;
// persistence and locking live with the callers.

// SplitSeconds converts whole seconds into hour/minute/second components.
func SplitSeconds(total int) (hours, minutes, seconds int) {
	if total < 0 {
		total = 0
	}
	return total / 3600, (total % 3600) / 60, total % 60
}

// DecimalHours converts whole seconds into decimal hours.
func DecimalHours(seconds int) float64 {
	return float64(seconds) / 3600.0
}

// RemainingCapSeconds returns how many more seconds may be credited today
// before dailyHours reaches capHours. Never negative.
func RemainingCapSeconds(dailyHours, capHours float64) int {
	remaining := int((capHours - dailyHours) * 3600.0)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// AllowedSeconds caps a requested addition at the seconds still available
// under the daily cap. Partial credit is expected near the cap.
func AllowedSeconds(requested int, dailyHours, capHours float64) int {
	if requested < 0 {
		return 0
	}
	remaining := RemainingCapSeconds(dailyHours, capHours)
	if requested > remaining {
		return remaining
	}
	return requested
}

// ClampReportedGain sanity-checks a client-reported seconds gain against the
// wall-clock seconds elapsed since the last save. A gain above
// 2*elapsed+10 indicates a tampered or drifting client clock and is clamped
// down to the wall-clock measurement. The 2x+10s allowance tolerates timer
// drift and staggered multi-tab saves.
func ClampReportedGain(gain, elapsed int) int {
	if gain < 0 {
		return 0
	}
	if elapsed < 0 {
		elapsed = 0
	}
	if gain > 2*elapsed+10 {
		return elapsed
	}
	return gain
}
