package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitSeconds(t *testing.T) {
	tests := []struct {
		name    string
		total   int
		hours   int
		minutes int
		seconds int
	}{
		{"zero", 0, 0, 0, 0},
		{"under a minute", 45, 0, 0, 45},
		{"exact hour", 3600, 1, 0, 0},
		{"mixed", 7385, 2, 3, 5},
		{"negative clamps to zero", -30, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, m, s := SplitSeconds(tt.total)
			assert.Equal(t, tt.hours, h)
			assert.Equal(t, tt.minutes, m)
			assert.Equal(t, tt.seconds, s)
		})
	}
}

func TestDecimalHours(t *testing.T) {
	assert.Equal(t, 0.0, DecimalHours(0))
	assert.Equal(t, 1.0, DecimalHours(3600))
	assert.Equal(t, 0.5, DecimalHours(1800))
	assert.InDelta(t, 8.0, DecimalHours(28800), 0.0001)
}

func TestRemainingCapSeconds(t *testing.T) {
	assert.Equal(t, 28800, RemainingCapSeconds(0, 8.0))
	assert.Equal(t, 1800, RemainingCapSeconds(7.5, 8.0))
	assert.Equal(t, 0, RemainingCapSeconds(8.0, 8.0))
	assert.Equal(t, 0, RemainingCapSeconds(9.0, 8.0))
}

func TestAllowedSeconds(t *testing.T) {
	tests := []struct {
		name       string
		requested  int
		dailyHours float64
		want       int
	}{
		{"well under cap", 3600, 0, 3600},
		{"partial credit at cap boundary", 3600, 7.5, 1800},
		{"at cap", 60, 8.0, 0},
		{"over cap", 60, 8.5, 0},
		{"negative request", -10, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AllowedSeconds(tt.requested, tt.dailyHours, 8.0))
		})
	}
}

func TestClampReportedGain(t *testing.T) {
	tests := []struct {
		name    string
		gain    int
		elapsed int
		want    int
	}{
		{"honest gain passes", 30, 30, 30},
		{"drift within allowance", 70, 60, 70},
		{"exactly at threshold", 130, 60, 130},
		{"just past threshold clamps", 131, 60, 60},
		{"forwarded clock clamps to elapsed", 99900, 10, 10},
		{"zero elapsed small gain", 10, 0, 10},
		{"zero elapsed large gain", 11, 0, 0},
		{"negative gain", -5, 30, 0},
		{"negative elapsed treated as zero", 50, -5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClampReportedGain(tt.gain, tt.elapsed))
		})
	}
}

// A clamped gain can never exceed what the wall clock could have produced
// plus the fixed drift allowance.
func TestClampReportedGainNeverExceedsAllowance(t *testing.T) {
	for elapsed := 0; elapsed <= 300; elapsed += 7 {
		for gain := 0; gain <= 1000; gain += 13 {
			got := ClampReportedGain(gain, elapsed)
			assert.LessOrEqual(t, got, 2*elapsed+10, "gain=%d elapsed=%d", gain, elapsed)
			assert.LessOrEqual(t, got, gain, "clamp must not invent seconds")
		}
	}
}
