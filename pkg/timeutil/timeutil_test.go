package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var day = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

func TestElapsedHours(t *testing.T) {
	testCases := []struct {
		name    string
		arrival string
		leaving string
		hours   float64
		wrapped bool
	}{
		{"regular working day", "09:00 AM", "05:30 PM", 8.5, false},
		{"overnight shift", "11:50 PM", "12:10 AM", 0.33, true},
		{"zero-length session", "09:00 AM", "09:00 AM", 0.0, false},
		{"one minute", "09:00 AM", "09:01 AM", 0.02, false},
		{"noon boundary", "11:00 AM", "12:00 PM", 1.0, false},
		{"midnight arrival", "12:00 AM", "08:00 AM", 8.0, false},
		{"nearly a full day wrap", "12:10 AM", "12:05 AM", 23.92, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			hours, wrapped, err := ElapsedHours(day, tc.arrival, tc.leaving)
			require.NoError(t, err)
			assert.Equal(t, tc.hours, hours)
			assert.Equal(t, tc.wrapped, wrapped)
			assert.GreaterOrEqual(t, hours, 0.0)
		})
	}
}

func TestElapsedHoursInvalidInput(t *testing.T) {
	_, _, err := ElapsedHours(day, "25:00", "05:30 PM")
	assert.Error(t, err)

	_, _, err = ElapsedHours(day, "09:00 AM", "not a time")
	assert.Error(t, err)
}

func TestParseTimeOfDay(t *testing.T) {
	parsed, err := ParseTimeOfDay("03:04 PM")
	require.NoError(t, err)
	assert.Equal(t, 15, parsed.Hour())
	assert.Equal(t, 4, parsed.Minute())

	_, err = ParseTimeOfDay("15:04")
	assert.Error(t, err)
}

func TestNewClock(t *testing.T) {
	clock, err := NewClock("Asia/Kolkata")
	require.NoError(t, err)
	assert.Equal(t, "Asia/Kolkata", clock.Now().Location().String())

	_, err = NewClock("Not/AZone")
	assert.Error(t, err)
}
