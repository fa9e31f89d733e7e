package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSawaDayAtBeforeDawnIsYesterday(t *testing.T) {
	now := time.Date(2025, 3, 10, 4, 59, 0, 0, time.UTC)
	assert.Equal(t, "2025-03-09", SawaDayAt(now, "UTC", "05:00"))
}

func TestSawaDayAtAtDawnIsToday(t *testing.T) {
	now := time.Date(2025, 3, 10, 5, 0, 0, 0, time.UTC)
	assert.Equal(t, "2025-03-10", SawaDayAt(now, "UTC", "05:00"))
}

func TestSawaDayAtAfterDawnIsToday(t *testing.T) {
	now := time.Date(2025, 3, 10, 22, 30, 0, 0, time.UTC)
	assert.Equal(t, "2025-03-10", SawaDayAt(now, "UTC", "05:00"))
}

func TestSawaDayAtUsesTimezoneEstimate(t *testing.T) {
	loc, err := time.LoadLocation("Africa/Cairo")
	require.NoError(t, err)

	// Cairo's estimate is 04:30; 04:15 local is still yesterday, 04:45
	// local is today.
	before := time.Date(2025, 6, 1, 4, 15, 0, 0, loc)
	after := time.Date(2025, 6, 1, 4, 45, 0, 0, loc)
	assert.Equal(t, "2025-05-31", SawaDayAt(before, "Africa/Cairo", ""))
	assert.Equal(t, "2025-06-01", SawaDayAt(after, "Africa/Cairo", ""))
}

func TestSawaDayAtDawnOverrideWins(t *testing.T) {
	loc, err := time.LoadLocation("Africa/Cairo")
	require.NoError(t, err)

	// An actual Fajr of 03:50 beats the 04:30 estimate.
	now := time.Date(2025, 6, 1, 4, 0, 0, 0, loc)
	assert.Equal(t, "2025-06-01", SawaDayAt(now, "Africa/Cairo", "03:50"))
}

func TestSawaDayAtUnknownTimezoneFallsBackToUTC(t *testing.T) {
	now := time.Date(2025, 3, 10, 4, 0, 0, 0, time.UTC)
	assert.Equal(t, "2025-03-09", SawaDayAt(now, "Not/AZone", "05:00"))
}

func TestSawaDayAtMonthBoundary(t *testing.T) {
	now := time.Date(2025, 3, 1, 2, 0, 0, 0, time.UTC)
	assert.Equal(t, "2025-02-28", SawaDayAt(now, "UTC", "05:00"))
}

func TestTimeToMinutes(t *testing.T) {
	m, err := TimeToMinutes("05:23")
	require.NoError(t, err)
	assert.Equal(t, 323, m)

	m, err = TimeToMinutes("00:00")
	require.NoError(t, err)
	assert.Equal(t, 0, m)

	_, err = TimeToMinutes("25:00")
	assert.Error(t, err)
	_, err = TimeToMinutes("5")
	assert.Error(t, err)
	_, err = TimeToMinutes("")
	assert.Error(t, err)
}

func TestIsTimeBetween(t *testing.T) {
	assert.True(t, IsTimeBetween("06:00", "05:00", "12:00"))
	assert.False(t, IsTimeBetween("12:00", "05:00", "12:00"))

	// Window crossing midnight: Isha to Fajr.
	assert.True(t, IsTimeBetween("23:30", "20:00", "05:00"))
	assert.True(t, IsTimeBetween("02:00", "20:00", "05:00"))
	assert.False(t, IsTimeBetween("12:00", "20:00", "05:00"))
}
