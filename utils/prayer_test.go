package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var testTimes = PrayerTimes{
	Fajr:    "05:00",
	Dhuhr:   "12:30",
	Asr:     "15:45",
	Maghrib: "18:20",
	Isha:    "19:50",
}

func TestCurrentPrayer(t *testing.T) {
	assert.Equal(t, "fajr", CurrentPrayer(testTimes, "05:00"))
	assert.Equal(t, "fajr", CurrentPrayer(testTimes, "09:00"))
	assert.Equal(t, "dhuhr", CurrentPrayer(testTimes, "12:30"))
	assert.Equal(t, "isha", CurrentPrayer(testTimes, "23:00"))

	// Before Fajr the window is still the previous day's Isha.
	assert.Equal(t, "isha", CurrentPrayer(testTimes, "03:00"))
}

func TestNextPrayer(t *testing.T) {
	name, at := NextPrayer(testTimes, "05:30")
	assert.Equal(t, "dhuhr", name)
	assert.Equal(t, "12:30", at)

	name, _ = NextPrayer(testTimes, "03:00")
	assert.Equal(t, "fajr", name)

	// After Isha the next prayer wraps to tomorrow's Fajr.
	name, _ = NextPrayer(testTimes, "22:00")
	assert.Equal(t, "fajr", name)
}

func TestCleanTiming(t *testing.T) {
	assert.Equal(t, "05:23", cleanTiming("05:23 (GST)"))
	assert.Equal(t, "05:23", cleanTiming("05:23"))
}

func TestCalculationMethod(t *testing.T) {
	assert.Equal(t, 5, calculationMethod("EG"))
	assert.Equal(t, 4, calculationMethod("AE"))
	assert.Equal(t, 4, calculationMethod("sa"))
	assert.Equal(t, 5, calculationMethod("GB"))
}
