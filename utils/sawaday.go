package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DefaultDawn is the global fallback dawn estimate for timezones we have
// no entry for.
const DefaultDawn = "05:00"

// dawnEstimates holds rough year-round Fajr estimates per timezone. An
// actual prayer-time lookup always wins over these.
var dawnEstimates = map[string]string{
	"Africa/Cairo":     "04:30",
	"Asia/Dubai":       "04:45",
	"Asia/Riyadh":      "04:30",
	"Asia/Amman":       "04:30",
	"Europe/Istanbul":  "05:00",
	"Europe/London":    "05:00",
	"America/New_York": "05:15",
}

// SawaDay returns the current sawa-day key (YYYY-MM-DD) for a timezone.
// The day rolls over at dawn, not midnight: before dawn the key is still
// yesterday's calendar date. dawn is an optional HH:MM override (from a
// prayer-time lookup); pass "" to use the built-in estimate.
func SawaDay(timezone, dawn string) string {
	return SawaDayAt(time.Now(), timezone, dawn)
}

// SawaDayAt is SawaDay evaluated at an explicit instant.
func SawaDayAt(now time.Time, timezone, dawn string) string {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		loc = time.UTC
	}
	local := now.In(loc)

	dawnMins, err := TimeToMinutes(dawn)
	if err != nil {
		if est, ok := dawnEstimates[timezone]; ok {
			dawnMins, _ = TimeToMinutes(est)
		} else {
			dawnMins, _ = TimeToMinutes(DefaultDawn)
		}
	}

	day := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	if local.Hour()*60+local.Minute() < dawnMins {
		// AddDate walks the civil calendar, so the subtraction stays
		// correct across DST transitions.
		day = day.AddDate(0, 0, -1)
	}
	return day.Format("2006-01-02")
}

// TimeToMinutes parses HH:MM into minutes since midnight.
func TimeToMinutes(t string) (int, error) {
	parts := strings.SplitN(t, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time %q", t)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid time %q", t)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid time %q", t)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("time %q out of range", t)
	}
	return h*60 + m, nil
}

// IsTimeBetween reports whether current (HH:MM) falls in [start, end),
// handling windows that cross midnight such as Isha to Fajr.
func IsTimeBetween(current, start, end string) bool {
	c, err1 := TimeToMinutes(current)
	s, err2 := TimeToMinutes(start)
	e, err3 := TimeToMinutes(end)
	if err1 != nil || err2 != nil || err3 != nil {
		return false
	}
	if e < s {
		return c >= s || c < e
	}
	return c >= s && c < e
}
