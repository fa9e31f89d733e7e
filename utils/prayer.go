package utils

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/sawahq/sawa/config"
)

var prayerHTTPClient = &http.Client{Timeout: 3 * time.Second}

// PrayerNames in daily order.
var PrayerNames = []string{"fajr", "dhuhr", "asr", "maghrib", "isha"}

// PrayerTimes holds the five daily timings as HH:MM strings.
type PrayerTimes struct {
	Fajr    string `json:"fajr"`
	Dhuhr   string `json:"dhuhr"`
	Asr     string `json:"asr"`
	Maghrib string `json:"maghrib"`
	Isha    string `json:"isha"`
}

// ByName returns the timing for a prayer name, or "".
func (p PrayerTimes) ByName(name string) string {
	switch name {
	case "fajr":
		return p.Fajr
	case "dhuhr":
		return p.Dhuhr
	case "asr":
		return p.Asr
	case "maghrib":
		return p.Maghrib
	case "isha":
		return p.Isha
	}
	return ""
}

type aladhanResponse struct {
	Code   int    `json:"code"`
	Status string `json:"status"`
	Data   struct {
		Timings map[string]string `json:"timings"`
	} `json:"data"`
}

// simple in-memory TTL cache keyed by (city, country, date)
type prayerCacheEntry struct {
	times     PrayerTimes
	expiresAt time.Time
}

var (
	prayerCacheMu sync.RWMutex
	prayerCache   = make(map[string]prayerCacheEntry)
	prayerTTL     = 6 * time.Hour
)

// calculationMethod picks the aladhan calculation method by country.
func calculationMethod(country string) int {
	switch strings.ToUpper(country) {
	case "EG":
		return 5 // Egyptian General Authority of Survey
	case "AE", "SA":
		return 4 // Umm Al-Qura
	default:
		return 5
	}
}

// GetPrayerTimes fetches the five daily timings for a city/country and
// date (YYYY-MM-DD). Results are cached; failures bubble up so callers
// can degrade to the built-in dawn estimate.
func GetPrayerTimes(ctx context.Context, city, country, date string) (PrayerTimes, error) {
	if city == "" || country == "" {
		return PrayerTimes{}, errors.New("city and country required")
	}
	cacheKey := fmt.Sprintf("%s|%s|%s", strings.ToLower(city), strings.ToUpper(country), date)

	prayerCacheMu.RLock()
	if entry, ok := prayerCache[cacheKey]; ok && time.Now().Before(entry.expiresAt) {
		prayerCacheMu.RUnlock()
		return entry.times, nil
	}
	prayerCacheMu.RUnlock()

	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return PrayerTimes{}, fmt.Errorf("invalid date %q", date)
	}

	base := config.Get().PrayerAPIBase
	// aladhan expects DD-MM-YYYY in the path
	endpoint := fmt.Sprintf("%s/timingsByCity/%02d-%02d-%d?city=%s&country=%s&method=%d",
		base, day.Day(), int(day.Month()), day.Year(),
		url.QueryEscape(city), url.QueryEscape(country), calculationMethod(country))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return PrayerTimes{}, err
	}
	resp, err := prayerHTTPClient.Do(req)
	if err != nil {
		return PrayerTimes{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return PrayerTimes{}, fmt.Errorf("prayer provider status %d", resp.StatusCode)
	}

	var body aladhanResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return PrayerTimes{}, err
	}
	if body.Code != http.StatusOK {
		return PrayerTimes{}, fmt.Errorf("prayer provider error: %s", body.Status)
	}

	times := PrayerTimes{
		Fajr:    cleanTiming(body.Data.Timings["Fajr"]),
		Dhuhr:   cleanTiming(body.Data.Timings["Dhuhr"]),
		Asr:     cleanTiming(body.Data.Timings["Asr"]),
		Maghrib: cleanTiming(body.Data.Timings["Maghrib"]),
		Isha:    cleanTiming(body.Data.Timings["Isha"]),
	}

	prayerCacheMu.Lock()
	prayerCache[cacheKey] = prayerCacheEntry{times: times, expiresAt: time.Now().Add(prayerTTL)}
	prayerCacheMu.Unlock()

	return times, nil
}

// cleanTiming strips the timezone suffix aladhan appends, e.g.
// "05:23 (GST)" -> "05:23".
func cleanTiming(t string) string {
	if idx := strings.IndexByte(t, ' '); idx >= 0 {
		return t[:idx]
	}
	return t
}

// CurrentPrayer returns the prayer window containing current (HH:MM).
// Before Fajr the window is still the previous day's Isha.
func CurrentPrayer(times PrayerTimes, current string) string {
	c, err := TimeToMinutes(current)
	if err != nil {
		return ""
	}
	for i := len(PrayerNames) - 1; i >= 0; i-- {
		m, err := TimeToMinutes(times.ByName(PrayerNames[i]))
		if err != nil {
			continue
		}
		if c >= m {
			return PrayerNames[i]
		}
	}
	return "isha"
}

// NextPrayer returns the next prayer after current (HH:MM) and its
// time; after Isha it wraps to tomorrow's Fajr.
func NextPrayer(times PrayerTimes, current string) (string, string) {
	c, err := TimeToMinutes(current)
	if err != nil {
		return "fajr", times.Fajr
	}
	for _, name := range PrayerNames {
		m, err := TimeToMinutes(times.ByName(name))
		if err != nil {
			continue
		}
		if m > c {
			return name, times.ByName(name)
		}
	}
	return "fajr", times.Fajr
}
