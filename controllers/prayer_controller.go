package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sawahq/sawa/utils"
)

// PrayerController proxies prayer timings for the authenticated user's
// city.
type PrayerController struct {
	db *gorm.DB
}

// NewPrayerController creates a new controller instance.
func NewPrayerController(db *gorm.DB) *PrayerController {
	return &PrayerController{db: db}
}

// Timings returns the day's five prayer times for the user's city.
func (p *PrayerController) Timings(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}
	user, err := loadUser(p.db, userID)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50120, "failed to load user")
		return
	}
	if user.City == "" || user.Country == "" {
		utils.Error(ctx, http.StatusBadRequest, 40120, "no city configured")
		return
	}

	loc, err := time.LoadLocation(user.Timezone)
	if err != nil {
		loc = time.UTC
	}
	calendarDate := time.Now().In(loc).Format("2006-01-02")

	times, err := utils.GetPrayerTimes(ctx.Request.Context(), user.City, user.Country, calendarDate)
	if err != nil {
		utils.Error(ctx, http.StatusBadGateway, 50221, "prayer provider unavailable")
		return
	}

	utils.Success(ctx, gin.H{"date": calendarDate, "timings": times})
}

// Status reports the current and next prayer window for the user's
// local time.
func (p *PrayerController) Status(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}
	user, err := loadUser(p.db, userID)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50120, "failed to load user")
		return
	}
	if user.City == "" || user.Country == "" {
		utils.Error(ctx, http.StatusBadRequest, 40120, "no city configured")
		return
	}

	loc, err := time.LoadLocation(user.Timezone)
	if err != nil {
		loc = time.UTC
	}
	now := time.Now().In(loc)
	calendarDate := now.Format("2006-01-02")
	current := now.Format("15:04")

	times, err := utils.GetPrayerTimes(ctx.Request.Context(), user.City, user.Country, calendarDate)
	if err != nil {
		utils.Error(ctx, http.StatusBadGateway, 50221, "prayer provider unavailable")
		return
	}

	nextName, nextTime := utils.NextPrayer(times, current)
	utils.Success(ctx, gin.H{
		"date":           calendarDate,
		"local_time":     current,
		"current_prayer": utils.CurrentPrayer(times, current),
		"next_prayer":    nextName,
		"next_time":      nextTime,
	})
}
