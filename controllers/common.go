package controllers

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sawahq/sawa/middleware"
	"github.com/sawahq/sawa/models"
	"github.com/sawahq/sawa/utils"
)

// getUserID extracts the authenticated user ID from Gin context.
func getUserID(ctx *gin.Context) (string, bool) {
	value, exists := ctx.Get(middleware.ContextUserIDKey)
	if !exists {
		return "", false
	}
	id, ok := value.(string)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}

// loadUser fetches the authenticated user with the partner preloaded.
func loadUser(db *gorm.DB, userID string) (*models.User, error) {
	var user models.User
	if err := db.Preload("Partner").Where("id = ?", userID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// userSawaDay computes the user's current day key. With a known
// city/country the dawn comes from an actual Fajr lookup; otherwise the
// built-in estimate for the timezone applies.
func userSawaDay(user *models.User) string {
	dawn := ""
	if user.City != "" && user.Country != "" {
		loc, err := time.LoadLocation(user.Timezone)
		if err != nil {
			loc = time.UTC
		}
		calendarDate := time.Now().In(loc).Format("2006-01-02")
		cctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if times, err := utils.GetPrayerTimes(cctx, user.City, user.Country, calendarDate); err == nil {
			dawn = times.Fajr
		}
	}
	return utils.SawaDay(user.Timezone, dawn)
}

// habitsViewKey is the cached habit view for one user and day.
func habitsViewKey(userID, date string) string {
	return fmt.Sprintf("view:habits:%s:%s", userID, date)
}

// progressViewKey is the cached couple progress view.
const progressViewKey = "view:couple:progress"
