package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sawahq/sawa/config"
	"github.com/sawahq/sawa/models"
	"github.com/sawahq/sawa/services"
	"github.com/sawahq/sawa/utils"
)

// CheckInController handles the daily mood check-in.
type CheckInController struct {
	db *gorm.DB
}

// NewCheckInController creates a new controller instance.
func NewCheckInController(db *gorm.DB) *CheckInController {
	return &CheckInController{db: db}
}

// TodayCheckIn returns both partners' check-ins for the current day.
func (c *CheckInController) TodayCheckIn(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}
	user, err := loadUser(c.db, userID)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50020, "failed to load user")
		return
	}
	date := userSawaDay(user)

	ids := []string{userID}
	if user.PartnerID != nil {
		ids = append(ids, *user.PartnerID)
	}
	var checkins []models.CheckIn
	if err := c.db.Where("user_id IN ? AND date = ?", ids, date).Find(&checkins).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50021, "failed to load check-ins")
		return
	}

	resp := gin.H{"date": date, "mine": nil, "partner": nil}
	for i := range checkins {
		if checkins[i].UserID == userID {
			resp["mine"] = checkins[i]
		} else {
			resp["partner"] = checkins[i]
		}
	}
	utils.Success(ctx, resp)
}

type checkInRequest struct {
	Mood string `json:"mood" binding:"required"`
	Note string `json:"note"`
}

// CreateCheckIn upserts the day's check-in. Editing mood or note later
// the same day replaces the record without granting XP again.
func (c *CheckInController) CreateCheckIn(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var req checkInRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40020, "mood is required")
		return
	}
	if !models.ValidMood(req.Mood) {
		utils.Error(ctx, http.StatusBadRequest, 40021, "unknown mood")
		return
	}
	note := utils.TruncateRunes(utils.Sanitize(req.Note), 50)

	user, err := loadUser(c.db, userID)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50020, "failed to load user")
		return
	}
	date := userSawaDay(user)

	result, err := services.CompleteOnce(c.db, services.CompleteOpts{
		UserID: userID,
		Date:   date,
		XP:     config.Get().XPCheckIn,
		Source: "checkin",
		Activity: &models.ActivityLog{
			Activity:    models.ActivityCheckIn,
			Description: "checked in feeling " + req.Mood,
			TargetType:  "checkin",
		},
		Exists: func(tx *gorm.DB) (bool, error) {
			var count int64
			err := tx.Model(&models.CheckIn{}).
				Where("user_id = ? AND date = ?", userID, date).
				Count(&count).Error
			return count > 0, err
		},
		Write: func(tx *gorm.DB) error {
			return tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "user_id"}, {Name: "date"}},
				DoUpdates: clause.AssignmentColumns([]string{"mood", "note", "updated_at"}),
			}).Create(&models.CheckIn{
				UserID: userID,
				Date:   date,
				Mood:   req.Mood,
				Note:   note,
			}).Error
		},
	})
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50022, "failed to record check-in")
		return
	}
	utils.Views().Invalidate(progressViewKey)

	utils.Success(ctx, gin.H{"date": date, "result": result})
}
