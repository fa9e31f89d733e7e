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

// RitualController handles the three-step evening ritual.
type RitualController struct {
	db *gorm.DB
}

// NewRitualController creates a new controller instance.
func NewRitualController(db *gorm.DB) *RitualController {
	return &RitualController{db: db}
}

// TodayRitual returns both partners' ritual state for the current day.
func (r *RitualController) TodayRitual(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}
	user, err := loadUser(r.db, userID)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50050, "failed to load user")
		return
	}
	date := userSawaDay(user)

	ids := []string{userID}
	if user.PartnerID != nil {
		ids = append(ids, *user.PartnerID)
	}
	var responses []models.RitualResponse
	if err := r.db.Where("user_id IN ? AND date = ?", ids, date).Find(&responses).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50051, "failed to load ritual")
		return
	}

	resp := gin.H{"date": date, "mine": nil, "partner": nil}
	for i := range responses {
		if responses[i].UserID == userID {
			resp["mine"] = responses[i]
		} else {
			resp["partner"] = responses[i]
		}
	}
	utils.Success(ctx, resp)
}

type ritualRequest struct {
	Mood   string `json:"mood"`
	Energy *int   `json:"energy"`
	Vibe   string `json:"vibe"`
}

// SubmitRitual upserts ritual progress for the day. Partial steps are
// preserved; the completion (and its XP) fires once all three fields
// are present, and only the first time.
func (r *RitualController) SubmitRitual(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var req ritualRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40050, "invalid ritual payload")
		return
	}
	if req.Mood != "" && !models.ValidMood(req.Mood) {
		utils.Error(ctx, http.StatusBadRequest, 40051, "unknown mood")
		return
	}
	if req.Energy != nil && (*req.Energy < 1 || *req.Energy > 10) {
		utils.Error(ctx, http.StatusBadRequest, 40052, "energy must be between 1 and 10")
		return
	}
	req.Vibe = utils.Sanitize(req.Vibe)

	user, err := loadUser(r.db, userID)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50050, "failed to load user")
		return
	}
	date := userSawaDay(user)

	var current models.RitualResponse
	if err := r.db.Where("user_id = ? AND date = ?", userID, date).
		First(&current).Error; err != nil && err != gorm.ErrRecordNotFound {
		utils.Error(ctx, http.StatusInternalServerError, 50051, "failed to load ritual")
		return
	}
	merged, completed := mergeRitualSteps(current, req.Mood, req.Energy, req.Vibe)

	result, err := services.CompleteOnce(r.db, services.CompleteOpts{
		UserID: userID,
		Date:   date,
		XP:     ritualXP(completed),
		Source: "ritual",
		Activity: &models.ActivityLog{
			Activity:    models.ActivityRitualComplete,
			Description: "completed the evening ritual",
			TargetType:  "ritual",
		},
		Exists: func(tx *gorm.DB) (bool, error) {
			// Partial rows do not occupy the slot; only a completed
			// ritual blocks a later XP grant.
			var count int64
			err := tx.Model(&models.RitualResponse{}).
				Where("user_id = ? AND date = ? AND completed = ?", userID, date, true).
				Count(&count).Error
			return count > 0, err
		},
		Write: func(tx *gorm.DB) error {
			return tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "user_id"}, {Name: "date"}},
				DoUpdates: clause.AssignmentColumns([]string{"mood", "energy", "vibe", "completed", "updated_at"}),
			}).Create(&models.RitualResponse{
				UserID:    userID,
				Date:      date,
				Mood:      merged.Mood,
				Energy:    merged.Energy,
				Vibe:      merged.Vibe,
				Completed: completed,
			}).Error
		},
	})
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50052, "failed to record ritual")
		return
	}
	if completed {
		utils.Views().Invalidate(progressViewKey)
	}

	utils.Success(ctx, gin.H{"date": date, "completed": completed, "result": result})
}

// mergeRitualSteps overlays incoming steps on the stored row. Omitted
// fields never erase earlier progress: a nil energy means "unchanged",
// which is why the request carries a pointer (energy 1 is a legitimate
// submission and must survive the merge).
func mergeRitualSteps(current models.RitualResponse, mood string, energy *int, vibe string) (models.RitualResponse, bool) {
	merged := current
	if mood != "" {
		merged.Mood = mood
	}
	if energy != nil {
		merged.Energy = *energy
	}
	if vibe != "" {
		merged.Vibe = vibe
	}
	completed := merged.Mood != "" && merged.Energy >= 1 && merged.Vibe != ""
	return merged, completed
}

// ritualXP awards nothing until the ritual is complete.
func ritualXP(completed bool) int {
	if !completed {
		return 0
	}
	return config.Get().XPRitual
}
