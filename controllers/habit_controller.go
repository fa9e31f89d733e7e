package controllers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sawahq/sawa/config"
	"github.com/sawahq/sawa/models"
	"github.com/sawahq/sawa/services"
	"github.com/sawahq/sawa/utils"
)

// HabitController serves the habit catalog and the daily habit log.
type HabitController struct {
	db *gorm.DB
}

// NewHabitController creates a new controller instance.
func NewHabitController(db *gorm.DB) *HabitController {
	return &HabitController{db: db}
}

// habitsView is the per-user, per-day view the client renders: assigned
// habits plus today's log values.
type habitsView struct {
	Date   string                      `json:"date"`
	Habits []models.UserHabit          `json:"habits"`
	Logs   map[string]models.HabitValue `json:"logs"`
}

// ListHabits returns the user's active habits with the current day's
// logs, served from the view cache when warm.
func (h *HabitController) ListHabits(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}
	user, err := loadUser(h.db, userID)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50010, "failed to load user")
		return
	}
	date := userSawaDay(user)

	key := habitsViewKey(userID, date)
	if cached, ok := utils.Views().Get(key); ok {
		var view habitsView
		if err := json.Unmarshal(cached, &view); err == nil {
			utils.Success(ctx, view)
			return
		}
	}

	view, err := h.buildView(userID, date)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50011, "failed to load habits")
		return
	}
	if b, err := json.Marshal(view); err == nil {
		utils.Views().Put(key, b)
	}
	utils.Success(ctx, view)
}

func (h *HabitController) buildView(userID, date string) (*habitsView, error) {
	var assigned []models.UserHabit
	if err := h.db.Preload("Habit").
		Where("user_id = ? AND is_active = ?", userID, true).
		Find(&assigned).Error; err != nil {
		return nil, err
	}

	var logs []models.HabitLog
	if err := h.db.Where("user_id = ? AND date = ?", userID, date).
		Find(&logs).Error; err != nil {
		return nil, err
	}

	view := &habitsView{Date: date, Habits: assigned, Logs: map[string]models.HabitValue{}}
	for _, l := range logs {
		view.Logs[l.HabitID] = l.Value
	}
	return view, nil
}

type completeHabitRequest struct {
	Value models.HabitValue `json:"value"`
}

// CompleteHabit records a completion for the current day. The cached
// view is patched speculatively before the write; a failed write
// restores the snapshot, a successful one invalidates for refetch. XP
// is granted only when the day's slot was empty.
func (h *HabitController) CompleteHabit(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	habitID := ctx.Param("id")
	var habit models.Habit
	if err := h.db.Where("id = ? AND is_active = ?", habitID, true).First(&habit).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.Error(ctx, http.StatusNotFound, 40410, "habit not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50012, "failed to load habit")
		return
	}

	var req completeHabitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		req.Value = models.HabitValue{Done: true}
	}
	req.Value.Done = true
	if err := req.Value.ValidateFor(habit.Type); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40010, err.Error())
		return
	}

	user, err := loadUser(h.db, userID)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50010, "failed to load user")
		return
	}
	date := userSawaDay(user)

	var result *services.CompleteResult
	mutErr := utils.MutateJSON(utils.Views(), habitsViewKey(userID, date), func(v *habitsView) {
		v.Logs[habit.ID] = req.Value
	}, func() error {
		var err error
		result, err = services.CompleteOnce(h.db, services.CompleteOpts{
			UserID: userID,
			Date:   date,
			XP:     habitXP(habit.Type),
			Source: "habit",
			Activity: &models.ActivityLog{
				Activity:    habitActivityKind(habit.Type),
				Description: habit.Name,
				TargetType:  "habit",
				TargetID:    habit.ID,
			},
			Exists: func(tx *gorm.DB) (bool, error) {
				var count int64
				err := tx.Model(&models.HabitLog{}).
					Where("user_id = ? AND habit_id = ? AND date = ?", userID, habit.ID, date).
					Count(&count).Error
				return count > 0, err
			},
			Write: func(tx *gorm.DB) error {
				return tx.Clauses(clause.OnConflict{
					Columns:   []clause.Column{{Name: "user_id"}, {Name: "habit_id"}, {Name: "date"}},
					DoUpdates: clause.AssignmentColumns([]string{"value", "logged_at"}),
				}).Create(&models.HabitLog{
					UserID:   userID,
					HabitID:  habit.ID,
					Date:     date,
					Value:    req.Value,
					LoggedAt: time.Now(),
				}).Error
			},
		})
		return err
	})
	if mutErr != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50013, "failed to record completion")
		return
	}
	utils.Views().Invalidate(progressViewKey)

	utils.Success(ctx, gin.H{
		"date":   date,
		"result": result,
	})
}

// UncompleteHabit deletes the day's log. Previously granted XP stays;
// completing again later counts as a fresh first completion.
func (h *HabitController) UncompleteHabit(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}
	habitID := ctx.Param("id")

	user, err := loadUser(h.db, userID)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50010, "failed to load user")
		return
	}
	date := userSawaDay(user)

	mutErr := utils.MutateJSON(utils.Views(), habitsViewKey(userID, date), func(v *habitsView) {
		delete(v.Logs, habitID)
	}, func() error {
		return services.Uncomplete(h.db, userID, "habit", date, func(tx *gorm.DB) error {
			return tx.Where("user_id = ? AND habit_id = ? AND date = ?", userID, habitID, date).
				Delete(&models.HabitLog{}).Error
		})
	})
	if mutErr != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50014, "failed to remove completion")
		return
	}

	utils.Success(ctx, gin.H{"date": date})
}

func habitXP(habitType string) int {
	cfg := config.Get()
	switch habitType {
	case models.HabitTypePrayer:
		return cfg.XPPrayer
	case models.HabitTypeDualConfirm:
		return cfg.XPDualConfirm
	default:
		return cfg.XPBinaryHabit
	}
}

func habitActivityKind(habitType string) string {
	if habitType == models.HabitTypePrayer {
		return models.ActivityPrayerComplete
	}
	return models.ActivityHabitComplete
}
