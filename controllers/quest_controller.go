package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sawahq/sawa/models"
	"github.com/sawahq/sawa/services"
	"github.com/sawahq/sawa/utils"
)

// QuestController serves shared quests and their progress.
type QuestController struct {
	db *gorm.DB
}

// NewQuestController creates a new controller instance.
func NewQuestController(db *gorm.DB) *QuestController {
	return &QuestController{db: db}
}

// ListQuests returns active quests with the current period's progress.
// Daily quests key on the sawa day; weekly quests key on the Monday of
// the current week.
func (q *QuestController) ListQuests(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}
	user, err := loadUser(q.db, userID)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50060, "failed to load user")
		return
	}
	date := userSawaDay(user)

	var quests []models.Quest
	if err := q.db.Where("is_active = ?", true).Find(&quests).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50061, "failed to load quests")
		return
	}

	type questWithProgress struct {
		models.Quest
		Completed bool   `json:"completed"`
		PeriodKey string `json:"period_key"`
	}

	out := make([]questWithProgress, 0, len(quests))
	for _, quest := range quests {
		key := questPeriodKey(quest.QuestType, date)
		var count int64
		if err := q.db.Model(&models.QuestProgress{}).
			Where("quest_id = ? AND date = ? AND completed = ?", quest.ID, key, true).
			Count(&count).Error; err != nil {
			utils.Error(ctx, http.StatusInternalServerError, 50062, "failed to load quest progress")
			return
		}
		out = append(out, questWithProgress{Quest: quest, Completed: count > 0, PeriodKey: key})
	}

	utils.Success(ctx, gin.H{"date": date, "quests": out})
}

// CompleteQuest marks a quest done for the current period, awarding its
// own XP reward once. Quests are shared, so either partner can complete
// one for both.
func (q *QuestController) CompleteQuest(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	questID := ctx.Param("id")
	var quest models.Quest
	if err := q.db.Where("id = ? AND is_active = ?", questID, true).First(&quest).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.Error(ctx, http.StatusNotFound, 40460, "quest not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50061, "failed to load quest")
		return
	}

	user, err := loadUser(q.db, userID)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50060, "failed to load user")
		return
	}
	key := questPeriodKey(quest.QuestType, userSawaDay(user))
	now := time.Now()

	result, err := services.CompleteOnce(q.db, services.CompleteOpts{
		UserID: userID,
		Date:   key,
		XP:     quest.XPReward,
		Source: "quest",
		Activity: &models.ActivityLog{
			Activity:    models.ActivityQuestComplete,
			Description: quest.Title,
			TargetType:  "quest",
			TargetID:    quest.ID,
		},
		Exists: func(tx *gorm.DB) (bool, error) {
			var count int64
			err := tx.Model(&models.QuestProgress{}).
				Where("quest_id = ? AND date = ? AND completed = ?", quest.ID, key, true).
				Count(&count).Error
			return count > 0, err
		},
		Write: func(tx *gorm.DB) error {
			return tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "quest_id"}, {Name: "date"}},
				DoUpdates: clause.AssignmentColumns([]string{"completed", "completed_at"}),
			}).Create(&models.QuestProgress{
				QuestID:     quest.ID,
				Date:        key,
				Completed:   true,
				CompletedAt: &now,
			}).Error
		},
	})
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50063, "failed to complete quest")
		return
	}
	utils.Views().Invalidate(progressViewKey)

	utils.Success(ctx, gin.H{"period_key": key, "result": result})
}

// questPeriodKey maps a quest type and sawa day to its progress key.
// Weekly quests share one key from Monday through Sunday.
func questPeriodKey(questType, date string) string {
	if questType != models.QuestWeekly {
		return date
	}
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	offset := (int(day.Weekday()) + 6) % 7 // Monday = 0
	return day.AddDate(0, 0, -offset).Format("2006-01-02")
}
