package services

import (
	"gorm.io/gorm"

	"github.com/sawahq/sawa/models"
	"github.com/sawahq/sawa/utils"
)

// XPResult reports the couple's progress after an award.
type XPResult struct {
	TotalXP   int  `json:"total_xp"`
	Level     int  `json:"level"`
	LeveledUp bool `json:"leveled_up"`
}

// EnsureCouple returns the shared couple record, creating it on first
// use. There is exactly one per deployment.
func EnsureCouple(db *gorm.DB) (*models.Couple, error) {
	var couple models.Couple
	err := db.First(&couple).Error
	if err == nil {
		return &couple, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}
	couple = models.Couple{Level: 1}
	if err := db.Create(&couple).Error; err != nil {
		return nil, err
	}
	return &couple, nil
}

// grantXP applies one award inside tx. The increment runs in SQL
// (total_xp = total_xp + ?) so two sessions awarding concurrently can
// never lose an update; the level is recomputed from the post-increment
// total in the same transaction.
func grantXP(tx *gorm.DB, amount int) (*XPResult, error) {
	couple, err := EnsureCouple(tx)
	if err != nil {
		return nil, err
	}

	if err := tx.Model(&models.Couple{}).
		Where("id = ?", couple.ID).
		UpdateColumn("total_xp", gorm.Expr("total_xp + ?", amount)).Error; err != nil {
		return nil, err
	}

	var updated models.Couple
	if err := tx.Where("id = ?", couple.ID).First(&updated).Error; err != nil {
		return nil, err
	}

	level := utils.LevelForXP(updated.TotalXP)
	leveledUp := level > updated.Level
	if level != updated.Level {
		if err := tx.Model(&models.Couple{}).
			Where("id = ?", couple.ID).
			UpdateColumn("level", level).Error; err != nil {
			return nil, err
		}
	}

	return &XPResult{TotalXP: updated.TotalXP, Level: level, LeveledUp: leveledUp}, nil
}

// AddXP awards XP outside a ledger flow (quests pass their own reward).
// Not idempotent: callers gate repeats themselves. The optional activity
// entry is appended in the same transaction.
func AddXP(db *gorm.DB, userID string, amount int, source string, activity *models.ActivityLog) (*XPResult, error) {
	var result *XPResult
	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		result, err = grantXP(tx, amount)
		if err != nil {
			return err
		}
		if activity != nil {
			activity.UserID = userID
			activity.XPEarned = amount
			if err := tx.Create(activity).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	utils.XPGranted.WithLabelValues(source).Add(float64(amount))
	utils.PublishChange(userID, "xp", "")
	return result, nil
}
