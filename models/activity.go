package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Activity kinds appearing in the live feed.
const (
	ActivityHabitComplete  = "habit_complete"
	ActivityPrayerComplete = "prayer_complete"
	ActivityCheckIn        = "checkin"
	ActivityQuestionAnswer = "question_answer"
	ActivityRitualComplete = "ritual_complete"
	ActivityQuestComplete  = "quest_complete"
	ActivityReactionSent   = "reaction_sent"
	ActivityWishFulfilled  = "wish_fulfilled"
)

// ActivityLog is an append-only audit entry. Duplicates are fine; the
// feed reads newest first.
type ActivityLog struct {
	ID          string    `gorm:"type:char(36);primaryKey" json:"id"`
	UserID      string    `gorm:"type:char(36);index;not null" json:"user_id"`
	Activity    string    `gorm:"size:32;index;not null" json:"activity"`
	Description string    `gorm:"size:255" json:"description"`
	TargetType  string    `gorm:"size:32" json:"target_type"`
	TargetID    string    `gorm:"type:char(36)" json:"target_id"`
	XPEarned    int       `gorm:"default:0" json:"xp_earned"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
}

func (a *ActivityLog) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
